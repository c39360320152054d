package assigner

import "featurepack/internal/features"

type coreMethod struct{}

func (m *coreMethod) ID() string { return features.MethodCore }

// AssignPackages gathers items of the configured types into a "core" package
// other packages can depend on.
func (m *coreMethod) AssignPackages(a *Assigner, force bool) error {
	return a.assignTyped(features.MethodCore, "core", "Core",
		"Provides core components required by other features.", force)
}
