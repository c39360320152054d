package assigner

import "featurepack/internal/features"

type siteMethod struct{}

func (m *siteMethod) ID() string { return features.MethodSite }

// AssignPackages gathers items of the configured types into a "site" package.
func (m *siteMethod) AssignPackages(a *Assigner, force bool) error {
	return a.assignTyped(features.MethodSite, "site", "Site",
		"Provides site components.", force)
}
