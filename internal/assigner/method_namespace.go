package assigner

import (
	"regexp"

	"featurepack/internal/features"
)

type namespaceMethod struct{}

func (m *namespaceMethod) ID() string { return features.MethodNamespace }

// AssignPackages assigns items whose names contain a package's short name
// to that package.
func (m *namespaceMethod) AssignPackages(a *Assigner, force bool) error {
	if _, err := a.collection(); err != nil {
		return err
	}
	patterns := make(map[string]string)
	for key, p := range a.manager.Packages() {
		patterns[regexp.QuoteMeta(a.bundle.ShortName(p.MachineName))] = key
	}
	a.manager.AssignConfigByPattern(patterns)
	return nil
}
