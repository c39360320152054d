package assigner

import "featurepack/internal/features"

type packagesMethod struct{}

func (m *packagesMethod) ID() string { return features.MethodPackages }

// AssignPackages creates a package for every existing feature of the bundle
// and records the items each feature excludes.
func (m *packagesMethod) AssignPackages(a *Assigner, force bool) error {
	c, err := a.collection()
	if err != nil {
		return err
	}
	for _, ext := range a.manager.ExistingPackages(false, a.bundle) {
		p := a.manager.InitPackageFromExtension(ext)
		for _, name := range p.Excluded {
			if item, ok := c.Get(name); ok {
				item.ExcludeFromPackage(p.MachineName)
			}
		}
	}
	return nil
}
