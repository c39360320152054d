package assigner

import (
	"sort"

	"featurepack/internal/features"
)

type existingMethod struct{}

func (m *existingMethod) ID() string { return features.MethodExisting }

// AssignPackages lets existing features reclaim the configuration they
// ship. Installed features go first so they win over uninstalled ones.
func (m *existingMethod) AssignPackages(a *Assigner, force bool) error {
	if _, err := a.collection(); err != nil {
		return err
	}
	existing := a.manager.ExistingPackages(false, a.bundle)
	sort.SliceStable(existing, func(i, j int) bool {
		return existing[i].Installed && !existing[j].Installed
	})
	for _, ext := range existing {
		p := a.manager.InitPackageFromExtension(ext)
		a.manager.AssignConfigPackageSafe(p.MachineName, a.manager.ListExtensionConfig(ext), force)
	}
	return nil
}
