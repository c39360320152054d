package assigner

import "featurepack/internal/features"

type forwardDependencyMethod struct{}

func (m *forwardDependencyMethod) ID() string { return features.MethodForwardDependency }

// AssignPackages walks unassigned items in dependency order and moves each
// into the package owning its dependencies, provided they all belong to the
// same one. Chains resolve in one pass because dependencies are visited
// first.
func (m *forwardDependencyMethod) AssignPackages(a *Assigner, force bool) error {
	c, err := a.collection()
	if err != nil {
		return err
	}
	for _, name := range a.manager.DependencyOrder() {
		item, ok := c.Get(name)
		if !ok || item.Package != "" {
			continue
		}
		owners := make(map[string]bool)
		var owner string
		for _, dep := range item.ConfigDependencies() {
			if depItem, ok := c.Get(dep); ok && depItem.Package != "" {
				owners[depItem.Package] = true
				owner = depItem.Package
			}
		}
		if len(owners) == 1 {
			a.manager.AssignConfigPackageSafe(owner, []string{name}, false)
		}
	}
	return nil
}
