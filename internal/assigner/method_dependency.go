package assigner

import "featurepack/internal/features"

type dependencyMethod struct{}

func (m *dependencyMethod) ID() string { return features.MethodDependency }

func (m *dependencyMethod) AssignPackages(a *Assigner, force bool) error {
	if _, err := a.collection(); err != nil {
		return err
	}
	a.manager.AssignConfigDependents(nil, "")
	return nil
}
