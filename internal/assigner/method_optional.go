package assigner

import "featurepack/internal/features"

type optionalMethod struct{}

func (m *optionalMethod) ID() string { return features.MethodOptional }

// AssignPackages moves every item of the configured types into the optional
// subdirectory. It runs before the claiming methods so the classification is
// in place when they assign.
func (m *optionalMethod) AssignPackages(a *Assigner, force bool) error {
	c, err := a.collection()
	if err != nil {
		return err
	}
	for _, item := range itemsOfTypes(c, a.Settings(features.MethodOptional).Types.Config) {
		item.Subdirectory = features.SubdirOptional
	}
	return nil
}
