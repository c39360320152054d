package assigner

import (
	"featurepack/internal/features"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type profileMethod struct{}

func (m *profileMethod) ID() string { return features.MethodProfile }

// AssignPackages fills the profile package of a profile bundle with curated
// settings, items of the configured types and the configuration the profile
// itself provides. Other bundles are left alone.
func (m *profileMethod) AssignPackages(a *Assigner, force bool) error {
	if !a.bundle.IsProfile {
		return nil
	}
	c, err := a.collection()
	if err != nil {
		return err
	}
	settings := a.Settings(features.MethodProfile)
	profile := a.bundle.GetProfileName()

	label := a.bundle.Name
	if label == "" {
		label = cases.Title(language.English).String(profile)
	}
	a.manager.InitPackage(profile, label, a.bundle.Description, features.TypeProfile, a.bundle)

	var names []string
	for _, item := range c.Items() {
		if settings.Curated && matchesCurated(item.Name, profileCurated, profileCuratedPrefixes) {
			names = append(names, item.Name)
			continue
		}
		if item.Provider == profile {
			names = append(names, item.Name)
		}
	}
	names = append(names, itemNames(itemsOfTypes(c, settings.Types.Config))...)
	a.manager.AssignConfigPackageSafe(profile, names, force)
	return nil
}
