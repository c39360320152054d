package assigner

import (
	"fmt"
	"regexp"

	"featurepack/internal/features"
)

type excludeMethod struct{}

func (m *excludeMethod) ID() string { return features.MethodExclude }

// AssignPackages marks items that must not be packaged: items of excluded
// types, curated site settings, items matching the exclusion regex, and
// configuration already provided by installed extensions.
func (m *excludeMethod) AssignPackages(a *Assigner, force bool) error {
	c, err := a.collection()
	if err != nil {
		return err
	}
	settings := a.Settings(features.MethodExclude)

	for _, item := range itemsOfTypes(c, settings.Types.Config) {
		item.Excluded = true
	}

	if settings.Curated {
		for _, item := range c.Items() {
			if matchesCurated(item.Name, excludeCurated, excludeCuratedPrefixes) {
				item.Excluded = true
			}
		}
	}

	if settings.Regex != "" {
		re, err := regexp.Compile(settings.Regex)
		if err != nil {
			return fmt.Errorf("invalid exclusion pattern %q: %w", settings.Regex, err)
		}
		for _, item := range c.Items() {
			if re.MatchString(item.Name) {
				item.Excluded = true
			}
		}
	}

	if settings.Module.Installed {
		m.excludeProvided(a, c, settings.Module)
	}
	return nil
}

func (m *excludeMethod) excludeProvided(a *Assigner, c *features.Collection, module features.ModuleSettings) {
	registry := a.manager.Extensions()
	if registry == nil {
		return
	}
	profile := registry.InstallProfile()
	for _, item := range c.Items() {
		provider := item.Provider
		if provider == "" || !registry.IsInstalled(provider) {
			continue
		}
		if module.Profile && provider == profile {
			continue
		}
		if module.Namespace && a.bundle.InBundle(provider) {
			continue
		}
		if module.NamespaceAny {
			if ext, ok := registry.Get(provider); ok && ext.IsFeature() {
				continue
			}
		}
		item.ProviderExcluded = true
	}
}
