package config

import "featurepack/internal/features"

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Core:          features.DefaultCore,
		DefaultBundle: features.DefaultBundleName,
		Bundles:       []features.Bundle{*features.NewDefaultBundle()},
	}
}
