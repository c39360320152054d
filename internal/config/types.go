package config

import "featurepack/internal/features"

// Settings is the content of featurepack.yaml.
type Settings struct {
	// Core is the compatibility constraint written into generated packages.
	Core string `yaml:"core,omitempty"`
	// DefaultBundle is used when no bundle is named on the command line.
	DefaultBundle string `yaml:"defaultBundle,omitempty"`
	// Bundles lists the assignment policies. Assignment methods a bundle does
	// not mention keep their default settings.
	Bundles []features.Bundle `yaml:"bundles,omitempty"`
	// Types registers additional configuration entity types.
	Types []features.ConfigType `yaml:"types,omitempty"`
}

// Options are the process-level settings read from the environment.
type Options struct {
	ConfigDir     string `env:"FEATUREPACK_CONFIG_DIR" envDefault:"config/sync"`
	ExtensionsDir string `env:"FEATUREPACK_EXTENSIONS_DIR" envDefault:"."`
	SettingsFile  string `env:"FEATUREPACK_SETTINGS" envDefault:"featurepack.yaml"`
	LogLevel      string `env:"FEATUREPACK_LOG_LEVEL" envDefault:"info"`
}
