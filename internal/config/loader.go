package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"featurepack/internal/features"
	"featurepack/pkg/logging"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// dotEnvFile is read into the environment before options are parsed.
const dotEnvFile = ".env"

// LoadOptions reads Options from the environment. A .env file in the working
// directory is honoured when present; one that cannot be read is logged and
// ignored.
func LoadOptions() (Options, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		logging.Warn("ConfigLoader", "Ignoring %s: %v", dotEnvFile, err)
	}

	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return opts, nil
}

// loadDotEnv loads path into the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// LoadSettings reads the settings file at path. A missing file yields the
// defaults; a malformed or invalid file is an error.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No settings file found at %s, using defaults", path)
			return settings, nil
		}
		return Settings{}, fmt.Errorf("failed to read settings from %s: %w", path, err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Settings{}, NewConfigurationErrorWithDetails(path, filepath.Base(path), CategorySettings, ErrorTypeParse,
			"settings file is not valid YAML", err.Error(), []string{"Check indentation and quoting"})
	}

	if loaded.Core != "" {
		settings.Core = loaded.Core
	}
	if loaded.DefaultBundle != "" {
		settings.DefaultBundle = loaded.DefaultBundle
	}
	if len(loaded.Bundles) > 0 {
		settings.Bundles = withDefaultAssignments(loaded.Bundles)
	}
	settings.Types = loaded.Types

	if err := ValidateSettings(settings); err != nil {
		return Settings{}, FormatValidationError("settings", path, err)
	}
	logging.Info("ConfigLoader", "Loaded settings from %s (%d bundles)", path, len(settings.Bundles))
	return settings, nil
}

func withDefaultAssignments(bundles []features.Bundle) []features.Bundle {
	out := make([]features.Bundle, len(bundles))
	for i, b := range bundles {
		merged := features.DefaultAssignments()
		for id, s := range b.Assignments {
			merged[id] = s
		}
		b.Assignments = merged
		out[i] = b
	}
	return out
}

// Bundle returns a copy of the bundle called name. An empty name selects
// DefaultBundle; the default bundle is always available.
func (s Settings) Bundle(name string) (*features.Bundle, error) {
	if name == "" {
		name = s.DefaultBundle
	}
	for i := range s.Bundles {
		if s.Bundles[i].MachineName == name {
			b := s.Bundles[i]
			assignments := make(map[string]features.AssignmentSettings, len(b.Assignments))
			for id, a := range b.Assignments {
				assignments[id] = a
			}
			b.Assignments = assignments
			return &b, nil
		}
	}
	if name == "" || name == features.DefaultBundleName {
		return features.NewDefaultBundle(), nil
	}
	return nil, fmt.Errorf("bundle %q is not defined", name)
}

// TypeRegistry returns the default configuration types extended by the
// types declared in the settings.
func (s Settings) TypeRegistry() *features.TypeRegistry {
	r := features.DefaultTypeRegistry()
	for _, t := range s.Types {
		r.Register(t)
	}
	return r
}
