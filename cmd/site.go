package cmd

import (
	"errors"
	"fmt"
	"os"

	"featurepack/internal/assigner"
	"featurepack/internal/config"
	"featurepack/internal/extension"
	"featurepack/internal/features"
	"featurepack/pkg/logging"
)

// errVerificationFailed marks a package set that failed the consistency
// check run after assignment.
var errVerificationFailed = errors.New("package verification failed")

// coreExtensionConfig lists the installed extensions of a site.
const coreExtensionConfig = "core.extension"

// site bundles everything a command needs to run an assignment.
type site struct {
	settings config.Settings
	store    *config.FileStore
	registry *extension.Registry
	manager  *features.Manager
}

// loadSite reads the settings, scans the extensions and prepares a manager
// over the configuration export.
func loadSite(opts config.Options) (*site, error) {
	settings, err := config.LoadSettings(opts.SettingsFile)
	if err != nil {
		return nil, err
	}

	registry, err := scanExtensions(opts.ExtensionsDir)
	if err != nil {
		return nil, err
	}

	store := config.NewFileStore(opts.ConfigDir)
	coreExtension, err := store.Read(coreExtensionConfig)
	switch {
	case errors.Is(err, features.ErrConfigNotFound):
		logging.Warn("Site", "No %s in %s, treating every extension as uninstalled", coreExtensionConfig, opts.ConfigDir)
	case err != nil:
		return nil, err
	default:
		if err := registry.Activate(coreExtension); err != nil {
			return nil, err
		}
	}

	manager := features.NewManager(store,
		features.WithExtensions(registry),
		features.WithTypes(settings.TypeRegistry()),
		features.WithCore(settings.Core),
	)
	return &site{settings: settings, store: store, registry: registry, manager: manager}, nil
}

func scanExtensions(dir string) (*extension.Registry, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		logging.Warn("Site", "Extensions directory %s does not exist", dir)
		return extension.NewRegistry(), nil
	}
	registry, err := extension.Scan(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan extensions in %s: %w", dir, err)
	}
	return registry, nil
}

// assign runs a full assignment for bundleName and verifies the result.
func (s *site) assign(bundleName string, force bool) (map[string]*features.Package, *features.Bundle, error) {
	bundle, err := s.settings.Bundle(bundleName)
	if err != nil {
		return nil, nil, err
	}

	packages, err := assigner.New(s.manager, bundle).Run(force)
	if err != nil {
		return nil, nil, err
	}
	if err := s.manager.Verify(packages); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errVerificationFailed, err)
	}

	if errs := s.store.Errors(); errs.HasErrors() {
		logging.Warn("Site", "%s", errs.GetSummary())
	}
	return packages, bundle, nil
}

// collection returns the configuration loaded by the last assignment.
func (s *site) collection() (*features.Collection, error) {
	return s.manager.ConfigCollection(false)
}
