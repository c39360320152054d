package features

import "featurepack/internal/extension"

// ConfigStore is the read-only active configuration storage.
type ConfigStore interface {
	// ListAll returns the names starting with prefix, sorted.
	ListAll(prefix string) ([]string, error)
	// Read returns the document called name, or ErrConfigNotFound.
	Read(name string) (map[string]interface{}, error)
}

// BatchReader is implemented by stores that can read many documents at once.
type BatchReader interface {
	ReadMultiple(names []string) (map[string]map[string]interface{}, error)
}

// DependencyGraph answers which configuration depends on a given name,
// directly or transitively.
type DependencyGraph interface {
	TransitiveDependents(name string) []string
}

// ProviderRegistry maps a configuration name to the extension shipping it.
type ProviderRegistry interface {
	Provider(configName string) string
}

// ExtensionRegistry exposes the extensions known to the site.
type ExtensionRegistry interface {
	ProviderRegistry
	Get(name string) (*extension.Extension, bool)
	List() []*extension.Extension
	IsInstalled(name string) bool
	InstallProfile() string
}

// Logger receives engine diagnostics.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(err error, format string, args ...interface{})
}
