package extension

import (
	"fmt"
	"sort"
)

// Registry holds the extensions known to a site.
type Registry struct {
	extensions map[string]*Extension
	profile    string
}

// NewRegistry creates a registry holding exts.
func NewRegistry(exts ...*Extension) *Registry {
	r := &Registry{extensions: make(map[string]*Extension)}
	for _, ext := range exts {
		r.Add(ext)
	}
	return r
}

// Add inserts or replaces an extension.
func (r *Registry) Add(ext *Extension) {
	r.extensions[ext.Name] = ext
	if ext.Installed && ext.Type() == TypeProfile && r.profile == "" {
		r.profile = ext.Name
	}
}

// Get returns the extension called name.
func (r *Registry) Get(name string) (*Extension, bool) {
	ext, ok := r.extensions[name]
	return ext, ok
}

// List returns every extension ordered by name.
func (r *Registry) List() []*Extension {
	out := make([]*Extension, 0, len(r.extensions))
	for _, ext := range r.extensions {
		out = append(out, ext)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Features returns the extensions that carry a features file.
func (r *Registry) Features() []*Extension {
	var out []*Extension
	for _, ext := range r.List() {
		if ext.IsFeature() {
			out = append(out, ext)
		}
	}
	return out
}

// IsInstalled reports whether name is a known, installed extension.
func (r *Registry) IsInstalled(name string) bool {
	ext, ok := r.extensions[name]
	return ok && ext.Installed
}

// InstallProfile returns the active install profile, if any.
func (r *Registry) InstallProfile() string {
	return r.profile
}

// SetInstallProfile records the active install profile.
func (r *Registry) SetInstallProfile(name string) {
	r.profile = name
}

// Provider returns the extension that ships configName. Installed extensions
// win over uninstalled ones; ties are broken by name. An empty string means
// no extension ships it.
func (r *Registry) Provider(configName string) string {
	provider := ""
	providerInstalled := false
	for _, ext := range r.List() {
		if !ext.Ships(configName) {
			continue
		}
		if provider == "" || (ext.Installed && !providerInstalled) {
			provider = ext.Name
			providerInstalled = ext.Installed
		}
	}
	return provider
}

// Activate marks extensions installed according to a core.extension
// document:
//
//	module:
//	  node: 0
//	  my_feature: 0
//	theme:
//	  olivero: 0
//	profile: standard
func (r *Registry) Activate(coreExtension map[string]interface{}) error {
	for _, key := range []string{"module", "theme"} {
		raw, ok := coreExtension[key]
		if !ok || raw == nil {
			continue
		}
		list, ok := raw.(map[string]interface{})
		if !ok {
			return fmt.Errorf("core.extension: %s must be a map, got %T", key, raw)
		}
		for name := range list {
			if ext, ok := r.extensions[name]; ok {
				ext.Installed = true
			}
		}
	}
	if profile, ok := coreExtension["profile"].(string); ok && profile != "" {
		r.profile = profile
		if ext, ok := r.extensions[profile]; ok {
			ext.Installed = true
		}
	}
	return nil
}
