package extension

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type is the kind of extension.
type Type string

const (
	TypeModule  Type = "module"
	TypeProfile Type = "profile"
	TypeTheme   Type = "theme"
)

// Info is the parsed <name>.info.yml manifest.
type Info struct {
	Name                   string                 `yaml:"name"`
	Type                   Type                   `yaml:"type"`
	Description            string                 `yaml:"description,omitempty"`
	Package                string                 `yaml:"package,omitempty"`
	Version                string                 `yaml:"version,omitempty"`
	Core                   string                 `yaml:"core,omitempty"`
	CoreVersionRequirement string                 `yaml:"core_version_requirement,omitempty"`
	Dependencies           []string               `yaml:"dependencies,omitempty"`
	Themes                 []string               `yaml:"themes,omitempty"`
	Extra                  map[string]interface{} `yaml:",inline"`
}

// DependencyNames returns the dependencies without their "project:" prefix.
func (i Info) DependencyNames() []string {
	out := make([]string, 0, len(i.Dependencies))
	for _, d := range i.Dependencies {
		if idx := strings.LastIndex(d, ":"); idx >= 0 {
			d = d[idx+1:]
		}
		// strip version constraints such as "views (>=8.x-3.0)"
		if idx := strings.Index(d, " "); idx >= 0 {
			d = d[:idx]
		}
		if d != "" {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// Required lists configuration an existing feature insists on owning. All
// means every configuration item it ships.
type Required struct {
	All   bool
	Items []string
}

// UnmarshalYAML accepts either a boolean or a list of names.
func (r *Required) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var all bool
		if err := value.Decode(&all); err != nil {
			return fmt.Errorf("required: expected bool or list: %w", err)
		}
		r.All = all
		r.Items = nil
		return nil
	case yaml.SequenceNode:
		r.All = false
		return value.Decode(&r.Items)
	default:
		return fmt.Errorf("required: expected bool or list, got node kind %d", value.Kind)
	}
}

// MarshalYAML writes All as true and otherwise the list.
func (r Required) MarshalYAML() (interface{}, error) {
	if r.All {
		return true, nil
	}
	return r.Items, nil
}

// IsZero lets omitempty drop an empty Required.
func (r Required) IsZero() bool {
	return !r.All && len(r.Items) == 0
}

// FeatureInfo is the parsed <name>.features.yml file that marks an extension
// as a packaged feature.
type FeatureInfo struct {
	Bundle   string   `yaml:"bundle,omitempty"`
	Required Required `yaml:"required,omitempty"`
	Excluded []string `yaml:"excluded,omitempty"`
}

// ParseFeatureInfo parses a features file. A file holding only "true" is a
// valid marker with no settings.
func ParseFeatureInfo(data []byte) (*FeatureInfo, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse features file: %w", err)
	}
	if len(doc.Content) == 0 {
		return &FeatureInfo{}, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode {
		return &FeatureInfo{}, nil
	}
	var fi FeatureInfo
	if err := root.Decode(&fi); err != nil {
		return nil, fmt.Errorf("failed to decode features file: %w", err)
	}
	return &fi, nil
}

// Extension is a module, profile or theme present on disk.
type Extension struct {
	Name           string
	Path           string
	Info           Info
	Feature        *FeatureInfo
	Installed      bool
	InstallConfig  []string
	OptionalConfig []string
}

// Type returns the declared extension type, module by default.
func (e *Extension) Type() Type {
	if e.Info.Type == "" {
		return TypeModule
	}
	return e.Info.Type
}

// IsFeature reports whether the extension carries a features file.
func (e *Extension) IsFeature() bool {
	return e.Feature != nil
}

// BundleName returns the bundle recorded in the features file.
func (e *Extension) BundleName() string {
	if e.Feature == nil {
		return ""
	}
	return e.Feature.Bundle
}

// Config returns every configuration name the extension ships, sorted.
func (e *Extension) Config() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{e.InstallConfig, e.OptionalConfig} {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Ships reports whether the extension ships name.
func (e *Extension) Ships(name string) bool {
	for _, list := range [][]string{e.InstallConfig, e.OptionalConfig} {
		for _, n := range list {
			if n == name {
				return true
			}
		}
	}
	return false
}
