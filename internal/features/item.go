package features

import (
	"fmt"
	"sort"

	"featurepack/internal/dependency"

	"github.com/tiendc/go-deepcopy"
)

const (
	// SimpleConfig is the type tag of configuration that is not a config entity.
	SimpleConfig = "system_simple"

	// SubdirInstall holds configuration created when the package is installed.
	SubdirInstall = "install"
	// SubdirOptional holds configuration created only when its dependencies are met.
	SubdirOptional = "optional"
)

// ConfigurationItem is one configuration object plus its packaging metadata.
//
// Package is a weak back reference: it names the package that currently
// claims the item. The owning side is Package.Config.
type ConfigurationItem struct {
	Name             string                 `json:"name"`
	ShortName        string                 `json:"shortName"`
	Label            string                 `json:"label"`
	Type             string                 `json:"type"`
	Data             map[string]interface{} `json:"data,omitempty"`
	Dependents       []string               `json:"dependents,omitempty"`
	Subdirectory     string                 `json:"subdirectory"`
	Package          string                 `json:"package,omitempty"`
	Provider         string                 `json:"provider,omitempty"`
	PackageExcluded  []string               `json:"packageExcluded,omitempty"`
	Excluded         bool                   `json:"excluded,omitempty"`
	ProviderExcluded bool                   `json:"providerExcluded,omitempty"`
}

// ItemOption customises a ConfigurationItem at construction time.
type ItemOption func(*ConfigurationItem)

func WithType(t string) ItemOption {
	return func(c *ConfigurationItem) { c.Type = t }
}

func WithShortName(s string) ItemOption {
	return func(c *ConfigurationItem) { c.ShortName = s }
}

func WithLabel(l string) ItemOption {
	return func(c *ConfigurationItem) { c.Label = l }
}

func WithDependents(names ...string) ItemOption {
	return func(c *ConfigurationItem) { c.Dependents = append([]string(nil), names...) }
}

func WithSubdirectory(s string) ItemOption {
	return func(c *ConfigurationItem) { c.Subdirectory = s }
}

func WithProvider(p string) ItemOption {
	return func(c *ConfigurationItem) { c.Provider = p }
}

// NewConfigurationItem creates an unassigned item. Type defaults to
// SimpleConfig, ShortName and Label to name, Subdirectory to SubdirInstall.
func NewConfigurationItem(name string, data map[string]interface{}, opts ...ItemOption) *ConfigurationItem {
	item := &ConfigurationItem{
		Name:         name,
		ShortName:    name,
		Label:        name,
		Type:         SimpleConfig,
		Data:         data,
		Subdirectory: SubdirInstall,
	}
	for _, opt := range opts {
		opt(item)
	}
	return item
}

// NewConfigurationItemFromMap builds an item from loosely typed properties,
// as found in fixtures or serialised state. Unknown keys are rejected.
func NewConfigurationItemFromMap(name string, props map[string]interface{}) (*ConfigurationItem, error) {
	item := NewConfigurationItem(name, nil)
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]
		var err error
		switch key {
		case "shortName":
			item.ShortName, err = stringProp(key, value)
		case "label":
			item.Label, err = stringProp(key, value)
		case "type":
			item.Type, err = stringProp(key, value)
		case "data":
			data, ok := value.(map[string]interface{})
			if !ok && value != nil {
				err = fmt.Errorf("property %s: expected map, got %T", key, value)
			}
			item.Data = data
		case "dependents":
			item.Dependents, err = stringsProp(key, value)
		case "subdirectory":
			item.Subdirectory, err = stringProp(key, value)
		case "package":
			item.Package, err = stringProp(key, value)
		case "provider":
			item.Provider, err = stringProp(key, value)
		case "packageExcluded":
			item.PackageExcluded, err = stringsProp(key, value)
		case "excluded":
			item.Excluded, err = boolProp(key, value)
		case "providerExcluded":
			item.ProviderExcluded, err = boolProp(key, value)
		default:
			return nil, fmt.Errorf("configuration item %s: %w %q", name, ErrUnknownProperty, key)
		}
		if err != nil {
			return nil, fmt.Errorf("configuration item %s: %w", name, err)
		}
	}
	return item, nil
}

// IsExcludedFrom reports whether any of names appears in the item's
// per-package exclusion list.
func (c *ConfigurationItem) IsExcludedFrom(names ...string) bool {
	for _, excluded := range c.PackageExcluded {
		for _, name := range names {
			if name != "" && excluded == name {
				return true
			}
		}
	}
	return false
}

// ExcludeFromPackage adds name to the per-package exclusion list.
func (c *ConfigurationItem) ExcludeFromPackage(name string) {
	if !c.IsExcludedFrom(name) {
		c.PackageExcluded = append(c.PackageExcluded, name)
	}
}

// ConfigDependencies returns the config names the item's data declares it
// depends on. A missing or malformed declaration means no dependencies.
func (c *ConfigurationItem) ConfigDependencies() []string {
	return dependency.ConfigDependencies(c.Data)
}

// ModuleDependencies returns the module names the item's data declares.
func (c *ConfigurationItem) ModuleDependencies() []string {
	return dependency.ModuleDependencies(c.Data)
}

// Clone returns a deep copy of the item.
func (c *ConfigurationItem) Clone() (*ConfigurationItem, error) {
	var clone ConfigurationItem
	if err := deepcopy.Copy(&clone, c); err != nil {
		return nil, fmt.Errorf("failed to clone configuration item %s: %w", c.Name, err)
	}
	return &clone, nil
}

func stringProp(key string, v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("property %s: expected string, got %T", key, v)
	}
	return s, nil
}

func boolProp(key string, v interface{}) (bool, error) {
	if v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", key, v)
	}
	return b, nil
}

func stringsProp(key string, v interface{}) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), list...), nil
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, entry := range list {
			s, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("property %s: expected list of strings, found %T", key, entry)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("property %s: expected list, got %T", key, v)
	}
}
