package features

import (
	"fmt"
	"sort"
	"strings"
)

// Status describes whether a package already exists as an extension.
type Status int

const (
	// StatusNoExport marks a package that exists only in this run.
	StatusNoExport Status = iota
	// StatusUninstalled marks a package backed by an extension that is not installed.
	StatusUninstalled
	// StatusInstalled marks a package backed by an installed extension.
	StatusInstalled
)

func (s Status) String() string {
	switch s {
	case StatusNoExport:
		return "not exported"
	case StatusUninstalled:
		return "uninstalled"
	case StatusInstalled:
		return "installed"
	default:
		return "unknown"
	}
}

// State describes whether the active configuration differs from the shipped one.
type State int

const (
	StateDefault State = iota
	StateOverridden
)

func (s State) String() string {
	if s == StateOverridden {
		return "overridden"
	}
	return "default"
}

// Package types.
const (
	TypeModule  = "module"
	TypeProfile = "profile"
)

// File is one generated artifact of a package.
type File struct {
	Filename     string `json:"filename"`
	Subdirectory string `json:"subdirectory,omitempty"`
	Content      string `json:"content"`
}

// Package is one deployable unit (module or profile).
type Package struct {
	MachineName string                 `json:"machineName"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Version     string                 `json:"version,omitempty"`
	Core        string                 `json:"core,omitempty"`
	Type        string                 `json:"type"`
	Themes      []string               `json:"themes,omitempty"`
	Bundle      string                 `json:"bundle,omitempty"`
	Excluded    []string               `json:"excluded,omitempty"`
	Required    []string               `json:"required,omitempty"`
	RequiredAll bool                   `json:"requiredAll,omitempty"`
	Info        map[string]interface{} `json:"info,omitempty"`
	Status      Status                 `json:"status"`
	State       State                  `json:"state"`
	Directory   string                 `json:"directory,omitempty"`
	Files       []File                 `json:"files,omitempty"`
	ConfigOrig  []string               `json:"configOrig,omitempty"`

	config       []string
	dependencies []string
}

// NewPackage creates a module package with the given machine name.
func NewPackage(machineName string) *Package {
	return &Package{
		MachineName: machineName,
		Name:        machineName,
		Type:        TypeModule,
		Directory:   machineName,
	}
}

// NewPackageFromMap builds a package from loosely typed properties. Unknown
// keys are rejected.
func NewPackageFromMap(machineName string, props map[string]interface{}) (*Package, error) {
	p := NewPackage(machineName)
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]
		var err error
		var list []string
		switch key {
		case "name":
			p.Name, err = stringProp(key, value)
		case "description":
			p.Description, err = stringProp(key, value)
		case "version":
			p.Version, err = stringProp(key, value)
		case "core":
			p.Core, err = stringProp(key, value)
		case "type":
			p.Type, err = stringProp(key, value)
		case "themes":
			p.Themes, err = stringsProp(key, value)
		case "bundle":
			p.Bundle, err = stringProp(key, value)
		case "excluded":
			p.Excluded, err = stringsProp(key, value)
		case "required":
			if b, ok := value.(bool); ok {
				p.RequiredAll = b
			} else {
				p.Required, err = stringsProp(key, value)
			}
		case "directory":
			p.Directory, err = stringProp(key, value)
		case "config":
			list, err = stringsProp(key, value)
			p.AppendConfig(list...)
		case "configOrig":
			p.ConfigOrig, err = stringsProp(key, value)
		case "dependencies":
			list, err = stringsProp(key, value)
			p.SetDependencies(list)
		case "info":
			info, ok := value.(map[string]interface{})
			if !ok && value != nil {
				err = fmt.Errorf("property %s: expected map, got %T", key, value)
			}
			p.Info = info
		default:
			return nil, fmt.Errorf("package %s: %w %q", machineName, ErrUnknownProperty, key)
		}
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", machineName, err)
		}
	}
	return p, nil
}

// FullName returns the bundle-qualified name. Profiles and packages of the
// default bundle are never prefixed, nor are names that already carry the
// prefix.
func (p *Package) FullName() string {
	if p.Bundle == "" || p.Bundle == DefaultBundleName || p.Type == TypeProfile {
		return p.MachineName
	}
	prefix := p.Bundle + "_"
	if strings.HasPrefix(p.MachineName, prefix) {
		return p.MachineName
	}
	return prefix + p.MachineName
}

// Config returns a copy of the member item names in assignment order.
func (p *Package) Config() []string {
	return append([]string(nil), p.config...)
}

// HasConfig reports whether name is a member.
func (p *Package) HasConfig(name string) bool {
	for _, c := range p.config {
		if c == name {
			return true
		}
	}
	return false
}

// AppendConfig adds member names, skipping ones already present.
func (p *Package) AppendConfig(names ...string) {
	for _, name := range names {
		if !p.HasConfig(name) {
			p.config = append(p.config, name)
		}
	}
}

// RemoveConfig drops a member name. It returns false if name was not a member.
func (p *Package) RemoveConfig(name string) bool {
	for i, c := range p.config {
		if c == name {
			p.config = append(p.config[:i:i], p.config[i+1:]...)
			return true
		}
	}
	return false
}

// Dependencies returns a copy of the sorted module dependency list.
func (p *Package) Dependencies() []string {
	return append([]string(nil), p.dependencies...)
}

// SetDependencies replaces the dependency list. The result is deduplicated,
// sorted and never contains the package itself.
func (p *Package) SetDependencies(deps []string) {
	p.dependencies = nil
	p.AppendDependency(deps...)
}

// AppendDependency merges dependency names into the list.
func (p *Package) AppendDependency(deps ...string) {
	seen := make(map[string]bool, len(p.dependencies)+len(deps))
	merged := make([]string, 0, len(p.dependencies)+len(deps))
	self := map[string]bool{p.MachineName: true, p.FullName(): true}
	for _, list := range [][]string{p.dependencies, deps} {
		for _, d := range list {
			if d == "" || seen[d] || self[d] {
				continue
			}
			seen[d] = true
			merged = append(merged, d)
		}
	}
	sort.Strings(merged)
	p.dependencies = merged
}

// RemoveDependency drops name from the dependency list.
func (p *Package) RemoveDependency(name string) {
	for i, d := range p.dependencies {
		if d == name {
			p.dependencies = append(p.dependencies[:i:i], p.dependencies[i+1:]...)
			return
		}
	}
}

// AppendFile adds a generated file, replacing an existing one with the same
// subdirectory and filename.
func (p *Package) AppendFile(f File) {
	for i, existing := range p.Files {
		if existing.Filename == f.Filename && existing.Subdirectory == f.Subdirectory {
			p.Files[i] = f
			return
		}
	}
	p.Files = append(p.Files, f)
}

// IsEmpty reports whether the package neither claims nor ships any config.
func (p *Package) IsEmpty() bool {
	return len(p.config) == 0 && len(p.ConfigOrig) == 0
}
