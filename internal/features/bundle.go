package features

import (
	"sort"
	"strings"
)

// DefaultBundleName is the machine name of the identity bundle. An empty
// machine name is treated the same way.
const DefaultBundleName = "default"

// TypeSettings selects configuration and content entity types for a method.
type TypeSettings struct {
	Config  []string `yaml:"config,omitempty" json:"config,omitempty"`
	Content []string `yaml:"content,omitempty" json:"content,omitempty"`
}

// ModuleSettings control which extension-provided configuration the exclude
// method marks as provider-excluded.
type ModuleSettings struct {
	// Installed excludes configuration shipped by installed extensions.
	Installed bool `yaml:"installed" json:"installed"`
	// Profile keeps the install profile's configuration assignable.
	Profile bool `yaml:"profile" json:"profile"`
	// Namespace keeps configuration of extensions in the current bundle's namespace assignable.
	Namespace bool `yaml:"namespace" json:"namespace"`
	// NamespaceAny keeps configuration of any feature extension assignable.
	NamespaceAny bool `yaml:"namespaceAny" json:"namespaceAny"`
}

// AlterSettings control the data clean-up done by the alter method.
type AlterSettings struct {
	Core            bool `yaml:"core" json:"core"`
	UUID            bool `yaml:"uuid" json:"uuid"`
	UserPermissions bool `yaml:"userPermissions" json:"userPermissions"`
}

// AssignmentSettings is the per-method configuration of a bundle.
type AssignmentSettings struct {
	Enabled bool           `yaml:"enabled" json:"enabled"`
	Weight  int            `yaml:"weight" json:"weight"`
	Types   TypeSettings   `yaml:"types,omitempty" json:"types,omitempty"`
	Curated bool           `yaml:"curated,omitempty" json:"curated,omitempty"`
	Module  ModuleSettings `yaml:"module,omitempty" json:"module,omitempty"`
	Alter   AlterSettings  `yaml:"alter,omitempty" json:"alter,omitempty"`
	// Regex excludes every item whose name matches.
	Regex string `yaml:"regex,omitempty" json:"regex,omitempty"`
	// DescriptionTemplate is a text/template used for generated package descriptions.
	DescriptionTemplate string `yaml:"descriptionTemplate,omitempty" json:"descriptionTemplate,omitempty"`
}

// Bundle is a named assignment policy. Non-default bundles prefix the names
// of the packages they produce.
type Bundle struct {
	MachineName string                        `yaml:"machineName" json:"machineName"`
	Name        string                        `yaml:"name" json:"name"`
	Description string                        `yaml:"description,omitempty" json:"description,omitempty"`
	IsProfile   bool                          `yaml:"isProfile,omitempty" json:"isProfile,omitempty"`
	ProfileName string                        `yaml:"profileName,omitempty" json:"profileName,omitempty"`
	Assignments map[string]AssignmentSettings `yaml:"assignments,omitempty" json:"assignments,omitempty"`
}

// NewDefaultBundle returns the identity bundle with the default assignment settings.
func NewDefaultBundle() *Bundle {
	return &Bundle{
		MachineName: DefaultBundleName,
		Name:        "Default",
		Description: "Default package set.",
		Assignments: DefaultAssignments(),
	}
}

// IsDefault reports whether this is the identity bundle.
func (b *Bundle) IsDefault() bool {
	return b == nil || b.MachineName == "" || b.MachineName == DefaultBundleName
}

// GetProfileName returns the profile package name: the configured profile
// name for profile bundles, falling back to the bundle machine name.
func (b *Bundle) GetProfileName() string {
	if b.IsProfile && b.ProfileName != "" {
		return b.ProfileName
	}
	return b.MachineName
}

// IsProfilePackage reports whether name is this bundle's profile package.
func (b *Bundle) IsProfilePackage(name string) bool {
	return b != nil && b.IsProfile && name == b.GetProfileName()
}

// InBundle reports whether name belongs to the bundle's namespace.
func (b *Bundle) InBundle(name string) bool {
	if b.IsDefault() {
		return false
	}
	return b.IsProfilePackage(name) || strings.HasPrefix(name, b.MachineName+"_")
}

// FullName prefixes shortName with the bundle machine name unless the bundle
// is the default or the name is already in the bundle.
func (b *Bundle) FullName(shortName string) string {
	if b.IsDefault() || b.InBundle(shortName) {
		return shortName
	}
	return b.MachineName + "_" + shortName
}

// ShortName strips the bundle prefix from a full name. Profile packages keep
// their name.
func (b *Bundle) ShortName(fullName string) string {
	if b.IsDefault() || b.IsProfilePackage(fullName) || !b.InBundle(fullName) {
		return fullName
	}
	return strings.TrimPrefix(fullName, b.MachineName+"_")
}

// AssignmentSettings returns the settings of method id. The zero value is
// returned for unknown methods.
func (b *Bundle) AssignmentSettings(id string) AssignmentSettings {
	if b == nil || b.Assignments == nil {
		return AssignmentSettings{}
	}
	return b.Assignments[id]
}

// SetAssignmentSettings stores the settings of method id.
func (b *Bundle) SetAssignmentSettings(id string, s AssignmentSettings) {
	if b.Assignments == nil {
		b.Assignments = make(map[string]AssignmentSettings)
	}
	b.Assignments[id] = s
}

// EnabledAssignment is one enabled method with its weight.
type EnabledAssignment struct {
	ID     string
	Weight int
}

// EnabledAssignments returns the enabled methods sorted ascending by weight.
// Equal weights keep alphabetical method order.
func (b *Bundle) EnabledAssignments() []EnabledAssignment {
	if b == nil {
		return nil
	}
	ids := make([]string, 0, len(b.Assignments))
	for id, s := range b.Assignments {
		if s.Enabled {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	enabled := make([]EnabledAssignment, 0, len(ids))
	for _, id := range ids {
		enabled = append(enabled, EnabledAssignment{ID: id, Weight: b.Assignments[id].Weight})
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Weight < enabled[j].Weight
	})
	return enabled
}

// Assignment method identifiers.
const (
	MethodAlter             = "alter"
	MethodBase              = "base"
	MethodCore              = "core"
	MethodDependency        = "dependency"
	MethodExclude           = "exclude"
	MethodExisting          = "existing"
	MethodForwardDependency = "forward_dependency"
	MethodNamespace         = "namespace"
	MethodOptional          = "optional"
	MethodPackages          = "packages"
	MethodProfile           = "profile"
	MethodSite              = "site"
)

// DefaultAssignments returns the assignment settings a new bundle starts with.
func DefaultAssignments() map[string]AssignmentSettings {
	return map[string]AssignmentSettings{
		MethodAlter: {
			Enabled: true,
			Weight:  0,
			Alter:   AlterSettings{Core: true, UUID: true, UserPermissions: true},
		},
		MethodBase: {
			Enabled: true,
			Weight:  -2,
			Types: TypeSettings{
				Config:  []string{"comment_type", "node_type"},
				Content: []string{"user"},
			},
		},
		MethodCore: {
			Enabled: true,
			Weight:  5,
			Types: TypeSettings{
				Config: []string{"date_format", "field_storage_config", "entity_form_mode", "image_style", "menu", "user_role", "entity_view_mode"},
			},
		},
		MethodDependency: {Enabled: true, Weight: 15},
		MethodExclude: {
			Enabled: true,
			Weight:  -5,
			Types:   TypeSettings{Config: []string{"features_bundle"}},
			Curated: true,
			Module:  ModuleSettings{Installed: true, Profile: true, Namespace: true},
		},
		MethodExisting:          {Enabled: true, Weight: 12},
		MethodForwardDependency: {Enabled: true, Weight: 4},
		MethodNamespace:         {Enabled: true, Weight: 0},
		MethodOptional:          {Enabled: true, Weight: 0},
		MethodPackages:          {Enabled: true, Weight: -20},
		MethodProfile: {
			Enabled: true,
			Weight:  10,
			Curated: true,
			Types:   TypeSettings{Config: []string{"block_content_type", "contact_form", "filter_format", "search_page"}},
		},
		MethodSite: {
			Enabled: true,
			Weight:  7,
			Types:   TypeSettings{Config: []string{"action", "editor", "filter_format", "search_page", "block_content_type", "contact_form"}},
		},
	}
}
