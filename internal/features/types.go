package features

import (
	"sort"
	"strings"
)

// ConfigType describes one configuration entity type. Names of its objects
// are "<Prefix>.<id>", e.g. node_type objects are "node.type.<id>".
type ConfigType struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	Provider string `yaml:"provider" json:"provider"`
	Prefix   string `yaml:"prefix" json:"prefix"`
}

// TypeRegistry indexes configuration entity types.
type TypeRegistry struct {
	types map[string]ConfigType
}

// NewTypeRegistry creates a registry holding types.
func NewTypeRegistry(types ...ConfigType) *TypeRegistry {
	r := &TypeRegistry{types: make(map[string]ConfigType)}
	for _, t := range types {
		r.Register(t)
	}
	return r
}

// DefaultTypeRegistry returns the configuration entity types shipped by a
// standard site.
func DefaultTypeRegistry() *TypeRegistry {
	return NewTypeRegistry(
		ConfigType{ID: "action", Label: "Action", Provider: "system", Prefix: "system.action"},
		ConfigType{ID: "base_field_override", Label: "Base field override", Provider: "core", Prefix: "core.base_field_override"},
		ConfigType{ID: "block", Label: "Block", Provider: "block", Prefix: "block.block"},
		ConfigType{ID: "block_content_type", Label: "Custom block type", Provider: "block_content", Prefix: "block_content.type"},
		ConfigType{ID: "comment_type", Label: "Comment type", Provider: "comment", Prefix: "comment.type"},
		ConfigType{ID: "contact_form", Label: "Contact form", Provider: "contact", Prefix: "contact.form"},
		ConfigType{ID: "date_format", Label: "Date format", Provider: "core", Prefix: "core.date_format"},
		ConfigType{ID: "editor", Label: "Text Editor", Provider: "editor", Prefix: "editor.editor"},
		ConfigType{ID: "entity_form_display", Label: "Entity form display", Provider: "core", Prefix: "core.entity_form_display"},
		ConfigType{ID: "entity_form_mode", Label: "Form mode", Provider: "core", Prefix: "core.entity_form_mode"},
		ConfigType{ID: "entity_view_display", Label: "Entity view display", Provider: "core", Prefix: "core.entity_view_display"},
		ConfigType{ID: "entity_view_mode", Label: "View mode", Provider: "core", Prefix: "core.entity_view_mode"},
		ConfigType{ID: "features_bundle", Label: "Features bundle", Provider: "features", Prefix: "features.bundle"},
		ConfigType{ID: "field_config", Label: "Field", Provider: "field", Prefix: "field.field"},
		ConfigType{ID: "field_storage_config", Label: "Field storage", Provider: "field", Prefix: "field.storage"},
		ConfigType{ID: "filter_format", Label: "Text format", Provider: "filter", Prefix: "filter.format"},
		ConfigType{ID: "image_style", Label: "Image style", Provider: "image", Prefix: "image.style"},
		ConfigType{ID: "menu", Label: "Menu", Provider: "system", Prefix: "system.menu"},
		ConfigType{ID: "node_type", Label: "Content type", Provider: "node", Prefix: "node.type"},
		ConfigType{ID: "search_page", Label: "Search page", Provider: "search", Prefix: "search.page"},
		ConfigType{ID: "taxonomy_vocabulary", Label: "Taxonomy vocabulary", Provider: "taxonomy", Prefix: "taxonomy.vocabulary"},
		ConfigType{ID: "tour", Label: "Tour", Provider: "tour", Prefix: "tour.tour"},
		ConfigType{ID: "user_role", Label: "Role", Provider: "user", Prefix: "user.role"},
		ConfigType{ID: "view", Label: "View", Provider: "views", Prefix: "views.view"},
	)
}

// Register adds or replaces a type.
func (r *TypeRegistry) Register(t ConfigType) {
	if r.types == nil {
		r.types = make(map[string]ConfigType)
	}
	r.types[t.ID] = t
}

// Get returns the type with the given id.
func (r *TypeRegistry) Get(id string) (ConfigType, bool) {
	t, ok := r.types[id]
	return t, ok
}

// List returns all types sorted by id.
func (r *TypeRegistry) List() []ConfigType {
	out := make([]ConfigType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ForName returns the type whose prefix matches name. When several prefixes
// match, the longest wins. Simple configuration has no type.
func (r *TypeRegistry) ForName(name string) (ConfigType, bool) {
	var best ConfigType
	found := false
	for _, t := range r.types {
		if t.Prefix == "" || !strings.HasPrefix(name, t.Prefix+".") {
			continue
		}
		if !found || len(t.Prefix) > len(best.Prefix) {
			best = t
			found = true
		}
	}
	return best, found
}

// Label returns the human label of type id, SimpleConfig included.
func (r *TypeRegistry) Label(id string) string {
	if id == SimpleConfig {
		return "Simple configuration"
	}
	if t, ok := r.types[id]; ok {
		return t.Label
	}
	return id
}
