package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRegistry_ForName(t *testing.T) {
	r := NewTypeRegistry(
		ConfigType{ID: "short", Prefix: "core.entity"},
		ConfigType{ID: "long", Prefix: "core.entity_view_display"},
		ConfigType{ID: "node_type", Prefix: "node.type"},
	)

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{name: "node.type.article", want: "node_type", wantOK: true},
		{name: "core.entity_view_display.node.article.default", want: "long", wantOK: true},
		{name: "core.entity.thing", want: "short", wantOK: true},
		{name: "node.settings", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.ForName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.ID)
			}
		})
	}
}

func TestTypeRegistry_Label(t *testing.T) {
	r := DefaultTypeRegistry()
	assert.Equal(t, "Simple configuration", r.Label(SimpleConfig))
	assert.Equal(t, "View", r.Label("view"))
	assert.Equal(t, "mystery", r.Label("mystery"))

	r.Register(ConfigType{ID: "mystery", Label: "Mystery", Prefix: "my.stery"})
	assert.Equal(t, "Mystery", r.Label("mystery"))

	list := r.List()
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}
