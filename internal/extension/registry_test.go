package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Provider(t *testing.T) {
	r := NewRegistry(
		&Extension{Name: "a_module", InstallConfig: []string{"shared.item", "only.a"}},
		&Extension{Name: "b_module", InstallConfig: []string{"shared.item"}, Installed: true},
		&Extension{Name: "c_module", OptionalConfig: []string{"shared.item"}, Installed: true},
	)

	assert.Equal(t, "b_module", r.Provider("shared.item"), "installed extension wins, ties by name")
	assert.Equal(t, "a_module", r.Provider("only.a"))
	assert.Equal(t, "", r.Provider("nobody.ships.this"))
}

func TestRegistry_Activate(t *testing.T) {
	r := NewRegistry(
		&Extension{Name: "node"},
		&Extension{Name: "standard", Info: Info{Type: TypeProfile}},
		&Extension{Name: "olivero", Info: Info{Type: TypeTheme}},
		&Extension{Name: "unused"},
	)

	err := r.Activate(map[string]interface{}{
		"module":  map[string]interface{}{"node": 0, "standard": 1000},
		"theme":   map[string]interface{}{"olivero": 0},
		"profile": "standard",
	})
	require.NoError(t, err)

	assert.True(t, r.IsInstalled("node"))
	assert.True(t, r.IsInstalled("olivero"))
	assert.True(t, r.IsInstalled("standard"))
	assert.False(t, r.IsInstalled("unused"))
	assert.False(t, r.IsInstalled("missing"))
	assert.Equal(t, "standard", r.InstallProfile())
}

func TestRegistry_ActivateRejectsMalformed(t *testing.T) {
	r := NewRegistry()
	err := r.Activate(map[string]interface{}{"module": []interface{}{"node"}})
	assert.Error(t, err)
}

func TestRegistry_Features(t *testing.T) {
	r := NewRegistry(
		&Extension{Name: "plain"},
		&Extension{Name: "example_blog", Feature: &FeatureInfo{Bundle: "example"}},
	)

	features := r.Features()
	require.Len(t, features, 1)
	assert.Equal(t, "example_blog", features[0].Name)
	assert.Equal(t, "example", features[0].BundleName())
}
