package assigner

import (
	"errors"
	"sort"
	"testing"

	"featurepack/internal/extension"
	"featurepack/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersBuiltinMethods(t *testing.T) {
	a := New(newManager(nil), nil)

	assert.Equal(t, []string{
		"alter", "base", "core", "dependency", "exclude", "existing",
		"forward_dependency", "namespace", "optional", "packages", "profile", "site",
	}, a.Methods())
	assert.True(t, a.Bundle().IsDefault())
}

func TestAssigner_Register(t *testing.T) {
	var calls []string
	a := New(newManager(nil), nil)

	require.NoError(t, a.Register(&recordingMethod{id: "custom", calls: &calls}))
	assert.Error(t, a.Register(&recordingMethod{id: "custom", calls: &calls}))
	assert.Error(t, a.Register(&recordingMethod{id: "", calls: &calls}))
	assert.Error(t, a.Register(nil))
}

func TestAssigner_AssignConfigPackagesOrder(t *testing.T) {
	var calls []string
	logger := &recordingLogger{}
	bundle := &features.Bundle{
		MachineName: "example",
		Assignments: map[string]features.AssignmentSettings{
			"heavy":   {Enabled: true, Weight: 5},
			"light":   {Enabled: true, Weight: -1},
			"beta":    {Enabled: true, Weight: 0},
			"alpha":   {Enabled: true, Weight: 0},
			"off":     {Enabled: false, Weight: -100},
			"missing": {Enabled: true, Weight: 1},
		},
	}
	var opts []Option
	for _, id := range []string{"heavy", "light", "beta", "alpha", "off"} {
		opts = append(opts, WithMethod(&recordingMethod{id: id, calls: &calls}))
	}
	opts = append(opts, WithLogger(logger))
	a := New(newManager(nil), bundle, opts...)

	require.NoError(t, a.AssignConfigPackages(false))

	assert.Equal(t, []string{"light", "alpha", "beta", "heavy"}, calls)
	assert.Len(t, logger.warnings, 1)
}

func TestAssigner_AssignConfigPackagesStopsOnError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	bundle := &features.Bundle{
		MachineName: "example",
		Assignments: map[string]features.AssignmentSettings{
			"first":  {Enabled: true, Weight: 0},
			"second": {Enabled: true, Weight: 1},
		},
	}
	a := New(newManager(nil), bundle,
		WithMethod(&recordingMethod{id: "first", calls: &calls, err: boom}),
		WithMethod(&recordingMethod{id: "second", calls: &calls}),
	)

	err := a.AssignConfigPackages(false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "first")
	assert.Equal(t, []string{"first"}, calls)
}

func TestAssigner_ApplyAssignmentMethod(t *testing.T) {
	var calls []string
	a := New(newManager(nil), onlyMethods("example"), WithMethod(&recordingMethod{id: "disabled", calls: &calls}))

	require.NoError(t, a.ApplyAssignmentMethod("disabled", false))
	assert.Equal(t, []string{"disabled"}, calls, "applies even when the bundle does not enable it")

	err := a.ApplyAssignmentMethod("nope", false)
	assert.True(t, errors.Is(err, ErrUnknownMethod))
}

func TestAssigner_Cleanup(t *testing.T) {
	m := newManager(nil, features.NewConfigurationItem("x", nil))
	a := New(m, nil)
	m.InitPackage("empty", "", "", "", nil)
	m.InitPackage("full", "", "", "", nil)
	require.NoError(t, m.AssignConfigPackage("full", []string{"x"}, false))

	assert.Equal(t, []string{"empty"}, a.Cleanup())
	assert.Equal(t, []string{"full"}, m.PackageNames())
}

func TestAssigner_RunDefaultBundle(t *testing.T) {
	m := newManager(nil,
		features.NewConfigurationItem("node.type.article", map[string]interface{}{"uuid": "1234", "_core": map[string]interface{}{"hash": "x"}},
			features.WithType("node_type"), features.WithShortName("article"), features.WithLabel("Article")),
		newItem("field.storage.node.field_tags", "field_storage_config", "node.field_tags", nil),
		newItem("field.field.node.article.field_tags", "field_config", "node.article.field_tags",
			dependsOn("node.type.article", "field.storage.node.field_tags")),
		newItem("core.entity_view_display.node.article.default", "entity_view_display", "node.article.default",
			dependsOn("field.field.node.article.field_tags", "node.type.article")),
		newItem("views.view.article_archive", "view", "article_archive", nil),
		newItem("user.role.editor", "user_role", "editor", map[string]interface{}{
			"uuid":        "5678",
			"permissions": []interface{}{"access content"},
		}),
		newItem("filter.format.basic_html", "filter_format", "basic_html", nil),
		features.NewConfigurationItem("system.site", map[string]interface{}{"name": "Example"}),
	)
	a := New(m, nil)

	packages, err := a.Run(false)
	require.NoError(t, err)
	assert.NotEmpty(t, a.SessionID())

	assert.ElementsMatch(t, []string{"article", "core", "site"}, keys(packages))

	article := packages["article"]
	assert.Equal(t, "Article", article.Name)
	assert.Equal(t, "Provides article content type and related configuration.", article.Description)
	assert.ElementsMatch(t, []string{
		"node.type.article",
		"views.view.article_archive",
		"field.field.node.article.field_tags",
		"core.entity_view_display.node.article.default",
	}, article.Config())
	assert.Equal(t, []string{"core", "field", "node", "views"}, article.Dependencies())

	assert.ElementsMatch(t, []string{"field.storage.node.field_tags", "user.role.editor"}, packages["core"].Config())
	assert.Equal(t, []string{"filter.format.basic_html"}, packages["site"].Config())

	c, err := m.ConfigCollection(false)
	require.NoError(t, err)
	site, _ := c.Get("system.site")
	assert.True(t, site.Excluded)
	assert.Empty(t, site.Package)

	editor, _ := c.Get("user.role.editor")
	assert.NotContains(t, editor.Data, "uuid")
	assert.Equal(t, []interface{}{}, editor.Data["permissions"])

	articleType, _ := c.Get("node.type.article")
	assert.NotContains(t, articleType.Data, "_core")

	assert.NoError(t, m.Verify(packages))
}

func TestAssigner_RunNamedBundle(t *testing.T) {
	registry := extension.NewRegistry(
		&extension.Extension{
			Name:          "example_blog",
			Installed:     true,
			Info:          extension.Info{Name: "Example Blog"},
			Feature:       &extension.FeatureInfo{Bundle: "example", Excluded: []string{"views.view.blog_admin"}},
			InstallConfig: []string{"node.type.blog"},
		},
		&extension.Extension{Name: "contrib", Installed: true, InstallConfig: []string{"contrib.settings"}},
	)
	m := newManager([]features.Option{features.WithExtensions(registry)},
		features.NewConfigurationItem("node.type.blog", nil,
			features.WithType("node_type"), features.WithShortName("blog"), features.WithProvider("example_blog")),
		newItem("views.view.blog_admin", "view", "blog_admin", nil),
		features.NewConfigurationItem("contrib.settings", nil, features.WithProvider("contrib")),
	)
	bundle := features.NewDefaultBundle()
	bundle.MachineName = "example"
	bundle.Name = "Example"
	a := New(m, bundle)

	packages, err := a.Run(false)
	require.NoError(t, err)

	assert.Equal(t, []string{"example_blog"}, keys(packages))
	blog := packages["example_blog"]
	assert.Equal(t, "example_blog", blog.MachineName)
	assert.Equal(t, features.StatusInstalled, blog.Status)
	assert.Equal(t, []string{"node.type.blog"}, blog.Config())

	c, _ := m.ConfigCollection(false)
	assert.Equal(t, "example_blog", owner(c, "node.type.blog"))
	assert.Equal(t, "", owner(c, "views.view.blog_admin"), "excluded by the feature")
	contrib, _ := c.Get("contrib.settings")
	assert.True(t, contrib.ProviderExcluded)
	assert.Empty(t, contrib.Package)

	t.Run("rerun starts from scratch", func(t *testing.T) {
		again, err := a.Run(false)
		require.NoError(t, err)
		assert.Equal(t, []string{"example_blog"}, keys(again))
		assert.Equal(t, []string{"node.type.blog"}, again["example_blog"].Config())
	})
}

func TestAssigner_RunProfileBundle(t *testing.T) {
	m := newManager(nil,
		features.NewConfigurationItem("system.theme", nil),
		newItem("block.block.olivero_branding", "block", "olivero_branding", nil),
		newItem("filter.format.basic_html", "filter_format", "basic_html", nil),
		features.NewConfigurationItem("acme.settings", nil, features.WithProvider("acme")),
		newItem("node.type.page", "node_type", "page", nil),
	)
	bundle := onlyMethods("acme", features.MethodProfile)
	bundle.IsProfile = true
	bundle.Name = "Acme"
	settings := bundle.Assignments[features.MethodProfile]
	settings.Types.Config = []string{"filter_format"}
	bundle.Assignments[features.MethodProfile] = settings

	packages, err := New(m, bundle).Run(false)
	require.NoError(t, err)

	require.Equal(t, []string{"acme"}, keys(packages))
	profile := packages["acme"]
	assert.Equal(t, features.TypeProfile, profile.Type)
	assert.Equal(t, "Acme", profile.Name)
	assert.Equal(t, "acme", profile.FullName())
	assert.ElementsMatch(t, []string{
		"acme.settings", "block.block.olivero_branding", "filter.format.basic_html", "system.theme",
	}, profile.Config())
}

func TestAssigner_RunPropagatesLoadErrors(t *testing.T) {
	m := features.NewManager(nil, features.WithLogger(&recordingLogger{}))
	_, err := New(m, nil).Run(false)
	assert.Error(t, err)
}

func keys(packages map[string]*features.Package) []string {
	out := make([]string, 0, len(packages))
	for k := range packages {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
