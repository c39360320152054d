package formatting

import (
	"bytes"
	"encoding/json"
	"testing"

	"featurepack/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func samplePackages() []*features.Package {
	blog := features.NewPackage("example_blog")
	blog.Name = "Blog"
	blog.Status = features.StatusInstalled
	blog.AppendConfig("node.type.blog", "field.storage.node.body")
	blog.AppendDependency("node", "text")

	page := features.NewPackage("example_page")
	page.Name = "Page"
	page.AppendConfig("node.type.page")
	return []*features.Package{page, blog}
}

func sampleItems() []*features.ConfigurationItem {
	a := features.NewConfigurationItem("node.type.blog", nil, features.WithType("node_type"))
	a.Package = "example_blog"
	b := features.NewConfigurationItem("system.site", nil, features.WithType(features.SimpleConfig))
	b.Excluded = true
	return []*features.ConfigurationItem{b, a}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in   string
		want OutputFormat
		ok   bool
	}{
		{"", FormatTable, true},
		{"json", FormatJSON, true},
		{"yaml", FormatYAML, true},
		{"console", FormatConsole, true},
		{"table", FormatTable, true},
		{"xml", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseOutputFormat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFactory_CreateFormatter(t *testing.T) {
	f := NewFactory()
	assert.IsType(t, &JSONFormatter{}, f.CreateFormatter(Options{Format: FormatJSON}))
	assert.IsType(t, &YAMLFormatter{}, f.CreateFormatter(Options{Format: FormatYAML}))
	assert.IsType(t, &TableFormatter{}, f.CreateFormatter(Options{Format: FormatTable}))
	assert.IsType(t, &ConsoleFormatter{}, f.CreateFormatter(Options{Format: "unknown"}))
}

func TestJSONFormatter_PackageList(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(Options{Format: FormatJSON, Out: &buf})
	require.NoError(t, f.FormatPackageList(samplePackages()))

	var got []PackageView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "example_blog", got[0].MachineName, "sorted by machine name")
	assert.Equal(t, []string{"field.storage.node.body", "node.type.blog"}, got[0].Config)
	assert.Equal(t, []string{"node", "text"}, got[0].Dependencies)
	assert.Equal(t, "installed", got[0].Status)
	assert.Equal(t, []string{}, got[1].Dependencies)
}

func TestYAMLFormatter_PackageDetail(t *testing.T) {
	var buf bytes.Buffer
	f := NewYAMLFormatter(Options{Format: FormatYAML, Out: &buf})
	pkgs := samplePackages()
	require.NoError(t, f.FormatPackageDetail(pkgs[1], sampleItems()[1:]))

	var got packageDetail
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "example_blog", got.Package.MachineName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "node.type.blog", got.Items[0].Name)
}

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(Options{Format: FormatConsole, Out: &buf})

	require.NoError(t, f.FormatPackageList(samplePackages()))
	out := buf.String()
	assert.Contains(t, out, "Packages (2):")
	assert.Contains(t, out, "example_blog")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("example_blog")), bytes.Index(buf.Bytes(), []byte("example_page")))

	buf.Reset()
	require.NoError(t, f.FormatItemList(sampleItems()))
	assert.Contains(t, buf.String(), "node.type.blog")
	assert.Contains(t, buf.String(), "example_blog")

	buf.Reset()
	require.NoError(t, f.FormatPackageList(nil))
	assert.Equal(t, "No packages.\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(Options{Format: FormatTable, Out: &buf})

	require.NoError(t, f.FormatPackageList(samplePackages()))
	assert.Contains(t, buf.String(), "example_page")
	assert.Contains(t, buf.String(), "node, text")

	buf.Reset()
	require.NoError(t, f.FormatBundleList([]features.Bundle{*features.NewDefaultBundle()}))
	assert.Contains(t, buf.String(), "default")
	assert.Contains(t, buf.String(), "packages")

	buf.Reset()
	require.NoError(t, f.FormatItemList(nil))
	assert.Contains(t, buf.String(), "No configuration found")
}

func TestNewBundleView(t *testing.T) {
	b := features.Bundle{
		MachineName: "example",
		Name:        "Example",
		IsProfile:   true,
		Assignments: map[string]features.AssignmentSettings{
			features.MethodSite:     {Enabled: true, Weight: 7},
			features.MethodPackages: {Enabled: true, Weight: -20},
			features.MethodAlter:    {Enabled: false},
		},
	}
	v := NewBundleView(b)
	assert.Equal(t, []string{features.MethodPackages, features.MethodSite}, v.Methods)
	assert.Equal(t, b.GetProfileName(), v.Profile)
}
