package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"featurepack/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestFileStore_ListAll(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]string{
		"node.type.article.yml": "type: article\n",
		"node.type.page.yml":    "type: page\n",
		"system.site.yml":       "name: Site\n",
		"README.txt":            "not config",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "language"), 0755))

	fs := NewFileStore(dir)

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"all", "", []string{"node.type.article", "node.type.page", "system.site"}},
		{"by prefix", "node.type.", []string{"node.type.article", "node.type.page"}},
		{"no match", "views.view.", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.ListAll(tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileStore_ListAllMissingDirectory(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "absent"))
	names, err := fs.ListAll("")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileStore_Read(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]string{
		"node.type.article.yml": "type: article\nname: Article\ndependencies:\n  module:\n    - menu_ui\n",
		"broken.yml":            "key: [unclosed\n",
	})
	fs := NewFileStore(dir)

	doc, err := fs.Read("node.type.article")
	require.NoError(t, err)
	assert.Equal(t, "Article", doc["name"])

	_, err = fs.Read("node.type.missing")
	assert.True(t, errors.Is(err, features.ErrConfigNotFound))

	_, err = fs.Read("broken")
	var ce ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, CategoryConfig, ce.Category)
	assert.Equal(t, "broken.yml", ce.FileName)

	_, err = fs.Read("")
	assert.Error(t, err)
}

func TestFileStore_ReadMultiple(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]string{
		"a.yml":      "id: a\n",
		"b.yml":      "id: b\n",
		"c.yml":      "id: c\n",
		"broken.yml": "id: [\n",
	})
	fs := NewFileStore(dir).WithConcurrency(2)

	docs, err := fs.ReadMultiple([]string{"a", "b", "c", "broken", "gone"})
	require.NoError(t, err)

	assert.Len(t, docs, 3)
	assert.Equal(t, "b", docs["b"]["id"])
	assert.NotContains(t, docs, "broken")
	assert.NotContains(t, docs, "gone")

	errs := fs.Errors()
	require.Equal(t, 1, errs.Count())
	assert.Equal(t, "broken.yml", errs.Errors[0].FileName)
}

func TestFileStore_ImplementsStoreInterfaces(t *testing.T) {
	var store features.ConfigStore = NewFileStore(t.TempDir())
	_, ok := store.(features.BatchReader)
	assert.True(t, ok)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"node.type.article", "node.type.article"},
		{"../etc/passwd", "_etc_passwd"},
		{"a:b*c", "a_b_c"},
		{"..", "unnamed"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFilename(tt.in))
		})
	}
}
