package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testSite is a site laid out in a temporary directory.
type testSite struct {
	root       string
	configDir  string
	extensions string
	settings   string
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	root := t.TempDir()
	s := &testSite{
		root:       root,
		configDir:  filepath.Join(root, "config", "sync"),
		extensions: filepath.Join(root, "modules"),
		settings:   filepath.Join(root, "featurepack.yaml"),
	}
	require.NoError(t, os.MkdirAll(s.configDir, 0755))
	require.NoError(t, os.MkdirAll(s.extensions, 0755))

	s.writeConfig(t, map[string]string{
		"core.extension.yml": "module:\n  node: 0\n  text: 0\nprofile: standard\n",
		"node.type.article.yml": `type: article
name: Article
dependencies:
  module:
    - menu_ui
`,
		"field.storage.node.body.yml": `id: node.body
dependencies:
  module:
    - node
    - text
`,
		"field.field.node.article.body.yml": `id: node.article.body
label: Body
dependencies:
  config:
    - field.storage.node.body
    - node.type.article
`,
	})
	return s
}

func (s *testSite) writeConfig(t *testing.T, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(s.configDir, name), []byte(content), 0644))
	}
}

func (s *testSite) args() []string {
	return []string{
		"--config-dir", s.configDir,
		"--extensions-dir", s.extensions,
		"--settings", s.settings,
		"--log-level", "error",
	}
}

// executeCommand runs the root command with args after resetting every flag
// variable, returning what was written to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	rootConfigDir, rootExtensionsDir, rootSettingsFile, rootLogLevel = "", "", "", ""
	rootOutputFormat, rootQuiet = "table", false

	assignBundle, assignForce, assignWatch = "", false, false
	listBundle, listPackage, listType, listUnassigned = "", "", "", false
	showBundle = ""
	exportBundle, exportForce, exportDest, exportArchive, exportClean, exportPackages = "", false, "modules/custom", "", false, nil
}
