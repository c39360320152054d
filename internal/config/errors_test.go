package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationErrorWithDetails("/srv/config/a.yml", "a.yml", CategoryConfig, ErrorTypeParse,
		"configuration file is not valid YAML", "line 3: mapping values are not allowed", []string{"Fix the file"})

	assert.Equal(t, "[config] a.yml: configuration file is not valid YAML", err.Error())
	detailed := err.DetailedError()
	assert.Contains(t, detailed, "File: /srv/config/a.yml")
	assert.Contains(t, detailed, "Details: line 3")
	assert.Contains(t, detailed, "    - Fix the file")
}

func TestConfigurationErrorCollection(t *testing.T) {
	c := NewConfigurationErrorCollection()
	assert.False(t, c.HasErrors())
	assert.Equal(t, "no configuration errors", c.Error())
	assert.Equal(t, "No configuration errors", c.GetSummary())

	c.Add(NewConfigurationError("/x/b.yml", "b.yml", CategoryConfig, ErrorTypeParse, "bad b"))
	c.Add(NewConfigurationError("/x/a.yml", "a.yml", CategoryConfig, ErrorTypeParse, "bad a"))
	c.Add(NewConfigurationError("/x/f.yaml", "f.yaml", CategorySettings, ErrorTypeValidation, "bad settings"))

	assert.True(t, c.HasErrors())
	assert.Equal(t, 3, c.Count())
	assert.Len(t, c.GetErrorsByCategory(CategoryConfig), 2)
	assert.Empty(t, c.GetErrorsByCategory(CategoryExtension))
	assert.Contains(t, c.Error(), "3 configuration errors")

	want := "Configuration error summary (3 total):\n" +
		"config: 2 errors\n" +
		"  - a.yml: bad a\n" +
		"  - b.yml: bad b\n" +
		"settings: 1 errors\n" +
		"  - f.yaml: bad settings"
	assert.Equal(t, want, c.GetSummary())
}
