package config

import (
	"errors"
	"testing"

	"featurepack/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMachineName(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"example", false},
		{"example_blog2", false},
		{"", true},
		{"2fast", true},
		{"Example", true},
		{"with-dash", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateMachineName("name", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCoreConstraint(t *testing.T) {
	assert.NoError(t, ValidateCoreConstraint("core", ""))
	assert.NoError(t, ValidateCoreConstraint("core", features.DefaultCore))
	assert.NoError(t, ValidateCoreConstraint("core", ">=10.2"))
	assert.Error(t, ValidateCoreConstraint("core", "ten"))
}

func TestValidateSettings_ReportsEveryProblem(t *testing.T) {
	s := Settings{
		Core: "bogus",
		Bundles: []features.Bundle{
			{MachineName: "ok"},
			{MachineName: "Not OK"},
		},
		Types: []features.ConfigType{{ID: "widget"}},
	}

	err := ValidateSettings(s)
	require.Error(t, err)

	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve, 3)
}

func TestValidateSettings_Defaults(t *testing.T) {
	assert.NoError(t, ValidateSettings(DefaultSettings()))
}

func TestFormatValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError("settings", "x", nil))

	base := ValidationError{Field: "core", Message: "is bad"}
	err := FormatValidationError("settings", "featurepack.yaml", base)
	assert.Equal(t, "validation failed for settings 'featurepack.yaml': field 'core': is bad", err.Error())

	err = FormatValidationError("settings", "", base)
	assert.Equal(t, "validation failed for settings: field 'core': is bad", err.Error())
}
