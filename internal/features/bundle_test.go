package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBundle_Names(t *testing.T) {
	tests := []struct {
		name      string
		bundle    *Bundle
		short     string
		wantFull  string
		wantShort string
	}{
		{name: "nil bundle", bundle: nil, short: "blog", wantFull: "blog", wantShort: "blog"},
		{name: "empty machine name", bundle: &Bundle{}, short: "blog", wantFull: "blog", wantShort: "blog"},
		{name: "default", bundle: NewDefaultBundle(), short: "blog", wantFull: "blog", wantShort: "blog"},
		{name: "named", bundle: &Bundle{MachineName: "example"}, short: "blog", wantFull: "example_blog", wantShort: "blog"},
		{
			name:      "profile package keeps its name",
			bundle:    &Bundle{MachineName: "example", IsProfile: true, ProfileName: "example_profile"},
			short:     "example_profile",
			wantFull:  "example_profile",
			wantShort: "example_profile",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full := tt.bundle.FullName(tt.short)
			assert.Equal(t, tt.wantFull, full)
			assert.Equal(t, tt.wantShort, tt.bundle.ShortName(full))
		})
	}
}

func TestBundle_Profile(t *testing.T) {
	b := &Bundle{MachineName: "example", IsProfile: true}
	assert.Equal(t, "example", b.GetProfileName())
	assert.True(t, b.IsProfilePackage("example"))
	assert.True(t, b.InBundle("example"))
	assert.True(t, b.InBundle("example_blog"))
	assert.False(t, b.InBundle("blog"))

	b.ProfileName = "acme"
	assert.True(t, b.IsProfilePackage("acme"))
	assert.False(t, b.IsProfilePackage("example"))

	plain := &Bundle{MachineName: "example"}
	assert.False(t, plain.IsProfilePackage("example"))
}

func TestBundle_EnabledAssignments(t *testing.T) {
	b := &Bundle{MachineName: "example"}
	b.SetAssignmentSettings("zeta", AssignmentSettings{Enabled: true, Weight: 0})
	b.SetAssignmentSettings("alpha", AssignmentSettings{Enabled: true, Weight: 0})
	b.SetAssignmentSettings("first", AssignmentSettings{Enabled: true, Weight: -10})
	b.SetAssignmentSettings("off", AssignmentSettings{Enabled: false, Weight: -50})
	b.SetAssignmentSettings("last", AssignmentSettings{Enabled: true, Weight: 20})

	var ids []string
	for _, a := range b.EnabledAssignments() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"first", "alpha", "zeta", "last"}, ids)

	assert.Equal(t, 20, b.AssignmentSettings("last").Weight)
	assert.False(t, b.AssignmentSettings("unknown").Enabled)
}

func TestDefaultAssignments(t *testing.T) {
	var ids []string
	for _, a := range NewDefaultBundle().EnabledAssignments() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{
		MethodPackages, MethodExclude, MethodBase,
		MethodAlter, MethodNamespace, MethodOptional,
		MethodForwardDependency, MethodCore, MethodSite,
		MethodProfile, MethodExisting, MethodDependency,
	}, ids)
}
