package formatting

import (
	"sort"

	"featurepack/internal/features"
)

// PackageView is the serialisable form of a package.
type PackageView struct {
	MachineName  string   `json:"machineName"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Type         string   `json:"type"`
	Bundle       string   `json:"bundle,omitempty"`
	Status       string   `json:"status"`
	State        string   `json:"state"`
	Directory    string   `json:"directory,omitempty"`
	Config       []string `json:"config"`
	Dependencies []string `json:"dependencies"`
	Excluded     []string `json:"excluded,omitempty"`
	Required     []string `json:"required,omitempty"`
	RequiredAll  bool     `json:"requiredAll,omitempty"`
}

// ItemView is the serialisable form of a configuration item without its data.
type ItemView struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	Type         string `json:"type"`
	Package      string `json:"package,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Subdirectory string `json:"subdirectory"`
	Excluded     bool   `json:"excluded,omitempty"`
}

// BundleView summarises a bundle and its enabled assignment methods.
type BundleView struct {
	MachineName string   `json:"machineName"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Profile     string   `json:"profile,omitempty"`
	Methods     []string `json:"methods"`
}

// NewPackageView converts p.
func NewPackageView(p *features.Package) PackageView {
	config := p.Config()
	sort.Strings(config)
	return PackageView{
		MachineName:  p.MachineName,
		Name:         p.Name,
		Description:  p.Description,
		Type:         p.Type,
		Bundle:       p.Bundle,
		Status:       p.Status.String(),
		State:        p.State.String(),
		Directory:    p.Directory,
		Config:       nonNil(config),
		Dependencies: nonNil(p.Dependencies()),
		Excluded:     p.Excluded,
		Required:     p.Required,
		RequiredAll:  p.RequiredAll,
	}
}

// NewItemView converts item.
func NewItemView(item *features.ConfigurationItem) ItemView {
	return ItemView{
		Name:         item.Name,
		Label:        item.Label,
		Type:         item.Type,
		Package:      item.Package,
		Provider:     item.Provider,
		Subdirectory: item.Subdirectory,
		Excluded:     item.Excluded || item.ProviderExcluded,
	}
}

// NewBundleView converts b.
func NewBundleView(b features.Bundle) BundleView {
	v := BundleView{
		MachineName: b.MachineName,
		Name:        b.Name,
		Description: b.Description,
		Methods:     []string{},
	}
	if b.IsProfile {
		v.Profile = b.GetProfileName()
	}
	for _, m := range b.EnabledAssignments() {
		v.Methods = append(v.Methods, m.ID)
	}
	return v
}

func packageViews(packages []*features.Package) []PackageView {
	out := make([]PackageView, 0, len(packages))
	for _, p := range packages {
		out = append(out, NewPackageView(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MachineName < out[j].MachineName })
	return out
}

func itemViews(items []*features.ConfigurationItem) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemView(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func bundleViews(bundles []features.Bundle) []BundleView {
	out := make([]BundleView, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, NewBundleView(b))
	}
	return out
}

// packageDetail is the document rendered for a single package.
type packageDetail struct {
	Package PackageView `json:"package"`
	Items   []ItemView  `json:"items"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
