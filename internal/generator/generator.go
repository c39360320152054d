package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"featurepack/internal/extension"
	"featurepack/internal/features"
	"featurepack/pkg/logging"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnresolvedMember is returned by Prepare when a package lists an item
	// that does not exist or is owned by another package.
	ErrUnresolvedMember = errors.New("package member does not resolve")

	// ErrInvalidDependencies is returned by Prepare when a dependency list is
	// unsorted, duplicated or names the package itself.
	ErrInvalidDependencies = errors.New("invalid package dependencies")
)

// DefaultPackageGroup is the info file "package" value of packages outside a
// named bundle.
const DefaultPackageGroup = "Custom"

// Generator renders packages into files.
type Generator struct {
	collection *features.Collection
}

// New creates a generator reading item data from c.
func New(c *features.Collection) *Generator {
	return &Generator{collection: c}
}

// infoFile is the layout of <name>.info.yml.
type infoFile struct {
	Name                   string                 `yaml:"name"`
	Type                   string                 `yaml:"type"`
	Description            string                 `yaml:"description,omitempty"`
	CoreVersionRequirement string                 `yaml:"core_version_requirement,omitempty"`
	Package                string                 `yaml:"package,omitempty"`
	Version                string                 `yaml:"version,omitempty"`
	Dependencies           []string               `yaml:"dependencies,omitempty"`
	Themes                 []string               `yaml:"themes,omitempty"`
	Extra                  map[string]interface{} `yaml:",inline"`
}

var infoKeys = map[string]bool{
	"name": true, "type": true, "description": true, "core": true,
	"core_version_requirement": true, "package": true, "version": true,
	"dependencies": true, "themes": true,
}

// Prepare validates every package and fills its Files with the info file,
// the features file and one file per member item. Packages are validated
// before any of them is touched.
func (g *Generator) Prepare(packages map[string]*features.Package, bundle *features.Bundle) error {
	keys := SortedKeys(packages)
	for _, key := range keys {
		if err := g.validate(key, packages[key]); err != nil {
			return err
		}
	}
	for _, key := range keys {
		if err := g.render(packages[key], bundle); err != nil {
			return fmt.Errorf("failed to render package %s: %w", key, err)
		}
	}
	logging.Debug("Generator", "Prepared %d packages", len(keys))
	return nil
}

func (g *Generator) validate(key string, p *features.Package) error {
	for _, name := range p.Config() {
		item, ok := g.collection.Get(name)
		if !ok {
			return fmt.Errorf("%w: %s lists unknown item %s", ErrUnresolvedMember, key, name)
		}
		if item.Package != key {
			return fmt.Errorf("%w: %s lists %s which belongs to %q", ErrUnresolvedMember, key, name, item.Package)
		}
	}
	deps := p.Dependencies()
	for i, d := range deps {
		if d == p.MachineName || d == p.FullName() {
			return fmt.Errorf("%w: %s depends on itself", ErrInvalidDependencies, key)
		}
		if i > 0 && deps[i-1] >= d {
			return fmt.Errorf("%w: %s dependencies are not sorted and unique", ErrInvalidDependencies, key)
		}
	}
	return nil
}

func (g *Generator) render(p *features.Package, bundle *features.Bundle) error {
	p.Files = nil
	name := p.FullName()

	info, err := g.infoFile(p, bundle)
	if err != nil {
		return err
	}
	p.AppendFile(features.File{Filename: name + ".info.yml", Content: info})

	feature, err := featuresFile(p)
	if err != nil {
		return err
	}
	p.AppendFile(features.File{Filename: name + ".features.yml", Content: feature})

	for _, itemName := range p.Config() {
		item, _ := g.collection.Get(itemName)
		content, err := marshal(item.Data)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", itemName, err)
		}
		p.AppendFile(features.File{
			Filename:     itemName + ".yml",
			Subdirectory: "config/" + item.Subdirectory,
			Content:      content,
		})
	}
	return nil
}

func (g *Generator) infoFile(p *features.Package, bundle *features.Bundle) (string, error) {
	info := infoFile{
		Name:                   p.Name,
		Type:                   p.Type,
		Description:            p.Description,
		CoreVersionRequirement: p.Core,
		Package:                packageGroup(bundle),
		Version:                p.Version,
		Dependencies:           p.Dependencies(),
		Themes:                 p.Themes,
	}
	for k, v := range p.Info {
		if infoKeys[k] {
			continue
		}
		if info.Extra == nil {
			info.Extra = make(map[string]interface{})
		}
		info.Extra[k] = v
	}
	return marshal(info)
}

func packageGroup(bundle *features.Bundle) string {
	if bundle.IsDefault() {
		return DefaultPackageGroup
	}
	if bundle.Name != "" {
		return bundle.Name
	}
	return bundle.MachineName
}

// featuresFile renders <name>.features.yml. A package without bundle,
// required or excluded settings gets the bare marker "true".
func featuresFile(p *features.Package) (string, error) {
	fi := extension.FeatureInfo{
		Excluded: p.Excluded,
		Required: extension.Required{All: p.RequiredAll, Items: p.Required},
	}
	if p.Bundle != "" && p.Bundle != features.DefaultBundleName {
		fi.Bundle = p.Bundle
	}
	if fi.Bundle == "" && fi.Required.IsZero() && len(fi.Excluded) == 0 {
		return "true\n", nil
	}
	return marshal(fi)
}

func marshal(v interface{}) (string, error) {
	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SortedKeys returns the keys of packages in ascending order.
func SortedKeys(packages map[string]*features.Package) []string {
	keys := make([]string, 0, len(packages))
	for k := range packages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sorted returns the packages ordered by key.
func Sorted(packages map[string]*features.Package) []*features.Package {
	out := make([]*features.Package, 0, len(packages))
	for _, k := range SortedKeys(packages) {
		out = append(out, packages[k])
	}
	return out
}
