package formatting

import (
	"fmt"

	"featurepack/internal/features"

	"sigs.k8s.io/yaml"
)

// YAMLFormatter provides YAML output formatting. Field names follow the JSON
// tags so both outputs share one schema.
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{
		options: options,
	}
}

// FormatPackageList formats packages as a YAML sequence
func (f *YAMLFormatter) FormatPackageList(packages []*features.Package) error {
	return f.write(packageViews(packages))
}

// FormatPackageDetail formats one package and its items as YAML
func (f *YAMLFormatter) FormatPackageDetail(p *features.Package, items []*features.ConfigurationItem) error {
	return f.write(packageDetail{Package: NewPackageView(p), Items: itemViews(items)})
}

// FormatItemList formats configuration items as a YAML sequence
func (f *YAMLFormatter) FormatItemList(items []*features.ConfigurationItem) error {
	return f.write(itemViews(items))
}

// FormatBundleList formats bundles as a YAML sequence
func (f *YAMLFormatter) FormatBundleList(bundles []features.Bundle) error {
	return f.write(bundleViews(bundles))
}

// FormatData formats generic data as YAML
func (f *YAMLFormatter) FormatData(data interface{}) error {
	return f.write(data)
}

// SetOptions updates the formatter options
func (f *YAMLFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *YAMLFormatter) GetOptions() Options {
	return f.options
}

func (f *YAMLFormatter) write(data interface{}) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to format YAML: %w", err)
	}
	_, err = f.options.writer().Write(out)
	return err
}
