package formatting

import (
	"encoding/json"
	"fmt"

	"featurepack/internal/features"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	return &JSONFormatter{
		options: options,
	}
}

// FormatPackageList formats packages as a JSON array
func (f *JSONFormatter) FormatPackageList(packages []*features.Package) error {
	return f.encode(packageViews(packages))
}

// FormatPackageDetail formats one package and its items as JSON
func (f *JSONFormatter) FormatPackageDetail(p *features.Package, items []*features.ConfigurationItem) error {
	return f.encode(packageDetail{Package: NewPackageView(p), Items: itemViews(items)})
}

// FormatItemList formats configuration items as a JSON array
func (f *JSONFormatter) FormatItemList(items []*features.ConfigurationItem) error {
	return f.encode(itemViews(items))
}

// FormatBundleList formats bundles as a JSON array
func (f *JSONFormatter) FormatBundleList(bundles []features.Bundle) error {
	return f.encode(bundleViews(bundles))
}

// FormatData formats generic data as JSON
func (f *JSONFormatter) FormatData(data interface{}) error {
	return f.encode(data)
}

// SetOptions updates the formatter options
func (f *JSONFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *JSONFormatter) GetOptions() Options {
	return f.options
}

func (f *JSONFormatter) encode(v interface{}) error {
	enc := json.NewEncoder(f.options.writer())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}
	return nil
}
