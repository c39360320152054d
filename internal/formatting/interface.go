// Package formatting renders packages, configuration items and bundles for
// the command line in console, JSON, YAML or table form.
package formatting

import (
	"io"
	"os"

	"featurepack/internal/features"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatConsole OutputFormat = "console" // Simple console output
	FormatJSON    OutputFormat = "json"    // JSON output
	FormatYAML    OutputFormat = "yaml"    // YAML output
	FormatTable   OutputFormat = "table"   // Rich table output
)

// ParseOutputFormat maps a --output flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch OutputFormat(s) {
	case FormatConsole, FormatJSON, FormatYAML, FormatTable:
		return OutputFormat(s), true
	case "":
		return FormatTable, true
	default:
		return "", false
	}
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Quiet  bool // Suppress decorative elements
	// Out receives the rendered output; os.Stdout when nil.
	Out io.Writer
}

func (o Options) writer() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// Formatter renders the results of an assignment run.
type Formatter interface {
	FormatPackageList(packages []*features.Package) error
	FormatPackageDetail(p *features.Package, items []*features.ConfigurationItem) error
	FormatItemList(items []*features.ConfigurationItem) error
	FormatBundleList(bundles []features.Bundle) error

	// Generic data formatting
	FormatData(data interface{}) error

	// Configuration
	SetOptions(options Options)
	GetOptions() Options
}

// Factory creates formatters for different output formats
type Factory interface {
	CreateFormatter(options Options) Formatter
}

// NewFactory creates a new formatter factory
func NewFactory() Factory {
	return &factory{}
}

// factory implements the Factory interface
type factory struct{}

// CreateFormatter creates the appropriate formatter based on options
func (f *factory) CreateFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		return NewTableFormatter(options)
	case FormatConsole:
		fallthrough
	default:
		return NewConsoleFormatter(options)
	}
}
