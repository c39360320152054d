package formatting

import (
	"fmt"
	"strings"

	"featurepack/internal/features"
)

// ConsoleFormatter provides simple console output formatting
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) Formatter {
	return &ConsoleFormatter{
		options: options,
	}
}

// FormatPackageList prints one line per package
func (f *ConsoleFormatter) FormatPackageList(packages []*features.Package) error {
	if len(packages) == 0 {
		return f.println("No packages.")
	}

	var output []string
	if !f.options.Quiet {
		output = append(output, fmt.Sprintf("Packages (%d):", len(packages)))
	}
	for i, p := range packageViews(packages) {
		output = append(output, fmt.Sprintf("  %d. %-30s %3d items - %s", i+1, p.MachineName, len(p.Config), p.Status))
	}
	return f.println(strings.Join(output, "\n"))
}

// FormatPackageDetail prints a package, its dependencies and its items
func (f *ConsoleFormatter) FormatPackageDetail(p *features.Package, items []*features.ConfigurationItem) error {
	v := NewPackageView(p)
	var output []string
	output = append(output, fmt.Sprintf("Package: %s", v.MachineName))
	output = append(output, fmt.Sprintf("Name: %s", v.Name))
	if v.Description != "" {
		output = append(output, fmt.Sprintf("Description: %s", v.Description))
	}
	output = append(output, fmt.Sprintf("Type: %s", v.Type))
	output = append(output, fmt.Sprintf("Status: %s", v.Status))
	if v.Bundle != "" {
		output = append(output, fmt.Sprintf("Bundle: %s", v.Bundle))
	}
	if len(v.Dependencies) > 0 {
		output = append(output, fmt.Sprintf("Dependencies: %s", strings.Join(v.Dependencies, ", ")))
	}
	output = append(output, fmt.Sprintf("Configuration (%d):", len(items)))
	for _, item := range itemViews(items) {
		output = append(output, fmt.Sprintf("  - %s (%s)", item.Name, item.Type))
	}
	return f.println(strings.Join(output, "\n"))
}

// FormatItemList prints one line per configuration item
func (f *ConsoleFormatter) FormatItemList(items []*features.ConfigurationItem) error {
	if len(items) == 0 {
		return f.println("No configuration.")
	}

	var output []string
	if !f.options.Quiet {
		output = append(output, fmt.Sprintf("Configuration (%d):", len(items)))
	}
	for _, item := range itemViews(items) {
		owner := item.Package
		if owner == "" {
			owner = "-"
		}
		output = append(output, fmt.Sprintf("  %-50s %-25s %s", item.Name, item.Type, owner))
	}
	return f.println(strings.Join(output, "\n"))
}

// FormatBundleList prints one line per bundle
func (f *ConsoleFormatter) FormatBundleList(bundles []features.Bundle) error {
	if len(bundles) == 0 {
		return f.println("No bundles.")
	}

	var output []string
	for _, b := range bundleViews(bundles) {
		line := fmt.Sprintf("  %-20s %s", b.MachineName, b.Name)
		if b.Profile != "" {
			line += fmt.Sprintf(" (profile %s)", b.Profile)
		}
		output = append(output, line)
	}
	return f.println(strings.Join(output, "\n"))
}

// FormatData formats generic data (fallback to simple text representation)
func (f *ConsoleFormatter) FormatData(data interface{}) error {
	switch d := data.(type) {
	case map[string]interface{}, []interface{}:
		return f.println(PrettyJSON(d))
	case string:
		return f.println(d)
	default:
		return f.println(fmt.Sprintf("%v", d))
	}
}

// SetOptions updates the formatter options
func (f *ConsoleFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *ConsoleFormatter) GetOptions() Options {
	return f.options
}

func (f *ConsoleFormatter) println(s string) error {
	_, err := fmt.Fprintln(f.options.writer(), s)
	return err
}
