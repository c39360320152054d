package formatting

import (
	"fmt"
	"strings"

	"featurepack/internal/features"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatPackageList renders packages as a table
func (f *TableFormatter) FormatPackageList(packages []*features.Package) error {
	if len(packages) == 0 {
		return f.formatEmptyMessage("📦", "No packages found")
	}

	t := f.createTable()
	t.AppendHeader(f.header("PACKAGE", "NAME", "ITEMS", "DEPENDENCIES", "STATUS"))
	for _, p := range packageViews(packages) {
		t.AppendRow(table.Row{
			text.FgHiCyan.Sprint(p.MachineName),
			p.Name,
			len(p.Config),
			truncate(strings.Join(p.Dependencies, ", "), 60),
			f.colorStatus(p.Status),
		})
	}
	t.Render()
	return f.formatTotal(len(packages), "packages")
}

// FormatPackageDetail renders the package as key-value pairs followed by its items
func (f *TableFormatter) FormatPackageDetail(p *features.Package, items []*features.ConfigurationItem) error {
	v := NewPackageView(p)

	t := f.createTable()
	t.AppendHeader(f.header("PROPERTY", "VALUE"))
	t.AppendRow(table.Row{text.FgHiCyan.Sprint("machineName"), v.MachineName})
	t.AppendRow(table.Row{text.FgHiCyan.Sprint("name"), v.Name})
	if v.Description != "" {
		t.AppendRow(table.Row{text.FgHiCyan.Sprint("description"), truncate(v.Description, 100)})
	}
	t.AppendRow(table.Row{text.FgHiCyan.Sprint("type"), v.Type})
	t.AppendRow(table.Row{text.FgHiCyan.Sprint("status"), f.colorStatus(v.Status)})
	t.AppendRow(table.Row{text.FgHiCyan.Sprint("directory"), v.Directory})
	t.AppendRow(table.Row{text.FgHiCyan.Sprint("dependencies"), strings.Join(v.Dependencies, "\n")})
	t.Render()

	return f.FormatItemList(items)
}

// FormatItemList renders configuration items as a table
func (f *TableFormatter) FormatItemList(items []*features.ConfigurationItem) error {
	if len(items) == 0 {
		return f.formatEmptyMessage("📋", "No configuration found")
	}

	t := f.createTable()
	t.AppendHeader(f.header("NAME", "TYPE", "PACKAGE", "PROVIDER"))
	for _, item := range itemViews(items) {
		owner := item.Package
		if owner == "" {
			owner = text.FgHiBlack.Sprint("-")
			if item.Excluded {
				owner = text.FgYellow.Sprint("excluded")
			}
		}
		t.AppendRow(table.Row{item.Name, item.Type, owner, item.Provider})
	}
	t.Render()
	return f.formatTotal(len(items), "items")
}

// FormatBundleList renders bundles as a table
func (f *TableFormatter) FormatBundleList(bundles []features.Bundle) error {
	if len(bundles) == 0 {
		return f.formatEmptyMessage("📋", "No bundles found")
	}

	t := f.createTable()
	t.AppendHeader(f.header("BUNDLE", "NAME", "PROFILE", "METHODS"))
	for _, b := range bundleViews(bundles) {
		t.AppendRow(table.Row{
			text.FgHiCyan.Sprint(b.MachineName),
			b.Name,
			b.Profile,
			truncate(strings.Join(b.Methods, ", "), 80),
		})
	}
	t.Render()
	return nil
}

// FormatData formats generic data using table logic
func (f *TableFormatter) FormatData(data interface{}) error {
	switch d := data.(type) {
	case map[string]interface{}:
		return f.formatObjectData(d)
	case string:
		_, err := fmt.Fprintln(f.options.writer(), d)
		return err
	default:
		_, err := fmt.Fprintf(f.options.writer(), "%v\n", d)
		return err
	}
}

// SetOptions updates the formatter options
func (f *TableFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *TableFormatter) GetOptions() Options {
	return f.options
}

// Helper methods

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(f.options.writer())
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) header(cols ...string) table.Row {
	row := make(table.Row, 0, len(cols))
	for _, c := range cols {
		row = append(row, text.FgHiCyan.Sprint(c))
	}
	return row
}

func (f *TableFormatter) colorStatus(status string) string {
	switch status {
	case features.StatusInstalled.String():
		return text.FgGreen.Sprint(status)
	case features.StatusUninstalled.String():
		return text.FgYellow.Sprint(status)
	default:
		return status
	}
}

// formatEmptyMessage formats empty result messages
func (f *TableFormatter) formatEmptyMessage(icon, message string) error {
	_, err := fmt.Fprintf(f.options.writer(), "%s %s\n", text.FgYellow.Sprint(icon), text.FgYellow.Sprint(message))
	return err
}

func (f *TableFormatter) formatTotal(n int, noun string) error {
	if f.options.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(f.options.writer(), "\n%s %s %s\n",
		text.FgHiBlue.Sprint("Total:"),
		text.FgHiWhite.Sprint(n),
		text.FgHiBlue.Sprint(noun))
	return err
}

// formatObjectData formats object data as sorted key-value pairs
func (f *TableFormatter) formatObjectData(data map[string]interface{}) error {
	t := f.createTable()
	t.AppendHeader(f.header("KEY", "VALUE"))
	for _, key := range sortedMapKeys(data) {
		t.AppendRow(table.Row{
			text.FgHiCyan.Sprint(key),
			truncate(fmt.Sprintf("%v", data[key]), 100),
		})
	}
	t.Render()
	return nil
}
