package cmd

import (
	"fmt"
	"sort"

	"featurepack/internal/features"
	"featurepack/internal/generator"

	"github.com/spf13/cobra"
)

var (
	listBundle     string
	listPackage    string
	listType       string
	listUnassigned bool
)

// listResourceTypes maps the accepted arguments to their canonical name.
var listResourceTypes = map[string]string{
	"package":  "packages",
	"packages": "packages",
	"config":   "config",
	"item":     "config",
	"items":    "config",
	"bundle":   "bundles",
	"bundles":  "bundles",
	"type":     "types",
	"types":    "types",
}

func getListResourceTypes() []string {
	types := make([]string, 0, len(listResourceTypes))
	for alias := range listResourceTypes {
		types = append(types, alias)
	}
	sort.Strings(types)
	return types
}

var listCmd = &cobra.Command{
	Use:   "list [packages|config|bundles|types]",
	Short: "List packages, configuration, bundles or configuration types",
	Long: `Lists one kind of resource. Packages and configuration are listed after
running the assignment of the selected bundle.

Examples:
  featurepack list packages --bundle example
  featurepack list config --unassigned
  featurepack list config --package example_blog
  featurepack list bundles -o yaml`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: getListResourceTypes(),
	RunE:      runList,
}

func runList(cmd *cobra.Command, args []string) error {
	resource := "packages"
	if len(args) == 1 {
		canonical, ok := listResourceTypes[args[0]]
		if !ok {
			return fmt.Errorf("unknown resource type %q (use packages, config, bundles or types)", args[0])
		}
		resource = canonical
	}

	s, err := loadSite(globalOptions)
	if err != nil {
		return err
	}
	formatter := newFormatter(cmd)

	switch resource {
	case "bundles":
		return formatter.FormatBundleList(s.settings.Bundles)
	case "types":
		return formatter.FormatData(typeList(s.manager.ListConfigTypes()))
	}

	packages, _, err := s.assign(listBundle, false)
	if err != nil {
		return err
	}
	if resource == "packages" {
		return formatter.FormatPackageList(generator.Sorted(packages))
	}

	c, err := s.collection()
	if err != nil {
		return err
	}
	return formatter.FormatItemList(filterItems(c, listPackage, listType, listUnassigned))
}

// filterItems selects the items matching every non-empty filter.
func filterItems(c *features.Collection, pkg, typ string, unassigned bool) []*features.ConfigurationItem {
	var out []*features.ConfigurationItem
	for _, item := range c.Items() {
		if pkg != "" && item.Package != pkg {
			continue
		}
		if typ != "" && item.Type != typ {
			continue
		}
		if unassigned && item.Package != "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func typeList(types map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(types))
	for id, label := range types {
		out[id] = label
	}
	return out
}

func init() {
	listCmd.Flags().StringVarP(&listBundle, "bundle", "b", "", "Bundle to assign with (default: the settings' default bundle)")
	listCmd.Flags().StringVar(&listPackage, "package", "", "Only list configuration assigned to this package")
	listCmd.Flags().StringVar(&listType, "type", "", "Only list configuration of this type")
	listCmd.Flags().BoolVar(&listUnassigned, "unassigned", false, "Only list configuration no package claims")
}
