package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showBundle string

var showCmd = &cobra.Command{
	Use:   "show <package>",
	Short: "Show one package and the configuration assigned to it",
	Long: `Runs the assignment and prints a single package with its dependencies and
configuration. The package may be named by machine name or by its
bundle-prefixed full name.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := loadSite(globalOptions)
	if err != nil {
		return err
	}
	if _, _, err := s.assign(showBundle, false); err != nil {
		return err
	}

	p, ok := s.manager.FindPackage(args[0])
	if !ok {
		return fmt.Errorf("package %q not found", args[0])
	}
	c, err := s.collection()
	if err != nil {
		return err
	}
	return newFormatter(cmd).FormatPackageDetail(p, filterItems(c, p.MachineName, "", false))
}

func init() {
	showCmd.Flags().StringVarP(&showBundle, "bundle", "b", "", "Bundle to assign with (default: the settings' default bundle)")
}
