package cmd

import (
	"fmt"
	"os"
	"time"

	"featurepack/internal/features"
	"featurepack/internal/generator"
	"featurepack/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	exportBundle   string
	exportForce    bool
	exportDest     string
	exportArchive  string
	exportClean    bool
	exportPackages []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate the assigned packages",
	Long: `Runs the assignment and writes every package as an extension directory
holding its info file, its features file and one file per configuration
object.

Packages are written below --dest, or into a gzipped tarball with --archive.
Use --package to export only some of the packages.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := loadSite(globalOptions)
	if err != nil {
		return err
	}

	var sp *spinner.Spinner
	if !rootQuiet {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
		sp.Suffix = " Assigning configuration..."
		sp.Start()
	}
	stopSpinner := func(final string) {
		if sp == nil {
			return
		}
		sp.FinalMSG = final
		sp.Stop()
		sp = nil
	}
	defer stopSpinner("")

	packages, bundle, err := s.assign(exportBundle, exportForce)
	if err != nil {
		stopSpinner(text.FgRed.Sprint("❌ Assignment failed") + "\n")
		return err
	}
	packages, err = selectPackages(s.manager, packages, exportPackages)
	if err != nil {
		stopSpinner("")
		return err
	}

	c, err := s.collection()
	if err != nil {
		return err
	}
	if sp != nil {
		sp.Suffix = fmt.Sprintf(" Generating %d packages...", len(packages))
	}
	if err := generator.New(c).Prepare(packages, bundle); err != nil {
		stopSpinner(text.FgRed.Sprint("❌ Generation failed") + "\n")
		return err
	}

	var writer generator.Writer
	target := exportDest
	if exportArchive != "" {
		f, err := os.Create(exportArchive)
		if err != nil {
			return fmt.Errorf("failed to create archive %s: %w", exportArchive, err)
		}
		defer f.Close()
		writer = generator.NewArchiveWriter(f)
		target = exportArchive
	} else {
		writer = generator.NewDirectoryWriter(exportDest, exportClean)
	}

	if err := writer.Write(cmd.Context(), generator.Sorted(packages)); err != nil {
		stopSpinner(text.FgRed.Sprint("❌ Export failed") + "\n")
		return err
	}
	stopSpinner("")

	logging.Info("Export", "Exported %d packages to %s", len(packages), target)
	return newFormatter(cmd).FormatPackageList(generator.Sorted(packages))
}

// selectPackages keeps only the packages named in names, looked up by
// machine or full name. An empty list keeps everything.
func selectPackages(m *features.Manager, packages map[string]*features.Package, names []string) (map[string]*features.Package, error) {
	if len(names) == 0 {
		return packages, nil
	}
	out := make(map[string]*features.Package, len(names))
	for _, name := range names {
		p, ok := m.FindPackage(name)
		if !ok {
			return nil, &features.PackageNotFoundError{Package: name}
		}
		out[p.MachineName] = p
	}
	return out, nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportBundle, "bundle", "b", "", "Bundle to assign with (default: the settings' default bundle)")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Let assignment methods take configuration already claimed by another package")
	exportCmd.Flags().StringVarP(&exportDest, "dest", "d", "modules/custom", "Directory the packages are written to")
	exportCmd.Flags().StringVar(&exportArchive, "archive", "", "Write a .tar.gz archive instead of a directory")
	exportCmd.Flags().BoolVar(&exportClean, "clean", false, "Remove each package's existing config directory before writing")
	exportCmd.Flags().StringSliceVarP(&exportPackages, "package", "p", nil, "Export only these packages (repeatable)")
}
