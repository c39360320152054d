package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"featurepack/internal/generator"
	"featurepack/internal/watch"
	"featurepack/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	assignBundle string
	assignForce  bool
	assignWatch  bool
)

// assignCmd assigns the exported configuration to packages and prints the
// resulting package set.
var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign configuration to packages",
	Long: `Runs the assignment methods of a bundle over the configuration export and
prints the packages produced.

With --watch the assignment is repeated every time a file in the
configuration export changes, until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runAssign,
}

func runAssign(cmd *cobra.Command, args []string) error {
	s, err := loadSite(globalOptions)
	if err != nil {
		return err
	}
	if err := assignAndPrint(cmd, s); err != nil {
		return err
	}
	if !assignWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watchAndAssign(ctx, cmd, s)
}

func assignAndPrint(cmd *cobra.Command, s *site) error {
	packages, _, err := s.assign(assignBundle, assignForce)
	if err != nil {
		return err
	}
	return newFormatter(cmd).FormatPackageList(generator.Sorted(packages))
}

func watchAndAssign(ctx context.Context, cmd *cobra.Command, s *site) error {
	changes := make(chan watch.ChangeEvent, 1)
	w := watch.NewWatcher(watch.DefaultDebounceInterval, globalOptions.ConfigDir)
	if err := w.Start(ctx, changes); err != nil {
		return fmt.Errorf("failed to watch %s: %w", globalOptions.ConfigDir, err)
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-changes:
			logging.Info("Assign", "%d configuration files changed, reassigning", len(ev.Paths))
			s.manager.Invalidate()
			if err := assignAndPrint(cmd, s); err != nil {
				// keep watching so the export can be fixed
				logging.Error("Assign", err, "Assignment failed")
			}
		}
	}
}

func init() {
	assignCmd.Flags().StringVarP(&assignBundle, "bundle", "b", "", "Bundle to assign with (default: the settings' default bundle)")
	assignCmd.Flags().BoolVar(&assignForce, "force", false, "Let assignment methods take configuration already claimed by another package")
	assignCmd.Flags().BoolVarP(&assignWatch, "watch", "w", false, "Reassign whenever the configuration export changes")
}
