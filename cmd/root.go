package cmd

import (
	"errors"
	"fmt"
	"os"

	"featurepack/internal/config"
	"featurepack/internal/features"
	"featurepack/internal/formatting"
	"featurepack/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeInvalidConfig indicates the settings file or configuration export could not be used.
	ExitCodeInvalidConfig = 2
	// ExitCodeIncomplete indicates packages were produced but failed verification.
	ExitCodeIncomplete = 3
)

// Global flags shared by every subcommand. Empty values fall back to the
// FEATUREPACK_* environment.
var (
	rootConfigDir     string
	rootExtensionsDir string
	rootSettingsFile  string
	rootLogLevel      string
	rootOutputFormat  string
	rootQuiet         bool
)

// rootCmd represents the base command for the featurepack application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "featurepack",
	Short: "Package exported site configuration into deployable feature modules",
	Long: `featurepack reads a site's exported configuration, assigns every
configuration object to a package according to a bundle's assignment methods
and generates the resulting feature modules.

Bundles and their assignment methods are declared in featurepack.yaml; the
configuration export and the site's extensions are read from disk.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage:      true,
	PersistentPreRunE: initGlobals,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "featurepack version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var ce config.ConfigurationError
	if errors.As(err, &ce) {
		return ExitCodeInvalidConfig
	}
	var ve config.ValidationErrors
	if errors.As(err, &ve) {
		return ExitCodeInvalidConfig
	}
	if errors.Is(err, features.ErrPackageNotFound) || errors.Is(err, errVerificationFailed) {
		return ExitCodeIncomplete
	}
	return ExitCodeError
}

// initGlobals resolves options from the environment, applies flag overrides
// and configures logging.
func initGlobals(cmd *cobra.Command, args []string) error {
	opts, err := config.LoadOptions()
	if err != nil {
		return err
	}
	if rootConfigDir != "" {
		opts.ConfigDir = rootConfigDir
	}
	if rootExtensionsDir != "" {
		opts.ExtensionsDir = rootExtensionsDir
	}
	if rootSettingsFile != "" {
		opts.SettingsFile = rootSettingsFile
	}
	if rootLogLevel != "" {
		opts.LogLevel = rootLogLevel
	}

	level, ok := logging.ParseLevel(opts.LogLevel)
	if !ok {
		return fmt.Errorf("invalid log level %q (use debug, info, warn or error)", opts.LogLevel)
	}
	if rootQuiet && level < logging.LevelWarn {
		level = logging.LevelWarn
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	if _, ok := formatting.ParseOutputFormat(rootOutputFormat); !ok {
		return fmt.Errorf("invalid output format %q (use table, console, json or yaml)", rootOutputFormat)
	}

	globalOptions = opts
	return nil
}

// globalOptions holds the resolved options for the running command.
var globalOptions config.Options

// newFormatter returns the formatter selected with --output, writing to the
// command's output stream.
func newFormatter(cmd *cobra.Command) formatting.Formatter {
	format, _ := formatting.ParseOutputFormat(rootOutputFormat)
	return formatting.NewFactory().CreateFormatter(formatting.Options{
		Format: format,
		Quiet:  rootQuiet,
		Out:    cmd.OutOrStdout(),
	})
}

// init is a special Go function that is executed when the package is initialized.
// It is used here to add subcommands and global flags to the root command.
func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)

	rootCmd.PersistentFlags().StringVar(&rootConfigDir, "config-dir", "", "Configuration export directory (env: FEATUREPACK_CONFIG_DIR)")
	rootCmd.PersistentFlags().StringVar(&rootExtensionsDir, "extensions-dir", "", "Directory searched for extensions (env: FEATUREPACK_EXTENSIONS_DIR)")
	rootCmd.PersistentFlags().StringVar(&rootSettingsFile, "settings", "", "Settings file (env: FEATUREPACK_SETTINGS)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn or error (env: FEATUREPACK_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVarP(&rootOutputFormat, "output", "o", "table", "Output format (table, console, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "Suppress non-essential output")
}
