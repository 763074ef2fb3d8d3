package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cms-kit/schemacheck/internal/config"
	"github.com/cms-kit/schemacheck/internal/logging"
)

var (
	// Global flags
	verbose    bool
	noColor    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg           *config.Config
	restoreLogger = func() {}

	// Colors
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

// annotationNoConfig marks commands that run without reading the config file.
const annotationNoConfig = "schemacheck/no-config"

// errFailed signals that a report was printed and the process should exit 1
// without an extra error line.
var errFailed = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:   "schemacheck",
	Short: "schemacheck - Entity schema validator",
	Long: `schemacheck validates the declarative entity schema documents
(schema.json) consumed by the CMS code generators.

Get started:
  schemacheck init
  schemacheck validate schemas/example/schema.json
  schemacheck validate-all`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, restoreLogger = logging.Setup(verbose)

		if noColor {
			color.NoColor = true
		}

		if cmd.Annotations[annotationNoConfig] == "true" {
			cfg = config.Defaults()
			return nil
		}

		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		zap.S().Debugw("command starting", "command", cmd.Name(), "config", configPath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		restoreLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging on stderr)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .schemacheck.yml in the current directory)")
}

// Execute runs the root command
func Execute() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errFailed) {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return 1
}

// useColor reports whether reports should carry color escapes.
func useColor() bool {
	return !color.NoColor && cfg.Output.Color
}

// Helper functions for consistent output
func printSuccess(cmd *cobra.Command, format string, args ...interface{}) {
	successColor.Fprintf(cmd.OutOrStdout(), "✓ "+format+"\n", args...)
}

func printError(cmd *cobra.Command, format string, args ...interface{}) {
	errorColor.Fprintf(cmd.ErrOrStderr(), "✗ "+format+"\n", args...)
}

func printWarning(cmd *cobra.Command, format string, args ...interface{}) {
	warningColor.Fprintf(cmd.ErrOrStderr(), "⚠ "+format+"\n", args...)
}

func printInfo(cmd *cobra.Command, format string, args ...interface{}) {
	infoColor.Fprintf(cmd.OutOrStdout(), "ℹ "+format+"\n", args...)
}

func outln(cmd *cobra.Command, a ...interface{}) {
	fmt.Fprintln(cmd.OutOrStdout(), a...)
}
