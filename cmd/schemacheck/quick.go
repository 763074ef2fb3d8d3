package main

import (
	"github.com/spf13/cobra"

	"github.com/cms-kit/schemacheck/internal/batch"
	"github.com/cms-kit/schemacheck/internal/report"
)

var quickCmd = &cobra.Command{
	Use:   "quick [dir]",
	Short: "Quickly validate a schema directory",
	Long: `Validate every schema document under dir and print one line per file,
with errors only. Fails when nothing is found.

Examples:
  schemacheck quick
  schemacheck quick cms/schemas`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Schema.Paths[0]
		if len(args) > 0 {
			dir = args[0]
		}

		files, err := batch.Discover([]string{dir}, cfg.Schema.Filename)
		if err != nil {
			printError(cmd, "%v", err)
			return errFailed
		}
		if len(files) == 0 {
			printError(cmd, "No %s files found in %s", cfg.Schema.Filename, dir)
			return errFailed
		}

		v, err := newValidator("")
		if err != nil {
			return err
		}

		rep, err := batch.Run(cmd.Context(), v, files, cfg.Batch.Jobs)
		if err != nil {
			return err
		}

		report.NewText(cmd.OutOrStdout(), useColor()).Quick(dir, rep)
		if !rep.OK() {
			return errFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quickCmd)
}
