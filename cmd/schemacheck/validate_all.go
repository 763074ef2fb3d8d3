package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cms-kit/schemacheck/internal/batch"
	"github.com/cms-kit/schemacheck/internal/report"
)

var (
	allJSON       bool
	allStrict     bool
	allJobs       int
	allJSONSchema string
)

var validateAllCmd = &cobra.Command{
	Use:   "validate-all [dir...]",
	Short: "Validate every schema document under one or more directories",
	Long: `Search the given directories recursively for schema documents
(schema.json unless configured otherwise), validate each one and print a
summary. Without arguments the configured schema paths are used.

Examples:
  schemacheck validate-all
  schemacheck validate-all cms/schemas --json
  schemacheck validate-all a b --jobs 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs := args
		if len(dirs) == 0 {
			dirs = cfg.Schema.Paths
		}

		files, err := batch.Discover(dirs, cfg.Schema.Filename)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			outln(cmd, "No "+cfg.Schema.Filename+" files found in "+strings.Join(dirs, ", "))
			return nil
		}

		v, err := newValidator(allJSONSchema)
		if err != nil {
			return err
		}

		jobs := allJobs
		if !cmd.Flags().Changed("jobs") {
			jobs = cfg.Batch.Jobs
		}

		rep, err := batch.Run(cmd.Context(), v, files, jobs)
		if err != nil {
			return err
		}

		if wantJSON(allJSON) {
			if err := report.WriteBatch(cmd.OutOrStdout(), rep); err != nil {
				return err
			}
		} else {
			report.NewText(cmd.OutOrStdout(), useColor()).Batch(rep)
		}

		if failed(cmd, rep.OK(), rep.Warnings(), allStrict) {
			return errFailed
		}
		return nil
	},
}

func init() {
	validateAllCmd.Flags().BoolVar(&allJSON, "json", false, "output the summary and results as JSON")
	validateAllCmd.Flags().BoolVar(&allStrict, "strict", false, "treat warnings as failures")
	validateAllCmd.Flags().IntVar(&allJobs, "jobs", 0, "concurrent validations (0 = one per CPU)")
	validateAllCmd.Flags().StringVar(&allJSONSchema, "json-schema", "", "also check every document against this JSON Schema")
	rootCmd.AddCommand(validateAllCmd)
}
