package main

import (
	"github.com/spf13/cobra"

	"github.com/cms-kit/schemacheck/internal/report"
)

var (
	validateJSON       bool
	validateStrict     bool
	validateJSONSchema string
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a single entity schema document",
	Long: `Validate one schema.json document and report every error and warning.

Exits with status 1 when the document has errors (or warnings with --strict).

Examples:
  schemacheck validate schemas/post/schema.json
  schemacheck validate schemas/post/schema.json --json
  schemacheck validate schema.json --json-schema entity.schema.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := newValidator(validateJSONSchema)
		if err != nil {
			return err
		}

		res := v.Validate(args[0])

		if wantJSON(validateJSON) {
			if err := report.WriteResult(cmd.OutOrStdout(), res); err != nil {
				return err
			}
		} else {
			report.NewText(cmd.OutOrStdout(), useColor()).Result(res)
		}

		if failed(cmd, res.Valid, len(res.Warnings), validateStrict) {
			return errFailed
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output the result as JSON")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as failures")
	validateCmd.Flags().StringVar(&validateJSONSchema, "json-schema", "", "also check the document against this JSON Schema")
	rootCmd.AddCommand(validateCmd)
}
