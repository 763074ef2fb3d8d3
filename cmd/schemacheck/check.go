package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cms-kit/schemacheck/internal/report"
)

var (
	checkJSON       bool
	checkJSONSchema string
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check a schema for errors (used by editor extensions)",
	Long: `Check a schema document and report diagnostics.

This command is designed for editor integrations. With --json it always
exits 0 and prints {valid, diagnostics}; syntax errors carry line and
column.

Examples:
  schemacheck check schema.json
  schemacheck check schema.json --json
  schemacheck check --json < schema.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename, input, err := readCheckInput(cmd, args)
		if err != nil {
			if wantJSON(checkJSON) {
				return report.WriteCheck(cmd.OutOrStdout(), report.CheckResult{
					Valid: false,
					Diagnostics: []report.Diagnostic{{
						File:     filename,
						Severity: report.SeverityError,
						Message:  err.Error(),
					}},
				})
			}
			return err
		}

		v, err := newValidator(checkJSONSchema)
		if err != nil {
			return err
		}

		result := report.NewCheckResult(filename, v.ValidateBytes(filename, input))

		if wantJSON(checkJSON) {
			return report.WriteCheck(cmd.OutOrStdout(), result)
		}

		report.NewText(cmd.OutOrStdout(), useColor()).Diagnostics(result)
		if !result.Valid {
			return errFailed
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output diagnostics in JSON format")
	checkCmd.Flags().StringVar(&checkJSONSchema, "json-schema", "", "also check the document against this JSON Schema")
	rootCmd.AddCommand(checkCmd)
}

// readCheckInput reads the named file, piped stdin, or ./<filename> when
// stdin is a terminal.
func readCheckInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) > 0 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return args[0], nil, fmt.Errorf("failed to read file: %w", err)
		}
		return args[0], content, nil
	}

	filename := cfg.Schema.Filename
	in := cmd.InOrStdin()

	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			content, err := os.ReadFile(filename)
			if err != nil {
				return filename, nil, fmt.Errorf("no input provided and %s not found", filename)
			}
			return filename, content, nil
		}
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return filename, nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return filename, content, nil
}
