package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cms-kit/schemacheck/internal/designer"
	"github.com/cms-kit/schemacheck/internal/report"
)

var (
	designOutput     string
	designPrint      bool
	designJSONSchema string
)

// newPrompter is swapped out by tests.
var newPrompter = func(cmd *cobra.Command) designer.Prompter {
	return designer.NewSurveyPrompter(os.Stdin, os.Stdout, os.Stderr)
}

var designCmd = &cobra.Command{
	Use:   "design [dir]",
	Short: "Interactively design a new entity schema",
	Long: `Ask for an entity's metadata, fields, relationships, indexes and form
settings, then write the resulting schema document.

The document is validated before it is written. Nothing is written when it
has errors or when the target file already exists.

The file goes to <dir>/<entity>/<filename>, where dir defaults to the first
configured schema path and entity is the lowercased entity name.

Examples:
  schemacheck design
  schemacheck design ./schemas
  schemacheck design --output post.json
  schemacheck design --print`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if designOutput != "" && !designPrint {
			if err := refuseExisting(designOutput); err != nil {
				return err
			}
		}

		v, err := newValidator(designJSONSchema)
		if err != nil {
			return err
		}

		doc, err := designer.New(newPrompter(cmd), cmd.OutOrStdout()).Run(cmd.Context())
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}
		data = append(data, '\n')

		name, _ := doc.Get("name")
		path := designOutput
		if path == "" {
			dir := cfg.Schema.Paths[0]
			if len(args) > 0 {
				dir = args[0]
			}
			path = filepath.Join(dir, strings.ToLower(fmt.Sprint(name)), cfg.Schema.Filename)
		}

		res := v.ValidateTree(path, doc)
		if !res.Valid {
			report.NewText(cmd.OutOrStdout(), useColor()).Result(res)
			printError(cmd, "Schema not written")
			return errFailed
		}
		for _, w := range res.Warnings {
			printWarning(cmd, "%s", w)
		}

		if designPrint {
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		}

		if err := refuseExisting(path); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create schema directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write schema: %w", err)
		}
		zap.S().Debugw("schema designed", "path", path, "bytes", len(data))

		outln(cmd)
		printSuccess(cmd, "Created %s", path)
		outln(cmd, "Next step:")
		outln(cmd, "  schemacheck validate "+path)
		return nil
	},
}

func refuseExisting(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite %s", path)
	}
	return nil
}

func init() {
	designCmd.Flags().StringVarP(&designOutput, "output", "o", "", "write the schema to this file")
	designCmd.Flags().BoolVar(&designPrint, "print", false, "print the schema instead of writing it")
	designCmd.Flags().StringVar(&designJSONSchema, "json-schema", "", "also check the document against this JSON Schema")
	rootCmd.AddCommand(designCmd)
}
