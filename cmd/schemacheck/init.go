package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cms-kit/schemacheck/internal/config"
)

var initTOML bool

var initCmd = &cobra.Command{
	Use:         "init [dir]",
	Short:       "Create a schemacheck config and an example schema",
	Annotations: map[string]string{annotationNoConfig: "true"},
	Long: `Set up schemacheck in a directory.

This will create:
  .schemacheck.yml                Configuration (.schemacheck.toml with --toml)
  schemas/example/schema.json     Example entity schema

Existing files are never overwritten. If no directory is given, the current
directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workDir := "."
		if len(args) > 0 {
			workDir = args[0]
		}

		configName := config.FileNames[0]
		if initTOML {
			configName = ".schemacheck.toml"
		}

		for _, name := range config.FileNames {
			if _, err := os.Stat(filepath.Join(workDir, name)); err == nil {
				return fmt.Errorf("schemacheck already initialized in %s\nDelete %s to reinitialize", workDir, name)
			}
		}

		schemaPath := filepath.Join(workDir, "schemas", "example", "schema.json")
		if _, err := os.Stat(schemaPath); err == nil {
			return fmt.Errorf("refusing to overwrite %s", schemaPath)
		}

		printInfo(cmd, "Initializing schemacheck in: %s", workDir)
		if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
			return fmt.Errorf("failed to create schemas directory: %w", err)
		}

		configFile := filepath.Join(workDir, configName)
		if initTOML {
			if err := config.NewFileLoader(configFile).Save(config.Defaults()); err != nil {
				return err
			}
		} else if err := os.WriteFile(configFile, []byte(config.Template()), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", configName, err)
		}
		printSuccess(cmd, "Created %s", configName)

		if err := os.WriteFile(schemaPath, []byte(exampleSchema()), 0644); err != nil {
			return fmt.Errorf("failed to create example schema: %w", err)
		}
		printSuccess(cmd, "Created schemas/example/schema.json")

		outln(cmd)
		outln(cmd, "Next steps:")
		if len(args) > 0 {
			outln(cmd, "  cd "+workDir)
		}
		outln(cmd, "  schemacheck validate schemas/example/schema.json")
		outln(cmd, "  schemacheck validate-all")
		outln(cmd)

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initTOML, "toml", false, "write .schemacheck.toml instead of YAML")
	rootCmd.AddCommand(initCmd)
}

func exampleSchema() string {
	return `{
  "name": "Article",
  "collectionName": "articles",
  "description": {"en": "Blog article"},
  "info": {"displayName": "Article", "icon": "file-text"},
  "properties": {
    "title": {
      "type": "string",
      "label": "Title",
      "validate": {"required": true, "max": 200},
      "ui": {"widget": "text", "showInList": true, "span": 12}
    },
    "body": {
      "type": "richText",
      "label": "Body"
    },
    "status": {
      "type": "enum",
      "default": "draft",
      "validate": {"enum": ["draft", "published"]},
      "ui": {
        "widget": "select",
        "options": [
          {"value": "draft", "label": "Draft"},
          {"value": "published", "label": "Published"}
        ]
      }
    },
    "author": {
      "$ref": "User",
      "x-relation": {"type": "many2One", "labelField": "name", "onDelete": "setNull"}
    }
  },
  "indexes": [
    {"type": "index", "name": "idx_article_status", "columns": ["status"]}
  ],
  "features": {"draft": true}
}
`
}
