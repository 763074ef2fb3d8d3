package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cms-kit/schemacheck/internal/jsontree"
	"github.com/cms-kit/schemacheck/internal/report"
	"github.com/cms-kit/schemacheck/pkg/entity"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the entity described by a schema document",
	Long: `Validate a schema document and, when it is valid, print the entity it
describes: name, collection, field tree, indexes and enabled features.

Examples:
  schemacheck inspect schemas/post/schema.json
  schemacheck inspect schemas/post/schema.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		v, err := newValidator("")
		if err != nil {
			return err
		}

		res := v.Validate(path)
		if !res.Valid {
			report.NewText(cmd.OutOrStdout(), useColor()).Result(res)
			return errFailed
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		root, err := jsontree.Parse(data)
		if err != nil {
			return err
		}
		schema, err := entity.Decode(root)
		if err != nil {
			return err
		}

		if inspectJSON {
			out, err := schema.ToJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}

		return printEntity(cmd.OutOrStdout(), schema)
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the decoded entity as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func printEntity(w io.Writer, s *entity.Schema) error {
	infoColor.Fprintf(w, "Entity: %s\n", s.Name)
	if s.CollectionName != "" {
		fmt.Fprintf(w, "  Collection:  %s\n", s.CollectionName)
	}
	if desc := s.Description.String(); desc != "" {
		fmt.Fprintf(w, "  Description: %s\n", desc)
	}
	if s.SoftDelete {
		fmt.Fprintln(w, "  Soft delete: yes")
	}

	fmt.Fprintln(w, "\nFields:")
	err := s.Walk(func(path string, f entity.Field) error {
		fmt.Fprintf(w, "  %s%-*s %s\n", strings.Repeat("  ", fieldDepth(path)), 24, fieldName(path), describeField(f))
		return nil
	})
	if err != nil {
		return err
	}

	if len(s.Indexes) > 0 {
		fmt.Fprintln(w, "\nIndexes:")
		for _, idx := range s.Indexes {
			name := idx.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(w, "  %-24s %s (%s)\n", name, idx.Type, strings.Join(idx.Columns, ", "))
		}
	}

	if features := s.EnabledFeatures(); len(features) > 0 {
		fmt.Fprintf(w, "\nFeatures: %s\n", strings.Join(features, ", "))
	}
	return nil
}

func describeField(f entity.Field) string {
	var b strings.Builder

	switch f := f.(type) {
	case *entity.RelationField:
		fmt.Fprintf(&b, "→ %s (%s)", f.Ref, f.Relation.Kind)
		if f.Relation.OnDelete != "" {
			fmt.Fprintf(&b, " onDelete=%s", f.Relation.OnDelete)
		}
	case *entity.ScalarField:
		b.WriteString(string(f.Type))
	}

	c := f.Common()
	if c.Rules != nil && c.Rules.Required {
		b.WriteString(" required")
	}
	if c.Unique {
		b.WriteString(" unique")
	}
	if c.PrimaryKey {
		b.WriteString(" primary")
	}
	if c.Private {
		b.WriteString(" private")
	}
	return b.String()
}

// fieldDepth counts nesting from a walk path such as "seo.cover" or "tags[]".
func fieldDepth(path string) int {
	return strings.Count(path, ".") + strings.Count(path, "[]")
}

func fieldName(path string) string {
	if strings.HasSuffix(path, "[]") {
		return "[]"
	}
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
