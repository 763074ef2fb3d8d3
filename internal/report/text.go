package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/cms-kit/schemacheck/internal/batch"
	"github.com/cms-kit/schemacheck/pkg/entity"
)

// Text renders human-readable reports.
type Text struct {
	w io.Writer

	successColor *color.Color
	errorColor   *color.Color
	warningColor *color.Color
	infoColor    *color.Color
}

// NewText returns a text renderer writing to w. When useColor is false no
// escape sequences are emitted.
func NewText(w io.Writer, useColor bool) *Text {
	t := &Text{
		w:            w,
		successColor: color.New(color.FgGreen, color.Bold),
		errorColor:   color.New(color.FgRed, color.Bold),
		warningColor: color.New(color.FgYellow),
		infoColor:    color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{t.successColor, t.errorColor, t.warningColor, t.infoColor} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

// Result prints the outcome of a single document.
func (t *Text) Result(res entity.Result) {
	fmt.Fprintf(t.w, "\nValidating: %s\n", res.Schema)
	fmt.Fprintln(t.w, strings.Repeat("-", 60))

	if len(res.Warnings) > 0 {
		t.warningColor.Fprintln(t.w, "\n⚠ Warnings:")
		for _, w := range res.Warnings {
			fmt.Fprintf(t.w, "  - %s\n", w)
		}
	}

	if len(res.Errors) > 0 {
		t.errorColor.Fprintln(t.w, "\n✗ Errors:")
		for _, e := range res.Errors {
			fmt.Fprintf(t.w, "  - %s\n", e)
		}
		t.errorColor.Fprintf(t.w, "\nResult: FAILED with %d error(s)\n", len(res.Errors))
		return
	}

	t.successColor.Fprintln(t.w, "\n✓ Schema is valid!")
}

// Batch prints every result followed by the summary line.
func (t *Text) Batch(r batch.Report) {
	t.infoColor.Fprintf(t.w, "\nFound %d schema file(s) to validate\n", r.Summary.Total)
	fmt.Fprintln(t.w, strings.Repeat("=", 70))

	for _, res := range r.Results {
		if res.Valid {
			t.successColor.Fprintf(t.w, "\n✓ Valid %s\n", res.Schema)
		} else {
			t.errorColor.Fprintf(t.w, "\n✗ Invalid %s\n", res.Schema)
		}

		if len(res.Warnings) > 0 {
			t.warningColor.Fprintln(t.w, "  ⚠ Warnings:")
			for _, w := range res.Warnings {
				fmt.Fprintf(t.w, "    - %s\n", w)
			}
		}
		if len(res.Errors) > 0 {
			t.errorColor.Fprintln(t.w, "  ✗ Errors:")
			for _, e := range res.Errors {
				fmt.Fprintf(t.w, "    - %s\n", e)
			}
		}
	}

	fmt.Fprintln(t.w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintf(t.w, "Summary: %d valid, %d invalid out of %d total\n",
		r.Summary.Valid, r.Summary.Invalid, r.Summary.Total)
}

// Quick prints one line per document with paths relative to root and only
// the errors of failing documents.
func (t *Text) Quick(root string, r batch.Report) {
	t.infoColor.Fprintf(t.w, "\nValidating %d schema file(s)...\n\n", r.Summary.Total)

	for _, res := range r.Results {
		rel := relPath(root, res.Schema)
		if res.Valid {
			t.successColor.Fprintf(t.w, "✓ %s\n", rel)
			continue
		}
		t.errorColor.Fprintf(t.w, "✗ %s\n", rel)
		for _, e := range res.Errors {
			fmt.Fprintf(t.w, "   - %s\n", e)
		}
	}

	fmt.Fprintln(t.w)
	if r.OK() {
		t.successColor.Fprintln(t.w, "All schemas are valid!")
	} else {
		t.errorColor.Fprintln(t.w, "Some schemas have errors")
	}
}

// Diagnostics prints check diagnostics one per line, compiler style.
func (t *Text) Diagnostics(c CheckResult) {
	for _, d := range c.Diagnostics {
		loc := d.File
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
		}
		sev := t.errorColor
		if d.Severity == SeverityWarning {
			sev = t.warningColor
		}
		fmt.Fprintf(t.w, "%s: %s %s\n", loc, sev.Sprint(d.Severity+":"), d.Message)
	}
	if c.Valid {
		t.successColor.Fprintln(t.w, "✓ Schema is valid")
	}
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
