package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cms-kit/schemacheck/internal/batch"
	"github.com/cms-kit/schemacheck/internal/jsontree"
	"github.com/cms-kit/schemacheck/pkg/entity"
)

// Diagnostic severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Diagnostic is a single finding in the editor-oriented check output.
type Diagnostic struct {
	File     string `json:"file"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// CheckResult is the output of the check command.
type CheckResult struct {
	Valid       bool         `json:"valid"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// NewCheckResult flattens res into diagnostics labelled with file. Syntax
// errors carry the position of the problem.
func NewCheckResult(file string, res entity.Result) CheckResult {
	out := CheckResult{
		Valid:       res.Valid,
		Diagnostics: make([]Diagnostic, 0, len(res.Errors)+len(res.Warnings)),
	}

	var line, col int
	var syn *jsontree.SyntaxError
	if errors.As(res.LoadErr, &syn) {
		line, col = syn.Line, syn.Column
	}

	for _, e := range res.Errors {
		out.Diagnostics = append(out.Diagnostics, Diagnostic{
			File:     file,
			Severity: SeverityError,
			Message:  e,
			Line:     line,
			Column:   col,
		})
	}
	for _, w := range res.Warnings {
		out.Diagnostics = append(out.Diagnostics, Diagnostic{
			File:     file,
			Severity: SeverityWarning,
			Message:  w,
		})
	}
	return out
}

// WriteResult writes a single result as {valid, schema, errors, warnings}.
func WriteResult(w io.Writer, res entity.Result) error {
	return writeJSON(w, res)
}

// WriteBatch writes {summary, results}.
func WriteBatch(w io.Writer, r batch.Report) error {
	if r.Results == nil {
		r.Results = []entity.Result{}
	}
	return writeJSON(w, r)
}

// WriteCheck writes {valid, diagnostics}.
func WriteCheck(w io.Writer, c CheckResult) error {
	if c.Diagnostics == nil {
		c.Diagnostics = []Diagnostic{}
	}
	return writeJSON(w, c)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
