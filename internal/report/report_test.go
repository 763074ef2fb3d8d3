package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cms-kit/schemacheck/internal/batch"
	"github.com/cms-kit/schemacheck/pkg/entity"
)

func sampleReport(root string) batch.Report {
	return batch.Report{
		Summary: batch.Summary{Total: 2, Valid: 1, Invalid: 1},
		Results: []entity.Result{
			{
				Valid:    true,
				Schema:   filepath.Join(root, "post", "schema.json"),
				Errors:   []string{},
				Warnings: []string{"Index 0: No type specified, will default to 'index'"},
			},
			{
				Valid:    false,
				Schema:   filepath.Join(root, "user", "schema.json"),
				Errors:   []string{"Missing required field: properties"},
				Warnings: []string{},
			},
		},
	}
}

func TestTextResultValid(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, false).Result(entity.ValidateBytes("post.json", []byte(`{"name": "Post", "properties": {}}`)))

	want := "\nValidating: post.json\n" + strings.Repeat("-", 60) + "\n\n✓ Schema is valid!\n"
	assert.Equal(t, want, buf.String())
}

func TestTextResultFailed(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, false).Result(entity.ValidateBytes("user.json", []byte(`{"name": "user"}`)))

	out := buf.String()
	assert.Contains(t, out, "\n⚠ Warnings:\n  - Entity name should be PascalCase (start with uppercase)\n")
	assert.Contains(t, out, "\n✗ Errors:\n  - Missing required field: properties\n")
	assert.True(t, strings.HasSuffix(out, "\nResult: FAILED with 1 error(s)\n"))
	assert.Less(t, strings.Index(out, "Warnings"), strings.Index(out, "Errors"))
	assert.NotContains(t, out, "\x1b[")
}

func TestTextResultColored(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, true).Result(entity.ValidateBytes("user.json", []byte(`{}`)))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestTextBatch(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, false).Batch(sampleReport("schemas"))

	out := buf.String()
	assert.Contains(t, out, "Found 2 schema file(s) to validate")
	assert.Contains(t, out, "✓ Valid "+filepath.Join("schemas", "post", "schema.json"))
	assert.Contains(t, out, "  ⚠ Warnings:\n    - Index 0: No type specified, will default to 'index'\n")
	assert.Contains(t, out, "✗ Invalid "+filepath.Join("schemas", "user", "schema.json"))
	assert.Contains(t, out, "  ✗ Errors:\n    - Missing required field: properties\n")
	assert.True(t, strings.HasSuffix(out, "Summary: 1 valid, 1 invalid out of 2 total\n"))
}

func TestTextQuick(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, false).Quick("schemas", sampleReport("schemas"))

	out := buf.String()
	assert.Contains(t, out, "✓ "+filepath.Join("post", "schema.json")+"\n")
	assert.Contains(t, out, "✗ "+filepath.Join("user", "schema.json")+"\n   - Missing required field: properties\n")
	assert.NotContains(t, out, "Index 0", "quick mode omits warnings")
	assert.True(t, strings.HasSuffix(out, "Some schemas have errors\n"))

	buf.Reset()
	ok := sampleReport("schemas")
	ok.Results = ok.Results[:1]
	ok.Summary = batch.Summary{Total: 1, Valid: 1}
	NewText(&buf, false).Quick("schemas", ok)
	assert.True(t, strings.HasSuffix(buf.String(), "All schemas are valid!\n"))
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, entity.ValidateBytes("post.json", []byte(`{"name": "Post", "properties": {}}`))))

	assert.JSONEq(t, `{"valid": true, "schema": "post.json", "errors": [], "warnings": []}`, buf.String())
	assert.Contains(t, buf.String(), "\n  \"valid\": true", "two-space indent")
}

func TestWriteBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBatch(&buf, sampleReport("s")))

	var got struct {
		Summary map[string]int   `json:"summary"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]int{"total": 2, "valid": 1, "invalid": 1}, got.Summary)
	require.Len(t, got.Results, 2)
	assert.ElementsMatch(t, []string{"schema", "valid", "errors", "warnings"}, keys(got.Results[0]))

	buf.Reset()
	require.NoError(t, WriteBatch(&buf, batch.Report{}))
	assert.JSONEq(t, `{"summary": {"total": 0, "valid": 0, "invalid": 0}, "results": []}`, buf.String())
}

func TestCheckResultFromSyntaxError(t *testing.T) {
	res := entity.ValidateBytes("schema.json", []byte("{\n  \"name\": \"Post\",\n}"))
	c := NewCheckResult("schema.json", res)

	require.Len(t, c.Diagnostics, 1)
	d := c.Diagnostics[0]
	assert.False(t, c.Valid)
	assert.Equal(t, SeverityError, d.Severity)
	assert.Equal(t, 3, d.Line)
	assert.Positive(t, d.Column)

	var buf bytes.Buffer
	NewText(&buf, false).Diagnostics(c)
	assert.True(t, strings.HasPrefix(buf.String(), "schema.json:3:"))
}

func TestCheckResultWarnings(t *testing.T) {
	res := entity.ValidateBytes("schema.json", []byte(`{"name": "post", "properties": {}}`))
	c := NewCheckResult("schema.json", res)

	assert.True(t, c.Valid)
	require.Len(t, c.Diagnostics, 1)
	assert.Equal(t, SeverityWarning, c.Diagnostics[0].Severity)
	assert.Zero(t, c.Diagnostics[0].Line)

	var buf bytes.Buffer
	require.NoError(t, WriteCheck(&buf, c))
	assert.JSONEq(t, `{
		"valid": true,
		"diagnostics": [{"file": "schema.json", "severity": "warning", "message": "Entity name should be PascalCase (start with uppercase)"}]
	}`, buf.String())

	buf.Reset()
	NewText(&buf, false).Diagnostics(c)
	assert.Equal(t, "schema.json: warning: Entity name should be PascalCase (start with uppercase)\n✓ Schema is valid\n", buf.String())
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
