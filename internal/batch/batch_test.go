package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cms-kit/schemacheck/pkg/entity"
)

const validDoc = `{"name": "Post", "properties": {"title": {"type": "string"}}}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func fixtureTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "post", "schema.json"), validDoc)
	writeFile(t, filepath.Join(dir, "blog", "comment", "schema.json"), `{"name": "comment"}`)
	writeFile(t, filepath.Join(dir, "broken", "schema.json"), `{"name": `)
	writeFile(t, filepath.Join(dir, "post", "notes.json"), validDoc)
	return dir
}

func TestDiscover(t *testing.T) {
	dir := fixtureTree(t)

	files, err := Discover([]string{dir}, "")
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "blog", "comment", "schema.json"),
		filepath.Join(dir, "broken", "schema.json"),
		filepath.Join(dir, "post", "schema.json"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverDeduplicatesOverlappingRoots(t *testing.T) {
	dir := fixtureTree(t)

	files, err := Discover([]string{dir, filepath.Join(dir, "post")}, DefaultFilename)
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDiscoverCustomFilename(t *testing.T) {
	dir := fixtureTree(t)

	files, err := Discover([]string{dir}, "notes.json")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "post", "notes.json")}, files)
}

func TestDiscoverMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := Discover([]string{missing}, "")
	require.Error(t, err)
	assert.Equal(t, "directory not found: "+missing, err.Error())
}

func TestDiscoverEmpty(t *testing.T) {
	files, err := Discover([]string{t.TempDir()}, "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRun(t *testing.T) {
	dir := fixtureTree(t)
	files, err := Discover([]string{dir}, "")
	require.NoError(t, err)

	for _, jobs := range []int{0, 1, 4} {
		report, err := Run(context.Background(), entity.NewValidator(), files, jobs)
		require.NoError(t, err)

		assert.Equal(t, Summary{Total: 3, Valid: 1, Invalid: 2}, report.Summary)
		assert.False(t, report.OK())
		require.Len(t, report.Results, 3)

		for i, res := range report.Results {
			assert.Equal(t, files[i], res.Schema, "results keep input order")
		}
		assert.True(t, report.Results[2].Valid)
		assert.Equal(t, []string{"Missing required field: properties"}, report.Results[0].Errors)
		assert.Equal(t, []string{"Entity name should be PascalCase (start with uppercase)"}, report.Results[0].Warnings)
		assert.Len(t, report.Results[1].Errors, 1)
	}
}

func TestRunAllValid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "schema.json"), validDoc)
	writeFile(t, filepath.Join(dir, "b", "schema.json"), validDoc)

	files, err := Discover([]string{dir}, "")
	require.NoError(t, err)

	report, err := Run(context.Background(), nil, files, 2)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 0, report.Warnings())
}

func TestRunCancelled(t *testing.T) {
	dir := fixtureTree(t)
	files, err := Discover([]string{dir}, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, entity.NewValidator(), files, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
