package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DefaultFilename is the document name searched for when none is configured.
const DefaultFilename = "schema.json"

// Discover walks every root recursively and returns the paths of all files
// named filename, deduplicated and sorted.
func Discover(roots []string, filename string) ([]string, error) {
	if filename == "" {
		filename = DefaultFilename
	}

	seen := make(map[string]bool)
	var files []string

	for _, root := range roots {
		found, err := findSchemaFiles(root, filename)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if seen[f] {
				continue
			}
			seen[f] = true
			files = append(files, f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func findSchemaFiles(root, filename string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory not found: %s", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == filename {
			files = append(files, filepath.Clean(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return files, nil
}
