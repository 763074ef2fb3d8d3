package entity

import (
	"errors"
	"fmt"
	"io/fs"
)

// LoadErrorKind classifies why a document could not be loaded.
type LoadErrorKind string

const (
	LoadNotFound    LoadErrorKind = "not_found"
	LoadInvalidJSON LoadErrorKind = "invalid_json"
	LoadUnexpected  LoadErrorKind = "unexpected"
)

// LoadError is returned when a document cannot be read or parsed. When it
// happens no structural check runs and the result carries exactly one error.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case LoadNotFound:
		return "Schema file not found: " + e.Path
	case LoadInvalidJSON:
		return fmt.Sprintf("Invalid JSON: %v", e.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newReadError(path string, err error) *LoadError {
	if errors.Is(err, fs.ErrNotExist) {
		return &LoadError{Kind: LoadNotFound, Path: path, Err: err}
	}
	return &LoadError{Kind: LoadUnexpected, Path: path, Err: err}
}

// IsLoadError reports whether err (or anything it wraps) is a *LoadError of
// the given kind.
func IsLoadError(err error, kind LoadErrorKind) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == kind
}
