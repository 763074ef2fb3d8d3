package entity

import (
	"errors"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"

	"github.com/cms-kit/schemacheck/internal/jsontree"
)

// Result is the outcome of validating one document. Valid is true iff
// Errors is empty; warnings never affect it.
type Result struct {
	Valid    bool     `json:"valid"`
	Schema   string   `json:"schema"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	// LoadErr is set when the document could not be read or parsed.
	LoadErr error `json:"-"`
}

// Option configures a Validator.
type Option func(*Validator)

// WithJSONSchema adds a pass that checks the document against a compiled
// JSON Schema. Its findings are reported as errors prefixed "JSON Schema:".
func WithJSONSchema(s *jsonschema.Schema) Option {
	return func(v *Validator) {
		v.metaSchema = s
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// Validator checks entity schema documents. It holds no per-document state
// and may be shared between goroutines.
type Validator struct {
	metaSchema *jsonschema.Schema
	logger     *zap.SugaredLogger
}

// NewValidator creates a validator.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = NewValidator()

// ValidateFile validates the document at path with the default validator.
func ValidateFile(path string) Result {
	return defaultValidator.Validate(path)
}

// ValidateBytes validates an in-memory document with the default validator.
// name is only used to label the result.
func ValidateBytes(name string, data []byte) Result {
	return defaultValidator.ValidateBytes(name, data)
}

// Validate reads and validates the document at path.
func (v *Validator) Validate(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return v.loadFailure(path, newReadError(path, err))
	}
	return v.ValidateBytes(path, data)
}

// ValidateBytes parses and validates data.
func (v *Validator) ValidateBytes(name string, data []byte) Result {
	root, err := jsontree.Parse(data)
	if err != nil {
		kind := LoadInvalidJSON
		var encErr *jsontree.EncodingError
		if errors.As(err, &encErr) {
			kind = LoadUnexpected
		}
		return v.loadFailure(name, &LoadError{Kind: kind, Path: name, Err: err})
	}
	return v.ValidateTree(name, root)
}

// ValidateTree validates an already parsed document. The tree is not modified.
func (v *Validator) ValidateTree(name string, root jsontree.Value) Result {
	doc, ok := root.(*jsontree.Object)
	if !ok {
		return v.loadFailure(name, &LoadError{
			Kind: LoadUnexpected,
			Path: name,
			Err:  errRootNotObject(root),
		})
	}

	c := &checker{}
	c.checkRoot(doc)
	c.checkProperties(doc)
	c.checkIndexes(doc)
	c.checkFeatures(doc)
	if v.metaSchema != nil {
		c.checkJSONSchema(v.metaSchema, root)
	}

	res := Result{
		Valid:    len(c.errs) == 0,
		Schema:   name,
		Errors:   c.errs,
		Warnings: c.warnings,
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}

	v.logger.Debugw("schema validated",
		"schema", name,
		"valid", res.Valid,
		"errors", len(res.Errors),
		"warnings", len(res.Warnings),
	)
	return res
}

func (v *Validator) loadFailure(name string, err *LoadError) Result {
	v.logger.Debugw("schema load failed", "schema", name, "kind", err.Kind, "error", err.Err)
	return Result{
		Valid:    false,
		Schema:   name,
		Errors:   []string{err.Error()},
		Warnings: []string{},
		LoadErr:  err,
	}
}
