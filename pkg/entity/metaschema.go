package entity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cms-kit/schemacheck/internal/jsontree"
)

// CompileJSONSchema loads and compiles the JSON Schema at path for use with
// WithJSONSchema.
func CompileJSONSchema(path string) (*jsonschema.Schema, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve json schema path: %w", err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("open json schema: %w", err)
	}
	defer f.Close()

	doc, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, fmt.Errorf("invalid json schema %s: %w", path, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(abs, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}

var schemaPrinter = message.NewPrinter(language.English)

func (c *checker) checkJSONSchema(s *jsonschema.Schema, root jsontree.Value) {
	err := s.Validate(jsontree.ToAny(root))
	if err == nil {
		return
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		c.errorf("JSON Schema: %v", err)
		return
	}
	c.collectSchemaErrors(verr)
}

// collectSchemaErrors flattens the error tree, reporting leaves only.
func (c *checker) collectSchemaErrors(verr *jsonschema.ValidationError) {
	if len(verr.Causes) == 0 {
		loc := "/" + strings.Join(verr.InstanceLocation, "/")
		c.errorf("JSON Schema: at '%s': %s", loc, verr.ErrorKind.LocalizedString(schemaPrinter))
		return
	}
	for _, cause := range verr.Causes {
		c.collectSchemaErrors(cause)
	}
}
