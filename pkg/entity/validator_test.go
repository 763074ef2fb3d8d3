package entity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, doc string) Result {
	t.Helper()
	return ValidateBytes("schema.json", []byte(doc))
}

func writeSchema(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

// ============================================================
// END-TO-END EXAMPLES
// ============================================================

func TestMissingNameIsInvalid(t *testing.T) {
	res := validate(t, `{"properties": {}}`)

	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Missing required field: name")
}

func TestLowercaseNameWarns(t *testing.T) {
	res := validate(t, `{"name": "post", "properties": {}}`)

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"Entity name should be PascalCase (start with uppercase)"}, res.Warnings)
}

func TestCleanSchema(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"title": {"type": "string", "validate": {"required": true}}}}`)

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.NotNil(t, res.Errors)
	assert.NotNil(t, res.Warnings)
}

func TestRelationWithoutXRelation(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"author": {"$ref": "User"}}}`)

	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Property 'author': Relationship fields must have x-relation"}, res.Errors)
}

func TestInvalidFieldType(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"tags": {"type": "badtype"}}}`)

	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Property 'tags': Invalid type 'badtype'")
	for _, ft := range FieldTypes {
		assert.Contains(t, res.Errors[0], string(ft))
	}
}

// ============================================================
// PROPERTIES
// ============================================================

func TestMissingProperties(t *testing.T) {
	res := validate(t, `{"name": "Post"}`)

	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Missing required field: properties"}, res.Errors)
}

func TestFieldWithoutRefOrType(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"body": {"label": "Body"}}}`)

	assert.Equal(t, []string{"Property 'body': Must have either $ref or type"}, res.Errors)
}

func TestRelationFieldValidated(t *testing.T) {
	tests := []struct {
		name     string
		relation string
		errors   []string
	}{
		{"one2One", `{"type": "one2One"}`, []string{}},
		{"many2One", `{"type": "many2One"}`, []string{}},
		{"one2Many", `{"type": "one2Many"}`, []string{}},
		{"many2Many", `{"type": "many2Many", "onDelete": "cascade", "preload": true}`, []string{}},
		{"missing type", `{}`, []string{"Property 'author.x-relation.type' is required"}},
		{"unknown type", `{"type": "hasMany"}`, []string{
			"Property 'author.x-relation.type' must be one of [one2One, many2One, one2Many, many2Many]",
		}},
		{"not an object", `"many2One"`, []string{"Property 'author.x-relation' must be an object"}},
		{"bad options", `{"type": "many2One", "inversedBy": 1, "preload": "yes", "onDelete": "drop"}`, []string{
			"Property 'author.x-relation.inversedBy' must be a string",
			"Property 'author.x-relation.preload' must be a boolean",
			"Property 'author.x-relation.onDelete' must be one of [cascade, setNull, restrict, noAction, setDefault]",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"name": "Post", "properties": {"author": {"$ref": "User", "x-relation": ` + tt.relation + `}}}`
			res := validate(t, doc)
			if diff := cmp.Diff(tt.errors, res.Errors); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.errors) == 0, res.Valid)
		})
	}
}

func TestRefAndTypeWarns(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"author": {"$ref": "User", "type": "string", "x-relation": {"type": "many2One"}}}}`)

	assert.True(t, res.Valid)
	assert.Equal(t, []string{"Property 'author': Relationship fields should use $ref, not type"}, res.Warnings)
}

func TestRefMustBeString(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"author": {"$ref": 3, "x-relation": {"type": "many2One"}}}}`)

	assert.Equal(t, []string{"Property 'author.$ref' must be a string"}, res.Errors)
}

func TestArrayItemsPath(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"tags": {"type": "array", "items": {"type": "nope"}}}}`)

	require.Len(t, res.Errors, 1)
	assert.True(t, strings.HasPrefix(res.Errors[0], "Property 'tags[]': Invalid type 'nope'"), res.Errors[0])
}

func TestArrayItemsNotObject(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"tags": {"type": "array", "items": "string"}}}`)

	assert.Equal(t, []string{"Property 'tags[]' must be an object"}, res.Errors)
}

func TestNestedObjectPaths(t *testing.T) {
	doc := `{
		"name": "Person",
		"properties": {
			"address": {
				"type": "object",
				"label": 5,
				"properties": {
					"city": {"type": "object", "properties": {
						"name": {"type": "string", "ui": {"widget": "slider"}},
						"skipped": "not a field"
					}},
					"lines": {"type": "array", "items": {"type": "object", "properties": {
						"text": {}
					}}}
				}
			}
		}
	}`
	res := validate(t, doc)

	want := []string{
		"Property 'address.city.name.ui.widget' must be one of " + setString(Widgets),
		"Property 'address.lines[].text': Must have either $ref or type",
		"Property 'address.label' must be string or object",
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedPropertiesMustBeObject(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"meta": {"type": "object", "properties": []}}}`)

	assert.Equal(t, []string{"Property 'meta.properties' must be an object"}, res.Errors)
}

func TestDeeplyNestedFields(t *testing.T) {
	var b strings.Builder
	depth := 200
	b.WriteString(`{"name": "Deep", "properties": {"root": `)
	for i := 0; i < depth; i++ {
		b.WriteString(`{"type": "object", "properties": {"n": `)
	}
	b.WriteString(`{"type": "bogus"}`)
	for i := 0; i < depth; i++ {
		b.WriteString(`}}`)
	}
	b.WriteString(`}}`)

	res := validate(t, b.String())
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Property 'root"+strings.Repeat(".n", depth)+"': Invalid type 'bogus'")
}

func TestPropertyMustBeObject(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"title": "string", "body": {"type": "text"}}}`)

	assert.Equal(t, []string{"Property 'title' must be an object"}, res.Errors)
}

func TestValidationRules(t *testing.T) {
	doc := `{"name": "Post", "properties": {"title": {"type": "string", "validate": {
		"required": "yes",
		"min": "1",
		"max": 10,
		"pattern": 4,
		"format": "ipv4",
		"enum": ["a", 1],
		"custom": [{"code": "slug"}, {"params": {}}, "x"],
		"errorMessage": {"en": "bad", "zh": "坏"}
	}}}}`
	res := validate(t, doc)

	want := []string{
		"Property 'title.validate.required' must be a boolean",
		"Property 'title.validate.min' must be a number",
		"Property 'title.validate.pattern' must be a string",
		"Property 'title.validate.format' must be one of " + setString(Formats),
		"Property 'title.validate.enum' must contain only strings",
		"Property 'title.validate.custom[1]' must have 'code' field",
		"Property 'title.validate.custom[2]' must be an object",
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRulesNotObject(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {"title": {"type": "string", "validate": true, "ui": []}}}`)

	assert.Equal(t, []string{
		"Property 'title.validate' must be an object",
		"Property 'title.ui' must be an object",
	}, res.Errors)
}

func TestFieldUI(t *testing.T) {
	doc := `{"name": "Post", "properties": {"status": {"type": "enum", "ui": {
		"widget": "select",
		"placeholder": {"en": "Pick"},
		"showInList": 1,
		"span": "12",
		"icon": false,
		"size": "xl",
		"style": "bold",
		"options": [
			{"value": "draft", "label": "Draft"},
			{"label": "Missing value"},
			{"value": "x", "disabled": "no"},
			3
		]
	}}}}`
	res := validate(t, doc)

	want := []string{
		"Property 'status.ui.showInList' must be a boolean",
		"Property 'status.ui.span' must be a number",
		"Property 'status.ui.icon' must be a string",
		"Property 'status.ui.size' must be 'sm', 'md', or 'lg'",
		"Property 'status.ui.style' must be an object",
		"Property 'status.ui.options[1]' must have 'value'",
		"Property 'status.ui.options[2]' must have 'label'",
		"Property 'status.ui.options[2].disabled' must be a boolean",
		"Property 'status.ui.options[3]' must be an object",
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldFlags(t *testing.T) {
	doc := `{"name": "Post", "properties": {"cover": {
		"type": "media",
		"unique": "true",
		"private": false,
		"version": 0,
		"$component": 7,
		"relation-type": "embed",
		"allowedTypes": ["image", "pdf", "audio", 9]
	}}}`
	res := validate(t, doc)

	want := []string{
		"Property 'cover.unique' must be a boolean",
		"Property 'cover.version' must be an integer >= 1",
		"Property 'cover.$component' must be a string",
		"Property 'cover.relation-type' must be one of [flatten, relation]",
		"Property 'cover.allowedTypes' contains invalid type 'pdf'",
		"Property 'cover.allowedTypes' contains invalid type '9'",
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionValues(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"1", true},
		{"42", true},
		{"0", false},
		{"-3", false},
		{"1.5", false},
		{"2.0", false},
		{`"2"`, false},
		{"true", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			res := validate(t, `{"name": "Post", "properties": {"v": {"type": "version", "version": `+tt.value+`}}}`)
			assert.Equal(t, tt.valid, res.Valid, res.Errors)
		})
	}
}

// ============================================================
// ROOT
// ============================================================

func TestRootFields(t *testing.T) {
	doc := `{
		"name": 12,
		"collectionName": ["posts"],
		"description": 3,
		"softDelete": "no",
		"info": {"displayName": {"en": "Post"}, "description": false, "icon": 1, "locale": "en"},
		"ui": {"submitText": "Save", "resetText": 2, "showReset": "y", "layout": {"direction": "diagonal", "gap": "8", "columns": 2.5}},
		"properties": {}
	}`
	res := validate(t, doc)

	want := []string{
		"Field 'name' must be a string",
		"Field 'collectionName' must be a string",
		"Field 'description' must be string or object (for i18n)",
		"Field 'softDelete' must be a boolean",
		"info.description must be string or object",
		"info.icon must be a string",
		"ui.resetText must be string or object",
		"ui.showReset must be a boolean",
		"ui.layout.direction must be one of [vertical, horizontal]",
		"ui.layout.gap must be a number",
		"ui.layout.columns must be an integer",
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRootSectionsNotObjects(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": [], "info": "x", "ui": {"layout": 1}}`)

	assert.Equal(t, []string{
		"Field 'properties' must be an object",
		"Field 'info' must be an object",
		"ui.layout must be an object",
	}, res.Errors)
}

func TestPascalCaseDoesNotAffectValidity(t *testing.T) {
	for _, name := range []string{"post", "_Post", "9lives", ""} {
		t.Run(name, func(t *testing.T) {
			res := validate(t, `{"name": "`+name+`", "properties": {}}`)
			assert.True(t, res.Valid)
			assert.Len(t, res.Warnings, 1)
		})
	}

	res := validate(t, `{"name": "Éclair", "properties": {}}`)
	assert.Empty(t, res.Warnings)
}

// ============================================================
// INDEXES & FEATURES
// ============================================================

func TestIndexes(t *testing.T) {
	doc := `{"name": "Post", "properties": {}, "indexes": [
		{"type": "unique", "name": "uniq_slug", "columns": ["slug"]},
		{"columns": ["a", "b"]},
		{"type": "btree", "name": 5, "columns": []},
		{"type": "index"},
		{"type": "fulltext", "columns": "title"},
		{"type": "index", "columns": ["ok", 1, null], "unique": "yes"},
		"idx"
	]}`
	res := validate(t, doc)

	wantErrors := []string{
		"indexes[2].type must be one of [unique, fulltext, index]",
		"indexes[2].name must be a string",
		"indexes[2].columns cannot be empty",
		"indexes[3] missing required 'columns' field",
		"indexes[4].columns must be an array",
		"indexes[5].columns must contain only strings",
		"indexes[5].columns must contain only strings",
		"indexes[5].unique must be a boolean",
		"indexes[6] must be an object",
	}
	if diff := cmp.Diff(wantErrors, res.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"indexes[1] missing type, defaulting to 'index'"}, res.Warnings)
}

func TestIndexColumnsFix(t *testing.T) {
	broken := validate(t, `{"name": "Post", "properties": {}, "indexes": [{"type": "index"}]}`)
	assert.Equal(t, []string{"indexes[0] missing required 'columns' field"}, broken.Errors)

	fixed := validate(t, `{"name": "Post", "properties": {}, "indexes": [{"type": "index", "columns": ["slug"]}]}`)
	assert.True(t, fixed.Valid)
	assert.Empty(t, fixed.Errors)
}

func TestIndexesNotArray(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {}, "indexes": {}}`)
	assert.Equal(t, []string{"Field 'indexes' must be an array"}, res.Errors)
}

func TestFeatures(t *testing.T) {
	res := validate(t, `{"name": "Post", "properties": {}, "features": {"draft": true, "i18n": "on", "audit": 1}}`)
	assert.Equal(t, []string{
		"features.i18n must be a boolean",
		"features.audit must be a boolean",
	}, res.Errors)

	res = validate(t, `{"name": "Post", "properties": {}, "features": []}`)
	assert.Equal(t, []string{"Field 'features' must be an object"}, res.Errors)
}

// ============================================================
// LOAD ERRORS
// ============================================================

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope", "schema.json")
		res := ValidateFile(path)

		assert.False(t, res.Valid)
		assert.Equal(t, []string{"Schema file not found: " + path}, res.Errors)
		assert.True(t, IsLoadError(res.LoadErr, LoadNotFound))
	})

	t.Run("malformed json", func(t *testing.T) {
		res := ValidateFile(writeSchema(t, `{"name": "Post",`))

		require.Len(t, res.Errors, 1)
		assert.True(t, strings.HasPrefix(res.Errors[0], "Invalid JSON: "), res.Errors[0])
		assert.True(t, IsLoadError(res.LoadErr, LoadInvalidJSON))
		assert.Empty(t, res.Warnings)
	})

	t.Run("syntax error position", func(t *testing.T) {
		res := ValidateBytes("post", []byte("{\n  \"name\": \"Post\",\n  \"properties\": {\"t\": {\"type\": tru}}\n}"))

		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], ": line 3 column 35 (char 54)")
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		res := ValidateBytes("post", []byte("{\"name\": \"Po\xffst\", \"properties\": {}}"))

		assert.False(t, res.Valid)
		assert.Equal(t, []string{"Unexpected error: invalid UTF-8: cannot decode byte 0xff in position 12"}, res.Errors)
		assert.True(t, IsLoadError(res.LoadErr, LoadUnexpected))
		assert.Empty(t, res.Warnings)
	})

	t.Run("directory", func(t *testing.T) {
		res := ValidateFile(t.TempDir())

		require.Len(t, res.Errors, 1)
		assert.True(t, strings.HasPrefix(res.Errors[0], "Unexpected error: "), res.Errors[0])
	})

	t.Run("root not an object", func(t *testing.T) {
		res := validate(t, `["name", "properties"]`)

		assert.Equal(t, []string{"Unexpected error: schema root must be a JSON object, got array"}, res.Errors)
		assert.True(t, IsLoadError(res.LoadErr, LoadUnexpected))
	})
}

// ============================================================
// PROPERTIES OF THE WHOLE RUN
// ============================================================

func TestChecksDoNotShortCircuit(t *testing.T) {
	doc := `{"properties": {"a": {}}, "indexes": [{}], "features": {"x": 1}}`
	res := validate(t, doc)

	assert.Equal(t, []string{
		"Missing required field: name",
		"Property 'a': Must have either $ref or type",
		"indexes[0] missing required 'columns' field",
		"features.x must be a boolean",
	}, res.Errors)
	assert.Equal(t, []string{"indexes[0] missing type, defaulting to 'index'"}, res.Warnings)
}

func TestIdempotent(t *testing.T) {
	path := writeSchema(t, `{
		"name": "order",
		"properties": {
			"z": {"type": "nope"},
			"a": {"$ref": "User"},
			"m": {"type": "array", "items": {}}
		},
		"indexes": [{"columns": []}],
		"features": {"b": 1, "a": 2}
	}`)

	v := NewValidator()
	first := v.Validate(path)
	second := v.Validate(path)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ between runs (-first +second):\n%s", diff)
	}
	assert.Len(t, first.Errors, 6)
	assert.True(t, strings.HasPrefix(first.Errors[0], "Property 'z'"))
	assert.True(t, strings.HasPrefix(first.Errors[1], "Property 'a'"))
	assert.True(t, strings.HasPrefix(first.Errors[2], "Property 'm[]'"))
}

func TestResultSchemaName(t *testing.T) {
	path := writeSchema(t, `{"name": "Post", "properties": {}}`)
	res := ValidateFile(path)

	assert.Equal(t, path, res.Schema)
	assert.True(t, res.Valid)
	assert.Nil(t, res.LoadErr)
}
