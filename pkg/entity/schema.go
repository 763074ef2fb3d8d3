package entity

import (
	"encoding/json"
	"sort"
)

// Schema represents one entity definition (a schema.json document)
type Schema struct {
	Name           string          `json:"name"`
	CollectionName string          `json:"collectionName,omitempty"`
	Description    *Text           `json:"description,omitempty"`
	SoftDelete     bool            `json:"softDelete,omitempty"`
	Info           *Info           `json:"info,omitempty"`
	UI             *FormUI         `json:"ui,omitempty"`
	Properties     []Property      `json:"properties"`
	Indexes        []Index         `json:"indexes,omitempty"`
	Features       map[string]bool `json:"features,omitempty"`
}

// Info holds display metadata for the entity
type Info struct {
	DisplayName *Text  `json:"displayName,omitempty"`
	Description *Text  `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Locale      string `json:"locale,omitempty"`
}

// FormUI is the root form configuration
type FormUI struct {
	SubmitText *Text   `json:"submitText,omitempty"`
	ResetText  *Text   `json:"resetText,omitempty"`
	ShowReset  *bool   `json:"showReset,omitempty"`
	Layout     *Layout `json:"layout,omitempty"`
}

// Layout arranges the form fields
type Layout struct {
	Direction Direction `json:"direction,omitempty"`
	Gap       *float64  `json:"gap,omitempty"`
	Columns   *int      `json:"columns,omitempty"`
}

// Property is a named field. Properties keep document order.
type Property struct {
	Name  string `json:"name"`
	Field Field  `json:"field"`
}

// Field is either a *ScalarField or a *RelationField.
type Field interface {
	Common() *FieldCommon
	isField()
}

// FieldCommon holds the attributes every field kind may carry
type FieldCommon struct {
	Label        *Text         `json:"label,omitempty"`
	Description  *Text         `json:"description,omitempty"`
	Rules        *Rules        `json:"validate,omitempty"`
	UI           *FieldUI      `json:"ui,omitempty"`
	Unique       bool          `json:"unique,omitempty"`
	PrimaryKey   bool          `json:"primaryKey,omitempty"`
	Private      bool          `json:"private,omitempty"`
	Writable     *bool         `json:"writable,omitempty"`
	Queryable    *bool         `json:"queryable,omitempty"`
	Exportable   *bool         `json:"exportable,omitempty"`
	Importable   *bool         `json:"importable,omitempty"`
	Version      int           `json:"version,omitempty"`
	Component    string        `json:"$component,omitempty"`
	ComponentAs  ComponentMode `json:"relation-type,omitempty"`
	AllowedTypes []MediaType   `json:"allowedTypes,omitempty"`
	Default      any           `json:"default,omitempty"`
}

// ScalarField is a field with a declared type
type ScalarField struct {
	FieldCommon
	Type       FieldType  `json:"type"`
	Items      Field      `json:"items,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

// RelationField points at another entity through $ref
type RelationField struct {
	FieldCommon
	Ref      string   `json:"$ref"`
	Relation Relation `json:"x-relation"`
}

func (f *ScalarField) Common() *FieldCommon   { return &f.FieldCommon }
func (f *RelationField) Common() *FieldCommon { return &f.FieldCommon }
func (*ScalarField) isField()                 {}
func (*RelationField) isField()               {}

// Relation is the x-relation block of a relation field
type Relation struct {
	Kind       RelationKind `json:"type"`
	InversedBy string       `json:"inversedBy,omitempty"`
	MapBy      string       `json:"mapBy,omitempty"`
	LabelField string       `json:"labelField,omitempty"`
	Preload    bool         `json:"preload,omitempty"`
	Writable   *bool        `json:"writable,omitempty"`
	Queryable  *bool        `json:"queryable,omitempty"`
	OnDelete   DeleteAction `json:"onDelete,omitempty"`
}

// Rules is the validate block of a field
type Rules struct {
	Required     bool         `json:"required,omitempty"`
	Nullable     bool         `json:"nullable,omitempty"`
	Positive     bool         `json:"positive,omitempty"`
	Negative     bool         `json:"negative,omitempty"`
	NonNegative  bool         `json:"nonNegative,omitempty"`
	Integer      bool         `json:"integer,omitempty"`
	Min          *float64     `json:"min,omitempty"`
	Max          *float64     `json:"max,omitempty"`
	Length       *float64     `json:"length,omitempty"`
	Pattern      string       `json:"pattern,omitempty"`
	Format       Format       `json:"format,omitempty"`
	Enum         []string     `json:"enum,omitempty"`
	Custom       []CustomRule `json:"custom,omitempty"`
	ErrorMessage *Text        `json:"errorMessage,omitempty"`
}

// CustomRule references a named server-side validator
type CustomRule struct {
	Code   string         `json:"code"`
	Params map[string]any `json:"params,omitempty"`
}

// FieldUI is the field-level UI block
type FieldUI struct {
	Widget      Widget             `json:"widget,omitempty"`
	Placeholder *Text              `json:"placeholder,omitempty"`
	Flags       map[string]bool    `json:"flags,omitempty"`
	Numbers     map[string]float64 `json:"numbers,omitempty"`
	ClassName   string             `json:"className,omitempty"`
	Icon        string             `json:"icon,omitempty"`
	Prefix      string             `json:"prefix,omitempty"`
	Suffix      string             `json:"suffix,omitempty"`
	Size        Size               `json:"size,omitempty"`
	Style       map[string]any     `json:"style,omitempty"`
	Options     []FieldOption      `json:"options,omitempty"`
}

// Flag returns a boolean display flag such as "showInList".
func (u *FieldUI) Flag(name string) (value, ok bool) {
	if u == nil {
		return false, false
	}
	value, ok = u.Flags[name]
	return value, ok
}

// FieldOption is one choice of a select/radio widget
type FieldOption struct {
	Value    any   `json:"value"`
	Label    *Text `json:"label"`
	Disabled bool  `json:"disabled,omitempty"`
}

// Index is a declared database index
type Index struct {
	Type    IndexType `json:"type"`
	Name    string    `json:"name,omitempty"`
	Columns []string  `json:"columns"`
	Unique  bool      `json:"unique,omitempty"`
}

// Text is a plain string or a locale → string mapping
type Text struct {
	Plain     string
	Localized map[string]string
}

// IsLocalized reports whether the text carries per-locale values.
func (t *Text) IsLocalized() bool {
	return t != nil && t.Localized != nil
}

// String returns the plain value, the "en" translation, or the first
// translation in locale order.
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	if t.Localized == nil {
		return t.Plain
	}
	if en, ok := t.Localized["en"]; ok {
		return en
	}
	locales := make([]string, 0, len(t.Localized))
	for l := range t.Localized {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	if len(locales) == 0 {
		return ""
	}
	return t.Localized[locales[0]]
}

// MarshalJSON writes the text back in its source shape.
func (t Text) MarshalJSON() ([]byte, error) {
	if t.Localized != nil {
		return json.Marshal(t.Localized)
	}
	return json.Marshal(t.Plain)
}

// Property returns the top-level property with the given name.
func (s *Schema) Property(name string) (Field, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Field, true
		}
	}
	return nil, false
}

// Walk visits every field depth-first. Paths use the validator notation:
// "a" for a top-level field, "a[]" for array items, "a.b" for nested
// object properties.
func (s *Schema) Walk(fn func(path string, f Field) error) error {
	for _, p := range s.Properties {
		if err := walkField(p.Name, p.Field, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkField(path string, f Field, fn func(string, Field) error) error {
	if err := fn(path, f); err != nil {
		return err
	}
	sf, ok := f.(*ScalarField)
	if !ok {
		return nil
	}
	if sf.Items != nil {
		if err := walkField(path+"[]", sf.Items, fn); err != nil {
			return err
		}
	}
	for _, p := range sf.Properties {
		if err := walkField(path+"."+p.Name, p.Field, fn); err != nil {
			return err
		}
	}
	return nil
}

// Relations returns every relation field keyed by path.
func (s *Schema) Relations() []Property {
	var out []Property
	_ = s.Walk(func(path string, f Field) error {
		if rf, ok := f.(*RelationField); ok {
			out = append(out, Property{Name: path, Field: rf})
		}
		return nil
	})
	return out
}

// FeatureEnabled reports whether the named feature flag is switched on.
func (s *Schema) FeatureEnabled(name string) bool {
	return s.Features[name]
}

// EnabledFeatures returns the enabled feature flags in name order.
func (s *Schema) EnabledFeatures() []string {
	var out []string
	for name, on := range s.Features {
		if on {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ToJSON converts a Schema to an indented JSON string
func (s *Schema) ToJSON() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
