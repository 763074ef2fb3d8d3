// Package designer builds entity schema documents from an interactive
// question session.
package designer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cms-kit/schemacheck/internal/jsontree"
	"github.com/cms-kit/schemacheck/pkg/entity"
)

// none is the select option for leaving an optional enum unset.
const none = "(none)"

// Designer walks the user through an entity: metadata, fields,
// relationships, indexes, then form UI and features.
type Designer struct {
	p   Prompter
	out io.Writer

	name  string
	props *jsontree.Object
}

// New creates a designer asking through p. Section headers and progress
// lines go to out.
func New(p Prompter, out io.Writer) *Designer {
	return &Designer{p: p, out: out}
}

// Run asks every question and returns the document in the order the keys
// are written to disk.
func (d *Designer) Run(ctx context.Context) (*jsontree.Object, error) {
	d.props = jsontree.NewObject()
	doc := jsontree.NewObject()

	steps := []func(context.Context, *jsontree.Object) error{
		d.entity,
		d.fields,
		d.relations,
		d.indexes,
		d.formUI,
	}
	for _, step := range steps {
		if err := step(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// ============================================================
// ENTITY
// ============================================================

func (d *Designer) entity(ctx context.Context, doc *jsontree.Object) error {
	d.section("Entity")

	name, err := d.p.Input(ctx, InputConfig{
		Message:  "Entity name (PascalCase)",
		Validate: identifier,
	})
	if err != nil {
		return err
	}
	d.name = name

	collection, err := d.p.Input(ctx, InputConfig{
		Message:  "Collection name",
		Default:  strings.ToLower(name) + "s",
		Validate: identifier,
	})
	if err != nil {
		return err
	}
	desc, err := d.p.Input(ctx, InputConfig{Message: "Description"})
	if err != nil {
		return err
	}
	softDelete, err := d.p.Confirm(ctx, ConfirmConfig{Message: "Enable soft delete?"})
	if err != nil {
		return err
	}
	display, err := d.p.Input(ctx, InputConfig{Message: "Display name", Default: name})
	if err != nil {
		return err
	}
	icon, err := d.p.Input(ctx, InputConfig{Message: "Icon", Default: "database"})
	if err != nil {
		return err
	}

	doc.Set("name", jsontree.String(name))
	doc.Set("collectionName", jsontree.String(collection))
	if desc != "" {
		doc.Set("description", jsontree.String(desc))
	}
	doc.Set("softDelete", jsontree.Bool(softDelete))

	info := jsontree.NewObject()
	info.Set("displayName", jsontree.String(display))
	if desc != "" {
		info.Set("description", jsontree.String(desc))
	}
	if icon != "" {
		info.Set("icon", jsontree.String(icon))
	}
	doc.Set("info", info)
	doc.Set("properties", d.props)
	return nil
}

// ============================================================
// FIELDS
// ============================================================

func (d *Designer) fields(ctx context.Context, _ *jsontree.Object) error {
	d.section("Fields")
	d.println("Leave the field name blank to finish.")

	for {
		name, err := d.p.Input(ctx, InputConfig{
			Message:  "Field name (camelCase)",
			Validate: d.newProperty(true),
		})
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}

		def, err := d.field(ctx, name)
		if err != nil {
			return err
		}
		d.props.Set(name, def)
		d.println("Added field: " + name)
	}
}

func (d *Designer) field(ctx context.Context, name string) (*jsontree.Object, error) {
	typ, err := d.p.Select(ctx, SelectConfig{
		Message: "Field type",
		Options: names(entity.FieldTypes),
		Default: string(entity.FieldTypeString),
	})
	if err != nil {
		return nil, err
	}
	label, err := d.p.Input(ctx, InputConfig{Message: "Label", Default: name})
	if err != nil {
		return nil, err
	}
	desc, err := d.p.Input(ctx, InputConfig{Message: "Field description"})
	if err != nil {
		return nil, err
	}

	rules, err := d.rules(ctx, entity.FieldType(typ))
	if err != nil {
		return nil, err
	}
	ui, err := d.fieldUI(ctx, entity.FieldType(typ), rules)
	if err != nil {
		return nil, err
	}

	def := jsontree.NewObject()
	def.Set("type", jsontree.String(typ))
	def.Set("label", jsontree.String(label))
	if desc != "" {
		def.Set("description", jsontree.String(desc))
	}
	if rules.Len() > 0 {
		def.Set("validate", rules)
	}
	def.Set("ui", ui)
	return def, nil
}

func (d *Designer) rules(ctx context.Context, typ entity.FieldType) (*jsontree.Object, error) {
	rules := jsontree.NewObject()

	required, err := d.p.Confirm(ctx, ConfirmConfig{Message: "Required?"})
	if err != nil {
		return nil, err
	}
	if required {
		rules.Set("required", jsontree.Bool(true))
	}

	switch typ {
	case entity.FieldTypeBoolean, entity.FieldTypeEnum, entity.FieldTypeMedia:
	default:
		for _, bound := range []struct{ key, question string }{
			{"min", "Minimum value or length"},
			{"max", "Maximum value or length"},
		} {
			val, err := d.p.Input(ctx, InputConfig{
				Message:  bound.question,
				Validate: optionalNumber,
			})
			if err != nil {
				return nil, err
			}
			if val = strings.TrimSpace(val); val != "" {
				rules.Set(bound.key, jsontree.Number(val))
			}
		}
	}

	if typ == entity.FieldTypeString {
		format, err := d.p.Select(ctx, SelectConfig{
			Message: "Format",
			Options: append([]string{none}, names(entity.Formats)...),
			Default: none,
		})
		if err != nil {
			return nil, err
		}
		if format != none {
			rules.Set("format", jsontree.String(format))
		}
	}

	if typ == entity.FieldTypeEnum {
		values, err := d.p.Input(ctx, InputConfig{
			Message:  "Allowed values (comma-separated)",
			Validate: requiredList,
		})
		if err != nil {
			return nil, err
		}
		var enum jsontree.Array
		for _, v := range splitList(values) {
			enum = append(enum, jsontree.String(v))
		}
		rules.Set("enum", enum)
	}

	return rules, nil
}

func (d *Designer) fieldUI(ctx context.Context, typ entity.FieldType, rules *jsontree.Object) (*jsontree.Object, error) {
	widget, err := d.p.Select(ctx, SelectConfig{
		Message: "Widget",
		Options: names(entity.Widgets),
		Default: string(defaultWidget(typ)),
	})
	if err != nil {
		return nil, err
	}
	inList, err := d.p.Confirm(ctx, ConfirmConfig{Message: "Show in list?", Default: true})
	if err != nil {
		return nil, err
	}
	inForm, err := d.p.Confirm(ctx, ConfirmConfig{Message: "Show in form?", Default: true})
	if err != nil {
		return nil, err
	}
	placeholder, err := d.p.Input(ctx, InputConfig{Message: "Placeholder"})
	if err != nil {
		return nil, err
	}

	ui := jsontree.NewObject()
	ui.Set("widget", jsontree.String(widget))
	ui.Set("showInList", jsontree.Bool(inList))
	ui.Set("showInForm", jsontree.Bool(inForm))
	if placeholder != "" {
		ui.Set("placeholder", jsontree.String(placeholder))
	}

	// Enum values double as the select options.
	if enum, ok := rules.Get("enum"); ok {
		var options jsontree.Array
		for _, v := range enum.(jsontree.Array) {
			opt := jsontree.NewObject()
			opt.Set("value", v)
			opt.Set("label", v)
			options = append(options, opt)
		}
		ui.Set("options", options)
	}
	return ui, nil
}

func defaultWidget(typ entity.FieldType) entity.Widget {
	switch typ {
	case entity.FieldTypeText, entity.FieldTypeRichText, entity.FieldTypeJSON:
		return entity.WidgetTextarea
	case entity.FieldTypeInteger:
		return entity.WidgetNumber
	case entity.FieldTypeNumber:
		return entity.WidgetDecimal
	case entity.FieldTypeBoolean:
		return entity.WidgetSwitch
	case entity.FieldTypeEnum:
		return entity.WidgetSelect
	case entity.FieldTypeDatetime:
		return entity.WidgetDatetime
	case entity.FieldTypePassword:
		return entity.WidgetPassword
	case entity.FieldTypeMedia:
		return entity.WidgetFile
	default:
		return entity.WidgetText
	}
}

// ============================================================
// RELATIONSHIPS
// ============================================================

func (d *Designer) relations(ctx context.Context, _ *jsontree.Object) error {
	d.section("Relationships")

	for {
		more, err := d.p.Confirm(ctx, ConfirmConfig{Message: "Add a relationship?"})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		name, err := d.p.Input(ctx, InputConfig{
			Message:  "Relationship field name (camelCase)",
			Validate: d.newProperty(false),
		})
		if err != nil {
			return err
		}
		def, target, kind, err := d.relation(ctx, name)
		if err != nil {
			return err
		}
		d.props.Set(name, def)
		d.println(fmt.Sprintf("Added relationship: %s -> %s (%s)", name, target, kind))
	}
}

func (d *Designer) relation(ctx context.Context, name string) (*jsontree.Object, string, string, error) {
	target, err := d.p.Input(ctx, InputConfig{
		Message:  "Target entity (PascalCase)",
		Validate: identifier,
	})
	if err != nil {
		return nil, "", "", err
	}
	kind, err := d.p.Select(ctx, SelectConfig{
		Message: "Relationship type",
		Options: names(entity.RelationKinds),
		Default: string(entity.RelationManyToOne),
	})
	if err != nil {
		return nil, "", "", err
	}
	label, err := d.p.Input(ctx, InputConfig{Message: "Label", Default: name})
	if err != nil {
		return nil, "", "", err
	}
	labelField, err := d.p.Input(ctx, InputConfig{Message: "Label field", Default: "name"})
	if err != nil {
		return nil, "", "", err
	}
	onDelete, err := d.p.Select(ctx, SelectConfig{
		Message: "On delete",
		Options: append([]string{none}, names(entity.DeleteActions)...),
		Default: none,
	})
	if err != nil {
		return nil, "", "", err
	}
	preload, err := d.p.Confirm(ctx, ConfirmConfig{Message: "Preload?"})
	if err != nil {
		return nil, "", "", err
	}

	rel := jsontree.NewObject()
	rel.Set("type", jsontree.String(kind))
	if labelField != "" {
		rel.Set("labelField", jsontree.String(labelField))
	}
	if onDelete != none {
		rel.Set("onDelete", jsontree.String(onDelete))
	}
	rel.Set("preload", jsontree.Bool(preload))

	def := jsontree.NewObject()
	def.Set("$ref", jsontree.String(target))
	def.Set("label", jsontree.String(label))
	def.Set("x-relation", rel)
	return def, target, kind, nil
}

// ============================================================
// INDEXES
// ============================================================

func (d *Designer) indexes(ctx context.Context, doc *jsontree.Object) error {
	d.section("Indexes")

	var indexes jsontree.Array
	for {
		more, err := d.p.Confirm(ctx, ConfirmConfig{Message: "Add an index?"})
		if err != nil {
			return err
		}
		if !more {
			break
		}

		typ, err := d.p.Select(ctx, SelectConfig{
			Message: "Index type",
			Options: names(entity.IndexTypes),
			Default: string(entity.IndexPlain),
		})
		if err != nil {
			return err
		}
		cols, err := d.p.Input(ctx, InputConfig{
			Message:  "Columns (comma-separated)",
			Validate: requiredList,
		})
		if err != nil {
			return err
		}
		columns := splitList(cols)
		name, err := d.p.Input(ctx, InputConfig{
			Message: "Index name",
			Default: "idx_" + strings.ToLower(d.name) + "_" + strings.Join(columns, "_"),
		})
		if err != nil {
			return err
		}

		var colValues jsontree.Array
		for _, c := range columns {
			colValues = append(colValues, jsontree.String(c))
		}
		idx := jsontree.NewObject()
		idx.Set("type", jsontree.String(typ))
		idx.Set("name", jsontree.String(name))
		idx.Set("columns", colValues)
		indexes = append(indexes, idx)
		d.println("Added index: " + name)
	}

	if len(indexes) > 0 {
		doc.Set("indexes", indexes)
	}
	return nil
}

// ============================================================
// FORM UI AND FEATURES
// ============================================================

func (d *Designer) formUI(ctx context.Context, doc *jsontree.Object) error {
	d.section("Form")

	submit, err := d.p.Input(ctx, InputConfig{Message: "Submit button text", Default: "Submit"})
	if err != nil {
		return err
	}
	reset, err := d.p.Input(ctx, InputConfig{Message: "Reset button text", Default: "Reset"})
	if err != nil {
		return err
	}
	showReset, err := d.p.Confirm(ctx, ConfirmConfig{Message: "Show reset button?"})
	if err != nil {
		return err
	}

	ui := jsontree.NewObject()
	ui.Set("submitText", jsontree.String(submit))
	ui.Set("resetText", jsontree.String(reset))
	ui.Set("showReset", jsontree.Bool(showReset))
	doc.Set("ui", ui)

	features := jsontree.NewObject()
	if v, ok := doc.Get("softDelete"); ok {
		features.Set("softDelete", v)
	}
	for _, f := range []struct {
		name, question string
		def            bool
	}{
		{"export", "Enable export?", true},
		{"import", "Enable import?", false},
		{"batch", "Enable batch operations?", true},
	} {
		on, err := d.p.Confirm(ctx, ConfirmConfig{Message: f.question, Default: f.def})
		if err != nil {
			return err
		}
		features.Set(f.name, jsontree.Bool(on))
	}
	doc.Set("features", features)
	return nil
}

// ============================================================
// HELPERS
// ============================================================

func (d *Designer) section(title string) {
	fmt.Fprintf(d.out, "\n=== %s ===\n", title)
}

func (d *Designer) println(msg string) {
	fmt.Fprintln(d.out, msg)
}

// newProperty validates a property name that is not taken yet. Blank names
// pass when allowBlank is set.
func (d *Designer) newProperty(allowBlank bool) func(string) error {
	return func(s string) error {
		if s == "" && allowBlank {
			return nil
		}
		if err := identifier(s); err != nil {
			return err
		}
		if d.props.Has(s) {
			return fmt.Errorf("property %q is already defined", s)
		}
		return nil
	}
}

func identifier(s string) error {
	if s == "" {
		return fmt.Errorf("a value is required")
	}
	if strings.ContainsAny(s, " \t/\\.") {
		return fmt.Errorf("%q must not contain spaces, dots or slashes", s)
	}
	return nil
}

func optionalNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil || !json.Valid([]byte(s)) {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

func requiredList(s string) error {
	if len(splitList(s)) == 0 {
		return fmt.Errorf("at least one value is required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func names[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}
