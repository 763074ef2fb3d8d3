package entity

import (
	"fmt"

	"github.com/cms-kit/schemacheck/internal/jsontree"
)

// Decode builds the typed model from a parsed document. It expects a
// document that already passed validation: values of the wrong shape are
// skipped rather than reported. It fails only when the root is not an object
// or a field declares neither $ref nor type.
func Decode(root jsontree.Value) (*Schema, error) {
	obj, ok := root.(*jsontree.Object)
	if !ok {
		return nil, fmt.Errorf("schema root must be an object, got %s", jsontree.Kind(root))
	}

	s := &Schema{
		Name:           str(obj, "name"),
		CollectionName: str(obj, "collectionName"),
		Description:    text(obj, "description"),
		SoftDelete:     boolean(obj, "softDelete"),
	}

	if info, ok := object(obj, "info"); ok {
		s.Info = &Info{
			DisplayName: text(info, "displayName"),
			Description: text(info, "description"),
			Icon:        str(info, "icon"),
			Locale:      str(info, "locale"),
		}
	}

	if ui, ok := object(obj, "ui"); ok {
		s.UI = decodeFormUI(ui)
	}

	if props, ok := object(obj, "properties"); ok {
		decoded, err := decodeProperties("", props)
		if err != nil {
			return nil, err
		}
		s.Properties = decoded
	}

	if arr, ok := array(obj, "indexes"); ok {
		for _, v := range arr {
			idx, ok := v.(*jsontree.Object)
			if !ok {
				continue
			}
			index := Index{
				Type:    IndexType(str(idx, "type")),
				Name:    str(idx, "name"),
				Columns: stringList(idx, "columns"),
				Unique:  boolean(idx, "unique"),
			}
			if index.Type == "" {
				index.Type = IndexPlain
			}
			s.Indexes = append(s.Indexes, index)
		}
	}

	if features, ok := object(obj, "features"); ok {
		s.Features = make(map[string]bool, features.Len())
		features.Each(func(name string, v jsontree.Value) {
			if b, ok := v.(jsontree.Bool); ok {
				s.Features[name] = bool(b)
			}
		})
	}

	return s, nil
}

func decodeFormUI(ui *jsontree.Object) *FormUI {
	out := &FormUI{
		SubmitText: text(ui, "submitText"),
		ResetText:  text(ui, "resetText"),
		ShowReset:  optBool(ui, "showReset"),
	}
	if layout, ok := object(ui, "layout"); ok {
		out.Layout = &Layout{
			Direction: Direction(str(layout, "direction")),
			Gap:       optFloat(layout, "gap"),
		}
		if cols := optFloat(layout, "columns"); cols != nil {
			n := int(*cols)
			out.Layout.Columns = &n
		}
	}
	return out
}

func decodeProperties(prefix string, props *jsontree.Object) ([]Property, error) {
	var out []Property
	for _, name := range props.Keys() {
		v, _ := props.Get(name)
		def, ok := v.(*jsontree.Object)
		if !ok {
			continue
		}
		f, err := decodeField(prefix+name, def)
		if err != nil {
			return nil, err
		}
		out = append(out, Property{Name: name, Field: f})
	}
	return out, nil
}

func decodeField(path string, def *jsontree.Object) (Field, error) {
	common := decodeCommon(def)

	if def.Has("$ref") {
		rf := &RelationField{FieldCommon: common, Ref: str(def, "$ref")}
		if rel, ok := object(def, "x-relation"); ok {
			rf.Relation = Relation{
				Kind:       RelationKind(str(rel, "type")),
				InversedBy: str(rel, "inversedBy"),
				MapBy:      str(rel, "mapBy"),
				LabelField: str(rel, "labelField"),
				Preload:    boolean(rel, "preload"),
				Writable:   optBool(rel, "writable"),
				Queryable:  optBool(rel, "queryable"),
				OnDelete:   DeleteAction(str(rel, "onDelete")),
			}
		}
		return rf, nil
	}

	if !def.Has("type") {
		return nil, fmt.Errorf("property '%s': must have either $ref or type", path)
	}

	sf := &ScalarField{FieldCommon: common, Type: FieldType(str(def, "type"))}
	switch sf.Type {
	case FieldTypeArray:
		if items, ok := object(def, "items"); ok {
			f, err := decodeField(path+"[]", items)
			if err != nil {
				return nil, err
			}
			sf.Items = f
		}
	case FieldTypeObject:
		if props, ok := object(def, "properties"); ok {
			nested, err := decodeProperties(path+".", props)
			if err != nil {
				return nil, err
			}
			sf.Properties = nested
		}
	}
	return sf, nil
}

func decodeCommon(def *jsontree.Object) FieldCommon {
	c := FieldCommon{
		Label:       text(def, "label"),
		Description: text(def, "description"),
		Unique:      boolean(def, "unique"),
		PrimaryKey:  boolean(def, "primaryKey"),
		Private:     boolean(def, "private"),
		Writable:    optBool(def, "writable"),
		Queryable:   optBool(def, "queryable"),
		Exportable:  optBool(def, "exportable"),
		Importable:  optBool(def, "importable"),
		Component:   str(def, "$component"),
		ComponentAs: ComponentMode(str(def, "relation-type")),
	}
	if v := optFloat(def, "version"); v != nil {
		c.Version = int(*v)
	}
	for _, m := range stringList(def, "allowedTypes") {
		c.AllowedTypes = append(c.AllowedTypes, MediaType(m))
	}
	if d, ok := def.Get("default"); ok {
		c.Default = jsontree.ToAny(d)
	}
	if rules, ok := object(def, "validate"); ok {
		c.Rules = decodeRules(rules)
	}
	if ui, ok := object(def, "ui"); ok {
		c.UI = decodeFieldUI(ui)
	}
	return c
}

func decodeRules(v *jsontree.Object) *Rules {
	r := &Rules{
		Required:     boolean(v, "required"),
		Nullable:     boolean(v, "nullable"),
		Positive:     boolean(v, "positive"),
		Negative:     boolean(v, "negative"),
		NonNegative:  boolean(v, "nonNegative"),
		Integer:      boolean(v, "integer"),
		Min:          optFloat(v, "min"),
		Max:          optFloat(v, "max"),
		Length:       optFloat(v, "length"),
		Pattern:      str(v, "pattern"),
		Format:       Format(str(v, "format")),
		Enum:         stringList(v, "enum"),
		ErrorMessage: text(v, "errorMessage"),
	}
	if custom, ok := array(v, "custom"); ok {
		for _, item := range custom {
			obj, ok := item.(*jsontree.Object)
			if !ok {
				continue
			}
			cr := CustomRule{Code: str(obj, "code")}
			if params, ok := object(obj, "params"); ok {
				cr.Params, _ = jsontree.ToAny(params).(map[string]any)
			}
			r.Custom = append(r.Custom, cr)
		}
	}
	return r
}

func decodeFieldUI(v *jsontree.Object) *FieldUI {
	ui := &FieldUI{
		Widget:      Widget(str(v, "widget")),
		Placeholder: text(v, "placeholder"),
		ClassName:   str(v, "className"),
		Icon:        str(v, "icon"),
		Prefix:      str(v, "prefix"),
		Suffix:      str(v, "suffix"),
		Size:        Size(str(v, "size")),
	}
	for _, name := range uiFlags {
		if b := optBool(v, name); b != nil {
			if ui.Flags == nil {
				ui.Flags = make(map[string]bool)
			}
			ui.Flags[name] = *b
		}
	}
	for _, name := range uiNumbers {
		if n := optFloat(v, name); n != nil {
			if ui.Numbers == nil {
				ui.Numbers = make(map[string]float64)
			}
			ui.Numbers[name] = *n
		}
	}
	if style, ok := object(v, "style"); ok {
		ui.Style, _ = jsontree.ToAny(style).(map[string]any)
	}
	if opts, ok := array(v, "options"); ok {
		for _, item := range opts {
			obj, ok := item.(*jsontree.Object)
			if !ok {
				continue
			}
			opt := FieldOption{Label: text(obj, "label"), Disabled: boolean(obj, "disabled")}
			if val, ok := obj.Get("value"); ok {
				opt.Value = jsontree.ToAny(val)
			}
			ui.Options = append(ui.Options, opt)
		}
	}
	return ui
}

func str(o *jsontree.Object, key string) string {
	v, _ := o.Get(key)
	s, _ := v.(jsontree.String)
	return string(s)
}

func boolean(o *jsontree.Object, key string) bool {
	v, _ := o.Get(key)
	b, _ := v.(jsontree.Bool)
	return bool(b)
}

func optBool(o *jsontree.Object, key string) *bool {
	v, _ := o.Get(key)
	b, ok := v.(jsontree.Bool)
	if !ok {
		return nil
	}
	out := bool(b)
	return &out
}

func optFloat(o *jsontree.Object, key string) *float64 {
	v, _ := o.Get(key)
	n, ok := v.(jsontree.Number)
	if !ok {
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil
	}
	return &f
}

func object(o *jsontree.Object, key string) (*jsontree.Object, bool) {
	v, _ := o.Get(key)
	obj, ok := v.(*jsontree.Object)
	return obj, ok
}

func array(o *jsontree.Object, key string) (jsontree.Array, bool) {
	v, _ := o.Get(key)
	arr, ok := v.(jsontree.Array)
	return arr, ok
}

func stringList(o *jsontree.Object, key string) []string {
	arr, ok := array(o, key)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range arr {
		if s, ok := v.(jsontree.String); ok {
			out = append(out, string(s))
		}
	}
	return out
}

func text(o *jsontree.Object, key string) *Text {
	v, _ := o.Get(key)
	switch t := v.(type) {
	case jsontree.String:
		return &Text{Plain: string(t)}
	case *jsontree.Object:
		loc := make(map[string]string, t.Len())
		t.Each(func(locale string, val jsontree.Value) {
			if s, ok := val.(jsontree.String); ok {
				loc[locale] = string(s)
			}
		})
		return &Text{Localized: loc}
	}
	return nil
}
