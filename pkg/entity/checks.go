package entity

import (
	"encoding/json"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/cms-kit/schemacheck/internal/jsontree"
)

var (
	ruleFlags   = []string{"required", "nullable", "positive", "negative", "nonNegative", "integer"}
	ruleNumbers = []string{"min", "max", "length"}

	uiFlags = []string{
		"showInList", "showInForm", "readOnly", "writeOnly", "disabled", "hidden",
		"multiple", "searchable", "filterable", "sortable", "aggregatable",
		"exportable", "importable", "batchable", "editable", "queryable",
	}
	uiNumbers = []string{"span", "rows", "step", "precision", "maxLength", "minLength", "sort"}
	uiStrings = []string{"className", "icon", "prefix", "suffix"}

	fieldFlags = []string{"unique", "primaryKey", "private", "writable", "queryable", "exportable", "importable"}
)

// checker accumulates diagnostics for a single document.
type checker struct {
	errs     []string
	warnings []string
}

func (c *checker) errorf(format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf(format, args...))
}

func (c *checker) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// ============================================================
// ROOT
// ============================================================

func (c *checker) checkRoot(doc *jsontree.Object) {
	if name, ok := doc.Get("name"); !ok {
		c.errorf("Missing required field: name")
	} else if s, ok := name.(jsontree.String); !ok {
		c.errorf("Field 'name' must be a string")
	} else if !startsUpper(string(s)) {
		c.warnf("Entity name should be PascalCase (start with uppercase)")
	}

	if props, ok := doc.Get("properties"); !ok {
		c.errorf("Missing required field: properties")
	} else if !isObject(props) {
		c.errorf("Field 'properties' must be an object")
	}

	if v, ok := doc.Get("collectionName"); ok && !isString(v) {
		c.errorf("Field 'collectionName' must be a string")
	}
	if v, ok := doc.Get("description"); ok && !isText(v) {
		c.errorf("Field 'description' must be string or object (for i18n)")
	}
	if v, ok := doc.Get("softDelete"); ok && !isBool(v) {
		c.errorf("Field 'softDelete' must be a boolean")
	}

	if v, ok := doc.Get("info"); ok {
		c.checkInfo(v)
	}
	if v, ok := doc.Get("ui"); ok {
		c.checkFormUI(v)
	}
}

func (c *checker) checkInfo(v jsontree.Value) {
	info, ok := v.(*jsontree.Object)
	if !ok {
		c.errorf("Field 'info' must be an object")
		return
	}

	for _, key := range []string{"displayName", "description"} {
		if val, ok := info.Get(key); ok && !isText(val) {
			c.errorf("info.%s must be string or object", key)
		}
	}
	for _, key := range []string{"icon", "locale"} {
		if val, ok := info.Get(key); ok && !isString(val) {
			c.errorf("info.%s must be a string", key)
		}
	}
}

func (c *checker) checkFormUI(v jsontree.Value) {
	ui, ok := v.(*jsontree.Object)
	if !ok {
		c.errorf("Field 'ui' must be an object")
		return
	}

	for _, key := range []string{"submitText", "resetText"} {
		if val, ok := ui.Get(key); ok && !isText(val) {
			c.errorf("ui.%s must be string or object", key)
		}
	}
	if val, ok := ui.Get("showReset"); ok && !isBool(val) {
		c.errorf("ui.showReset must be a boolean")
	}

	lv, ok := ui.Get("layout")
	if !ok {
		return
	}
	layout, ok := lv.(*jsontree.Object)
	if !ok {
		c.errorf("ui.layout must be an object")
		return
	}
	if val, ok := layout.Get("direction"); ok && !validEnum(val, Directions) {
		c.errorf("ui.layout.direction must be one of %s", setString(Directions))
	}
	if val, ok := layout.Get("gap"); ok && !isNumber(val) {
		c.errorf("ui.layout.gap must be a number")
	}
	if val, ok := layout.Get("columns"); ok && !isInteger(val) {
		c.errorf("ui.layout.columns must be an integer")
	}
}

// ============================================================
// PROPERTIES
// ============================================================

func (c *checker) checkProperties(doc *jsontree.Object) {
	v, ok := doc.Get("properties")
	if !ok {
		return
	}
	props, ok := v.(*jsontree.Object)
	if !ok {
		return
	}

	props.Each(func(name string, val jsontree.Value) {
		def, ok := val.(*jsontree.Object)
		if !ok {
			c.errorf("Property '%s' must be an object", name)
			return
		}
		c.checkField(name, def)
	})
}

// checkField validates one field definition at path and recurses into
// array items and object properties.
func (c *checker) checkField(path string, def *jsontree.Object) {
	ref, hasRef := def.Get("$ref")
	typ, hasType := def.Get("type")

	switch {
	case hasRef:
		if !isString(ref) {
			c.errorf("Property '%s.$ref' must be a string", path)
		}
		if hasType {
			c.warnf("Property '%s': Relationship fields should use $ref, not type", path)
		}
		if rel, ok := def.Get("x-relation"); !ok {
			c.errorf("Property '%s': Relationship fields must have x-relation", path)
		} else {
			c.checkRelation(path, rel)
		}

	case hasType:
		if !validEnum(typ, FieldTypes) {
			c.errorf("Property '%s': Invalid type '%s'. Expected one of %s", path, literal(typ), setString(FieldTypes))
		}
		c.checkChildren(path, typ, def)

	default:
		c.errorf("Property '%s': Must have either $ref or type", path)
	}

	for _, key := range []string{"label", "description"} {
		if val, ok := def.Get(key); ok && !isText(val) {
			c.errorf("Property '%s.%s' must be string or object", path, key)
		}
	}
	if val, ok := def.Get("validate"); ok {
		c.checkRules(path, val)
	}
	if val, ok := def.Get("ui"); ok {
		c.checkFieldUI(path, val)
	}
	c.checkFlags(path, def)
}

func (c *checker) checkChildren(path string, typ jsontree.Value, def *jsontree.Object) {
	switch typ {
	case jsontree.String(FieldTypeArray):
		items, ok := def.Get("items")
		if !ok {
			return
		}
		itemDef, ok := items.(*jsontree.Object)
		if !ok {
			c.errorf("Property '%s[]' must be an object", path)
			return
		}
		c.checkField(path+"[]", itemDef)

	case jsontree.String(FieldTypeObject):
		nested, ok := def.Get("properties")
		if !ok {
			return
		}
		props, ok := nested.(*jsontree.Object)
		if !ok {
			c.errorf("Property '%s.properties' must be an object", path)
			return
		}
		props.Each(func(name string, val jsontree.Value) {
			if nestedDef, ok := val.(*jsontree.Object); ok {
				c.checkField(path+"."+name, nestedDef)
			}
		})
	}
}

func (c *checker) checkRelation(path string, v jsontree.Value) {
	rel, ok := v.(*jsontree.Object)
	if !ok {
		c.errorf("Property '%s.x-relation' must be an object", path)
		return
	}

	if kind, ok := rel.Get("type"); !ok {
		c.errorf("Property '%s.x-relation.type' is required", path)
	} else if !validEnum(kind, RelationKinds) {
		c.errorf("Property '%s.x-relation.type' must be one of %s", path, setString(RelationKinds))
	}

	for _, key := range []string{"inversedBy", "mapBy", "labelField"} {
		if val, ok := rel.Get(key); ok && !isString(val) {
			c.errorf("Property '%s.x-relation.%s' must be a string", path, key)
		}
	}
	for _, key := range []string{"preload", "writable", "queryable"} {
		if val, ok := rel.Get(key); ok && !isBool(val) {
			c.errorf("Property '%s.x-relation.%s' must be a boolean", path, key)
		}
	}
	if val, ok := rel.Get("onDelete"); ok && !validEnum(val, DeleteActions) {
		c.errorf("Property '%s.x-relation.onDelete' must be one of %s", path, setString(DeleteActions))
	}
}

func (c *checker) checkRules(path string, v jsontree.Value) {
	rules, ok := v.(*jsontree.Object)
	if !ok {
		c.errorf("Property '%s.validate' must be an object", path)
		return
	}

	for _, rule := range ruleFlags {
		if val, ok := rules.Get(rule); ok && !isBool(val) {
			c.errorf("Property '%s.validate.%s' must be a boolean", path, rule)
		}
	}
	for _, rule := range ruleNumbers {
		if val, ok := rules.Get(rule); ok && !isNumber(val) {
			c.errorf("Property '%s.validate.%s' must be a number", path, rule)
		}
	}
	if val, ok := rules.Get("pattern"); ok && !isString(val) {
		c.errorf("Property '%s.validate.pattern' must be a string", path)
	}
	if val, ok := rules.Get("format"); ok && !validEnum(val, Formats) {
		c.errorf("Property '%s.validate.format' must be one of %s", path, setString(Formats))
	}

	if val, ok := rules.Get("enum"); ok {
		if arr, ok := val.(jsontree.Array); !ok {
			c.errorf("Property '%s.validate.enum' must be an array", path)
		} else if !allStrings(arr) {
			c.errorf("Property '%s.validate.enum' must contain only strings", path)
		}
	}

	if val, ok := rules.Get("custom"); ok {
		custom, ok := val.(jsontree.Array)
		if !ok {
			c.errorf("Property '%s.validate.custom' must be an array", path)
		} else {
			for i, item := range custom {
				obj, ok := item.(*jsontree.Object)
				switch {
				case !ok:
					c.errorf("Property '%s.validate.custom[%d]' must be an object", path, i)
				case !obj.Has("code"):
					c.errorf("Property '%s.validate.custom[%d]' must have 'code' field", path, i)
				}
			}
		}
	}

	if val, ok := rules.Get("errorMessage"); ok && !isText(val) {
		c.errorf("Property '%s.validate.errorMessage' must be string or object", path)
	}
}

func (c *checker) checkFieldUI(path string, v jsontree.Value) {
	ui, ok := v.(*jsontree.Object)
	if !ok {
		c.errorf("Property '%s.ui' must be an object", path)
		return
	}

	if val, ok := ui.Get("widget"); ok && !validEnum(val, Widgets) {
		c.errorf("Property '%s.ui.widget' must be one of %s", path, setString(Widgets))
	}
	if val, ok := ui.Get("placeholder"); ok && !isText(val) {
		c.errorf("Property '%s.ui.placeholder' must be string or object", path)
	}
	for _, flag := range uiFlags {
		if val, ok := ui.Get(flag); ok && !isBool(val) {
			c.errorf("Property '%s.ui.%s' must be a boolean", path, flag)
		}
	}
	for _, key := range uiNumbers {
		if val, ok := ui.Get(key); ok && !isNumber(val) {
			c.errorf("Property '%s.ui.%s' must be a number", path, key)
		}
	}
	for _, key := range uiStrings {
		if val, ok := ui.Get(key); ok && !isString(val) {
			c.errorf("Property '%s.ui.%s' must be a string", path, key)
		}
	}
	if val, ok := ui.Get("size"); ok && !validEnum(val, Sizes) {
		c.errorf("Property '%s.ui.size' must be 'sm', 'md', or 'lg'", path)
	}
	if val, ok := ui.Get("style"); ok && !isObject(val) {
		c.errorf("Property '%s.ui.style' must be an object", path)
	}

	val, ok := ui.Get("options")
	if !ok {
		return
	}
	options, ok := val.(jsontree.Array)
	if !ok {
		c.errorf("Property '%s.ui.options' must be an array", path)
		return
	}
	for i, item := range options {
		opt, ok := item.(*jsontree.Object)
		if !ok {
			c.errorf("Property '%s.ui.options[%d]' must be an object", path, i)
			continue
		}
		if !opt.Has("value") {
			c.errorf("Property '%s.ui.options[%d]' must have 'value'", path, i)
		}
		if !opt.Has("label") {
			c.errorf("Property '%s.ui.options[%d]' must have 'label'", path, i)
		}
		if d, ok := opt.Get("disabled"); ok && !isBool(d) {
			c.errorf("Property '%s.ui.options[%d].disabled' must be a boolean", path, i)
		}
	}
}

func (c *checker) checkFlags(path string, def *jsontree.Object) {
	for _, flag := range fieldFlags {
		if val, ok := def.Get(flag); ok && !isBool(val) {
			c.errorf("Property '%s.%s' must be a boolean", path, flag)
		}
	}

	if val, ok := def.Get("version"); ok && !isVersion(val) {
		c.errorf("Property '%s.version' must be an integer >= 1", path)
	}
	if val, ok := def.Get("$component"); ok && !isString(val) {
		c.errorf("Property '%s.$component' must be a string", path)
	}
	if val, ok := def.Get("relation-type"); ok && !validEnum(val, ComponentModes) {
		c.errorf("Property '%s.relation-type' must be one of %s", path, setString(ComponentModes))
	}

	val, ok := def.Get("allowedTypes")
	if !ok {
		return
	}
	allowed, ok := val.(jsontree.Array)
	if !ok {
		c.errorf("Property '%s.allowedTypes' must be an array", path)
		return
	}
	for _, m := range allowed {
		if !validEnum(m, MediaTypes) {
			c.errorf("Property '%s.allowedTypes' contains invalid type '%s'", path, literal(m))
		}
	}
}

// ============================================================
// INDEXES
// ============================================================

func (c *checker) checkIndexes(doc *jsontree.Object) {
	v, ok := doc.Get("indexes")
	if !ok {
		return
	}
	indexes, ok := v.(jsontree.Array)
	if !ok {
		c.errorf("Field 'indexes' must be an array")
		return
	}

	for i, item := range indexes {
		idx, ok := item.(*jsontree.Object)
		if !ok {
			c.errorf("indexes[%d] must be an object", i)
			continue
		}

		if typ, ok := idx.Get("type"); ok {
			if !validEnum(typ, IndexTypes) {
				c.errorf("indexes[%d].type must be one of %s", i, setString(IndexTypes))
			}
		} else {
			c.warnf("indexes[%d] missing type, defaulting to 'index'", i)
		}

		if name, ok := idx.Get("name"); ok && !isString(name) {
			c.errorf("indexes[%d].name must be a string", i)
		}

		cols, ok := idx.Get("columns")
		if !ok {
			c.errorf("indexes[%d] missing required 'columns' field", i)
		} else if arr, ok := cols.(jsontree.Array); !ok {
			c.errorf("indexes[%d].columns must be an array", i)
		} else if len(arr) == 0 {
			c.errorf("indexes[%d].columns cannot be empty", i)
		} else {
			for _, col := range arr {
				if !isString(col) {
					c.errorf("indexes[%d].columns must contain only strings", i)
				}
			}
		}

		if u, ok := idx.Get("unique"); ok && !isBool(u) {
			c.errorf("indexes[%d].unique must be a boolean", i)
		}
	}
}

// ============================================================
// FEATURES
// ============================================================

func (c *checker) checkFeatures(doc *jsontree.Object) {
	v, ok := doc.Get("features")
	if !ok {
		return
	}
	features, ok := v.(*jsontree.Object)
	if !ok {
		c.errorf("Field 'features' must be an object")
		return
	}

	features.Each(func(name string, val jsontree.Value) {
		if !isBool(val) {
			c.errorf("features.%s must be a boolean", name)
		}
	})
}

// ============================================================
// HELPERS
// ============================================================

func isString(v jsontree.Value) bool {
	_, ok := v.(jsontree.String)
	return ok
}

func isBool(v jsontree.Value) bool {
	_, ok := v.(jsontree.Bool)
	return ok
}

func isNumber(v jsontree.Value) bool {
	_, ok := v.(jsontree.Number)
	return ok
}

func isInteger(v jsontree.Value) bool {
	n, ok := v.(jsontree.Number)
	return ok && n.IsInteger()
}

func isObject(v jsontree.Value) bool {
	_, ok := v.(*jsontree.Object)
	return ok
}

// isText reports whether v is a plain string or a localization mapping.
func isText(v jsontree.Value) bool {
	return isString(v) || isObject(v)
}

func isVersion(v jsontree.Value) bool {
	n, ok := v.(jsontree.Number)
	if !ok || !n.IsInteger() {
		return false
	}
	f, err := n.Float64()
	return err == nil && f >= 1
}

func allStrings(arr jsontree.Array) bool {
	for _, v := range arr {
		if !isString(v) {
			return false
		}
	}
	return true
}

func validEnum[T ~string](v jsontree.Value, set []T) bool {
	s, ok := v.(jsontree.String)
	return ok && member(set, T(s))
}

func startsUpper(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsUpper(r)
}

// literal renders a value for a diagnostic: strings verbatim, everything
// else as compact JSON.
func literal(v jsontree.Value) string {
	if s, ok := v.(jsontree.String); ok {
		return string(s)
	}
	data, err := json.Marshal(jsontree.ToAny(v))
	if err != nil {
		return jsontree.Kind(v)
	}
	return string(data)
}

func errRootNotObject(v jsontree.Value) error {
	return fmt.Errorf("schema root must be a JSON object, got %s", jsontree.Kind(v))
}
