// Package jsontree decodes JSON documents into an order-preserving tree.
//
// encoding/json decodes objects into Go maps, which loses the key order of the
// source document. Diagnostics produced while walking a schema must follow the
// file so that repeated runs print identical reports, so objects here keep
// their keys in document order and numbers keep their literal text.
package jsontree

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value is a node of a decoded document: *Object, Array, String, Number,
// Bool or Null.
type Value interface {
	kind() string
}

// Object is a JSON object that remembers the order of its keys.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set stores value under key. A key that is already present keeps its
// position and takes the new value, mirroring how duplicate keys resolve
// in most JSON decoders.
func (o *Object) Set(key string, value Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Each calls fn for every entry in document order.
func (o *Object) Each(fn func(key string, value Value)) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		fn(k, o.values[k])
	}
}

// Array is a JSON array.
type Array []Value

// String is a JSON string.
type String string

// Number is a JSON number kept as its literal text.
type Number string

// Bool is a JSON boolean.
type Bool bool

// Null is the JSON null literal.
type Null struct{}

func (*Object) kind() string { return KindObject }
func (Array) kind() string   { return KindArray }
func (String) kind() string  { return KindString }
func (Number) kind() string  { return KindNumber }
func (Bool) kind() string    { return KindBoolean }
func (Null) kind() string    { return KindNull }

// JSON kind names.
const (
	KindObject  = "object"
	KindArray   = "array"
	KindString  = "string"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindNull    = "null"
)

// Kind names the JSON kind of v. A nil Value reports "null".
func Kind(v Value) string {
	if v == nil {
		return KindNull
	}
	return v.kind()
}

// IsInteger reports whether the literal has neither a fraction nor an exponent.
func (n Number) IsInteger() bool {
	return !strings.ContainsAny(string(n), ".eE")
}

// Float64 parses the literal.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Int64 parses the literal as an integer.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// ToAny converts v into the plain Go values produced by encoding/json with
// UseNumber: map[string]any, []any, json.Number, string, bool and nil.
func ToAny(v Value) any {
	switch t := v.(type) {
	case *Object:
		out := make(map[string]any, t.Len())
		t.Each(func(k string, val Value) {
			out[k] = ToAny(val)
		})
		return out
	case Array:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = ToAny(val)
		}
		return out
	case String:
		return string(t)
	case Number:
		return json.Number(t)
	case Bool:
		return bool(t)
	default:
		return nil
	}
}
