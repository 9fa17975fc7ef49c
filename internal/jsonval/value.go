// Package jsonval models loosely typed JSON documents as a tagged union so callers
// narrow them explicitly instead of type-asserting nested interface{} values.
package jsonval

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "null"
}

// Value is one node of a decoded JSON document. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// FromAny converts the output of a generic JSON decoder (maps, slices, scalars) into a Value.
// Anything it does not recognise becomes Null.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case bool:
		return Value{kind: Bool, b: t}
	case float64:
		return Value{kind: Number, n: t}
	case float32:
		return Value{kind: Number, n: float64(t)}
	case int:
		return Value{kind: Number, n: float64(t)}
	case int64:
		return Value{kind: Number, n: float64(t)}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{kind: String, s: t.String()}
		}
		return Value{kind: Number, n: f}
	case string:
		return Value{kind: String, s: t}
	case []any:
		arr := make([]Value, len(t))
		for i, el := range t {
			arr[i] = FromAny(el)
		}
		return Value{kind: Array, arr: arr}
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, el := range t {
			obj[k] = FromAny(el)
		}
		return Value{kind: Object, obj: obj}
	}
	return Value{}
}

func NewString(s string) Value { return Value{kind: String, s: s} }

func NewArray(items ...Value) Value { return Value{kind: Array, arr: items} }

func NewObject(fields map[string]Value) Value { return Value{kind: Object, obj: fields} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == Null }

func (v Value) Object() (map[string]Value, bool) {
	if v.kind != Object {
		return nil, false
	}
	return v.obj, true
}

func (v Value) Array() ([]Value, bool) {
	if v.kind != Array {
		return nil, false
	}
	return v.arr, true
}

func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.s, true
}

func (v Value) Number() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.n, true
}

func (v Value) Boolean() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// Get returns the named member of an object, or Null when v is not an object
// or has no such member.
func (v Value) Get(key string) Value {
	if v.kind != Object {
		return Value{}
	}
	return v.obj[key]
}

// Path walks nested object members, e.g. Path("linesMode", "pairs").
func (v Value) Path(keys ...string) Value {
	cur := v
	for _, k := range keys {
		cur = cur.Get(k)
		if cur.kind == Null {
			return cur
		}
	}
	return cur
}

// Items returns the elements of an array, or nil for any other kind.
func (v Value) Items() []Value {
	arr, _ := v.Array()
	return arr
}

// Text returns the trimmed string member key. Numbers are rendered without
// a trailing ".0" so fields like years survive narrowing.
func (v Value) Text(key string) string {
	return v.Get(key).AsText()
}

// AsText returns v as trimmed text when it is a string or a number, "" otherwise.
func (v Value) AsText() string {
	switch v.kind {
	case String:
		return strings.TrimSpace(v.s)
	case Number:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	}
	return ""
}

// Int narrows whole numbers and numeric strings within the int32 range to an int.
func (v Value) Int() (int, bool) {
	switch v.kind {
	case Number:
		if v.n != math.Trunc(v.n) || v.n < math.MinInt32 || v.n > math.MaxInt32 {
			return 0, false
		}
		return int(v.n), true
	case String:
		i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 32)
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

// Strings returns the non-empty trimmed string elements of an array.
func (v Value) Strings() []string {
	var out []string
	for _, el := range v.Items() {
		if s := el.AsText(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
