package omit

import (
	"encoding/json"
	"reflect"
)

// Kind is the structural kind of a value as seen by the object-like check.
type Kind int

const (
	Other Kind = iota
	Null
	Bool
	Number
	String
	Array
	Func
	Boxed
	Object
)

var kindNames = map[Kind]string{
	Other:  "other",
	Null:   "null",
	Bool:   "bool",
	Number: "number",
	String: "string",
	Array:  "array",
	Func:   "func",
	Boxed:  "boxed primitive",
	Object: "object",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf classifies v. Only map[string]any (the event type) is an Object;
// a nil map of that type is an empty Object.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case map[string]any:
		return Object
	case bool:
		return Bool
	case string:
		return String
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128, json.Number:
		return Number
	case []any, []string, []map[string]any:
		return Array
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return Array
	case reflect.Func:
		return Func
	case reflect.Ptr:
		if rv.IsNil() {
			return Null
		}
		switch KindOf(rv.Elem().Interface()) {
		case Bool, Number, String:
			return Boxed
		}
	}
	return Other
}
