package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Value is a sealed interface over the JSON value kinds that can appear in a
// collection configuration. Only Null, Bool, Number, String, Array, and
// Object implement it.
type Value interface {
	configValue() // Sealed - only these types implement it
}

// Null represents a JSON null.
// An explicit type keeps null inside the sealed interface instead of
// leaking untyped nils through the comparison engine.
type Null struct{}

func (Null) configValue() {}

// Bool represents a JSON boolean.
type Bool bool

func (Bool) configValue() {}

// Number represents a JSON number. The original literal text is preserved so
// canonical output round-trips exactly; equality is by numeric value (see
// Equal).
type Number json.Number

func (Number) configValue() {}

// String represents a JSON string.
type String string

func (String) configValue() {}

// Array represents an ordered sequence of values.
type Array []Value

func (Array) configValue() {}

// Object represents a map of string keys to values.
// Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) configValue() {}

// Kind names for the Value variants. These are the type tags carried by
// type_mismatch difference records.
const (
	KindNull   = "null"
	KindBool   = "bool"
	KindNumber = "number"
	KindString = "string"
	KindArray  = "array"
	KindObject = "object"
)

// KindOf returns the kind name for a value.
func KindOf(v Value) string {
	switch v.(type) {
	case Null:
		return KindNull
	case Bool:
		return KindBool
	case Number:
		return KindNumber
	case String:
		return KindString
	case Array:
		return KindArray
	case Object:
		return KindObject
	default:
		// Unreachable for values built through this package. A foreign
		// implementation of the sealed interface is a collaborator bug.
		return fmt.Sprintf("unknown(%T)", v)
	}
}

// SortedKeys returns the object's keys in ascending lexicographic order.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Copy returns a deep copy of v. Scalars are value types and copy for free;
// arrays and objects are rebuilt recursively.
func Copy(v Value) Value {
	switch val := v.(type) {
	case Array:
		out := make(Array, len(val))
		for i, elem := range val {
			out[i] = Copy(elem)
		}
		return out
	case Object:
		out := make(Object, len(val))
		for k, elem := range val {
			out[k] = Copy(elem)
		}
		return out
	default:
		return val
	}
}

// Decode parses a JSON document into a Value tree.
// Numbers are kept as their literal text so integer and float
// representations survive until the equality policy decides.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	// Reject trailing garbage after the document.
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON document")
	}

	return FromGo(raw)
}

// FromGo converts a decoded Go value (encoding/json or yaml.v3 output) into
// a Value tree. It accepts the shapes both decoders produce.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		return Number(val), nil
	case int:
		return Number(json.Number(fmt.Sprintf("%d", val))), nil
	case int64:
		return Number(json.Number(fmt.Sprintf("%d", val))), nil
	case float64:
		// yaml.v3 hands integers through as int, so a float64 here is a
		// genuine float. Render with strconv-compatible shortest form.
		n, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("number %v: %w", val, err)
		}
		return Number(json.Number(n)), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			cv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = cv
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			cv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = cv
		}
		return obj, nil
	case Value:
		return val, nil
	default:
		return nil, fmt.Errorf("unsupported value type: %T", v)
	}
}

// ToGo converts a Value tree back to plain Go values
// (map[string]any / []any / scalars) for encoding or reporting.
func ToGo(v Value) any {
	switch val := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(val)
	case Number:
		return json.Number(val)
	case String:
		return string(val)
	case Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToGo(elem)
		}
		return out
	case Object:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = ToGo(elem)
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON implements json.Marshaler for Number, emitting the preserved
// literal.
func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}
	return []byte(n), nil
}

// MarshalJSON implements json.Marshaler for Object with sorted keys, so
// plain encoding/json output of difference payloads is stable too.
func (obj Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range obj.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := json.Marshal(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
