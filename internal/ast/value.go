package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the generic decoded value tree that a
// model document is assembled from. Only Null, Bool, Int, Float, String,
// Array, and Object implement it. Trait payloads are arbitrary documents, so
// unlike stricter IR layers every JSON value kind is representable.
type Value interface {
	value() // sealed
}

// Null represents a JSON null. An explicit type rather than a nil interface
// so that every decoded value satisfies the sealed interface.
type Null struct{}

func (Null) value() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Int represents an integer value. Numbers without a fractional or exponent
// part decode as Int.
type Int int64

func (Int) value() {}

// Float represents a non-integral numeric value.
type Float float64

func (Float) value() {}

// String represents a string value.
type String string

func (String) value() {}

// Array represents an ordered list of values.
type Array []Value

func (Array) value() {}

// Object represents a string-keyed mapping of values. Use SortedKeys for
// deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// SortedKeys returns keys in UTF-16 code unit order, the ordering required
// for canonical serialization. Go's sort.Strings compares UTF-8 bytes, which
// produces a different order for strings outside the BMP.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)
	return keys
}

// compareKeysUTF16 compares strings by UTF-16 code units. utf16.Encode is
// required for correct surrogate handling.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}

// DuplicateKeyError reports an object in the input that carries the same key
// twice. Path locates the object; Key is the repeated key. A Go map cannot
// hold both entries, so the duplicate must be rejected during decoding,
// before assembly can run.
type DuplicateKeyError struct {
	Path string
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate key %q", e.Path, e.Key)
}

// DecodeValue decodes JSON bytes into a Value tree. Decoding is strict:
// duplicate object keys anywhere in the tree return a DuplicateKeyError, and
// trailing data after the first value is rejected.
func DecodeValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, "")
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, path string) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, path, tok)
}

func decodeToken(dec *json.Decoder, path string, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec, path)
		case '[':
			return decodeArray(dec, path)
		}
		return nil, fmt.Errorf("%s: unexpected delimiter %q", path, t)
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return decodeNumber(t)
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("%s: unexpected token %v", path, tok)
	}
}

func decodeObject(dec *json.Decoder, path string) (Value, error) {
	obj := make(Object)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%s: object key is not a string", path)
		}
		if _, seen := obj[key]; seen {
			return nil, &DuplicateKeyError{Path: path, Key: key}
		}

		childPath := key
		if path != "" {
			childPath = path + "." + key
		}
		val, err := decodeValue(dec, childPath)
		if err != nil {
			return nil, err
		}
		obj[key] = val
	}
	// consume '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder, path string) (Value, error) {
	var arr Array
	for i := 0; dec.More(); i++ {
		val, err := decodeValue(dec, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	// consume ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if arr == nil {
		arr = Array{}
	}
	return arr, nil
}

func decodeNumber(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", n)
	}
	return Float(f), nil
}

// FromGo converts an already-decoded Go value (as produced by yaml.v3 or a
// CUE decode) into a Value tree. Integral floats stay Float; whole-number
// conversion happens only for native integer types.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return Int(int64(val)), nil
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case json.Number:
		return decodeNumber(val)
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			converted, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = converted
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			converted, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = converted
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// MarshalJSON implements json.Marshaler for Object with keys in UTF-16 code
// unit order. This is deterministic but not canonical; use MarshalCanonical
// for content-addressed hashing.
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

		valBytes, err := MarshalValue(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalValue marshals a Value to JSON bytes via type-switch dispatch.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Null:
		return []byte("null"), nil
	case Bool:
		return json.Marshal(bool(val))
	case Int:
		return json.Marshal(int64(val))
	case Float:
		return json.Marshal(float64(val))
	case String:
		return json.Marshal(string(val))
	case Array:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			elemBytes, err := MarshalValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			buf.Write(elemBytes)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case Object:
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}
