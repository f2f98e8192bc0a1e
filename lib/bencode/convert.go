// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
)

// ErrUnsupportedType is returned by [FromGo] for Go values that have
// no Bencode representation: booleans, nil, floats with a fractional
// part, and maps whose keys are not strings.
var ErrUnsupportedType = errors.New("unsupported type")

// FromGo converts generic Go data into a Value. It accepts the shapes
// produced by encoding/json and CBOR decoders:
//
//   - signed and unsigned integers, [json.Number], and floats holding
//     an integral value in int64 range become integers
//   - string and []byte become byte strings
//   - slices and arrays become lists
//   - maps keyed by string or []byte become dictionaries
//   - a Value is returned as is
//
// Anything else fails with [ErrUnsupportedType]. The error names the
// path to the offending element, e.g. "files[2].length".
func FromGo(data any) (Value, error) {
	return fromGo(data, "$")
}

func fromGo(data any, path string) (Value, error) {
	switch typed := data.(type) {
	case Value:
		if !typed.IsValid() {
			return Value{}, fmt.Errorf("%s: %w: zero Value", path, ErrUnsupportedType)
		}
		return typed, nil
	case string:
		return String(typed), nil
	case []byte:
		return Bytes(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case json.Number:
		n, err := typed.Int64()
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w: number %s is not a 64-bit integer", path, ErrUnsupportedType, typed)
		}
		return Int(n), nil
	case []any:
		items := make([]Value, len(typed))
		for index, element := range typed {
			item, err := fromGo(element, fmt.Sprintf("%s[%d]", path, index))
			if err != nil {
				return Value{}, err
			}
			items[index] = item
		}
		return Value{kind: KindList, items: items}, nil
	case map[string]any:
		entries := make([]Entry, 0, len(typed))
		for key, element := range typed {
			value, err := fromGo(element, path+"."+key)
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, Entry{Key: key, Value: value})
		}
		return NewDict(entries...)
	case nil:
		return Value{}, fmt.Errorf("%s: %w: null", path, ErrUnsupportedType)
	}
	return fromReflect(reflect.ValueOf(data), path)
}

// fromReflect handles the integer widths, floats, and container types
// that the type switch in fromGo does not name directly.
func fromReflect(value reflect.Value, path string) (Value, error) {
	switch value.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return Int(value.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := value.Uint()
		if n > math.MaxInt64 {
			return Value{}, fmt.Errorf("%s: %w: %d overflows int64", path, ErrUnsupportedType, n)
		}
		return Int(int64(n)), nil

	case reflect.Float32, reflect.Float64:
		f := value.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return Value{}, fmt.Errorf("%s: %w: %v is not an integer", path, ErrUnsupportedType, f)
		}
		return Int(int64(f)), nil

	case reflect.String:
		return String(value.String()), nil

	case reflect.Slice, reflect.Array:
		if value.Type().Elem().Kind() == reflect.Uint8 {
			raw := make([]byte, value.Len())
			reflect.Copy(reflect.ValueOf(raw), value)
			return Bytes(raw), nil
		}
		items := make([]Value, value.Len())
		for index := range value.Len() {
			item, err := fromGo(value.Index(index).Interface(), fmt.Sprintf("%s[%d]", path, index))
			if err != nil {
				return Value{}, err
			}
			items[index] = item
		}
		return Value{kind: KindList, items: items}, nil

	case reflect.Map:
		entries := make([]Entry, 0, value.Len())
		iterator := value.MapRange()
		for iterator.Next() {
			key, err := mapKey(iterator.Key(), path)
			if err != nil {
				return Value{}, err
			}
			element, err := fromGo(iterator.Value().Interface(), path+"."+key)
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, Entry{Key: key, Value: element})
		}
		return NewDict(entries...)

	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return Value{}, fmt.Errorf("%s: %w: null", path, ErrUnsupportedType)
		}
		return fromGo(value.Elem().Interface(), path)
	}
	return Value{}, fmt.Errorf("%s: %w: %s", path, ErrUnsupportedType, value.Type())
}

// mapKey accepts string keys and byte-string keys; CBOR decoders
// produce the latter for maps keyed by byte strings.
func mapKey(key reflect.Value, path string) (string, error) {
	for key.Kind() == reflect.Interface && !key.IsNil() {
		key = key.Elem()
	}
	switch key.Kind() {
	case reflect.String:
		return key.String(), nil
	case reflect.Slice, reflect.Array:
		if key.Type().Elem().Kind() == reflect.Uint8 {
			raw := make([]byte, key.Len())
			reflect.Copy(reflect.ValueOf(raw), key)
			return string(raw), nil
		}
	}
	return "", fmt.Errorf("%s: %w: map key of type %s", path, ErrUnsupportedType, key.Type())
}

// ToGo converts v into generic Go data: int64, string, []any, and
// map[string]any. Byte strings become Go strings holding the raw
// bytes, valid UTF-8 or not.
func ToGo(v Value) any {
	switch v.kind {
	case KindInteger:
		return v.integer
	case KindString:
		return v.text
	case KindList:
		items := make([]any, len(v.items))
		for index, item := range v.items {
			items[index] = ToGo(item)
		}
		return items
	case KindDict:
		result := make(map[string]any, len(v.entries))
		for _, entry := range v.entries {
			result[entry.Key] = ToGo(entry.Value)
		}
		return result
	default:
		return nil
	}
}
