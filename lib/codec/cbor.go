// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/bencode/lib/bencode"
)

// ErrUnsupported is returned by [ToBencode] when the CBOR input holds
// an item with no Bencode counterpart: floats with a fractional part,
// booleans, null, undefined, tags, or integers outside int64.
var ErrUnsupported = errors.New("codec: CBOR item has no Bencode form")

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. The same Bencode value always
// produces identical CBOR bytes.
var encMode cbor.EncMode

// decMode accepts standard CBOR. Byte-string map keys are allowed
// because Bencode dictionary keys are arbitrary bytes.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Keys come back as string or cbor.ByteString; both convert to
		// Bencode keys. The CBOR default map type for any-typed
		// targets is already map[any]any, which can hold either.
		MapKeyByteString: cbor.MapKeyByteStringAllowed,
		MaxNestedLevels:  bencode.DefaultMaxDepth,
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// FromBencode converts v to CBOR. Integers become CBOR integers,
// lists become arrays, and dictionaries become maps. Byte strings
// that are valid UTF-8 become CBOR text strings; all others become
// CBOR byte strings, so binary fields such as "pieces" survive.
func FromBencode(v bencode.Value) ([]byte, error) {
	generic, err := toCBORData(v)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(generic)
}

func toCBORData(v bencode.Value) (any, error) {
	switch v.Kind() {
	case bencode.KindInteger:
		n, _ := v.Int()
		return n, nil
	case bencode.KindString:
		s, _ := v.Str()
		if utf8.ValidString(s) {
			return s, nil
		}
		return []byte(s), nil
	case bencode.KindList:
		items, _ := v.List()
		result := make([]any, len(items))
		for index, item := range items {
			converted, err := toCBORData(item)
			if err != nil {
				return nil, err
			}
			result[index] = converted
		}
		return result, nil
	case bencode.KindDict:
		dict, _ := v.Dict()
		result := make(map[any]any, dict.Len())
		for key, element := range dict.All() {
			converted, err := toCBORData(element)
			if err != nil {
				return nil, err
			}
			if utf8.ValidString(key) {
				result[key] = converted
			} else {
				result[cbor.ByteString(key)] = converted
			}
		}
		return result, nil
	default:
		return nil, fmt.Errorf("codec: cannot convert %v value to CBOR", v.Kind())
	}
}

// ToBencode converts a single CBOR data item to a Bencode value. Text
// and byte strings both become Bencode byte strings, so
// ToBencode(FromBencode(v)) equals v for every valid v.
func ToBencode(data []byte) (bencode.Value, error) {
	var generic any
	if err := decMode.Unmarshal(data, &generic); err != nil {
		return bencode.Value{}, fmt.Errorf("codec: decoding CBOR: %w", err)
	}
	value, err := bencode.FromGo(generic)
	if err != nil {
		return bencode.Value{}, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return value, nil
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
