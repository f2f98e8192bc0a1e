// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Kind identifies which Bencode variant a [Value] holds.
type Kind uint8

const (
	// KindInvalid is the kind of the zero Value. It is never produced
	// by the decoder or the constructors.
	KindInvalid Kind = iota
	KindInteger
	KindString
	KindList
	KindDict
)

// String returns the lowercase name of the kind.
func (kind Kind) String() string {
	switch kind {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	case KindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("kind(%d)", uint8(kind))
	}
}

// Value is an immutable Bencode value. Construct one with [Int],
// [String], [Bytes], [List], or [NewDict], or obtain one from [Decode].
//
// Byte strings are held as Go strings so their contents cannot change
// after construction. Lists and dictionaries copy their inputs. A
// Value may therefore be shared freely between goroutines.
type Value struct {
	kind    Kind
	integer int64
	text    string
	items   []Value
	entries []Entry
}

// Entry is a single dictionary key/value pair.
type Entry struct {
	Key   string
	Value Value
}

// Int returns an integer value.
func Int(n int64) Value {
	return Value{kind: KindInteger, integer: n}
}

// String returns a byte string value holding the bytes of s. The
// contents need not be valid UTF-8.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Bytes returns a byte string value holding a copy of b.
func Bytes(b []byte) Value {
	return Value{kind: KindString, text: string(b)}
}

// List returns a list value holding a copy of items, in order.
func List(items ...Value) Value {
	return Value{kind: KindList, items: slices.Clone(items)}
}

// NewDict returns a dictionary value holding entries sorted by key.
// Keys must be unique; a repeated key fails with [ErrDuplicateKey].
func NewDict(entries ...Entry) (Value, error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return strings.Compare(a.Key, b.Key)
	})
	for index := 1; index < len(sorted); index++ {
		if sorted[index-1].Key == sorted[index].Key {
			return Value{}, fmt.Errorf("%w: %q", ErrDuplicateKey, sorted[index].Key)
		}
	}
	return Value{kind: KindDict, entries: sorted}, nil
}

// MustDict is like [NewDict] but panics on a duplicate key. It is meant
// for dictionary literals whose keys are known to be unique.
func MustDict(entries ...Entry) Value {
	value, err := NewDict(entries...)
	if err != nil {
		panic("bencode: " + err.Error())
	}
	return value
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v holds one of the four Bencode variants.
// Only the zero Value is invalid.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// Int returns the integer held by v.
func (v Value) Int() (int64, error) {
	if v.kind != KindInteger {
		return 0, &TypeError{Want: KindInteger, Got: v.kind}
	}
	return v.integer, nil
}

// Str returns the contents of the byte string held by v. The result is
// not guaranteed to be valid UTF-8.
func (v Value) Str() (string, error) {
	if v.kind != KindString {
		return "", &TypeError{Want: KindString, Got: v.kind}
	}
	return v.text, nil
}

// Bytes returns a copy of the byte string held by v.
func (v Value) Bytes() ([]byte, error) {
	if v.kind != KindString {
		return nil, &TypeError{Want: KindString, Got: v.kind}
	}
	return []byte(v.text), nil
}

// List returns a copy of the items held by v.
func (v Value) List() ([]Value, error) {
	if v.kind != KindList {
		return nil, &TypeError{Want: KindList, Got: v.kind}
	}
	return slices.Clone(v.items), nil
}

// Len returns the number of items in a list, entries in a dictionary,
// or bytes in a byte string. It returns 0 for integers.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.text)
	case KindList:
		return len(v.items)
	case KindDict:
		return len(v.entries)
	default:
		return 0
	}
}

// Dict returns a read-only view of the dictionary held by v.
func (v Value) Dict() (Dict, error) {
	if v.kind != KindDict {
		return Dict{}, &TypeError{Want: KindDict, Got: v.kind}
	}
	return Dict{entries: v.entries}, nil
}

// Dict is a read-only view of a dictionary value. Entries are always
// in ascending key order.
type Dict struct {
	entries []Entry
}

// Len returns the number of entries.
func (d Dict) Len() int {
	return len(d.entries)
}

// Get returns the value stored under key.
func (d Dict) Get(key string) (Value, bool) {
	index, found := slices.BinarySearchFunc(d.entries, key, func(entry Entry, target string) int {
		return strings.Compare(entry.Key, target)
	})
	if !found {
		return Value{}, false
	}
	return d.entries[index].Value, true
}

// Keys returns the keys in ascending byte order.
func (d Dict) Keys() []string {
	keys := make([]string, len(d.entries))
	for index, entry := range d.entries {
		keys[index] = entry.Key
	}
	return keys
}

// Entries returns a copy of the entries in ascending key order.
func (d Dict) Entries() []Entry {
	return slices.Clone(d.entries)
}

// All iterates over the entries in ascending key order.
func (d Dict) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, entry := range d.entries {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}

// Equal reports whether a and b hold the same variant with equal
// contents, recursively.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInteger:
		return a.integer == b.integer
	case KindString:
		return a.text == b.text
	case KindList:
		return slices.EqualFunc(a.items, b.items, Equal)
	case KindDict:
		return slices.EqualFunc(a.entries, b.entries, func(x, y Entry) bool {
			return x.Key == y.Key && Equal(x.Value, y.Value)
		})
	default:
		return true
	}
}
