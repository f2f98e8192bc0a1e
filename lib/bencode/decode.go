// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultMaxDepth is the container nesting limit used when
// [DecodeOptions.MaxDepth] is zero. Real metainfo files nest a handful
// of levels; the limit exists so hostile input cannot exhaust the stack.
const DefaultMaxDepth = 512

// DecodeOptions configures a decode. The zero value is ready to use.
type DecodeOptions struct {
	// MaxDepth bounds container nesting. A top-level list or
	// dictionary is depth 1. Zero selects DefaultMaxDepth.
	MaxDepth int
}

// Decode decodes data, which must hold exactly one value, using the
// default options.
func Decode(data []byte) (Value, error) {
	return DecodeOptions{}.Decode(data)
}

// DecodeFirst decodes the first value in data and returns it along
// with the unconsumed remainder. Use it to walk a sequence of
// concatenated values one at a time.
func DecodeFirst(data []byte) (Value, []byte, error) {
	return DecodeOptions{}.DecodeFirst(data)
}

// Decode decodes data, which must hold exactly one value. Bytes after
// the value fail with [ErrTrailingData].
func (options DecodeOptions) Decode(data []byte) (Value, error) {
	value, next, err := options.decodeFirst(data)
	if err != nil {
		return Value{}, err
	}
	if next != len(data) {
		return Value{}, syntaxError(ErrTrailingData, next, "%d bytes after top-level value", len(data)-next)
	}
	return value, nil
}

// DecodeFirst decodes the first value in data and returns the bytes
// that follow it.
func (options DecodeOptions) DecodeFirst(data []byte) (Value, []byte, error) {
	value, next, err := options.decodeFirst(data)
	if err != nil {
		return Value{}, nil, err
	}
	return value, data[next:], nil
}

func (options DecodeOptions) decodeFirst(data []byte) (Value, int, error) {
	if len(data) == 0 {
		return Value{}, 0, syntaxError(ErrMalformedInput, 0, "empty input")
	}
	maxDepth := options.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return decoder{data: data, maxDepth: maxDepth}.parseAt(0, 0)
}

// decoder holds the immutable input and limits for one decode. All
// cursor state lives in the offsets passed between parse calls.
type decoder struct {
	data     []byte
	maxDepth int
}

// parseAt decodes the value starting at offset and returns it with the
// offset of the first byte after it. depth counts the containers
// enclosing offset.
func (d decoder) parseAt(offset, depth int) (Value, int, error) {
	if offset >= len(d.data) {
		return Value{}, offset, syntaxError(ErrTruncatedInput, offset, "expected value")
	}
	switch tag := d.data[offset]; {
	case isDigit(tag):
		text, next, err := d.parseString(offset)
		if err != nil {
			return Value{}, offset, err
		}
		return String(text), next, nil
	case tag == 'i':
		return d.parseInteger(offset)
	case tag == 'l':
		return d.parseList(offset, depth)
	case tag == 'd':
		return d.parseDict(offset, depth)
	default:
		return Value{}, offset, syntaxError(ErrMalformedInput, offset, "unknown type tag %q", tag)
	}
}

// parseString decodes "<length>:<bytes>" at offset.
func (d decoder) parseString(offset int) (string, int, error) {
	colon := offset
	for colon < len(d.data) && isDigit(d.data[colon]) {
		colon++
	}
	if colon == offset {
		return "", offset, syntaxError(ErrMalformedInput, offset, "string length has no digits")
	}
	if colon >= len(d.data) {
		return "", offset, syntaxError(ErrMalformedInput, colon, "string length not terminated by ':'")
	}
	if d.data[colon] != ':' {
		return "", offset, syntaxError(ErrMalformedInput, colon, "invalid byte %q in string length", d.data[colon])
	}
	digits := d.data[offset:colon]
	if len(digits) > 1 && digits[0] == '0' {
		return "", offset, syntaxError(ErrMalformedInput, offset, "string length %q has a leading zero", digits)
	}

	start := colon + 1
	remaining := len(d.data) - start
	length, err := strconv.ParseUint(string(digits), 10, 63)
	if err != nil || length > uint64(remaining) {
		return "", offset, syntaxError(ErrTruncatedInput, start, "string declares %s bytes, %d remain", digits, remaining)
	}
	end := start + int(length)
	return string(d.data[start:end]), end, nil
}

// parseInteger decodes "i<digits>e" at offset.
func (d decoder) parseInteger(offset int) (Value, int, error) {
	start := offset + 1
	end := start
	for end < len(d.data) && d.data[end] != 'e' {
		end++
	}
	if end >= len(d.data) {
		return Value{}, offset, syntaxError(ErrMalformedInput, offset, "integer not terminated by 'e'")
	}
	literal := d.data[start:end]
	if err := checkIntegerLiteral(literal); err != "" {
		return Value{}, offset, syntaxError(ErrMalformedInput, start, "integer %q %s", literal, err)
	}
	n, parseErr := strconv.ParseInt(string(literal), 10, 64)
	if parseErr != nil {
		return Value{}, offset, syntaxError(ErrMalformedInput, start, "integer %q out of 64-bit range", literal)
	}
	return Int(n), end + 1, nil
}

// checkIntegerLiteral enforces the canonical integer grammar: an
// optional minus sign, then digits with no leading zero. "0" is the
// only literal that may start with zero and "-0" is rejected. Returns
// a description of the problem, or "" when the literal is valid.
func checkIntegerLiteral(literal []byte) string {
	digits := literal
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return "has no digits"
	}
	for _, b := range digits {
		if !isDigit(b) {
			return "contains a non-digit"
		}
	}
	if digits[0] == '0' {
		if len(digits) > 1 {
			return "has a leading zero"
		}
		if len(literal) > 1 {
			return "is negative zero"
		}
	}
	return ""
}

func (d decoder) parseList(offset, depth int) (Value, int, error) {
	if depth+1 > d.maxDepth {
		return Value{}, offset, syntaxError(ErrNestingTooDeep, offset, "list exceeds depth limit %d", d.maxDepth)
	}
	var items []Value
	cursor := offset + 1
	for {
		if cursor >= len(d.data) {
			return Value{}, offset, syntaxError(ErrTruncatedInput, cursor, "list started at offset %d is not terminated", offset)
		}
		if d.data[cursor] == 'e' {
			return Value{kind: KindList, items: items}, cursor + 1, nil
		}
		item, next, err := d.parseAt(cursor, depth+1)
		if err != nil {
			return Value{}, offset, err
		}
		items = append(items, item)
		cursor = next
	}
}

func (d decoder) parseDict(offset, depth int) (Value, int, error) {
	if depth+1 > d.maxDepth {
		return Value{}, offset, syntaxError(ErrNestingTooDeep, offset, "dictionary exceeds depth limit %d", d.maxDepth)
	}
	var entries []Entry
	// Canonical input arrives in ascending key order, where comparing
	// against the previous key is enough to catch repeats. Once a key
	// arrives out of order, fall back to a set of every key seen.
	sorted := true
	var seen map[string]struct{}

	cursor := offset + 1
	for {
		if cursor >= len(d.data) {
			return Value{}, offset, syntaxError(ErrTruncatedInput, cursor, "dictionary started at offset %d is not terminated", offset)
		}
		if d.data[cursor] == 'e' {
			break
		}
		if !isDigit(d.data[cursor]) {
			return Value{}, offset, syntaxError(ErrMalformedInput, cursor, "dictionary key must be a byte string, found tag %q", d.data[cursor])
		}
		key, next, err := d.parseString(cursor)
		if err != nil {
			return Value{}, offset, err
		}

		if count := len(entries); sorted && count > 0 {
			switch compare := strings.Compare(entries[count-1].Key, key); {
			case compare == 0:
				return Value{}, offset, syntaxError(ErrDuplicateKey, cursor, "key %q repeated", key)
			case compare > 0:
				sorted = false
				seen = make(map[string]struct{}, count+1)
				for _, entry := range entries {
					seen[entry.Key] = struct{}{}
				}
			}
		}
		if !sorted {
			if _, exists := seen[key]; exists {
				return Value{}, offset, syntaxError(ErrDuplicateKey, cursor, "key %q repeated", key)
			}
			seen[key] = struct{}{}
		}

		if next >= len(d.data) {
			return Value{}, offset, syntaxError(ErrTruncatedInput, next, "missing value for key %q", key)
		}
		value, after, err := d.parseAt(next, depth+1)
		if err != nil {
			return Value{}, offset, err
		}
		entries = append(entries, Entry{Key: key, Value: value})
		cursor = after
	}

	if !sorted {
		slices.SortFunc(entries, func(a, b Entry) int {
			return strings.Compare(a.Key, b.Key)
		})
	}
	return Value{kind: KindDict, entries: entries}, cursor + 1, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
