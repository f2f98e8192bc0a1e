// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package matches
// exactly one of these with [errors.Is].
var (
	// ErrMalformedInput reports an unrecognized type tag or bad digit,
	// length, or integer syntax.
	ErrMalformedInput = errors.New("malformed input")

	// ErrTruncatedInput reports a declared length or an open container
	// that runs past the end of the input.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrTrailingData reports bytes left over after a complete
	// top-level value.
	ErrTrailingData = errors.New("trailing data")

	// ErrDuplicateKey reports a dictionary key that appears twice.
	ErrDuplicateKey = errors.New("duplicate dictionary key")

	// ErrNestingTooDeep reports input nested deeper than the decoder's
	// depth limit.
	ErrNestingTooDeep = errors.New("nesting too deep")

	// ErrTypeMismatch reports an accessor used on the wrong variant.
	ErrTypeMismatch = errors.New("type mismatch")
)

// SyntaxError describes where and why decoding failed. Err is one of
// the package's category errors; Offset is the byte position in the
// input at which the violation was detected.
type SyntaxError struct {
	Err    error
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("bencode: %v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("bencode: %v at offset %d: %s", e.Err, e.Offset, e.Msg)
}

// Unwrap returns the category error so callers can use errors.Is.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxError(category error, offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Err: category, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// TypeError is returned by the typed accessors on [Value] when the
// requested variant does not match the stored one.
type TypeError struct {
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("bencode: %v: want %v, got %v", ErrTypeMismatch, e.Want, e.Got)
}

// Unwrap returns [ErrTypeMismatch].
func (e *TypeError) Unwrap() error {
	return ErrTypeMismatch
}
