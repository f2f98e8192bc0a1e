// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so that main can pick an exit
// code, and scripts can tell bad invocations from bad input, without
// parsing error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller invoked the command
	// incorrectly: unknown flags, wrong argument count, unparseable
	// flag values. The caller should fix the invocation and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced input does not exist:
	// a missing file, or a dictionary key absent from the document.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal indicates a failure processing the input: a
	// malformed document, a decompression error, or an I/O failure.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands.
//
// ToolError wraps an inner error, preserving the full error chain (so
// errors.Is still finds bencode.ErrTruncatedInput and friends) while
// adding category metadata. Use the category-specific constructors
// rather than constructing ToolError directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category is not
// included in the string.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the ToolError wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller invoked the command
// incorrectly.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced input does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: the input could not be processed.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
