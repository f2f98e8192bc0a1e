// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by the bencode binary.
const (
	// ExitFailure is the code for decode failures, I/O errors, and
	// documents that fail validation.
	ExitFailure = 1

	// ExitUsage is the code for invalid invocations: unknown commands
	// or flags, wrong argument counts, unparseable flag values.
	ExitUsage = 2
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, main
// exits with the specified code without printing the error string:
// the command is expected to have already written its own output.
//
// "bencode validate" uses this for a well-formed but non-canonical
// document: the diagnostic is the command's output, not an error.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCodeFor maps an error returned from [Command.Execute] to the
// process exit code and reports whether the error message should be
// printed. A nil error maps to (0, false).
func ExitCodeFor(err error) (code int, printMessage bool) {
	if err == nil {
		return 0, false
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode(), false
	}
	var toolError *ToolError
	if errors.As(err, &toolError) && toolError.Category == CategoryValidation {
		return ExitUsage, true
	}
	return ExitFailure, true
}
