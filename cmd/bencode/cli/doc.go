// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the bencode binary: a tree
// of [Command] values with pflag-based flag parsing, typo suggestions
// for unknown commands and flags, and structured help output.
//
// Commands declare their flags as a tagged parameter struct:
//
//	type decodeParams struct {
//	    Compact bool `json:"compact" flag:"compact,c" desc:"compact output"`
//	}
//
// and receive a context and a scoped *slog.Logger in Run. Errors are
// classified with [ToolError] constructors; [ExitCodeFor] turns the
// result of [Command.Execute] into the process exit code: 2 for
// [Validation] errors, the carried code for [ExitError], and 1 for
// everything else.
package cli
