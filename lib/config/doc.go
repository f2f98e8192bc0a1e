// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the bencode
// command.
//
// Configuration is loaded from a single file specified by either the
// BENCODE_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Without either, [Default] applies.
//
// File values merge over the defaults, so a file only lists what it
// changes:
//
//	decode:
//	  max_depth: 64
//	output:
//	  color: never
//	hash:
//	  algorithm: blake3
//	log:
//	  level: debug
//
// Unknown keys are rejected. Command-line flags override file values
// when explicitly set.
package config
