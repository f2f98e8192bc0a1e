// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inspect implements the document commands of the bencode
// CLI: decode, encode, show, validate, and hash. Each reads a document
// through the source package and renders it to stdout; the rendering
// functions take an io.Writer so tests can drive them directly.
package inspect

import (
	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/lib/config"
)

// Commands returns the document commands, configured by cfg.
func Commands(cfg *config.Config) []*cli.Command {
	return []*cli.Command{
		decodeCommand(cfg),
		encodeCommand(),
		showCommand(cfg),
		validateCommand(cfg),
		hashCommand(cfg),
	}
}
