// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/config"
)

// Flags is embedded in the parameter struct of every command that reads
// a bencoded document. It provides --hex, --raw, and --max-depth.
type Flags struct {
	Hex      bool `json:"hex"       flag:"hex,x"     desc:"treat input as hex-encoded bencode"`
	Raw      bool `json:"raw"       flag:"raw"       desc:"do not decompress zstd, lz4, or gzip input"`
	MaxDepth int  `json:"max_depth" flag:"max-depth" desc:"maximum container nesting (0 uses the configured limit)"`
}

// Options returns read options for the flags, with decompression
// enabled when the config allows it and --raw is not set.
func (f Flags) Options(cfg *config.Config, literal bool) Options {
	return Options{
		Hex:        f.Hex,
		Literal:    literal,
		Decompress: cfg.Decode.Decompress && !f.Raw,
	}
}

// DecodeOptions returns decoder options, with --max-depth overriding
// the configured limit when set.
func (f Flags) DecodeOptions(cfg *config.Config) bencode.DecodeOptions {
	options := cfg.DecodeOptions()
	if f.MaxDepth > 0 {
		options.MaxDepth = f.MaxDepth
	}
	return options
}
