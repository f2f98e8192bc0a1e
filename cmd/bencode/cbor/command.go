// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cbor implements "bencode cbor", which transcodes between
// bencode and CBOR using the deterministic profile in lib/codec.
package cbor

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/cmd/bencode/source"
	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/codec"
	"github.com/bureau-foundation/bencode/lib/config"
)

// Command returns the "cbor" command group.
func Command(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "cbor",
		Summary: "Transcode between bencode and CBOR",
		Description: `Convert bencoded data to CBOR and back.

CBOR output uses Core Deterministic Encoding (RFC 8949 §4.2), so the
same bencode value always produces the same bytes. Byte strings that
are valid UTF-8 become CBOR text strings and all others become CBOR
byte strings; "bencode cbor from" maps both back to byte strings, so a
round trip returns the original value.

CBOR items without a bencode form (booleans, null, floats with a
fractional part, maps with non-string keys) are rejected.`,
		Subcommands: []*cli.Command{
			toCommand(cfg),
			fromCommand(cfg),
		},
		Examples: []cli.Example{
			{
				Description: "Convert a torrent file to CBOR",
				Command:     "bencode cbor to ubuntu.torrent > ubuntu.cbor",
			},
			{
				Description: "Show CBOR diagnostic notation for a bencoded value",
				Command:     "bencode cbor to --diag 'd3:cow3:mooe'",
			},
			{
				Description: "Round-trip through CBOR",
				Command:     "bencode cbor to ubuntu.torrent | bencode cbor from | bencode validate",
			},
		},
	}
}

// toParams holds the parameters for the "bencode cbor to" command.
type toParams struct {
	source.Flags
	Diag      bool `json:"diag"       flag:"diag,d"     desc:"print CBOR diagnostic notation instead of binary"`
	HexOutput bool `json:"hex_output" flag:"hex-output" desc:"write hex text instead of binary"`
}

func toCommand(cfg *config.Config) *cli.Command {
	var params toParams

	return &cli.Command{
		Name:    "to",
		Summary: "Convert bencode to CBOR",
		Usage:   "bencode cbor to [-d] [--hex-output] [-x] [value|file]",
		Description: `Decode a bencoded value and write its deterministic CBOR encoding to
stdout. Input resolution matches "bencode decode".`,
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			input, err := source.Read(args, params.Options(cfg, true))
			if err != nil {
				return err
			}
			if len(input.Args) > 0 {
				return cli.Validation("cbor to takes at most one value or file argument, got %q", input.Args[0])
			}
			logger.Debug("read input", "source", input.Source, "bytes", len(input.Data), "compression", input.Compression.String())

			value, err := params.DecodeOptions(cfg).Decode(input.Data)
			if err != nil {
				return fmt.Errorf("decode bencode: %w", err)
			}
			return writeCBOR(os.Stdout, value, params.Diag, params.HexOutput)
		},
	}
}

// writeCBOR encodes value as CBOR and writes it to w as binary, hex,
// or diagnostic notation.
func writeCBOR(w io.Writer, value bencode.Value, diag, hexOutput bool) error {
	data, err := codec.FromBencode(value)
	if err != nil {
		return cli.Internal("encode CBOR: %w", err)
	}

	switch {
	case diag:
		notation, err := codec.Diagnose(data)
		if err != nil {
			return cli.Internal("diagnose CBOR: %w", err)
		}
		_, err = fmt.Fprintln(w, notation)
		return err
	case hexOutput:
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	default:
		_, err = w.Write(data)
		return err
	}
}

// fromParams holds the parameters for the "bencode cbor from" command.
type fromParams struct {
	HexInput  bool `json:"hex_input"  flag:"hex,x"      desc:"treat input as hex-encoded CBOR"`
	Raw       bool `json:"raw"        flag:"raw"        desc:"do not decompress zstd, lz4, or gzip input"`
	HexOutput bool `json:"hex_output" flag:"hex-output" desc:"write hex text instead of binary"`
}

func fromCommand(cfg *config.Config) *cli.Command {
	var params fromParams

	return &cli.Command{
		Name:    "from",
		Summary: "Convert CBOR to bencode",
		Usage:   "bencode cbor from [-x] [--hex-output] [file]",
		Description: `Read a single CBOR data item from stdin (or a file argument) and write
its canonical bencoding to stdout.

Text and byte strings become byte strings, integers must fit in a
signed 64-bit integer, and floats are accepted only when they hold an
integral value.`,
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			input, err := source.Read(args, source.Options{
				Hex:        params.HexInput,
				Decompress: cfg.Decode.Decompress && !params.Raw,
			})
			if err != nil {
				return err
			}
			if len(input.Args) > 0 {
				return cli.Validation("cbor from takes no positional arguments besides an optional file path, got %q", input.Args[0])
			}
			logger.Debug("read input", "source", input.Source, "bytes", len(input.Data), "compression", input.Compression.String())

			return writeBencode(os.Stdout, input.Data, params.HexOutput)
		},
	}
}

// writeBencode converts a CBOR data item to canonical bencode and
// writes it to w.
func writeBencode(w io.Writer, data []byte, hexOutput bool) error {
	value, err := codec.ToBencode(data)
	if err != nil {
		return err
	}
	encoded := bencode.Encode(value)
	if hexOutput {
		_, err = fmt.Fprintln(w, hex.EncodeToString(encoded))
		return err
	}
	_, err = w.Write(encoded)
	return err
}
