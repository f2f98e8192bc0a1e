// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/muesli/termenv"

	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/cmd/bencode/source"
	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/config"
)

// decodeParams holds the parameters for the "bencode decode" command.
type decodeParams struct {
	source.Flags
	Compact bool   `json:"compact" flag:"compact,c" desc:"compact output (no indentation)"`
	Slurp   bool   `json:"slurp"   flag:"slurp,s"   desc:"read a sequence of concatenated values as a JSON array"`
	Color   string `json:"color"   flag:"color"     desc:"highlight output: auto, always, never (default from config)"`
}

func decodeCommand(cfg *config.Config) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert bencode to JSON",
		Description: `Decode a bencoded value and write its JSON projection to stdout.

Integers become JSON numbers, byte strings become JSON strings, lists
become arrays, and dictionaries become objects with keys in ascending
order. Bytes that are not valid UTF-8 are replaced with U+FFFD, so the
projection of binary fields such as "pieces" is lossy.

The input is the trailing argument when it names a file, the argument
itself when it does not (e.g. "bencode decode i42e"), or stdin.
Compressed input (zstd, lz4, gzip) is detected and decompressed unless
--raw is given.

With -s, reads a sequence of concatenated values and outputs them as a
JSON array.`,
		Usage: "bencode decode [-c] [-s] [-x] [value|file]",
		Examples: []cli.Example{
			{
				Description: "Decode a literal value",
				Command:     "bencode decode 'd3:cow3:moo4:spaml1:a1:bee'",
			},
			{
				Description: "Decode a torrent file to compact JSON",
				Command:     "bencode decode -c ubuntu.torrent",
			},
			{
				Description: "Decode hex-encoded bencode",
				Command:     "echo '69 34 32 65' | bencode decode --hex",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			input, err := source.Read(args, params.Options(cfg, true))
			if err != nil {
				return err
			}
			if len(input.Args) > 0 {
				return cli.Validation("decode takes at most one value or file argument, got %q", input.Args[0])
			}
			logger.Debug("read input",
				"source", input.Source,
				"bytes", len(input.Data),
				"compression", input.Compression.String(),
			)

			mode := params.Color
			if mode == "" {
				mode = cfg.Output.Color
			}
			start := time.Now()
			err = decodeBencode(input.Data, os.Stdout, decodeOutput{
				options: params.DecodeOptions(cfg),
				compact: params.Compact || cfg.Output.Compact,
				slurp:   params.Slurp,
				profile: colorProfile(mode, os.Stdout),
			})
			logger.Debug("decoded", "elapsed", time.Since(start))
			return err
		},
	}
}

// decodeOutput selects how decodeBencode parses and renders.
type decodeOutput struct {
	options bencode.DecodeOptions
	compact bool
	slurp   bool
	profile termenv.Profile
}

// decodeBencode decodes data and writes its JSON projection to w.
func decodeBencode(data []byte, w io.Writer, output decodeOutput) error {
	if output.slurp {
		values, err := decodeSequence(data, output.options)
		if err != nil {
			return err
		}
		return writeJSON(w, values, output.compact, output.profile)
	}

	value, err := output.options.Decode(data)
	if err != nil {
		return fmt.Errorf("decode bencode: %w", err)
	}
	return writeJSON(w, value, output.compact, output.profile)
}

// decodeSequence decodes every value in a sequence of concatenated
// bencoded values. An empty sequence is an error.
func decodeSequence(data []byte, options bencode.DecodeOptions) ([]bencode.Value, error) {
	var values []bencode.Value
	for len(data) > 0 {
		value, rest, err := options.DecodeFirst(data)
		if err != nil {
			return nil, fmt.Errorf("decode bencode sequence item %d: %w", len(values), err)
		}
		values = append(values, value)
		data = rest
	}
	if len(values) == 0 {
		return nil, source.ErrEmpty
	}
	return values, nil
}
