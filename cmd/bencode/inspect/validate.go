// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/cmd/bencode/source"
	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/config"
)

// validateParams holds the parameters for the "bencode validate" command.
type validateParams struct {
	source.Flags
	Slurp bool `json:"slurp" flag:"slurp,s" desc:"validate each value in a sequence of concatenated values"`
}

func validateCommand(cfg *config.Config) *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check whether bencode is in canonical form",
		Description: `Read bencoded data and verify it is canonical: the exact bytes the
encoder produces for the decoded value. Exits 0 with "valid" if so,
exits 1 with the first differing byte if not.

Validation works by decoding the input and re-encoding it, then
comparing the bytes. The decoder already rejects malformed integers,
leading zeros, duplicate keys, and trailing data, so a mismatch means
dictionary keys were out of order.

With -s, validates each value in a sequence of concatenated values.`,
		Usage: "bencode validate [-s] [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Validate a torrent file",
				Command:     "bencode validate ubuntu.torrent",
			},
			{
				Description: "Validate output from a pipeline",
				Command:     "echo '{\"count\":42}' | bencode encode | bencode validate",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			input, err := source.Read(args, params.Options(cfg, false))
			if err != nil {
				return err
			}
			if len(input.Args) > 0 {
				return cli.Validation("validate takes no positional arguments besides an optional file path, got %q", input.Args[0])
			}
			logger.Debug("read input", "source", input.Source, "bytes", len(input.Data), "compression", input.Compression.String())

			err = validateBencode(input.Data, os.Stdout, params.DecodeOptions(cfg), params.Slurp)
			var mismatch *mismatchError
			if errors.As(err, &mismatch) {
				fmt.Fprintln(os.Stdout, mismatch.Error())
				return &cli.ExitError{Code: cli.ExitFailure}
			}
			return err
		},
	}
}

// mismatchError reports where a document diverges from its canonical
// re-encoding.
type mismatchError struct {
	offset    int
	original  int
	reencoded int
}

func (e *mismatchError) Error() string {
	return fmt.Sprintf("not canonical: first difference at byte %d (original %d bytes, re-encoded %d bytes)",
		e.offset, e.original, e.reencoded)
}

// validateBencode checks whether data is canonical bencode by decoding
// and re-encoding, then comparing bytes. It writes "valid" to w on
// success and returns a *mismatchError when the bytes differ.
func validateBencode(data []byte, w io.Writer, options bencode.DecodeOptions, slurp bool) error {
	var reencoded []byte
	if slurp {
		values, err := decodeSequence(data, options)
		if err != nil {
			return err
		}
		for _, value := range values {
			reencoded = bencode.Append(reencoded, value)
		}
	} else {
		value, err := options.Decode(data)
		if err != nil {
			return fmt.Errorf("decode bencode: %w", err)
		}
		reencoded = bencode.Encode(value)
	}

	if bytes.Equal(data, reencoded) {
		_, err := fmt.Fprintln(w, "valid")
		return err
	}
	return describeMismatch(data, reencoded)
}

func describeMismatch(original, reencoded []byte) error {
	offset := 0
	minLength := min(len(original), len(reencoded))
	for offset < minLength && original[offset] == reencoded[offset] {
		offset++
	}
	return &mismatchError{offset: offset, original: len(original), reencoded: len(reencoded)}
}
