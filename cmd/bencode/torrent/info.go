// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package torrent implements "bencode info", which summarizes a
// BitTorrent metainfo (.torrent) file.
package torrent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/cmd/bencode/source"
	"github.com/bureau-foundation/bencode/lib/config"
	"github.com/bureau-foundation/bencode/lib/metainfo"
)

// infoParams holds the parameters for the "bencode info" command.
type infoParams struct {
	cli.JSONOutput
	source.Flags
	Pieces bool `json:"pieces" flag:"pieces,p" desc:"list every piece hash"`
}

// InfoCommand returns the "info" command.
func InfoCommand(cfg *config.Config) *cli.Command {
	var params infoParams

	return &cli.Command{
		Name:    "info",
		Summary: "Summarize a torrent file",
		Description: `Parse a BitTorrent metainfo file and print its tracker URLs, name,
size, piece layout, and info hash.

The info hash is the SHA-1 digest of the canonical encoding of the
"info" dictionary, the identifier BitTorrent v1 clients use. Piece
hashes are counted by default; --pieces lists them.

Nothing is fetched or verified: the command only reads the file.`,
		Usage: "bencode info [--json] [--pieces] [file]",
		Examples: []cli.Example{
			{
				Description: "Summarize a torrent",
				Command:     "bencode info ubuntu.torrent",
			},
			{
				Description: "Extract the info hash with jq",
				Command:     "bencode info --json ubuntu.torrent | jq -r .info_hash",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			input, err := source.Read(args, params.Options(cfg, false))
			if err != nil {
				return err
			}
			if len(input.Args) > 0 {
				return cli.Validation("info takes no positional arguments besides an optional file path, got %q", input.Args[0])
			}

			value, err := params.DecodeOptions(cfg).Decode(input.Data)
			if err != nil {
				return fmt.Errorf("decode bencode: %w", err)
			}
			meta, err := metainfo.FromValue(value)
			if err != nil {
				return err
			}
			logger.Debug("parsed metainfo",
				"source", input.Source,
				"name", meta.Info.Name,
				"info_hash", meta.InfoHash.String(),
			)

			if done, err := params.EmitJSON(os.Stdout, meta); done {
				return err
			}
			return writeSummary(os.Stdout, meta, params.Pieces)
		},
	}
}

// writeSummary writes a human-readable summary of meta to w.
func writeSummary(w io.Writer, meta *metainfo.MetaInfo, listPieces bool) error {
	info := meta.Info
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(writer, "name:\t%s\n", info.Name)
	fmt.Fprintf(writer, "info hash:\t%s\n", meta.InfoHash)
	if meta.Announce != "" {
		fmt.Fprintf(writer, "announce:\t%s\n", meta.Announce)
	}
	for index, tier := range meta.AnnounceList {
		fmt.Fprintf(writer, "tier %d:\t%s\n", index+1, strings.Join(tier, ", "))
	}
	if meta.Comment != "" {
		fmt.Fprintf(writer, "comment:\t%s\n", meta.Comment)
	}
	if meta.CreatedBy != "" {
		fmt.Fprintf(writer, "created by:\t%s\n", meta.CreatedBy)
	}
	if !meta.CreationDate.IsZero() {
		fmt.Fprintf(writer, "created:\t%s\n", meta.CreationDate.UTC().Format(time.RFC3339))
	}
	if info.Private {
		fmt.Fprintf(writer, "private:\tyes\n")
	}
	fmt.Fprintf(writer, "total size:\t%s\n", formatSize(info.TotalLength()))
	fmt.Fprintf(writer, "piece length:\t%s\n", formatSize(info.PieceLength))
	fmt.Fprintf(writer, "pieces:\t%d\n", len(info.Pieces))
	if err := writer.Flush(); err != nil {
		return err
	}

	if info.IsMultiFile() {
		fmt.Fprintf(w, "\nfiles (%d):\n", len(info.Files))
		sizes := make([]string, len(info.Files))
		width := 0
		for index, file := range info.Files {
			sizes[index] = formatSize(file.Length)
			width = max(width, len(sizes[index]))
		}
		for index, file := range info.Files {
			fmt.Fprintf(w, "  %*s  %s\n", width, sizes[index], path.Join(file.Path...))
		}
	}

	if listPieces {
		fmt.Fprintf(w, "\npiece hashes:\n")
		width := len(fmt.Sprint(len(info.Pieces) - 1))
		for index, piece := range info.Pieces {
			fmt.Fprintf(w, "  %*d  %s\n", width, index, piece)
		}
	}
	return nil
}

// formatSize renders a byte count with a binary-unit approximation,
// e.g. "1048576 (1.0 MiB)". Counts below 1 KiB are shown in bytes.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	value, exponent := float64(size)/unit, 0
	for value >= unit && exponent < 5 {
		value /= unit
		exponent++
	}
	return fmt.Sprintf("%d (%.1f %ciB)", size, value, "KMGTPE"[exponent])
}
