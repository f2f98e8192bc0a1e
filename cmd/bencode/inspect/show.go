// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/cmd/bencode/source"
	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/config"
)

// maxShownString is the longest byte string show prints in full.
// Longer strings are cut and annotated with their length.
const maxShownString = 64

// showParams holds the parameters for the "bencode show" command.
type showParams struct {
	source.Flags
	Color string `json:"color" flag:"color" desc:"style output: auto, always, never (default from config)"`
}

func showCommand(cfg *config.Config) *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print bencode as an indented tree",
		Description: `Decode a bencoded value and print it as an indented tree.

Every node shows its type. Containers show their element count,
integers their value, and byte strings their text. Strings that are
not valid UTF-8 are shown as hex, and strings longer than 64 bytes are
cut with their full length noted. On a terminal the tree is styled.

Input resolution matches "bencode decode".`,
		Usage: "bencode show [-x] [value|file]",
		Examples: []cli.Example{
			{
				Description: "Show the structure of a torrent file",
				Command:     "bencode show ubuntu.torrent",
			},
			{
				Description: "Show a literal value",
				Command:     "bencode show 'd3:cow3:moo4:spaml1:a1:bee'",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			input, err := source.Read(args, params.Options(cfg, true))
			if err != nil {
				return err
			}
			if len(input.Args) > 0 {
				return cli.Validation("show takes at most one value or file argument, got %q", input.Args[0])
			}
			logger.Debug("read input", "source", input.Source, "bytes", len(input.Data), "compression", input.Compression.String())

			start := time.Now()
			value, err := params.DecodeOptions(cfg).Decode(input.Data)
			if err != nil {
				return fmt.Errorf("decode bencode: %w", err)
			}
			logger.Debug("decoded", "elapsed", time.Since(start), "kind", value.Kind().String())

			mode := params.Color
			if mode == "" {
				mode = cfg.Output.Color
			}
			return showTree(os.Stdout, value, colorProfile(mode, os.Stdout))
		},
	}
}

// treeStyles holds the styles for each part of a rendered tree.
type treeStyles struct {
	branch  lipgloss.Style
	key     lipgloss.Style
	kind    lipgloss.Style
	integer lipgloss.Style
	text    lipgloss.Style
	binary  lipgloss.Style
	note    lipgloss.Style
}

func newTreeStyles(renderer *lipgloss.Renderer) treeStyles {
	return treeStyles{
		branch:  renderer.NewStyle().Foreground(lipgloss.Color("240")),
		key:     renderer.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		kind:    renderer.NewStyle().Foreground(lipgloss.Color("245")),
		integer: renderer.NewStyle().Foreground(lipgloss.Color("141")),
		text:    renderer.NewStyle().Foreground(lipgloss.Color("186")),
		binary:  renderer.NewStyle().Foreground(lipgloss.Color("208")),
		note:    renderer.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
	}
}

// showTree writes value to w as an indented tree styled for profile.
func showTree(w io.Writer, value bencode.Value, profile termenv.Profile) error {
	printer := &treePrinter{styles: newTreeStyles(newRenderer(w, profile))}
	printer.node(value, "", "")
	_, err := io.WriteString(w, printer.output.String())
	return err
}

type treePrinter struct {
	styles treeStyles
	output strings.Builder
}

// node writes one line for value, preceded by label, then its children
// indented under prefix.
func (printer *treePrinter) node(value bencode.Value, label, prefix string) {
	printer.output.WriteString(label)
	printer.output.WriteString(printer.describe(value))
	printer.output.WriteByte('\n')

	switch value.Kind() {
	case bencode.KindList:
		items, _ := value.List()
		for index, item := range items {
			printer.child(item, printer.styles.kind.Render(fmt.Sprintf("[%d]", index))+" ", prefix, index == len(items)-1)
		}
	case bencode.KindDict:
		dict, _ := value.Dict()
		index := 0
		for key, element := range dict.All() {
			printer.child(element, printer.styles.key.Render(displayString(key))+": ", prefix, index == dict.Len()-1)
			index++
		}
	}
}

func (printer *treePrinter) child(value bencode.Value, label, prefix string, last bool) {
	connector, continuation := "├── ", "│   "
	if last {
		connector, continuation = "└── ", "    "
	}
	printer.node(value, prefix+printer.styles.branch.Render(connector)+label, prefix+printer.styles.branch.Render(continuation))
}

// describe renders the type and content of a single node.
func (printer *treePrinter) describe(value bencode.Value) string {
	styles := printer.styles
	switch value.Kind() {
	case bencode.KindInteger:
		n, _ := value.Int()
		return styles.integer.Render(strconv.FormatInt(n, 10))

	case bencode.KindString:
		text, _ := value.Str()
		shown := text
		if len(shown) > maxShownString {
			shown = shown[:maxShownString]
		}
		var rendered string
		if utf8.ValidString(text) {
			rendered = styles.text.Render(strconv.Quote(strings.ToValidUTF8(shown, "")))
		} else {
			rendered = styles.binary.Render(fmt.Sprintf("0x%x", shown))
		}
		if len(text) > maxShownString {
			rendered += " " + styles.note.Render(fmt.Sprintf("(%d bytes)", len(text)))
		}
		return rendered

	case bencode.KindList:
		return styles.kind.Render(fmt.Sprintf("list (%d)", value.Len()))

	case bencode.KindDict:
		return styles.kind.Render(fmt.Sprintf("dict (%d)", value.Len()))

	default:
		return styles.note.Render("<invalid>")
	}
}

// displayString quotes a dictionary key only when it would otherwise
// be ambiguous or unprintable.
func displayString(key string) string {
	if key == "" || !utf8.ValidString(key) || strings.ContainsAny(key, " \t\r\n:\"") || strconv.Quote(key) != `"`+key+`"` {
		return strconv.Quote(key)
	}
	return key
}
