// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/bencode/lib/config"
)

// colorProfile resolves a color mode to the profile output written to
// w should use. In auto mode termenv decides, which honors NO_COLOR and
// CLICOLOR_FORCE and yields Ascii when w is not a terminal.
func colorProfile(mode string, w io.Writer) termenv.Profile {
	switch mode {
	case config.ColorAlways:
		return termenv.ANSI256
	case config.ColorNever:
		return termenv.Ascii
	default:
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

// newRenderer returns a lipgloss renderer pinned to profile.
// SetColorProfile is required because Renderer.ColorProfile ignores
// the termenv.Output profile and re-detects from the environment
// unless an explicit profile is set.
func newRenderer(w io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return renderer
}

// terminalFormatter returns the chroma formatter name for profile.
func terminalFormatter(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "terminal256"
	}
}

// writeJSON encodes value as JSON and writes it to w with a trailing
// newline. When compact is false, output is pretty-printed with 2-space
// indentation. Any profile other than Ascii highlights the output.
func writeJSON(w io.Writer, value any, compact bool, profile termenv.Profile) error {
	var output []byte
	var err error
	if compact {
		output, err = json.Marshal(value)
	} else {
		output, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	if profile == termenv.Ascii {
		_, err = fmt.Fprintln(w, string(output))
		return err
	}

	var highlighted strings.Builder
	if err := quick.Highlight(&highlighted, string(output), "json", terminalFormatter(profile), "monokai"); err != nil {
		_, err = fmt.Fprintln(w, string(output))
		return err
	}
	_, err = fmt.Fprintln(w, highlighted.String())
	return err
}
