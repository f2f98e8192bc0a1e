// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_Types(t *testing.T) {
	type params struct {
		Name     string   `flag:"name,n"     desc:"a name"   default:"torrent"`
		Compact  bool     `flag:"compact,c"  desc:"compact"`
		Depth    int      `flag:"max-depth"  desc:"depth"    default:"64"`
		Keys     []string `flag:"key"        desc:"keys"     default:"info,announce"`
		internal string
	}
	var p params

	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	if p.Name != "torrent" || p.Depth != 64 || !slices.Equal(p.Keys, []string{"info", "announce"}) {
		t.Errorf("defaults not applied: %+v", p)
	}

	if err := flagSet.Parse([]string{"-n", "x", "-c", "--max-depth=8", "--key", "pieces"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "x" || !p.Compact || p.Depth != 8 || !slices.Equal(p.Keys, []string{"pieces"}) {
		t.Errorf("parsed values wrong: %+v", p)
	}
	if flagSet.Lookup("internal") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_EmbeddedStruct(t *testing.T) {
	type params struct {
		JSONOutput
		Verbose bool `flag:"verbose,v" desc:"verbose"`
	}
	var p params

	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"--json", "-v"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.OutputJSON || !p.Verbose {
		t.Errorf("embedded flags not bound: %+v", p)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"not a pointer", struct{}{}, "must be a pointer to a struct"},
		{"pointer to non-struct", new(int), "must be a pointer to a struct"},
		{"unsupported type", &struct {
			Ratio float32 `flag:"ratio"`
		}{}, "unsupported type float32"},
		{"bad bool default", &struct {
			Enabled bool `flag:"enabled" default:"maybe"`
		}{}, "default for --enabled"},
		{"bad int default", &struct {
			Depth int `flag:"depth" default:"deep"`
		}{}, "default for --depth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BindFlags(tt.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil {
				t.Fatal("BindFlags succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestFlagsFromParams_PanicsOnInvalidParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic on a non-pointer")
		}
	}()
	FlagsFromParams("test", 42)
}
