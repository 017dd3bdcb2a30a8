package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-across/internal/astro"
	"github.com/litescript/ls-across/internal/normalize"
)

// metPrefix marks a timestamp given as Swift mission elapsed time.
const metPrefix = "met:"

var (
	angleKeys = []string{"ra", "dec"}
	timeKeys  = []string{"begin", "end", "trigger_time"}
)

// flagInput collects the changed flags among names into a decoder input.
// Dashes in flag names become underscores.
func flagInput(cmd *cobra.Command, names ...string) map[string]any {
	in := map[string]any{}
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		key := strings.ReplaceAll(name, "-", "_")
		if f.Value.Type() == "bool" {
			in[key] = f.Value.String() == "true"
			continue
		}
		in[key] = f.Value.String()
	}
	return in
}

func withCredentials(a *app, in map[string]any) map[string]any {
	if a.cfg.Username != "" {
		in["username"] = a.cfg.Username
	}
	if a.cfg.APIKey != "" {
		in["api_key"] = a.cfg.APIKey
	}
	return in
}

// typedInput replaces the string forms only the command line offers with
// the values the normalizers take: angles with a unit suffix and Swift MET
// timestamps.
func typedInput(in map[string]any) error {
	for _, key := range angleKeys {
		s, ok := in[key].(string)
		if !ok {
			continue
		}
		v, err := angleValue(s)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		in[key] = v
	}
	for _, key := range timeKeys {
		s, ok := in[key].(string)
		if !ok || !strings.HasPrefix(s, metPrefix) {
			continue
		}
		sec, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(s, metPrefix)), 64)
		if err != nil {
			return fmt.Errorf("%s: invalid MET %q", key, s)
		}
		in[key] = normalize.SwiftMET(sec)
	}
	return nil
}

// angleValue reads "5.5h" or "82.5 deg" as a tagged angle. Strings without
// a unit are returned as they are.
func angleValue(s string) (any, error) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexFunc(s, func(r rune) bool { return unicode.IsDigit(r) || r == '.' })
	if i < 0 || i == len(s)-1 {
		return s, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s[:i+1]), 64)
	if err != nil {
		return s, nil
	}
	unit, err := astro.ParseAngleUnit(s[i+1:])
	if err != nil {
		return nil, err
	}
	return normalize.Angle{Value: v, Unit: unit}, nil
}

// lengthValue reads a plain number of unit as a quantity. Other strings,
// like "36h", are left for the duration normalizer.
func lengthValue(s, unit string) (any, error) {
	u, err := normalize.ParseUnit(unit)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return s, nil
	}
	return normalize.Quantity{Value: v, Unit: u}, nil
}
