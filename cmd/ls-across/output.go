package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/common/expfmt"
	"golang.org/x/term"

	"github.com/litescript/ls-across/internal/ui"
)

// emit writes v as JSON, or tables as text, or browses tables when the
// output is a terminal.
func (a *app) emit(ctx context.Context, v any, tables ...ui.Table) error {
	switch a.format {
	case formatJSON:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatTUI:
		if a.isTerminal() {
			return ui.Browse(ctx, tables...)
		}
		a.log.Debug("stdout is not a terminal, printing tables")
	}

	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		fmt.Fprint(a.stdout, t.Render())
	}
	return nil
}

// emitLine writes v as JSON, or line as text.
func (a *app) emitLine(v any, line string) error {
	if a.format == formatJSON {
		return a.emit(context.Background(), v)
	}
	_, err := fmt.Fprintln(a.stdout, line)
	return err
}

func (a *app) isTerminal() bool {
	f, ok := a.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeMetrics prints the request metrics in the Prometheus text format when
// --metrics is set.
func (a *app) writeMetrics() error {
	if a.registry == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.stderr, mf); err != nil {
			return err
		}
	}
	return nil
}
