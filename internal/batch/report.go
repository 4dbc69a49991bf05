// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/batch-extract/pkg/types"
)

// palette colours the text report. The zero value prints plain text.
type palette struct {
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	red    func(a ...interface{}) string
	cyan   func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		plain := fmt.Sprint
		return palette{green: plain, yellow: plain, red: plain, cyan: plain}
	}
	return palette{
		green:  color.New(color.FgGreen).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		red:    color.New(color.FgRed).SprintFunc(),
		cyan:   color.New(color.FgCyan).SprintFunc(),
	}
}

// SummaryLine returns the one-line batch summary.
func SummaryLine(r types.BatchReport) string {
	return fmt.Sprintf("Batch summary: %d extracted, %d skipped, %d failed (total: %d)",
		r.Succeeded, len(r.Skipped), r.Failed, r.Total())
}

// RenderText writes a human-readable report. Colour is used when
// colored is true and the color package has not been disabled.
func RenderText(w io.Writer, r types.BatchReport, colored bool) {
	p := newPalette(colored && !color.NoColor)

	fmt.Fprintln(w)
	fmt.Fprintln(w, p.cyan(SummaryLine(r)))
	if r.DestDir != "" {
		fmt.Fprintf(w, "Output folder: %s\n", r.DestDir)
	}

	for _, o := range r.Outcomes {
		switch o.Status {
		case types.ExtractionSuccess:
			fmt.Fprintf(w, "  %s %s -> %s\n", p.green("ok    "), o.Archive, o.OutputPath)
		case types.ExtractionFailed:
			fmt.Fprintf(w, "  %s %s (%s)\n", p.red("failed"), o.Archive, o.Reason)
		}
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped archives:")
		for _, s := range r.Skipped {
			fmt.Fprintf(w, "  %s %s (%s)\n", p.yellow("skip  "), s.Archive, s.Reason)
		}
	}
	if len(r.Problems) > 0 {
		fmt.Fprintln(w, "Problem archives (not extracted):")
		for _, s := range r.Problems {
			fmt.Fprintf(w, "  %s %s (%s)\n", p.red("error "), s.Archive, s.Reason)
		}
	}
	if r.Aborted {
		fmt.Fprintln(w, p.yellow("Batch aborted by user."))
		for _, name := range r.NotAttempted {
			fmt.Fprintf(w, "  not attempted: %s\n", name)
		}
	}
}

// WriteReport writes the report to path in the given format.
func WriteReport(path string, format types.ReportFormat, r types.BatchReport) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case types.ReportJSON:
		data, err = json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
	case types.ReportYAML:
		data, err = yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	case types.ReportText, "":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating report %s: %w", path, err)
		}
		RenderText(f, r, false)
		return f.Close()
	default:
		return fmt.Errorf("unknown report format %q (want text, json or yaml)", format)
	}
	return os.WriteFile(path, data, 0o644)
}
