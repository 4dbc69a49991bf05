// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs a whole extraction batch: scan the source folder,
// verify every archive, extract the ones that pass, and aggregate a report.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/batch-extract/internal/archive"
	"github.com/pdiddy/batch-extract/internal/extract"
	"github.com/pdiddy/batch-extract/internal/password"
	"github.com/pdiddy/batch-extract/internal/scan"
	"github.com/pdiddy/batch-extract/internal/verify"
	"github.com/pdiddy/batch-extract/pkg/types"
)

// Config holds orchestrator settings.
type Config struct {
	// MaxPasswordAttempts bounds password submissions per archive.
	MaxPasswordAttempts int

	// Progress, when non-nil, receives a byte-count spinner per archive.
	Progress io.Writer

	// Color enables coloured summary output.
	Color bool
}

// Orchestrator drives one batch at a time. It is not safe for concurrent
// use; archives are processed sequentially.
type Orchestrator struct {
	reg *archive.Registry
	neg *password.Negotiator
	cfg Config
	w   io.Writer
	log *zap.Logger
}

// New returns an orchestrator. Status lines and the summary go to w.
func New(reg *archive.Registry, neg *password.Negotiator, cfg Config, w io.Writer, log *zap.Logger) *Orchestrator {
	return &Orchestrator{reg: reg, neg: neg, cfg: cfg, w: w, log: log}
}

// Run extracts every archive in sourceDir into its own folder under
// destDir. Individual archive failures are recorded in the report and do
// not stop the batch. An error is returned only when the source folder
// cannot be read or the destination cannot be created.
func (o *Orchestrator) Run(ctx context.Context, sourceDir, destDir string) (types.BatchReport, error) {
	report := types.BatchReport{
		SourceDir: sourceDir,
		DestDir:   destDir,
		StartedAt: time.Now().UTC(),
	}

	res, err := scan.Dir(sourceDir)
	if err != nil {
		return report, err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return report, fmt.Errorf("creating destination directory %s: %w", destDir, err)
	}
	report.Ignored = res.Ignored

	o.log.Info("scanned source folder",
		zap.String("source", sourceDir),
		zap.Int("groups", len(res.Groups)),
		zap.Int("standalone", len(res.Standalone)),
		zap.Int("ignored", len(res.Ignored)),
	)

	if res.Empty() {
		fmt.Fprintf(o.w, "No archives found in %s\n", sourceDir)
		return o.finish(report), nil
	}

	targets := res.Targets()
	fmt.Fprintf(o.w, "Verifying %d archive(s)...\n", len(targets))
	part := verify.New(o.reg, o.w, o.log).All(ctx, targets)
	report.Problems = part.Problems

	if len(part.Proceed) == 0 {
		fmt.Fprintln(o.w, "Nothing valid to extract.")
		return o.finish(report), nil
	}

	engine := extract.New(o.reg, o.neg, extract.Config{
		DestDir:             destDir,
		MaxPasswordAttempts: o.cfg.MaxPasswordAttempts,
		Progress:            o.cfg.Progress,
	}, o.w, o.log)

	fmt.Fprintf(o.w, "\nExtracting %d archive(s) into %s\n", len(part.Proceed), destDir)

	// Keys of groups already extracted; a standalone archive whose stem
	// starts with one of them belongs to that set. Skipped and failed groups
	// do not count.
	var processed []string
	for i, v := range part.Proceed {
		if ctx.Err() != nil {
			report.Aborted = true
			report.NotAttempted = names(part.Proceed[i:])
			break
		}

		t := v.Target
		if !t.Group {
			if base, ok := coveredBy(t.Main.Base, processed); ok {
				fmt.Fprintf(o.w, "skipped:   %s (part of multi-part archive %s)\n", t.Main.Name, base)
				report.Skipped = append(report.Skipped, types.Problem{
					Archive: t.Main.Name,
					Reason:  "part of multi-part archive " + base,
				})
				continue
			}
		}

		outcome := engine.Extract(ctx, t)
		report.Add(outcome)
		if t.Group && outcome.Status == types.ExtractionSuccess {
			processed = append(processed, t.Main.Key())
		}

		if extract.Aborted(outcome) {
			report.Aborted = true
			report.NotAttempted = names(part.Proceed[i+1:])
			o.log.Info("batch aborted", zap.String("archive", t.Main.Name), zap.Int("not_attempted", len(report.NotAttempted)))
			break
		}
	}

	return o.finish(report), nil
}

func (o *Orchestrator) finish(r types.BatchReport) types.BatchReport {
	r.FinishedAt = time.Now().UTC()
	RenderText(o.w, r, o.cfg.Color)
	o.log.Info("batch finished",
		zap.Int("succeeded", r.Succeeded),
		zap.Int("skipped", len(r.Skipped)),
		zap.Int("failed", r.Failed),
		zap.Int("problems", len(r.Problems)),
		zap.Bool("aborted", r.Aborted),
	)
	return r
}

func coveredBy(stem string, processed []string) (string, bool) {
	lower := strings.ToLower(stem)
	for _, base := range processed {
		if strings.HasPrefix(lower, base) {
			return base, true
		}
	}
	return "", false
}

func names(vs []verify.Verified) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Target.Main.Name)
	}
	return out
}
