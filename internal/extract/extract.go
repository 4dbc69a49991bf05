// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract runs the adaptive extraction loop for one archive target:
// a first attempt without a password, then a bounded number of attempts
// with passwords obtained from the negotiator.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/pdiddy/batch-extract/internal/archive"
	"github.com/pdiddy/batch-extract/internal/password"
	"github.com/pdiddy/batch-extract/pkg/types"
)

const (
	reasonSkipped    = "skipped by user"
	reasonAborted    = "aborted by user"
	reasonTooMany    = "too many password attempts"
	reasonNoDriver   = "unsupported archive format"
	reasonOutputDir  = "cannot create output folder"
	reasonWriteError = "cannot write output"
)

// Config holds engine settings.
type Config struct {
	// DestDir is the output root. Each target extracts into DestDir/<name>.
	DestDir string

	// MaxPasswordAttempts bounds password submissions per target.
	MaxPasswordAttempts int

	// Progress, when non-nil, receives a byte-count spinner per archive.
	Progress io.Writer
}

// Engine extracts targets one at a time.
type Engine struct {
	reg *archive.Registry
	neg *password.Negotiator
	cfg Config
	w   io.Writer
	log *zap.Logger
}

// New returns an engine that writes one status line per target to w.
func New(reg *archive.Registry, neg *password.Negotiator, cfg Config, w io.Writer, log *zap.Logger) *Engine {
	if cfg.MaxPasswordAttempts <= 0 {
		cfg.MaxPasswordAttempts = types.DefaultMaxPasswordAttempts
	}
	return &Engine{reg: reg, neg: neg, cfg: cfg, w: w, log: log}
}

// OutputPath returns the folder a target extracts into.
func (e *Engine) OutputPath(t types.Target) string {
	return filepath.Join(e.cfg.DestDir, t.Name)
}

// Extract runs the attempt loop for t. Driver errors never escape; they
// are logged and folded into the outcome. An outcome whose Cause wraps
// archive.ErrUserAborted means the caller must stop the batch.
func (e *Engine) Extract(ctx context.Context, t types.Target) types.ExtractionOutcome {
	out := e.OutputPath(t)
	outcome := types.ExtractionOutcome{Target: t.Name, Archive: t.Main.Name}

	driver, err := e.reg.For(t.Main)
	if err != nil {
		return e.fail(outcome, reasonNoDriver, err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return e.fail(outcome, reasonOutputDir, goerr.Wrap(archive.ErrIO, err.Error(), goerr.V("path", out)))
	}

	var (
		pw        string
		submitted int
	)
	for {
		outcome.Attempts++
		stats, err := e.attempt(ctx, driver, t, out, pw)
		if err == nil {
			e.log.Info("extracted archive",
				zap.String("archive", t.Main.Name),
				zap.String("output", out),
				zap.Int("files", stats.Files),
				zap.Int64("bytes", stats.Bytes),
				zap.Int("attempts", outcome.Attempts),
			)
			fmt.Fprintf(e.w, "extracted: %s -> %s\n", t.Main.Name, out)
			outcome.Status = types.ExtractionSuccess
			outcome.OutputPath = out
			return outcome
		}

		e.log.Warn("extraction attempt failed",
			zap.String("archive", t.Main.Name),
			zap.Int("attempt", outcome.Attempts),
			zap.Bool("with_password", pw != ""),
			zap.Error(err),
		)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return e.skip(outcome, reasonAborted, goerr.Wrap(archive.ErrUserAborted, ctxErr.Error()))
		}
		if errors.Is(err, archive.ErrIO) {
			return e.fail(outcome, reasonWriteError, err)
		}
		if pw != "" {
			// A password that did not open the archive must not be offered again.
			e.neg.Cache().Forget(t.Main.Path)
			fmt.Fprintf(e.w, "rejected:  %s (password attempt %d of %d)\n",
				t.Main.Name, submitted, e.cfg.MaxPasswordAttempts)
		}
		if submitted >= e.cfg.MaxPasswordAttempts {
			return e.fail(outcome, reasonTooMany, goerr.Wrap(archive.ErrTooManyAttempts, err.Error(),
				goerr.V("archive", t.Main.Name),
				goerr.V("attempts", submitted),
			))
		}

		res, err := e.neg.Negotiate(t.Main.Path, submitted+1)
		if err != nil {
			return e.skip(outcome, reasonAborted, goerr.Wrap(archive.ErrUserAborted, err.Error()))
		}
		switch res.Outcome {
		case password.Skipped:
			return e.skip(outcome, reasonSkipped, archive.ErrUserSkipped)
		case password.Aborted:
			return e.skip(outcome, reasonAborted, archive.ErrUserAborted)
		}
		pw = res.Password
		submitted++
	}
}

// attempt runs the driver once, with an optional byte-count spinner.
func (e *Engine) attempt(ctx context.Context, d archive.Driver, t types.Target, out, pw string) (archive.Stats, error) {
	req := archive.Request{Path: t.Main.Path, Dest: out, Password: pw}
	if e.cfg.Progress == nil {
		return d.Extract(ctx, req)
	}

	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(e.cfg.Progress),
		progressbar.OptionSetDescription(t.Main.Name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	req.Progress = bar
	stats, err := d.Extract(ctx, req)
	_ = bar.Finish()
	return stats, err
}

func (e *Engine) fail(o types.ExtractionOutcome, reason string, cause error) types.ExtractionOutcome {
	fmt.Fprintf(e.w, "failed:    %s (%s)\n", o.Archive, reason)
	o.Status = types.ExtractionFailed
	o.Reason = reason
	o.Cause = cause
	return o
}

func (e *Engine) skip(o types.ExtractionOutcome, reason string, cause error) types.ExtractionOutcome {
	fmt.Fprintf(e.w, "skipped:   %s (%s)\n", o.Archive, reason)
	o.Status = types.ExtractionSkipped
	o.Reason = reason
	o.Cause = cause
	return o
}

// Aborted reports whether an outcome ended the batch.
func Aborted(o types.ExtractionOutcome) bool {
	return o.Cause != nil && errors.Is(o.Cause, archive.ErrUserAborted)
}
