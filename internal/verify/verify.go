// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify checks every archive target before extraction and splits
// the batch into targets that may proceed and problems that are reported
// and skipped.
package verify

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"go.uber.org/zap"

	"github.com/pdiddy/batch-extract/internal/archive"
	"github.com/pdiddy/batch-extract/pkg/types"
)

var numericToken = regexp.MustCompile(`^[0-9]{3}$`)

// containerExt is the extension a content sniff reports for each family.
var containerExt = map[types.ArchiveFormat]string{
	types.FormatZip:      ".zip",
	types.FormatRar:      ".rar",
	types.FormatSevenZip: ".7z",
}

// Verified pairs a target with its verification result.
type Verified struct {
	Target types.Target
	Result types.VerificationResult
}

// Partition is the outcome of verifying a batch.
type Partition struct {
	// Proceed holds valid and password-protected targets in input order.
	Proceed []Verified

	// Problems lists corrupt and incomplete archives. A failed group
	// contributes one entry per fragment.
	Problems []types.Problem
}

// Verifier runs the driver checks.
type Verifier struct {
	reg *archive.Registry
	w   io.Writer
	log *zap.Logger
}

// New returns a verifier that writes one status line per target to w.
func New(reg *archive.Registry, w io.Writer, log *zap.Logger) *Verifier {
	return &Verifier{reg: reg, w: w, log: log}
}

// Verify checks the target's main file without a password. Only the first
// volume of a group is opened; drivers follow the rest themselves.
func (v *Verifier) Verify(ctx context.Context, t types.Target) types.VerificationResult {
	main := t.Main
	if t.Group && numericToken.MatchString(main.Token) && main.Token != "001" {
		return types.NeedsOtherVolume(fmt.Sprintf("first volume is missing, set starts at %s", main.Name))
	}

	d, err := v.reg.For(main)
	if err != nil {
		return types.Corrupt(err.Error())
	}

	res := d.Verify(ctx, main.Path)
	if res.Status == types.VerifyCorrupt {
		res = v.annotate(ctx, main, res)
	}
	v.log.Debug("verified archive",
		zap.String("archive", main.Name),
		zap.String("status", string(res.Status)),
		zap.String("reason", res.Reason),
	)
	return res
}

// annotate adds a hint to a corrupt result when the file's bytes belong to
// a different container family than its name suggests.
func (v *Verifier) annotate(ctx context.Context, e types.ArchiveEntry, res types.VerificationResult) types.VerificationResult {
	ext, err := archive.Sniff(ctx, e.Path)
	if err != nil {
		v.log.Debug("content sniff failed", zap.String("archive", e.Name), zap.Error(err))
		return res
	}
	if ext == "" || ext == containerExt[e.Container] {
		return res
	}
	return types.Corrupt(fmt.Sprintf("%s (content looks like %s)", res.Reason, ext))
}

// All verifies every target in order and partitions the results.
func (v *Verifier) All(ctx context.Context, targets []types.Target) Partition {
	var p Partition
	for _, t := range targets {
		res := v.Verify(ctx, t)
		switch res.Status {
		case types.VerifyValid:
			fmt.Fprintf(v.w, "verified: %s\n", t.Main.Name)
		case types.VerifyNeedsPassword:
			fmt.Fprintf(v.w, "locked:   %s (needs password)\n", t.Main.Name)
		default:
			fmt.Fprintf(v.w, "problem:  %s (%s)\n", t.Main.Name, res.Reason)
		}

		if res.Proceed() {
			p.Proceed = append(p.Proceed, Verified{Target: t, Result: res})
			continue
		}
		p.Problems = append(p.Problems, problems(t, res)...)
	}
	return p
}

func problems(t types.Target, res types.VerificationResult) []types.Problem {
	if !t.Group {
		return []types.Problem{{Archive: t.Main.Name, Reason: res.Reason}}
	}
	out := make([]types.Problem, 0, len(t.Parts))
	for _, part := range t.Parts {
		out = append(out, types.Problem{
			Archive: part.Name,
			Reason:  "multi-part archive error: " + res.Reason,
		})
	}
	return out
}
