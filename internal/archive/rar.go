// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mholt/archives"

	"github.com/pdiddy/batch-extract/pkg/types"
)

// Rar reads rar archives. Multi-volume sets named name.part1.rar or
// name.rar/name.r00 are followed from the first volume; byte-split sets
// (name.rar.001, ...) are concatenated before decoding.
type Rar struct{}

// NewRar returns the rar driver.
func NewRar() *Rar { return &Rar{} }

func (*Rar) Format() types.ArchiveFormat { return types.FormatRar }

// walk decodes the archive at path and hands every entry to handle.
func (*Rar) walk(ctx context.Context, path, password string, handle archives.FileHandler) error {
	if isByteSplit(path) {
		vr, err := openVolumes(path)
		if err != nil {
			return err
		}
		defer vr.Close()
		return archives.Rar{Password: password}.Extract(ctx, vr.Stream(), handle)
	}

	format := archives.Rar{
		Password: password,
		Name:     filepath.Base(path),
		FS:       os.DirFS(filepath.Dir(path)),
	}
	return missingVolume(format.Extract(ctx, nil, handle), path)
}

// notExistMarkers match a missing-file error whose chain was flattened to
// text by the decoder.
var notExistMarkers = []string{"no such file or directory", "cannot find the file"}

// missingVolume reports a volume that could not be opened while following
// the set as ErrNeedsOtherVolume. The decoder opens the next volume only
// when it needs it, so absence shows up as fs.ErrNotExist mid-read.
func missingVolume(err error, path string) error {
	if err == nil || errors.Is(err, ErrIO) {
		return err
	}
	if !errors.Is(err, fs.ErrNotExist) && !containsAny(err.Error(), notExistMarkers) {
		return err
	}
	return goerr.Wrap(ErrNeedsOtherVolume, err.Error(), goerr.V("archive", path))
}

func (r *Rar) Verify(ctx context.Context, path string) types.VerificationResult {
	err := r.walk(ctx, path, "", func(_ context.Context, fi archives.FileInfo) error {
		if fi.IsDir() {
			return nil
		}
		f, err := fi.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(io.Discard, f); err != nil {
			return err
		}
		return fs.SkipAll
	})
	return ClassifyError(err)
}

func (r *Rar) Extract(ctx context.Context, req Request) (Stats, error) {
	w := newEntryWriter(req.Dest, req.Progress)
	err := r.walk(ctx, req.Path, req.Password, func(_ context.Context, fi archives.FileInfo) error {
		if fi.IsDir() {
			return w.dir(fi.NameInArchive)
		}
		f, err := fi.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		return w.file(fi.NameInArchive, fi.Mode(), f)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return w.stats, err
		}
		return w.stats, wrapFailure(err, req.Path, req.Password)
	}
	return w.stats, nil
}
