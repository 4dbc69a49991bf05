// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"fmt"
	"io"

	"github.com/bodgit/sevenzip"

	"github.com/pdiddy/batch-extract/pkg/types"
)

// SevenZip reads 7z archives. A path ending in .001 opens every following
// volume of the set.
type SevenZip struct{}

// NewSevenZip returns the 7z driver.
func NewSevenZip() *SevenZip { return &SevenZip{} }

func (*SevenZip) Format() types.ArchiveFormat { return types.FormatSevenZip }

// Verify opens the archive and reads its first file. Encrypted headers fail
// at open; encrypted content fails at read. Both report needs_password.
func (*SevenZip) Verify(_ context.Context, path string) types.VerificationResult {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return ClassifyError(err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ClassifyError(err)
		}
		_, err = io.Copy(io.Discard, rc)
		rc.Close()
		return ClassifyError(err)
	}
	return types.Valid()
}

func (*SevenZip) Extract(ctx context.Context, req Request) (Stats, error) {
	r, err := sevenzip.OpenReaderWithPassword(req.Path, req.Password)
	if err != nil {
		return Stats{}, wrapFailure(err, req.Path, req.Password)
	}
	defer r.Close()

	w := newEntryWriter(req.Dest, req.Progress)
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return w.stats, err
		}
		if f.FileInfo().IsDir() {
			if err := w.dir(f.Name); err != nil {
				return w.stats, err
			}
			continue
		}
		if err := extractSevenZipFile(f, w); err != nil {
			return w.stats, wrapFailure(err, req.Path, req.Password)
		}
	}
	return w.stats, nil
}

func extractSevenZipFile(f *sevenzip.File, w *entryWriter) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	defer rc.Close()
	if err := w.file(f.Name, f.Mode(), rc); err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	return nil
}
