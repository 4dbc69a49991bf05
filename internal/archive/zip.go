// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yeka/zip"

	"github.com/pdiddy/batch-extract/pkg/types"
)

// Zip reads zip archives, including traditional PKWARE (ZipCrypto) and
// WinZip AES encrypted entries, and byte-split sets (name.zip.001,
// name.zip.002, ...).
type Zip struct{}

// NewZip returns the zip driver.
func NewZip() *Zip { return &Zip{} }

func (*Zip) Format() types.ArchiveFormat { return types.FormatZip }

// open returns a reader over a single zip file or a byte-split set.
func (*Zip) open(path string) (*zip.Reader, io.Closer, error) {
	if isByteSplit(path) {
		vr, err := openVolumes(path)
		if err != nil {
			return nil, nil, err
		}
		r, err := zip.NewReader(vr, vr.Size())
		if err != nil {
			vr.Close()
			return nil, nil, err
		}
		return r, vr, nil
	}

	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, err
	}
	return &rc.Reader, rc, nil
}

func (z *Zip) Verify(_ context.Context, path string) types.VerificationResult {
	r, closer, err := z.open(path)
	if err != nil {
		return ClassifyError(err)
	}
	defer closer.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.IsEncrypted() {
			return types.NeedsPassword(fmt.Sprintf("%s is encrypted", f.Name))
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

func (z *Zip) Extract(ctx context.Context, req Request) (Stats, error) {
	r, closer, err := z.open(req.Path)
	if err != nil {
		return Stats{}, wrapFailure(err, req.Path, req.Password)
	}
	defer closer.Close()

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
		if f.IsEncrypted() {
			if req.Password == "" {
				return w.stats, wrapFailure(fmt.Errorf("%s: %w", f.Name, ErrNeedsPassword), req.Path, "")
			}
			f.SetPassword(req.Password)
		}
		if err := z.extractFile(f, w); err != nil {
			if f.IsEncrypted() && !errors.Is(err, ErrIO) {
				// ZipCrypto carries no password check, so a wrong password
				// surfaces as a checksum or inflate error.
				err = fmt.Errorf("%w: %v", ErrWrongPassword, err)
			}
			return w.stats, wrapFailure(err, req.Path, req.Password)
		}
	}
	return w.stats, nil
}

func (*Zip) extractFile(f *zip.File, w *entryWriter) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	defer rc.Close()

	if err := w.file(f.Name, f.Mode(), rc); err != nil {
		if errors.Is(err, ErrIO) {
			return err
		}
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	return nil
}
