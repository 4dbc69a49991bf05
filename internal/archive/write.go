// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go4.org/readerutil"
)

// Stats summarizes what one extraction wrote.
type Stats struct {
	Files int
	Dirs  int
	Bytes int64
}

// entryWriter materializes archive entries under a destination folder and
// keeps running totals.
type entryWriter struct {
	dest     string
	progress io.Writer
	stats    Stats
}

func newEntryWriter(dest string, progress io.Writer) *entryWriter {
	return &entryWriter{dest: dest, progress: progress}
}

// target maps an in-archive name to a path under dest.
func (w *entryWriter) target(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	return filepath.Join(w.dest, filepath.FromSlash(path.Clean("/"+name)))
}

func (w *entryWriter) dir(name string) error {
	p := w.target(name)
	if err := os.MkdirAll(p, 0o755); err != nil {
		return ioFailure(err, p)
	}
	w.stats.Dirs++
	return nil
}

// writeErr records the first error from the destination so read and write
// failures can be told apart after io.Copy.
type writeErr struct {
	w   io.Writer
	err error
}

func (t *writeErr) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil && t.err == nil {
		t.err = err
	}
	return n, err
}

// file copies r into the entry's destination path. Read errors are returned
// unwrapped for the driver to classify; write errors wrap ErrIO.
func (w *entryWriter) file(name string, mode fs.FileMode, r io.Reader) error {
	p := w.target(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return ioFailure(err, p)
	}

	perm := mode.Perm()
	if perm == 0 {
		perm = 0o644
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return ioFailure(err, p)
	}

	var n int64
	src := io.Reader(readerutil.CountingReader{Reader: r, N: &n})
	if w.progress != nil {
		src = io.TeeReader(src, w.progress)
	}
	dst := &writeErr{w: f}
	_, copyErr := io.Copy(dst, src)
	closeErr := f.Close()
	w.stats.Bytes += n

	switch {
	case dst.err != nil:
		return ioFailure(dst.err, p)
	case copyErr != nil:
		return copyErr
	case closeErr != nil:
		return ioFailure(closeErr, p)
	}
	w.stats.Files++
	return nil
}
