// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go4.org/readerutil"
)

var numericSuffix = regexp.MustCompile(`\.([0-9]{3})$`)

// isByteSplit reports whether path names a volume of a byte-split set
// (name.ext.001, name.ext.002, ...).
func isByteSplit(path string) bool {
	return numericSuffix.MatchString(path)
}

// VolumeSet returns the paths of a byte-split volume set starting at first,
// following consecutive numbers until one is missing. first must end in a
// three-digit suffix.
func VolumeSet(first string) ([]string, error) {
	m := numericSuffix.FindStringSubmatchIndex(first)
	if m == nil {
		return nil, fmt.Errorf("%s is not a numbered volume", filepath.Base(first))
	}
	prefix := first[:m[2]]
	start, _ := strconv.Atoi(first[m[2]:m[3]])

	var paths []string
	for n := start; n <= 999; n++ {
		p := prefix + fmt.Sprintf("%03d", n)
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) && n > start {
				break
			}
			return nil, fmt.Errorf("opening volume %s: %w", filepath.Base(p), err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// volumeReader concatenates a volume set into one random-access reader.
type volumeReader struct {
	readerutil.SizeReaderAt
	files []*os.File
}

// openVolumes opens every volume of the set starting at first.
func openVolumes(first string) (*volumeReader, error) {
	paths, err := VolumeSet(first)
	if err != nil {
		return nil, err
	}

	vr := &volumeReader{}
	parts := make([]readerutil.SizeReaderAt, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			vr.Close()
			return nil, fmt.Errorf("opening volume %s: %w", filepath.Base(p), err)
		}
		vr.files = append(vr.files, f)

		info, err := f.Stat()
		if err != nil {
			vr.Close()
			return nil, fmt.Errorf("stat volume %s: %w", filepath.Base(p), err)
		}
		parts = append(parts, io.NewSectionReader(f, 0, info.Size()))
	}
	vr.SizeReaderAt = readerutil.NewMultiReaderAt(parts...)
	return vr, nil
}

// Stream returns a sequential reader over the whole volume set.
func (v *volumeReader) Stream() io.Reader {
	return io.NewSectionReader(v, 0, v.Size())
}

func (v *volumeReader) Close() error {
	var errs []string
	for _, f := range v.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing volumes: %s", strings.Join(errs, "; "))
	}
	return nil
}
