// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan classifies the files of a source folder by archive format
// and collects volume fragments into ordered multi-part groups.
package scan

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/batch-extract/pkg/types"
)

var (
	// numericVolume matches byte-split volume suffixes: .001 through .999.
	numericVolume = regexp.MustCompile(`^\.(00[1-9]|0[1-9][0-9]|[1-9][0-9]{2})$`)
	// zipVolume matches split zip suffixes: .z01 through .z99.
	zipVolume = regexp.MustCompile(`^\.z(0[1-9]|[1-9][0-9])$`)
	// rarVolume matches old-style rar volume suffixes: .r00 through .r99.
	rarVolume = regexp.MustCompile(`^\.r[0-9]{2}$`)
)

var standaloneFormats = map[string]types.ArchiveFormat{
	".zip": types.FormatZip,
	".rar": types.FormatRar,
	".7z":  types.FormatSevenZip,
}

// Classify determines the archive format of a file from its name alone.
// Matching is case-insensitive. It returns false for files that are not
// archives or volume fragments. The returned entry's Path is the argument
// as given.
func Classify(path string) (types.ArchiveEntry, bool) {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	lowerExt := strings.ToLower(ext)
	stem := strings.TrimSuffix(name, ext)

	entry := types.ArchiveEntry{Path: path, Name: name}

	if format, ok := standaloneFormats[lowerExt]; ok {
		if stem == "" {
			return types.ArchiveEntry{}, false
		}
		entry.Format = format
		entry.Container = format
		entry.Base = stem
		return entry, true
	}

	token := strings.TrimPrefix(lowerExt, ".")
	switch {
	case numericVolume.MatchString(lowerExt):
		inner := filepath.Ext(stem)
		entry.Container = numericContainer(inner)
		if inner != "" {
			// archive.7z.001 folds into the base "archive".
			stem = strings.TrimSuffix(stem, inner)
		}
	case zipVolume.MatchString(lowerExt):
		entry.Container = types.FormatZip
	case rarVolume.MatchString(lowerExt):
		entry.Container = types.FormatRar
	default:
		return types.ArchiveEntry{}, false
	}

	if stem == "" {
		return types.ArchiveEntry{}, false
	}
	entry.Format = types.FormatMultipart
	entry.Token = token
	entry.Base = stem
	return entry, true
}

// numericContainer maps the extension preceding a .NNN suffix to the driver
// family that reads the reassembled volume set. Anything that is not zip
// or rar is treated as 7z, which owns the .001 convention.
func numericContainer(inner string) types.ArchiveFormat {
	switch strings.ToLower(inner) {
	case ".zip":
		return types.FormatZip
	case ".rar":
		return types.FormatRar
	default:
		return types.FormatSevenZip
	}
}
