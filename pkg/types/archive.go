// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the batch-extract stages:
// archive entries and groups, verification results, extraction outcomes,
// and run configuration.
package types

import "strings"

// ArchiveFormat identifies the container family of an archive file.
type ArchiveFormat string

const (
	FormatZip       ArchiveFormat = "zip"
	FormatRar       ArchiveFormat = "rar"
	FormatSevenZip  ArchiveFormat = "7z"
	FormatMultipart ArchiveFormat = "multipart"
)

// ArchiveEntry is one classified file in the source folder. Entries are
// built once by the classifier and never modified afterwards.
type ArchiveEntry struct {
	// Path is the full filesystem path of the file.
	Path string `json:"path" yaml:"path"`

	// Name is the file name as found in the source folder.
	Name string `json:"name" yaml:"name"`

	// Format is zip, rar or 7z for standalone archives and multipart
	// for volume fragments.
	Format ArchiveFormat `json:"format" yaml:"format"`

	// Container is the driver family that reads this file. For standalone
	// archives it equals Format.
	Container ArchiveFormat `json:"container" yaml:"container"`

	// Token is the fragment suffix without the dot (e.g. "001", "z01", "r00").
	// Empty for standalone archives.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// Base is the group base name in its original case. For standalone
	// archives it is the file stem.
	Base string `json:"base" yaml:"base"`
}

// IsFragment reports whether the entry is one volume of a multi-part set.
func (e ArchiveEntry) IsFragment() bool {
	return e.Format == FormatMultipart
}

// Key returns the case-insensitive identity of the entry's base name.
func (e ArchiveEntry) Key() string {
	return strings.ToLower(e.Base)
}

// ArchiveGroup is an ordered set of fragments that form one logical archive.
// Parts is never empty and is sorted ascending by fragment token.
type ArchiveGroup struct {
	// Key is the lower-cased base name shared by every part.
	Key string `json:"key" yaml:"key"`

	// Base is the base name in the case of the first fragment seen.
	Base string `json:"base" yaml:"base"`

	// Parts lists the fragments in volume order.
	Parts []ArchiveEntry `json:"parts" yaml:"parts"`
}

// Main returns the first volume, which drives verification and extraction.
func (g *ArchiveGroup) Main() ArchiveEntry {
	return g.Parts[0]
}

// Target is the unit handed to the verifier and the extraction engine: a
// standalone archive or the main volume of a group, plus the folder name
// its contents land in.
type Target struct {
	// Name is the destination folder name under the output root.
	Name string `json:"name" yaml:"name"`

	// Main is the file opened by the format driver.
	Main ArchiveEntry `json:"main" yaml:"main"`

	// Parts lists every file the target covers. A standalone target has a
	// single part equal to Main.
	Parts []ArchiveEntry `json:"parts" yaml:"parts"`

	// Group is true when the target was built from a multi-part group.
	Group bool `json:"group" yaml:"group"`
}

// GroupTarget builds the target for a multi-part group.
func GroupTarget(g *ArchiveGroup) Target {
	return Target{
		Name:  g.Base,
		Main:  g.Main(),
		Parts: g.Parts,
		Group: true,
	}
}

// StandaloneTarget builds the target for a single-file archive.
func StandaloneTarget(e ArchiveEntry) Target {
	return Target{
		Name:  e.Base,
		Main:  e,
		Parts: []ArchiveEntry{e},
	}
}
