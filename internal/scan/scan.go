// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/batch-extract/pkg/types"
)

// Result is a classified snapshot of a source folder.
type Result struct {
	Dir        string
	Groups     map[string]*types.ArchiveGroup
	Standalone []types.ArchiveEntry

	// Ignored lists file names that are not archives.
	Ignored []string
}

// Dir lists the regular files directly inside dir (no recursion),
// classifies them, and groups the volume fragments. Files are visited in
// name order so results are deterministic.
func Dir(dir string) (Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("reading source directory %s: %w", dir, err)
	}

	var classified []types.ArchiveEntry
	var ignored []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		e, ok := Classify(filepath.Join(dir, name))
		if !ok {
			ignored = append(ignored, name)
			continue
		}
		classified = append(classified, e)
	}

	groups, standalone := Group(classified)
	return Result{
		Dir:        dir,
		Groups:     groups,
		Standalone: standalone,
		Ignored:    ignored,
	}, nil
}

// Targets returns one target per group, ordered by group key, followed by
// one target per standalone archive in scan order.
func (r Result) Targets() []types.Target {
	targets := make([]types.Target, 0, len(r.Groups)+len(r.Standalone))
	for _, k := range SortedKeys(r.Groups) {
		targets = append(targets, types.GroupTarget(r.Groups[k]))
	}
	for _, e := range r.Standalone {
		targets = append(targets, types.StandaloneTarget(e))
	}
	return targets
}

// Empty reports whether the folder held no archives at all.
func (r Result) Empty() bool {
	return len(r.Groups) == 0 && len(r.Standalone) == 0
}
