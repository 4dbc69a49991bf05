// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"sort"

	"github.com/pdiddy/batch-extract/pkg/types"
)

// Group partitions classified entries into multi-part groups keyed by
// lower-cased base name, and standalone archives in input order. Every
// input entry lands in exactly one of the two. Parts within a group are
// sorted ascending by fragment token, whatever the input order.
func Group(entries []types.ArchiveEntry) (map[string]*types.ArchiveGroup, []types.ArchiveEntry) {
	groups := make(map[string]*types.ArchiveGroup)
	var standalone []types.ArchiveEntry

	for _, e := range entries {
		if !e.IsFragment() {
			standalone = append(standalone, e)
			continue
		}
		key := e.Key()
		g, ok := groups[key]
		if !ok {
			g = &types.ArchiveGroup{Key: key, Base: e.Base}
			groups[key] = g
		}
		g.Parts = append(g.Parts, e)
	}

	for _, g := range groups {
		sort.SliceStable(g.Parts, func(i, j int) bool {
			return g.Parts[i].Token < g.Parts[j].Token
		})
		// The folder name follows the casing of the first volume.
		g.Base = g.Parts[0].Base
	}
	return groups, standalone
}

// SortedKeys returns the group keys in ascending order.
func SortedKeys(groups map[string]*types.ArchiveGroup) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
