package meta

import (
	"cmp"
	"slices"

	"github.com/garagon/attrib/internal/types"
)

// DefaultTopHolders is the number of holders Summarize reports.
const DefaultTopHolders = 10

// Summarize counts detections per kind and ranks holders by the number of
// files naming them. Ties are broken by holder name. topN <= 0 keeps every
// holder.
func Summarize(files []types.FileResult, topN int) types.Summary {
	var s types.Summary
	fileCount := make(map[string]int)
	for _, f := range files {
		s.Copyrights += len(f.Copyrights)
		s.Holders += len(f.Holders)
		s.Authors += len(f.Authors)

		seen := make(map[string]bool, len(f.Holders))
		for _, h := range f.Holders {
			if seen[h.Holder] {
				continue
			}
			seen[h.Holder] = true
			fileCount[h.Holder]++
		}
	}

	for holder, n := range fileCount {
		s.TopHolders = append(s.TopHolders, types.HolderCount{Holder: holder, Files: n})
	}
	slices.SortFunc(s.TopHolders, func(a, b types.HolderCount) int {
		if c := cmp.Compare(b.Files, a.Files); c != 0 {
			return c
		}
		return cmp.Compare(a.Holder, b.Holder)
	})
	if topN > 0 && len(s.TopHolders) > topN {
		s.TopHolders = s.TopHolders[:topN]
	}
	return s
}
