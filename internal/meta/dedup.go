// Package meta post-processes per-file detections: duplicate removal and the
// cross-file summary.
package meta

import (
	"fmt"

	"github.com/garagon/attrib/internal/types"
)

// Deduplicate drops repeated detections of the same text over the same line
// span, keeping the first occurrence. It returns a copy; d is not modified.
func Deduplicate(d types.Detections) types.Detections {
	return types.Detections{
		Copyrights: dedupe(d.Copyrights, func(c types.CopyrightDetection) string {
			return key(c.Copyright, c.StartLine, c.EndLine)
		}),
		Holders: dedupe(d.Holders, func(h types.HolderDetection) string {
			return key(h.Holder, h.StartLine, h.EndLine)
		}),
		Authors: dedupe(d.Authors, func(a types.AuthorDetection) string {
			return key(a.Author, a.StartLine, a.EndLine)
		}),
	}
}

func key(text string, start, end int) string {
	return fmt.Sprintf("%d:%d:%s", start, end, text)
}

func dedupe[T any](items []T, keyOf func(T) string) []T {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := keyOf(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}
