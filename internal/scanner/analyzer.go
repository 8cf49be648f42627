// Package scanner discovers files and runs attribution analyzers over them
// in a bounded worker pool.
package scanner

import (
	"context"

	"github.com/garagon/attrib/internal/types"
)

// Analyzer inspects one loaded target. A nil result means nothing was
// found; results of several analyzers for the same target are merged.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, target *Target) (*types.FileResult, error)
}

// Baseline compares fresh results with a stored baseline and sets each
// file's Drift. root is the scanned directory, or empty when the targets
// do not come from one; the returned slice may add files the baseline
// knows but the scan no longer found.
type Baseline interface {
	Apply(root string, files []types.FileResult) ([]types.FileResult, error)
}

// ProgressFunc is called after each target is processed.
type ProgressFunc func(done, total int)
