// Package credits reads author entries from Linux-style CREDITS files.
package credits

import (
	"context"

	"github.com/garagon/attrib/internal/copyright"
	"github.com/garagon/attrib/internal/scanner"
	"github.com/garagon/attrib/internal/types"
)

// Analyzer implements scanner.Analyzer. It only looks at targets whose
// name marks them as credits files.
type Analyzer struct{}

// New creates a credits Analyzer.
func New() *Analyzer { return &Analyzer{} }

// Name returns the analyzer name.
func (a *Analyzer) Name() string { return "credits" }

// Analyze returns the structured author entries of a credits file.
func (a *Analyzer) Analyze(_ context.Context, target *scanner.Target) (*types.FileResult, error) {
	if !copyright.IsCreditsFile(target.RelPath) {
		return nil, nil
	}
	return &types.FileResult{
		CreditsFile: true,
		Detections: types.Detections{
			Authors: copyright.DetectCreditsAuthors(target.Text()),
		},
	}, nil
}
