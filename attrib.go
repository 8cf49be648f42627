// Package attrib finds copyright statements, rights holders and authors in
// source trees and free text.
//
// This is the library entry point. For the CLI tool, see cmd/attrib/.
package attrib

import (
	"context"
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/garagon/attrib/internal/copyright"
	"github.com/garagon/attrib/internal/engine/copyrights"
	"github.com/garagon/attrib/internal/engine/credits"
	"github.com/garagon/attrib/internal/engine/drift"
	"github.com/garagon/attrib/internal/metrics"
	"github.com/garagon/attrib/internal/rules"
	"github.com/garagon/attrib/internal/rules/builtin"
	"github.com/garagon/attrib/internal/scanner"
	"github.com/garagon/attrib/internal/state"
	"github.com/garagon/attrib/internal/types"
)

var log = commonlog.GetLogger("attrib")

// Re-export core types from internal/types so consumers don't need to
// import internal packages.
type (
	CopyrightDetection = types.CopyrightDetection
	HolderDetection    = types.HolderDetection
	AuthorDetection    = types.AuthorDetection
	Detections         = types.Detections
	FileResult         = types.FileResult
	HolderCount        = types.HolderCount
	Summary            = types.Summary
	ScanResult         = types.ScanResult
	DriftStatus        = types.DriftStatus
)

const (
	DriftNone      = types.DriftNone
	DriftNew       = types.DriftNew
	DriftChanged   = types.DriftChanged
	DriftUnchanged = types.DriftUnchanged
)

// DefaultBaselineFile is the conventional baseline location in a project.
const DefaultBaselineFile = state.DefaultFile

// RuleInfo describes one lexicon or grammar table entry.
type RuleInfo struct {
	Kind    string `json:"kind"`
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Pattern string `json:"pattern"`
}

// ExplainGroup shows how one candidate group of lines was analyzed.
type ExplainGroup struct {
	Lines      []copyright.Line `json:"lines"`
	Tokens     []types.Token    `json:"tokens"`
	Forest     []string         `json:"forest"`
	Detections Detections       `json:"detections"`
}

// DetectCopyrights returns the copyrights, holders and authors found in
// text using the built-in tables.
func DetectCopyrights(text string) ([]CopyrightDetection, []HolderDetection, []AuthorDetection) {
	return copyright.DetectCopyrights(text)
}

// IsCreditsFile reports whether path names a CREDITS or AUTHORS file.
func IsCreditsFile(path string) bool {
	return copyright.IsCreditsFile(path)
}

// DetectCreditsAuthors returns the N:/E:/W: entries of a Linux-style
// CREDITS file.
func DetectCreditsAuthors(text string) []AuthorDetection {
	return copyright.DetectCreditsAuthors(text)
}

// Detect runs the detector over text. Only WithCustomRules affects it.
func Detect(text string, opts ...Option) (Detections, error) {
	d, err := detector(applyOpts(opts))
	if err != nil {
		return Detections{}, err
	}
	return d.Detect(text), nil
}

// Scan scans a file or directory on disk.
func Scan(ctx context.Context, path string, opts ...Option) (*ScanResult, error) {
	cfg := applyOpts(opts)
	s, m, err := buildScanner(cfg)
	if err != nil {
		return nil, err
	}
	result, err := s.Scan(ctx, path)
	if err != nil {
		return nil, err
	}
	result.Target = path
	return result, writeMetrics(cfg, m)
}

// ScanFiles scans only the listed files under root, given as
// slash-separated paths relative to root. Ignore rules still apply and
// files that no longer exist are skipped.
func ScanFiles(ctx context.Context, root string, relPaths []string, opts ...Option) (*ScanResult, error) {
	cfg := applyOpts(opts)
	s, m, err := buildScanner(cfg)
	if err != nil {
		return nil, err
	}
	result, err := s.ScanFiles(ctx, root, relPaths)
	if err != nil {
		return nil, err
	}
	result.Target = root
	return result, writeMetrics(cfg, m)
}

// ChangedFiles lists the files git reports as modified, staged or
// untracked under root.
func ChangedFiles(ctx context.Context, root string) ([]string, error) {
	return scanner.GitChangedFiles(ctx, root)
}

// ScanContent scans inline content without writing to disk. filename
// decides credits-file handling and names the file in the result.
func ScanContent(ctx context.Context, content string, filename string, opts ...Option) (*ScanResult, error) {
	if filename == "" {
		filename = "content.txt"
	}
	cfg := applyOpts(opts)
	s, m, err := buildScanner(cfg)
	if err != nil {
		return nil, err
	}
	targets := []*scanner.Target{{
		RelPath: filename,
		Content: []byte(content),
	}}
	result, err := s.ScanTargets(ctx, targets)
	if err != nil {
		return nil, err
	}
	result.Target = filename
	return result, writeMetrics(cfg, m)
}

// Drifted reports whether any file in result changed attributions relative
// to the baseline.
func Drifted(result *ScanResult) bool {
	return result != nil && drift.Changed(result.Files)
}

// ListRules returns the lexicon and grammar entries in evaluation order.
// Use WithKind and WithLabel to filter.
func ListRules(opts ...Option) ([]RuleInfo, error) {
	cfg := applyOpts(opts)
	d, err := detector(cfg)
	if err != nil {
		return nil, err
	}
	tables := d.Tables()

	var infos []RuleInfo
	if cfg.kind == "" || cfg.kind == "lexicon" {
		for i, e := range tables.Lexicon.Entries {
			infos = append(infos, RuleInfo{Kind: "lexicon", Index: i, Label: e.Tag.String(), Pattern: e.Pattern.String()})
		}
	}
	if cfg.kind == "" || cfg.kind == "grammar" {
		for i, r := range tables.Grammar {
			parts := make([]string, len(r.Pattern))
			for j, m := range r.Pattern {
				parts[j] = m.String()
			}
			infos = append(infos, RuleInfo{Kind: "grammar", Index: i, Label: r.Label.String(), Pattern: strings.Join(parts, ", ")})
		}
	}
	if cfg.label == "" {
		return infos, nil
	}
	var filtered []RuleInfo
	for _, info := range infos {
		if strings.EqualFold(info.Label, cfg.label) {
			filtered = append(filtered, info)
		}
	}
	return filtered, nil
}

// Explain runs the detector over text and returns every intermediate step:
// candidate lines, tagged tokens, the parse forest and the detections.
func Explain(text string, opts ...Option) ([]ExplainGroup, error) {
	d, err := detector(applyOpts(opts))
	if err != nil {
		return nil, err
	}
	var groups []ExplainGroup
	for _, tr := range d.Trace(text) {
		g := ExplainGroup{Lines: tr.Lines, Tokens: tr.Tokens, Detections: tr.Detections}
		for _, n := range tr.Forest {
			g.Forest = append(g.Forest, n.String())
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// --- internal helpers ---

func applyOpts(opts []Option) *scanConfig {
	cfg := &scanConfig{credits: true, cacheSize: copyrights.DefaultCacheSize}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// detector returns the shared built-in detector, or one compiled with the
// custom tables overlaid. Compile errors in custom tables drop the entry
// and are logged.
func detector(cfg *scanConfig) (*copyright.Detector, error) {
	if cfg.customRulesDir == "" {
		return copyright.Default(), nil
	}
	tables, errs, err := rules.LoadTables(builtin.FS(), cfg.customRulesDir)
	if err != nil {
		return nil, err
	}
	for _, e := range errs {
		log.Warningf("%s", e)
	}
	return copyright.New(tables), nil
}

// buildScanner creates a fully wired Scanner with all standard analyzers.
func buildScanner(cfg *scanConfig) (*scanner.Scanner, *metrics.Metrics, error) {
	d, err := detector(cfg)
	if err != nil {
		return nil, nil, err
	}

	var m *metrics.Metrics
	if cfg.metricsFile != "" {
		m = metrics.New()
	}

	s := scanner.New(cfg.workers)
	s.SetMetrics(m)
	if len(cfg.ignorePatterns) > 0 {
		s.SetIgnorePatterns(cfg.ignorePatterns)
	}
	if cfg.progress != nil {
		s.SetProgress(cfg.progress)
	}
	if cfg.topHolders != 0 {
		s.SetTopHolders(cfg.topHolders)
	}
	if cfg.baselinePath != "" {
		store := state.New(cfg.baselinePath)
		if err := store.Load(); err != nil {
			return nil, nil, err
		}
		s.SetBaseline(drift.New(store, true))
	}

	s.RegisterAnalyzer(copyrights.New(d,
		copyrights.WithCacheSize(cfg.cacheSize),
		copyrights.WithMetrics(m),
	))
	if cfg.credits {
		s.RegisterAnalyzer(credits.New())
	}
	return s, m, nil
}

func writeMetrics(cfg *scanConfig, m *metrics.Metrics) error {
	if cfg.metricsFile == "" {
		return nil
	}
	if err := m.WriteTextfile(cfg.metricsFile); err != nil {
		return fmt.Errorf("exporting metrics: %w", err)
	}
	return nil
}
