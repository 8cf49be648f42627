package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/garagon/attrib/internal/meta"
	"github.com/garagon/attrib/internal/metrics"
	"github.com/garagon/attrib/internal/types"
)

var log = commonlog.GetLogger("attrib.scanner")

// Scanner orchestrates the scanning process.
type Scanner struct {
	analyzers      []Analyzer
	workers        int
	ignorePatterns []string
	topHolders     int
	metrics        *metrics.Metrics
	baseline       Baseline
	progress       ProgressFunc
}

// New creates a new Scanner with the given number of workers.
// If workers <= 0, it defaults to runtime.NumCPU().
func New(workers int) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scanner{
		workers:    workers,
		topHolders: meta.DefaultTopHolders,
	}
}

// RegisterAnalyzer adds an analyzer to the scanner pipeline.
func (s *Scanner) RegisterAnalyzer(a Analyzer) {
	s.analyzers = append(s.analyzers, a)
}

// SetIgnorePatterns sets additional file ignore patterns from config.
func (s *Scanner) SetIgnorePatterns(patterns []string) {
	s.ignorePatterns = patterns
}

// SetMetrics records scan statistics in m.
func (s *Scanner) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// SetBaseline enables drift detection against b.
func (s *Scanner) SetBaseline(b Baseline) {
	s.baseline = b
}

// SetProgress installs a progress callback. It may be called concurrently.
func (s *Scanner) SetProgress(fn ProgressFunc) {
	s.progress = fn
}

// SetTopHolders limits the holder summary to n entries; n <= 0 keeps all.
func (s *Scanner) SetTopHolders(n int) {
	s.topHolders = n
}

// Scan performs a full scan of the given path. The path can be a directory
// (walked recursively) or a single file.
func (s *Scanner) Scan(ctx context.Context, root string) (*types.ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		// The base name keeps credits-file detection working for a lone file.
		return s.scanTargets(ctx, "", []*Target{{
			Path:    root,
			RelPath: filepath.Base(root),
		}})
	}

	discovery := &TargetDiscovery{IgnorePatterns: s.ignorePatterns}
	targets, err := discovery.Discover(root)
	if err != nil {
		return nil, fmt.Errorf("discovering files in %s: %w", root, err)
	}
	log.Debugf("discovered %d files under %s", len(targets), root)
	return s.scanTargets(ctx, root, targets)
}

// ScanFiles scans the listed files under root, given as slash-separated
// relative paths. Ignore rules apply as for Scan; missing files are skipped.
func (s *Scanner) ScanFiles(ctx context.Context, root string, relPaths []string) (*types.ScanResult, error) {
	discovery := &TargetDiscovery{IgnorePatterns: s.ignorePatterns}
	targets := discovery.Select(root, relPaths)
	log.Debugf("selected %d of %d files under %s", len(targets), len(relPaths), root)
	return s.scanTargets(ctx, root, targets)
}

// ScanTargets runs the analyzers on a pre-built list of targets. Targets
// with Content already set are not read from disk.
func (s *Scanner) ScanTargets(ctx context.Context, targets []*Target) (*types.ScanResult, error) {
	return s.scanTargets(ctx, "", targets)
}

func (s *Scanner) scanTargets(ctx context.Context, root string, targets []*Target) (*types.ScanResult, error) {
	start := time.Now()

	results := make([]*types.FileResult, len(targets))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, target := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.scanTarget(gctx, target)
			if s.progress != nil {
				s.progress(int(done.Add(1)), len(targets))
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := s.postProcess(root, results)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	s.metrics.ScanFinished(elapsed)
	return &types.ScanResult{
		ScanID:       uuid.NewString(),
		Files:        files,
		Summary:      meta.Summarize(files, s.topHolders),
		FilesScanned: len(targets),
		Duration:     elapsed,
	}, nil
}

// scanTarget loads and analyzes one target. Failures are logged and yield
// nil; they never abort the scan.
func (s *Scanner) scanTarget(ctx context.Context, target *Target) *types.FileResult {
	start := time.Now()
	if target.Content == nil {
		if err := target.LoadContent(); err != nil {
			log.Warningf("skipping %s: %s", target.RelPath, err)
			s.metrics.FileError()
			return nil
		}
	}

	fr := &types.FileResult{Path: target.RelPath}
	for _, a := range s.analyzers {
		if ctx.Err() != nil {
			return nil
		}
		partial, err := a.Analyze(ctx, target)
		if err != nil {
			log.Warningf("%s analyzer failed on %s: %s", a.Name(), target.RelPath, err)
			s.metrics.FileError()
			continue
		}
		if partial == nil {
			continue
		}
		fr.CreditsFile = fr.CreditsFile || partial.CreditsFile
		fr.Merge(partial.Detections)
	}
	s.metrics.FileScanned(time.Since(start))
	return fr
}

// postProcess deduplicates, applies the baseline, drops files with nothing
// to report and sorts by path.
func (s *Scanner) postProcess(root string, results []*types.FileResult) ([]types.FileResult, error) {
	all := make([]types.FileResult, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		r.Detections = meta.Deduplicate(r.Detections)
		all = append(all, *r)
	}

	if s.baseline != nil {
		var err error
		if all, err = s.baseline.Apply(root, all); err != nil {
			return nil, fmt.Errorf("applying baseline: %w", err)
		}
	}

	files := make([]types.FileResult, 0, len(all))
	for _, f := range all {
		if f.Empty() && f.Drift != types.DriftChanged {
			continue
		}
		s.metrics.Detections("copyright", len(f.Copyrights))
		s.metrics.Detections("holder", len(f.Holders))
		s.metrics.Detections("author", len(f.Authors))
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}
