// Package copyrights runs the copyright, holder and author detector over
// scan targets, caching results by content hash.
package copyrights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/tliron/commonlog"

	"github.com/garagon/attrib/internal/copyright"
	"github.com/garagon/attrib/internal/metrics"
	"github.com/garagon/attrib/internal/scanner"
	"github.com/garagon/attrib/internal/types"
)

var log = commonlog.GetLogger("attrib.engine.copyrights")

// DefaultCacheSize bounds the number of cached results.
const DefaultCacheSize = 4096

const cacheTTL = 30 * time.Minute

// Analyzer implements scanner.Analyzer.
type Analyzer struct {
	detector  *copyright.Detector
	cache     *gocache.Cache
	cacheSize int
	metrics   *metrics.Metrics
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCacheSize caps the result cache at n entries. n <= 0 disables it.
func WithCacheSize(n int) Option {
	return func(a *Analyzer) { a.cacheSize = n }
}

// WithMetrics reports cache hits and misses to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// New creates an Analyzer using d.
func New(d *copyright.Detector, opts ...Option) *Analyzer {
	a := &Analyzer{detector: d, cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(a)
	}
	if a.cacheSize > 0 {
		a.cache = gocache.New(cacheTTL, 2*cacheTTL)
	}
	return a
}

// Name returns the analyzer name.
func (a *Analyzer) Name() string { return "copyrights" }

// Analyze detects attributions in the target content. Identical content is
// analyzed once while it stays cached.
func (a *Analyzer) Analyze(_ context.Context, target *scanner.Target) (*types.FileResult, error) {
	if len(target.Content) == 0 {
		return nil, nil
	}

	var key string
	if a.cache != nil {
		sum := sha256.Sum256(target.Content)
		key = hex.EncodeToString(sum[:])
		if v, ok := a.cache.Get(key); ok {
			a.metrics.CacheHit()
			return result(v.(types.Detections)), nil
		}
		a.metrics.CacheMiss()
	}

	d := a.detector.Detect(target.Text())

	if a.cache != nil {
		if a.cache.ItemCount() < a.cacheSize {
			a.cache.SetDefault(key, d)
		} else {
			log.Debugf("result cache full (%d entries), not caching %s", a.cacheSize, target.RelPath)
		}
	}
	return result(d), nil
}

// CachedEntries returns the number of cached results.
func (a *Analyzer) CachedEntries() int {
	if a.cache == nil {
		return 0
	}
	return a.cache.ItemCount()
}

func result(d types.Detections) *types.FileResult {
	if d.Empty() {
		return nil
	}
	return &types.FileResult{Detections: d}
}
