// Package metrics exposes scan counters through a private Prometheus
// registry. A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "attrib"

// Metrics holds the collectors of one process.
type Metrics struct {
	registry *prometheus.Registry

	filesScanned prometheus.Counter
	fileErrors   prometheus.Counter
	detections   *prometheus.CounterVec
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	scanDuration prometheus.Histogram
	fileDuration prometheus.Histogram
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		filesScanned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_scanned_total",
			Help:      "Files read and analyzed.",
		}),
		fileErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_errors_total",
			Help:      "Files that could not be read or analyzed.",
		}),
		detections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Detections reported, by kind.",
		}, []string{"kind"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Detection results served from the content cache.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Detection results computed because the content was not cached.",
		}),
		scanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of complete scans.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		fileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time spent analyzing a single file.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// FileScanned records one analyzed file.
func (m *Metrics) FileScanned(d time.Duration) {
	if m == nil {
		return
	}
	m.filesScanned.Inc()
	m.fileDuration.Observe(d.Seconds())
}

// FileError records a file that failed to load or analyze.
func (m *Metrics) FileError() {
	if m == nil {
		return
	}
	m.fileErrors.Inc()
}

// Detections adds n detections of kind (copyright, holder, author).
func (m *Metrics) Detections(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.detections.WithLabelValues(kind).Add(float64(n))
}

// CacheHit records a cache hit.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// CacheMiss records a cache miss.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// ScanFinished records the duration of a scan.
func (m *Metrics) ScanFinished(d time.Duration) {
	if m == nil {
		return
	}
	m.scanDuration.Observe(d.Seconds())
}

// WriteTextfile writes every metric in the text exposition format, suitable
// for the node exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
