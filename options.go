package attrib

import "strings"

// scanConfig holds the resolved configuration for a scan.
type scanConfig struct {
	customRulesDir string
	workers        int
	ignorePatterns []string
	credits        bool
	cacheSize      int
	baselinePath   string
	metricsFile    string
	topHolders     int
	progress       func(done, total int)
	kind           string // only for ListRules
	label          string // only for ListRules
}

// Option configures a scan operation.
type Option func(*scanConfig)

// WithCustomRules overlays the lexicon, grammar and junk tables found in a
// directory of YAML files on the built-in ones.
func WithCustomRules(dir string) Option {
	return func(c *scanConfig) {
		c.customRulesDir = dir
	}
}

// WithWorkers sets the number of concurrent workers (default: NumCPU).
func WithWorkers(n int) Option {
	return func(c *scanConfig) {
		c.workers = n
	}
}

// WithIgnorePatterns sets file patterns to ignore during directory scanning.
func WithIgnorePatterns(patterns []string) Option {
	return func(c *scanConfig) {
		c.ignorePatterns = patterns
	}
}

// WithoutCredits treats CREDITS and AUTHORS files like any other file.
func WithoutCredits() Option {
	return func(c *scanConfig) {
		c.credits = false
	}
}

// WithCacheSize caps the content-hash result cache; n <= 0 disables it.
func WithCacheSize(n int) Option {
	return func(c *scanConfig) {
		c.cacheSize = n
	}
}

// WithBaseline compares results with the baseline stored at path, marks
// each file new, changed or unchanged, and saves the updated baseline.
func WithBaseline(path string) Option {
	return func(c *scanConfig) {
		c.baselinePath = path
	}
}

// WithMetricsFile writes scan metrics to path in the Prometheus text
// format once the scan finishes.
func WithMetricsFile(path string) Option {
	return func(c *scanConfig) {
		c.metricsFile = path
	}
}

// WithTopHolders sets the length of the holder summary; n < 0 keeps all.
func WithTopHolders(n int) Option {
	return func(c *scanConfig) {
		c.topHolders = n
	}
}

// WithProgress installs a callback invoked after each file. It may be
// called from several goroutines.
func WithProgress(fn func(done, total int)) Option {
	return func(c *scanConfig) {
		c.progress = fn
	}
}

// WithKind limits ListRules to "lexicon" or "grammar" entries.
func WithKind(kind string) Option {
	return func(c *scanConfig) {
		c.kind = strings.ToLower(kind)
	}
}

// WithLabel limits ListRules to entries producing a tag or label.
func WithLabel(label string) Option {
	return func(c *scanConfig) {
		c.label = label
	}
}
