// Package config loads the .attrib.yml project file: ignore globs, output
// and worker settings, extra rule tables and baseline options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileNames are the accepted project file names, in lookup order.
var FileNames = []string{".attrib.yml", ".attrib.yaml"}

const maxConfigSize = 1 << 20

// Config represents the .attrib.yml configuration file.
type Config struct {
	Ignore    []string `yaml:"ignore,omitempty"`
	Format    string   `yaml:"format,omitempty"`
	Workers   int      `yaml:"workers,omitempty"`
	Rules     string   `yaml:"rules,omitempty"`
	Credits   *bool    `yaml:"credits,omitempty"`
	CacheSize int      `yaml:"cache_size,omitempty"`
	Baseline  string   `yaml:"baseline,omitempty"`
	Summary   bool     `yaml:"summary,omitempty"`

	// Path is the file the config was read from, empty when none was found.
	Path string `yaml:"-"`
}

// CreditsEnabled reports whether CREDITS/AUTHORS files get structured
// parsing. It defaults to true.
func (c Config) CreditsEnabled() bool {
	return c.Credits == nil || *c.Credits
}

// Resolve makes a relative path from the config file relative to the
// directory holding it.
func (c Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.Path), p)
}

// Load reads .attrib.yml or .attrib.yaml from the given directory. If dir
// is a file, its parent directory is used. If no config file is found, it
// returns a zero Config (not an error). Unknown keys are rejected.
func Load(dir string) (Config, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > maxConfigSize {
			return Config{}, fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		cfg.Path = path
		return cfg, nil
	}
	return Config{}, nil
}

// Parse decodes a config document.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.CacheSize < 0 {
		return Config{}, fmt.Errorf("cache_size must not be negative, got %d", cfg.CacheSize)
	}
	return cfg, nil
}

// Scaffold is the commented project file written by "attrib init".
const Scaffold = `# attrib project configuration.

# Extra globs to skip, on top of .attribignore. "**" spans directories.
ignore:
  - "vendor/**"
  - "**/testdata/**"

# terminal, json, markdown or html.
format: terminal

# 0 uses one worker per CPU.
workers: 0

# Directory with extra lexicon/grammar/junk YAML tables.
# rules: .attrib/rules

# Structured parsing of CREDITS and AUTHORS files.
credits: true

# Detection results cached by content hash.
cache_size: 4096

# Attribution baseline used for drift detection.
baseline: .attrib/baseline.json

# Print the holder summary after the scan.
summary: true
`

// IgnoreScaffold is the .attribignore written by "attrib init".
const IgnoreScaffold = `# One glob per line. "**" spans directories.
*.min.js
*.map
dist/**
`
