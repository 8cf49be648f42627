// Package state persists the attribution baseline: one fingerprint of the
// detected copyrights, holders and authors per file, keyed by relative path.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// DefaultFile is the baseline location relative to the scan root.
const DefaultFile = ".attrib/baseline.json"

// Entry is the recorded attribution state of one file.
type Entry struct {
	Hash      string   `json:"hash"`
	Holders   []string `json:"holders,omitempty"`
	UpdatedAt string   `json:"updated_at"`
}

// Store is a JSON file of entries. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	Entries map[string]Entry `json:"entries"`
	path    string
	now     func() time.Time
}

// New creates an empty Store backed by path.
func New(path string) *Store {
	return &Store{
		Entries: make(map[string]Entry),
		path:    path,
		now:     time.Now,
	}
}

// DefaultPath returns the baseline path for a scan root.
func DefaultPath(root string) string {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}
	return filepath.Join(root, filepath.FromSlash(DefaultFile))
}

func rejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return nil
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("baseline %s is a symlink, refusing to use it", path)
	}
	return nil
}

// Load reads the baseline. A missing file leaves the store empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := rejectSymlink(s.path); err != nil {
		return err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading baseline: %w", err)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parsing baseline %s: %w", s.path, err)
	}
	if s.Entries == nil {
		s.Entries = make(map[string]Entry)
	}
	return nil
}

// Save writes the baseline with owner-only permissions, creating parent
// directories as needed.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := rejectSymlink(s.path); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating baseline directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing baseline: %w", err)
	}
	return nil
}

// Get returns the entry for key.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.Entries[key]
	return e, ok
}

// Set records hash and holders for key, stamped with the current time.
func (s *Store) Set(key, hash string, holders []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries[key] = Entry{
		Hash:      hash,
		Holders:   slices.Clone(holders),
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	}
}

// Delete forgets key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Entries, key)
}

// Keys returns the recorded paths in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.Entries))
	for k := range s.Entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
