// Package drift compares a scan's attributions with a stored baseline. A
// file drifts when the set of copyright, holder or author texts found in it
// changes. Line numbers do not take part, so moving a header is not drift.
package drift

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/garagon/attrib/internal/state"
	"github.com/garagon/attrib/internal/types"
)

var log = commonlog.GetLogger("attrib.engine.drift")

// Tracker implements scanner.Baseline on top of a state.Store.
type Tracker struct {
	store   *state.Store
	persist bool
}

// New creates a Tracker. When persist is set, Apply saves the store after
// recording the new attributions.
func New(store *state.Store, persist bool) *Tracker {
	return &Tracker{store: store, persist: persist}
}

// Fingerprint hashes the sorted, distinct attribution texts of d.
func Fingerprint(d types.Detections) string {
	var items []string
	for _, c := range d.Copyrights {
		items = append(items, "c\x00"+c.Copyright)
	}
	for _, h := range d.Holders {
		items = append(items, "h\x00"+h.Holder)
	}
	for _, a := range d.Authors {
		items = append(items, "a\x00"+a.Author)
	}
	slices.Sort(items)
	items = slices.Compact(items)
	sum := sha256.Sum256([]byte(strings.Join(items, "\n")))
	return hex.EncodeToString(sum[:])
}

func holderNames(d types.Detections) []string {
	names := make([]string, 0, len(d.Holders))
	for _, h := range d.Holders {
		names = append(names, h.Holder)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Apply sets Drift on every file and records its fingerprint:
//   - no baseline entry and nothing detected: left as DriftNone
//   - no baseline entry: DriftNew
//   - baseline entry with a different fingerprint: DriftChanged
//   - otherwise DriftUnchanged
//
// A file that lost every attribution is DriftChanged and its entry is
// removed. When root is set, entries for files that no longer exist under
// root are removed too and appended to the result as DriftChanged. Entries
// for files that exist but were not scanned are left alone, so partial
// scans do not report them.
func (t *Tracker) Apply(root string, files []types.FileResult) ([]types.FileResult, error) {
	var added, changed int
	for i := range files {
		f := &files[i]
		prev, exists := t.store.Get(f.Path)

		if f.Empty() {
			if exists {
				f.Drift = types.DriftChanged
				t.store.Delete(f.Path)
				changed++
			}
			continue
		}

		hash := Fingerprint(f.Detections)
		switch {
		case !exists:
			f.Drift = types.DriftNew
			t.store.Set(f.Path, hash, holderNames(f.Detections))
			added++
		case prev.Hash != hash:
			f.Drift = types.DriftChanged
			t.store.Set(f.Path, hash, holderNames(f.Detections))
			changed++
		default:
			f.Drift = types.DriftUnchanged
		}
	}
	if root != "" {
		gone := t.removeDeleted(root, files)
		changed += len(gone)
		files = append(files, gone...)
	}
	log.Debugf("baseline %s: %d new, %d changed", t.store.Path(), added, changed)

	if t.persist && added+changed > 0 {
		if err := t.store.Save(); err != nil {
			return nil, err
		}
	}
	return files, nil
}

func (t *Tracker) removeDeleted(root string, scanned []types.FileResult) []types.FileResult {
	seen := make(map[string]bool, len(scanned))
	for _, f := range scanned {
		seen[f.Path] = true
	}
	var gone []types.FileResult
	for _, key := range t.store.Keys() {
		if seen[key] {
			continue
		}
		if _, err := os.Lstat(filepath.Join(root, filepath.FromSlash(key))); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		t.store.Delete(key)
		gone = append(gone, types.FileResult{Path: key, Drift: types.DriftChanged})
	}
	return gone
}

// Changed reports whether any file in files drifted from the baseline.
// New files are not drift.
func Changed(files []types.FileResult) bool {
	return slices.ContainsFunc(files, func(f types.FileResult) bool {
		return f.Drift == types.DriftChanged
	})
}
