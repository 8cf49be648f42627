package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"
)

var log = commonlog.GetLogger("attrib.rules")

// LoadFromFS loads table files from an embed.FS or any fs.FS.
func LoadFromFS(fsys fs.FS) (*RawTables, error) {
	all := &RawTables{}
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		tables, err := parseMultiDocYAML(data, false)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		all.merge(tables)
		return nil
	})
	return all, err
}

// maxRuleFileSize is the maximum size for a single YAML table file (1 MB).
const maxRuleFileSize = 1 << 20

// LoadFromDir loads table files from a directory on disk.
// Files larger than 1 MB are skipped. Unknown YAML keys are rejected.
func LoadFromDir(dir string) (*RawTables, error) {
	all := &RawTables{}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isYAML(path) {
			return nil
		}
		if info.Size() > maxRuleFileSize {
			log.Warningf("skipping oversized table file %s (%d bytes, max %d)", path, info.Size(), maxRuleFileSize)
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		tables, err := parseMultiDocYAML(data, true)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		all.merge(tables)
		return nil
	})
	return all, err
}

// parseMultiDocYAML decodes every "---" separated document of a file.
func parseMultiDocYAML(data []byte, strict bool) (*RawTables, error) {
	out := &RawTables{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(strict)
	for {
		var doc RawTables
		err := decoder.Decode(&doc)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		out.merge(&doc)
	}
	return out, nil
}

// merge appends every list of src to t, preserving order.
func (t *RawTables) merge(src *RawTables) {
	t.Fragments = append(t.Fragments, src.Fragments...)
	t.Entries = append(t.Entries, src.Entries...)
	t.Rules = append(t.Rules, src.Rules...)
	t.RawJunk.merge(&src.RawJunk)
}

func (j *RawJunk) merge(src *RawJunk) {
	j.Prefixes = append(j.Prefixes, src.Prefixes...)
	j.CopyrightSuffixes = append(j.CopyrightSuffixes, src.CopyrightSuffixes...)
	j.AuthorPrefixes = append(j.AuthorPrefixes, src.AuthorPrefixes...)
	j.AuthorJunk = append(j.AuthorJunk, src.AuthorJunk...)
	j.AuthorJunkPatterns = append(j.AuthorJunkPatterns, src.AuthorJunkPatterns...)
	j.HolderPrefixes = append(j.HolderPrefixes, src.HolderPrefixes...)
	j.HolderSuffixes = append(j.HolderSuffixes, src.HolderSuffixes...)
	j.HolderJunk = append(j.HolderJunk, src.HolderJunk...)
	j.CopyrightJunkPatterns = append(j.CopyrightJunkPatterns, src.CopyrightJunkPatterns...)
	j.HolderJunkPatterns = append(j.HolderJunkPatterns, src.HolderJunkPatterns...)
}

// Overlay layers custom tables on top of t. Custom lexicon entries are
// tried before the existing ones, grammar rules and junk lists are appended.
// Custom fragments may reference existing ones.
func (t *RawTables) Overlay(extra *RawTables) {
	if extra == nil {
		return
	}
	entries := make([]RawLexEntry, 0, len(extra.Entries)+len(t.Entries))
	entries = append(entries, extra.Entries...)
	entries = append(entries, t.Entries...)
	t.Entries = entries
	t.Fragments = append(t.Fragments, extra.Fragments...)
	t.Rules = append(t.Rules, extra.Rules...)
	t.RawJunk.merge(&extra.RawJunk)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
