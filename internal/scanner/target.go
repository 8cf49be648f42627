package scanner

import (
	"bufio"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// IgnoreFile lists extra ignore globs, one per line, in the scan root.
const IgnoreFile = ".attribignore"

// Target represents a file to be scanned.
type Target struct {
	Path    string
	RelPath string
	Content []byte
}

// LoadContent reads the file content into memory.
func (t *Target) LoadContent() error {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return err
	}
	t.Content = data
	return nil
}

// Text returns the content as a string. Content that is not valid UTF-8 is
// read as Latin-1, unless it looks binary, in which case Text is empty.
func (t *Target) Text() string {
	return decodeText(t.Content)
}

func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	if controlRatio(data) > 0.1 {
		return ""
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return ""
	}
	return string(text)
}

// controlRatio is the share of bytes that are C0 controls other than
// whitespace.
func controlRatio(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	n := 0
	for _, b := range data {
		if (b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != '\f') || b == 0x7f {
			n++
		}
	}
	return float64(n) / float64(len(data))
}

// TargetDiscovery walks a directory and returns scannable targets.
type TargetDiscovery struct {
	IgnorePatterns []string
}

var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	".attrib":      true,
}

// SkipDir reports whether a directory name is never scanned.
func SkipDir(name string) bool {
	return skipDirs[name]
}

// Discover walks root and returns all targets, respecting .attribignore.
// Unreadable entries are skipped.
func (td *TargetDiscovery) Discover(root string) ([]*Target, error) {
	td.loadIgnoreFile(root)

	var targets []*Target
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			return nil
		}
		rel, _ := filepath.Rel(root, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p == root {
				return nil
			}
			if skipDirs[d.Name()] || td.isIgnored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || isBinaryExt(p) || d.Name() == IgnoreFile {
			return nil
		}
		if td.isIgnored(rel) {
			return nil
		}
		targets = append(targets, &Target{Path: p, RelPath: rel})
		return nil
	})
	return targets, err
}

// Select builds targets for the given slash-separated paths relative to
// root, applying the same filters as Discover. Paths that do not name a
// regular file are dropped.
func (td *TargetDiscovery) Select(root string, relPaths []string) []*Target {
	td.loadIgnoreFile(root)

	var targets []*Target
	for _, rel := range relPaths {
		rel = filepath.ToSlash(filepath.Clean(rel))
		if !td.accept(rel) {
			continue
		}
		p := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Lstat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		targets = append(targets, &Target{Path: p, RelPath: rel})
	}
	return targets
}

// accept reports whether Discover would have yielded rel.
func (td *TargetDiscovery) accept(rel string) bool {
	if rel == "." || strings.HasPrefix(rel, "../") {
		return false
	}
	segs := strings.Split(rel, "/")
	for i, seg := range segs[:len(segs)-1] {
		if skipDirs[seg] || td.isIgnored(strings.Join(segs[:i+1], "/")) {
			return false
		}
	}
	if isBinaryExt(rel) || path.Base(rel) == IgnoreFile {
		return false
	}
	return !td.isIgnored(rel)
}

func (td *TargetDiscovery) loadIgnoreFile(root string) {
	f, err := os.Open(filepath.Join(root, IgnoreFile))
	if err != nil {
		return
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			td.IgnorePatterns = append(td.IgnorePatterns, line)
		}
	}
}

func (td *TargetDiscovery) isIgnored(relPath string) bool {
	for _, pattern := range td.IgnorePatterns {
		if matchGlob(pattern, relPath) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated relative path against pattern.
// A "**" segment matches zero or more path segments. A pattern without a
// slash also matches the base name alone, and a trailing slash restricts
// nothing ("vendor/" is the same as "vendor").
func matchGlob(pattern, relPath string) bool {
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
	relPath = filepath.ToSlash(relPath)
	if pattern == "" {
		return false
	}
	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(relPath)); ok {
			return true
		}
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(relPath, "/"))
}

func matchSegments(pat, segs []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			rest := pat[1:]
			if len(rest) == 0 {
				return true
			}
			for i := range len(segs) + 1 {
				if matchSegments(rest, segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		if ok, _ := path.Match(pat[0], segs[0]); !ok {
			return false
		}
		pat, segs = pat[1:], segs[1:]
	}
	return len(segs) == 0
}

var binaryExts = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".ico": true, ".webp": true, ".woff": true, ".woff2": true,
	".ttf": true, ".otf": true, ".eot": true, ".zip": true, ".tar": true,
	".gz": true, ".bz2": true, ".xz": true, ".7z": true, ".jar": true,
	".pdf": true, ".mp3": true, ".mp4": true, ".avi": true,
	".mov": true, ".bin": true, ".o": true, ".a": true, ".class": true,
	".pyc": true, ".wasm": true,
}

func isBinaryExt(p string) bool {
	return binaryExts[strings.ToLower(filepath.Ext(p))]
}
