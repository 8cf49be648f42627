package copyright

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/garagon/attrib/internal/types"
)

var creditsFilenames = []string{
	"credit",
	"credits",
	"credits.rst",
	"credits.txt",
	"credits.md",
	"author",
	"authors",
	"authors.rst",
	"authors.txt",
	"authors.md",
}

// creditsBailOut is the number of lines read without an N:, E: or W: line
// before a file is assumed not to use the structured format.
const creditsBailOut = 50

// IsCreditsFile reports whether path names a CREDITS or AUTHORS file.
func IsCreditsFile(path string) bool {
	name := filepath.Base(filepath.ToSlash(path))
	return slices.Contains(creditsFilenames, strings.ToLower(name))
}

type creditLine struct {
	number int
	text   string
}

// DetectCreditsAuthors parses the "N: name / E: email / W: url" entries of
// a Linux style CREDITS file. Entries are separated by blank lines; P: and
// B: lines are ignored.
func DetectCreditsAuthors(content string) []types.AuthorDetection {
	var (
		out        []types.AuthorDetection
		group      []creditLine
		structured bool
	)
	flush := func() {
		if det, ok := creditEntry(group); ok {
			out = append(out, det)
		}
		group = group[:0]
	}

	for i, line := range SplitLines(content) {
		ln := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if strings.HasPrefix(trimmed, "N:") || strings.HasPrefix(trimmed, "E:") || strings.HasPrefix(trimmed, "W:") {
			structured = true
			group = append(group, creditLine{number: ln, text: trimmed})
		}
		if ln > creditsBailOut && !structured {
			return out
		}
	}
	flush()
	return out
}

func creditEntry(group []creditLine) (types.AuthorDetection, bool) {
	if len(group) == 0 {
		return types.AuthorDetection{}, false
	}
	var names, emails, webs []string
	for _, l := range group {
		kind, value, ok := strings.Cut(l.text, ":")
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}
		switch strings.TrimSpace(kind) {
		case "N":
			names = append(names, value)
		case "E":
			emails = append(emails, value)
		case "W":
			webs = append(webs, value)
		}
	}
	var parts []string
	for _, seg := range [][]string{names, emails, webs} {
		if len(seg) > 0 {
			parts = append(parts, strings.Join(seg, " "))
		}
	}
	author := strings.Join(parts, " ")
	if author == "" {
		return types.AuthorDetection{}, false
	}
	return types.AuthorDetection{
		Author:    author,
		StartLine: group[0].number,
		EndLine:   group[len(group)-1].number,
	}, true
}
