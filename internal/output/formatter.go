// Package output formats scan results for terminal (ANSI), JSON, Markdown
// and HTML output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/garagon/attrib/internal/types"
)

// ToolVersion is the attrib version printed in report footers.
var ToolVersion = "dev"

// Formatter is the interface for outputting scan results.
type Formatter interface {
	Format(w io.Writer, result *types.ScanResult) error
}

// Formats lists the names accepted by New.
var Formats = []string{"terminal", "json", "markdown", "html"}

// New returns the formatter for a format name.
func New(format string, noColor, verbose bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "terminal":
		return &TerminalFormatter{NoColor: noColor, Verbose: verbose}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown", "md":
		return &MarkdownFormatter{}, nil
	case "html":
		return &HTMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (expected one of %s)", format, strings.Join(Formats, ", "))
	}
}

// entry is one detection row, whatever its kind.
type entry struct {
	kind  string
	text  string
	start int
	end   int
}

func entries(fr types.FileResult) []entry {
	out := make([]entry, 0, len(fr.Copyrights)+len(fr.Holders)+len(fr.Authors))
	for _, c := range fr.Copyrights {
		out = append(out, entry{"copyright", c.Copyright, c.StartLine, c.EndLine})
	}
	for _, h := range fr.Holders {
		out = append(out, entry{"holder", h.Holder, h.StartLine, h.EndLine})
	}
	for _, a := range fr.Authors {
		out = append(out, entry{"author", a.Author, a.StartLine, a.EndLine})
	}
	return out
}

func lineSpan(start, end int) string {
	if start == end {
		return fmt.Sprintf("L%d", start)
	}
	return fmt.Sprintf("L%d-%d", start, end)
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
