package copyright

import (
	"strings"
)

var codePatterns = []string{
	"function(",
	"this.",
	".prototype",
	"===",
	"!==",
	"var ",
	"return ",
	"typeof ",
	"undefined",
	"null)",
	"null,",
	".apply(",
	".call(",
	"addEventListener",
	"removeEventListener",
	"createElement",
	"appendChild",
	"innerHTML",
	"className",
	"setAttribute",
	"getAttribute",
}

const (
	// maxLineLength bounds lines considered without strong indicators.
	// Longer lines are minified code or binary data.
	maxLineLength        = 2000
	codeLineMinLength    = 200
	encodedLineMinLength = 40
	encodedCharRatio     = 0.90
)

var (
	continuationSuffixes = []string{"copyright", "copyrights", "and", "by"}
	endSuffixes          = []string{"rightreserved", "rightsreserved"}
)

// Line is one prepared line with its 1-based physical line number.
type Line struct {
	Number int    `json:"line"`
	Text   string `json:"text"`
}

// hasCopyrightIndicators looks for strong markers without allocating a
// lowercase copy of possibly huge lines.
func hasCopyrightIndicators(line string) bool {
	return containsFold(line, "opyr") ||
		containsFold(line, "opyl") ||
		containsFold(line, "auth") ||
		hasCSignBeforeYear(line)
}

// containsFold is an ASCII case-insensitive substring search.
func containsFold(haystack, needle string) bool {
	n := len(needle)
	for i := 0; i+n <= len(haystack); i++ {
		if strings.EqualFold(haystack[i:i+n], needle) {
			return true
		}
	}
	return false
}

// hasCSignBeforeYear matches "(c)" followed by blanks and a digit, so that
// "(c)2024" counts and "if(c){" does not.
func hasCSignBeforeYear(s string) bool {
	for i := 0; i+3 <= len(s); i++ {
		if s[i] != '(' || (s[i+1] != 'c' && s[i+1] != 'C') || s[i+2] != ')' {
			continue
		}
		for j := i + 3; j < len(s); j++ {
			b := s[j]
			if b == ' ' || b == '\t' {
				continue
			}
			if b >= '0' && b <= '9' {
				return true
			}
			break
		}
	}
	return false
}

func isEncodedDataLine(line string) bool {
	if len(line) < encodedLineMinLength || hasCopyrightIndicators(line) {
		return false
	}
	return isUuencodeLine(line) || isBase64Line(line)
}

// isUuencodeLine requires a length byte in 32..95, mostly printable uuencode
// bytes, some diversity (to spare /****/ decorators) and at most one space.
func isUuencodeLine(b string) bool {
	if b[0] < 32 || b[0] > 95 {
		return false
	}
	var seen [256]bool
	uu, spaces, distinct := 0, 0, 0
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c >= 32 && c <= 96 {
			uu++
		}
		if c == ' ' {
			spaces++
		}
		if !seen[c] {
			seen[c] = true
			distinct++
		}
	}
	if float64(uu)/float64(len(b)) < encodedCharRatio {
		return false
	}
	return distinct >= 8 && spaces <= 1
}

func isBase64Line(b string) bool {
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '+', c == '/', c == '=':
		default:
			return false
		}
	}
	return true
}

// isCodeLineWithFalseC spots minified code where "(c)" is a variable.
func isCodeLineWithFalseC(line string) bool {
	if len(line) < codeLineMinLength {
		return false
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "opyr") || strings.Contains(lower, "opyl") || strings.Contains(lower, "auth") {
		return false
	}
	n := 0
	for _, p := range codePatterns {
		if strings.Contains(line, p) {
			n++
		}
	}
	return n >= 2
}

// charsOnly lowercases s and keeps only ASCII letters and digits.
func charsOnly(s string) string {
	lower := strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func endsWithContinuation(chars string) bool {
	if chars == "" {
		return false
	}
	return hasAnySuffix(chars, continuationSuffixes) || HasTrailingYear(chars)
}

// groupCollector accumulates candidate lines into groups.
type groupCollector struct {
	groups     [][]Line
	candidates []Line
	// inCopyright counts down the context lines still accepted after the
	// last candidate.
	inCopyright int
	prevChars   string
	hasPrev     bool
}

func (g *groupCollector) flush() {
	if len(g.candidates) > 0 {
		g.groups = append(g.groups, g.candidates)
		g.candidates = nil
	}
}

func (g *groupCollector) reset() {
	g.flush()
	g.inCopyright = 0
	g.hasPrev = false
	g.prevChars = ""
}

func (g *groupCollector) push(ln int, raw string) {
	g.candidates = append(g.candidates, Line{Number: ln, Text: PrepareLine(raw)})
}

// skip consumes one context line for a line that is ignored outright.
func (g *groupCollector) skip() {
	if g.inCopyright == 0 {
		return
	}
	g.inCopyright--
	if g.inCopyright == 0 && len(g.candidates) > 0 {
		g.flush()
		g.hasPrev = false
		g.prevChars = ""
	}
}

func (g *groupCollector) add(ln int, line string) {
	if (len(line) > maxLineLength && !hasCopyrightIndicators(line)) || isEncodedDataLine(line) {
		g.skip()
		return
	}

	debian := strings.Contains(line, "s>")
	co := charsOnly(line)

	switch {
	case hasAnySuffix(co, endSuffixes):
		g.push(ln, line)
		g.reset()
	case IsCandidate(line) || strings.Contains(co, "http") || debian:
		if isCodeLineWithFalseC(line) {
			return
		}
		g.inCopyright = 2
		g.push(ln, line)
		g.prevChars, g.hasPrev = co, true
	case g.inCopyright > 0:
		if co == "" && !(g.hasPrev && endsWithContinuation(g.prevChars)) {
			g.reset()
			return
		}
		g.push(ln, line)
		g.inCopyright--
	case len(g.candidates) > 0:
		g.reset()
	}
}

// CollectCandidates groups the lines worth parsing. lines holds raw text in
// file order; numbering starts at 1. Each returned group is a contiguous
// block of prepared lines.
func CollectCandidates(lines []string) [][]Line {
	var g groupCollector
	for i, line := range lines {
		g.add(i+1, line)
	}
	g.flush()
	return g.groups
}

// stripBalancedEdgeParens removes wrapping parentheses when the inside has
// none of its own.
func stripBalancedEdgeParens(s string) string {
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		inner := s[1 : len(s)-1]
		if !strings.ContainsAny(inner, "()") {
			return inner
		}
	}
	return s
}
