package rules

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RE2 gives \w, \W and \b ASCII meaning. Table patterns are written against
// Unicode word characters, so they are rewritten before compiling.
const wordChars = `\p{L}\p{M}\p{N}_`

const (
	wordClass    = `[` + wordChars + `]`
	nonWordClass = `[^` + wordChars + `]`
	leadBoundary = `(?:^|` + nonWordClass + `)`
	tailBoundary = `(?:` + nonWordClass + `|$)`
)

// side classifies what a pattern matches next to a \b.
type side int

const (
	sideUnknown side = iota
	sideWord
	sideNonWord
	sideStart  // beginning of an unanchored pattern
	sideAnchor // ^ before, $ after
	sideAny    // .* or .+
	sideEnd
)

var (
	flagsOnly  = regexp.MustCompile(`^(?:\(\?[imsU]+\))*$`)
	groupStart = regexp.MustCompile(`\(\?[imsU-]*:$`)
)

// unicodeWords rewrites \w and \W into Unicode classes and emulates \b
// where the characters on each side of it can be told from the pattern.
// Table patterns are only used with MatchString, so an emulated boundary
// may consume the neighbouring character. A \b whose sides cannot be
// classified stays ASCII.
func unicodeWords(src string) string {
	if !strings.Contains(src, `\`) {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	inClass := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\\' && i+1 < len(src) {
			e := src[i+1]
			switch {
			case e == 'w' && inClass:
				b.WriteString(wordChars)
			case e == 'w':
				b.WriteString(wordClass)
			case e == 'W' && !inClass:
				b.WriteString(nonWordClass)
			case e == 'b' && !inClass:
				b.WriteString(boundary(src[:i], src[i+2:]))
			default:
				b.WriteByte(c)
				b.WriteByte(e)
			}
			i++
			continue
		}
		switch {
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
			if i+1 < len(src) && src[i+1] == '^' {
				b.WriteByte('^')
				i++
			}
			if i+1 < len(src) && src[i+1] == ']' {
				b.WriteByte(']')
				i++
			}
			continue
		case c == '[' && inClass && strings.HasPrefix(src[i:], "[:"):
			if end := strings.Index(src[i:], ":]"); end > 0 {
				b.WriteString(src[i : i+end+2])
				i += end + 1
				continue
			}
		case c == ']' && inClass:
			inClass = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

func boundary(pre, post string) string {
	before, after := sideBefore(pre), sideAfter(post)
	switch {
	case before == sideWord && (after == sideEnd || after == sideAny):
		return tailBoundary
	case (before == sideStart || before == sideAny) && after == sideWord:
		return leadBoundary
	case before == sideNonWord && (after == sideEnd || after == sideAny):
		return wordClass
	case (before == sideStart || before == sideAny) && after == sideNonWord:
		return wordClass
	case before == sideWord && (after == sideNonWord || after == sideAnchor):
		return ""
	case (before == sideNonWord || before == sideAnchor) && after == sideWord:
		return ""
	}
	return `\b`
}

func sideBefore(s string) side {
	if flagsOnly.MatchString(s) {
		return sideStart
	}
	if groupStart.MatchString(s) {
		return sideUnknown
	}
	n := len(s)
	if escaped(s, n-1) {
		return escapeSide(s[n-1])
	}
	switch s[n-1] {
	case '^':
		return sideAnchor
	case '*', '?':
		if n >= 2 && s[n-2] == '.' && !escaped(s, n-2) {
			return sideAny
		}
		// An optional literal decides nothing unless it agrees with the
		// character before it, as in "rights?".
		if n >= 3 && !escaped(s, n-2) && !strings.ContainsRune(`()[]{}.|^$\`, rune(s[n-2])) {
			opt, prev := sideBefore(s[:n-1]), sideBefore(s[:n-2])
			if opt == prev && (opt == sideWord || opt == sideNonWord) {
				return opt
			}
		}
		return sideUnknown
	case '+':
		if n >= 2 && s[n-2] == '.' && !escaped(s, n-2) {
			return sideAny
		}
		return sideBefore(s[:n-1])
	case '}':
		if j := strings.LastIndexByte(s, '{'); j > 0 {
			return sideBefore(s[:j])
		}
		return sideUnknown
	case ')':
		if n >= 2 {
			return sideBefore(s[:n-1])
		}
		return sideUnknown
	case '(', '|', '[', ']', '.', '$', '\\':
		return sideUnknown
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return runeSide(r)
}

func sideAfter(s string) side {
	if s == "" {
		return sideEnd
	}
	switch s[0] {
	case '$':
		return sideAnchor
	case '.':
		if strings.HasPrefix(s, ".*") || strings.HasPrefix(s, ".+") {
			return sideAny
		}
		return sideUnknown
	case '\\':
		if len(s) < 2 || optional(s[2:]) {
			return sideUnknown
		}
		return escapeSide(s[1])
	case '(':
		inner := strings.TrimPrefix(s[1:], "?:")
		if k := sideAfter(inner); k == sideWord || k == sideNonWord {
			return k
		}
		return sideUnknown
	case '[', '|', ')', '^', '*', '+', '?', '{':
		return sideUnknown
	}
	r, size := utf8.DecodeRuneInString(s)
	if optional(s[size:]) {
		return sideUnknown
	}
	return runeSide(r)
}

// escaped reports whether s[i] is preceded by an odd run of backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func escapeSide(c byte) side {
	switch {
	case c == 'w' || c == 'd':
		return sideWord
	case c == 's' || c == 'W':
		return sideNonWord
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return sideUnknown
	}
	return sideNonWord
}

func optional(s string) bool {
	return strings.HasPrefix(s, "?") || strings.HasPrefix(s, "*") || strings.HasPrefix(s, "{0")
}

func runeSide(r rune) side {
	if r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r) {
		return sideWord
	}
	return sideNonWord
}
