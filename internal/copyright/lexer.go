package copyright

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/garagon/attrib/internal/rules"
	"github.com/garagon/attrib/internal/types"
)

var splitter = regexp.MustCompile(`[\t =;]+`)

// Tokenize splits a group of prepared lines into tagged tokens.
//
// A blank line is dropped when the previous text line looks unfinished (it
// starts with "copyright" or ends with "by", "copyright" or a digit);
// otherwise it becomes an EmptyLine token.
func Tokenize(group []Line, lex *rules.Lexicon) []types.Token {
	var tokens []types.Token
	lastLine := ""

	for _, l := range group {
		if strings.TrimSpace(l.Text) == "" {
			if continuesAcrossBlank(lastLine) {
				continue
			}
			tokens = append(tokens, types.Token{Value: "\n", Tag: types.TagEmptyLine, StartLine: l.Number})
			lastLine = ""
			continue
		}
		lastLine = l.Text

		for _, frag := range splitter.Split(l.Text, -1) {
			tok := cleanFragment(frag)
			if tok == "" || tok == ":" || tok == "." {
				continue
			}
			tokens = append(tokens, types.Token{Value: tok, Tag: lex.Tag(tok), StartLine: l.Number})
		}
	}
	return tokens
}

func continuesAcrossBlank(last string) bool {
	s := strings.TrimFunc(strings.ToLower(last), isASCIIPunct)
	if s == "" {
		return false
	}
	c := s[len(s)-1]
	return strings.HasPrefix(s, "copyright") ||
		strings.HasSuffix(s, "by") ||
		strings.HasSuffix(s, "copyright") ||
		(c >= '0' && c <= '9')
}

func cleanFragment(tok string) string {
	if strings.HasSuffix(tok, "',") {
		tok = strings.TrimRight(tok, ",'")
	}
	tok = strings.Trim(tok, "' ")
	tok = strings.TrimSuffix(tok, ":")
	return strings.TrimSpace(tok)
}

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func isASCIIPunct(r rune) bool {
	return r < unicode.MaxASCII && strings.ContainsRune(asciiPunct, r)
}

func isSpace(r rune) bool { return unicode.IsSpace(r) }
