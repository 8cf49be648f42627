package copyright

import (
	"strings"

	"github.com/garagon/attrib/internal/rules"
)

// authorJunkPrefix marks configuration keys that look like author lines.
const authorJunkPrefix = "httpProxy"

var copyrightPrefixes = rules.WordSet{"by": {}, "c": {}}

// Refiner cleans up detected strings and rejects known junk.
type Refiner struct {
	junk *rules.Junk
}

// NewRefiner returns a Refiner backed by the given junk tables.
func NewRefiner(junk *rules.Junk) *Refiner {
	return &Refiner{junk: junk}
}

// IsJunkCopyright reports whether s matches a copyright junk pattern.
func (r *Refiner) IsJunkCopyright(s string) bool {
	for _, re := range r.junk.CopyrightPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func (r *Refiner) isJunkHolder(s string) bool {
	for _, re := range r.junk.HolderPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func (r *Refiner) isJunkAuthor(s string) bool {
	for _, re := range r.junk.AuthorPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Copyright refines a copyright statement. ok is false when nothing is left.
func (r *Refiner) Copyright(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	c := normalizeSpace(s)
	c = stripSomePunct(c)
	c = stripSoloQuotes(c)
	c = strings.Trim(c, "/ ~")
	c = stripAllUnbalancedParens(c)
	c = removeExtraWordsAndPunct(c)
	c = normalizeSpace(c)
	c = removeDupeCopyrightWords(c)
	c = stripPrefixes(c, copyrightPrefixes)
	c = strings.TrimSpace(c)
	c = strings.Trim(c, "+")
	c = stripBalancedEdgeParens(c)
	c = stripSuffixes(c, r.junk.CopyrightSuffixes)
	c = stripTrailingPeriod(c)
	c = strings.Trim(c, "'")
	c = stripTrailingURLSlash(c)
	c = truncateLongWords(c)
	c = strings.TrimSpace(c)
	return c, c != ""
}

// Holder refines a holder name. ok is false for empty or junk holders.
func (r *Refiner) Holder(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	prefixes := r.junk.HolderPrefixes
	if strings.Contains(strings.ToLower(s), "reserved") {
		prefixes = r.junk.HolderPrefixesWithAll
	}

	h := strings.ReplaceAll(s, "build.year", " ")
	// Leading date-like word.
	if first, rest, found := strings.Cut(h, " "); found && isDateWord(first) {
		h = rest
	}

	h = removeExtraWordsAndPunct(h)
	h = strings.Trim(h, "/ ~")
	h = refineNames(h, prefixes)
	h = stripSuffixes(h, r.junk.HolderSuffixes)
	h = strings.Trim(h, "/ ~")
	h = stripSoloQuotes(h)
	h = replaceSeq(h, "( ", " ", " )", " ")
	h = strings.Trim(h, "+- ")
	h = stripTrailingPeriod(h)
	h = strings.Trim(h, "+- ")
	h = strings.ReplaceAll(h, "the Initial Developer the Initial Developer", "the Initial Developer")
	h = normalizeSpace(h)
	h = stripTrailingURL(h)
	h = strings.Trim(h, ", ")
	h = normalizeSpace(h)
	h = truncateLongWords(h)
	h = strings.TrimSpace(h)

	if h == "" || r.junk.HolderJunk.Has(strings.ToLower(h)) || r.isJunkHolder(h) {
		return "", false
	}
	return h, true
}

// Author refines an author name. ok is false for empty or junk authors.
func (r *Refiner) Author(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	a := removeExtraWordsAndPunct(s)
	a = refineNames(a, r.junk.AuthorPrefixes)
	a = strings.TrimSpace(a)
	a = stripTrailingPeriod(a)
	a = strings.TrimSpace(a)
	a = stripBalancedEdgeParens(a)
	a = strings.TrimSpace(a)
	a = stripSoloQuotes(a)
	a = refineNames(a, r.junk.AuthorPrefixes)
	a = strings.TrimSpace(a)
	a = strings.Trim(a, "+-")

	if a == "" ||
		r.junk.AuthorJunk.Has(strings.ToLower(a)) ||
		strings.HasPrefix(a, authorJunkPrefix) ||
		r.isJunkAuthor(a) {
		return "", false
	}
	return a, true
}

func refineNames(s string, prefixes rules.WordSet) string {
	n := stripSomePunct(s)
	n = stripLeadingNumbers(n)
	n = stripAllUnbalancedParens(n)
	n = stripSomePunct(n)
	n = strings.TrimSpace(n)
	n = stripBalancedEdgeParens(n)
	n = strings.TrimSpace(n)
	n = stripPrefixes(n, prefixes)
	n = stripSomePunct(n)
	return strings.TrimSpace(n)
}

func isDateWord(w string) bool {
	for i := 0; i < len(w); i++ {
		c := w[i]
		if (c < '0' || c > '9') && c != '-' && c != '/' {
			return false
		}
	}
	return true
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func removeDupeCopyrightWords(c string) string {
	c = replaceSeq(c,
		"SPDX-FileCopyrightText", "Copyright",
		"SPDX-SnippetCopyrightText", "Copyright",
		"Bundle-Copyright", "Copyright",
		"AssemblyCopyright", "Copyright",
		"AppCopyright", "Copyright",
		"Cppyright", "Copyright",
		"cppyright", "Copyright",
	)
	// Prefixes glued to the word in binaries.
	for _, p := range []string{"B", "E", "F", "J", "M", "m", "r", "V"} {
		c = strings.ReplaceAll(c, p+"Copyright", "Copyright")
	}
	return replaceSeq(c,
		"JCOPYRIGHT", "Copyright",
		"COPYRIGHT Copyright", "Copyright",
		"Copyright Copyright", "Copyright",
		"Copyright copyright", "Copyright",
		"copyright copyright", "Copyright",
		"copyright Copyright", "Copyright",
		"copyright'Copyright", "Copyright",
		`copyright"Copyright`, "Copyright",
		"copyright' Copyright", "Copyright",
		`copyright" Copyright`, "Copyright",
		"Copyright @copyright", "Copyright",
		"copyright @copyright", "Copyright",
		"(c) opyrighted", "Copyright (c)",
		"(c) opyrights", "Copyright (c)",
		"(c) opyright", "Copyright (c)",
		"(c) opyleft", "Copyleft (c)",
		"(c) opylefted", "Copyleft (c)",
		"copyright'", "Copyright",
		"and later", " ",
		"build.year", " ",
	)
}

func removeExtraWordsAndPunct(c string) string {
	c = replaceSeq(c,
		"<p>", " ",
		"<a href", " ",
		"date-of-software", " ",
		"date-of-document", " ",
		" $ ", " ",
		" ? ", " ",
		"</a>", " ",
		"( )", " ",
		"()", " ",
		"__", " ",
		"--", "-",
		".com'", ".com",
		".org'", ".org",
		".net'", ".net",
		"mailto:", "",
		"@see", "",
	)
	const represented = "as represented by"
	if strings.HasSuffix(c, represented) {
		c = c[:strings.Index(c, represented)]
	}
	return strings.TrimSpace(c)
}

// stripPrefixes drops leading words found in prefixes, case-insensitively.
func stripPrefixes(s string, prefixes rules.WordSet) string {
	words := strings.Fields(s)
	for len(words) > 0 && prefixes.Has(strings.ToLower(words[0])) {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

// stripSuffixes drops trailing words found in suffixes, case-insensitively.
func stripSuffixes(s string, suffixes rules.WordSet) string {
	words := strings.Fields(s)
	for len(words) > 0 && suffixes.Has(strings.ToLower(words[len(words)-1])) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

var companyPeriodSuffixes = []string{"inc.", "corp.", "ltd.", "llc.", "co.", "llp."}

// stripTrailingPeriod removes a final period unless it belongs to an
// acronym (U.S.A., e.V.) or a company suffix (Inc., Ltd.).
func stripTrailingPeriod(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, ".") || len(s) < 3 {
		return s
	}
	singleWord := len(strings.Fields(s)) == 1
	if c := s[len(s)-2]; c >= 'A' && c <= 'Z' && !singleWord {
		return s
	}
	if s[len(s)-3] == '.' {
		return s
	}
	if hasAnySuffix(strings.ToLower(s), companyPeriodSuffixes) {
		return s
	}
	return strings.TrimRight(s, ".")
}

func stripLeadingNumbers(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 && isDigits(words[0]) {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

func isDigits(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i] < '0' || w[i] > '9' {
			return false
		}
	}
	return true
}

func stripSomePunct(s string) string {
	s = strings.Trim(s, `,'"}{-_:;&@!`)
	s = strings.TrimLeft(s, `.>)]\/`)
	return strings.TrimRight(s, `<([\/`)
}

// stripUnbalancedParens blanks out every open or close delimiter that has
// no partner.
func stripUnbalancedParens(s string, open, close rune) string {
	if !strings.ContainsRune(s, open) && !strings.ContainsRune(s, close) {
		return s
	}
	runes := []rune(s)
	var stack, unbalanced []int
	for i, r := range runes {
		switch r {
		case open:
			stack = append(stack, i)
		case close:
			if len(stack) == 0 {
				unbalanced = append(unbalanced, i)
			} else {
				stack = stack[:len(stack)-1]
			}
		}
	}
	unbalanced = append(unbalanced, stack...)
	if len(unbalanced) == 0 {
		return s
	}
	for _, i := range unbalanced {
		runes[i] = ' '
	}
	return string(runes)
}

func stripAllUnbalancedParens(s string) string {
	s = stripUnbalancedParens(s, '(', ')')
	s = stripUnbalancedParens(s, '<', '>')
	s = stripUnbalancedParens(s, '[', ']')
	return stripUnbalancedParens(s, '{', '}')
}

func stripSoloQuotes(s string) string {
	return replaceSeq(s,
		"/'", "/",
		")'", ")",
		":'", ":",
		"':", ":",
		"',", ",",
	)
}

// stripTrailingURL cuts s at the first URL unless nothing precedes it.
func stripTrailingURL(s string) string {
	idx := strings.Index(s, "http://")
	if idx < 0 {
		idx = strings.Index(s, "https://")
	}
	if idx < 0 {
		return s
	}
	before := strings.TrimRight(s[:idx], ", ;")
	if before == "" {
		return s
	}
	return before
}

func stripTrailingURLSlash(s string) string {
	if strings.HasSuffix(s, "/") && (strings.Contains(s, "http://") || strings.Contains(s, "https://")) {
		return strings.TrimRight(s, "/")
	}
	return s
}

// truncateLongWords keeps words up to the first one longer than 80 bytes.
func truncateLongWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 80 {
			words = words[:i]
			break
		}
	}
	return strings.Join(words, " ")
}
