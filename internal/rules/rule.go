package rules

import (
	"regexp"

	"github.com/garagon/attrib/internal/types"
)

// RawFragment is a named sub-pattern that lexicon entries reference as ${name}.
type RawFragment struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// RawLexEntry is one ordered lexicon entry as defined in YAML.
type RawLexEntry struct {
	Tag string `yaml:"tag"`
	Re  string `yaml:"re"`
}

// RawGrammarRule is the YAML representation of a grammar rule. Each pattern
// element is a tag or label name, or several joined by "|".
type RawGrammarRule struct {
	Label   string   `yaml:"label"`
	Pattern []string `yaml:"pattern"`
}

// RawJunk holds the refinement word lists and junk filters.
type RawJunk struct {
	Prefixes              []string `yaml:"prefixes"`
	CopyrightSuffixes     []string `yaml:"copyright_suffixes"`
	AuthorPrefixes        []string `yaml:"author_prefixes"`
	AuthorJunk            []string `yaml:"author_junk"`
	AuthorJunkPatterns    []string `yaml:"author_junk_patterns"`
	HolderPrefixes        []string `yaml:"holder_prefixes"`
	HolderSuffixes        []string `yaml:"holder_suffixes"`
	HolderJunk            []string `yaml:"holder_junk"`
	CopyrightJunkPatterns []string `yaml:"copyright_junk_patterns"`
	HolderJunkPatterns    []string `yaml:"holder_junk_patterns"`
}

// RawTables is the union of every table file. A file usually populates one
// group of keys; loading merges files in walk order.
type RawTables struct {
	Fragments []RawFragment    `yaml:"fragments"`
	Entries   []RawLexEntry    `yaml:"entries"`
	Rules     []RawGrammarRule `yaml:"rules"`
	RawJunk   `yaml:",inline"`
}

// LexEntry is a compiled lexicon entry.
type LexEntry struct {
	Tag     types.PosTag
	Pattern *regexp.Regexp
}

// Lexicon assigns part-of-speech tags to token values.
type Lexicon struct {
	Entries []LexEntry
}

// Tag returns the tag of the first entry matching value, or Nn.
func (l *Lexicon) Tag(value string) types.PosTag {
	for _, e := range l.Entries {
		if e.Pattern.MatchString(value) {
			return e.Tag
		}
	}
	return types.TagNn
}

// WordSet is a set of lowercase words.
type WordSet map[string]struct{}

func newWordSet(words ...[]string) WordSet {
	s := make(WordSet)
	for _, list := range words {
		for _, w := range list {
			s[w] = struct{}{}
		}
	}
	return s
}

// Has reports whether w is in the set.
func (s WordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Junk is the compiled form of RawJunk.
type Junk struct {
	CopyrightSuffixes WordSet
	AuthorPrefixes    WordSet
	AuthorJunk        WordSet
	HolderPrefixes    WordSet
	// HolderPrefixesWithAll also strips a leading "all"; used when the
	// holder mentions "reserved".
	HolderPrefixesWithAll WordSet
	HolderSuffixes        WordSet
	HolderJunk            WordSet

	CopyrightPatterns []*regexp.Regexp
	HolderPatterns    []*regexp.Regexp
	AuthorPatterns    []*regexp.Regexp
}

// Tables is everything the detection pipeline needs, compiled.
type Tables struct {
	Lexicon *Lexicon
	Grammar []types.GrammarRule
	Junk    *Junk
}
