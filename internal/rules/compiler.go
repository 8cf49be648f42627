package rules

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/garagon/attrib/internal/types"
)

var fragmentRef = regexp.MustCompile(`\$\{(\w+)\}`)

// expandFragments resolves ${name} references in fragment values. A fragment
// may only reference fragments declared before it.
func expandFragments(raw []RawFragment) (map[string]string, []error) {
	out := make(map[string]string, len(raw))
	var errs []error
	for _, f := range raw {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("fragment missing name"))
			continue
		}
		v, err := interpolate(f.Value, out)
		if err != nil {
			errs = append(errs, fmt.Errorf("fragment %s: %w", f.Name, err))
			continue
		}
		out[f.Name] = v
	}
	return out, errs
}

func interpolate(s string, fragments map[string]string) (string, error) {
	var missing string
	res := fragmentRef.ReplaceAllStringFunc(s, func(m string) string {
		name := m[2 : len(m)-1]
		v, ok := fragments[name]
		if !ok && missing == "" {
			missing = name
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("unknown fragment %q", missing)
	}
	return res, nil
}

// CompileLexEntry resolves the tag and compiles the pattern of one entry.
func CompileLexEntry(raw RawLexEntry, fragments map[string]string) (LexEntry, error) {
	tag, err := types.ParsePosTag(raw.Tag)
	if err != nil {
		return LexEntry{}, err
	}
	if tag == types.TagEmptyLine {
		return LexEntry{}, fmt.Errorf("tag %s is structural and cannot be assigned by the lexicon", tag)
	}
	src, err := interpolate(raw.Re, fragments)
	if err != nil {
		return LexEntry{}, err
	}
	re, err := regexp.Compile(unicodeWords(src))
	if err != nil {
		return LexEntry{}, fmt.Errorf("invalid regex: %w", err)
	}
	return LexEntry{Tag: tag, Pattern: re}, nil
}

// CompileLexicon compiles fragments and entries, keeping table order.
// Entries that fail to compile are dropped and reported.
func CompileLexicon(fragments []RawFragment, entries []RawLexEntry) (*Lexicon, []error) {
	frags, errs := expandFragments(fragments)
	lex := &Lexicon{Entries: make([]LexEntry, 0, len(entries))}
	for i, raw := range entries {
		e, err := CompileLexEntry(raw, frags)
		if err != nil {
			errs = append(errs, fmt.Errorf("lexicon entry %d (%s %q): %w", i, raw.Tag, raw.Re, err))
			continue
		}
		lex.Entries = append(lex.Entries, e)
	}
	return lex, errs
}

// CompileRule converts a RawGrammarRule into a types.GrammarRule.
func CompileRule(raw RawGrammarRule) (types.GrammarRule, error) {
	label, err := types.ParseTreeLabel(raw.Label)
	if err != nil {
		return types.GrammarRule{}, err
	}
	if len(raw.Pattern) == 0 {
		return types.GrammarRule{}, fmt.Errorf("rule %s: empty pattern", raw.Label)
	}
	rule := types.GrammarRule{Label: label, Pattern: make([]types.TagMatcher, 0, len(raw.Pattern))}
	for i, elem := range raw.Pattern {
		m, err := compileMatcher(elem)
		if err != nil {
			return types.GrammarRule{}, fmt.Errorf("rule %s element %d: %w", raw.Label, i, err)
		}
		rule.Pattern = append(rule.Pattern, m)
	}
	return rule, nil
}

// compileMatcher parses "A|B|..." into the narrowest matcher kind.
func compileMatcher(elem string) (types.TagMatcher, error) {
	var m types.TagMatcher
	for _, name := range strings.Split(elem, "|") {
		name = strings.TrimSpace(name)
		if tag, err := types.ParsePosTag(name); err == nil {
			m.Tags = append(m.Tags, tag)
			continue
		}
		if label, err := types.ParseTreeLabel(name); err == nil {
			m.Labels = append(m.Labels, label)
			continue
		}
		return m, fmt.Errorf("unknown tag or label %q", name)
	}
	switch {
	case len(m.Labels) == 0 && len(m.Tags) == 1:
		m.Kind = types.MatchTag
	case len(m.Labels) == 0:
		m.Kind = types.MatchAnyTag
	case len(m.Tags) == 0 && len(m.Labels) == 1:
		m.Kind = types.MatchLabel
	case len(m.Tags) == 0:
		m.Kind = types.MatchAnyLabel
	default:
		m.Kind = types.MatchAnyTagOrLabel
	}
	return m, nil
}

// CompileGrammar compiles rules in table order, dropping invalid ones.
func CompileGrammar(raws []RawGrammarRule) ([]types.GrammarRule, []error) {
	var out []types.GrammarRule
	var errs []error
	for i, raw := range raws {
		r, err := CompileRule(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("grammar rule %d: %w", i, err))
			continue
		}
		out = append(out, r)
	}
	return out, errs
}

// CompileJunk builds the word sets and compiles the junk patterns.
func CompileJunk(raw RawJunk) (*Junk, []error) {
	j := &Junk{
		CopyrightSuffixes:     newWordSet(raw.CopyrightSuffixes),
		AuthorPrefixes:        newWordSet(raw.Prefixes, raw.AuthorPrefixes),
		AuthorJunk:            newWordSet(raw.AuthorJunk),
		HolderPrefixes:        newWordSet(raw.Prefixes, raw.HolderPrefixes),
		HolderPrefixesWithAll: newWordSet(raw.Prefixes, raw.HolderPrefixes, []string{"all"}),
		HolderSuffixes:        newWordSet(raw.HolderSuffixes),
		HolderJunk:            newWordSet(raw.HolderJunk),
	}
	var errs []error
	j.CopyrightPatterns = compilePatterns("copyright_junk_patterns", raw.CopyrightJunkPatterns, &errs)
	j.HolderPatterns = compilePatterns("holder_junk_patterns", raw.HolderJunkPatterns, &errs)
	j.AuthorPatterns = compilePatterns("author_junk_patterns", raw.AuthorJunkPatterns, &errs)
	return j, errs
}

func compilePatterns(key string, srcs []string, errs *[]error) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(srcs))
	for i, s := range srcs {
		re, err := regexp.Compile(unicodeWords(s))
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s %d: invalid regex: %w", key, i, err))
			continue
		}
		out = append(out, re)
	}
	return out
}

// CompileAll compiles every table, returning the usable result and any errors.
func CompileAll(raw *RawTables) (*Tables, []error) {
	var errs []error
	lex, e := CompileLexicon(raw.Fragments, raw.Entries)
	errs = append(errs, e...)
	grammar, e := CompileGrammar(raw.Rules)
	errs = append(errs, e...)
	junk, e := CompileJunk(raw.RawJunk)
	errs = append(errs, e...)
	return &Tables{Lexicon: lex, Grammar: grammar, Junk: junk}, errs
}

// LoadTables loads the tables in base, overlays the tables found in
// extraDir when it is not empty and compiles the result. Compile errors
// drop the offending entry and are returned alongside usable tables.
func LoadTables(base fs.FS, extraDir string) (*Tables, []error, error) {
	raw, err := LoadFromFS(base)
	if err != nil {
		return nil, nil, fmt.Errorf("loading built-in tables: %w", err)
	}
	if extraDir != "" {
		extra, err := LoadFromDir(extraDir)
		if err != nil {
			return nil, nil, fmt.Errorf("loading custom tables from %s: %w", extraDir, err)
		}
		raw.Overlay(extra)
	}
	tables, errs := CompileAll(raw)
	return tables, errs, nil
}
