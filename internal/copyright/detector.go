// Package copyright detects copyright statements, holders and authors in
// free text. Lines are filtered into candidate groups, tokenized and tagged
// with a lexicon, reduced with a grammar and the resulting forest is walked
// to build refined detections.
package copyright

import (
	"slices"
	"strings"
	"sync"

	"github.com/garagon/attrib/internal/rules"
	"github.com/garagon/attrib/internal/rules/builtin"
	"github.com/garagon/attrib/internal/types"
)

// Leaf filters applied when rebuilding surface strings from a tree.
var (
	nonHolderLabels = []types.TreeLabel{types.LabelYrRange, types.LabelYrAnd}
	nonAuthorLabels = []types.TreeLabel{types.LabelYrRange, types.LabelYrAnd}

	nonHolderTags = []types.PosTag{
		types.TagCopy, types.TagYr, types.TagYrPlus, types.TagBareYr,
		types.TagEmail, types.TagUrl, types.TagHolder, types.TagIs, types.TagHeld,
	}
	nonHolderTagsMini = []types.PosTag{
		types.TagCopy, types.TagYr, types.TagYrPlus, types.TagBareYr,
		types.TagIs, types.TagHeld,
	}
	nonAuthorTags = []types.PosTag{
		types.TagCopy, types.TagYr, types.TagYrPlus, types.TagBareYr,
		types.TagAuth, types.TagAuth2, types.TagAuths, types.TagAuthDot,
		types.TagContributors, types.TagCommit, types.TagSpdxContrib,
		types.TagHolder, types.TagIs, types.TagHeld,
	}
	authTags = []types.PosTag{types.TagAuth, types.TagAuth2, types.TagAuths, types.TagAuthDot}
)

// Detector runs the detection pipeline with one set of compiled tables.
// It is safe for concurrent use.
type Detector struct {
	tables *rules.Tables
	refine *Refiner
}

// New returns a Detector using tables.
func New(tables *rules.Tables) *Detector {
	return &Detector{tables: tables, refine: NewRefiner(tables.Junk)}
}

// Tables returns the compiled tables the detector uses.
func (d *Detector) Tables() *rules.Tables { return d.tables }

// BuiltinTables compiles the embedded tables. Errors in embedded tables are
// programming errors and panic.
var BuiltinTables = sync.OnceValue(func() *rules.Tables {
	tables, errs, err := rules.LoadTables(builtin.FS(), "")
	if err != nil {
		panic("copyright: " + err.Error())
	}
	if len(errs) > 0 {
		panic("copyright: compiling builtin tables: " + errs[0].Error())
	}
	return tables
})

var defaultDetector = sync.OnceValue(func() *Detector { return New(BuiltinTables()) })

// Default returns the shared detector built from the embedded tables.
func Default() *Detector { return defaultDetector() }

// DetectCopyrights runs the default detector over text.
func DetectCopyrights(text string) ([]types.CopyrightDetection, []types.HolderDetection, []types.AuthorDetection) {
	det := Default().Detect(text)
	return det.Copyrights, det.Holders, det.Authors
}

// SplitLines splits text into lines the way a line reader does: "\n"
// separated, a trailing "\r" removed, no empty line after a final newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Detect returns every copyright, holder and author found in text, in order
// of appearance within each candidate group.
func (d *Detector) Detect(text string) types.Detections {
	var out types.Detections
	for _, g := range CollectCandidates(SplitLines(text)) {
		d.detectGroup(g, &out)
	}
	return out
}

// GroupTrace records every intermediate result for one candidate group.
type GroupTrace struct {
	Lines      []Line             `json:"lines"`
	Tokens     []types.Token      `json:"tokens"`
	Forest     []*types.ParseNode `json:"-"`
	Detections types.Detections   `json:"detections"`
}

// Trace runs the pipeline like Detect but keeps the intermediate state of
// every group.
func (d *Detector) Trace(text string) []GroupTrace {
	var traces []GroupTrace
	for _, g := range CollectCandidates(SplitLines(text)) {
		tr := GroupTrace{Lines: g, Tokens: Tokenize(g, d.tables.Lexicon)}
		tr.Forest = Parse(tr.Tokens, d.tables.Grammar)
		d.extract(tr.Forest, &tr.Detections)
		traces = append(traces, tr)
	}
	return traces
}

func (d *Detector) detectGroup(group []Line, out *types.Detections) {
	if len(group) == 0 {
		return
	}
	tokens := Tokenize(group, d.tables.Lexicon)
	if len(tokens) == 0 {
		return
	}
	d.extract(Parse(tokens, d.tables.Grammar), out)
}

func (d *Detector) extract(forest []*types.ParseNode, out *types.Detections) {
	if len(forest) == 0 {
		return
	}
	x := &extraction{refine: d.refine, tree: forest, out: out}
	hasTop := slices.ContainsFunc(forest, func(n *types.ParseNode) bool {
		return n.HasLabel(types.LabelCopyright, types.LabelCopyright2, types.LabelAuthor)
	})
	if hasTop {
		x.fromTreeNodes()
	} else {
		x.bareCopyrights()
		x.fromSpans()
		x.fixTruncatedContributors()
		x.orphanedByAuthors()
	}
	x.holderIsName()
}

// extraction walks one parse forest and appends detections to out.
type extraction struct {
	refine *Refiner
	tree   []*types.ParseNode
	out    *types.Detections
}

func (x *extraction) addCopyright(tokens []*types.Token) bool {
	det, ok := x.buildCopyright(tokens)
	if ok {
		x.out.Copyrights = append(x.out.Copyrights, det)
	}
	return ok
}

func (x *extraction) addHolder(tokens []*types.Token) bool {
	det, ok := x.buildHolder(tokens)
	if ok {
		x.out.Holders = append(x.out.Holders, det)
	}
	return ok
}

func (x *extraction) addAuthor(tokens []*types.Token) bool {
	det, ok := x.buildAuthor(tokens)
	if ok {
		x.out.Authors = append(x.out.Authors, det)
	}
	return ok
}

// addHolderFromNode tries the strict leaf filter first and falls back to
// the lenient one.
func (x *extraction) addHolderFromNode(node *types.ParseNode) {
	if x.addHolder(stripRightsReserved(filteredLeaves(node, nonHolderLabels, nonHolderTags))) {
		return
	}
	x.addHolder(stripRightsReserved(filteredLeaves(node, nonHolderLabels, nonHolderTagsMini)))
}

func (x *extraction) fromTreeNodes() {
	tree := x.tree
	groupHasCopyright := slices.ContainsFunc(tree, func(n *types.ParseNode) bool {
		return n.HasLabel(types.LabelCopyright, types.LabelCopyright2)
	})

	for i := 0; i < len(tree); i++ {
		node := tree[i]
		switch {
		case node.HasLabel(types.LabelCopyright, types.LabelCopyright2):
			i += x.copyrightNode(i)
		case node.HasLabel(types.LabelAuthor):
			if det, skip, ok := x.authorWithTrailing(node, i+1); ok {
				x.out.Authors = append(x.out.Authors, det)
				i += skip
			} else {
				x.addAuthor(filteredLeaves(node, nonAuthorLabels, nonAuthorTags))
			}
		case node.HasTag(types.TagCopy) && i+1 < len(tree) && isOrphanCopyNameMatch(tree[i+1]):
			next := tree[i+1]
			tokens := append([]*types.Token{node.Token}, stripRightsReserved(next.Leaves())...)
			x.addCopyright(tokens)
			x.addHolderFromNode(next)
			i++
		default:
			if det, skip, ok := x.orphanedByAuthor(i); ok {
				x.out.Authors = append(x.out.Authors, det)
				i += skip
			} else if det, skip, ok := x.dateByAuthor(i); ok {
				x.out.Authors = append(x.out.Authors, det)
				i += skip
			} else if !groupHasCopyright {
				if det, skip, ok := x.byNameEmailAuthor(i); ok {
					x.out.Authors = append(x.out.Authors, det)
					i += skip
				}
			}
		}
	}
}

// copyrightNode handles a Copyright or Copyright2 tree at index i and
// returns how many following nodes it consumed.
func (x *extraction) copyrightNode(i int) int {
	tree := x.tree
	node := tree[i]
	var prefix []*types.Token
	if i > 0 && tree[i-1].HasTag(types.TagCopy) {
		prefix = []*types.Token{tree[i-1].Token}
	}
	trailing, skip := x.trailingOrphanTokens(node, i+1)

	if len(trailing) > 0 {
		cr := slices.Concat(prefix, stripRightsReserved(node.Leaves()), trailing)
		x.addCopyright(stripRightsReserved(cr))

		holder := slices.Concat(stripRightsReserved(filteredLeaves(node, nonHolderLabels, nonHolderTags)), trailing)
		if !x.addHolder(stripRightsReserved(holder)) {
			mini := slices.Concat(stripRightsReserved(filteredLeaves(node, nonHolderLabels, nonHolderTagsMini)), trailing)
			x.addHolder(stripRightsReserved(mini))
		}
		return skip
	}

	_, strict := x.buildHolder(stripRightsReserved(filteredLeaves(node, nonHolderLabels, nonHolderTags)))
	_, lenient := x.buildHolder(stripRightsReserved(filteredLeaves(node, nonHolderLabels, nonHolderTagsMini)))
	hasHolder := strict || lenient

	// "Copyright 2010 University of X": the name follows a Uni leaf.
	if !hasHolder && i+1 < len(tree) && tree[i+1].HasTag(types.TagUni) && hasLabelWithin(tree, i+2, 2, types.LabelName, types.LabelCompany, types.LabelNameEmail) {
		cr := slices.Concat(prefix, stripRightsReserved(node.Leaves()))
		j := i + 1
		for j < len(tree) && !isOrphanBoundary(tree[j]) && isOrphanContinuation(tree[j]) {
			cr = append(cr, tree[j].Leaves()...)
			j++
		}
		x.addCopyright(stripRightsReserved(cr))

		holder := stripRightsReserved(filteredLeaves(node, nonHolderLabels, nonHolderTags))
		for k := i + 1; k < j; k++ {
			holder = append(holder, tree[k].Leaves()...)
		}
		x.addHolder(stripRightsReserved(holder))
		return j - (i + 1)
	}

	if !hasHolder && i+1 < len(tree) && tree[i+1].HasLabel(types.LabelAuthor) {
		if cr, h, ok := x.mergeWithFollowingAuthor(node, prefix, tree[i+1]); ok {
			x.out.Copyrights = append(x.out.Copyrights, cr)
			if h != nil {
				x.out.Holders = append(x.out.Holders, *h)
			}
			return 1
		}
	}

	crOK := x.addCopyright(slices.Concat(prefix, stripRightsReserved(node.Leaves())))
	x.addHolderFromNode(node)
	if crOK {
		if det, ok := x.authorInCopyright(node); ok {
			x.out.Authors = append(x.out.Authors, det)
		}
	}
	return 0
}

// mergeWithFollowingAuthor joins "Copyright 2016" with an "Author: Name
// <email>" line directly below it into one statement.
func (x *extraction) mergeWithFollowingAuthor(cnode *types.ParseNode, prefix []*types.Token, anode *types.ParseNode) (types.CopyrightDetection, *types.HolderDetection, bool) {
	authorLeaves := anode.Leaves()
	idx := slices.IndexFunc(authorLeaves, func(t *types.Token) bool { return slices.Contains(authTags, t.Tag) })
	if idx < 0 || authorLeaves[idx].Tag != types.TagAuth {
		return types.CopyrightDetection{}, nil, false
	}
	if !hasTokenTag(authorLeaves, types.TagEmail) {
		return types.CopyrightDetection{}, nil, false
	}
	crLeaves := cnode.Leaves()
	if authorLeaves[idx].StartLine != crLeaves[len(crLeaves)-1].StartLine+1 {
		return types.CopyrightDetection{}, nil, false
	}

	cr, ok := x.buildCopyright(slices.Concat(prefix, stripRightsReserved(crLeaves), authorLeaves))
	if !ok {
		return types.CopyrightDetection{}, nil, false
	}
	var holder *types.HolderDetection
	if h, ok := x.buildHolder(stripRightsReserved(withoutTags(authorLeaves, nonHolderTags))); ok {
		holder = &h
	}
	return cr, holder, true
}

func (x *extraction) trailingOrphanTokens(cnode *types.ParseNode, start int) ([]*types.Token, int) {
	if !shouldStartAbsorbing(cnode, x.tree, start) {
		return nil, 0
	}
	var tokens []*types.Token
	j := start
	for j < len(x.tree) && !isOrphanBoundary(x.tree[j]) && isOrphanContinuation(x.tree[j]) {
		tokens = append(tokens, x.tree[j].Leaves()...)
		j++
	}
	return tokens, j - start
}

// authorWithTrailing extends an Author tree whose last leaf is "email," with
// the emails and urls that follow it.
func (x *extraction) authorWithTrailing(node *types.ParseNode, start int) (types.AuthorDetection, int, bool) {
	tree := x.tree
	if start >= len(tree) || !tree[start].HasTag(types.TagEmail, types.TagUrl) {
		return types.AuthorDetection{}, 0, false
	}
	leaves := node.Leaves()
	last := leaves[len(leaves)-1]
	if (last.Tag != types.TagEmail && last.Tag != types.TagUrl) || !strings.HasSuffix(last.Value, ",") {
		return types.AuthorDetection{}, 0, false
	}

	tokens := filteredLeaves(node, nonAuthorLabels, nonAuthorTags)
	j := start
	for j < len(tree) && tree[j].HasTag(types.TagEmail, types.TagUrl, types.TagCc) {
		tokens = append(tokens, tree[j].Token)
		j++
	}
	det, ok := x.buildAuthor(tokens)
	return det, j - start, ok
}

// authorInCopyright finds "Author: Name <email>" on its own line inside a
// copyright tree.
func (x *extraction) authorInCopyright(node *types.ParseNode) (types.AuthorDetection, bool) {
	leaves := node.Leaves()
	if len(leaves) < 2 {
		return types.AuthorDetection{}, false
	}
	idx := slices.IndexFunc(leaves, func(t *types.Token) bool { return slices.Contains(authTags, t.Tag) })
	if idx < 0 {
		return types.AuthorDetection{}, false
	}
	// "OProfile authors" on one line is part of the holder.
	if idx > 0 && leaves[idx].StartLine == leaves[idx-1].StartLine {
		return types.AuthorDetection{}, false
	}
	line := leaves[idx].StartLine
	after := leaves[idx+1:]
	nameOnLine := slices.ContainsFunc(after, func(t *types.Token) bool {
		return t.StartLine == line &&
			!slices.Contains(nonAuthorTags, t.Tag) &&
			t.Tag != types.TagEmail && t.Tag != types.TagUrl
	})
	if !nameOnLine || !hasTokenTag(after, types.TagEmail) {
		return types.AuthorDetection{}, false
	}
	return x.buildAuthor(withoutTags(after, nonAuthorTags))
}

var authorByKeywords = []string{"originally", "contributed"}

// orphanedByAuthor matches "originally by NAME" and "contributed by NAME"
// at the start of a line.
func (x *extraction) orphanedByAuthor(idx int) (types.AuthorDetection, int, bool) {
	tree := x.tree
	node := tree[idx]
	if !node.HasTag(types.TagJunk, types.TagNn, types.TagAuth2) {
		return types.AuthorDetection{}, 0, false
	}
	if !slices.Contains(authorByKeywords, strings.ToLower(node.Token.Value)) {
		return types.AuthorDetection{}, 0, false
	}
	if idx > 0 && !isLineInitial(tree, idx, node.Token.StartLine) {
		return types.AuthorDetection{}, 0, false
	}
	if idx+1 >= len(tree) || !tree[idx+1].HasTag(types.TagBy) {
		return types.AuthorDetection{}, 0, false
	}
	return x.namesAfter(idx, idx+2)
}

// dateByAuthor matches "2004 by NAME".
func (x *extraction) dateByAuthor(idx int) (types.AuthorDetection, int, bool) {
	tree := x.tree
	if idx == 0 || !tree[idx].HasTag(types.TagBy) {
		return types.AuthorDetection{}, 0, false
	}
	prev := tree[idx-1]
	if !prev.HasTag(types.TagYr, types.TagBareYr) && !prev.HasLabel(types.LabelYrRange, types.LabelYrAnd) {
		return types.AuthorDetection{}, 0, false
	}
	return x.namesAfter(idx, idx+1)
}

// namesAfter collects name-like nodes from nameIdx on. The returned skip is
// relative to idx.
func (x *extraction) namesAfter(idx, nameIdx int) (types.AuthorDetection, int, bool) {
	tree := x.tree
	if nameIdx >= len(tree) {
		return types.AuthorDetection{}, 0, false
	}
	var tokens []*types.Token
	consumed := nameIdx - idx
names:
	for j := nameIdx; j < len(tree); j++ {
		n := tree[j]
		switch {
		case n.HasLabel(types.LabelName, types.LabelNameEmail, types.LabelNameYear, types.LabelCompany):
			tokens = append(tokens, filteredLeaves(n, nonAuthorLabels, nonAuthorTags)...)
		case n.HasTag(types.TagNnp, types.TagNn, types.TagEmail, types.TagUrl):
			tokens = append(tokens, n.Token)
		default:
			break names
		}
		consumed = j - idx
	}
	if len(tokens) == 0 {
		return types.AuthorDetection{}, 0, false
	}
	det, ok := x.buildAuthor(tokens)
	return det, consumed, ok
}

// byNameEmailAuthor matches "... for Linux by NAME <email>" where at least
// two tokens precede "by" on its line.
func (x *extraction) byNameEmailAuthor(idx int) (types.AuthorDetection, int, bool) {
	tree := x.tree
	if !tree[idx].HasTag(types.TagBy) {
		return types.AuthorDetection{}, 0, false
	}
	byLine := tree[idx].Token.StartLine
	sameLine := 0
	for _, n := range tree[:idx] {
		for _, t := range n.Leaves() {
			if t.StartLine == byLine {
				sameLine++
			}
		}
	}
	if sameLine < 2 || idx+1 >= len(tree) {
		return types.AuthorDetection{}, 0, false
	}
	name := tree[idx+1]
	if !name.HasLabel(types.LabelNameYear, types.LabelNameEmail, types.LabelName, types.LabelNameCaps) {
		return types.AuthorDetection{}, 0, false
	}
	if !hasTokenTag(name.Leaves(), types.TagEmail) {
		return types.AuthorDetection{}, 0, false
	}
	det, ok := x.buildAuthor(filteredLeaves(name, nonAuthorLabels, nonAuthorTags))
	return det, 1, ok
}

// orphanedByAuthors runs the keyword and date "by" matchers over a forest
// without top-level trees.
func (x *extraction) orphanedByAuthors() {
	for i := 0; i < len(x.tree); i++ {
		if det, skip, ok := x.orphanedByAuthor(i); ok {
			x.out.Authors = append(x.out.Authors, det)
			i += skip
		} else if det, skip, ok := x.dateByAuthor(i); ok {
			x.out.Authors = append(x.out.Authors, det)
			i += skip
		}
	}
}

var contributorsStop = []types.PosTag{
	types.TagEmptyLine, types.TagJunk, types.TagCopy,
	types.TagAuth, types.TagAuth2, types.TagAuths, types.TagMaint,
}

// fixTruncatedContributors repairs authors cut before "contributors" and
// detects "written by X and its contributors" directly from the tokens.
func (x *extraction) fixTruncatedContributors() {
	leaves := allLeaves(x.tree)

	for i := range x.out.Authors {
		a := &x.out.Authors[i]
		if !strings.HasSuffix(a.Author, "and its") && !strings.HasSuffix(a.Author, "and her") {
			continue
		}
		trailing := slices.ContainsFunc(leaves, func(t *types.Token) bool {
			return t.Tag == types.TagContributors && t.StartLine == a.EndLine &&
				strings.HasPrefix(strings.ToLower(t.Value), "contributor")
		})
		if trailing {
			a.Author += " contributors"
		}
	}

	for i := 0; i < len(leaves); i++ {
		if leaves[i].Tag != types.TagAuth2 || i+1 >= len(leaves) || leaves[i+1].Tag != types.TagBy {
			continue
		}
		nameStart := i + 2
		end := nameStart
		found := false
		for end < len(leaves) {
			t := leaves[end]
			if t.Tag == types.TagContributors {
				found = true
				end++
				break
			}
			if slices.Contains(contributorsStop, t.Tag) {
				break
			}
			end++
		}
		if !found || end <= nameStart {
			continue
		}
		names := withoutTags(leaves[nameStart:end], nonAuthorTags)
		if len(names) > 0 {
			if text, ok := x.refine.Author(normalizeSpace(joinTokens(names))); ok {
				if !strings.HasSuffix(text, "contributors") {
					text += " contributors"
				}
				seen := slices.ContainsFunc(x.out.Authors, func(a types.AuthorDetection) bool { return a.Author == text })
				if !seen && !x.refine.IsJunkCopyright(text) {
					x.out.Authors = append(x.out.Authors, types.AuthorDetection{
						Author:    text,
						StartLine: leaves[nameStart].StartLine,
						EndLine:   leaves[end-1].StartLine,
					})
				}
			}
		}
		i = end - 1
	}
}

// holderIsName handles "the copyright holder is NAME".
func (x *extraction) holderIsName() {
	tree := x.tree
	for i := 0; i+2 < len(tree); i++ {
		if !tree[i].HasTag(types.TagHolder) || !tree[i+1].HasTag(types.TagIs) {
			continue
		}
		name := tree[i+2]
		if !name.HasLabel(types.LabelName, types.LabelNameEmail, types.LabelNameYear, types.LabelNameCaps, types.LabelCompany) {
			continue
		}
		cr := append([]*types.Token{tree[i].Token, tree[i+1].Token}, stripRightsReserved(name.Leaves())...)
		x.addCopyright(cr)
		x.addHolder(stripRightsReserved(filteredLeaves(name, nonHolderLabels, nonHolderTags)))
		i += 2
	}
}

// bareCopyrights handles a Copy leaf followed by a name tree when the
// grammar built no Copyright tree. A preceding "Portions" is kept.
func (x *extraction) bareCopyrights() {
	tree := x.tree
	for i := 0; i+1 < len(tree); i++ {
		next := tree[i+1]
		if !tree[i].HasTag(types.TagCopy) ||
			!next.HasLabel(types.LabelNameYear, types.LabelName, types.LabelNameEmail, types.LabelNameCaps, types.LabelCompany) {
			continue
		}
		var cr []*types.Token
		if i > 0 && tree[i-1].HasTag(types.TagPortions) {
			cr = append(cr, tree[i-1].Token)
		}
		cr = append(cr, tree[i].Token)
		cr = append(cr, stripRightsReserved(next.Leaves())...)
		x.addCopyright(cr)
		x.addHolderFromNode(next)
		i++
	}
}

var spanAuthorTags = []types.PosTag{
	types.TagAuth, types.TagAuth2, types.TagAuths, types.TagAuthDot,
	types.TagMaint, types.TagContributors, types.TagCommit, types.TagSpdxContrib,
}

// fromSpans is the flat fallback: a Copy keyword starts a copyright span and
// an author keyword starts an author span, each running to the next break.
func (x *extraction) fromSpans() {
	leaves := allLeaves(x.tree)
	i := 0
	for i < len(leaves) {
		tok := leaves[i]
		switch {
		case tok.Tag == types.TagCopy || tok.Tag == types.TagSpdxContrib:
			if tok.Tag == types.TagCopy && i > 0 && leaves[i-1].Tag == types.TagPortions {
				i++
				continue
			}
			start := i
			i++
			for i < len(leaves) && leaves[i].Tag != types.TagEmptyLine && leaves[i].Tag != types.TagJunk {
				if leaves[i].Tag == types.TagCopy && i > start+1 {
					break
				}
				i++
			}
			span := leaves[start:i]
			if len(span) > 1 {
				x.addCopyright(stripRightsReserved(span))
				if !x.addHolder(withoutTags(span, nonHolderTags)) {
					x.addHolder(withoutTags(span, nonHolderTagsMini))
				}
			}
		case slices.Contains(spanAuthorTags, tok.Tag):
			start := i
			i++
			for i < len(leaves) && !isAuthorSpanBreak(leaves[i].Tag) {
				i++
			}
			if span := leaves[start:i]; len(span) > 1 {
				x.addAuthor(withoutTags(span, nonAuthorTags))
			}
		default:
			i++
		}
	}
}

func isAuthorSpanBreak(tag types.PosTag) bool {
	switch tag {
	case types.TagEmptyLine, types.TagJunk, types.TagCopy, types.TagSpdxContrib:
		return true
	}
	return false
}

func (x *extraction) buildCopyright(tokens []*types.Token) (types.CopyrightDetection, bool) {
	if len(tokens) == 0 {
		return types.CopyrightDetection{}, false
	}
	text, ok := x.refine.Copyright(normalizeSpace(joinTokens(tokens)))
	if !ok || x.refine.IsJunkCopyright(text) {
		return types.CopyrightDetection{}, false
	}
	return types.CopyrightDetection{
		Copyright: text,
		StartLine: tokens[0].StartLine,
		EndLine:   tokens[len(tokens)-1].StartLine,
	}, true
}

func (x *extraction) buildHolder(tokens []*types.Token) (types.HolderDetection, bool) {
	if len(tokens) == 0 {
		return types.HolderDetection{}, false
	}
	text, ok := x.refine.Holder(normalizeSpace(joinTokens(tokens)))
	if !ok || x.refine.IsJunkCopyright(text) {
		return types.HolderDetection{}, false
	}
	return types.HolderDetection{
		Holder:    text,
		StartLine: tokens[0].StartLine,
		EndLine:   tokens[len(tokens)-1].StartLine,
	}, true
}

func (x *extraction) buildAuthor(tokens []*types.Token) (types.AuthorDetection, bool) {
	if len(tokens) == 0 {
		return types.AuthorDetection{}, false
	}
	text, ok := x.refine.Author(normalizeSpace(joinTokens(tokens)))
	if !ok || x.refine.IsJunkCopyright(text) {
		return types.AuthorDetection{}, false
	}
	return types.AuthorDetection{
		Author:    text,
		StartLine: tokens[0].StartLine,
		EndLine:   tokens[len(tokens)-1].StartLine,
	}, true
}
