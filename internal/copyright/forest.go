package copyright

import (
	"slices"
	"strings"

	"github.com/garagon/attrib/internal/types"
)

// filteredLeaves collects the leaves of node, skipping leaves tagged with
// one of tags and whole subtrees labeled with one of labels.
func filteredLeaves(node *types.ParseNode, labels []types.TreeLabel, tags []types.PosTag) []*types.Token {
	var out []*types.Token
	var walk func(n *types.ParseNode)
	walk = func(n *types.ParseNode) {
		if n.IsLeaf() {
			if !slices.Contains(tags, n.Token.Tag) {
				out = append(out, n.Token)
			}
			return
		}
		if slices.Contains(labels, n.Label) {
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(node)
	return out
}

func allLeaves(forest []*types.ParseNode) []*types.Token {
	var out []*types.Token
	for _, n := range forest {
		out = append(out, n.Leaves()...)
	}
	return out
}

func withoutTags(tokens []*types.Token, tags []types.PosTag) []*types.Token {
	out := make([]*types.Token, 0, len(tokens))
	for _, t := range tokens {
		if !slices.Contains(tags, t.Tag) {
			out = append(out, t)
		}
	}
	return out
}

func hasTokenTag(tokens []*types.Token, tag types.PosTag) bool {
	return slices.ContainsFunc(tokens, func(t *types.Token) bool { return t.Tag == tag })
}

func joinTokens(tokens []*types.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Value
	}
	return strings.Join(parts, " ")
}

func isWordish(tag types.PosTag) bool {
	return tag == types.TagNn || tag == types.TagCaps || tag == types.TagNnp
}

// stripRightsReserved drops every Reserved token together with a preceding
// "All Rights" or "All Rights Foo" run. The result never aliases tokens.
func stripRightsReserved(tokens []*types.Token) []*types.Token {
	out := make([]*types.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Tag != types.TagReserved {
			out = append(out, t)
			continue
		}
		n := len(out)
		switch {
		case n >= 2 && out[n-1].Tag == types.TagRight && isWordish(out[n-2].Tag):
			out = out[:n-2]
		case n >= 3 && isWordish(out[n-1].Tag) && out[n-2].Tag == types.TagRight && isWordish(out[n-3].Tag):
			out = out[:n-3]
		}
	}
	return out
}

var (
	orphanContinuationTags = []types.PosTag{
		types.TagOf, types.TagVan, types.TagUni, types.TagNn, types.TagNnp, types.TagCaps,
		types.TagCc, types.TagCd, types.TagCds, types.TagComp, types.TagDash, types.TagPn,
		types.TagMixedCap, types.TagIn, types.TagTo, types.TagBy, types.TagEmail,
		types.TagUrl, types.TagUrl2, types.TagLinux, types.TagParens,
	}
	orphanContinuationLabels = []types.TreeLabel{
		types.LabelName, types.LabelNameEmail, types.LabelNameYear, types.LabelNameCaps,
		types.LabelCompany, types.LabelAndCo, types.LabelDashCaps,
	}
	orphanBoundaryTags = []types.PosTag{
		types.TagEmptyLine, types.TagCopy, types.TagAuth, types.TagAuth2, types.TagAuths,
		types.TagAuthDot, types.TagMaint, types.TagContributors, types.TagCommit,
		types.TagSpdxContrib, types.TagJunk,
	}
	orphanBoundaryLabels = []types.TreeLabel{
		types.LabelCopyright, types.LabelCopyright2, types.LabelAuthor, types.LabelAllRightReserved,
	}
)

// isOrphanContinuation reports whether a node after a copyright tree can be
// part of the holder name.
func isOrphanContinuation(n *types.ParseNode) bool {
	return n.HasTag(orphanContinuationTags...) || n.HasLabel(orphanContinuationLabels...)
}

// isOrphanBoundary reports whether a node starts a new statement.
func isOrphanBoundary(n *types.ParseNode) bool {
	return n.HasTag(orphanBoundaryTags...) || n.HasLabel(orphanBoundaryLabels...)
}

// isOrphanCopyNameMatch reports whether a name tree following a bare Copy
// leaf is specific enough to form a statement.
func isOrphanCopyNameMatch(n *types.ParseNode) bool {
	switch {
	case n.HasLabel(types.LabelNameYear, types.LabelNameEmail, types.LabelCompany):
		return true
	case n.HasLabel(types.LabelName, types.LabelNameCaps):
		return slices.ContainsFunc(n.Leaves(), func(t *types.Token) bool {
			return t.Tag == types.TagYr || t.Tag == types.TagYrPlus || t.Tag == types.TagBareYr
		})
	}
	return false
}

// window returns forest[start:start+n] clipped to the forest.
func window(forest []*types.ParseNode, start, n int) []*types.ParseNode {
	if start >= len(forest) {
		return nil
	}
	return forest[start:min(start+n, len(forest))]
}

func hasLabelWithin(forest []*types.ParseNode, start, n int, labels ...types.TreeLabel) bool {
	return slices.ContainsFunc(window(forest, start, n), func(node *types.ParseNode) bool {
		return node.HasLabel(labels...)
	})
}

func hasNameLikeWithin(forest []*types.ParseNode, start, n int) bool {
	return slices.ContainsFunc(window(forest, start, n), func(node *types.ParseNode) bool {
		return node.HasTag(types.TagUni, types.TagNnp, types.TagCaps, types.TagComp) ||
			node.HasLabel(types.LabelName, types.LabelCompany, types.LabelNameEmail)
	})
}

func hasCompanySignalNearby(forest []*types.ParseNode, start int) bool {
	return slices.ContainsFunc(window(forest, start, 3), func(node *types.ParseNode) bool {
		return node.HasTag(types.TagComp) || node.HasLabel(types.LabelCompany)
	})
}

// shouldStartAbsorbing decides whether the nodes after a copyright tree
// continue its holder name.
func shouldStartAbsorbing(cnode *types.ParseNode, forest []*types.ParseNode, start int) bool {
	if start >= len(forest) {
		return false
	}
	first := forest[start]

	if first.HasTag(types.TagOf, types.TagVan) && hasNameLikeWithin(forest, start+1, 2) {
		return true
	}
	if first.HasLabel(types.LabelName, types.LabelNameEmail, types.LabelCompany, types.LabelAndCo, types.LabelDashCaps) {
		return true
	}

	leaves := cnode.Leaves()
	endsWithComma := len(leaves) > 0 && strings.HasSuffix(leaves[len(leaves)-1].Value, ",")
	if endsWithComma && first.HasTag(types.TagNnp, types.TagCaps, types.TagComp, types.TagUni, types.TagMixedCap) {
		return hasCompanySignalNearby(forest, start)
	}
	if first.HasTag(types.TagNnp, types.TagCaps, types.TagCd, types.TagCds, types.TagComp, types.TagMixedCap) {
		return hasCompanySignalNearby(forest, start)
	}
	return false
}

// isLineInitial reports whether the node at idx starts its line.
func isLineInitial(forest []*types.ParseNode, idx, line int) bool {
	if idx == 0 {
		return true
	}
	prev := forest[idx-1]
	if prev.IsLeaf() {
		return prev.Token.StartLine != line
	}
	if prev.HasLabel(types.LabelCopyright, types.LabelCopyright2, types.LabelAuthor) {
		return true
	}
	leaves := prev.Leaves()
	return len(leaves) == 0 || leaves[len(leaves)-1].StartLine != line
}
