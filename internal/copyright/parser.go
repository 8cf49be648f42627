package copyright

import "github.com/garagon/attrib/internal/types"

// MaxRewrites caps the number of grammar reductions applied to one group.
// Reaching it returns the forest built so far.
const MaxRewrites = 50

// Parse reduces tokens bottom-up with grammar. Each iteration applies the
// first rule, in table order, that matches anywhere (leftmost position),
// then restarts from the first rule. Parsing stops at a fixpoint or after
// MaxRewrites reductions.
func Parse(tokens []types.Token, grammar []types.GrammarRule) []*types.ParseNode {
	if len(tokens) == 0 {
		return nil
	}
	nodes := make([]*types.ParseNode, len(tokens))
	for i, t := range tokens {
		nodes[i] = types.Leaf(t)
	}

	for range MaxRewrites {
		changed := false
		for _, rule := range grammar {
			if next, ok := applyRule(rule, nodes); ok {
				nodes = next
				changed = true
				break
			}
		}
		if !changed {
			break
		}
	}
	return nodes
}

func applyRule(rule types.GrammarRule, nodes []*types.ParseNode) ([]*types.ParseNode, bool) {
	n := len(rule.Pattern)
	if n == 0 || len(nodes) < n {
		return nil, false
	}
	for start := 0; start+n <= len(nodes); start++ {
		if !matchesAt(rule, nodes, start) {
			continue
		}
		children := make([]*types.ParseNode, n)
		copy(children, nodes[start:start+n])
		out := make([]*types.ParseNode, 0, len(nodes)-n+1)
		out = append(out, nodes[:start]...)
		out = append(out, types.Tree(rule.Label, children))
		out = append(out, nodes[start+n:]...)
		return out, true
	}
	return nil, false
}

func matchesAt(rule types.GrammarRule, nodes []*types.ParseNode, start int) bool {
	for i, m := range rule.Pattern {
		if !m.Matches(nodes[start+i]) {
			return false
		}
	}
	return true
}
