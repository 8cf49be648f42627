// Package types defines the shared vocabulary (tags, tokens, parse nodes,
// grammar rules, detections and scan results) used across the rules,
// copyright, scanner and output packages to prevent import cycles.
package types

import (
	"fmt"
	"strings"
)

// PosTag is the part-of-speech class assigned to a single token.
type PosTag int

const (
	TagCopy PosTag = iota
	TagSpdxContrib
	TagYr
	TagYrPlus
	TagBareYr
	TagNnp
	TagNn
	TagCaps
	TagPn
	TagMixedCap
	TagComp
	TagUni
	TagAuth
	TagAuth2
	TagAuths
	TagAuthDot
	TagMaint
	TagContributors
	TagCommit
	TagRight
	TagReserved
	TagCc
	TagOf
	TagBy
	TagIn
	TagVan
	TagTo
	TagDash
	TagEmail
	TagEmailStart
	TagEmailEnd
	TagUrl
	TagUrl2
	TagHolder
	TagIs
	TagHeld
	TagNotice
	TagPortions
	TagOth
	TagFollowing
	TagMit
	TagLinux
	TagParens
	TagAt
	TagDot
	TagOu
	TagEmptyLine
	TagJunk
	TagCd
	TagCds
	TagMonth
	TagDay
)

var posTagNames = [...]string{
	"Copy", "SpdxContrib", "Yr", "YrPlus", "BareYr", "Nnp", "Nn", "Caps", "Pn",
	"MixedCap", "Comp", "Uni", "Auth", "Auth2", "Auths", "AuthDot", "Maint",
	"Contributors", "Commit", "Right", "Reserved", "Cc", "Of", "By", "In", "Van",
	"To", "Dash", "Email", "EmailStart", "EmailEnd", "Url", "Url2", "Holder",
	"Is", "Held", "Notice", "Portions", "Oth", "Following", "Mit", "Linux",
	"Parens", "At", "Dot", "Ou", "EmptyLine", "Junk", "Cd", "Cds", "Month", "Day",
}

func (t PosTag) String() string {
	if t < 0 || int(t) >= len(posTagNames) {
		return fmt.Sprintf("PosTag(%d)", int(t))
	}
	return posTagNames[t]
}

// MarshalText encodes the tag by name.
func (t PosTag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a tag name.
func (t *PosTag) UnmarshalText(b []byte) error {
	v, err := ParsePosTag(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TreeLabel is the non-terminal assigned to a span reduced by a grammar rule.
type TreeLabel int

const (
	LabelYrRange TreeLabel = iota
	LabelYrAnd
	LabelAllRightReserved
	LabelName
	LabelNameEmail
	LabelNameYear
	LabelNameCopy
	LabelNameCaps
	LabelCompany
	LabelAndCo
	LabelCopyright
	LabelCopyright2
	LabelAuthor
	LabelAndAuth
	LabelInitialDev
	LabelDashCaps
)

var treeLabelNames = [...]string{
	"YrRange", "YrAnd", "AllRightReserved", "Name", "NameEmail", "NameYear",
	"NameCopy", "NameCaps", "Company", "AndCo", "Copyright", "Copyright2",
	"Author", "AndAuth", "InitialDev", "DashCaps",
}

func (l TreeLabel) String() string {
	if l < 0 || int(l) >= len(treeLabelNames) {
		return fmt.Sprintf("TreeLabel(%d)", int(l))
	}
	return treeLabelNames[l]
}

// MarshalText encodes the label by name.
func (l TreeLabel) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

var (
	posTagByName    = make(map[string]PosTag, len(posTagNames))
	treeLabelByName = make(map[string]TreeLabel, len(treeLabelNames))
)

func init() {
	for i, n := range posTagNames {
		posTagByName[n] = PosTag(i)
	}
	for i, n := range treeLabelNames {
		treeLabelByName[n] = TreeLabel(i)
	}
}

// ParsePosTag resolves a tag by its name ("Yr", "Nnp", ...).
func ParsePosTag(s string) (PosTag, error) {
	if t, ok := posTagByName[strings.TrimSpace(s)]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown pos tag: %q", s)
}

// ParseTreeLabel resolves a tree label by its name ("Copyright", ...).
func ParseTreeLabel(s string) (TreeLabel, error) {
	if l, ok := treeLabelByName[strings.TrimSpace(s)]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("unknown tree label: %q", s)
}

// PosTags returns every tag in declaration order.
func PosTags() []PosTag {
	out := make([]PosTag, len(posTagNames))
	for i := range out {
		out[i] = PosTag(i)
	}
	return out
}

// TreeLabels returns every label in declaration order.
func TreeLabels() []TreeLabel {
	out := make([]TreeLabel, len(treeLabelNames))
	for i := range out {
		out[i] = TreeLabel(i)
	}
	return out
}

// Token is one classified fragment of a candidate line.
type Token struct {
	Value     string `json:"value"`
	Tag       PosTag `json:"tag"`
	StartLine int    `json:"line"`
}

// ParseNode is either a leaf wrapping a Token or a tree with a label and
// ordered children. A tree owns its children exclusively.
type ParseNode struct {
	Token    *Token
	Label    TreeLabel
	Children []*ParseNode
}

// Leaf wraps a token.
func Leaf(t Token) *ParseNode {
	return &ParseNode{Token: &t}
}

// Tree builds an interior node.
func Tree(label TreeLabel, children []*ParseNode) *ParseNode {
	return &ParseNode{Label: label, Children: children}
}

// IsLeaf reports whether the node wraps a token.
func (n *ParseNode) IsLeaf() bool { return n.Token != nil }

// HasTag reports whether n is a leaf tagged with one of tags.
func (n *ParseNode) HasTag(tags ...PosTag) bool {
	if n.Token == nil {
		return false
	}
	for _, t := range tags {
		if n.Token.Tag == t {
			return true
		}
	}
	return false
}

// HasLabel reports whether n is a tree labeled with one of labels.
func (n *ParseNode) HasLabel(labels ...TreeLabel) bool {
	if n.Token != nil {
		return false
	}
	for _, l := range labels {
		if n.Label == l {
			return true
		}
	}
	return false
}

// Leaves returns the tokens covered by n in source order.
func (n *ParseNode) Leaves() []*Token {
	var out []*Token
	n.collect(&out)
	return out
}

func (n *ParseNode) collect(out *[]*Token) {
	if n.Token != nil {
		*out = append(*out, n.Token)
		return
	}
	for _, c := range n.Children {
		c.collect(out)
	}
}

// String renders the node as an s-expression, e.g. (YrRange 2020/Yr -/Dash 2024/Yr).
func (n *ParseNode) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *ParseNode) write(b *strings.Builder) {
	if n.Token != nil {
		b.WriteString(n.Token.Value)
		b.WriteByte('/')
		b.WriteString(n.Token.Tag.String())
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Label.String())
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

// MatchKind selects how a TagMatcher tests a node.
type MatchKind int

const (
	MatchTag MatchKind = iota
	MatchLabel
	MatchAnyTag
	MatchAnyLabel
	MatchAnyTagOrLabel
)

// TagMatcher tests one position of a grammar rule pattern. Tag kinds only
// match leaves, label kinds only match trees.
type TagMatcher struct {
	Kind   MatchKind
	Tags   []PosTag
	Labels []TreeLabel
}

// Matches reports whether node satisfies the matcher.
func (m TagMatcher) Matches(node *ParseNode) bool {
	switch m.Kind {
	case MatchTag, MatchAnyTag:
		return node.HasTag(m.Tags...)
	case MatchLabel, MatchAnyLabel:
		return node.HasLabel(m.Labels...)
	case MatchAnyTagOrLabel:
		return node.HasTag(m.Tags...) || node.HasLabel(m.Labels...)
	}
	return false
}

func (m TagMatcher) String() string {
	names := make([]string, 0, len(m.Tags)+len(m.Labels))
	for _, t := range m.Tags {
		names = append(names, t.String())
	}
	for _, l := range m.Labels {
		names = append(names, l.String())
	}
	return strings.Join(names, "|")
}

// GrammarRule rewrites a contiguous run of nodes matching Pattern into a
// tree labeled Label.
type GrammarRule struct {
	Label   TreeLabel
	Pattern []TagMatcher
}

func (r GrammarRule) String() string {
	parts := make([]string, len(r.Pattern))
	for i, m := range r.Pattern {
		parts[i] = m.String()
	}
	return fmt.Sprintf("%s: [%s]", r.Label, strings.Join(parts, ", "))
}
