package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/garagon/attrib/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosTagRoundTrip(t *testing.T) {
	for _, tag := range types.PosTags() {
		got, err := types.ParsePosTag(tag.String())
		require.NoError(t, err)
		require.Equal(t, tag, got)
	}
	require.Equal(t, "Copy", types.TagCopy.String())
	require.Equal(t, "Day", types.TagDay.String())
	require.Equal(t, "PosTag(99)", types.PosTag(99).String())

	_, err := types.ParsePosTag("Bogus")
	require.Error(t, err)
	_, err = types.ParsePosTag("yr")
	require.Error(t, err, "tag names are case sensitive")
}

func TestTreeLabelRoundTrip(t *testing.T) {
	for _, l := range types.TreeLabels() {
		got, err := types.ParseTreeLabel(l.String())
		require.NoError(t, err)
		require.Equal(t, l, got)
	}
	require.Len(t, types.TreeLabels(), 16)

	_, err := types.ParseTreeLabel("Yr")
	require.Error(t, err)
}

func TestTagAndLabelNamesAreDisjoint(t *testing.T) {
	for _, l := range types.TreeLabels() {
		_, err := types.ParsePosTag(l.String())
		assert.Error(t, err, "label %s collides with a tag", l)
	}
}

func TestPosTagJSON(t *testing.T) {
	tok := types.Token{Value: "2024", Tag: types.TagYr, StartLine: 3}
	data, err := json.Marshal(tok)
	require.NoError(t, err)
	require.JSONEq(t, `{"value":"2024","tag":"Yr","line":3}`, string(data))

	var back types.Token
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, tok, back)
}

func sampleTree() *types.ParseNode {
	yr := types.Tree(types.LabelYrRange, []*types.ParseNode{
		types.Leaf(types.Token{Value: "2020", Tag: types.TagYr, StartLine: 1}),
		types.Leaf(types.Token{Value: "-", Tag: types.TagDash, StartLine: 1}),
		types.Leaf(types.Token{Value: "2024", Tag: types.TagYr, StartLine: 1}),
	})
	return types.Tree(types.LabelCopyright, []*types.ParseNode{
		types.Leaf(types.Token{Value: "Copyright", Tag: types.TagCopy, StartLine: 1}),
		yr,
		types.Leaf(types.Token{Value: "Acme", Tag: types.TagNnp, StartLine: 2}),
	})
}

func TestParseNodeLeaves(t *testing.T) {
	root := sampleTree()
	leaves := root.Leaves()
	require.Len(t, leaves, 5)
	values := make([]string, len(leaves))
	for i, l := range leaves {
		values[i] = l.Value
	}
	require.Equal(t, []string{"Copyright", "2020", "-", "2024", "Acme"}, values)
	require.Equal(t, 2, leaves[4].StartLine)
}

func TestParseNodePredicates(t *testing.T) {
	root := sampleTree()
	require.False(t, root.IsLeaf())
	require.True(t, root.HasLabel(types.LabelAuthor, types.LabelCopyright))
	require.False(t, root.HasTag(types.TagCopy))

	leaf := root.Children[0]
	require.True(t, leaf.IsLeaf())
	require.True(t, leaf.HasTag(types.TagCopy))
	// A leaf's zero Label must not make it look like a YrRange tree.
	require.False(t, leaf.HasLabel(types.LabelYrRange))
}

func TestParseNodeString(t *testing.T) {
	require.Equal(t,
		"(Copyright Copyright/Copy (YrRange 2020/Yr -/Dash 2024/Yr) Acme/Nnp)",
		sampleTree().String())
}

func TestTagMatcher(t *testing.T) {
	leaf := types.Leaf(types.Token{Value: "2024", Tag: types.TagYr})
	tree := types.Tree(types.LabelName, nil)

	tests := []struct {
		name     string
		m        types.TagMatcher
		leaf     bool
		tree     bool
		rendered string
	}{
		{"tag", types.TagMatcher{Kind: types.MatchTag, Tags: []types.PosTag{types.TagYr}}, true, false, "Yr"},
		{"label", types.TagMatcher{Kind: types.MatchLabel, Labels: []types.TreeLabel{types.LabelName}}, false, true, "Name"},
		{"any tag", types.TagMatcher{Kind: types.MatchAnyTag, Tags: []types.PosTag{types.TagBareYr, types.TagYr}}, true, false, "BareYr|Yr"},
		{"any label", types.TagMatcher{Kind: types.MatchAnyLabel, Labels: []types.TreeLabel{types.LabelCompany, types.LabelName}}, false, true, "Company|Name"},
		{"tag or label", types.TagMatcher{
			Kind:   types.MatchAnyTagOrLabel,
			Tags:   []types.PosTag{types.TagYr},
			Labels: []types.TreeLabel{types.LabelName},
		}, true, true, "Yr|Name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.leaf, tt.m.Matches(leaf))
			require.Equal(t, tt.tree, tt.m.Matches(tree))
			require.Equal(t, tt.rendered, tt.m.String())
		})
	}
}

func TestDetectionsMerge(t *testing.T) {
	var d types.Detections
	require.True(t, d.Empty())
	d.Merge(types.Detections{
		Authors: []types.AuthorDetection{{Author: "Jane", StartLine: 1, EndLine: 1}},
	})
	require.False(t, d.Empty())
	require.Len(t, d.Authors, 1)
}

func TestScanResultJSON(t *testing.T) {
	res := types.ScanResult{
		ScanID:       "abc",
		FilesScanned: 2,
		Duration:     1500 * time.Millisecond,
		Target:       "/tmp/x",
		Files: []types.FileResult{{
			Path: "a.c",
			Detections: types.Detections{
				Copyrights: []types.CopyrightDetection{{Copyright: "Copyright 2024 Acme", StartLine: 1, EndLine: 1}},
			},
		}},
	}
	data, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, float64(1500), m["duration_ms"])
	require.Equal(t, "abc", m["scan_id"])
	require.NotContains(t, m, "Target")

	files := m["files"].([]any)
	first := files[0].(map[string]any)
	require.Equal(t, "a.c", first["path"])
	require.NotContains(t, first, "drift")
	cr := first["copyrights"].([]any)[0].(map[string]any)
	require.Equal(t, "Copyright 2024 Acme", cr["copyright"])
	require.Equal(t, float64(1), cr["start_line"])
}
