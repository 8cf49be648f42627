package meta_test

import (
	"testing"

	"github.com/garagon/attrib/internal/meta"
	"github.com/garagon/attrib/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicate(t *testing.T) {
	d := types.Detections{
		Copyrights: []types.CopyrightDetection{
			{Copyright: "Copyright 2024 Acme", StartLine: 1, EndLine: 1},
			{Copyright: "Copyright 2024 Acme", StartLine: 1, EndLine: 1},
			{Copyright: "Copyright 2024 Acme", StartLine: 9, EndLine: 9}, // other lines
		},
		Holders: []types.HolderDetection{
			{Holder: "Acme", StartLine: 1, EndLine: 1},
			{Holder: "Acme", StartLine: 1, EndLine: 1},
		},
		Authors: []types.AuthorDetection{
			{Author: "Jane Doe", StartLine: 3, EndLine: 3},
			{Author: "John Roe", StartLine: 3, EndLine: 3},
		},
	}

	got := meta.Deduplicate(d)
	require.Len(t, got.Copyrights, 2)
	assert.Equal(t, 1, got.Copyrights[0].StartLine)
	assert.Equal(t, 9, got.Copyrights[1].StartLine)
	assert.Len(t, got.Holders, 1)
	assert.Len(t, got.Authors, 2)
	assert.Len(t, d.Copyrights, 3, "input must not be modified")
}

func TestDeduplicateEmpty(t *testing.T) {
	assert.True(t, meta.Deduplicate(types.Detections{}).Empty())
}

func holders(names ...string) []types.HolderDetection {
	out := make([]types.HolderDetection, len(names))
	for i, n := range names {
		out[i] = types.HolderDetection{Holder: n, StartLine: i + 1, EndLine: i + 1}
	}
	return out
}

func TestSummarize(t *testing.T) {
	files := []types.FileResult{
		{Path: "a.c", Detections: types.Detections{
			Copyrights: []types.CopyrightDetection{{Copyright: "Copyright Acme"}},
			Holders:    holders("Acme", "Acme"),
		}},
		{Path: "b.c", Detections: types.Detections{
			Holders: holders("Acme", "Zeta"),
			Authors: []types.AuthorDetection{{Author: "Jane"}},
		}},
		{Path: "c.c", Detections: types.Detections{
			Holders: holders("Beta"),
		}},
	}

	s := meta.Summarize(files, 0)
	assert.Equal(t, 1, s.Copyrights)
	assert.Equal(t, 5, s.Holders)
	assert.Equal(t, 1, s.Authors)
	assert.Equal(t, []types.HolderCount{
		{Holder: "Acme", Files: 2},
		{Holder: "Beta", Files: 1},
		{Holder: "Zeta", Files: 1},
	}, s.TopHolders)

	top := meta.Summarize(files, 1)
	assert.Equal(t, []types.HolderCount{{Holder: "Acme", Files: 2}}, top.TopHolders)
}

func TestSummarizeNothing(t *testing.T) {
	s := meta.Summarize(nil, meta.DefaultTopHolders)
	assert.Zero(t, s.Copyrights)
	assert.Empty(t, s.TopHolders)
}
