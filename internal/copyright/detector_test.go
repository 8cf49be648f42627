package copyright

import (
	"strings"
	"testing"

	"github.com/garagon/attrib/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyrightTexts(c []types.CopyrightDetection) []string {
	out := make([]string, len(c))
	for i, d := range c {
		out[i] = d.Copyright
	}
	return out
}

func holderTexts(h []types.HolderDetection) []string {
	out := make([]string, len(h))
	for i, d := range h {
		out[i] = d.Holder
	}
	return out
}

func authorTexts(a []types.AuthorDetection) []string {
	out := make([]string, len(a))
	for i, d := range a {
		out[i] = d.Author
	}
	return out
}

func anyContains(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestDetectNothing(t *testing.T) {
	for _, input := range []string{"", "This is just some random code.", "Copyright (c)"} {
		c, h, a := DetectCopyrights(input)
		assert.Empty(t, c, "input %q", input)
		assert.Empty(t, h, "input %q", input)
		assert.Empty(t, a, "input %q", input)
	}
}

func TestDetectSingleLineCopyrights(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		copyright string
		holder    string
	}{
		{"email", "Copyright (c) 2009 Masayuki Hatta (mhatta) <mhatta@debian.org>",
			"Copyright (c) 2009 Masayuki Hatta (mhatta) <mhatta@debian.org>", "Masayuki Hatta"},
		{"year range", "Copyright 2020-2024 Foo Corp.", "Copyright 2020-2024 Foo Corp.", "Foo Corp."},
		{"company", "Copyright (c) 2024 Google LLC", "Copyright (c) 2024 Google LLC", "Google LLC"},
		{"rights reserved", "Copyright 2024 Apple Inc. All rights reserved.", "Copyright 2024 Apple Inc.", "Apple Inc."},
		{"url slash", "Copyright (c) 2007 Free Software Foundation, Inc. http://fsf.org/",
			"Copyright (c) 2007 Free Software Foundation, Inc. http://fsf.org", "Free Software Foundation, Inc."},
		{"parts", " * Parts (C) 1999 David Airlie, airlied@linux.ie",
			"Parts (c) 1999 David Airlie, airlied@linux.ie", "David Airlie"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, h, _ := DetectCopyrights(tt.input)
			require.Len(t, c, 1, "copyrights: %v", copyrightTexts(c))
			assert.Equal(t, tt.copyright, c[0].Copyright)
			assert.Equal(t, 1, c[0].StartLine)
			assert.Equal(t, 1, c[0].EndLine)
			require.Len(t, h, 1, "holders: %v", holderTexts(h))
			assert.Equal(t, tt.holder, h[0].Holder)
			assert.Equal(t, 1, h[0].StartLine)
		})
	}
}

func TestDetectCopyrightText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Copyright (c) 2020-2024 Foo Bar", "Copyright (c) 2020-2024 Foo Bar"},
		{"Copyright (c) 1999-2002 Zend Technologies Ltd. All rights reserved.", "Copyright (c) 1999-2002 Zend Technologies Ltd."},
		{"Copyright (c) 2009 Google", "Copyright (c) 2009 Google"},
		{"Copyright © 2007 Free Software Foundation, Inc. <http://fsf.org/>",
			"Copyright (c) 2007 Free Software Foundation, Inc. http://fsf.org"},
	}
	for _, tt := range tests {
		c, _, _ := DetectCopyrights(tt.input)
		require.NotEmpty(t, c, "input %q", tt.input)
		assert.Equal(t, tt.want, c[0].Copyright)
	}
}

func TestDetectUnicodeCopySign(t *testing.T) {
	c, _, _ := DetectCopyrights("/* Copyright © 2000 ACME, Inc., All Rights Reserved */")
	require.NotEmpty(t, c)
	assert.True(t, strings.HasPrefix(c[0].Copyright, "Copyright"), c[0].Copyright)
}

func TestDetectSPDXCopyright(t *testing.T) {
	c, _, _ := DetectCopyrights("SPDX-FileCopyrightText: 2024 Example Corp")
	require.NotEmpty(t, c)
	assert.Contains(t, c[0].Copyright, "Copyright")
	assert.NotContains(t, c[0].Copyright, "SPDX")
}

func TestDetectAdjacentLines(t *testing.T) {
	c, _, _ := DetectCopyrights("Copyright (c) 2001 by the TTF2PT1 project\nCopyright (c) 2001 by Sergey Babkin")
	assert.Equal(t, []string{
		"Copyright (c) 2001 by the TTF2PT1 project",
		"Copyright (c) 2001 by Sergey Babkin",
	}, copyrightTexts(c))
}

func TestDetectMultilineCopyright(t *testing.T) {
	c, _, _ := DetectCopyrights("Copyright 2024\n  Acme Corporation\n  All rights reserved.")
	require.NotEmpty(t, c)
	assert.Equal(t, 1, c[0].StartLine)
}

func TestDetectSeparatedCopyrights(t *testing.T) {
	c, h, _ := DetectCopyrights("Copyright 2020 Foo Inc.\n\n\n\nCopyright 2024 Bar Corp.")
	assert.GreaterOrEqual(t, len(c), 2, "copyrights: %v", copyrightTexts(c))
	assert.GreaterOrEqual(t, len(h), 2, "holders: %v", holderTexts(h))
}

func TestDetectLineNumbers(t *testing.T) {
	c, _, _ := DetectCopyrights("Some header\nCopyright 2024 Acme Inc.\nSome footer")
	require.NotEmpty(t, c)
	assert.Equal(t, 2, c[0].StartLine)
}

func TestDetectAuthors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Written by John Doe", "John Doe"},
		{"Written by Jane Smith", "Jane Smith"},
		{"Maintained by Bob Jones", "Bob Jones"},
	}
	for _, tt := range tests {
		c, h, a := DetectCopyrights(tt.input)
		assert.Empty(t, c)
		assert.Empty(t, h)
		require.Len(t, a, 1, "authors: %v", authorTexts(a))
		assert.Equal(t, tt.want, a[0].Author)
		assert.Equal(t, 1, a[0].StartLine)
		assert.Equal(t, 1, a[0].EndLine)
	}
}

func TestDetectNonASCIINames(t *testing.T) {
	_, _, a := DetectCopyrights("Written by 李小龙")
	require.Len(t, a, 1, "authors: %v", authorTexts(a))
	assert.Equal(t, "李小龙", a[0].Author)

	c, h, _ := DetectCopyrights("Copyright (c) 2015 ÆØÅ Software")
	require.NotEmpty(t, c)
	assert.Contains(t, c[0].Copyright, "ÆØÅ Software")
	assert.True(t, anyContains(holderTexts(h), "ÆØÅ Software"), "holders: %v", holderTexts(h))

	_, h, _ = DetectCopyrights("Copyright (c) 2015 µÀÆÖÞßéöÿ")
	assert.True(t, anyContains(holderTexts(h), "µÀÆÖÞßéöÿ"), "holders: %v", holderTexts(h))
}

func TestDetectAuthorKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Authors John Smith", "John Smith"},
		{"Contributors Jane Doe", "Jane Doe"},
		{"SPDX-FileContributor: Alice Johnson", "Alice Johnson"},
	}
	for _, tt := range tests {
		_, _, a := DetectCopyrights(tt.input)
		require.Len(t, a, 1, "input %q authors: %v", tt.input, authorTexts(a))
		assert.Contains(t, a[0].Author, tt.want)
	}
}

func TestDetectCopyrightAndAuthorInSeparateGroups(t *testing.T) {
	c, h, a := DetectCopyrights("Copyright 2024 Acme Inc.\n\n\n\nWritten by Jane Smith")
	require.Len(t, c, 1)
	assert.Equal(t, "Copyright 2024 Acme Inc.", c[0].Copyright)
	require.Len(t, h, 1)
	assert.Equal(t, "Acme Inc.", h[0].Holder)
	require.Len(t, a, 1)
	assert.Equal(t, "Jane Smith", a[0].Author)
	assert.Equal(t, 5, a[0].StartLine)
}

func TestDetectOrphanedAuthors(t *testing.T) {
	_, _, a := DetectCopyrights("Copyright (c) 1998 Softweyr LLC.  All rights reserved.\n" +
		"strtok_r, from Berkeley strtok\n" +
		"Oct 13, 1998 by Wes Peters <wes@softweyr.com>")
	assert.True(t, anyContains(authorTexts(a), "Wes Peters"), "authors: %v", authorTexts(a))

	_, _, a = DetectCopyrights("#   Copyright 1996-2006 Free Software Foundation, Inc.\n" +
		"#   Taken from GNU libtool, 2001\n" +
		"#   Originally by Gordon Matzigkeit <gord@gnu.ai.mit.edu>, 1996")
	assert.True(t, anyContains(authorTexts(a), "Gordon Matzigkeit"), "authors: %v", authorTexts(a))
}

func TestDetectAuthorLineAbsorbedIntoCopyright(t *testing.T) {
	c, h, a := DetectCopyrights("* Copyright (C) 2016-2018\n* Author: Matt Ranostay <matt.ranostay@konsulko.com>")
	assert.True(t, anyContains(copyrightTexts(c), "Matt Ranostay"), "copyrights: %v", copyrightTexts(c))
	assert.True(t, anyContains(holderTexts(h), "Matt Ranostay"), "holders: %v", holderTexts(h))
	assert.Empty(t, a)
}

func TestDetectTwoCopyrightsOnAdjacentLines(t *testing.T) {
	c, h, _ := DetectCopyrights("\tCopyright 1988, 1989 by Carnegie Mellon University\n\tCopyright 1989\tTGV, Incorporated\n")
	assert.True(t, anyContains(copyrightTexts(c), "Carnegie Mellon"), "copyrights: %v", copyrightTexts(c))
	assert.True(t, anyContains(copyrightTexts(c), "TGV"), "copyrights: %v", copyrightTexts(c))
	assert.True(t, anyContains(holderTexts(h), "TGV"), "holders: %v", holderTexts(h))
}

func TestDetectDefineCopyright(t *testing.T) {
	c, h, a := DetectCopyrights("#define COPYRIGHT       \"Copyright (c) 1999-2008 LSI Corporation\"\n#define MODULEAUTHOR    \"LSI Corporation\"")
	assert.Contains(t, copyrightTexts(c), "(c) 1999-2008 LSI Corporation")
	assert.Contains(t, holderTexts(h), "LSI Corporation")
	assert.Contains(t, authorTexts(a), "LSI Corporation")
}

func TestDetectManyCopyrightLines(t *testing.T) {
	text := "   Copyright (C) 1997, 2002, 2005 Free Software Foundation, Inc.\n" +
		"* Copyright (C) 2005 Jens Axboe <axboe@suse.de>\n" +
		"* Copyright (C) 2006 Alan D. Brunelle <Alan.Brunelle@hp.com>\n" +
		"* Copyright (C) 2006 Jens Axboe <axboe@kernel.dk>\n" +
		"* Copyright (C) 2006. Bob Jenkins (bob_jenkins@burtleburtle.net)\n" +
		"* Copyright (C) 2009 Jozsef Kadlecsik (kadlec@blackhole.kfki.hu)\n" +
		"* Copyright IBM Corp. 2008\n" +
		"# Copyright (c) 2005 SUSE LINUX Products GmbH, Nuernberg, Germany.\n" +
		"# Copyright (c) 2005 Silicon Graphics, Inc."
	c, _, _ := DetectCopyrights(text)
	assert.GreaterOrEqual(t, len(c), 9, "copyrights: %v", copyrightTexts(c))
}

func TestDetectIsPure(t *testing.T) {
	text := "Copyright (c) 2024 Google LLC\n\n\n\nWritten by Jane Smith"
	first := Default().Detect(text)
	second := Default().Detect(text)
	assert.Equal(t, first, second)
}

func TestTraceMatchesDetect(t *testing.T) {
	text := "Some header\nCopyright 2024 Acme Inc.\nSome footer"
	traces := Default().Trace(text)
	require.Len(t, traces, 1)
	tr := traces[0]
	require.NotEmpty(t, tr.Tokens)
	assert.Equal(t, "Copyright", tr.Tokens[0].Value)
	assert.Equal(t, types.TagCopy, tr.Tokens[0].Tag)
	assert.NotEmpty(t, tr.Forest)
	assert.Equal(t, Default().Detect(text), tr.Detections)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb"))
	assert.Equal(t, []string{""}, SplitLines("\n"))
}

func tok(value string, tag types.PosTag) *types.Token {
	return &types.Token{Value: value, Tag: tag, StartLine: 1}
}

func TestStripRightsReserved(t *testing.T) {
	in := []*types.Token{
		tok("Copyright", types.TagCopy),
		tok("2024", types.TagYr),
		tok("Acme", types.TagNnp),
		tok("All", types.TagNn),
		tok("Rights", types.TagRight),
		tok("Reserved", types.TagReserved),
	}
	out := stripRightsReserved(in)
	assert.Equal(t, "Copyright 2024 Acme", joinTokens(out))
	assert.Len(t, in, 6)
}

func TestFilteredLeaves(t *testing.T) {
	node := types.Tree(types.LabelCopyright, []*types.ParseNode{
		types.Leaf(types.Token{Value: "Copyright", Tag: types.TagCopy, StartLine: 1}),
		types.Tree(types.LabelYrRange, []*types.ParseNode{
			types.Leaf(types.Token{Value: "2024", Tag: types.TagYr, StartLine: 1}),
		}),
		types.Leaf(types.Token{Value: "Acme", Tag: types.TagNnp, StartLine: 1}),
	})

	got := filteredLeaves(node, nil, []types.PosTag{types.TagCopy, types.TagYr})
	assert.Equal(t, "Acme", joinTokens(got))

	got = filteredLeaves(node, []types.TreeLabel{types.LabelYrRange}, nil)
	assert.Equal(t, "Copyright Acme", joinTokens(got))
}
