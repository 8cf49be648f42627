package copyright

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareLineCopyrightSigns(t *testing.T) {
	inputs := []string{
		"(C) 2024 Acme",
		"(c) 2024 Acme",
		"( C) 2024 Acme",
		"© 2024 Acme",
		"&copy; 2024 Acme",
		"&copy 2024 Acme",
		"&#169; 2024 Acme",
		"&#xA9; 2024 Acme",
		"|copy| 2024 Acme",
		"u00A9 2024 Acme",
		`\XA9 2024 Acme`,
		"<A9> 2024 Acme",
	}
	for _, in := range inputs {
		got := PrepareLine(in)
		assert.Contains(t, got, "(c)", in)
		assert.Contains(t, got, "2024", in)
	}
}

func TestPrepareLineExact(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"foo &amp; bar", "foo & bar"},
		{"a&ensp;b&emsp;c&thinsp;d", "a b c d"},
		{"2020–2024", "2020-2024"},
		{"  foo   bar   baz  ", "foo bar baz"},
		{"", ""},
		{"   \t  \n  ", ""},
		{"a , b , c", "a, b, c"},
		{"foo %s bar", "foo bar"},
		{"line1&#13;&#10;line2", "line1 line2"},
		{"Copyright 2024 John Doe", "Copyright 2024 John Doe"},
		{"/* Copyright 2024 Acme */", "Copyright 2024 Acme"},
		{" * Copyright 2024 Acme", "Copyright 2024 Acme"},
		{"# Copyright 2024 Acme", "Copyright 2024 Acme"},
		{"dnl Copyright 2024 Acme", "Copyright 2024 Acme"},
		{"Copyright © 2024 Jürgen Müller", "Copyright (c) 2024 Jürgen Müller"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PrepareLine(tt.in), "%q", tt.in)
	}
}

func TestPrepareLineMarkup(t *testing.T) {
	got := PrepareLine("Copyright <s>Foo</s>")
	require.NotContains(t, got, "<s>")
	require.Contains(t, got, "Foo")

	got = PrepareLine("Copyright <b>2024</b> Acme")
	require.NotContains(t, got, "<b>")
	require.Contains(t, got, "2024")

	got = PrepareLine("Copyright <b 2024 Acme")
	require.NotContains(t, got, "<b")

	got = PrepareLine("<copyright notice>")
	require.Contains(t, got, "copyright notice")

	got = PrepareLine("Copyright <year> <name>")
	require.NotContains(t, got, "<year>")
	require.NotContains(t, got, "<name>")

	got = PrepareLine("<http://example.com>")
	require.Contains(t, got, "http")

	got = PrepareLine(`<a href="http://x.org">Acme</a> mailto:info@acme.org`)
	require.NotContains(t, got, "href")
	require.NotContains(t, got, "mailto")
}

func TestPrepareLineEscapes(t *testing.T) {
	got := PrepareLine(`foo\tbar`)
	require.NotContains(t, got, `\t`)
	require.Contains(t, got, "foo")
	require.Contains(t, got, "bar")

	require.NotContains(t, PrepareLine(`foo\bar`), `\`)
	require.NotContains(t, PrepareLine("foo [bar] {baz}"), "[")
	require.NotContains(t, PrepareLine("Section§3"), "§")
	require.NotContains(t, PrepareLine("foo | bar"), "|")
}

func TestPrepareLineCombined(t *testing.T) {
	got := PrepareLine("/* Copyright &#169; 2020–2024 Foo &amp; Bar <name> */")
	require.Contains(t, got, "(c)")
	require.Contains(t, got, "2020-2024")
	require.Contains(t, got, "& Bar")
	require.NotContains(t, got, "<name>")
}
