package copyright

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCopyrightHint(t *testing.T) {
	hits := []string{
		"© 2024 Acme Inc",
		"Copyright (C) 2024",
		"Some |copy| notice",
		"&#169; 2024 Foo",
		"&#xa9; 2024 Foo",
		"Copyleft notice",
		"Copr. 2024 Foo",
		"All rights reserved",
		"AUTHORS: see below",
		"Contributed to the project",
		"written by someone",
		"mail me at foo@example.com",
		"<s>Debian</s>",
	}
	for _, line := range hits {
		assert.True(t, HasCopyrightHint(line), line)
	}
	assert.False(t, HasCopyrightHint("plain text without markers"))
	assert.False(t, HasCopyrightHint("nearby"), "'by' needs a trailing space")
}

func TestHasYear(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{" 1960 ", true},
		{" 2099 ", true},
		{" 1959 ", false},
		{" 2100 ", false},
		{"Copyright 2024", true},
		{"(c) 2020-2024 Foo", true},
		{"2024 Acme", true},
		{"abc2024def", false},
		{"v12024", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasYear(tt.line), "%q", tt.line)
	}
}

func TestIsCandidate(t *testing.T) {
	require.True(t, IsCandidate("Some notice 2024 "))
	require.True(t, IsCandidate("Copyright Foo"))
	require.False(t, IsCandidate("func main() {}"))
}

func TestHasTrailingYear(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"text 1960", true},
		{"text 1959", false},
		{"some text 2024, ", true},
		{"2020-2024", true},
		{"20", false},
		{"", false},
		{"year 2100.", false},
		{"copyright", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasTrailingYear(tt.s), "%q", tt.s)
	}
}
