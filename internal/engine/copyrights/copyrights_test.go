package copyrights

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagon/attrib/internal/copyright"
	"github.com/garagon/attrib/internal/metrics"
	"github.com/garagon/attrib/internal/scanner"
)

func makeTarget(relPath, content string) *scanner.Target {
	return &scanner.Target{
		Path:    "/test/" + relPath,
		RelPath: relPath,
		Content: []byte(content),
	}
}

func TestAnalyzeCopyright(t *testing.T) {
	a := New(copyright.Default())
	fr, err := a.Analyze(context.Background(), makeTarget("main.c", "/* Copyright 2024 Acme Inc. */\n"))
	require.NoError(t, err)
	require.NotNil(t, fr)
	require.Len(t, fr.Copyrights, 1)
	assert.Contains(t, fr.Copyrights[0].Copyright, "Acme")
	assert.Equal(t, 1, fr.Copyrights[0].StartLine)
	assert.False(t, fr.CreditsFile)
}

func TestAnalyzeNothing(t *testing.T) {
	a := New(copyright.Default())
	fr, err := a.Analyze(context.Background(), makeTarget("main.go", "package main\n"))
	require.NoError(t, err)
	assert.Nil(t, fr)

	fr, err = a.Analyze(context.Background(), makeTarget("empty", ""))
	require.NoError(t, err)
	assert.Nil(t, fr)
}

func TestCacheByContent(t *testing.T) {
	m := metrics.New()
	a := New(copyright.Default(), WithMetrics(m))
	content := "Copyright 2024 Acme Inc.\n"

	first, err := a.Analyze(context.Background(), makeTarget("a/NOTICE", content))
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), makeTarget("b/NOTICE", content))
	require.NoError(t, err)

	assert.Equal(t, first.Detections, second.Detections)
	assert.Equal(t, 1, a.CachedEntries())
}

func TestCacheSizeCap(t *testing.T) {
	a := New(copyright.Default(), WithCacheSize(1))
	_, err := a.Analyze(context.Background(), makeTarget("a", "Copyright 2023 Foo Corp.\n"))
	require.NoError(t, err)
	fr, err := a.Analyze(context.Background(), makeTarget("b", "Copyright 2024 Bar Corp.\n"))
	require.NoError(t, err)
	require.NotNil(t, fr)
	assert.Equal(t, 1, a.CachedEntries())
}

func TestCacheDisabled(t *testing.T) {
	a := New(copyright.Default(), WithCacheSize(0))
	fr, err := a.Analyze(context.Background(), makeTarget("a", "Copyright 2023 Foo Corp.\n"))
	require.NoError(t, err)
	require.NotNil(t, fr)
	assert.Zero(t, a.CachedEntries())
}
