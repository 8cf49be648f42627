package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagon/attrib"
)

func TestDiffDetections(t *testing.T) {
	before := attrib.Detections{
		Holders: []attrib.HolderDetection{{Holder: "Acme Inc.", StartLine: 1, EndLine: 1}},
		Authors: []attrib.AuthorDetection{{Author: "Jane Doe", StartLine: 3, EndLine: 3}},
	}
	after := attrib.Detections{
		Holders: []attrib.HolderDetection{{Holder: "Acme Inc.", StartLine: 5, EndLine: 5}},
		Authors: []attrib.AuthorDetection{{Author: "John Roe", StartLine: 3, EndLine: 3}},
	}

	got := diffDetections("NOTICE", before, after)
	assert.Equal(t, []delta{
		{Path: "NOTICE", Kind: "author", Text: "John Roe", Added: true},
		{Path: "NOTICE", Kind: "author", Text: "Jane Doe"},
	}, got)
}

func TestDiffDetectionsDuplicates(t *testing.T) {
	one := attrib.Detections{Holders: []attrib.HolderDetection{{Holder: "Acme Inc."}}}
	two := attrib.Detections{Holders: []attrib.HolderDetection{{Holder: "Acme Inc."}, {Holder: "Acme Inc."}}}

	got := diffDetections("a", one, two)
	require.Len(t, got, 1)
	assert.True(t, got[0].Added)
	assert.Empty(t, diffDetections("a", two, two))
}

func TestRescanReportsDeltas(t *testing.T) {
	flagNoColor = true
	defer func() { flagNoColor = false }()

	dir := writeFiles(t, map[string]string{"LICENSE": googleLicense})
	known := make(map[string]attrib.Detections)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, rescan(ctx, &out, dir, []string{"LICENSE"}, nil, known))
	assert.Contains(t, out.String(), "+ LICENSE holder    Google LLC")
	assert.Contains(t, out.String(), "+ LICENSE copyright ")
	require.Contains(t, known, "LICENSE")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "LICENSE"), []byte("Copyright (c) 2024 Acme Inc.\n"), 0o644))
	out.Reset()
	require.NoError(t, rescan(ctx, &out, dir, []string{"LICENSE"}, nil, known))
	assert.Contains(t, out.String(), "- LICENSE holder    Google LLC")
	assert.Contains(t, out.String(), "+ LICENSE holder    Acme Inc.")

	out.Reset()
	require.NoError(t, rescan(ctx, &out, dir, []string{"LICENSE"}, nil, known))
	assert.Empty(t, out.String(), "nothing changed")

	require.NoError(t, os.Remove(filepath.Join(dir, "LICENSE")))
	out.Reset()
	require.NoError(t, rescan(ctx, &out, dir, []string{"LICENSE"}, nil, known))
	assert.Contains(t, out.String(), "- LICENSE holder    Acme Inc.")
	assert.Empty(t, known)
}

func TestWatchTreeSkipsVCS(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"src/a.c":     "a",
		".git/HEAD":   "ref",
		"docs/x/y.md": "y",
	})

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()
	require.NoError(t, watchTree(watcher, dir))

	var rels []string
	for _, p := range watcher.WatchList() {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{".", "src", "docs", "docs/x"}, rels)
}

func TestCollectEventQueuesNewDirectory(t *testing.T) {
	dir := writeFiles(t, map[string]string{"new/sub/NOTICE": "x", "new/README": "y"})

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	pending := make(map[string]bool)
	collectEvent(watcher, dir, fsnotify.Event{Name: filepath.Join(dir, "new"), Op: fsnotify.Create}, pending)
	collectEvent(watcher, dir, fsnotify.Event{Name: filepath.Join(dir, "x.c"), Op: fsnotify.Chmod}, pending)
	collectEvent(watcher, dir, fsnotify.Event{Name: filepath.Join(dir, "gone.c"), Op: fsnotify.Remove}, pending)

	assert.Equal(t, []string{"gone.c", "new/README", "new/sub/NOTICE"}, sortedKeys(pending))
	assert.Len(t, watcher.WatchList(), 2)
}

func TestWatchRejectsFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"LICENSE": googleLicense})

	_, err := execute(t, "watch", filepath.Join(dir, "LICENSE"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "directory"))
}
