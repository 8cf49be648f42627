package attrib_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/garagon/attrib"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "LICENSE", "Copyright (c) 2024 Google LLC\n")
	writeFile(t, dir, "main.go", "package main\n")

	result, err := attrib.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, want 2", result.FilesScanned)
	}
	if len(result.Files) != 1 || result.Files[0].Path != "LICENSE" {
		t.Fatalf("Files = %+v, want only LICENSE", result.Files)
	}
	if got := result.Files[0].Holders; len(got) != 1 || got[0].Holder != "Google LLC" {
		t.Errorf("holders = %+v, want Google LLC", got)
	}
	if result.Target != dir {
		t.Errorf("Target = %q, want %q", result.Target, dir)
	}
	if result.ScanID == "" {
		t.Error("ScanID is empty")
	}
}

func TestScanContent(t *testing.T) {
	result, err := attrib.ScanContent(context.Background(), "Copyright 2020-2024 Foo Corp.\n", "foo.c")
	if err != nil {
		t.Fatalf("ScanContent failed: %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(result.Files))
	}
	if result.Files[0].Path != "foo.c" {
		t.Errorf("Path = %q, want foo.c", result.Files[0].Path)
	}
	if result.Summary.Copyrights != 1 {
		t.Errorf("Summary.Copyrights = %d, want 1", result.Summary.Copyrights)
	}
}

func TestScanContentClean(t *testing.T) {
	result, err := attrib.ScanContent(context.Background(), "just some text\n", "")
	if err != nil {
		t.Fatalf("ScanContent failed: %v", err)
	}
	if len(result.Files) != 0 {
		t.Errorf("expected no files, got %+v", result.Files)
	}
	if result.Target != "content.txt" {
		t.Errorf("Target = %q, want default filename", result.Target)
	}
}

const creditsText = "N: Jack Lloyd\nE: lloyd@randombit.net\nW: http://www.randombit.net/\n"

func TestScanContentCredits(t *testing.T) {
	result, err := attrib.ScanContent(context.Background(), creditsText, "CREDITS")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Files) != 1 || !result.Files[0].CreditsFile {
		t.Fatalf("expected a credits file, got %+v", result.Files)
	}
	found := false
	for _, a := range result.Files[0].Authors {
		if a.Author == "Jack Lloyd lloyd@randombit.net http://www.randombit.net/" {
			found = true
		}
	}
	if !found {
		t.Errorf("credits author missing: %+v", result.Files[0].Authors)
	}

	plain, err := attrib.ScanContent(context.Background(), creditsText, "CREDITS", attrib.WithoutCredits())
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range plain.Files {
		if f.CreditsFile {
			t.Error("WithoutCredits still parsed the credits file")
		}
	}
}

func TestDetectCopyrights(t *testing.T) {
	c, h, a := attrib.DetectCopyrights("Copyright 2024 Acme Inc.")
	if len(c) != 1 || c[0].StartLine != 1 || c[0].EndLine != 1 {
		t.Fatalf("copyrights = %+v", c)
	}
	for _, want := range []string{"Copyright", "2024", "Acme"} {
		if !strings.Contains(c[0].Copyright, want) {
			t.Errorf("copyright %q lacks %q", c[0].Copyright, want)
		}
	}
	_ = h
	_ = a
}

func TestCreditsHelpers(t *testing.T) {
	if !attrib.IsCreditsFile("linux/CREDITS") {
		t.Error("CREDITS not recognized")
	}
	got := attrib.DetectCreditsAuthors(creditsText)
	if len(got) != 1 || got[0].StartLine != 1 || got[0].EndLine != 3 {
		t.Errorf("credits authors = %+v", got)
	}
}

func TestDetectWithCustomRules(t *testing.T) {
	rulesDir := t.TempDir()
	writeFile(t, rulesDir, "junk.yml", "holder_junk: [google llc]\n")

	d, err := attrib.Detect("Copyright (c) 2024 Google LLC")
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Holders) != 1 {
		t.Fatalf("built-in holders = %+v", d.Holders)
	}

	d, err = attrib.Detect("Copyright (c) 2024 Google LLC", attrib.WithCustomRules(rulesDir))
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Holders) != 0 {
		t.Errorf("custom junk ignored: %+v", d.Holders)
	}
	if len(d.Copyrights) != 1 {
		t.Errorf("copyright lost: %+v", d.Copyrights)
	}

	if _, err := attrib.Detect("x", attrib.WithCustomRules(filepath.Join(rulesDir, "missing"))); err == nil {
		t.Error("expected error for missing rules directory")
	}
}

func TestScanWithBaseline(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(t.TempDir(), "baseline.json")
	writeFile(t, dir, "NOTICE", "Copyright (c) 2024 Google LLC\n")

	first, err := attrib.Scan(context.Background(), dir, attrib.WithBaseline(baseline))
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Drift != attrib.DriftNew {
		t.Errorf("first scan drift = %q, want new", first.Files[0].Drift)
	}
	if attrib.Drifted(first) {
		t.Error("new files are not drift")
	}

	again, err := attrib.Scan(context.Background(), dir, attrib.WithBaseline(baseline))
	if err != nil {
		t.Fatal(err)
	}
	if again.Files[0].Drift != attrib.DriftUnchanged {
		t.Errorf("second scan drift = %q, want unchanged", again.Files[0].Drift)
	}

	writeFile(t, dir, "NOTICE", "Copyright (c) 2009 Google\n")
	changed, err := attrib.Scan(context.Background(), dir, attrib.WithBaseline(baseline))
	if err != nil {
		t.Fatal(err)
	}
	if !attrib.Drifted(changed) {
		t.Errorf("expected drift, got %+v", changed.Files)
	}
}

func TestScanWithMetricsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "LICENSE", "Copyright (c) 2024 Google LLC\n")
	metricsFile := filepath.Join(t.TempDir(), "attrib.prom")

	if _, err := attrib.Scan(context.Background(), dir, attrib.WithMetricsFile(metricsFile), attrib.WithWorkers(1)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "attrib_files_scanned_total 1") {
		t.Errorf("metrics file lacks file counter:\n%s", data)
	}
}

func TestScanWithIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "LICENSE", "Copyright (c) 2024 Google LLC\n")
	writeFile(t, dir, "third_party/x/LICENSE", "Copyright (c) 2009 Google\n")

	result, err := attrib.Scan(context.Background(), dir, attrib.WithIgnorePatterns([]string{"third_party/**"}))
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesScanned != 1 {
		t.Errorf("FilesScanned = %d, want 1", result.FilesScanned)
	}
}

func TestListRules(t *testing.T) {
	all, err := attrib.ListRules()
	if err != nil {
		t.Fatal(err)
	}
	grammar, err := attrib.ListRules(attrib.WithKind("grammar"))
	if err != nil {
		t.Fatal(err)
	}
	lexicon, err := attrib.ListRules(attrib.WithKind("lexicon"))
	if err != nil {
		t.Fatal(err)
	}
	if len(grammar) != 752 || len(lexicon) != 1093 {
		t.Errorf("grammar = %d, lexicon = %d", len(grammar), len(lexicon))
	}
	if len(all) != len(grammar)+len(lexicon) {
		t.Errorf("all = %d, want %d", len(all), len(grammar)+len(lexicon))
	}

	yr, err := attrib.ListRules(attrib.WithKind("grammar"), attrib.WithLabel("yrrange"))
	if err != nil {
		t.Fatal(err)
	}
	if len(yr) == 0 {
		t.Fatal("no YrRange rules")
	}
	for _, r := range yr {
		if r.Label != "YrRange" || r.Kind != "grammar" {
			t.Errorf("unexpected rule %+v", r)
		}
	}
}

func TestExplain(t *testing.T) {
	groups, err := attrib.Explain("Copyright (c) 2024 Google LLC")
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	g := groups[0]
	if len(g.Lines) != 1 || g.Lines[0].Number != 1 {
		t.Errorf("lines = %+v", g.Lines)
	}
	if len(g.Tokens) == 0 || len(g.Forest) == 0 {
		t.Error("expected tokens and a forest")
	}
	if len(g.Detections.Copyrights) != 1 {
		t.Errorf("detections = %+v", g.Detections)
	}
}

func TestScanFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "LICENSE", "Copyright (c) 2024 Google LLC\n")
	writeFile(t, dir, "src/a.c", "/* Copyright 2021 Acme Inc. */\n")

	result, err := attrib.ScanFiles(context.Background(), dir, []string{"src/a.c", "missing.c"})
	if err != nil {
		t.Fatalf("ScanFiles failed: %v", err)
	}
	if result.FilesScanned != 1 {
		t.Errorf("FilesScanned = %d, want 1", result.FilesScanned)
	}
	for _, f := range result.Files {
		if f.Path == "LICENSE" {
			t.Error("LICENSE was not requested but was scanned")
		}
	}
}
