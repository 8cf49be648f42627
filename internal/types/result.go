package types

import (
	"encoding/json"
	"time"
)

// CopyrightDetection is one copyright statement found in a file.
type CopyrightDetection struct {
	Copyright string `json:"copyright"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// HolderDetection is the rights holder named by a copyright statement.
type HolderDetection struct {
	Holder    string `json:"holder"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// AuthorDetection is an author, maintainer or contributor attribution.
type AuthorDetection struct {
	Author    string `json:"author"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Detections groups the three attribution kinds for one text.
type Detections struct {
	Copyrights []CopyrightDetection `json:"copyrights"`
	Holders    []HolderDetection    `json:"holders"`
	Authors    []AuthorDetection    `json:"authors"`
}

// Empty reports whether nothing was detected.
func (d Detections) Empty() bool {
	return len(d.Copyrights) == 0 && len(d.Holders) == 0 && len(d.Authors) == 0
}

// Merge appends other's detections to d.
func (d *Detections) Merge(other Detections) {
	d.Copyrights = append(d.Copyrights, other.Copyrights...)
	d.Holders = append(d.Holders, other.Holders...)
	d.Authors = append(d.Authors, other.Authors...)
}

// DriftStatus describes how a file's attributions compare with a baseline.
type DriftStatus string

const (
	DriftNone      DriftStatus = ""
	DriftNew       DriftStatus = "new"
	DriftChanged   DriftStatus = "changed"
	DriftUnchanged DriftStatus = "unchanged"
)

// FileResult holds the attributions found in one file.
type FileResult struct {
	Path        string      `json:"path"`
	CreditsFile bool        `json:"credits_file,omitempty"`
	Drift       DriftStatus `json:"drift,omitempty"`
	Detections
}

// HolderCount is one row of the cross-file holder summary.
type HolderCount struct {
	Holder string `json:"holder"`
	Files  int    `json:"files"`
}

// Summary aggregates detections across all scanned files.
type Summary struct {
	Copyrights int           `json:"copyrights"`
	Holders    int           `json:"holders"`
	Authors    int           `json:"authors"`
	TopHolders []HolderCount `json:"top_holders,omitempty"`
}

// ScanResult holds the complete results of a scan.
type ScanResult struct {
	ScanID       string        `json:"scan_id"`
	Files        []FileResult  `json:"files"`
	Summary      Summary       `json:"summary"`
	FilesScanned int           `json:"files_scanned"`
	Duration     time.Duration `json:"-"`
	Target       string        `json:"-"`
}

// MarshalJSON implements custom JSON marshaling so Duration serializes as milliseconds.
func (r ScanResult) MarshalJSON() ([]byte, error) {
	type Alias ScanResult
	return json.Marshal(struct {
		Alias
		DurationMS int64 `json:"duration_ms"`
	}{
		Alias:      Alias(r),
		DurationMS: r.Duration.Milliseconds(),
	})
}
