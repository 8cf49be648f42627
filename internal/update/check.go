// Package update asks the GitHub releases API whether a newer attrib
// release exists.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("attrib.update")

// Repo is the GitHub repository releases are published from.
const Repo = "garagon/attrib"

const checkTimeout = time.Second

// Result holds the outcome of a version check.
type Result struct {
	Latest     string // e.g. "v0.4.0"
	Current    string
	InstallCmd string
}

// NeedsUpdate reports whether Latest differs from Current. Development
// builds never need an update. A missing "v" prefix is ignored.
func (r *Result) NeedsUpdate() bool {
	if r.Current == "dev" {
		return false
	}
	return strings.TrimPrefix(r.Latest, "v") != strings.TrimPrefix(r.Current, "v")
}

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// defaultBaseURL is the GitHub API base URL, overridable for testing.
var defaultBaseURL = "https://api.github.com"

// CheckLatest queries the latest release of repo (e.g. "garagon/attrib").
// It gives up after one second. Failures are logged at debug level and
// yield nil; they never reach the caller as errors.
func CheckLatest(ctx context.Context, currentVersion, repo string) *Result {
	if currentVersion == "dev" {
		return nil
	}
	return checkLatestWithBase(ctx, defaultBaseURL, currentVersion, repo)
}

func checkLatestWithBase(ctx context.Context, baseURL, currentVersion, repo string) *Result {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/repos/%s/releases/latest", baseURL, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Debugf("version check: %s", err)
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Debugf("version check: %s", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debugf("version check: %s returned %s", url, resp.Status)
		return nil
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		log.Debugf("version check: decoding release: %s", err)
		return nil
	}
	if release.TagName == "" {
		return nil
	}

	return &Result{
		Latest:     release.TagName,
		Current:    currentVersion,
		InstallCmd: fmt.Sprintf("go install github.com/%s/cmd/attrib@latest", repo),
	}
}
