package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/garagon/attrib/internal/types"
)

// MarkdownFormatter outputs attributions as GitHub-flavored markdown,
// suitable for job summaries and PR comments.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, result *types.ScanResult) error {
	if len(result.Files) == 0 {
		f.printEmpty(w, result)
		return nil
	}
	f.printSummary(w, result)
	f.printFiles(w, result.Files)
	f.printHolders(w, result.Summary.TopHolders)
	f.printFooter(w)
	return nil
}

func (f *MarkdownFormatter) printEmpty(w io.Writer, result *types.ScanResult) {
	fmt.Fprintf(w, "### attrib: no attributions found\n\n")
	fmt.Fprintf(w, "> %d files scanned · %.2fs\n", result.FilesScanned, result.Duration.Seconds())
}

func (f *MarkdownFormatter) printSummary(w io.Writer, result *types.ScanResult) {
	s := result.Summary
	fmt.Fprintf(w, "### attrib: %d copyrights, %d holders, %d authors\n\n", s.Copyrights, s.Holders, s.Authors)
	target := ""
	if result.Target != "" {
		target = fmt.Sprintf("**Target:** `%s` · ", result.Target)
	}
	fmt.Fprintf(w, "> %s%d files with attributions · %d files scanned · %.2fs\n\n",
		target, len(result.Files), result.FilesScanned, result.Duration.Seconds())

	if n := countDrift(result.Files, types.DriftChanged); n > 0 {
		fmt.Fprintf(w, ":warning: **%d files changed attributions since the baseline**\n\n", n)
	}
}

func (f *MarkdownFormatter) printFiles(w io.Writer, files []types.FileResult) {
	for _, fr := range files {
		title := fmt.Sprintf("<code>%s</code>", escapeMarkdown(fr.Path))
		if fr.Drift != types.DriftNone {
			title += fmt.Sprintf(" <em>%s</em>", fr.Drift)
		}
		if fr.CreditsFile {
			title += " <em>credits</em>"
		}
		open := ""
		if fr.Drift == types.DriftChanged {
			open = " open"
		}
		fmt.Fprintf(w, "<details%s>\n<summary>%s</summary>\n\n", open, title)

		rows := entries(fr)
		if len(rows) == 0 {
			fmt.Fprintf(w, "All attributions were removed.\n\n</details>\n\n")
			continue
		}
		fmt.Fprintf(w, "| Kind | Text | Lines |\n")
		fmt.Fprintf(w, "|------|------|-------|\n")
		for _, e := range rows {
			fmt.Fprintf(w, "| %s | %s | %s |\n", e.kind, escapeMarkdown(truncate(e.text, 120)), lineSpan(e.start, e.end))
		}
		fmt.Fprintf(w, "\n</details>\n\n")
	}
}

func (f *MarkdownFormatter) printHolders(w io.Writer, holders []types.HolderCount) {
	if len(holders) == 0 {
		return
	}
	fmt.Fprintf(w, "**Top holders:**\n\n")
	fmt.Fprintf(w, "| Holder | Files |\n")
	fmt.Fprintf(w, "|--------|-------|\n")
	for _, h := range holders {
		fmt.Fprintf(w, "| %s | %d |\n", escapeMarkdown(h.Holder), h.Files)
	}
	fmt.Fprintf(w, "\n")
}

func (f *MarkdownFormatter) printFooter(w io.Writer) {
	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "*Generated by [attrib](https://github.com/garagon/attrib) %s*\n", ToolVersion)
}

func countDrift(files []types.FileResult, status types.DriftStatus) int {
	n := 0
	for _, f := range files {
		if f.Drift == status {
			n++
		}
	}
	return n
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
