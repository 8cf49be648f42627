package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/garagon/attrib/internal/types"
)

// ANSI color codes
const (
	reset     = "\033[0m"
	bold      = "\033[1m"
	dim       = "\033[2m"
	underline = "\033[4m"
	red       = "\033[31m"
	green     = "\033[32m"
	yellow    = "\033[33m"
	blue      = "\033[34m"
	magenta   = "\033[35m"
	cyan      = "\033[36m"
)

const (
	barWidth    = 40
	lineWidth   = 72
	kindWidth   = 10
	textWidth   = 56
	topHolders  = 5
	holderWidth = 48
)

// TerminalFormatter prints attributions grouped by file.
type TerminalFormatter struct {
	NoColor bool
	// Verbose also prints holders and unchanged-drift markers.
	Verbose bool
}

func (f *TerminalFormatter) color(code, text string) string {
	if f.NoColor {
		return text
	}
	return code + text + reset
}

func (f *TerminalFormatter) Format(w io.Writer, result *types.ScanResult) error {
	if os.Getenv("NO_COLOR") != "" {
		f.NoColor = true
	}

	f.printHeader(w, result)

	if len(result.Files) == 0 {
		fmt.Fprintf(w, "\n  %s No attributions found.\n", f.color(cyan, "✔"))
	} else {
		f.printDashboard(w, result.Summary)
		f.printFiles(w, result.Files)
		f.printTopHolders(w, result.Summary.TopHolders)
	}

	f.printFooter(w, result)
	return nil
}

func (f *TerminalFormatter) separator() string {
	return strings.Repeat("─", lineWidth)
}

func (f *TerminalFormatter) sectionHeader(title string) string {
	prefix := "── " + title + " "
	remaining := max(lineWidth-utf8.RuneCountInString(prefix), 0)
	return prefix + strings.Repeat("─", remaining)
}

func (f *TerminalFormatter) printHeader(w io.Writer, result *types.ScanResult) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))
	fmt.Fprintf(w, "  %s\n", f.color(bold, "ATTRIB SCAN RESULTS"))

	var parts []string
	if result.Target != "" {
		parts = append(parts, fmt.Sprintf("Target: %s", result.Target))
	}
	parts = append(parts, fmt.Sprintf("%d files", result.FilesScanned))
	if result.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%.2fs", result.Duration.Seconds()))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ·  "))
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) printDashboard(w io.Writer, s types.Summary) {
	rows := []struct {
		label string
		count int
		color string
	}{
		{"copyrights", s.Copyrights, magenta},
		{"holders", s.Holders, blue},
		{"authors", s.Authors, green},
	}
	peak := max(s.Copyrights, s.Holders, s.Authors)
	if peak == 0 {
		return
	}

	fmt.Fprintln(w)
	for _, r := range rows {
		label := fmt.Sprintf("  %-*s", kindWidth+1, r.label)
		fmt.Fprintf(w, "%s %s %4d\n", f.color(bold, label), f.renderBar(r.count, peak, barWidth, r.color), r.count)
	}
}

func (f *TerminalFormatter) printFiles(w io.Writer, files []types.FileResult) {
	fmt.Fprintf(w, "\n%s\n", f.color(bold, f.sectionHeader(fmt.Sprintf("FILES (%d)", len(files)))))
	for _, fr := range files {
		title := f.color(bold+underline, fr.Path)
		if marker := f.driftMarker(fr.Drift); marker != "" {
			title += " " + marker
		}
		if fr.CreditsFile {
			title += " " + f.color(dim, "[credits]")
		}
		fmt.Fprintf(w, "\n  %s\n", title)

		rows := entries(fr)
		if len(rows) == 0 {
			fmt.Fprintf(w, "    %s\n", f.color(dim, "all attributions removed"))
			continue
		}
		for _, e := range rows {
			if e.kind == "holder" && !f.Verbose {
				continue
			}
			fmt.Fprintf(w, "    %s %s %s\n",
				f.kindIcon(e.kind),
				fmt.Sprintf("%-*s", textWidth, truncate(e.text, textWidth)),
				f.color(cyan, lineSpan(e.start, e.end)),
			)
		}
	}
}

func (f *TerminalFormatter) driftMarker(d types.DriftStatus) string {
	switch d {
	case types.DriftNew:
		return f.color(green, "[new]")
	case types.DriftChanged:
		return f.color(red+bold, "[changed]")
	case types.DriftUnchanged:
		if f.Verbose {
			return f.color(dim, "[unchanged]")
		}
	}
	return ""
}

func (f *TerminalFormatter) kindIcon(kind string) string {
	switch kind {
	case "copyright":
		return f.color(magenta, "©")
	case "holder":
		return f.color(blue, "●")
	case "author":
		return f.color(green, "✎")
	default:
		return "?"
	}
}

func (f *TerminalFormatter) printTopHolders(w io.Writer, holders []types.HolderCount) {
	limit := min(len(holders), topHolders)
	if limit == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n\n", f.color(bold, f.sectionHeader("TOP HOLDERS")))
	for _, h := range holders[:limit] {
		fmt.Fprintf(w, "  %4d  %s\n", h.Files, truncate(h.Holder, holderWidth))
	}
}

func (f *TerminalFormatter) printFooter(w io.Writer, result *types.ScanResult) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))

	parts := []string{
		fmt.Sprintf("%d files scanned", result.FilesScanned),
		fmt.Sprintf("%d with attributions", len(result.Files)),
	}
	if n := countDrift(result.Files, types.DriftChanged); n > 0 {
		parts = append(parts, f.color(yellow, fmt.Sprintf("%d changed", n)))
	}
	if result.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%.2fs", result.Duration.Seconds()))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, " · "))
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) renderBar(count, peak, width int, code string) string {
	filled := count * width / peak
	if filled == 0 && count > 0 {
		filled = 1
	}
	// Always keep at least 1 empty block so bar boundary is visible
	if filled >= width {
		filled = width - 1
	}
	return f.color(code, strings.Repeat("█", filled)) + f.color(dim, strings.Repeat("░", width-filled))
}
