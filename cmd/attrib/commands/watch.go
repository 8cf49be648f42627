package commands

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/garagon/attrib"
	"github.com/garagon/attrib/internal/scanner"
)

var flagInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Rescan files as they change and print attribution deltas",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&flagInterval, "interval", 500*time.Millisecond, "Minimum time between rescans")
	rootCmd.AddCommand(watchCmd)
}

// delta is one attribution that appeared in or vanished from a file.
type delta struct {
	Path  string
	Kind  string
	Text  string
	Added bool
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("watch needs a directory, %s is a file", root)
	}
	if flagInterval <= 0 {
		return fmt.Errorf("--interval must be positive, got %s", flagInterval)
	}

	cfg := loadScanConfig(cmd, root)
	opts := scanOptions(cfg)

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	initial, err := attrib.Scan(ctx, root, opts...)
	if err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}
	known := indexFiles(initial.Files)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()
	if err := watchTree(watcher, root); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "watching %s: %d files, %d with attributions (Ctrl-C to stop)\n",
		root, initial.FilesScanned, len(initial.Files))

	limiter := rate.NewLimiter(rate.Every(flagInterval), 1)
	pending := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warningf("watch: %s", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			collectEvent(watcher, root, ev, pending)
			if len(pending) == 0 {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			drainEvents(watcher, root, pending)

			paths := sortedKeys(pending)
			clear(pending)
			if err := rescan(ctx, w, root, paths, opts, known); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Warningf("rescan: %s", err)
			}
		}
	}
}

// watchTree adds root and every directory below it that a scan would
// enter.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != root && scanner.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

// collectEvent records the files an event touches. New directories are
// watched and their files queued.
func collectEvent(watcher *fsnotify.Watcher, root string, ev fsnotify.Event, pending map[string]bool) {
	if ev.Op == fsnotify.Chmod {
		return
	}
	rel, err := filepath.Rel(root, ev.Name)
	if err != nil {
		return
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if scanner.SkipDir(info.Name()) {
				return
			}
			if err := watchTree(watcher, ev.Name); err != nil {
				log.Warningf("%s", err)
			}
			_ = filepath.WalkDir(ev.Name, func(p string, d fs.DirEntry, err error) error {
				if err == nil && !d.IsDir() {
					if r, err := filepath.Rel(root, p); err == nil {
						pending[filepath.ToSlash(r)] = true
					}
				}
				return nil
			})
			return
		}
	}
	pending[filepath.ToSlash(rel)] = true
}

// drainEvents collects whatever queued up while waiting on the limiter.
func drainEvents(watcher *fsnotify.Watcher, root string, pending map[string]bool) {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			collectEvent(watcher, root, ev, pending)
		default:
			return
		}
	}
}

// rescan scans paths, prints what changed since the last scan and updates
// known in place.
func rescan(ctx context.Context, w io.Writer, root string, paths []string, opts []attrib.Option, known map[string]attrib.Detections) error {
	result, err := attrib.ScanFiles(ctx, root, paths, opts...)
	if err != nil {
		return err
	}
	next := indexFiles(result.Files)

	var deltas []delta
	for _, p := range paths {
		after, ok := next[p]
		deltas = append(deltas, diffDetections(p, known[p], after)...)
		if ok && !after.Empty() {
			known[p] = after
		} else {
			delete(known, p)
		}
	}
	log.Debugf("rescanned %d files, %d deltas", len(paths), len(deltas))
	printDeltas(w, deltas)
	return nil
}

func indexFiles(files []attrib.FileResult) map[string]attrib.Detections {
	m := make(map[string]attrib.Detections, len(files))
	for _, f := range files {
		if !f.Empty() {
			m[f.Path] = f.Detections
		}
	}
	return m
}

// diffDetections compares attribution texts per kind. Line moves alone are
// not deltas.
func diffDetections(path string, before, after attrib.Detections) []delta {
	var out []delta
	diff := func(kind string, old, cur []string) {
		oldSet := counts(old)
		curSet := counts(cur)
		for _, t := range cur {
			if oldSet[t] > 0 {
				oldSet[t]--
				continue
			}
			out = append(out, delta{Path: path, Kind: kind, Text: t, Added: true})
		}
		for _, t := range old {
			if curSet[t] > 0 {
				curSet[t]--
				continue
			}
			out = append(out, delta{Path: path, Kind: kind, Text: t})
		}
	}
	diff("copyright", copyrightTexts(before), copyrightTexts(after))
	diff("holder", holderTexts(before), holderTexts(after))
	diff("author", authorTexts(before), authorTexts(after))
	return out
}

func counts(texts []string) map[string]int {
	m := make(map[string]int, len(texts))
	for _, t := range texts {
		m[t]++
	}
	return m
}

func copyrightTexts(d attrib.Detections) []string {
	out := make([]string, len(d.Copyrights))
	for i, c := range d.Copyrights {
		out[i] = c.Copyright
	}
	return out
}

func holderTexts(d attrib.Detections) []string {
	out := make([]string, len(d.Holders))
	for i, h := range d.Holders {
		out[i] = h.Holder
	}
	return out
}

func authorTexts(d attrib.Detections) []string {
	out := make([]string, len(d.Authors))
	for i, a := range d.Authors {
		out[i] = a.Author
	}
	return out
}

func printDeltas(w io.Writer, deltas []delta) {
	color := func(code, text string) string {
		if flagNoColor {
			return text
		}
		return code + text + "\033[0m"
	}
	for _, d := range deltas {
		sign := color("\033[31m", "-")
		if d.Added {
			sign = color("\033[32m", "+")
		}
		fmt.Fprintf(w, "%s %s %-9s %s\n", sign, d.Path, d.Kind, d.Text)
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
