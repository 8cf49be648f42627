package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/garagon/attrib"
	"github.com/garagon/attrib/internal/config"
	"github.com/garagon/attrib/internal/output"
)

var (
	flagChanged     bool
	flagNoCredits   bool
	flagBaseline    string
	flagFailOnDrift bool
	flagMetricsFile string
	flagSummary     bool
)

// exit is swapped in tests.
var exit = os.Exit

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Scan a file or directory for copyrights, holders and authors",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&flagChanged, "changed", false, "Only scan git-changed files (staged, unstaged, untracked)")
	scanCmd.Flags().BoolVar(&flagNoCredits, "no-credits", false, "Treat CREDITS and AUTHORS files like any other file")
	scanCmd.Flags().StringVar(&flagBaseline, "baseline", "", "Compare with and update the attribution baseline at this path")
	scanCmd.Flags().BoolVar(&flagFailOnDrift, "fail-on-drift", false, "Exit with code 1 if any file's attributions changed since the baseline")
	scanCmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	scanCmd.Flags().BoolVar(&flagSummary, "summary", false, "Include the top holders summary")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	cfg := loadScanConfig(cmd, targetPath)
	if flagFailOnDrift && flagBaseline == "" {
		return fmt.Errorf("--fail-on-drift needs a baseline (--baseline or baseline: in %s)", config.FileNames[0])
	}

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	opts := scanOptions(cfg)
	if flagBaseline != "" {
		opts = append(opts, attrib.WithBaseline(flagBaseline))
	}
	if flagMetricsFile != "" {
		opts = append(opts, attrib.WithMetricsFile(flagMetricsFile))
	}

	var spinner *output.Spinner
	if showProgress() {
		spinner = output.NewSpinner(os.Stderr)
		spinner.Start("Scanning")
		opts = append(opts, attrib.WithProgress(spinner.Progress))
	}
	result, err := executeScan(ctx, targetPath, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	result.Target = targetPath

	if !flagSummary {
		result.Summary.TopHolders = nil
	}

	if err := writeOutput(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	return checkDrift(result)
}

// loadScanConfig merges the project file under the command line, the
// environment and --config.
func loadScanConfig(cmd *cobra.Command, targetPath string) config.Config {
	cfg, err := config.Load(targetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if !explicit("format") && cfg.Format != "" {
		flagFormat = cfg.Format
	}
	if !explicit("workers") && cfg.Workers > 0 {
		flagWorkers = cfg.Workers
	}
	if !explicit("rules") && cfg.Rules != "" {
		flagRules = cfg.Resolve(cfg.Rules)
	}
	if !cmd.Flags().Changed("no-credits") && !cfg.CreditsEnabled() {
		flagNoCredits = true
	}
	if !cmd.Flags().Changed("baseline") && cfg.Baseline != "" {
		flagBaseline = cfg.Resolve(cfg.Baseline)
	}
	if !cmd.Flags().Changed("summary") && cfg.Summary {
		flagSummary = true
	}
	if cfg.Path != "" {
		log.Debugf("using %s", cfg.Path)
	}
	return cfg
}

// scanOptions turns the resolved flags into library options.
func scanOptions(cfg config.Config) []attrib.Option {
	opts := []attrib.Option{attrib.WithWorkers(flagWorkers)}
	if flagRules != "" {
		opts = append(opts, attrib.WithCustomRules(flagRules))
	}
	if len(cfg.Ignore) > 0 {
		opts = append(opts, attrib.WithIgnorePatterns(cfg.Ignore))
	}
	if flagNoCredits {
		opts = append(opts, attrib.WithoutCredits())
	}
	if cfg.CacheSize > 0 {
		opts = append(opts, attrib.WithCacheSize(cfg.CacheSize))
	}
	return opts
}

// showProgress reports whether a spinner would land on a terminal.
func showProgress() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) && flagVerbose == 0
}

func contextWithInterrupt() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func executeScan(ctx context.Context, targetPath string, opts []attrib.Option) (*attrib.ScanResult, error) {
	if flagChanged {
		return scanChangedFiles(ctx, targetPath, opts)
	}
	result, err := attrib.Scan(ctx, targetPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return result, nil
}

func scanChangedFiles(ctx context.Context, targetPath string, opts []attrib.Option) (*attrib.ScanResult, error) {
	root := targetPath
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}
	changed, err := attrib.ChangedFiles(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("getting changed files: %w", err)
	}
	log.Debugf("%d changed files under %s", len(changed), root)
	result, err := attrib.ScanFiles(ctx, root, changed, opts...)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return result, nil
}

func writeOutput(stdout io.Writer, result *attrib.ScanResult) error {
	output.ToolVersion = Version

	formatter, err := output.New(flagFormat, flagNoColor, flagVerbose > 0)
	if err != nil {
		return err
	}

	w := stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return formatter.Format(w, result)
}

func checkDrift(result *attrib.ScanResult) error {
	if flagFailOnDrift && attrib.Drifted(result) {
		exit(1)
	}
	return nil
}
