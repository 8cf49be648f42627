package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
)

var (
	flagFormat  string
	flagOutput  string
	flagWorkers int
	flagRules   string
	flagNoColor bool
	flagConfig  string
	flagVerbose int
	flagLogFile string
)

var log = commonlog.GetLogger("attrib.cli")

// settings layers --config, ATTRIB_* variables and the bound persistent
// flags. Project files (.attrib.yml) sit below all three.
var settings *viper.Viper

// boundFlags are the persistent flags also read from the environment and
// the --config file.
var boundFlags = []string{"format", "output", "workers", "rules", "no-color"}

var rootCmd = &cobra.Command{
	Use:   "attrib",
	Short: "Copyright, holder and author detection for source trees",
	Long: `attrib finds copyright statements, rights holders and authors in source
files, tracks attribution drift against a baseline, and explains how each
detection was parsed.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "terminal", "Output format (terminal, json, markdown, html)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Number of worker goroutines (default: NumCPU)")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Directory with extra lexicon, grammar and junk tables")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file for the flags above (YAML, TOML or JSON)")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "Show holders and unchanged files; repeat for more log detail")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	settings = newSettings()
}

func newSettings() *viper.Viper {
	v := viper.New()
	for _, name := range boundFlags {
		_ = v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	v.SetEnvPrefix("ATTRIB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup configures logging and resolves the bound flags through viper so
// that ATTRIB_FORMAT and friends apply when the flag was not given.
func setup(cmd *cobra.Command, args []string) error {
	var logPath *string
	if flagLogFile != "" {
		logPath = &flagLogFile
	}
	commonlog.Configure(flagVerbose, logPath)

	if flagConfig != "" {
		settings.SetConfigFile(flagConfig)
		if err := settings.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", flagConfig, err)
		}
	}

	flagFormat = settings.GetString("format")
	flagOutput = settings.GetString("output")
	flagWorkers = settings.GetInt("workers")
	flagRules = settings.GetString("rules")
	flagNoColor = settings.GetBool("no-color")

	if os.Getenv("NO_COLOR") != "" {
		flagNoColor = true
	}
	if flagWorkers < 0 {
		return fmt.Errorf("--workers must not be negative, got %d", flagWorkers)
	}
	return nil
}

// explicit reports whether a bound setting came from a flag, the
// environment or --config rather than its default.
func explicit(name string) bool {
	return settings.IsSet(name)
}
