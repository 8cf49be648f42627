package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garagon/attrib/internal/update"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var flagCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "attrib %s (commit: %s)\n", Version, Commit)
		if !flagCheck {
			return
		}
		r := update.CheckLatest(context.Background(), Version, update.Repo)
		switch {
		case Version == "dev":
			fmt.Fprintln(w, "development build, skipping release check")
		case r == nil:
			fmt.Fprintln(w, "could not determine the latest release")
		case r.NeedsUpdate():
			fmt.Fprintf(w, "attrib %s is available: %s\n", r.Latest, r.InstallCmd)
		default:
			fmt.Fprintln(w, "up to date")
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
