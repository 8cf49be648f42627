package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garagon/attrib"
)

var (
	flagLabel string
	flagKind  string
)

var rulesCmd = &cobra.Command{
	Use:     "rules",
	Aliases: []string{"list-rules"},
	Short:   "List lexicon and grammar table entries",
	Args:    cobra.NoArgs,
	RunE:    runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&flagLabel, "label", "", "Only entries producing this tag or label (e.g. YrRange, Copy)")
	rulesCmd.Flags().StringVar(&flagKind, "kind", "", "Only lexicon or grammar entries")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	kind := strings.ToLower(flagKind)
	if kind != "" && kind != "lexicon" && kind != "grammar" {
		return fmt.Errorf("invalid --kind %q (expected lexicon or grammar)", flagKind)
	}

	opts := []attrib.Option{attrib.WithKind(kind), attrib.WithLabel(flagLabel)}
	if flagRules != "" {
		opts = append(opts, attrib.WithCustomRules(flagRules))
	}
	infos, err := attrib.ListRules(opts...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		if infos == nil {
			infos = []attrib.RuleInfo{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "KIND\tINDEX\tLABEL\tPATTERN\n")
	fmt.Fprintf(tw, "----\t-----\t-----\t-------\n")
	for _, r := range infos {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Kind, r.Index, r.Label, r.Pattern)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d entries\n", len(infos))

	return nil
}
