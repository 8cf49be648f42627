package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garagon/attrib"
)

var flagText string

var explainCmd = &cobra.Command{
	Use:   "explain [file|-]",
	Short: "Show candidate lines, tokens, parse forest and detections for a text",
	Long: `Runs the detector on a file, standard input ("-" or no argument) or the
--text string and prints every step: the candidate line groups, each token
with its part-of-speech tag, the parse forest and the final detections.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&flagText, "text", "", "Explain this string instead of reading a file")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	text, err := explainInput(cmd, args)
	if err != nil {
		return err
	}

	var opts []attrib.Option
	if flagRules != "" {
		opts = append(opts, attrib.WithCustomRules(flagRules))
	}
	groups, err := attrib.Explain(text, opts...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch strings.ToLower(flagFormat) {
	case "json":
		if groups == nil {
			groups = []attrib.ExplainGroup{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	case "", "terminal":
		printExplain(w, groups)
		return nil
	default:
		return fmt.Errorf("explain supports terminal and json output, not %q", flagFormat)
	}
}

func explainInput(cmd *cobra.Command, args []string) (string, error) {
	if cmd.Flags().Changed("text") {
		if len(args) > 0 {
			return "", fmt.Errorf("--text does not accept a file argument")
		}
		return flagText, nil
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printExplain(w io.Writer, groups []attrib.ExplainGroup) {
	color := func(code, text string) string {
		if flagNoColor {
			return text
		}
		return code + text + "\033[0m"
	}
	bold := "\033[1m"
	dim := "\033[2m"
	cyan := "\033[36m"
	green := "\033[32m"

	if len(groups) == 0 {
		fmt.Fprintln(w, "No candidate lines.")
		return
	}

	for i, g := range groups {
		fmt.Fprintf(w, "\n%s\n", color(bold, fmt.Sprintf("Group %d", i+1)))

		fmt.Fprintf(w, "%s\n", color(dim, "Lines:"))
		for _, l := range g.Lines {
			fmt.Fprintf(w, "  %s %s\n", color(cyan, fmt.Sprintf("%4d", l.Number)), l.Text)
		}

		fmt.Fprintf(w, "%s\n", color(dim, "Tokens:"))
		for _, t := range g.Tokens {
			fmt.Fprintf(w, "  %4d  %-14s %s\n", t.StartLine, t.Tag.String(), t.Value)
		}

		fmt.Fprintf(w, "%s\n", color(dim, "Forest:"))
		for _, n := range g.Forest {
			fmt.Fprintf(w, "  %s\n", n)
		}

		fmt.Fprintf(w, "%s\n", color(dim, "Detections:"))
		if g.Detections.Empty() {
			fmt.Fprintln(w, "  (none)")
		}
		for _, c := range g.Detections.Copyrights {
			fmt.Fprintf(w, "  %s %s\n", color(green, "copyright"), c.Copyright)
		}
		for _, h := range g.Detections.Holders {
			fmt.Fprintf(w, "  %s %s\n", color(green, "holder   "), h.Holder)
		}
		for _, a := range g.Detections.Authors {
			fmt.Fprintf(w, "  %s %s\n", color(green, "author   "), a.Author)
		}
	}
	fmt.Fprintln(w)
}
