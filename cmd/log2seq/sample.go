package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/log2seq/log2seq-go/internal/sample"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [rules|log]",
	Short: "Print the built-in sample rules and log",
	Long: `Print the built-in sample rules and log.

Save them to get started:
  log2seq sample rules > rules.csv
  log2seq sample log > app.log
  log2seq generate --rules rules.csv --log app.log`,
	ValidArgs: []string{"rules", "log"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			_, err := fmt.Fprintf(out, "# rules\n%s\n\n# log\n%s\n", sample.Rules(), sample.Log())
			return err
		}

		text := sample.Log()
		if args[0] == "rules" {
			text = sample.Rules()
		}
		_, err := fmt.Fprintln(out, text)
		return err
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
