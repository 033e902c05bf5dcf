package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/log2seq/log2seq-go/pkg/log2seq"
)

var onlyMatched bool

var (
	lineNoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	matchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	markerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Print the log with matching lines highlighted",
	Long: `Print the log with line numbers, marking every line that matched at least
one rule. Line numbers count every line of the input, blank ones included.

Examples:
  log2seq highlight --rules rules.csv --log app.log
  log2seq highlight --rules rules.csv --log app.log --only-matched`,
	Args: cobra.NoArgs,
	RunE: runHighlight,
}

func init() {
	addRuleFlags(highlightCmd)
	highlightCmd.Flags().BoolVar(&onlyMatched, "only-matched", false,
		"Print matching lines only")

	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	opts, err := generateOptions(cmd)
	if err != nil {
		return err
	}
	rules, text, err := loadInputs(cmd)
	if err != nil {
		return err
	}

	res := log2seq.GenerateFromRules(rules, text, opts...)
	printWarnings(cmd.ErrOrStderr(), res.Warnings)
	return renderHighlight(cmd.OutOrStdout(), text, res.MatchedLineSet(), onlyMatched)
}

// renderHighlight writes text with 1-based line numbers. Lines whose 0-based
// index is in matched are marked and styled.
func renderHighlight(out io.Writer, text string, matched map[int]struct{}, onlyMatched bool) error {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	width := len(fmt.Sprint(len(lines)))

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		_, hit := matched[i]
		if onlyMatched && !hit {
			continue
		}

		num := lineNoStyle.Render(fmt.Sprintf("%*d", width, i+1))
		var err error
		if hit {
			_, err = fmt.Fprintf(out, "%s %s %s\n", num, markerStyle.Render(">"), matchedStyle.Render(line))
		} else {
			_, err = fmt.Fprintf(out, "%s   %s\n", num, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
