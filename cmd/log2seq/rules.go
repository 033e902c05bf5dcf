package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/log2seq/log2seq-go/pkg/log2seq/matcher"
	"github.com/log2seq/log2seq-go/pkg/log2seq/rule"
)

var (
	// rules flags
	writeBack bool
	newRule   rule.Rule
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and edit rule tables",
	Long: `Inspect and edit rule tables.

Rows are numbered from 1, not counting the header.`,
}

var rulesFmtCmd = &cobra.Command{
	Use:   "fmt FILE",
	Short: "Print a rule file as canonical CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadRules(args[0])
		if err != nil {
			return err
		}
		if writeBack {
			return writeRulesFile(args[0], rules)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), rule.Format(rules))
		return err
	},
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check that every rule is complete and its pattern compiles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadRules(args[0])
		if err != nil {
			return err
		}
		if err := validateRules(rules); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rules\n", len(rules))
		return err
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add FILE",
	Short: "Append a rule to a CSV rule file",
	Long: `Append a rule to a CSV rule file. The file is created if it does not exist.

Example:
  log2seq rules add rules.csv --title access --match 'Component1 func:' \
    --src Client --dst 'Web Server'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadEditable(args[0], true)
		if err != nil {
			return err
		}
		rules = rule.AddRow(rules)
		row := len(rules) - 1
		for _, f := range rule.Fields {
			if rules, err = rule.UpdateCell(rules, row, f, newRule.Get(f)); err != nil {
				return err
			}
		}
		return writeRulesFile(args[0], rules)
	},
}

var rulesSetCmd = &cobra.Command{
	Use:   "set FILE ROW FIELD VALUE",
	Short: "Change one field of one rule",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := parseRow(args[1])
		if err != nil {
			return err
		}
		field, err := rule.ParseField(args[2])
		if err != nil {
			return err
		}
		rules, err := loadEditable(args[0], false)
		if err != nil {
			return err
		}
		if rules, err = rule.UpdateCell(rules, row, field, args[3]); err != nil {
			return err
		}
		return writeRulesFile(args[0], rules)
	},
}

var rulesRmCmd = &cobra.Command{
	Use:   "rm FILE ROW",
	Short: "Delete one rule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := parseRow(args[1])
		if err != nil {
			return err
		}
		rules, err := loadEditable(args[0], false)
		if err != nil {
			return err
		}
		if rules, err = rule.DeleteRow(rules, row); err != nil {
			return err
		}
		return writeRulesFile(args[0], rules)
	},
}

var rulesConvertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Convert a YAML rule file to CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isYAML(args[0]) {
			return errors.New("convert expects a .yaml or .yml rule file")
		}
		rules, err := loadRules(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), rule.Format(rules))
		return err
	},
}

func init() {
	rulesFmtCmd.Flags().BoolVarP(&writeBack, "write", "w", false,
		"Rewrite the CSV file in place")
	rulesAddCmd.Flags().StringVar(&newRule.Title, "title", "", "Message label")
	rulesAddCmd.Flags().StringVar(&newRule.Match, "match", "", "Regular expression")
	rulesAddCmd.Flags().StringVar(&newRule.Src, "src", "", "Sending participant")
	rulesAddCmd.Flags().StringVar(&newRule.Dst, "dst", "", "Receiving participant")

	rulesCmd.AddCommand(rulesFmtCmd, rulesValidateCmd, rulesAddCmd,
		rulesSetCmd, rulesRmCmd, rulesConvertCmd)
	rootCmd.AddCommand(rulesCmd)
}

// validateRules applies the YAML rule file checks to any rule table and
// compiles every pattern in the configured dialect.
func validateRules(rules []rule.Rule) error {
	f := rule.File{Version: rule.SupportedVersion, Rules: rules}
	if err := f.Validate(); err != nil {
		return err
	}

	opts := []matcher.Option{matcher.WithLogger(logger), matcher.WithMatchTimeout(cfg.Match.Timeout)}
	if d, err := matcher.ParseDialect(cfg.Match.Dialect); err == nil {
		opts = append(opts, matcher.WithDialect(d))
	}
	return errors.Join(matcher.Compile(rules, opts...).Warnings()...)
}

// parseRow converts a 1-based row argument to a 0-based index.
func parseRow(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid row %q (rows start at 1)", s)
	}
	return n - 1, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// loadEditable loads a CSV rule file for editing. YAML files are rejected
// because rewriting them as CSV would change their format.
func loadEditable(path string, allowMissing bool) ([]rule.Rule, error) {
	if isYAML(path) {
		return nil, errors.New("only CSV rule files can be edited; use 'rules convert' first")
	}
	if allowMissing {
		if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
			return []rule.Rule{}, nil
		}
	}
	return loadRules(path)
}

func writeRulesFile(path string, rules []rule.Rule) error {
	if isYAML(path) {
		return errors.New("only CSV rule files can be rewritten")
	}
	if err := os.WriteFile(path, []byte(rule.Format(rules)+"\n"), 0644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
