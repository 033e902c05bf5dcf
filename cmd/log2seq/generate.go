package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/log2seq/log2seq-go/internal/sample"
	"github.com/log2seq/log2seq-go/pkg/log2seq"
	"github.com/log2seq/log2seq-go/pkg/log2seq/matcher"
	"github.com/log2seq/log2seq-go/pkg/log2seq/rule"
)

var (
	// generate flags
	rulesPath     string
	logPath       string
	logDir        string
	format        string
	dialect       string
	outputPath    string
	noAnnotations bool
	useSample     bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate a sequence diagram from a log",
	Long: `Apply a rule table to a log and print the resulting Mermaid sequence diagram.

Every (line, rule) match becomes one message, in log order and then rule
order. Rules whose pattern does not compile are skipped with a warning.

Examples:
  # CSV rules, explicit log file
  log2seq generate --rules rules.csv --log app.log

  # Read the log from stdin
  tail -n 500 app.log | log2seq generate --rules rules.yaml --log -

  # Newest *.log file in a directory, JSON output
  log2seq generate --rules rules.csv --log-dir /var/log/myapp --format json

  # Try it with the built-in sample
  log2seq generate --sample`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addRuleFlags(generateCmd)
	generateCmd.Flags().StringVarP(&format, "format", "f", "mermaid",
		"Output format: mermaid, json")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Write output to file instead of stdout")
	generateCmd.Flags().BoolVar(&noAnnotations, "no-annotations", false,
		"Omit the L<n> note after each message")

	rootCmd.AddCommand(generateCmd)
}

// addRuleFlags registers the input flags shared by generate and highlight.
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "",
		"Rule file (.csv, or .yaml/.yml)")
	cmd.Flags().StringVarP(&logPath, "log", "l", "",
		"Log file, or - for stdin")
	cmd.Flags().StringVarP(&logDir, "log-dir", "d", "",
		"Use the newest log file in this directory")
	cmd.Flags().StringVar(&dialect, "dialect", "",
		"Regex dialect: ecmascript, re2 (default from config)")
	cmd.Flags().BoolVar(&useSample, "sample", false,
		"Use the built-in sample rules and log")
	cmd.MarkFlagsMutuallyExclusive("log", "log-dir")
	_ = cmd.MarkFlagFilename("rules", "csv", "yaml", "yml")
	_ = cmd.MarkFlagFilename("log")
	_ = cmd.MarkFlagDirname("log-dir")
}

// loadInputs resolves the rules and log text from flags and config.
func loadInputs(cmd *cobra.Command) ([]rule.Rule, string, error) {
	if useSample {
		return rule.Parse(sample.Rules()), sample.Log(), nil
	}

	rules, err := loadRules(rulesPath)
	if err != nil {
		return nil, "", err
	}

	dir := logDir
	if dir == "" {
		dir = cfg.Logs.Dir
	}
	text, err := readLog(cmd.Context(), logInput{
		path:     logPath,
		dir:      dir,
		glob:     cfg.Logs.Glob,
		maxBytes: cfg.Logs.MaxBytes,
	}, cmd.InOrStdin())
	if err != nil {
		return nil, "", err
	}
	return rules, text, nil
}

// generateOptions layers flag overrides on the configured options.
func generateOptions(cmd *cobra.Command) ([]log2seq.Option, error) {
	opts := cfg.Options(logger)
	if dialect != "" {
		d, err := matcher.ParseDialect(dialect)
		if err != nil {
			return nil, err
		}
		opts = append(opts, log2seq.WithDialect(d))
	}
	if cmd.Flags().Changed("no-annotations") {
		opts = append(opts, log2seq.WithLineAnnotations(!noAnnotations))
	}
	return opts, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid --format %q (want mermaid or json)", format)
	}

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
	logger.Debug("diagram generated",
		"rules", len(rules),
		"events", len(res.Events),
		"participants", len(res.Participants),
	)

	if outputPath != "" {
		return writeOutputFile(outputPath, format, res)
	}
	if err := OutputResult(format, res, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	return nil
}

// writeOutputFile writes res to path. A failed Close is reported, since it
// can mean the data never reached the disk.
func writeOutputFile(path, format string, res log2seq.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := OutputResult(format, res, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("output error: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

func printWarnings(w io.Writer, warnings []error) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "warning: %v\n", warn)
	}
}
