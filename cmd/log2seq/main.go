// Command log2seq turns application logs into Mermaid sequence diagrams.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/log2seq/log2seq-go/internal/config"
)

var (
	// global flags
	configPath string
	verbose    bool

	// set up by PersistentPreRunE
	cfg    = config.Default()
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "log2seq",
	Short: "Turn application logs into Mermaid sequence diagrams",
	Long: `log2seq applies a table of rules to a log and renders every matching
line as a message in a Mermaid sequence diagram.

Each rule has four fields: title, match, src and dst. When a log line matches
the rule's regular expression, an arrow src->>dst labeled with the title is
added to the diagram.

Rules are read from CSV (header title,match,src,dst) or from a YAML rule file.

Settings are read from log2seq.yaml, a .env file and LOG2SEQ_* environment
variables. Flags take precedence.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging to stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c
	logger.Debug("configuration loaded",
		slog.String("dialect", cfg.Match.Dialect),
		slog.Duration("match_timeout", cfg.Match.Timeout),
		slog.Bool("annotations", cfg.Diagram.Annotations),
	)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
