package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/log2seq/log2seq-go/internal/logfinder"
	"github.com/log2seq/log2seq-go/internal/logsource"
	"github.com/log2seq/log2seq-go/pkg/log2seq/rule"
)

// loadRules reads a CSV or YAML rule file.
func loadRules(path string) ([]rule.Rule, error) {
	if path == "" {
		return nil, errors.New("--rules is required")
	}
	rules, err := rule.LoadFile(path)
	if err != nil {
		// Errors from the rule package are already sanitized (no path)
		return nil, fmt.Errorf("rules: %w", err)
	}
	return rules, nil
}

// logInput says where the log text comes from.
type logInput struct {
	path     string // "-" reads stdin
	dir      string // used when path is empty
	glob     string
	maxBytes int64
}

// readLog returns the log text. With no path, the newest file matching glob
// in dir (or $LOG2SEQ_LOGDIR) is read.
func readLog(ctx context.Context, in logInput, stdin io.Reader) (string, error) {
	switch in.path {
	case "-":
		return logsource.Read(ctx, stdin, in.maxBytes)
	case "":
		path, err := logfinder.Find(in.dir, in.glob)
		if err != nil {
			return "", fmt.Errorf("no log given (use --log or --log-dir): %w", err)
		}
		logger.Debug("using latest log file", "path", path)
		return logsource.ReadFile(ctx, path, in.maxBytes)
	default:
		return logsource.ReadFile(ctx, in.path, in.maxBytes)
	}
}
