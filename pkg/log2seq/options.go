package log2seq

import (
	"log/slog"
	"time"

	"github.com/log2seq/log2seq-go/pkg/log2seq/diagram"
	"github.com/log2seq/log2seq-go/pkg/log2seq/matcher"
)

// Option configures a generation pass using the functional options pattern.
type Option func(*config)

type config struct {
	annotations  bool
	dialect      matcher.Dialect
	matchTimeout time.Duration
	logger       *slog.Logger
}

func defaultConfig() *config {
	return &config{
		annotations:  true,
		dialect:      matcher.DialectECMAScript,
		matchTimeout: matcher.DefaultMatchTimeout,
	}
}

func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (c *config) matcherOptions() []matcher.Option {
	return []matcher.Option{
		matcher.WithDialect(c.dialect),
		matcher.WithMatchTimeout(c.matchTimeout),
		matcher.WithLogger(c.logger),
	}
}

func (c *config) diagramOptions() []diagram.Option {
	return []diagram.Option{diagram.WithLineAnnotations(c.annotations)}
}

// WithLineAnnotations controls the "L<n> : <line>" note after each message.
// Default: true.
func WithLineAnnotations(on bool) Option {
	return func(c *config) {
		c.annotations = on
	}
}

// WithDialect selects the regex engine for rule patterns.
// Default: matcher.DialectECMAScript.
func WithDialect(d matcher.Dialect) Option {
	return func(c *config) {
		c.dialect = d
	}
}

// WithMatchTimeout bounds each ECMAScript pattern evaluation.
// Default: matcher.DefaultMatchTimeout.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *config) {
		c.matchTimeout = d
	}
}

// WithLogger sets a logger for rule diagnostics (invalid patterns, dropped
// CSV records). If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
