package matcher

import (
	"io"
	"log/slog"
	"time"
)

// DefaultMatchTimeout bounds a single ECMAScript evaluation of one rule
// against one line.
const DefaultMatchTimeout = 100 * time.Millisecond

// Option configures Compile.
type Option func(*config)

type config struct {
	dialect Dialect
	timeout time.Duration
	logger  *slog.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func applyOptions(opts []Option) *config {
	cfg := &config{
		dialect: DialectECMAScript,
		timeout: DefaultMatchTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger
	}
	return cfg
}

// WithDialect selects the regex engine. Default: DialectECMAScript.
func WithDialect(d Dialect) Option {
	return func(c *config) {
		c.dialect = d
	}
}

// WithMatchTimeout bounds each ECMAScript evaluation. Zero or negative
// disables the bound. Ignored by DialectRE2, which always runs in linear time.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithLogger sets the logger for pattern warnings.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
