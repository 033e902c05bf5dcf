// Package config loads log2seq settings from an optional YAML file, a .env
// file and LOG2SEQ_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/log2seq/log2seq-go/internal/logfinder"
	"github.com/log2seq/log2seq-go/internal/logsource"
	"github.com/log2seq/log2seq-go/pkg/log2seq"
	"github.com/log2seq/log2seq-go/pkg/log2seq/matcher"
)

// EnvPrefix is the prefix of environment variables read into the config.
// A double underscore separates nested keys: LOG2SEQ_MATCH__TIMEOUT=50ms.
const EnvPrefix = "LOG2SEQ_"

// DefaultFile is read when no config path is given. It may be absent.
const DefaultFile = "log2seq.yaml"

type Config struct {
	Diagram DiagramConfig `koanf:"diagram"`
	Match   MatchConfig   `koanf:"match"`
	Server  ServerConfig  `koanf:"server"`
	Logs    LogsConfig    `koanf:"logs"`
}

type DiagramConfig struct {
	Annotations bool `koanf:"annotations"`
}

type MatchConfig struct {
	Dialect string        `koanf:"dialect"` // ecmascript, re2
	Timeout time.Duration `koanf:"timeout"`
}

type ServerConfig struct {
	Addr           string        `koanf:"addr"`
	MaxBodyBytes   int64         `koanf:"max_body_bytes"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	RateLimit      float64       `koanf:"rate_limit"` // requests per second, 0 = unlimited
	RateBurst      int           `koanf:"rate_burst"`
}

type LogsConfig struct {
	Dir      string `koanf:"dir"`
	Glob     string `koanf:"glob"`
	MaxBytes int64  `koanf:"max_bytes"`
}

var defaults = map[string]any{
	"diagram.annotations":    true,
	"match.dialect":          matcher.DialectECMAScript.String(),
	"match.timeout":          matcher.DefaultMatchTimeout,
	"server.addr":            ":8080",
	"server.max_body_bytes":  int64(1 << 20),
	"server.request_timeout": 10 * time.Second,
	"server.rate_limit":      50.0,
	"server.rate_burst":      100,
	"logs.glob":              logfinder.DefaultGlob,
	"logs.max_bytes":         logsource.DefaultMaxBytes,
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg, _ := load(koanf.New("."))
	return cfg
}

// Load reads the configuration. If path is empty, DefaultFile is used when it
// exists. An explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg, err := load(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(k *koanf.Koanf) (*Config, error) {
	for key, v := range defaults {
		if !k.Exists(key) {
			_ = k.Set(key, v)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := matcher.ParseDialect(c.Match.Dialect); err != nil {
		return fmt.Errorf("match.dialect: %w", err)
	}
	if c.Match.Timeout < 0 {
		return errors.New("match.timeout: must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes: must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server.request_timeout: must be positive")
	}
	if c.Server.RateLimit < 0 {
		return errors.New("server.rate_limit: must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return errors.New("server.rate_burst: must be at least 1 when rate_limit is set")
	}
	if c.Logs.MaxBytes <= 0 {
		return errors.New("logs.max_bytes: must be positive")
	}
	return nil
}

// Options converts the diagram and match settings to generation options.
// An unparsable dialect falls back to the default.
func (c *Config) Options(logger *slog.Logger) []log2seq.Option {
	dialect, err := matcher.ParseDialect(c.Match.Dialect)
	if err != nil {
		dialect = matcher.DialectECMAScript
	}
	return []log2seq.Option{
		log2seq.WithLineAnnotations(c.Diagram.Annotations),
		log2seq.WithDialect(dialect),
		log2seq.WithMatchTimeout(c.Match.Timeout),
		log2seq.WithLogger(logger),
	}
}
