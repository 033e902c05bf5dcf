package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/log2seq/log2seq-go/pkg/log2seq"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log2seq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Diagram.Annotations)
	assert.Equal(t, "ecmascript", cfg.Match.Dialect)
	assert.Equal(t, 100*time.Millisecond, cfg.Match.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 50.0, cfg.Server.RateLimit)
	assert.Equal(t, 100, cfg.Server.RateBurst)
	assert.Equal(t, "*.log", cfg.Logs.Glob)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
diagram:
  annotations: false
match:
  dialect: re2
  timeout: 250ms
server:
  addr: "127.0.0.1:9000"
logs:
  dir: /var/log/app
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Diagram.Annotations)
	assert.Equal(t, "re2", cfg.Match.Dialect)
	assert.Equal(t, 250*time.Millisecond, cfg.Match.Timeout)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "/var/log/app", cfg.Logs.Dir)
	// Unset keys keep their defaults.
	assert.Equal(t, "*.log", cfg.Logs.Glob)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9000\"\n")
	t.Setenv("LOG2SEQ_SERVER__ADDR", ":7000")
	t.Setenv("LOG2SEQ_MATCH__TIMEOUT", "5s")
	t.Setenv("LOG2SEQ_DIAGRAM__ANNOTATIONS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Match.Timeout)
	assert.False(t, cfg.Diagram.Annotations)
}

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown dialect", "match:\n  dialect: perl\n"},
		{"negative timeout", "match:\n  timeout: -1s\n"},
		{"zero body limit", "server:\n  max_body_bytes: 0\n"},
		{"negative rate limit", "server:\n  rate_limit: -1\n"},
		{"rate limit without burst", "server:\n  rate_limit: 5\n  rate_burst: 0\n"},
		{"bad yaml", "match: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestOptions(t *testing.T) {
	rules := "title,match,src,dst\nlook,a(?=b),A,B"

	cfg := Default()
	res := log2seq.Generate(rules, "ab", cfg.Options(nil)...)
	assert.Empty(t, res.Warnings)
	assert.Contains(t, res.Diagram, "Note over A,B: L1 : ab")

	cfg.Match.Dialect = "re2"
	cfg.Diagram.Annotations = false
	res = log2seq.Generate(rules, "ab", cfg.Options(nil)...)
	assert.Len(t, res.Warnings, 1)
	assert.Empty(t, res.Diagram)
}
