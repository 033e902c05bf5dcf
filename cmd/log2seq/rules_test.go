package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/log2seq/log2seq-go/pkg/log2seq/rule"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"12", 11, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRow(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRules(t *testing.T) {
	good := []rule.Rule{{Title: "a", Match: "x(?=y)", Src: "A", Dst: "B"}}
	assert.NoError(t, validateRules(good))

	missing := []rule.Rule{{Title: "a", Match: "x", Src: "A"}}
	var ruleErr *rule.RuleError
	assert.ErrorAs(t, validateRules(missing), &ruleErr)

	broken := []rule.Rule{{Title: "bad", Match: "(", Src: "A", Dst: "B"}}
	err := validateRules(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `rule "bad"`)
}

func TestEditRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.csv")

	// add to a missing file creates it
	rules, err := loadEditable(path, true)
	require.NoError(t, err)
	assert.Empty(t, rules)

	rules = rule.AddRow(rules)
	rules, err = rule.UpdateCell(rules, 0, rule.FieldTitle, "access")
	require.NoError(t, err)
	require.NoError(t, writeRulesFile(path, rules))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title,match,src,dst\naccess,,,\n", string(data))

	_, err = loadEditable(path, false)
	require.NoError(t, err)

	_, err = loadEditable(filepath.Join(t.TempDir(), "gone.csv"), false)
	assert.Error(t, err)
}

func TestEditRulesFile_RejectsYAML(t *testing.T) {
	_, err := loadEditable("rules.yaml", true)
	assert.Error(t, err)
	assert.Error(t, writeRulesFile("rules.yml", nil))
}

func TestRulesCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.csv")

	_, err := execute(t, "rules", "add", path,
		"--title", "access", "--match", "Component1 func:", "--src", "Client", "--dst", "Web Server")
	require.NoError(t, err)
	_, err = execute(t, "rules", "add", path,
		"--title", "request", "--match", "Component2", "--src", "Web Server", "--dst", "API Server")
	require.NoError(t, err)

	_, err = execute(t, "rules", "set", path, "2", "dst", "DB")
	require.NoError(t, err)

	out, err := execute(t, "rules", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "title,match,src,dst\n"+
		"access,Component1 func:,Client,Web Server\n"+
		"request,Component2,Web Server,DB\n", out)

	out, err = execute(t, "rules", "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "ok: 2 rules\n", out)

	_, err = execute(t, "rules", "rm", path, "1")
	require.NoError(t, err)
	rules, err := rule.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "request", rules[0].Title)

	_, err = execute(t, "rules", "rm", path, "5")
	assert.ErrorIs(t, err, rule.ErrRowOutOfRange)

	_, err = execute(t, "rules", "set", path, "1", "color", "red")
	assert.ErrorIs(t, err, rule.ErrUnknownField)
}

func TestRulesConvert(t *testing.T) {
	out, err := execute(t, "rules", "convert", filepath.Join("..", "..", "pkg", "log2seq", "rule", "testdata", "valid.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "title,match,src,dst\n")

	_, err = execute(t, "rules", "convert", "rules.csv")
	assert.Error(t, err)
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCompletionCommand(t *testing.T) {
	assert.Equal(t, []string{"bash", "fish", "powershell", "zsh"}, shellNames())

	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "log2seq")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}
