package log2seq_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/log2seq/log2seq-go/pkg/log2seq"
	"github.com/log2seq/log2seq-go/pkg/log2seq/matcher"
)

const demoRules = `title,match,src,dst
access,Component1 func:,Client,Web Server
request,Component2 func:.* str=abc,Web Server,API Server
notify,Component3 func:.* str=abc,API Server,Web Server`

const demoLog = `Nov  2 12:34:56 : [12345678.012345] hogehoge function exec
Nov  2 12:34:56 : [12345678.012345] Component1 func:1245 hogehoge val 1
Nov  2 12:34:56 : [12345678.012345] hogehoge2 func exec
Nov  2 12:34:56 : [12345678.012345] Component2 func:1245 str=abc val 1
Nov  2 12:34:56 : [12345678.012345] Component2 func:1245 str=def val 2
Nov  2 12:34:56 : [12345678.012345] hogehoge function ret: 0
Nov  2 12:34:56 : [12345678.012345] Component3 str=abc val 1`

func TestGenerateDiagram_Demo(t *testing.T) {
	want := "sequenceDiagram\n" +
		"    participant Client\n" +
		"    participant Web Server\n" +
		"    participant API Server\n" +
		"    Client->>Web Server: access\n" +
		"    Note over Client,Web Server: L2 : Nov  2 12:34:56 : [12345678.012345] Component1 func:1245 hogehoge val 1\n" +
		"    Web Server->>API Server: request\n" +
		"    Note over Web Server,API Server: L4 : Nov  2 12:34:56 : [12345678.012345] Component2 func:1245 str=abc val 1\n"

	assert.Equal(t, want, log2seq.GenerateDiagram(demoRules, demoLog))
	assert.Equal(t, map[int]struct{}{1: {}, 3: {}}, log2seq.MatchedLineIndices(demoRules, demoLog))
}

func TestGenerateDiagram_SingleRuleExample(t *testing.T) {
	rules := "title,match,src,dst\naccess,Component1 func:,Client,Web Server"
	log := "foo\nComponent1 func:1245 val 1"

	assert.Equal(t, map[int]struct{}{1: {}}, log2seq.MatchedLineIndices(rules, log))

	got := log2seq.GenerateDiagram(rules, log)
	assert.Equal(t, "sequenceDiagram\n"+
		"    participant Client\n"+
		"    participant Web Server\n"+
		"    Client->>Web Server: access\n"+
		"    Note over Client,Web Server: L2 : Component1 func:1245 val 1\n", got)
}

func TestGenerate_BlankLineIndexAsymmetry(t *testing.T) {
	rules := "title,match,src,dst\nhit,HIT,A,B"
	log := "\n\n\nfirst\nsecond\nHIT at five"

	res := log2seq.Generate(rules, log)
	assert.Equal(t, []int{5}, res.MatchedLines)
	assert.Contains(t, res.Diagram, "L3 : HIT at five")
	assert.NotContains(t, res.Diagram, "L6")
}

func TestGenerate_EmptyInputs(t *testing.T) {
	tests := []struct {
		name  string
		rules string
		log   string
	}{
		{"no rules", "", demoLog},
		{"header only", "title,match,src,dst", demoLog},
		{"empty log", demoRules, ""},
		{"whitespace log", demoRules, "  \n\t\n"},
		{"no match", demoRules, "nothing here\nor here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "", log2seq.GenerateDiagram(tt.rules, tt.log))

			set := log2seq.MatchedLineIndices(tt.rules, tt.log)
			assert.NotNil(t, set)
			assert.Empty(t, set)

			res := log2seq.Generate(tt.rules, tt.log)
			assert.NotNil(t, res.Events)
			assert.NotNil(t, res.MatchedLines)
			assert.NotNil(t, res.Participants)
		})
	}
}

func TestGenerate_Pure(t *testing.T) {
	first := log2seq.Generate(demoRules, demoLog)
	for i := 0; i < 3; i++ {
		again := log2seq.Generate(demoRules, demoLog)
		assert.Equal(t, first.Diagram, again.Diagram)
		assert.Equal(t, first.MatchedLines, again.MatchedLines)
		assert.Equal(t, first.Events, again.Events)
	}
}

func TestGenerate_ParticipantOrderIsFirstSeen(t *testing.T) {
	// Rule declaration order (Zulu first) differs from first-seen order.
	rules := "title,match,src,dst\n" +
		"late,LATE,Zulu,Yankee\n" +
		"early,EARLY,Bravo,Alpha\n"
	log := "EARLY\nLATE"

	res := log2seq.Generate(rules, log)
	assert.Equal(t, []string{"Bravo", "Alpha", "Zulu", "Yankee"}, res.Participants)
	assert.True(t, strings.Index(res.Diagram, "participant Bravo") < strings.Index(res.Diagram, "participant Zulu"))
}

func TestGenerate_NMatchingRulesGiveNEvents(t *testing.T) {
	rules := "title,match,src,dst\n" +
		"third,c,C,A\n" +
		"first,a,A,B\n" +
		"second,b,B,C\n"

	res := log2seq.Generate(rules, "a b c")
	require.Len(t, res.Events, 3)
	assert.Equal(t, "third", res.Events[0].Title)
	assert.Equal(t, "first", res.Events[1].Title)
	assert.Equal(t, "second", res.Events[2].Title)
	assert.Equal(t, []int{0}, res.MatchedLines)
}

func TestGenerate_InvalidRegexIsIsolated(t *testing.T) {
	rules := "title,match,src,dst\n" +
		"bad,foo(,A,B\n" +
		"good,foo,A,B\n"

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	res := log2seq.Generate(rules, "foo\nbar\nfoo again", log2seq.WithLogger(logger))
	require.Len(t, res.Events, 2)
	assert.Equal(t, "good", res.Events[0].Title)
	assert.Equal(t, []int{0, 2}, res.MatchedLines)

	require.Len(t, res.Warnings, 1)
	var perr *matcher.PatternError
	require.True(t, errors.As(res.Warnings[0], &perr))
	assert.Equal(t, "bad", perr.Title)
	assert.Equal(t, []string{perr.Error()}, res.WarningMessages())
	assert.Contains(t, buf.String(), "invalid rule pattern")
}

func TestGenerate_WithoutAnnotations(t *testing.T) {
	got := log2seq.GenerateDiagram(demoRules, demoLog, log2seq.WithLineAnnotations(false))
	assert.NotContains(t, got, "Note over")
	assert.Contains(t, got, "    Client->>Web Server: access\n    Web Server->>API Server: request\n")
}

func TestGenerate_RE2Dialect(t *testing.T) {
	res := log2seq.Generate(demoRules, demoLog, log2seq.WithDialect(matcher.DialectRE2))
	assert.Equal(t, []int{1, 3}, res.MatchedLines)
	assert.Equal(t, log2seq.GenerateDiagram(demoRules, demoLog), res.Diagram)
}

func TestGenerate_PartialRowsNeverMatch(t *testing.T) {
	rules := "title,match,src,dst\naccess,Component1 func:,Client,Web Server\nhalf-typed"
	res := log2seq.Generate(rules, demoLog)
	assert.Len(t, res.Events, 1)
	assert.Empty(t, res.Warnings)
}

func TestGenerateFromRules(t *testing.T) {
	rules := log2seq.ParseRules(demoRules)
	require.Len(t, rules, 3)

	res := log2seq.GenerateFromRules(rules, demoLog)
	assert.Equal(t, log2seq.Generate(demoRules, demoLog).Diagram, res.Diagram)
}

func TestResult_MatchedLineSet(t *testing.T) {
	res := log2seq.Result{MatchedLines: []int{4, 1}}
	assert.Equal(t, map[int]struct{}{1: {}, 4: {}}, res.MatchedLineSet())
	assert.NotNil(t, log2seq.Result{}.MatchedLineSet())
}

func TestGenerateDiagram_FieldsCannotBreakStatements(t *testing.T) {
	rules := "title,match,src,dst\n" +
		"\"hello\nsequenceDiagram\",x,A,B\n" +
		"\"a;b\",y,C,D\n" +
		"t,z,\"E\nF\",G\n"

	want := "sequenceDiagram\n" +
		"    participant A\n" +
		"    participant B\n" +
		"    participant C\n" +
		"    participant D\n" +
		"    participant E F\n" +
		"    participant G\n" +
		"    A->>B: hello sequenceDiagram\n" +
		"    Note over A,B: L1 : x\n" +
		"    C->>D: a#59;b\n" +
		"    Note over C,D: L2 : y\n" +
		"    E F->>G: t\n" +
		"    Note over E F,G: L3 : z\n"

	res := log2seq.Generate(rules, "x\ny\nz")
	assert.Equal(t, want, res.Diagram)
	assert.Equal(t, []string{"A", "B", "C", "D", "E F", "G"}, res.Participants)
}

func TestGenerate_BOMOnlyLineIsBlank(t *testing.T) {
	rules := "title,match,src,dst\nhit,ping,A,B"
	res := log2seq.Generate(rules, "\ufeff\nping")

	assert.Equal(t, []int{1}, res.MatchedLines)
	assert.Contains(t, res.Diagram, "L1 : ping")
}

func TestGenerate_TimedOutEvaluationIsWarning(t *testing.T) {
	rules := "title,match,src,dst\nslow,(a+)+$,A,B\nfast,^a,B,A"
	line := strings.Repeat("a", 40) + "!"

	res := log2seq.Generate(rules, line, log2seq.WithMatchTimeout(time.Millisecond))

	require.Len(t, res.Events, 1)
	assert.Equal(t, "fast", res.Events[0].Title)
	require.Len(t, res.Warnings, 1)
	var perr *matcher.PatternError
	require.True(t, errors.As(res.Warnings[0], &perr))
	assert.Equal(t, matcher.OpMatch, perr.Op)
}
