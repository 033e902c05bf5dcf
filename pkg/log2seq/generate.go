package log2seq

import (
	"strings"

	"github.com/log2seq/log2seq-go/pkg/log2seq/diagram"
	"github.com/log2seq/log2seq-go/pkg/log2seq/matcher"
	"github.com/log2seq/log2seq-go/pkg/log2seq/rule"
)

// Result is the output of one generation pass.
type Result struct {
	// Diagram is the Mermaid text, or "" when nothing matched.
	Diagram string `json:"diagram"`

	// Events are the matches in document order, then rule order.
	Events []matcher.Event `json:"events"`

	// MatchedLines are the ascending 0-based indices, in the original text,
	// of lines that matched at least one rule.
	MatchedLines []int `json:"matched_lines"`

	// Participants are the participant names in declaration order.
	Participants []string `json:"participants"`

	// Warnings lists rules that could not be used, as *matcher.PatternError.
	Warnings []error `json:"-"`
}

// WarningMessages returns the text of each warning.
func (r Result) WarningMessages() []string {
	msgs := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		msgs[i] = w.Error()
	}
	return msgs
}

// MatchedLineSet returns MatchedLines as a set.
func (r Result) MatchedLineSet() map[int]struct{} {
	set := make(map[int]struct{}, len(r.MatchedLines))
	for _, i := range r.MatchedLines {
		set[i] = struct{}{}
	}
	return set
}

// ParseRules parses CSV rule text with the header title,match,src,dst.
// It never fails; see [rule.Parse].
func ParseRules(ruleText string) []rule.Rule {
	return rule.Parse(ruleText)
}

// GenerateDiagram returns the diagram text for ruleText applied to logText,
// with line annotations unless disabled by WithLineAnnotations(false).
// It returns "" when there are no rules, the log is blank or nothing matched.
//
// ECMAScript patterns are evaluated under a wall-clock bound (see
// WithMatchTimeout). An evaluation that runs out of time counts as no match,
// so for patterns near the bound the output can depend on machine load.
// WithMatchTimeout(0) removes the bound.
func GenerateDiagram(ruleText, logText string, opts ...Option) string {
	return Generate(ruleText, logText, opts...).Diagram
}

// MatchedLineIndices returns the 0-based indices, into the original log text
// split on newlines, of the lines that matched at least one rule.
// The result is never nil.
func MatchedLineIndices(ruleText, logText string, opts ...Option) map[int]struct{} {
	return Generate(ruleText, logText, opts...).MatchedLineSet()
}

// Generate parses ruleText and runs a full pass over logText.
func Generate(ruleText, logText string, opts ...Option) Result {
	cfg := applyOptions(opts)

	rules, diags := rule.ParseWithDiagnostics(ruleText)
	if cfg.logger != nil {
		for _, d := range diags {
			cfg.logger.Debug("skipped malformed rule record", "error", d)
		}
	}
	return generate(rules, logText, cfg)
}

// GenerateFromRules runs a full pass over logText with already-parsed rules,
// for example rules loaded with [rule.Load].
func GenerateFromRules(rules []rule.Rule, logText string, opts ...Option) Result {
	return generate(rules, logText, applyOptions(opts))
}

func generate(rules []rule.Rule, logText string, cfg *config) Result {
	res := Result{
		Events:       []matcher.Event{},
		MatchedLines: []int{},
		Participants: []string{},
	}
	if len(rules) == 0 || strings.TrimSpace(logText) == "" {
		return res
	}

	set := matcher.Compile(rules, cfg.matcherOptions()...)
	events, matchErrs := set.MatchLines(matcher.SplitLines(logText))

	res.Warnings = append(set.Warnings(), matchErrs...)
	if len(events) == 0 {
		return res
	}

	res.Events = events
	res.MatchedLines = matcher.SortedLines(matcher.MatchedLines(events))
	res.Participants = diagram.Participants(events)
	res.Diagram = diagram.Build(events, cfg.diagramOptions()...)
	return res
}
