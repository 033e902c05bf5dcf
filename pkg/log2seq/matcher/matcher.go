package matcher

import (
	"log/slog"
	"sort"

	"github.com/log2seq/log2seq-go/pkg/log2seq/rule"
)

// Event is one rule matching one log line.
type Event struct {
	Src   string `json:"src"`
	Dst   string `json:"dst"`
	Title string `json:"title"`

	// Line is the 0-based index of the line among non-blank lines.
	Line int `json:"line"`

	// SourceLine is the 0-based index of the line in the original text.
	SourceLine int `json:"source_line"`

	// LineText is the matched line as it appeared in the log.
	LineText string `json:"line_text"`

	// Rule is the declaration index of the rule that matched.
	Rule int `json:"rule"`
}

// Compiled is the outcome of compiling one rule.
// Exactly one of a usable pattern or Err is present, except for rules with
// an empty pattern, which have neither and never match.
type Compiled struct {
	Rule  rule.Rule
	Index int
	Err   error

	pattern pattern
}

// OK reports whether the rule can match anything.
func (c Compiled) OK() bool {
	return c.pattern != nil
}

// Set is a compiled rule set. It is immutable and safe for concurrent use.
type Set struct {
	rules []Compiled
	log   *slog.Logger
}

// Compile compiles every rule in declaration order.
// It never fails: a rule whose pattern does not compile is kept with its
// error, logged at warn level, and skipped during matching.
func Compile(rules []rule.Rule, opts ...Option) *Set {
	cfg := applyOptions(opts)

	compiled := make([]Compiled, len(rules))
	for i, r := range rules {
		compiled[i] = Compiled{Rule: r, Index: i}

		if r.Match == "" {
			cfg.logger.Debug("rule has empty pattern, skipping", "rule", i, "title", r.Title)
			continue
		}

		p, err := compilePattern(cfg.dialect, r.Match, cfg.timeout)
		if err != nil {
			perr := &PatternError{Op: OpCompile, Index: i, Title: r.Title, Pattern: r.Match, Cause: err}
			cfg.logger.Warn("invalid rule pattern",
				"rule", i,
				"title", r.Title,
				"pattern", r.Match,
				"dialect", cfg.dialect.String(),
				"error", err,
			)
			compiled[i].Err = perr
			continue
		}
		compiled[i].pattern = p
	}

	return &Set{rules: compiled, log: cfg.logger}
}

// Rules returns the per-rule compile results in declaration order.
func (s *Set) Rules() []Compiled {
	out := make([]Compiled, len(s.rules))
	copy(out, s.rules)
	return out
}

// Warnings returns the compile failures as *PatternError values.
func (s *Set) Warnings() []error {
	var errs []error
	for _, c := range s.rules {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	return errs
}

// Len returns the number of rules, usable or not.
func (s *Set) Len() int {
	return len(s.rules)
}

// Match splits text into lines and matches them. See MatchLines.
func (s *Set) Match(text string) []Event {
	events, _ := s.MatchLines(SplitLines(text))
	return events
}

// MatchLines evaluates every usable rule against every non-blank line, lines
// in document order and rules in declaration order, and returns one event per
// match.
//
// Evaluation failures (ECMAScript timeouts) count as no match. Each failing
// rule is logged and reported once in the returned errors as a *PatternError
// with Op == OpMatch.
func (s *Set) MatchLines(lines []Line) ([]Event, []error) {
	var (
		events []Event
		errs   []error
		failed map[int]bool
	)

	for _, line := range lines {
		if line.Blank() {
			continue
		}
		for _, c := range s.rules {
			if c.pattern == nil {
				continue
			}
			ok, err := c.pattern.match(line.Text)
			if err != nil {
				if failed == nil {
					failed = make(map[int]bool)
				}
				if !failed[c.Index] {
					failed[c.Index] = true
					s.log.Warn("rule pattern evaluation failed",
						"rule", c.Index,
						"title", c.Rule.Title,
						"line", line.Source+1,
						"error", err,
					)
					errs = append(errs, &PatternError{
						Op:      OpMatch,
						Index:   c.Index,
						Title:   c.Rule.Title,
						Pattern: c.Rule.Match,
						Cause:   err,
					})
				}
				continue
			}
			if !ok {
				continue
			}
			events = append(events, Event{
				Src:        c.Rule.Src,
				Dst:        c.Rule.Dst,
				Title:      c.Rule.Title,
				Line:       line.Index,
				SourceLine: line.Source,
				LineText:   line.Text,
				Rule:       c.Index,
			})
		}
	}
	return events, errs
}

// MatchedLines returns the original line indices of the lines in text that
// matched at least one rule.
func (s *Set) MatchedLines(text string) map[int]struct{} {
	return MatchedLines(s.Match(text))
}

// MatchedLines collects the distinct SourceLine values of events.
// The result is never nil.
func MatchedLines(events []Event) map[int]struct{} {
	set := make(map[int]struct{}, len(events))
	for _, ev := range events {
		set[ev.SourceLine] = struct{}{}
	}
	return set
}

// SortedLines returns the members of a line set in ascending order.
// The result is never nil.
func SortedLines(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
