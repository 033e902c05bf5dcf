package matcher

import "fmt"

// Operations reported in PatternError.Op.
const (
	OpCompile = "compile"
	OpMatch   = "match"
)

// PatternError reports a rule whose pattern could not be used.
// With Op == OpCompile the rule produced no events at all; with Op == OpMatch
// an evaluation failed (for example it timed out) and counted as no match.
type PatternError struct {
	Op      string
	Index   int // declaration index of the rule
	Title   string
	Pattern string
	Cause   error
}

func (e *PatternError) Error() string {
	verb := "invalid pattern"
	if e.Op == OpMatch {
		verb = "match failed for pattern"
	}
	if e.Title != "" {
		return fmt.Sprintf("rule %q: %s %q: %v", e.Title, verb, e.Pattern, e.Cause)
	}
	return fmt.Sprintf("rule[%d]: %s %q: %v", e.Index, verb, e.Pattern, e.Cause)
}

// Unwrap returns the engine error.
func (e *PatternError) Unwrap() error {
	return e.Cause
}
