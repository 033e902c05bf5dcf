package rule

import "fmt"

// ValidationError is a file-level problem in a YAML rule file,
// such as an unsupported version or no rules at all.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// RuleError is a problem with a single rule in a YAML rule file.
type RuleError struct {
	Index   int    // 0-based position of the rule in the file
	Title   string // may be empty
	Field   string
	Message string
	Cause   error
}

func (e *RuleError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("rule %q: %s: %s", e.Title, e.Field, e.Message)
	}
	return fmt.Sprintf("rule[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *RuleError) Unwrap() error {
	return e.Cause
}
