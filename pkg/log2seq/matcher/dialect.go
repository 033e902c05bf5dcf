package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Dialect selects the regular expression engine used for rule patterns.
type Dialect int

const (
	// DialectECMAScript uses JavaScript RegExp semantics (backtracking,
	// lookaround, backreferences). Evaluations are bounded by the match timeout.
	DialectECMAScript Dialect = iota

	// DialectRE2 uses Go's regexp package.
	DialectRE2
)

// String returns the dialect name accepted by ParseDialect.
func (d Dialect) String() string {
	switch d {
	case DialectECMAScript:
		return "ecmascript"
	case DialectRE2:
		return "re2"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect converts a dialect name to a Dialect.
// Accepted names: ecmascript, js, re2, go. The empty string selects the default.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ecmascript", "js", "javascript":
		return DialectECMAScript, nil
	case "re2", "go":
		return DialectRE2, nil
	default:
		return 0, fmt.Errorf("unknown regex dialect %q (want ecmascript or re2)", s)
	}
}

// pattern is a compiled rule pattern.
type pattern interface {
	match(line string) (bool, error)
}

type re2Pattern struct {
	re *regexp.Regexp
}

func (p re2Pattern) match(line string) (bool, error) {
	return p.re.MatchString(line), nil
}

type ecmaPattern struct {
	re *regexp2.Regexp
}

func (p ecmaPattern) match(line string) (bool, error) {
	return p.re.MatchString(line)
}

func compilePattern(d Dialect, expr string, timeout time.Duration) (pattern, error) {
	switch d {
	case DialectRE2:
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		return re2Pattern{re: re}, nil
	case DialectECMAScript:
		re, err := regexp2.Compile(expr, regexp2.ECMAScript)
		if err != nil {
			return nil, err
		}
		if timeout > 0 {
			re.MatchTimeout = timeout
		}
		return ecmaPattern{re: re}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %v", d)
	}
}
