package matcher

import (
	"strings"
	"unicode"
)

// Line is one line of log text.
type Line struct {
	// Text is the line without its newline or trailing carriage return.
	Text string

	// Source is the 0-based position in the original text, blank lines included.
	Source int

	// Index is the 0-based position among non-blank lines, or -1 for a blank line.
	Index int
}

// Blank reports whether the line is empty or holds only whitespace and
// byte order marks.
func (l Line) Blank() bool {
	return l.Index < 0
}

// SplitLines splits text on "\n" and numbers the lines.
// Empty text yields no lines.
func SplitLines(text string) []Line {
	if text == "" {
		return nil
	}

	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	next := 0
	for i, s := range raw {
		s = strings.TrimSuffix(s, "\r")
		idx := -1
		if strings.TrimFunc(s, blankRune) != "" {
			idx = next
			next++
		}
		lines[i] = Line{Text: s, Source: i, Index: idx}
	}
	return lines
}

func blankRune(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}
