package rule

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// Header is the CSV header row written by Format.
var Header = []string{string(FieldTitle), string(FieldMatch), string(FieldSrc), string(FieldDst)}

// Parse parses CSV rule text into rules in declaration order.
//
// The first non-blank record is the header. Fields are mapped by header name,
// so a header missing one of title, match, src or dst leaves that field empty
// on every rule. Empty or whitespace-only text returns an empty slice.
func Parse(text string) []Rule {
	rules, _ := ParseWithDiagnostics(text)
	return rules
}

// ParseWithDiagnostics is Parse that also returns the CSV errors of the
// records it dropped. The errors are informational; the returned rules are
// always usable.
func ParseWithDiagnostics(text string) ([]Rule, []error) {
	rules := []Rule{}
	if strings.TrimSpace(text) == "" {
		return rules, nil
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var (
		cols  columns
		diags []error
	)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				diags = append(diags, err)
				continue
			}
			diags = append(diags, err)
			break
		}
		if blankRecord(rec) {
			continue
		}
		if cols == nil {
			cols = headerColumns(rec)
			continue
		}
		rules = append(rules, cols.rule(rec))
	}
	return rules, diags
}

// Format writes rules as CSV text with the standard header.
// The output has no trailing newline.
func Format(rules []Rule) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	// Writing to a strings.Builder cannot fail.
	_ = w.Write(Header)
	for _, r := range rules {
		_ = w.Write(r.record())
	}
	w.Flush()
	return strings.TrimSuffix(sb.String(), "\n")
}

// columns maps each field to its position in a record.
type columns map[Field]int

func headerColumns(rec []string) columns {
	cols := make(columns, len(Fields))
	for i, name := range rec {
		f, err := ParseField(name)
		if err != nil {
			continue
		}
		if _, seen := cols[f]; !seen {
			cols[f] = i
		}
	}
	return cols
}

func (c columns) rule(rec []string) Rule {
	var r Rule
	for f, i := range c {
		if i < len(rec) {
			r.set(f, rec[i])
		}
	}
	return r
}

// blankRecord reports whether rec came from a whitespace-only line.
func blankRecord(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}
