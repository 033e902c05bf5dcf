package rule

import (
	"errors"
	"fmt"
)

var (
	// ErrRowOutOfRange is returned by table edits addressing a missing row.
	ErrRowOutOfRange = errors.New("row out of range")

	// ErrUnknownField is returned for a column name that is not a rule field.
	ErrUnknownField = errors.New("unknown field")
)

// AddRow returns a copy of rules with an empty rule appended.
func AddRow(rules []Rule) []Rule {
	out := make([]Rule, len(rules), len(rules)+1)
	copy(out, rules)
	return append(out, Rule{})
}

// UpdateCell returns a copy of rules with field f of rule row set to value.
func UpdateCell(rules []Rule, row int, f Field, value string) ([]Rule, error) {
	if row < 0 || row >= len(rules) {
		return nil, fmt.Errorf("%w: %d (have %d rules)", ErrRowOutOfRange, row, len(rules))
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	if !out[row].set(f, value) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return out, nil
}

// DeleteRow returns a copy of rules without rule row.
func DeleteRow(rules []Rule, row int) ([]Rule, error) {
	if row < 0 || row >= len(rules) {
		return nil, fmt.Errorf("%w: %d (have %d rules)", ErrRowOutOfRange, row, len(rules))
	}
	out := make([]Rule, 0, len(rules)-1)
	out = append(out, rules[:row]...)
	return append(out, rules[row+1:]...), nil
}
