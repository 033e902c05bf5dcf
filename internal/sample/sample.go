// Package sample holds the demonstration rule table and log shown by
// "log2seq sample" and used when no input is given.
package sample

import (
	_ "embed"
	"strings"
)

//go:embed rules.csv
var rules string

//go:embed app.log
var appLog string

// Rules returns the sample rule table as CSV.
func Rules() string {
	return strings.TrimRight(rules, "\n")
}

// Log returns the sample log text.
func Log() string {
	return strings.TrimRight(appLog, "\n")
}
