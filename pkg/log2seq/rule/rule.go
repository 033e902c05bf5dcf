// Package rule parses and edits the rule table that maps log lines to
// sequence diagram messages.
//
// Rules are usually written as CSV with a header row:
//
//	title,match,src,dst
//	access,Component1 func:,Client,Web Server
//	request,Component2 func:.* str=abc,Web Server,API Server
//
// CSV parsing is lenient because the table is edited live: short rows get
// empty fields, blank rows are skipped and malformed records are dropped
// without failing the whole parse. YAML rule files (see [Load]) are strict
// and validated.
package rule

import "fmt"

// Rule maps log lines matching Match to a message from Src to Dst labelled Title.
type Rule struct {
	// Title is the message label.
	Title string `yaml:"title" json:"title"`

	// Match is a regular expression searched for anywhere in a log line.
	Match string `yaml:"match" json:"match"`

	// Src is the sending participant.
	Src string `yaml:"src" json:"src"`

	// Dst is the receiving participant.
	Dst string `yaml:"dst" json:"dst"`
}

// Field names a column of the rule table.
type Field string

// Rule table columns, in header order.
const (
	FieldTitle Field = "title"
	FieldMatch Field = "match"
	FieldSrc   Field = "src"
	FieldDst   Field = "dst"
)

// Fields lists the rule table columns in header order.
var Fields = []Field{FieldTitle, FieldMatch, FieldSrc, FieldDst}

// ParseField converts a column name to a Field.
// Names are case-sensitive, like the CSV header.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Get returns the value of field f.
func (r Rule) Get(f Field) string {
	switch f {
	case FieldTitle:
		return r.Title
	case FieldMatch:
		return r.Match
	case FieldSrc:
		return r.Src
	case FieldDst:
		return r.Dst
	}
	return ""
}

func (r *Rule) set(f Field, v string) bool {
	switch f {
	case FieldTitle:
		r.Title = v
	case FieldMatch:
		r.Match = v
	case FieldSrc:
		r.Src = v
	case FieldDst:
		r.Dst = v
	default:
		return false
	}
	return true
}

func (r Rule) record() []string {
	return []string{r.Title, r.Match, r.Src, r.Dst}
}
