// Package diagram renders matched log events as Mermaid sequence diagram text.
//
// Output grammar, one statement per line:
//
//	sequenceDiagram
//	    participant <name>                  (one per participant, first-seen order)
//	    <src>->><dst>: <title>              (one per event, event order)
//	    Note over <src>,<dst>: L<n> : <line>  (after each message, when annotations are on)
//
// n is the 1-based position of the matched line among the non-blank lines of
// the log. Line breaks in titles and participant names become spaces, and
// titles and note text have "#" and ";" written as entity codes, so every
// statement stays on one line. The builder only guarantees this grammar; whether a given
// renderer accepts every participant name is up to the renderer.
package diagram

import (
	"strconv"
	"strings"

	"github.com/log2seq/log2seq-go/pkg/log2seq/matcher"
)

// Header opens every non-empty diagram.
const Header = "sequenceDiagram"

const indent = "    "

// Options controls Build output.
type Options struct {
	// LineAnnotations adds a note with the line number and text after each message.
	LineAnnotations bool
}

// Option configures Build.
type Option func(*Options)

// WithLineAnnotations enables or disables line annotations. Default: enabled.
func WithLineAnnotations(on bool) Option {
	return func(o *Options) {
		o.LineAnnotations = on
	}
}

// Build renders events as diagram text. No events yields "".
func Build(events []matcher.Event, opts ...Option) string {
	if len(events) == 0 {
		return ""
	}

	o := Options{LineAnnotations: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteByte('\n')

	for _, p := range Participants(events) {
		sb.WriteString(indent + "participant ")
		sb.WriteString(p)
		sb.WriteByte('\n')
	}

	for _, ev := range events {
		src, dst := participantName(ev.Src), participantName(ev.Dst)

		sb.WriteString(indent)
		sb.WriteString(src)
		sb.WriteString("->>")
		sb.WriteString(dst)
		sb.WriteString(": ")
		sb.WriteString(escapeText(ev.Title))
		sb.WriteByte('\n')

		if o.LineAnnotations {
			sb.WriteString(indent + "Note over ")
			sb.WriteString(src)
			if dst != src {
				sb.WriteByte(',')
				sb.WriteString(dst)
			}
			sb.WriteString(": ")
			sb.WriteString(Annotation(ev))
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// Annotation returns the note text for ev: "L<n> : <line text>", with n
// 1-based over non-blank lines and the text escaped for Mermaid.
func Annotation(ev matcher.Event) string {
	return "L" + strconv.Itoa(ev.Line+1) + " : " + escapeText(ev.LineText)
}

// Participants returns the distinct Src and Dst names of events in the order
// they are first seen, scanning Src then Dst of each event. Names are
// returned as Build writes them, with line breaks replaced by spaces.
func Participants(events []matcher.Event) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		name = participantName(name)
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, ev := range events {
		add(ev.Src)
		add(ev.Dst)
	}
	return out
}

// lineBreaks folds CR, LF and CRLF into a single space.
var lineBreaks = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
)

// textEscaper folds line breaks like lineBreaks and replaces the characters
// Mermaid gives meaning to inside message and note text with entity codes.
var textEscaper = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	"#", "#35;",
	";", "#59;",
)

func participantName(s string) string {
	return lineBreaks.Replace(s)
}

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
