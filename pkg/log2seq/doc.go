// Package log2seq turns log text into a Mermaid sequence diagram using a
// table of regular-expression rules.
//
// Each rule has a title, a pattern, a source participant and a destination
// participant. Every log line is tested against every rule in declaration
// order; each match becomes one message from source to destination.
//
// # Basic Usage
//
//	rules := `title,match,src,dst
//	access,Component1 func:,Client,Web Server
//	request,Component2 func:.* str=abc,Web Server,API Server`
//
//	text := log2seq.GenerateDiagram(rules, logText)
//	// sequenceDiagram
//	//     participant Client
//	//     participant Web Server
//	//     ...
//
// To highlight which lines of the original text matched:
//
//	for i := range log2seq.MatchedLineIndices(rules, logText) {
//	    // i is a 0-based index into strings.Split(logText, "\n")
//	}
//
// [Generate] computes the diagram, events, participants and matched lines in
// one pass and also reports rules whose patterns could not be used.
//
// # Errors
//
// None of the functions in this package fail. Malformed rule rows get empty
// fields, invalid patterns disable only their own rule (see [WithLogger] and
// [Result.Warnings]), and empty input produces empty output.
//
// # Subpackages
//
//   - [rule]: CSV and YAML rule parsing and table editing
//   - [matcher]: pattern compilation and line matching
//   - [diagram]: Mermaid text generation
package log2seq
