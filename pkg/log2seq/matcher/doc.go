// Package matcher runs an ordered rule set over log text.
//
// Each rule's pattern is compiled once per [Compile] call. A pattern that
// fails to compile disables only that rule; the failure is logged and kept
// as a [PatternError] in [Set.Warnings], and every other rule keeps matching.
//
// Log text is split on newlines. Blank lines never match, and lines carry two
// indices: [Line.Source], the position in the original text, and
// [Line.Index], the position among non-blank lines only. Diagram annotations
// number lines by the latter; highlighting uses the former.
//
// Patterns are searched for anywhere in a line (unanchored), case-sensitive,
// without multiline mode. Two dialects are available: [DialectECMAScript]
// (the default, JavaScript RegExp syntax including lookaround) and
// [DialectRE2] (Go's regexp package, linear time).
package matcher
