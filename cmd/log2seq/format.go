package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/log2seq/log2seq-go/pkg/log2seq"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"mermaid": true,
	"json":    true,
}

// jsonResult is log2seq.Result with warnings as text.
type jsonResult struct {
	log2seq.Result
	Warnings []string `json:"warnings"`
}

// OutputResult writes res in the specified format to the writer.
func OutputResult(format string, res log2seq.Result, out io.Writer) error {
	switch format {
	case "mermaid":
		return OutputMermaid(res, out)
	case "json":
		return OutputJSON(res, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputMermaid writes the diagram text. Nothing is written when no line matched.
func OutputMermaid(res log2seq.Result, out io.Writer) error {
	if res.Diagram == "" {
		return nil
	}
	_, err := io.WriteString(out, res.Diagram)
	return err
}

// OutputJSON writes the full result as indented JSON.
func OutputJSON(res log2seq.Result, out io.Writer) error {
	data, err := json.MarshalIndent(jsonResult{Result: res, Warnings: res.WarningMessages()}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
