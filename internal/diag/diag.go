// Package diag defines the structured diagnostics produced by the lexer and
// parser, and the reporter sinks they are pushed into. Diagnostics are data:
// the parser never signals failure through Go errors, it appends a variant
// here and keeps going.
package diag

import "github.com/kasumi-lint/kasumi/internal/source"

// Diag is one reported issue. Every variant carries the spans involved and
// any lexeme captures needed to render its message. Code returns the stable
// short identifier (part of the external contract); Message renders the
// human-readable text.
type Diag interface {
	Code() string
	Message() string
	// Span returns the variant's primary span for sorting and display.
	Span() source.Span
}

// Reporter receives diagnostics during a parse.
type Reporter interface {
	Report(d Diag)
}

// NullReporter discards everything.
type NullReporter struct{}

func (NullReporter) Report(Diag) {}

// Collector stores diagnostics for later inspection. Used by tests and by
// the external adapters that batch-convert diagnostics.
type Collector struct {
	Diags []Diag
}

func (c *Collector) Report(d Diag) {
	c.Diags = append(c.Diags, d)
}

// Reset drops all collected diagnostics.
func (c *Collector) Reset() {
	c.Diags = c.Diags[:0]
}

// Codes returns the codes of the collected diagnostics, in report order.
func (c *Collector) Codes() []string {
	codes := make([]string, 0, len(c.Diags))
	for _, d := range c.Diags {
		codes = append(codes, d.Code())
	}
	return codes
}
