// Package diagnostics collects the row-level warnings and errors produced
// while a ledger export is cleaned. Diagnostics never abort a run.
package diagnostics

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity string

const (
	// Warning marks expected but incomplete input; the row was dropped.
	Warning Severity = "warning"

	// Error marks content that could not be interpreted at all.
	Error Severity = "error"
)

// Diagnostic is one recorded problem, keyed by its source line.
type Diagnostic struct {
	Line     int
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	if d.Line <= 0 {
		return fmt.Sprintf("[%s] %s", strings.ToUpper(string(d.Severity)), d.Message)
	}
	return fmt.Sprintf("[%s] line %d: %s", strings.ToUpper(string(d.Severity)), d.Line, d.Message)
}

// Collector accumulates diagnostics in the order they are reported.
// A Collector belongs to a single run and is not safe for concurrent use.
type Collector struct {
	items    []Diagnostic
	warnings int
	errors   int
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Warn records a warning for line.
func (c *Collector) Warn(line int, format string, args ...any) {
	c.add(Diagnostic{Line: line, Severity: Warning, Message: fmt.Sprintf(format, args...)})
}

// Error records an error for line.
func (c *Collector) Error(line int, format string, args ...any) {
	c.add(Diagnostic{Line: line, Severity: Error, Message: fmt.Sprintf(format, args...)})
}

func (c *Collector) add(d Diagnostic) {
	switch d.Severity {
	case Error:
		c.errors++
	default:
		c.warnings++
	}
	c.items = append(c.items, d)
}

// All returns a copy of every diagnostic.
func (c *Collector) All() []Diagnostic {
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of diagnostics recorded.
func (c *Collector) Len() int {
	return len(c.items)
}

// Count returns the number of diagnostics with the given severity.
func (c *Collector) Count(sev Severity) int {
	if sev == Error {
		return c.errors
	}
	return c.warnings
}

// ForLine returns the diagnostics recorded against line.
func (c *Collector) ForLine(line int) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.items {
		if d.Line == line {
			out = append(out, d)
		}
	}
	return out
}

// Preview returns at most limit diagnostics and how many were left out.
func (c *Collector) Preview(limit int) ([]Diagnostic, int) {
	if limit < 0 {
		limit = 0
	}
	if len(c.items) <= limit {
		return c.All(), 0
	}
	out := make([]Diagnostic, limit)
	copy(out, c.items[:limit])
	return out, len(c.items) - limit
}
