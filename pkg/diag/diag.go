// Package diag defines the diagnostic codes and collector used across the
// parser: CYP1xx syntax, CYP2xx feature-gate, CYP3xx semantic, CYP9xx
// internal.
package diag

import "github.com/orneryd/cypherlite/pkg/source"

// Code is a stable diagnostic identifier. Callers match on these, not on
// message text, though Message is still populated with a human-readable
// stable fragment.
type Code string

const (
	// CYP1xx — syntax.
	CodeUnexpectedTokens Code = "CYP100"
	CodeUnknownKeyword Code = "CYP101"

	// CYP2xx — feature gating (strict dialect).
	CodeExistsSubquery Code = "CYP201"
	CodeCallInTransactions Code = "CYP202"
	CodePatternComprehension Code = "CYP203"
	CodeUseClause Code = "CYP204"

	// CYP3xx — semantic.
	CodeOrdering Code = "CYP300"
	CodeDuplicateAlias Code = "CYP301"
	CodeDuplicateReturn Code = "CYP302"

	// CYP9xx — internal.
	CodeInternal Code = "CYP900"
)

// Severity classifies a diagnostic; only Error diagnostics block document
// construction when recover_errors is false.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one parser-reported finding with its source span.
type Diagnostic struct {
	Code Code
	Message string
	Span source.Span
	Severity Severity
}

// Collector accumulates diagnostics during parsing.
type Collector struct {
	items []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a diagnostic.
func (c *Collector) Add(code Code, message string, span source.Span) {
	c.items = append(c.items, Diagnostic{Code: code, Message: message, Span: span, Severity: SeverityError})
}

// AddWarning records a non-fatal diagnostic.
func (c *Collector) AddWarning(code Code, message string, span source.Span) {
	c.items = append(c.items, Diagnostic{Code: code, Message: message, Span: span, Severity: SeverityWarning})
}

// Diagnostics returns the diagnostics recorded so far, in emission order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.items
}

// HasErrors reports whether any SeverityError diagnostic was recorded.
func (c *Collector) HasErrors() bool {
	for _, d := range c.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
