package ast

import "github.com/glagolica/bukvar/span"

// Severity classifies a Diagnostic.
type Severity uint8

// Diagnostic severities. The Validator currently only emits Warning-level
// diagnostics (spec §4.6 describes checks, not fatal conditions), but the
// levels exist so future checks (e.g. a strict mode) have somewhere to
// escalate to.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String renders the severity as a short label.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a single Validator finding. Diagnostics borrow Span only;
// they never own node storage and are attached to a Document as a sibling
// list, never by mutating the tree (spec §3 "Lifecycle", §5 "Shared
// resources").
type Diagnostic struct {
	Severity Severity
	Span     span.Span
	Message  string
}
