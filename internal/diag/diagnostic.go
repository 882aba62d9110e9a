package diag

import (
	"estlint/internal/source"
)

// Note is a secondary labeled span attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is one text replacement; an empty NewText deletes the span.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a machine-applicable correction. Edits must not overlap.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one finding. Help carries optional remediation text
// rendered after the message; it is advice, not a second message.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Help     string
	Fixes    []Fix
}
