package diag

import "estlint/internal/source"

// Reporter receives diagnostics from analysis phases. Implementations
// decide storage: BagReporter appends to a Bag, NopReporter drops
// everything, DedupReporter filters repeats in front of another Reporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter appends every reported diagnostic to Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// ReportBuilder накапливает детали диагностики до единственного Emit.
type ReportBuilder struct {
	sink Reporter
	d    Diagnostic
	sent bool
}

// NewReportBuilder starts a diagnostic bound for r.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{sink: r, d: New(sev, code, primary, msg)}
}

// ReportError starts an error-severity diagnostic.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// ReportWarning starts a warning-severity diagnostic.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

// ReportInfo starts an info-severity diagnostic.
func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, primary, msg)
}

// WithNote attaches a secondary span with its own caption.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

// WithHelp sets the remediation advice.
func (b *ReportBuilder) WithHelp(help string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithHelp(help)
	}
	return b
}

// WithFix attaches a machine-applicable correction.
func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithFix(title, edits...)
	}
	return b
}

// Emit передаёт диагностику получателю; повторные вызовы — no-op.
func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	if b.sink != nil {
		b.sink.Report(b.d)
	}
}

// Diagnostic returns the accumulated value without emitting it.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.d
}
