package diag

import (
	"testing"
)

func TestReportSeverityHelpers(t *testing.T) {
	tests := []struct {
		name  string
		start func(Reporter) *ReportBuilder
		want  Severity
	}{
		{"error", func(r Reporter) *ReportBuilder {
			return ReportError(r, EEIllegalBreak, at(0, 0, 1), "msg")
		}, SevError},
		{"warning", func(r Reporter) *ReportBuilder {
			return ReportWarning(r, EELegacyOctal, at(0, 0, 1), "msg")
		}, SevWarning},
		{"info", func(r Reporter) *ReportBuilder {
			return ReportInfo(r, EEInfo, at(0, 0, 1), "msg")
		}, SevInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := NewBag(0)
			tt.start(BagReporter{Bag: bag}).Emit()
			if bag.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", bag.Len())
			}
			if got := bag.Items()[0].Severity; got != tt.want {
				t.Errorf("Severity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReportBuilderChain(t *testing.T) {
	bag := NewBag(0)
	edit := FixEdit{Span: at(0, 0, 3), NewText: "0o12"}
	ReportError(BagReporter{Bag: bag}, EELegacyOctal, at(0, 0, 3), "octal").
		WithNote(at(0, 5, 6), "context").
		WithHelp("use the '0o' prefix").
		WithFix("replace with '0o12'", edit).
		Emit()

	if bag.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Msg != "context" {
		t.Errorf("Notes = %+v, want one 'context' note", d.Notes)
	}
	if d.Help != "use the '0o' prefix" {
		t.Errorf("Help = %q", d.Help)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 || d.Fixes[0].Edits[0] != edit {
		t.Errorf("Fixes = %+v, want one fix carrying %+v", d.Fixes, edit)
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, EEIllegalBreak, at(0, 0, 1), "msg")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Errorf("Len() = %d after double Emit, want 1", bag.Len())
	}
}

func TestDedupReporterDropsExactRepeats(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})

	d := NewError(EERegExpDualFlags, at(0, 0, 5), "dup")
	r.Report(d)
	r.Report(d)
	// Другой спан — уже не дубликат.
	r.Report(NewError(EERegExpDualFlags, at(0, 6, 11), "dup"))

	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (one duplicate dropped)", bag.Len())
	}
}
