package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("decode")
	time.Sleep(time.Millisecond)
	timer.End(idx, "nodes=3")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("phases = %d, want 1", len(report.Phases))
	}
	p := report.Phases[0]
	if p.Name != "decode" || p.Note != "nodes=3" {
		t.Errorf("phase = %+v, want decode/nodes=3", p)
	}
	if p.DurationMS <= 0 {
		t.Errorf("duration = %v, want > 0", p.DurationMS)
	}
	if report.TotalMS < p.DurationMS {
		t.Errorf("total %v < phase %v", report.TotalMS, p.DurationMS)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(5, "")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Errorf("phases = %d, want 0", len(got.Phases))
	}
}

func TestMergeSumsPhasesByName(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{
		{Name: "decode", DurationMS: 1},
		{Name: "lint", DurationMS: 2},
	}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{
		{Name: "lint", DurationMS: 4},
		{Name: "decode", DurationMS: 1},
	}}

	merged := Merge([]Report{a, b})
	if merged.TotalMS != 8 {
		t.Errorf("TotalMS = %v, want 8", merged.TotalMS)
	}
	if len(merged.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(merged.Phases))
	}
	// Порядок по первому появлению: decode, затем lint.
	if merged.Phases[0].Name != "decode" || merged.Phases[0].DurationMS != 2 {
		t.Errorf("phase[0] = %+v, want decode/2", merged.Phases[0])
	}
	if merged.Phases[1].Name != "lint" || merged.Phases[1].DurationMS != 6 {
		t.Errorf("phase[1] = %+v, want lint/6", merged.Phases[1])
	}
}

func TestSummaryListsEveryPhase(t *testing.T) {
	r := Report{TotalMS: 2.5, Phases: []PhaseReport{
		{Name: "load_source", DurationMS: 0.5},
		{Name: "lint", DurationMS: 2, Note: "diags=1"},
	}}
	out := r.Summary()
	for _, want := range []string{"load_source", "lint", "diags=1", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary() missing %q:\n%s", want, out)
		}
	}
}
