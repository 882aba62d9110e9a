package observ

import (
	"fmt"
	"strings"
	"time"
)

// phase is one timed section of the check pipeline.
type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer измеряет фазы проверки одного файла (load_source, load_ast,
// decode, lint). Не для конкурентного использования: у каждого воркера
// свой Timer.
type Timer struct {
	phases []phase
}

// NewTimer возвращает пустой таймер.
func NewTimer() *Timer { return &Timer{phases: make([]phase, 0, 4)} }

// Begin opens a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase at idx and attaches an optional note
// ("nodes=181", "diags=2"). Out-of-range indexes are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	t.phases[idx].dur = time.Since(t.phases[idx].start)
	t.phases[idx].note = note
}

// PhaseReport is one phase of a finished Report.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report holds the measured phases of one file, durations in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the timer into its serializable form.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	out := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	for _, p := range t.phases {
		ms := millis(p.dur)
		out.Phases = append(out.Phases, PhaseReport{Name: p.name, DurationMS: ms, Note: p.note})
		out.TotalMS += ms
	}
	return out
}

// Summary renders the report one phase per line, total last.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	return b.String()
}

// Merge складывает пофайловые отчёты: фазы с одинаковым именем
// суммируются, порядок — по первому появлению. Заметки при слиянии
// теряют смысл и отбрасываются.
func Merge(reports []Report) Report {
	var merged Report
	index := make(map[string]int)
	for _, r := range reports {
		for _, p := range r.Phases {
			i, ok := index[p.Name]
			if !ok {
				i = len(merged.Phases)
				index[p.Name] = i
				merged.Phases = append(merged.Phases, PhaseReport{Name: p.Name})
			}
			merged.Phases[i].DurationMS += p.DurationMS
		}
		merged.TotalMS += r.TotalMS
	}
	return merged
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
