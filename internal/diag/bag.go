package diag

import (
	"cmp"
	"slices"
)

// Bag accumulates the diagnostics of one file. A limit caps how many are
// stored; everything past it is counted instead of kept, so output stays
// bounded on pathological inputs.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag creates a Bag holding at most limit diagnostics.
// limit <= 0 means unlimited.
func NewBag(limit int) *Bag {
	return &Bag{limit: limit}
}

// Add stores d and reports whether it was kept. Диагностики сверх лимита
// не хранятся, но учитываются в Truncated.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Len counts stored diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Truncated counts diagnostics dropped over the limit.
func (b *Bag) Truncated() int { return b.dropped }

// Items exposes the stored diagnostics. The slice aliases the Bag's
// backing array; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether at least one stored diagnostic is an error.
func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool {
		return d.Severity >= SevError
	})
}

// HasWarnings reports whether at least one stored diagnostic is a warning.
func (b *Bag) HasWarnings() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool {
		return d.Severity == SevWarning
	})
}

// Counts tallies stored diagnostics by severity.
func (b *Bag) Counts() (errors, warnings, infos int) {
	for i := range b.items {
		switch b.items[i].Severity {
		case SevError:
			errors++
		case SevWarning:
			warnings++
		default:
			infos++
		}
	}
	return errors, warnings, infos
}

// Sort orders diagnostics by position, then severity (errors first),
// then code, so output is deterministic whatever the emission order was.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, compareDiagnostics)
}

func compareDiagnostics(a, z Diagnostic) int {
	if c := cmp.Compare(a.Primary.File, z.Primary.File); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Primary.Start, z.Primary.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Primary.End, z.Primary.End); c != 0 {
		return c
	}
	// На одной позиции ошибки идут раньше предупреждений.
	if c := cmp.Compare(z.Severity, a.Severity); c != 0 {
		return c
	}
	return cmp.Compare(a.Code, z.Code)
}
