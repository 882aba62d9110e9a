package diag

import "estlint/internal/source"

type seenKey struct {
	span source.Span
	code Code
	sev  Severity
	msg  string
}

// DedupReporter drops diagnostics that repeat an already-forwarded one
// exactly: same code, severity, primary span and message. Rules that
// revisit shared subtrees stay idempotent behind it.
type DedupReporter struct {
	next Reporter
	seen map[seenKey]struct{}
}

// NewDedupReporter wraps next with duplicate suppression.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[seenKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil || r.next == nil {
		return
	}
	key := seenKey{span: d.Primary, code: d.Code, sev: d.Severity, msg: d.Message}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(d)
}
