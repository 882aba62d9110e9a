package ast

import (
	"estlint/internal/source"
)

// JumpNode is the payload shared by break and continue statements.
// Label is NoStringID for the unlabeled form; LabelSpan then stays zero.
type JumpNode struct {
	Label     source.StringID
	LabelSpan source.Span
}

// Labeled reports whether the jump names a label.
func (j *JumpNode) Labeled() bool {
	return j.Label != source.NoStringID
}

// LabeledNode is the payload of a labeled statement. Body points at the
// statement the label is attached to; for stacked labels that is the
// next labeled statement down.
type LabeledNode struct {
	Label     source.StringID
	LabelSpan source.Span
	Body      NodeID
}

// LabeledBodyKind resolves the kind of the statement a label ultimately
// denotes, unwrapping stacked labels. `a: b: while(x);` denotes the
// while for both a and b.
func (t *Tree) LabeledBodyKind(id NodeID) Kind {
	for {
		labeled, ok := t.Labeled(id)
		if !ok || !labeled.Body.IsValid() {
			return KindNone
		}
		kind := t.Kind(labeled.Body)
		if kind != KindLabeledStatement {
			return kind
		}
		id = labeled.Body
	}
}
