package earlyerror

import (
	"fmt"

	"estlint/internal/ast"
	"estlint/internal/diag"
	"estlint/internal/lint"
	"estlint/internal/source"
)

// jumpKind parameterizes the walk: switch qualifies an unlabeled break
// but never an unlabeled continue, and a labeled continue must resolve
// to a label that denotes an iteration statement.
type jumpKind uint8

const (
	jumpBreak jumpKind = iota
	jumpContinue
)

// checkJump resolves a break or continue target with one linear upward
// walk. Three terminal outcomes: valid, undefined label, or a boundary
// violation; тело функции и static-блок непрозрачны для прыжков в обе
// стороны.
func checkJump(node ast.NodeID, rctx *lint.Context, kind jumpKind) {
	tree := rctx.Tree()
	jump, ok := tree.Jump(node)
	if !ok {
		return
	}

	it := rctx.Ancestors(node)
	for id := it.Next(); id.IsValid(); id = it.Next() {
		switch k := tree.Kind(id); {
		case k == ast.KindProgram:
			// Дошли до корня: цели нет.
			if jump.Labeled() {
				diag.ReportError(rctx.Reporter(), diag.EEUndefinedLabel, jump.LabelSpan,
					"Use of undefined label").
					WithNote(jump.LabelSpan, "this label is used, but not defined").
					Emit()
			} else {
				reportMissingTarget(rctx, rctx.Span(node), kind)
			}
			return

		case k.IsFunction() || k == ast.KindStaticBlock:
			if jump.Labeled() {
				diag.ReportError(rctx.Reporter(), diag.EECrossBoundaryJump, jump.LabelSpan,
					"Jump target cannot cross function boundary").
					Emit()
			} else {
				reportMissingTarget(rctx, rctx.Span(node), kind)
			}
			return

		case k == ast.KindLabeledStatement && jump.Labeled():
			labeled, ok := tree.Labeled(id)
			if !ok || labeled.Label != jump.Label {
				continue
			}
			if kind == jumpContinue && !tree.LabeledBodyKind(id).IsIterationStatement() {
				name := rctx.Lookup(jump.Label)
				diag.ReportError(rctx.Reporter(), diag.EEContinueLabelNotLoop, rctx.Span(node),
					fmt.Sprintf("Illegal continue statement: '%s' does not denote an iteration statement", name)).
					WithNote(labeled.LabelSpan, "this label is attached to a non-iteration statement").
					Emit()
			}
			return

		case !jump.Labeled() && (k.IsIterationStatement() || (kind == jumpBreak && k == ast.KindSwitchStatement)):
			// Подходящая объемлющая конструкция найдена.
			return
		}
	}
}

func reportMissingTarget(rctx *lint.Context, span source.Span, kind jumpKind) {
	if kind == jumpBreak {
		diag.ReportError(rctx.Reporter(), diag.EEIllegalBreak, span,
			"Illegal break statement").
			WithHelp("A 'break' statement can only be used within an enclosing iteration or switch statement").
			Emit()
		return
	}
	diag.ReportError(rctx.Reporter(), diag.EEIllegalContinue, span,
		"Illegal continue statement: no surrounding iteration statement").
		WithHelp("A 'continue' statement can only be used within an enclosing 'for', 'while' or 'do while' statement").
		Emit()
}
