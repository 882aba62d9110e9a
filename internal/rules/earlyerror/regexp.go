package earlyerror

import (
	"estlint/internal/ast"
	"estlint/internal/diag"
	"estlint/internal/lint"
)

// checkRegExpLiteral rejects the one flag combination the language
// forbids outright: u (unicode) together with v (unicode sets).
func checkRegExpLiteral(node ast.NodeID, rctx *lint.Context) {
	re, ok := rctx.Tree().Regexp(node)
	if !ok {
		return
	}
	if re.Flags.Has(ast.FlagU | ast.FlagV) {
		diag.ReportError(rctx.Reporter(), diag.EERegExpDualFlags, rctx.Span(node),
			"The 'u' and 'v' regular expression flags cannot be enabled at the same time").
			Emit()
	}
}
