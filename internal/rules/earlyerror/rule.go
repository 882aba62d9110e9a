// Package earlyerror checks the ECMAScript static semantics a
// context-free grammar cannot express: private-name scoping, legacy
// octal numerals and escapes in strict mode, exclusive regexp flags,
// and break/continue target resolution.
//
// Каждая проверка — чистая функция от узла и его цепочки предков;
// дерево никогда не мутируется, порядок обхода узлов не важен.
package earlyerror

import (
	"estlint/internal/ast"
	"estlint/internal/lint"
)

// Rule is the single always-on rule of this linter.
type Rule struct{}

func New() Rule { return Rule{} }

func (Rule) Name() string { return "early-error" }

// Run routes the six node kinds of interest to their validators. Every
// other kind is a no-op.
func (Rule) Run(node ast.NodeID, rctx *lint.Context) {
	switch rctx.Kind(node) {
	case ast.KindPrivateIdentifier:
		checkPrivateIdentifier(node, rctx)
	case ast.KindNumericLiteral:
		checkNumericLiteral(node, rctx)
	case ast.KindStringLiteral:
		checkStringLiteral(node, rctx)
	case ast.KindRegExpLiteral:
		checkRegExpLiteral(node, rctx)
	case ast.KindBreakStatement:
		checkJump(node, rctx, jumpBreak)
	case ast.KindContinueStatement:
		checkJump(node, rctx, jumpContinue)
	}
}
