package earlyerror

import (
	"fmt"

	"estlint/internal/ast"
	"estlint/internal/diag"
	"estlint/internal/lint"
)

// checkPrivateIdentifier resolves a #name occurrence against the class
// bodies that lexically enclose it.
//
// Выражение extends исполняется во внешней области видимости, поэтому
// приватные имена самого определяемого класса там не видны: обход
// предков обрывается на границе heritage целиком. Классы, собранные до
// границы, остаются кандидатами; классы за ней — нет.
func checkPrivateIdentifier(node ast.NodeID, rctx *lint.Context) {
	// Ключ элемента класса — место объявления, не ссылка.
	if rctx.ParentKind(node) == ast.KindPropertyKey {
		return
	}
	tree := rctx.Tree()
	ident, ok := tree.Ident(node)
	if !ok {
		return
	}

	var classes []*ast.ClassNode
	it := rctx.Ancestors(node)
	for id := it.Next(); id.IsValid(); id = it.Next() {
		kind := tree.Kind(id)
		if kind == ast.KindClassHeritage {
			break
		}
		if kind.IsClass() {
			if class, ok := tree.Class(id); ok {
				classes = append(classes, class)
			}
		}
	}

	name := rctx.Lookup(ident.Name)
	if len(classes) == 0 {
		diag.ReportError(rctx.Reporter(), diag.EEPrivateNotInClass, rctx.Span(node),
			fmt.Sprintf("Private identifier '#%s' is not allowed outside class bodies", name)).
			Emit()
		return
	}
	for _, class := range classes {
		if tree.DeclaresPrivateName(class, ident.Name) {
			return
		}
	}
	diag.ReportError(rctx.Reporter(), diag.EEPrivateUndeclared, rctx.Span(node),
		fmt.Sprintf("Private field '#%s' must be declared in an enclosing class", name)).
		Emit()
}
