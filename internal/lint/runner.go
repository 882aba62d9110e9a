package lint

import (
	"estlint/internal/ast"
	"estlint/internal/diag"
	"estlint/internal/source"
)

// Runner drives a fixed set of rules over one tree. The rule set is
// decided at construction; there is no dynamic registration.
type Runner struct {
	rules []Rule
}

func NewRunner(rules ...Rule) *Runner {
	return &Runner{rules: rules}
}

// Run visits every node of the tree exactly once, in arena order, and
// invokes each rule on it. Arena order is creation order (parents before
// children), but rules may not rely on that: each visit must stand on
// its own. Exact repeats of a finding are dropped before they reach the
// reporter.
func (r *Runner) Run(tree *ast.Tree, file *source.File, reporter diag.Reporter) {
	if tree == nil || file == nil {
		return
	}
	rctx := NewContext(tree, file, diag.NewDedupReporter(reporter))
	total := tree.Len()
	for i := uint32(1); i <= total; i++ {
		id := ast.NodeID(i)
		for _, rule := range r.rules {
			rule.Run(id, rctx)
		}
	}
}
