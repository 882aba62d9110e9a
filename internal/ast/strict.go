package ast

// StrictMode reports whether the node sits in strict mode code. The walk
// goes from the node toward the root: any enclosing class makes it
// strict (class bodies and heritage clauses are strict mode code), a
// function with its own "use strict" prologue makes it strict, and the
// program settles the rest by source type and its own prologue.
// Strictness inherits downward, so the walk keeps climbing past
// functions without a prologue.
func (t *Tree) StrictMode(id NodeID) bool {
	for cur := id; cur.IsValid(); {
		node := t.Get(cur)
		if node == nil {
			return false
		}
		switch {
		case node.Kind.IsClass():
			return true
		case node.Kind.IsFunction():
			if fn, ok := t.Function(cur); ok && fn.UseStrict {
				return true
			}
		case node.Kind == KindProgram:
			prog, ok := t.Program(cur)
			if !ok {
				return false
			}
			return prog.SourceType == SourceModule || prog.UseStrict
		}
		cur = node.Parent
	}
	return false
}
