package lint

import (
	"estlint/internal/ast"
)

// Rule is one static check run against every node of a tree. Rules must
// be stateless across nodes: validating one node may never depend on
// whether another node was visited first, so the runner is free to
// change traversal order or split the work.
type Rule interface {
	Name() string
	Run(node ast.NodeID, rctx *Context)
}
