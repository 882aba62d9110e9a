package lint

import (
	"estlint/internal/ast"
	"estlint/internal/diag"
	"estlint/internal/source"
)

// Context bundles the query surface a rule may touch while visiting one
// file: node/kind/span/ancestor/strict-mode queries over the tree, raw
// source access, atom resolution, and the diagnostic sink. Rules never
// see the tree builder or the file set, only this read-only view.
type Context struct {
	tree     *ast.Tree
	file     *source.File
	reporter diag.Reporter
}

// NewContext binds a tree, its source file and a reporter together. The
// tree must have been built against the given file's content; spans are
// resolved into it without re-checking.
func NewContext(tree *ast.Tree, file *source.File, reporter diag.Reporter) *Context {
	return &Context{
		tree:     tree,
		file:     file,
		reporter: reporter,
	}
}

// Tree exposes the structural accessors (class elements, payloads,
// labels) that have no shortcut on the context itself.
func (c *Context) Tree() *ast.Tree {
	return c.tree
}

// File returns the source file the tree was built from.
func (c *Context) File() *source.File {
	return c.file
}

func (c *Context) Kind(id ast.NodeID) ast.Kind {
	return c.tree.Kind(id)
}

// Span returns the node's byte range, the zero span for invalid IDs.
func (c *Context) Span(id ast.NodeID) source.Span {
	node := c.tree.Get(id)
	if node == nil {
		return source.Span{}
	}
	return node.Span
}

func (c *Context) ParentKind(id ast.NodeID) ast.Kind {
	return c.tree.ParentKind(id)
}

// Ancestors iterates the node's ancestor chain, nearest first, excluding
// the node itself.
func (c *Context) Ancestors(id ast.NodeID) ast.AncestorIter {
	return c.tree.Ancestors(id)
}

func (c *Context) StrictMode(id ast.NodeID) bool {
	return c.tree.StrictMode(id)
}

// SourceText returns the file's normalized content. READONLY.
func (c *Context) SourceText() []byte {
	return c.file.Content
}

// Slice returns the content bytes covered by the span. Out-of-range
// spans yield nil rather than a panic.
func (c *Context) Slice(span source.Span) []byte {
	content := c.file.Content
	if span.Start > span.End || int(span.End) > len(content) {
		return nil
	}
	return content[span.Start:span.End]
}

// Lookup resolves an interned atom, "" for invalid IDs.
func (c *Context) Lookup(id source.StringID) string {
	s, _ := c.tree.Interner.Lookup(id)
	return s
}

// Reporter returns the sink for building richer diagnostics via
// diag.ReportError and friends.
func (c *Context) Reporter() diag.Reporter {
	return c.reporter
}

// Report sends a ready diagnostic to the sink.
func (c *Context) Report(d diag.Diagnostic) {
	if c.reporter != nil {
		c.reporter.Report(d)
	}
}
