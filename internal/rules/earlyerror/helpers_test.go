package earlyerror

import (
	"strings"
	"testing"

	"fortio.org/safecast"

	"estlint/internal/ast"
	"estlint/internal/diag"
	"estlint/internal/lint"
	"estlint/internal/source"
)

func sp(f source.FileID, start, end uint32) source.Span {
	return source.Span{File: f, Start: start, End: end}
}

func uint32Len(s string) (uint32, error) {
	return safecast.Conv[uint32](len(s))
}

// newScratchFile registers a blank file for tests that never slice the
// source; spans just have to fit.
func newScratchFile(fs *source.FileSet) source.FileID {
	return fs.AddVirtual("scratch.js", []byte(strings.Repeat(" ", 128)))
}

func runRule(t *testing.T, tree *ast.Tree, file *source.File) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(64)
	lint.NewRunner(New()).Run(tree, file, diag.BagReporter{Bag: bag})
	return bag
}

func wantCodes(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	items := bag.Items()
	if len(items) != len(want) {
		t.Fatalf("got %d diagnostics, want %d: %v", len(items), len(want), items)
	}
	for i, code := range want {
		if items[i].Code != code {
			t.Errorf("diagnostic %d code = %s, want %s", i, items[i].Code.ID(), code.ID())
		}
	}
}

// declarePrivate appends `#name` as a property declaration to a class,
// wiring the property-key wrapper the way the tree loader does.
func declarePrivate(b *ast.Builder, f source.FileID, class, classBody ast.NodeID, name string, at uint32) {
	end := at + uint32(len(name)) + 1
	def := b.NewNode(ast.KindPropertyDefinition, sp(f, at, end), classBody)
	key := b.NewNode(ast.KindPropertyKey, sp(f, at, end), def)
	ident := b.NewIdent(ast.KindPrivateIdentifier, sp(f, at, end), key, name)
	b.AddClassElement(class, ast.ClassElement{Kind: ast.ElementProperty, Key: ident, Span: sp(f, at, end)})
}
