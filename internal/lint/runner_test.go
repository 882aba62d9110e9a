package lint

import (
	"testing"

	"estlint/internal/ast"
	"estlint/internal/diag"
	"estlint/internal/source"
)

type countingRule struct {
	visited []ast.Kind
}

func (r *countingRule) Name() string { return "counting" }

func (r *countingRule) Run(node ast.NodeID, rctx *Context) {
	r.visited = append(r.visited, rctx.Kind(node))
}

func buildSmallTree(t *testing.T) (*ast.Builder, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte("while (x) break;"))
	file := fs.Get(fileID)

	b := ast.NewBuilder(0)
	program := b.NewProgram(source.Span{File: fileID, Start: 0, End: 16}, ast.SourceScript, false)
	loop := b.NewNode(ast.KindWhileStatement, source.Span{File: fileID, Start: 0, End: 16}, program)
	b.NewJump(ast.KindBreakStatement, source.Span{File: fileID, Start: 10, End: 16}, loop, "", source.Span{})
	return b, file
}

func TestRunnerVisitsEveryNodeOnce(t *testing.T) {
	b, file := buildSmallTree(t)
	rule := &countingRule{}

	NewRunner(rule).Run(b.Tree, file, diag.NopReporter{})

	want := []ast.Kind{ast.KindProgram, ast.KindWhileStatement, ast.KindBreakStatement}
	if len(rule.visited) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(rule.visited), len(want))
	}
	for i, kind := range want {
		if rule.visited[i] != kind {
			t.Errorf("visited[%d] = %v, want %v", i, rule.visited[i], kind)
		}
	}
}

func TestRunnerMultipleRules(t *testing.T) {
	b, file := buildSmallTree(t)
	first := &countingRule{}
	second := &countingRule{}

	NewRunner(first, second).Run(b.Tree, file, diag.NopReporter{})

	if len(first.visited) != len(second.visited) {
		t.Errorf("rules saw different node counts: %d vs %d", len(first.visited), len(second.visited))
	}
}

func TestRunnerNilTree(t *testing.T) {
	// Не должно паниковать.
	NewRunner(&countingRule{}).Run(nil, nil, diag.NopReporter{})
}

type reportingRule struct{}

func (reportingRule) Name() string { return "reporting" }

func (reportingRule) Run(node ast.NodeID, rctx *Context) {
	if rctx.Kind(node) == ast.KindBreakStatement {
		rctx.Report(diag.NewError(diag.EEIllegalBreak, rctx.Span(node), "test finding"))
	}
}

func TestContextReportReachesBag(t *testing.T) {
	b, file := buildSmallTree(t)
	bag := diag.NewBag(16)

	NewRunner(reportingRule{}).Run(b.Tree, file, diag.BagReporter{Bag: bag})

	if bag.Len() != 1 {
		t.Fatalf("bag.Len() = %d, want 1", bag.Len())
	}
	got := bag.Items()[0]
	if got.Code != diag.EEIllegalBreak {
		t.Errorf("Code = %v, want EEIllegalBreak", got.Code)
	}
	if got.Primary.Start != 10 || got.Primary.End != 16 {
		t.Errorf("Primary = %d-%d, want 10-16", got.Primary.Start, got.Primary.End)
	}
}

type doubleReportRule struct{}

func (doubleReportRule) Name() string { return "double" }

func (doubleReportRule) Run(node ast.NodeID, rctx *Context) {
	if rctx.Kind(node) == ast.KindBreakStatement {
		d := diag.NewError(diag.EEIllegalBreak, rctx.Span(node), "same finding")
		rctx.Report(d)
		rctx.Report(d)
	}
}

func TestRunnerSuppressesExactRepeats(t *testing.T) {
	b, file := buildSmallTree(t)
	bag := diag.NewBag(16)

	NewRunner(doubleReportRule{}).Run(b.Tree, file, diag.BagReporter{Bag: bag})

	if bag.Len() != 1 {
		t.Fatalf("bag.Len() = %d, want 1 after duplicate suppression", bag.Len())
	}
}

func TestContextQueries(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("ctx.js", []byte("översikt"))
	file := fs.Get(fileID)

	b := ast.NewBuilder(0)
	program := b.NewProgram(source.Span{File: fileID, Start: 0, End: 9}, ast.SourceModule, false)
	ident := b.NewIdent(ast.KindIdentifier, source.Span{File: fileID, Start: 0, End: 9}, program, "översikt")

	rctx := NewContext(b.Tree, file, diag.NopReporter{})

	if got := rctx.ParentKind(ident); got != ast.KindProgram {
		t.Errorf("ParentKind = %v, want Program", got)
	}
	if !rctx.StrictMode(ident) {
		t.Error("module code should be strict")
	}
	if got := string(rctx.Slice(source.Span{File: fileID, Start: 0, End: 9})); got != "översikt" {
		t.Errorf("Slice = %q, want %q", got, "översikt")
	}
	if got := rctx.Slice(source.Span{File: fileID, Start: 5, End: 99}); got != nil {
		t.Errorf("out-of-range Slice = %q, want nil", got)
	}
	if got := string(rctx.SourceText()); got != "översikt" {
		t.Errorf("SourceText = %q, want the whole file", got)
	}
	identNode, ok := b.Tree.Ident(ident)
	if !ok {
		t.Fatal("Ident() lookup failed")
	}
	if got := rctx.Lookup(identNode.Name); got != "översikt" {
		t.Errorf("Lookup = %q, want %q", got, "översikt")
	}
	if got := rctx.Span(ast.NoNodeID); !got.Empty() {
		t.Errorf("Span(NoNodeID) = %v, want empty", got)
	}
}
