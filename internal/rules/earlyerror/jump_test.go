package earlyerror

import (
	"testing"

	"estlint/internal/ast"
	"estlint/internal/diag"
	"estlint/internal/source"
)

func TestJumpTargets(t *testing.T) {
	cases := []struct {
		name  string
		build func(b *ast.Builder, f source.FileID)
		want  []diag.Code
	}{
		{
			name: "break inside while",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 0, 40), prog)
				b.NewJump(ast.KindBreakStatement, sp(f, 10, 16), loop, "", source.Span{})
			},
		},
		{
			name: "break inside for",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				loop := b.NewNode(ast.KindForStatement, sp(f, 0, 40), prog)
				block := b.NewNode(ast.KindBlockStatement, sp(f, 8, 40), loop)
				b.NewJump(ast.KindBreakStatement, sp(f, 10, 16), block, "", source.Span{})
			},
		},
		{
			name: "break inside for-of",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				loop := b.NewNode(ast.KindForOfStatement, sp(f, 0, 40), prog)
				b.NewJump(ast.KindBreakStatement, sp(f, 20, 26), loop, "", source.Span{})
			},
		},
		{
			name: "break inside switch",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				sw := b.NewNode(ast.KindSwitchStatement, sp(f, 0, 40), prog)
				cs := b.NewNode(ast.KindSwitchCase, sp(f, 12, 30), sw)
				b.NewJump(ast.KindBreakStatement, sp(f, 20, 26), cs, "", source.Span{})
			},
		},
		{
			name: "break at top level",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 10), ast.SourceScript, false)
				b.NewJump(ast.KindBreakStatement, sp(f, 0, 6), prog, "", source.Span{})
			},
			want: []diag.Code{diag.EEIllegalBreak},
		},
		{
			name: "break in plain block",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 12), ast.SourceScript, false)
				block := b.NewNode(ast.KindBlockStatement, sp(f, 0, 12), prog)
				b.NewJump(ast.KindBreakStatement, sp(f, 2, 8), block, "", source.Span{})
			},
			want: []diag.Code{diag.EEIllegalBreak},
		},
		{
			name: "break across function",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 60), ast.SourceScript, false)
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 0, 60), prog)
				fn := b.NewFunction(ast.KindFunctionDeclaration, sp(f, 10, 50), loop, ast.FunctionNode{})
				block := b.NewNode(ast.KindBlockStatement, sp(f, 24, 50), fn)
				b.NewJump(ast.KindBreakStatement, sp(f, 26, 32), block, "", source.Span{})
			},
			want: []diag.Code{diag.EEIllegalBreak},
		},
		{
			name: "break across arrow",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 60), ast.SourceScript, false)
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 0, 60), prog)
				fn := b.NewFunction(ast.KindArrowFunctionExpression, sp(f, 10, 50), loop, ast.FunctionNode{})
				block := b.NewNode(ast.KindBlockStatement, sp(f, 16, 50), fn)
				b.NewJump(ast.KindBreakStatement, sp(f, 18, 24), block, "", source.Span{})
			},
			want: []diag.Code{diag.EEIllegalBreak},
		},
		{
			name: "break across static block",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 80), ast.SourceScript, false)
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 0, 80), prog)
				class := b.NewClass(ast.KindClassExpression, sp(f, 10, 70), loop, false)
				body := b.NewNode(ast.KindClassBody, sp(f, 18, 70), class)
				static := b.NewNode(ast.KindStaticBlock, sp(f, 20, 68), body)
				b.NewJump(ast.KindBreakStatement, sp(f, 30, 36), static, "", source.Span{})
			},
			want: []diag.Code{diag.EEIllegalBreak},
		},
		{
			name: "labeled break resolves",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				lab := b.NewLabeled(sp(f, 0, 40), prog, "lbl", sp(f, 0, 3))
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 5, 40), lab)
				b.SetLabeledBody(lab, loop)
				b.NewJump(ast.KindBreakStatement, sp(f, 15, 25), loop, "lbl", sp(f, 21, 24))
			},
		},
		{
			name: "labeled break targets block",
			build: func(b *ast.Builder, f source.FileID) {
				// break может целиться в любую помеченную конструкцию.
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				lab := b.NewLabeled(sp(f, 0, 40), prog, "lbl", sp(f, 0, 3))
				block := b.NewNode(ast.KindBlockStatement, sp(f, 5, 40), lab)
				b.SetLabeledBody(lab, block)
				b.NewJump(ast.KindBreakStatement, sp(f, 7, 17), block, "lbl", sp(f, 13, 16))
			},
		},
		{
			name: "labeled break undefined",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 0, 40), prog)
				b.NewJump(ast.KindBreakStatement, sp(f, 10, 20), loop, "lbl", sp(f, 16, 19))
			},
			want: []diag.Code{diag.EEUndefinedLabel},
		},
		{
			name: "label on other statement keeps climbing",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 60), ast.SourceScript, false)
				other := b.NewLabeled(sp(f, 0, 60), prog, "other", sp(f, 0, 5))
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 7, 60), other)
				b.SetLabeledBody(other, loop)
				b.NewJump(ast.KindBreakStatement, sp(f, 17, 27), loop, "lbl", sp(f, 23, 26))
			},
			want: []diag.Code{diag.EEUndefinedLabel},
		},
		{
			name: "labeled break across function",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 80), ast.SourceScript, false)
				lab := b.NewLabeled(sp(f, 0, 80), prog, "outer", sp(f, 0, 5))
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 7, 80), lab)
				b.SetLabeledBody(lab, loop)
				fn := b.NewFunction(ast.KindFunctionExpression, sp(f, 17, 70), loop, ast.FunctionNode{})
				block := b.NewNode(ast.KindBlockStatement, sp(f, 28, 70), fn)
				b.NewJump(ast.KindBreakStatement, sp(f, 30, 42), block, "outer", sp(f, 36, 41))
			},
			want: []diag.Code{diag.EECrossBoundaryJump},
		},
		{
			name: "continue inside while",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 0, 40), prog)
				b.NewJump(ast.KindContinueStatement, sp(f, 10, 19), loop, "", source.Span{})
			},
		},
		{
			name: "continue inside do-while",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				loop := b.NewNode(ast.KindDoWhileStatement, sp(f, 0, 40), prog)
				block := b.NewNode(ast.KindBlockStatement, sp(f, 3, 30), loop)
				b.NewJump(ast.KindContinueStatement, sp(f, 5, 14), block, "", source.Span{})
			},
		},
		{
			name: "continue at top level",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 10), ast.SourceScript, false)
				b.NewJump(ast.KindContinueStatement, sp(f, 0, 9), prog, "", source.Span{})
			},
			want: []diag.Code{diag.EEIllegalContinue},
		},
		{
			name: "continue in switch without loop",
			build: func(b *ast.Builder, f source.FileID) {
				// switch годится для break, но не для continue.
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				sw := b.NewNode(ast.KindSwitchStatement, sp(f, 0, 40), prog)
				cs := b.NewNode(ast.KindSwitchCase, sp(f, 12, 30), sw)
				b.NewJump(ast.KindContinueStatement, sp(f, 20, 29), cs, "", source.Span{})
			},
			want: []diag.Code{diag.EEIllegalContinue},
		},
		{
			name: "continue in switch inside loop",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 60), ast.SourceScript, false)
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 0, 60), prog)
				sw := b.NewNode(ast.KindSwitchStatement, sp(f, 10, 50), loop)
				cs := b.NewNode(ast.KindSwitchCase, sp(f, 22, 40), sw)
				b.NewJump(ast.KindContinueStatement, sp(f, 30, 39), cs, "", source.Span{})
			},
		},
		{
			name: "continue across function",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 60), ast.SourceScript, false)
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 0, 60), prog)
				fn := b.NewFunction(ast.KindFunctionDeclaration, sp(f, 10, 50), loop, ast.FunctionNode{})
				block := b.NewNode(ast.KindBlockStatement, sp(f, 24, 50), fn)
				b.NewJump(ast.KindContinueStatement, sp(f, 26, 35), block, "", source.Span{})
			},
			want: []diag.Code{diag.EEIllegalContinue},
		},
		{
			name: "labeled continue resolves",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				lab := b.NewLabeled(sp(f, 0, 40), prog, "lbl", sp(f, 0, 3))
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 5, 40), lab)
				b.SetLabeledBody(lab, loop)
				b.NewJump(ast.KindContinueStatement, sp(f, 15, 28), loop, "lbl", sp(f, 24, 27))
			},
		},
		{
			name: "labeled continue to switch label",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 60), ast.SourceScript, false)
				lab := b.NewLabeled(sp(f, 0, 60), prog, "lbl", sp(f, 0, 3))
				sw := b.NewNode(ast.KindSwitchStatement, sp(f, 5, 60), lab)
				b.SetLabeledBody(lab, sw)
				cs := b.NewNode(ast.KindSwitchCase, sp(f, 17, 50), sw)
				b.NewJump(ast.KindContinueStatement, sp(f, 25, 38), cs, "lbl", sp(f, 34, 37))
			},
			want: []diag.Code{diag.EEContinueLabelNotLoop},
		},
		{
			name: "labeled continue to block label",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				lab := b.NewLabeled(sp(f, 0, 40), prog, "lbl", sp(f, 0, 3))
				block := b.NewNode(ast.KindBlockStatement, sp(f, 5, 40), lab)
				b.SetLabeledBody(lab, block)
				b.NewJump(ast.KindContinueStatement, sp(f, 7, 20), block, "lbl", sp(f, 16, 19))
			},
			want: []diag.Code{diag.EEContinueLabelNotLoop},
		},
		{
			name: "stacked labels unwrap to loop",
			build: func(b *ast.Builder, f source.FileID) {
				// a: b: while(x) continue a;
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				la := b.NewLabeled(sp(f, 0, 40), prog, "a", sp(f, 0, 1))
				lb := b.NewLabeled(sp(f, 3, 40), la, "b", sp(f, 3, 4))
				b.SetLabeledBody(la, lb)
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 6, 40), lb)
				b.SetLabeledBody(lb, loop)
				b.NewJump(ast.KindContinueStatement, sp(f, 16, 27), loop, "a", sp(f, 25, 26))
			},
		},
		{
			name: "labeled continue across function",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 80), ast.SourceScript, false)
				lab := b.NewLabeled(sp(f, 0, 80), prog, "outer", sp(f, 0, 5))
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 7, 80), lab)
				b.SetLabeledBody(lab, loop)
				fn := b.NewFunction(ast.KindFunctionExpression, sp(f, 17, 70), loop, ast.FunctionNode{})
				block := b.NewNode(ast.KindBlockStatement, sp(f, 28, 70), fn)
				b.NewJump(ast.KindContinueStatement, sp(f, 30, 45), block, "outer", sp(f, 39, 44))
			},
			want: []diag.Code{diag.EECrossBoundaryJump},
		},
		{
			name: "labeled continue undefined",
			build: func(b *ast.Builder, f source.FileID) {
				prog := b.NewProgram(sp(f, 0, 40), ast.SourceScript, false)
				loop := b.NewNode(ast.KindWhileStatement, sp(f, 0, 40), prog)
				b.NewJump(ast.KindContinueStatement, sp(f, 10, 23), loop, "lbl", sp(f, 19, 22))
			},
			want: []diag.Code{diag.EEUndefinedLabel},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := source.NewFileSet()
			fid := newScratchFile(fs)
			b := ast.NewBuilder(0)
			tc.build(b, fid)
			wantCodes(t, runRule(t, b.Tree, fs.Get(fid)), tc.want...)
		})
	}
}

func TestIllegalBreakDetails(t *testing.T) {
	fs := source.NewFileSet()
	fid := newScratchFile(fs)
	b := ast.NewBuilder(0)
	prog := b.NewProgram(sp(fid, 0, 10), ast.SourceScript, false)
	jump := b.NewJump(ast.KindBreakStatement, sp(fid, 0, 6), prog, "", source.Span{})

	bag := runRule(t, b.Tree, fs.Get(fid))
	wantCodes(t, bag, diag.EEIllegalBreak)
	d := bag.Items()[0]
	if d.Message != "Illegal break statement" {
		t.Errorf("Message = %q", d.Message)
	}
	if d.Help != "A 'break' statement can only be used within an enclosing iteration or switch statement" {
		t.Errorf("Help = %q", d.Help)
	}
	if got := b.Tree.Get(jump).Span; d.Primary != got {
		t.Errorf("Primary = %v, want statement span %v", d.Primary, got)
	}
}

func TestIllegalContinueDetails(t *testing.T) {
	fs := source.NewFileSet()
	fid := newScratchFile(fs)
	b := ast.NewBuilder(0)
	prog := b.NewProgram(sp(fid, 0, 10), ast.SourceScript, false)
	b.NewJump(ast.KindContinueStatement, sp(fid, 0, 9), prog, "", source.Span{})

	bag := runRule(t, b.Tree, fs.Get(fid))
	wantCodes(t, bag, diag.EEIllegalContinue)
	d := bag.Items()[0]
	if d.Message != "Illegal continue statement: no surrounding iteration statement" {
		t.Errorf("Message = %q", d.Message)
	}
	if d.Help != "A 'continue' statement can only be used within an enclosing 'for', 'while' or 'do while' statement" {
		t.Errorf("Help = %q", d.Help)
	}
}

func TestUndefinedLabelDetails(t *testing.T) {
	fs := source.NewFileSet()
	fid := newScratchFile(fs)
	b := ast.NewBuilder(0)
	prog := b.NewProgram(sp(fid, 0, 20), ast.SourceScript, false)
	labelSpan := sp(fid, 6, 9)
	b.NewJump(ast.KindBreakStatement, sp(fid, 0, 10), prog, "lbl", labelSpan)

	bag := runRule(t, b.Tree, fs.Get(fid))
	wantCodes(t, bag, diag.EEUndefinedLabel)
	d := bag.Items()[0]
	if d.Message != "Use of undefined label" {
		t.Errorf("Message = %q", d.Message)
	}
	if d.Primary != labelSpan {
		t.Errorf("Primary = %v, want label span %v", d.Primary, labelSpan)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span != labelSpan || d.Notes[0].Msg != "this label is used, but not defined" {
		t.Errorf("Notes = %+v", d.Notes)
	}
}

func TestCrossBoundaryDetails(t *testing.T) {
	fs := source.NewFileSet()
	fid := newScratchFile(fs)
	b := ast.NewBuilder(0)
	prog := b.NewProgram(sp(fid, 0, 80), ast.SourceScript, false)
	lab := b.NewLabeled(sp(fid, 0, 80), prog, "outer", sp(fid, 0, 5))
	loop := b.NewNode(ast.KindWhileStatement, sp(fid, 7, 80), lab)
	b.SetLabeledBody(lab, loop)
	fn := b.NewFunction(ast.KindFunctionExpression, sp(fid, 17, 70), loop, ast.FunctionNode{})
	block := b.NewNode(ast.KindBlockStatement, sp(fid, 28, 70), fn)
	labelSpan := sp(fid, 36, 41)
	b.NewJump(ast.KindBreakStatement, sp(fid, 30, 42), block, "outer", labelSpan)

	bag := runRule(t, b.Tree, fs.Get(fid))
	wantCodes(t, bag, diag.EECrossBoundaryJump)
	d := bag.Items()[0]
	if d.Message != "Jump target cannot cross function boundary" {
		t.Errorf("Message = %q", d.Message)
	}
	if d.Primary != labelSpan {
		t.Errorf("Primary = %v, want label span %v", d.Primary, labelSpan)
	}
}

func TestContinueLabelNotLoopDetails(t *testing.T) {
	fs := source.NewFileSet()
	fid := newScratchFile(fs)
	b := ast.NewBuilder(0)
	prog := b.NewProgram(sp(fid, 0, 60), ast.SourceScript, false)
	defSpan := sp(fid, 0, 3)
	lab := b.NewLabeled(sp(fid, 0, 60), prog, "lbl", defSpan)
	sw := b.NewNode(ast.KindSwitchStatement, sp(fid, 5, 60), lab)
	b.SetLabeledBody(lab, sw)
	cs := b.NewNode(ast.KindSwitchCase, sp(fid, 17, 50), sw)
	stmtSpan := sp(fid, 25, 38)
	b.NewJump(ast.KindContinueStatement, stmtSpan, cs, "lbl", sp(fid, 34, 37))

	bag := runRule(t, b.Tree, fs.Get(fid))
	wantCodes(t, bag, diag.EEContinueLabelNotLoop)
	d := bag.Items()[0]
	if d.Message != "Illegal continue statement: 'lbl' does not denote an iteration statement" {
		t.Errorf("Message = %q", d.Message)
	}
	if d.Primary != stmtSpan {
		t.Errorf("Primary = %v, want continue span %v", d.Primary, stmtSpan)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span != defSpan || d.Notes[0].Msg != "this label is attached to a non-iteration statement" {
		t.Errorf("Notes = %+v", d.Notes)
	}
}
