package ast

import (
	"testing"
)

func TestKindOfType(t *testing.T) {
	tests := []struct {
		typeName string
		want     Kind
		ok       bool
	}{
		{typeName: "Program", want: KindProgram, ok: true},
		{typeName: "BreakStatement", want: KindBreakStatement, ok: true},
		{typeName: "ContinueStatement", want: KindContinueStatement, ok: true},
		{typeName: "LabeledStatement", want: KindLabeledStatement, ok: true},
		{typeName: "WhileStatement", want: KindWhileStatement, ok: true},
		{typeName: "StaticBlock", want: KindStaticBlock, ok: true},
		{typeName: "PrivateIdentifier", want: KindPrivateIdentifier, ok: true},
		{typeName: "ArrowFunctionExpression", want: KindArrowFunctionExpression, ok: true},
		// "Literal" расщепляется билдером, в таблице его нет.
		{typeName: "Literal", want: KindUnknown, ok: false},
		// Синтетические виды не приходят из входа.
		{typeName: "ClassHeritage", want: KindUnknown, ok: false},
		{typeName: "PropertyKey", want: KindUnknown, ok: false},
		{typeName: "TSTypeAnnotation", want: KindUnknown, ok: false},
		{typeName: "", want: KindUnknown, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			got, ok := KindOfType(tt.typeName)
			if got != tt.want || ok != tt.ok {
				t.Errorf("KindOfType(%q) = (%v, %v), want (%v, %v)", tt.typeName, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := KindBreakStatement.String(); got != "BreakStatement" {
		t.Errorf("String() = %q, want %q", got, "BreakStatement")
	}
	if got := KindNone.String(); got != "None" {
		t.Errorf("String() = %q, want %q", got, "None")
	}
	if got := Kind(250).String(); got != "Unknown" {
		t.Errorf("out-of-range String() = %q, want %q", got, "Unknown")
	}
}

func TestIsIterationStatement(t *testing.T) {
	iteration := []Kind{
		KindDoWhileStatement, KindWhileStatement, KindForStatement,
		KindForInStatement, KindForOfStatement,
	}
	for _, k := range iteration {
		if !k.IsIterationStatement() {
			t.Errorf("%v.IsIterationStatement() = false, want true", k)
		}
	}

	notIteration := []Kind{
		KindSwitchStatement, KindBlockStatement, KindIfStatement,
		KindProgram, KindLabeledStatement, KindNone,
	}
	for _, k := range notIteration {
		if k.IsIterationStatement() {
			t.Errorf("%v.IsIterationStatement() = true, want false", k)
		}
	}
}

func TestIsFunction(t *testing.T) {
	fns := []Kind{KindFunctionDeclaration, KindFunctionExpression, KindArrowFunctionExpression}
	for _, k := range fns {
		if !k.IsFunction() {
			t.Errorf("%v.IsFunction() = false, want true", k)
		}
	}
	// Static block — граница для jump'ов, но не функция.
	if KindStaticBlock.IsFunction() {
		t.Error("StaticBlock.IsFunction() = true, want false")
	}
	if KindClassDeclaration.IsFunction() {
		t.Error("ClassDeclaration.IsFunction() = true, want false")
	}
}

func TestIsClass(t *testing.T) {
	if !KindClassDeclaration.IsClass() || !KindClassExpression.IsClass() {
		t.Error("class kinds not recognized")
	}
	if KindClassBody.IsClass() {
		t.Error("ClassBody.IsClass() = true, want false")
	}
}

func TestIsLiteral(t *testing.T) {
	lits := []Kind{
		KindNumericLiteral, KindStringLiteral, KindBooleanLiteral,
		KindNullLiteral, KindRegExpLiteral, KindBigIntLiteral,
	}
	for _, k := range lits {
		if !k.IsLiteral() {
			t.Errorf("%v.IsLiteral() = false, want true", k)
		}
	}
	if KindTemplateLiteral.IsLiteral() {
		t.Error("TemplateLiteral.IsLiteral() = true, want false")
	}
}
