package earlyerror

import (
	"fmt"
	"strings"

	"estlint/internal/ast"
	"estlint/internal/diag"
	"estlint/internal/lint"
	"estlint/internal/source"
)

// leadingZero reports whether the raw literal text is a '0' followed by
// another ASCII digit. `0` alone and `0.5` both pass.
func leadingZero(raw []byte) bool {
	return len(raw) >= 2 && raw[0] == '0' && raw[1] >= '0' && raw[1] <= '9'
}

// checkNumericLiteral flags the two leading-zero forms strict mode
// forbids: LegacyOctalIntegerLiteral and NonOctalDecimalIntegerLiteral.
// Современная запись 0o не начинается с цифры после нуля и сюда не
// попадает.
func checkNumericLiteral(node ast.NodeID, rctx *lint.Context) {
	if !rctx.StrictMode(node) {
		return
	}
	num, ok := rctx.Tree().Number(node)
	if !ok {
		return
	}
	span := rctx.Span(node)
	raw := rctx.Slice(span)
	if !leadingZero(raw) {
		return
	}
	switch num.Base {
	case ast.BaseOctal:
		fixed := "0o" + string(raw[1:])
		diag.ReportError(rctx.Reporter(), diag.EELegacyOctal, span,
			"'0'-prefixed octal literals and octal escape sequences are deprecated").
			WithHelp("for octal literals use the '0o' prefix instead").
			WithFix(fmt.Sprintf("replace with '%s'", fixed), diag.FixEdit{Span: span, NewText: fixed}).
			Emit()
	case ast.BaseDecimal, ast.BaseFloat:
		fixed := strings.TrimLeft(string(raw), "0")
		if fixed == "" || fixed[0] == '.' {
			fixed = "0" + fixed
		}
		diag.ReportError(rctx.Reporter(), diag.EELeadingZeroDecimal, span,
			"Decimals with leading zeros are not allowed in strict mode").
			WithHelp("remove the leading zero").
			WithFix(fmt.Sprintf("replace with '%s'", fixed), diag.FixEdit{Span: span, NewText: fixed}).
			Emit()
	}
}

// checkStringLiteral scans the raw text of a string literal for escape
// sequences strict mode forbids: octal escapes (\1..\7, \0 followed by
// a digit) and the reserved \8 and \9. Reports the first offense only.
func checkStringLiteral(node ast.NodeID, rctx *lint.Context) {
	str, ok := rctx.Tree().StringLit(node)
	if !ok {
		return
	}
	span := rctx.Span(node)
	raw := rctx.Slice(span)
	// Escape всегда длиннее своего значения. Кавычки дают ровно +2:
	// совпадение длин значит, что в литерале нет ни одного escape.
	if len(raw) == len(rctx.Lookup(str.Value))+2 {
		return
	}
	if !rctx.StrictMode(node) {
		return
	}
	for i := 0; i+1 < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}
		next := raw[i+1]
		switch {
		case next == '0' && i+2 < len(raw) && raw[i+2] >= '1' && raw[i+2] <= '9':
			// \0 сам по себе легален (NUL); \0 с цифрой — восьмеричный escape.
			reportEscape(rctx, diag.EELegacyOctal, span)
			return
		case next >= '1' && next <= '7':
			reportEscape(rctx, diag.EELegacyOctal, span)
			return
		case next == '8' || next == '9':
			reportEscape(rctx, diag.EENonOctalEscape, span)
			return
		default:
			i++ // экранированный символ не начинает новый escape
		}
	}
}

func reportEscape(rctx *lint.Context, code diag.Code, span source.Span) {
	if code == diag.EENonOctalEscape {
		diag.ReportError(rctx.Reporter(), code, span, "Invalid escape sequence").
			WithHelp(`\8 and \9 are not allowed in strict mode`).
			Emit()
		return
	}
	diag.ReportError(rctx.Reporter(), code, span,
		"'0'-prefixed octal literals and octal escape sequences are deprecated").
		WithHelp("for octal literals use the '0o' prefix instead").
		Emit()
}
