package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка — на первое время
	UnknownCode Code = 0

	// Файлы и ввод
	IOInfo       Code = 1000
	IOReadFailed Code = 1001
	IOMissingAST Code = 1002
	IONotAFile   Code = 1003

	// Декодирование дерева
	ASTInfo           Code = 2000
	ASTInvalidJSON    Code = 2001
	ASTMissingField   Code = 2002
	ASTSpanOutOfRange Code = 2003
	ASTBadPayload     Code = 2004

	// Early errors (статическая семантика)
	EEInfo                 Code = 3000
	EEPrivateNotInClass    Code = 3001
	EEPrivateUndeclared    Code = 3002
	EELegacyOctal          Code = 3003
	EELeadingZeroDecimal   Code = 3004
	EENonOctalEscape       Code = 3005
	EERegExpDualFlags      Code = 3006
	EEIllegalBreak         Code = 3007
	EEIllegalContinue      Code = 3008
	EEUndefinedLabel       Code = 3009
	EECrossBoundaryJump    Code = 3010
	EEContinueLabelNotLoop Code = 3011
)

var codeDescription = map[Code]string{
	UnknownCode:            "unknown diagnostic",
	IOInfo:                 "input information",
	IOReadFailed:           "source file could not be read",
	IOMissingAST:           "no syntax tree found for source file",
	IONotAFile:             "path is not a lintable file",
	ASTInfo:                "syntax tree information",
	ASTInvalidJSON:         "syntax tree is not valid JSON",
	ASTMissingField:        "syntax tree node is missing a required field",
	ASTSpanOutOfRange:      "syntax tree span does not fit the source text",
	ASTBadPayload:          "syntax tree node carries a malformed payload",
	EEInfo:                 "static semantics information",
	EEPrivateNotInClass:    "private identifier used outside class bodies",
	EEPrivateUndeclared:    "private field not declared in an enclosing class",
	EELegacyOctal:          "legacy octal syntax in strict mode code",
	EELeadingZeroDecimal:   "decimal with a leading zero in strict mode code",
	EENonOctalEscape:       "\\8 or \\9 escape in strict mode code",
	EERegExpDualFlags:      "regular expression combines the u and v flags",
	EEIllegalBreak:         "break statement without a legal target",
	EEIllegalContinue:      "continue statement without a legal target",
	EEUndefinedLabel:       "jump references a label that is not defined",
	EECrossBoundaryJump:    "jump target crosses a function boundary",
	EEContinueLabelNotLoop: "continue label does not denote an iteration statement",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("AST%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EE%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
