package ast

import (
	"strings"

	"estlint/internal/source"
)

// NumberBase classifies how a numeric literal was written. The octal
// base covers both the modern 0o prefix and the legacy bare-zero form;
// the raw text tells them apart (legacy octal starts with a digit after
// the zero).
type NumberBase uint8

const (
	BaseDecimal NumberBase = iota
	BaseFloat
	BaseBinary
	BaseOctal
	BaseHex
)

func (b NumberBase) String() string {
	switch b {
	case BaseFloat:
		return "float"
	case BaseBinary:
		return "binary"
	case BaseOctal:
		return "octal"
	case BaseHex:
		return "hex"
	default:
		return "decimal"
	}
}

// NumberNode is the payload of a KindNumericLiteral node. The raw text
// is recovered from the node span when needed.
type NumberNode struct {
	Base NumberBase
}

// ClassifyNumber derives the base from a literal's raw source text.
// A bare leading zero followed only by octal digits is the legacy octal
// form; an 8 or 9 anywhere downgrades it to decimal, matching the
// NonOctalDecimalIntegerLiteral production.
func ClassifyNumber(raw []byte) NumberBase {
	if len(raw) >= 2 && raw[0] == '0' {
		switch raw[1] {
		case 'x', 'X':
			return BaseHex
		case 'b', 'B':
			return BaseBinary
		case 'o', 'O':
			return BaseOctal
		}
	}
	for _, b := range raw {
		if b == '.' || b == 'e' || b == 'E' {
			return BaseFloat
		}
	}
	if len(raw) >= 2 && raw[0] == '0' && raw[1] >= '0' && raw[1] <= '9' {
		for _, b := range raw[1:] {
			if b < '0' || b > '7' {
				return BaseDecimal
			}
		}
		return BaseOctal
	}
	return BaseDecimal
}

// StringNode is the payload of a KindStringLiteral node. Value holds the
// decoded (cooked) string; the quoted raw text lives in the node span.
type StringNode struct {
	Value source.StringID
}

// RegExpFlags is the set of flags on a regular expression literal.
type RegExpFlags uint8

const (
	FlagG RegExpFlags = 1 << iota // global
	FlagI                         // ignore case
	FlagM                         // multiline
	FlagS                         // dot-all
	FlagU                         // unicode
	FlagY                         // sticky
	FlagD                         // has indices
	FlagV                         // unicode sets
)

// ParseRegExpFlags builds a flag set from the literal's flag string.
// Unknown letters are ignored; the parser upstream rejects them.
func ParseRegExpFlags(s string) RegExpFlags {
	var flags RegExpFlags
	for _, c := range s {
		switch c {
		case 'g':
			flags |= FlagG
		case 'i':
			flags |= FlagI
		case 'm':
			flags |= FlagM
		case 's':
			flags |= FlagS
		case 'u':
			flags |= FlagU
		case 'y':
			flags |= FlagY
		case 'd':
			flags |= FlagD
		case 'v':
			flags |= FlagV
		}
	}
	return flags
}

func (f RegExpFlags) Has(flag RegExpFlags) bool {
	return f&flag == flag
}

func (f RegExpFlags) String() string {
	var sb strings.Builder
	// Канонический порядок движков: dgimsuvy.
	for _, pair := range [...]struct {
		flag RegExpFlags
		c    byte
	}{
		{FlagD, 'd'},
		{FlagG, 'g'},
		{FlagI, 'i'},
		{FlagM, 'm'},
		{FlagS, 's'},
		{FlagU, 'u'},
		{FlagV, 'v'},
		{FlagY, 'y'},
	} {
		if f&pair.flag != 0 {
			sb.WriteByte(pair.c)
		}
	}
	return sb.String()
}

// RegExpNode is the payload of a KindRegExpLiteral node.
type RegExpNode struct {
	Pattern source.StringID
	Flags   RegExpFlags
}
