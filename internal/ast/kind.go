package ast

// Kind classifies a node by its syntactic form. ESTree's single Literal
// type is split into one kind per payload shape at build time, and two
// synthetic container kinds (ClassHeritage, PropertyKey) wrap positions
// the grammar leaves implicit.
type Kind uint8

const (
	KindNone Kind = iota

	// Литералы (ESTree "Literal" расщепляется при построении).
	KindNumericLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindRegExpLiteral
	KindBigIntLiteral

	// Имена.
	KindIdentifier
	KindPrivateIdentifier
	KindSuper

	// Корень.
	KindProgram

	// Операторы (statements).
	KindExpressionStatement
	KindBlockStatement
	KindEmptyStatement
	KindDebuggerStatement
	KindWithStatement
	KindReturnStatement
	KindLabeledStatement
	KindBreakStatement
	KindContinueStatement
	KindIfStatement
	KindSwitchStatement
	KindSwitchCase
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindVariableDeclaration
	KindVariableDeclarator

	// Функции и классы.
	KindFunctionDeclaration
	KindFunctionExpression
	KindArrowFunctionExpression
	KindClassDeclaration
	KindClassExpression
	KindClassBody
	KindMethodDefinition
	KindPropertyDefinition
	KindStaticBlock

	// Выражения.
	KindThisExpression
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindLogicalExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindSequenceExpression
	KindSpreadElement
	KindYieldExpression
	KindAwaitExpression
	KindTemplateLiteral
	KindTemplateElement
	KindTaggedTemplateExpression
	KindMetaProperty
	KindChainExpression
	KindImportExpression

	// Паттерны.
	KindAssignmentPattern
	KindArrayPattern
	KindObjectPattern
	KindRestElement

	// Модули.
	KindImportDeclaration
	KindImportSpecifier
	KindImportDefaultSpecifier
	KindImportNamespaceSpecifier
	KindExportNamedDeclaration
	KindExportDefaultDeclaration
	KindExportAllDeclaration
	KindExportSpecifier

	// Синтетические контейнеры.
	KindClassHeritage
	KindPropertyKey

	// Всё, что builder не распознал; дети таких узлов остаются в дереве.
	KindUnknown
)

var kindNames = [...]string{
	KindNone:                     "None",
	KindNumericLiteral:           "NumericLiteral",
	KindStringLiteral:            "StringLiteral",
	KindBooleanLiteral:           "BooleanLiteral",
	KindNullLiteral:              "NullLiteral",
	KindRegExpLiteral:            "RegExpLiteral",
	KindBigIntLiteral:            "BigIntLiteral",
	KindIdentifier:               "Identifier",
	KindPrivateIdentifier:        "PrivateIdentifier",
	KindSuper:                    "Super",
	KindProgram:                  "Program",
	KindExpressionStatement:      "ExpressionStatement",
	KindBlockStatement:           "BlockStatement",
	KindEmptyStatement:           "EmptyStatement",
	KindDebuggerStatement:        "DebuggerStatement",
	KindWithStatement:            "WithStatement",
	KindReturnStatement:          "ReturnStatement",
	KindLabeledStatement:         "LabeledStatement",
	KindBreakStatement:           "BreakStatement",
	KindContinueStatement:        "ContinueStatement",
	KindIfStatement:              "IfStatement",
	KindSwitchStatement:          "SwitchStatement",
	KindSwitchCase:               "SwitchCase",
	KindThrowStatement:           "ThrowStatement",
	KindTryStatement:             "TryStatement",
	KindCatchClause:              "CatchClause",
	KindWhileStatement:           "WhileStatement",
	KindDoWhileStatement:         "DoWhileStatement",
	KindForStatement:             "ForStatement",
	KindForInStatement:           "ForInStatement",
	KindForOfStatement:           "ForOfStatement",
	KindVariableDeclaration:      "VariableDeclaration",
	KindVariableDeclarator:       "VariableDeclarator",
	KindFunctionDeclaration:      "FunctionDeclaration",
	KindFunctionExpression:       "FunctionExpression",
	KindArrowFunctionExpression:  "ArrowFunctionExpression",
	KindClassDeclaration:         "ClassDeclaration",
	KindClassExpression:          "ClassExpression",
	KindClassBody:                "ClassBody",
	KindMethodDefinition:         "MethodDefinition",
	KindPropertyDefinition:       "PropertyDefinition",
	KindStaticBlock:              "StaticBlock",
	KindThisExpression:           "ThisExpression",
	KindArrayExpression:          "ArrayExpression",
	KindObjectExpression:         "ObjectExpression",
	KindProperty:                 "Property",
	KindUnaryExpression:          "UnaryExpression",
	KindUpdateExpression:         "UpdateExpression",
	KindBinaryExpression:         "BinaryExpression",
	KindLogicalExpression:        "LogicalExpression",
	KindAssignmentExpression:     "AssignmentExpression",
	KindConditionalExpression:    "ConditionalExpression",
	KindCallExpression:           "CallExpression",
	KindNewExpression:            "NewExpression",
	KindMemberExpression:         "MemberExpression",
	KindSequenceExpression:       "SequenceExpression",
	KindSpreadElement:            "SpreadElement",
	KindYieldExpression:          "YieldExpression",
	KindAwaitExpression:          "AwaitExpression",
	KindTemplateLiteral:          "TemplateLiteral",
	KindTemplateElement:          "TemplateElement",
	KindTaggedTemplateExpression: "TaggedTemplateExpression",
	KindMetaProperty:             "MetaProperty",
	KindChainExpression:          "ChainExpression",
	KindImportExpression:         "ImportExpression",
	KindAssignmentPattern:        "AssignmentPattern",
	KindArrayPattern:             "ArrayPattern",
	KindObjectPattern:            "ObjectPattern",
	KindRestElement:              "RestElement",
	KindImportDeclaration:        "ImportDeclaration",
	KindImportSpecifier:          "ImportSpecifier",
	KindImportDefaultSpecifier:   "ImportDefaultSpecifier",
	KindImportNamespaceSpecifier: "ImportNamespaceSpecifier",
	KindExportNamedDeclaration:   "ExportNamedDeclaration",
	KindExportDefaultDeclaration: "ExportDefaultDeclaration",
	KindExportAllDeclaration:     "ExportAllDeclaration",
	KindExportSpecifier:          "ExportSpecifier",
	KindClassHeritage:            "ClassHeritage",
	KindPropertyKey:              "PropertyKey",
	KindUnknown:                  "Unknown",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// kindByType maps interchange-format type tags to kinds. "Literal" is
// absent on purpose: the builder splits it by payload. The synthetic
// kinds are absent too; they never occur in input.
var kindByType = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		kind := Kind(k)
		if kind == KindNone || kind == KindUnknown || kind.IsLiteral() ||
			kind == KindClassHeritage || kind == KindPropertyKey {
			continue
		}
		m[name] = kind
	}
	return m
}()

// KindOfType resolves an ESTree "type" tag. Unrecognized tags come back
// as (KindUnknown, false).
func KindOfType(typeName string) (Kind, bool) {
	if k, ok := kindByType[typeName]; ok {
		return k, true
	}
	return KindUnknown, false
}

// IsIterationStatement reports the five ECMAScript iteration forms:
// do-while, while, and the three for variants.
func (k Kind) IsIterationStatement() bool {
	switch k {
	case KindDoWhileStatement, KindWhileStatement, KindForStatement,
		KindForInStatement, KindForOfStatement:
		return true
	default:
		return false
	}
}

// IsFunction reports function declarations and expressions, arrows
// included. Arrows count as jump and label boundaries like any other
// function body.
func (k Kind) IsFunction() bool {
	switch k {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunctionExpression:
		return true
	default:
		return false
	}
}

func (k Kind) IsClass() bool {
	return k == KindClassDeclaration || k == KindClassExpression
}

func (k Kind) IsLiteral() bool {
	switch k {
	case KindNumericLiteral, KindStringLiteral, KindBooleanLiteral,
		KindNullLiteral, KindRegExpLiteral, KindBigIntLiteral:
		return true
	default:
		return false
	}
}
