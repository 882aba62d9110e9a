package estree

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"estlint/internal/ast"
	"estlint/internal/source"
)

func (l *loader) loadProgram(obj map[string]json.RawMessage) (ast.NodeID, error) {
	typ, err := nodeType(obj)
	if err != nil {
		return ast.NoNodeID, err
	}
	if typ != "Program" {
		return ast.NoNodeID, fmt.Errorf("%w: root node is %s, want Program", ErrBadPayload, typ)
	}
	span, err := l.spanOf(obj, typ)
	if err != nil {
		return ast.NoNodeID, err
	}
	sourceType := ast.SourceScript
	if raw, ok := obj["sourceType"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ast.NoNodeID, fmt.Errorf("%w: Program.sourceType is not a string", ErrBadPayload)
		}
		switch s {
		case "script":
		case "module":
			sourceType = ast.SourceModule
		default:
			return ast.NoNodeID, fmt.Errorf("%w: Program.sourceType %q", ErrBadPayload, s)
		}
	}
	id := l.b.NewProgram(span, sourceType, l.prologueHasUseStrict(obj["body"]))
	return id, l.loadChildren(obj, id)
}

// loadNode dispatches on the node type. The default path builds a
// generic node and recurses; unknown types land on KindUnknown and keep
// their children reachable.
func (l *loader) loadNode(obj map[string]json.RawMessage, parent ast.NodeID) (ast.NodeID, error) {
	typ, err := nodeType(obj)
	if err != nil {
		return ast.NoNodeID, err
	}
	span, err := l.spanOf(obj, typ)
	if err != nil {
		return ast.NoNodeID, err
	}
	switch typ {
	case "Literal":
		return l.loadLiteral(obj, span, parent)
	case "Identifier", "PrivateIdentifier":
		return l.loadIdentifier(obj, typ, span, parent)
	case "BreakStatement", "ContinueStatement":
		return l.loadJump(obj, typ, span, parent)
	case "LabeledStatement":
		return l.loadLabeled(obj, span, parent)
	case "FunctionDeclaration", "FunctionExpression", "ArrowFunctionExpression":
		return l.loadFunction(obj, typ, span, parent)
	case "ClassDeclaration", "ClassExpression":
		return l.loadClass(obj, typ, span, parent)
	case "Property":
		return l.loadProperty(obj, span, parent)
	default:
		kind, _ := ast.KindOfType(typ)
		id := l.b.NewNode(kind, span, parent)
		return id, l.loadChildren(obj, id)
	}
}

// loadLiteral splits ESTree's single Literal type by payload: the regex
// and bigint carriers have their own fields, the rest is sniffed from
// the JSON value.
func (l *loader) loadLiteral(obj map[string]json.RawMessage, span source.Span, parent ast.NodeID) (ast.NodeID, error) {
	if raw, ok := obj["regex"]; ok && !isNull(raw) {
		re, err := decodeObject(raw)
		if err != nil {
			return ast.NoNodeID, err
		}
		pattern, err := stringField(re, "Literal.regex", "pattern")
		if err != nil {
			return ast.NoNodeID, err
		}
		flags, err := stringField(re, "Literal.regex", "flags")
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.b.NewRegExp(span, parent, pattern, flags), nil
	}
	if raw, ok := obj["bigint"]; ok && !isNull(raw) {
		return l.b.NewNode(ast.KindBigIntLiteral, span, parent), nil
	}
	raw, ok := obj["value"]
	if !ok {
		return ast.NoNodeID, fmt.Errorf("%w: Literal.value", ErrMissingField)
	}
	text := l.file.Content[span.Start:span.End]
	switch firstNonSpace(raw) {
	case '"':
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return ast.NoNodeID, fmt.Errorf("%w: Literal.value: %v", ErrBadPayload, err)
		}
		return l.b.NewString(span, parent, value), nil
	case 't', 'f':
		return l.b.NewNode(ast.KindBooleanLiteral, span, parent), nil
	case 'n':
		// null значит либо null-литерал, либо число, не представимое
		// в JSON (Infinity после переполнения); различаем по исходнику.
		if len(text) > 0 && (text[0] >= '0' && text[0] <= '9' || text[0] == '.') {
			return l.b.NewNumber(span, parent, text), nil
		}
		return l.b.NewNode(ast.KindNullLiteral, span, parent), nil
	case 0:
		return ast.NoNodeID, fmt.Errorf("%w: Literal.value is empty", ErrBadPayload)
	default:
		return l.b.NewNumber(span, parent, text), nil
	}
}

func (l *loader) loadIdentifier(obj map[string]json.RawMessage, typ string, span source.Span, parent ast.NodeID) (ast.NodeID, error) {
	name, err := stringField(obj, typ, "name")
	if err != nil {
		return ast.NoNodeID, err
	}
	kind := ast.KindIdentifier
	if typ == "PrivateIdentifier" {
		kind = ast.KindPrivateIdentifier
		// Интерчейндж-формат имена приватных полей держит без решётки,
		// но подстрахуемся от эмиттеров, которые её оставляют.
		name = strings.TrimPrefix(name, "#")
	}
	return l.b.NewIdent(kind, span, parent, name), nil
}

// loadJump folds the optional label identifier into the jump payload:
// the label is a reference to a statement label, not an expression, and
// must not sit on the ancestor chain as a node of its own.
func (l *loader) loadJump(obj map[string]json.RawMessage, typ string, span source.Span, parent ast.NodeID) (ast.NodeID, error) {
	kind := ast.KindBreakStatement
	if typ == "ContinueStatement" {
		kind = ast.KindContinueStatement
	}
	label := ""
	var labelSpan source.Span
	if raw, ok := obj["label"]; ok && !isNull(raw) {
		labelObj, err := decodeObject(raw)
		if err != nil {
			return ast.NoNodeID, err
		}
		labelSpan, err = l.spanOf(labelObj, typ+".label")
		if err != nil {
			return ast.NoNodeID, err
		}
		label, err = stringField(labelObj, typ+".label", "name")
		if err != nil {
			return ast.NoNodeID, err
		}
	}
	return l.b.NewJump(kind, span, parent, label, labelSpan), nil
}

func (l *loader) loadLabeled(obj map[string]json.RawMessage, span source.Span, parent ast.NodeID) (ast.NodeID, error) {
	raw, ok := obj["label"]
	if !ok || isNull(raw) {
		return ast.NoNodeID, fmt.Errorf("%w: LabeledStatement.label", ErrMissingField)
	}
	labelObj, err := decodeObject(raw)
	if err != nil {
		return ast.NoNodeID, err
	}
	labelSpan, err := l.spanOf(labelObj, "LabeledStatement.label")
	if err != nil {
		return ast.NoNodeID, err
	}
	name, err := stringField(labelObj, "LabeledStatement.label", "name")
	if err != nil {
		return ast.NoNodeID, err
	}
	id := l.b.NewLabeled(span, parent, name, labelSpan)

	bodyRaw, ok := obj["body"]
	if !ok || isNull(bodyRaw) {
		return ast.NoNodeID, fmt.Errorf("%w: LabeledStatement.body", ErrMissingField)
	}
	bodyObj, err := decodeObject(bodyRaw)
	if err != nil {
		return ast.NoNodeID, err
	}
	body, err := l.loadNode(bodyObj, id)
	if err != nil {
		return ast.NoNodeID, err
	}
	l.b.SetLabeledBody(id, body)
	return id, nil
}

func (l *loader) loadFunction(obj map[string]json.RawMessage, typ string, span source.Span, parent ast.NodeID) (ast.NodeID, error) {
	kind, _ := ast.KindOfType(typ)
	fn := ast.FunctionNode{
		IsAsync:     boolField(obj, "async"),
		IsGenerator: boolField(obj, "generator"),
	}
	// Пролог есть только у блочного тела; стрелка-выражение строгость
	// не задаёт.
	if bodyRaw, ok := obj["body"]; ok && firstNonSpace(bodyRaw) == '{' {
		if bodyObj, err := decodeObject(bodyRaw); err == nil {
			if bt, err := nodeType(bodyObj); err == nil && bt == "BlockStatement" {
				fn.UseStrict = l.prologueHasUseStrict(bodyObj["body"])
			}
		}
	}
	id := l.b.NewFunction(kind, span, parent, fn)
	return id, l.loadChildren(obj, id)
}

func (l *loader) loadClass(obj map[string]json.RawMessage, typ string, span source.Span, parent ast.NodeID) (ast.NodeID, error) {
	kind, _ := ast.KindOfType(typ)
	superRaw, hasSuper := obj["superClass"]
	hasSuper = hasSuper && !isNull(superRaw)

	class := l.b.NewClass(kind, span, parent, hasSuper)
	if idRaw, ok := obj["id"]; ok && !isNull(idRaw) {
		if err := l.loadChild(idRaw, class); err != nil {
			return ast.NoNodeID, err
		}
	}
	if hasSuper {
		superObj, err := decodeObject(superRaw)
		if err != nil {
			return ast.NoNodeID, err
		}
		superSpan, err := l.spanOf(superObj, typ+".superClass")
		if err != nil {
			return ast.NoNodeID, err
		}
		heritage := l.b.NewNode(ast.KindClassHeritage, superSpan, class)
		if _, err := l.loadNode(superObj, heritage); err != nil {
			return ast.NoNodeID, err
		}
	}

	bodyRaw, ok := obj["body"]
	if !ok || isNull(bodyRaw) {
		return ast.NoNodeID, fmt.Errorf("%w: %s.body", ErrMissingField, typ)
	}
	bodyObj, err := decodeObject(bodyRaw)
	if err != nil {
		return ast.NoNodeID, err
	}
	bodyType, err := nodeType(bodyObj)
	if err != nil {
		return ast.NoNodeID, err
	}
	if bodyType != "ClassBody" {
		return ast.NoNodeID, fmt.Errorf("%w: %s.body is %s, want ClassBody", ErrBadPayload, typ, bodyType)
	}
	bodySpan, err := l.spanOf(bodyObj, "ClassBody")
	if err != nil {
		return ast.NoNodeID, err
	}
	bodyNode := l.b.NewNode(ast.KindClassBody, bodySpan, class)

	var elements []json.RawMessage
	if raw, ok := bodyObj["body"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &elements); err != nil {
			return ast.NoNodeID, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}
	for _, elemRaw := range elements {
		elemObj, err := decodeObject(elemRaw)
		if err != nil {
			return ast.NoNodeID, err
		}
		if err := l.loadClassElement(elemObj, bodyNode, class); err != nil {
			return ast.NoNodeID, err
		}
	}
	return class, nil
}

// loadClassElement builds one class body member and registers it on the
// class so private-name declarations are scannable without re-walking
// the tree.
func (l *loader) loadClassElement(obj map[string]json.RawMessage, parent, class ast.NodeID) error {
	typ, err := nodeType(obj)
	if err != nil {
		return err
	}
	span, err := l.spanOf(obj, typ)
	if err != nil {
		return err
	}
	switch typ {
	case "MethodDefinition", "PropertyDefinition":
		kind := ast.KindMethodDefinition
		elKind := ast.ElementMethod
		if typ == "PropertyDefinition" {
			kind = ast.KindPropertyDefinition
			elKind = ast.ElementProperty
		}
		node := l.b.NewNode(kind, span, parent)
		keyRaw, ok := obj["key"]
		if !ok || isNull(keyRaw) {
			return fmt.Errorf("%w: %s.key", ErrMissingField, typ)
		}
		key, err := l.loadPropertyKey(keyRaw, typ, node)
		if err != nil {
			return err
		}
		l.b.AddClassElement(class, ast.ClassElement{
			Kind:     elKind,
			Key:      key,
			Static:   boolField(obj, "static"),
			Computed: boolField(obj, "computed"),
			Span:     span,
		})
		if valueRaw, ok := obj["value"]; ok && !isNull(valueRaw) {
			return l.loadChild(valueRaw, node)
		}
		return nil
	case "StaticBlock":
		node := l.b.NewNode(ast.KindStaticBlock, span, parent)
		l.b.AddClassElement(class, ast.ClassElement{
			Kind:   ast.ElementStaticBlock,
			Static: true,
			Span:   span,
		})
		return l.loadChildren(obj, node)
	default:
		// Незнакомая форма члена класса: узел остаётся в дереве, но
		// приватных имён не объявляет.
		_, err := l.loadNode(obj, parent)
		return err
	}
}

// loadPropertyKey wraps a key expression in the synthetic PropertyKey
// node; a private identifier directly under the wrapper is a
// declaration site.
func (l *loader) loadPropertyKey(keyRaw json.RawMessage, typ string, parent ast.NodeID) (ast.NodeID, error) {
	keyObj, err := decodeObject(keyRaw)
	if err != nil {
		return ast.NoNodeID, err
	}
	keySpan, err := l.spanOf(keyObj, typ+".key")
	if err != nil {
		return ast.NoNodeID, err
	}
	wrapper := l.b.NewNode(ast.KindPropertyKey, keySpan, parent)
	return l.loadNode(keyObj, wrapper)
}

func (l *loader) loadProperty(obj map[string]json.RawMessage, span source.Span, parent ast.NodeID) (ast.NodeID, error) {
	node := l.b.NewNode(ast.KindProperty, span, parent)
	if keyRaw, ok := obj["key"]; ok && !isNull(keyRaw) {
		if _, err := l.loadPropertyKey(keyRaw, "Property", node); err != nil {
			return ast.NoNodeID, err
		}
	}
	if valueRaw, ok := obj["value"]; ok && !isNull(valueRaw) {
		if err := l.loadChild(valueRaw, node); err != nil {
			return ast.NoNodeID, err
		}
	}
	return node, nil
}

// prologueHasUseStrict scans the leading directive statements of a
// program or function body list for "use strict". Сравнение идёт по
// сырому тексту литерала: "use strict" директивой не является.
func (l *loader) prologueHasUseStrict(bodyRaw json.RawMessage) bool {
	if bodyRaw == nil || firstNonSpace(bodyRaw) != '[' {
		return false
	}
	var stmts []json.RawMessage
	if err := json.Unmarshal(bodyRaw, &stmts); err != nil {
		return false
	}
	for _, raw := range stmts {
		obj, err := decodeObject(raw)
		if err != nil {
			return false
		}
		text, ok := l.directiveText(obj)
		if !ok {
			return false
		}
		if text == "use strict" {
			return true
		}
	}
	return false
}

// directiveText extracts the directive string of an expression
// statement, or reports that the statement ends the prologue.
func (l *loader) directiveText(stmt map[string]json.RawMessage) (string, bool) {
	typ, err := nodeType(stmt)
	if err != nil || typ != "ExpressionStatement" {
		return "", false
	}
	// acorn кладёт сырой текст директивы отдельным полем.
	if raw, ok := stmt["directive"]; ok {
		var text string
		if json.Unmarshal(raw, &text) == nil {
			return text, true
		}
	}
	exprRaw, ok := stmt["expression"]
	if !ok {
		return "", false
	}
	expr, err := decodeObject(exprRaw)
	if err != nil {
		return "", false
	}
	if typ, err := nodeType(expr); err != nil || typ != "Literal" {
		return "", false
	}
	value, ok := expr["value"]
	if !ok || firstNonSpace(value) != '"' {
		return "", false
	}
	span, err := l.spanOf(expr, "Literal")
	if err != nil || span.Len() < 2 {
		return "", false
	}
	raw := l.file.Content[span.Start:span.End]
	return string(raw[1 : len(raw)-1]), true
}
