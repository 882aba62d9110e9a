package ast

import (
	"estlint/internal/source"
)

// Builder constructs a Tree top-down: parents are created before their
// children, so every node carries its parent link from the start. The
// few places where a child is only known later (labeled statement
// bodies, class element lists) get explicit setters.
type Builder struct {
	Tree *Tree
}

func NewBuilder(capHint uint) *Builder {
	return &Builder{Tree: NewTree(capHint)}
}

func (b *Builder) Intern(s string) source.StringID {
	return b.Tree.Interner.Intern(s)
}

// NewNode creates a node without payload.
func (b *Builder) NewNode(kind Kind, span source.Span, parent NodeID) NodeID {
	return b.Tree.New(kind, span, parent, NoPayloadID)
}

func (b *Builder) NewProgram(span source.Span, sourceType SourceType, useStrict bool) NodeID {
	payload := b.Tree.Programs.Allocate(ProgramNode{
		SourceType: sourceType,
		UseStrict:  useStrict,
	})
	id := b.Tree.New(KindProgram, span, NoNodeID, PayloadID(payload))
	if !b.Tree.Root.IsValid() {
		b.Tree.Root = id
	}
	return id
}

func (b *Builder) NewFunction(kind Kind, span source.Span, parent NodeID, fn FunctionNode) NodeID {
	payload := b.Tree.Functions.Allocate(fn)
	return b.Tree.New(kind, span, parent, PayloadID(payload))
}

func (b *Builder) NewClass(kind Kind, span source.Span, parent NodeID, hasHeritage bool) NodeID {
	payload := b.Tree.Classes.Allocate(ClassNode{HasHeritage: hasHeritage})
	return b.Tree.New(kind, span, parent, PayloadID(payload))
}

// AddClassElement registers a body member on its class node.
func (b *Builder) AddClassElement(class NodeID, el ClassElement) ClassElementID {
	node, ok := b.Tree.Class(class)
	if !ok {
		return NoClassElementID
	}
	id := ClassElementID(b.Tree.Elements.Allocate(el))
	node.Elements = append(node.Elements, id)
	return id
}

// NewIdent creates an Identifier or PrivateIdentifier node. Private
// names are interned without the '#' sigil.
func (b *Builder) NewIdent(kind Kind, span source.Span, parent NodeID, name string) NodeID {
	payload := b.Tree.Idents.Allocate(IdentNode{Name: b.Intern(name)})
	return b.Tree.New(kind, span, parent, PayloadID(payload))
}

// NewNumber creates a numeric literal node, deriving the base from the
// raw source text.
func (b *Builder) NewNumber(span source.Span, parent NodeID, raw []byte) NodeID {
	payload := b.Tree.Numbers.Allocate(NumberNode{Base: ClassifyNumber(raw)})
	return b.Tree.New(KindNumericLiteral, span, parent, PayloadID(payload))
}

// NewString creates a string literal node from its decoded value.
func (b *Builder) NewString(span source.Span, parent NodeID, value string) NodeID {
	payload := b.Tree.Strings.Allocate(StringNode{Value: b.Intern(value)})
	return b.Tree.New(KindStringLiteral, span, parent, PayloadID(payload))
}

func (b *Builder) NewRegExp(span source.Span, parent NodeID, pattern, flags string) NodeID {
	payload := b.Tree.Regexps.Allocate(RegExpNode{
		Pattern: b.Intern(pattern),
		Flags:   ParseRegExpFlags(flags),
	})
	return b.Tree.New(KindRegExpLiteral, span, parent, PayloadID(payload))
}

// NewJump creates a break or continue statement node. label is "" for
// the unlabeled form.
func (b *Builder) NewJump(kind Kind, span source.Span, parent NodeID, label string, labelSpan source.Span) NodeID {
	jump := JumpNode{}
	if label != "" {
		jump.Label = b.Intern(label)
		jump.LabelSpan = labelSpan
	}
	payload := b.Tree.Jumps.Allocate(jump)
	return b.Tree.New(kind, span, parent, PayloadID(payload))
}

// NewLabeled creates a labeled statement node. The body is attached
// afterwards with SetLabeledBody, once the child exists.
func (b *Builder) NewLabeled(span source.Span, parent NodeID, label string, labelSpan source.Span) NodeID {
	payload := b.Tree.Labels.Allocate(LabeledNode{
		Label:     b.Intern(label),
		LabelSpan: labelSpan,
	})
	return b.Tree.New(KindLabeledStatement, span, parent, PayloadID(payload))
}

func (b *Builder) SetLabeledBody(id, body NodeID) {
	if labeled, ok := b.Tree.Labeled(id); ok {
		labeled.Body = body
	}
}

func (b *Builder) SetRoot(id NodeID) {
	b.Tree.Root = id
}
