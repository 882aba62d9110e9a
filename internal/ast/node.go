package ast

import (
	"estlint/internal/source"
)

// Node is one syntax tree entry. Nodes are immutable once the tree is
// built; Parent links give upward navigation without re-walking from the
// root.
type Node struct {
	Kind    Kind
	Span    source.Span
	Parent  NodeID
	Payload PayloadID
}

// Tree owns the node arena and the per-kind payload arenas for one file.
// Payload membership follows Kind: a node of KindProgram has its payload
// in Programs, and so on; kinds without extra data carry NoPayloadID.
type Tree struct {
	Nodes     *Arena[Node]
	Programs  *Arena[ProgramNode]
	Functions *Arena[FunctionNode]
	Classes   *Arena[ClassNode]
	Elements  *Arena[ClassElement]
	Idents    *Arena[IdentNode]
	Numbers   *Arena[NumberNode]
	Strings   *Arena[StringNode]
	Regexps   *Arena[RegExpNode]
	Jumps     *Arena[JumpNode]
	Labels    *Arena[LabeledNode]

	Root     NodeID
	Interner *source.Interner
}

// NewTree creates an empty tree with per-kind arenas sized by capHint.
// If capHint is 0, a default of 1<<8 is used for nodes and smaller
// shares for the payload arenas.
func NewTree(capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	sub := capHint / 8
	return &Tree{
		Nodes:     NewArena[Node](capHint),
		Programs:  NewArena[ProgramNode](1),
		Functions: NewArena[FunctionNode](sub),
		Classes:   NewArena[ClassNode](sub),
		Elements:  NewArena[ClassElement](sub),
		Idents:    NewArena[IdentNode](capHint / 4),
		Numbers:   NewArena[NumberNode](sub),
		Strings:   NewArena[StringNode](sub),
		Regexps:   NewArena[RegExpNode](sub),
		Jumps:     NewArena[JumpNode](sub),
		Labels:    NewArena[LabeledNode](sub),
		Interner:  source.NewInterner(),
	}
}

func (t *Tree) New(kind Kind, span source.Span, parent NodeID, payload PayloadID) NodeID {
	return NodeID(t.Nodes.Allocate(Node{
		Kind:    kind,
		Span:    span,
		Parent:  parent,
		Payload: payload,
	}))
}

func (t *Tree) Get(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

// Kind returns the node's kind or KindNone for an invalid ID.
func (t *Tree) Kind(id NodeID) Kind {
	node := t.Get(id)
	if node == nil {
		return KindNone
	}
	return node.Kind
}

// ParentOf returns the parent ID, NoNodeID at the root.
func (t *Tree) ParentOf(id NodeID) NodeID {
	node := t.Get(id)
	if node == nil {
		return NoNodeID
	}
	return node.Parent
}

// ParentKind returns the kind of the node's parent, KindNone at the root.
func (t *Tree) ParentKind(id NodeID) Kind {
	return t.Kind(t.ParentOf(id))
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() uint32 {
	return t.Nodes.Len()
}

// Program returns the payload of a KindProgram node.
func (t *Tree) Program(id NodeID) (*ProgramNode, bool) {
	node := t.Get(id)
	if node == nil || node.Kind != KindProgram || !node.Payload.IsValid() {
		return nil, false
	}
	return t.Programs.Get(uint32(node.Payload)), true
}

// Function returns the payload of a function node of any of the three
// function kinds.
func (t *Tree) Function(id NodeID) (*FunctionNode, bool) {
	node := t.Get(id)
	if node == nil || !node.Kind.IsFunction() || !node.Payload.IsValid() {
		return nil, false
	}
	return t.Functions.Get(uint32(node.Payload)), true
}

// Class returns the payload of a class declaration or expression node.
func (t *Tree) Class(id NodeID) (*ClassNode, bool) {
	node := t.Get(id)
	if node == nil || !node.Kind.IsClass() || !node.Payload.IsValid() {
		return nil, false
	}
	return t.Classes.Get(uint32(node.Payload)), true
}

// Element returns a class body element record.
func (t *Tree) Element(id ClassElementID) *ClassElement {
	if !id.IsValid() {
		return nil
	}
	return t.Elements.Get(uint32(id))
}

// Ident returns the payload of an Identifier or PrivateIdentifier node.
func (t *Tree) Ident(id NodeID) (*IdentNode, bool) {
	node := t.Get(id)
	if node == nil || !node.Payload.IsValid() {
		return nil, false
	}
	if node.Kind != KindIdentifier && node.Kind != KindPrivateIdentifier {
		return nil, false
	}
	return t.Idents.Get(uint32(node.Payload)), true
}

// Number returns the payload of a KindNumericLiteral node.
func (t *Tree) Number(id NodeID) (*NumberNode, bool) {
	node := t.Get(id)
	if node == nil || node.Kind != KindNumericLiteral || !node.Payload.IsValid() {
		return nil, false
	}
	return t.Numbers.Get(uint32(node.Payload)), true
}

// StringLit returns the payload of a KindStringLiteral node.
func (t *Tree) StringLit(id NodeID) (*StringNode, bool) {
	node := t.Get(id)
	if node == nil || node.Kind != KindStringLiteral || !node.Payload.IsValid() {
		return nil, false
	}
	return t.Strings.Get(uint32(node.Payload)), true
}

// Regexp returns the payload of a KindRegExpLiteral node.
func (t *Tree) Regexp(id NodeID) (*RegExpNode, bool) {
	node := t.Get(id)
	if node == nil || node.Kind != KindRegExpLiteral || !node.Payload.IsValid() {
		return nil, false
	}
	return t.Regexps.Get(uint32(node.Payload)), true
}

// Jump returns the payload of a break or continue statement node.
func (t *Tree) Jump(id NodeID) (*JumpNode, bool) {
	node := t.Get(id)
	if node == nil || !node.Payload.IsValid() {
		return nil, false
	}
	if node.Kind != KindBreakStatement && node.Kind != KindContinueStatement {
		return nil, false
	}
	return t.Jumps.Get(uint32(node.Payload)), true
}

// Labeled returns the payload of a KindLabeledStatement node.
func (t *Tree) Labeled(id NodeID) (*LabeledNode, bool) {
	node := t.Get(id)
	if node == nil || node.Kind != KindLabeledStatement || !node.Payload.IsValid() {
		return nil, false
	}
	return t.Labels.Get(uint32(node.Payload)), true
}

// Name resolves the interned atom of an Identifier or PrivateIdentifier.
// Private names come back without the '#' sigil.
func (t *Tree) Name(id NodeID) (string, bool) {
	ident, ok := t.Ident(id)
	if !ok {
		return "", false
	}
	return t.Interner.Lookup(ident.Name)
}

// AncestorIter walks parent links from a start node toward the root,
// nearest ancestor first, excluding the start node itself.
type AncestorIter struct {
	tree *Tree
	cur  NodeID
}

// Ancestors returns an iterator over the ancestors of id.
func (t *Tree) Ancestors(id NodeID) AncestorIter {
	return AncestorIter{tree: t, cur: id}
}

// Next returns the next ancestor, or NoNodeID past the root.
func (it *AncestorIter) Next() NodeID {
	if !it.cur.IsValid() {
		return NoNodeID
	}
	node := it.tree.Get(it.cur)
	if node == nil {
		it.cur = NoNodeID
		return NoNodeID
	}
	it.cur = node.Parent
	return it.cur
}
