package ast

import (
	"estlint/internal/source"
)

// ClassNode is the payload of a class declaration or expression.
// Elements lists the class's own body members in source order; nested
// classes keep their members to themselves.
type ClassNode struct {
	HasHeritage bool
	Elements    []ClassElementID
}

// ClassElementKind tags one body member form.
type ClassElementKind uint8

const (
	ElementMethod ClassElementKind = iota
	ElementProperty
	ElementStaticBlock
)

// ClassElement records one class body member. Key is the key node
// (identifier, private identifier, literal, or a computed expression);
// static blocks have no key.
type ClassElement struct {
	Kind     ClassElementKind
	Key      NodeID
	Static   bool
	Computed bool
	Span     source.Span
}

// PrivateName returns the interned atom when the element's key is a
// private identifier declaration, NoStringID otherwise. Computed keys
// never declare private names.
func (t *Tree) PrivateName(el *ClassElement) source.StringID {
	if el == nil || el.Computed || !el.Key.IsValid() {
		return source.NoStringID
	}
	if t.Kind(el.Key) != KindPrivateIdentifier {
		return source.NoStringID
	}
	ident, ok := t.Ident(el.Key)
	if !ok {
		return source.NoStringID
	}
	return ident.Name
}

// DeclaresPrivateName reports whether any of the class's own elements
// declares the given private name.
func (t *Tree) DeclaresPrivateName(class *ClassNode, name source.StringID) bool {
	if class == nil || name == source.NoStringID {
		return false
	}
	for _, elID := range class.Elements {
		if t.PrivateName(t.Element(elID)) == name {
			return true
		}
	}
	return false
}
