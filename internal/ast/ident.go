package ast

import (
	"estlint/internal/source"
)

// IdentNode is the payload of Identifier and PrivateIdentifier nodes.
// For private identifiers Name holds the atom without the '#' sigil.
type IdentNode struct {
	Name source.StringID
}
