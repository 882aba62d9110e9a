package ast

type (
	// NodeID addresses a node in a Tree. The zero value is NoNodeID.
	NodeID uint32
	// PayloadID points into the per-kind payload arena selected by the
	// node's Kind.
	PayloadID uint32
	// ClassElementID addresses one element of a class body.
	ClassElementID uint32
)

const (
	NoNodeID         NodeID         = 0
	NoPayloadID      PayloadID      = 0
	NoClassElementID ClassElementID = 0
)

func (id NodeID) IsValid() bool         { return id != NoNodeID }
func (id PayloadID) IsValid() bool      { return id != NoPayloadID }
func (id ClassElementID) IsValid() bool { return id != NoClassElementID }
