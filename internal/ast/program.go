package ast

// SourceType distinguishes classic scripts from ES modules. Module code
// is strict everywhere.
type SourceType uint8

const (
	SourceScript SourceType = iota
	SourceModule
)

func (s SourceType) String() string {
	if s == SourceModule {
		return "module"
	}
	return "script"
}

// ProgramNode is the payload of a KindProgram node.
type ProgramNode struct {
	SourceType SourceType
	// UseStrict is set when the directive prologue contains "use strict".
	UseStrict bool
}
