package ast

// FunctionNode is the payload shared by the three function kinds.
// UseStrict reflects the function's own directive prologue only;
// inherited strictness is resolved by Tree.StrictMode. An arrow with an
// expression body has no prologue and never sets it.
type FunctionNode struct {
	UseStrict   bool
	IsAsync     bool
	IsGenerator bool
}
