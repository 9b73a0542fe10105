package config

// MaxEvalDepth is the maximum nesting depth of expression evaluation.
// Deep super chains and self-referential defaults recurse on the Go
// stack; the limit converts a runaway program into a reported error
// instead of a stack overflow.
const MaxEvalDepth = 10000

// Runtime kind names, as they appear in type-mismatch diagnostics.
const (
	KindNull     = "null"
	KindBoolean  = "boolean"
	KindNumber   = "number"
	KindString   = "string"
	KindArray    = "array"
	KindObject   = "object"
	KindFunction = "function"
)
