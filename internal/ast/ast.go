package ast

import "fmt"

// Position locates a node in its source file for error reporting.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsSet reports whether the position carries real location info.
func (p Position) IsSet() bool { return p.Line > 0 }

// Node is the base interface for all expression nodes.
type Node interface {
	Pos() Position
}

// Expr is a Node that produces a value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Visibility of an object field in enumeration and manifestation.
// Fields declared with ":" keep whatever hiddenness they override,
// "::" hides, ":::" force-unhides.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
	ForceVisible
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case ForceVisible:
		return "force-visible"
	default:
		return "visible"
	}
}
