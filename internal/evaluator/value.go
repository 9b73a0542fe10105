package evaluator

import (
	"fmt"
	"strconv"

	"github.com/jxlang/jx/internal/ast"
	"github.com/jxlang/jx/internal/config"
)

// Kind is the human-readable kind name of a runtime value, as used in
// type-mismatch diagnostics.
type Kind string

const (
	KindNull     Kind = config.KindNull
	KindBoolean  Kind = config.KindBoolean
	KindNumber   Kind = config.KindNumber
	KindString   Kind = config.KindString
	KindArray    Kind = config.KindArray
	KindObject   Kind = config.KindObject
	KindFunction Kind = config.KindFunction
)

// Value is the closed set of runtime values: Null, Boolean, Number,
// String, Array, Object, Function and Builtin. Values are immutable
// once constructed, except for the append-only caches inside Object.
type Value interface {
	Kind() Kind
	Pos() ast.Position
	Inspect() string
}

// Null is the null value.
type Null struct {
	At ast.Position
}

// Boolean is a boolean value.
type Boolean struct {
	At    ast.Position
	Value bool
}

// Number is an IEEE double.
type Number struct {
	At    ast.Position
	Value float64
}

// String is a text value.
type String struct {
	At    ast.Position
	Value string
}

// Array is an ordered sequence of lazy elements. Elements are forced
// only when indexed, compared or manifested; concatenation never
// forces them.
type Array struct {
	At       ast.Position
	Elements []*Thunk
}

func (v *Null) Kind() Kind    { return KindNull }
func (v *Boolean) Kind() Kind { return KindBoolean }
func (v *Number) Kind() Kind  { return KindNumber }
func (v *String) Kind() Kind  { return KindString }
func (v *Array) Kind() Kind   { return KindArray }

func (v *Null) Pos() ast.Position    { return v.At }
func (v *Boolean) Pos() ast.Position { return v.At }
func (v *Number) Pos() ast.Position  { return v.At }
func (v *String) Pos() ast.Position  { return v.At }
func (v *Array) Pos() ast.Position   { return v.At }

func (v *Null) Inspect() string { return "null" }
func (v *Boolean) Inspect() string {
	return strconv.FormatBool(v.Value)
}
func (v *Number) Inspect() string {
	return strconv.FormatFloat(v.Value, 'g', -1, 64)
}
func (v *String) Inspect() string {
	return strconv.Quote(v.Value)
}
func (v *Array) Inspect() string {
	return fmt.Sprintf("<array of %d>", len(v.Elements))
}
