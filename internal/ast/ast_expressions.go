package ast

// NullLit is the literal null.
type NullLit struct {
	At Position
}

// BoolLit is a boolean literal.
type BoolLit struct {
	At    Position
	Value bool
}

// NumberLit is a numeric literal. All numbers are IEEE doubles.
type NumberLit struct {
	At    Position
	Value float64
}

// StringLit is a string literal.
type StringLit struct {
	At    Position
	Value string
}

// ArrayLit is an array literal. Elements are evaluated lazily.
type ArrayLit struct {
	At       Position
	Elements []Expr
}

// Var is a reference to a local binding, resolved at parse time to a
// scope slot. Name is retained only for diagnostics.
type Var struct {
	At   Position
	Slot int
	Name string
}

// Self refers to the current object.
type Self struct {
	At Position
}

// Dollar refers to the outermost object of the current object nest.
type Dollar struct {
	At Position
}

// SuperIndex accesses a field starting the lookup at the super object,
// keeping the current self.
type SuperIndex struct {
	At   Position
	Name string
}

// Bind binds one local slot to an expression.
type Bind struct {
	At   Position
	Slot int
	Name string
	Body Expr
}

// Local introduces bindings visible to each other and to Body.
type Local struct {
	At    Position
	Binds []Bind
	Body  Expr
}

// Index reads an element of an array (numeric key) or a field of an
// object (string key).
type Index struct {
	At     Position
	Target Expr
	Key    Expr
}

// ObjectField is a single field declaration of an object literal.
type ObjectField struct {
	At         Position
	Name       string
	Visibility Visibility
	Additive   bool // declared with "+:", merged with the super field
	Cacheable  bool // false forces recomputation on every access
	Body       Expr
}

// ObjectAssert is an object-level assertion, checked against the final
// composed object on first field access.
type ObjectAssert struct {
	At      Position
	Cond    Expr
	Message Expr // optional
}

// ObjectLit is an object literal. Locals are in scope of every field
// body and assert, and may refer to the resulting self and super.
type ObjectLit struct {
	At      Position
	Locals  []Bind
	Fields  []ObjectField
	Asserts []ObjectAssert
}

// Param is a single function parameter. Slot is the binding slot the
// argument occupies in the call scope. Default is nil for required
// parameters.
type Param struct {
	Name    string
	Slot    int
	Default Expr
}

// Function is a function literal closing over its definition scope.
type Function struct {
	At     Position
	Params []Param
	Body   Expr
}

// Arg is one call argument. Name is empty for positional arguments.
type Arg struct {
	Name  string
	Value Expr
}

// Apply calls Target with the given arguments.
type Apply struct {
	At     Position
	Target Expr
	Args   []Arg
}

// Unary is a unary operator application.
type Unary struct {
	At      Position
	Op      string
	Operand Expr
}

// Binary is a binary operator application. "&&" and "||" short-circuit,
// "+" follows the kind-dependent merge rules.
type Binary struct {
	At    Position
	Op    string
	Left  Expr
	Right Expr
}

// Conditional evaluates Then or Else depending on Cond. Else may be
// nil, in which case the result of a false condition is null.
type Conditional struct {
	At   Position
	Cond Expr
	Then Expr
	Else Expr
}

// ErrorExpr aborts evaluation with its operand as the message.
type ErrorExpr struct {
	At      Position
	Message Expr
}

// AssertExpr checks Cond and then evaluates Rest.
type AssertExpr struct {
	At      Position
	Cond    Expr
	Message Expr // optional
	Rest    Expr
}

// ArrayComp is an array comprehension over a single for-clause with an
// optional filter. Each element body is bound lazily in a scope where
// Slot holds the current element.
type ArrayComp struct {
	At   Position
	Body Expr
	Slot int
	Name string
	Over Expr
	Cond Expr // optional
}

func (n *NullLit) Pos() Position      { return n.At }
func (n *BoolLit) Pos() Position      { return n.At }
func (n *NumberLit) Pos() Position    { return n.At }
func (n *StringLit) Pos() Position    { return n.At }
func (n *ArrayLit) Pos() Position     { return n.At }
func (n *Var) Pos() Position          { return n.At }
func (n *Self) Pos() Position         { return n.At }
func (n *Dollar) Pos() Position       { return n.At }
func (n *SuperIndex) Pos() Position   { return n.At }
func (n *Local) Pos() Position        { return n.At }
func (n *Index) Pos() Position        { return n.At }
func (n *ObjectLit) Pos() Position    { return n.At }
func (n *Function) Pos() Position     { return n.At }
func (n *Apply) Pos() Position        { return n.At }
func (n *Unary) Pos() Position        { return n.At }
func (n *Binary) Pos() Position       { return n.At }
func (n *Conditional) Pos() Position  { return n.At }
func (n *ErrorExpr) Pos() Position    { return n.At }
func (n *AssertExpr) Pos() Position   { return n.At }
func (n *ArrayComp) Pos() Position    { return n.At }

func (n *NullLit) exprNode()     {}
func (n *BoolLit) exprNode()     {}
func (n *NumberLit) exprNode()   {}
func (n *StringLit) exprNode()   {}
func (n *ArrayLit) exprNode()    {}
func (n *Var) exprNode()         {}
func (n *Self) exprNode()        {}
func (n *Dollar) exprNode()      {}
func (n *SuperIndex) exprNode()  {}
func (n *Local) exprNode()       {}
func (n *Index) exprNode()       {}
func (n *ObjectLit) exprNode()   {}
func (n *Function) exprNode()    {}
func (n *Apply) exprNode()       {}
func (n *Unary) exprNode()       {}
func (n *Binary) exprNode()      {}
func (n *Conditional) exprNode() {}
func (n *ErrorExpr) exprNode()   {}
func (n *AssertExpr) exprNode()  {}
func (n *ArrayComp) exprNode()   {}
