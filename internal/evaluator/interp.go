package evaluator

import (
	"math"

	"github.com/google/uuid"

	"github.com/jxlang/jx/internal/ast"
	"github.com/jxlang/jx/internal/config"
)

// Interp is the evaluation context: it walks expression trees, hands
// itself to object members and function bodies for re-entry, and
// carries the call stack used in diagnostics. One Interp serves one
// logical evaluation; it is not safe for concurrent use.
type Interp struct {
	// ID tags diagnostics from this evaluation.
	ID string

	maxDepth int
	depth    int

	callStack []StackFrame

	// validationPasses counts slow-path argument validations. The
	// positional fast path leaves it untouched.
	validationPasses int
}

// New returns a fresh evaluation context.
func New() *Interp {
	return &Interp{
		ID:       uuid.NewString(),
		maxDepth: config.MaxEvalDepth,
	}
}

// Evaluate evaluates an already-parsed expression under the given
// scope.
func (i *Interp) Evaluate(expr ast.Expr, sc *Scope) (Value, error) {
	return i.visitExpr(expr, sc)
}

func (i *Interp) pushCall(name string, pos ast.Position) {
	i.callStack = append(i.callStack, StackFrame{Name: name, At: pos})
}

func (i *Interp) popCall() {
	if len(i.callStack) > 0 {
		i.callStack = i.callStack[:len(i.callStack)-1]
	}
}

func (i *Interp) visitExpr(expr ast.Expr, sc *Scope) (Value, error) {
	i.depth++
	defer func() { i.depth-- }()
	if i.depth > i.maxDepth {
		return nil, i.errorWithStack(ErrInternal, expr.Pos(), "maximum recursion depth exceeded")
	}

	switch n := expr.(type) {
	case *ast.NullLit:
		return &Null{At: n.At}, nil
	case *ast.BoolLit:
		return &Boolean{At: n.At, Value: n.Value}, nil
	case *ast.NumberLit:
		return &Number{At: n.At, Value: n.Value}, nil
	case *ast.StringLit:
		return &String{At: n.At, Value: n.Value}, nil
	case *ast.ArrayLit:
		elems := make([]*Thunk, len(n.Elements))
		for idx, el := range n.Elements {
			el := el
			elems[idx] = NewThunk(func() (Value, error) {
				return i.visitExpr(el, sc)
			})
		}
		return &Array{At: n.At, Elements: elems}, nil
	case *ast.Var:
		t, err := sc.bindVar(n.Slot, n.Name, n.At)
		if err != nil {
			return nil, err
		}
		return t.Force()
	case *ast.Self:
		if sc.Self == nil {
			return nil, i.errorWithStack(ErrInternal, n.At, "self is only valid inside an object")
		}
		return sc.Self, nil
	case *ast.Dollar:
		if sc.Dollar == nil {
			return nil, i.errorWithStack(ErrInternal, n.At, "$ is only valid inside an object")
		}
		return sc.Dollar, nil
	case *ast.SuperIndex:
		if sc.Super == nil {
			return nil, i.errorWithStack(ErrInternal, n.At, "super is only valid inside an object with a parent")
		}
		return sc.Super.ValueFor(sc.Self, n.Name, n.At, i)
	case *ast.Local:
		return i.evalLocal(n, sc)
	case *ast.Index:
		return i.evalIndex(n, sc)
	case *ast.ObjectLit:
		return i.evalObject(n, sc)
	case *ast.Function:
		return &Function{
			At:       n.At,
			DefScope: sc,
			Params:   NewParams(n.Params),
			Body:     n.Body,
		}, nil
	case *ast.Apply:
		return i.evalApply(n, sc)
	case *ast.Unary:
		return i.evalUnary(n, sc)
	case *ast.Binary:
		return i.evalBinary(n, sc)
	case *ast.Conditional:
		return i.evalConditional(n, sc)
	case *ast.ErrorExpr:
		return i.evalErrorExpr(n, sc)
	case *ast.AssertExpr:
		return i.evalAssertExpr(n, sc)
	case *ast.ArrayComp:
		return i.evalArrayComp(n, sc)
	}
	return nil, i.errorWithStack(ErrInternal, expr.Pos(), "unhandled expression %T", expr)
}

// evalLocal binds the locals into a scope the bindings themselves can
// see, so they may refer to each other recursively.
func (i *Interp) evalLocal(n *ast.Local, sc *Scope) (Value, error) {
	var lsc *Scope
	binds := make([]ScopeBind, len(n.Binds))
	for k := range n.Binds {
		b := n.Binds[k]
		binds[k] = ScopeBind{Slot: b.Slot, Make: func(_, _ *Object) *Thunk {
			return NewThunk(func() (Value, error) {
				return i.visitExpr(b.Body, lsc)
			})
		}}
	}
	lsc = sc.Extend(binds, nil, nil, nil)
	return i.visitExpr(n.Body, lsc)
}

func (i *Interp) evalIndex(n *ast.Index, sc *Scope) (Value, error) {
	target, err := i.visitExpr(n.Target, sc)
	if err != nil {
		return nil, err
	}
	key, err := i.visitExpr(n.Key, sc)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *Object:
		name, err := i.asString(key, n.At)
		if err != nil {
			return nil, err
		}
		return t.Value(name.Value, n.At, i)
	case *Array:
		idx, err := i.asNumber(key, n.At)
		if err != nil {
			return nil, err
		}
		k := int(idx.Value)
		if float64(k) != idx.Value {
			return nil, i.errorWithStack(ErrTypeMismatch, n.At, "array index was not an integer: %v", idx.Value)
		}
		if k < 0 || k >= len(t.Elements) {
			return nil, i.errorWithStack(ErrInternal, n.At, "array index %d out of bounds (0..%d)", k, len(t.Elements)-1)
		}
		return t.Elements[k].Force()
	case *String:
		idx, err := i.asNumber(key, n.At)
		if err != nil {
			return nil, err
		}
		runes := []rune(t.Value)
		k := int(idx.Value)
		if k < 0 || k >= len(runes) {
			return nil, i.errorWithStack(ErrInternal, n.At, "string index %d out of bounds (0..%d)", k, len(runes)-1)
		}
		return &String{At: n.At, Value: string(runes[k])}, nil
	default:
		return nil, i.errorWithStack(ErrTypeMismatch, n.At, "cannot index %s", target.Kind())
	}
}

// objectScope builds the scope object-field bodies and assertions run
// under: the literal's locals plus the resolving self/super, with $
// fixed to the outermost object of the nest.
func (i *Interp) objectScope(n *ast.ObjectLit, sc *Scope, self, super *Object) *Scope {
	dollar := sc.Dollar
	if dollar == nil {
		dollar = self
	}
	var fsc *Scope
	binds := make([]ScopeBind, len(n.Locals))
	for k := range n.Locals {
		b := n.Locals[k]
		binds[k] = ScopeBind{Slot: b.Slot, Make: func(_, _ *Object) *Thunk {
			return NewThunk(func() (Value, error) {
				return i.visitExpr(b.Body, fsc)
			})
		}}
	}
	fsc = sc.Extend(binds, dollar, self, super)
	return fsc
}

func (i *Interp) evalObject(n *ast.ObjectLit, sc *Scope) (Value, error) {
	members := make([]NamedMember, 0, len(n.Fields))
	seen := make(map[string]bool, len(n.Fields))
	for idx := range n.Fields {
		f := n.Fields[idx]
		if seen[f.Name] {
			return nil, i.errorWithStack(ErrInternal, f.At, "duplicate field: %s", f.Name)
		}
		seen[f.Name] = true
		body := f.Body
		members = append(members, NamedMember{
			Name: f.Name,
			Member: Member{
				Additive:   f.Additive,
				Visibility: f.Visibility,
				Cacheable:  f.Cacheable,
				Compute: func(self, super *Object, i *Interp) (Value, error) {
					return i.visitExpr(body, i.objectScope(n, sc, self, super))
				},
			},
		})
	}
	var assert AssertFn
	if len(n.Asserts) > 0 {
		assert = func(self, super *Object, i *Interp) error {
			asc := i.objectScope(n, sc, self, super)
			for _, a := range n.Asserts {
				cond, err := i.visitExpr(a.Cond, asc)
				if err != nil {
					return err
				}
				b, err := i.asBoolean(cond, a.At)
				if err != nil {
					return err
				}
				if b.Value {
					continue
				}
				msg := "object assertion failed"
				if a.Message != nil {
					mv, err := i.visitExpr(a.Message, asc)
					if err != nil {
						return err
					}
					s, err := i.stringify(mv, a.At)
					if err != nil {
						return err
					}
					msg = s
				}
				return i.errorWithStack(ErrAssertionFailed, a.At, "%s", msg)
			}
			return nil
		}
	}
	return NewObject(n.At, members, assert), nil
}

func (i *Interp) evalApply(n *ast.Apply, sc *Scope) (Value, error) {
	target, err := i.visitExpr(n.Target, sc)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, a := range n.Args {
		if a.Name != "" {
			names = make([]string, len(n.Args))
			break
		}
	}
	args := make([]*Thunk, len(n.Args))
	for idx := range n.Args {
		a := n.Args[idx]
		if names != nil {
			names[idx] = a.Name
		}
		args[idx] = NewThunk(func() (Value, error) {
			return i.visitExpr(a.Value, sc)
		})
	}
	return i.Apply(target, names, args, n.At)
}

func (i *Interp) evalUnary(n *ast.Unary, sc *Scope) (Value, error) {
	operand, err := i.visitExpr(n.Operand, sc)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		num, err := i.asNumber(operand, n.At)
		if err != nil {
			return nil, err
		}
		return &Number{At: n.At, Value: -num.Value}, nil
	case "+":
		num, err := i.asNumber(operand, n.At)
		if err != nil {
			return nil, err
		}
		return &Number{At: n.At, Value: num.Value}, nil
	case "!":
		b, err := i.asBoolean(operand, n.At)
		if err != nil {
			return nil, err
		}
		return &Boolean{At: n.At, Value: !b.Value}, nil
	}
	return nil, i.errorWithStack(ErrInternal, n.At, "unknown unary operator %s", n.Op)
}

func (i *Interp) evalBinary(n *ast.Binary, sc *Scope) (Value, error) {
	// Short-circuit operators evaluate the right side only on demand.
	if n.Op == "&&" || n.Op == "||" {
		left, err := i.visitExpr(n.Left, sc)
		if err != nil {
			return nil, err
		}
		lb, err := i.asBoolean(left, n.At)
		if err != nil {
			return nil, err
		}
		if (n.Op == "&&" && !lb.Value) || (n.Op == "||" && lb.Value) {
			return &Boolean{At: n.At, Value: lb.Value}, nil
		}
		right, err := i.visitExpr(n.Right, sc)
		if err != nil {
			return nil, err
		}
		rb, err := i.asBoolean(right, n.At)
		if err != nil {
			return nil, err
		}
		return &Boolean{At: n.At, Value: rb.Value}, nil
	}

	left, err := i.visitExpr(n.Left, sc)
	if err != nil {
		return nil, err
	}
	right, err := i.visitExpr(n.Right, sc)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "+":
		return i.merge(left, right, n.At)
	case "-", "*", "/", "%":
		return i.arith(n.Op, left, right, n.At)
	case "<", "<=", ">", ">=":
		return i.compare(n.Op, left, right, n.At)
	case "==", "!=":
		eq, err := i.Equal(left, right, n.At)
		if err != nil {
			return nil, err
		}
		if n.Op == "!=" {
			eq = !eq
		}
		return &Boolean{At: n.At, Value: eq}, nil
	case "in":
		name, err := i.asString(left, n.At)
		if err != nil {
			return nil, err
		}
		obj, err := i.asObject(right, n.At)
		if err != nil {
			return nil, err
		}
		return &Boolean{At: n.At, Value: obj.ContainsKey(name.Value)}, nil
	}
	return nil, i.errorWithStack(ErrInternal, n.At, "unknown binary operator %s", n.Op)
}

func (i *Interp) arith(op string, left, right Value, pos ast.Position) (Value, error) {
	l, err := i.asNumber(left, pos)
	if err != nil {
		return nil, err
	}
	r, err := i.asNumber(right, pos)
	if err != nil {
		return nil, err
	}
	var out float64
	switch op {
	case "-":
		out = l.Value - r.Value
	case "*":
		out = l.Value * r.Value
	case "/":
		if r.Value == 0 {
			return nil, i.errorWithStack(ErrInternal, pos, "division by zero")
		}
		out = l.Value / r.Value
	case "%":
		if r.Value == 0 {
			return nil, i.errorWithStack(ErrInternal, pos, "division by zero")
		}
		out = math.Mod(l.Value, r.Value)
	}
	return &Number{At: pos, Value: out}, nil
}

func (i *Interp) compare(op string, left, right Value, pos ast.Position) (Value, error) {
	var cmp int
	switch l := left.(type) {
	case *Number:
		r, err := i.asNumber(right, pos)
		if err != nil {
			return nil, err
		}
		switch {
		case l.Value < r.Value:
			cmp = -1
		case l.Value > r.Value:
			cmp = 1
		}
	case *String:
		r, err := i.asString(right, pos)
		if err != nil {
			return nil, err
		}
		switch {
		case l.Value < r.Value:
			cmp = -1
		case l.Value > r.Value:
			cmp = 1
		}
	default:
		return nil, i.errorWithStack(ErrTypeMismatch, pos, "cannot compare %s and %s", left.Kind(), right.Kind())
	}
	var out bool
	switch op {
	case "<":
		out = cmp < 0
	case "<=":
		out = cmp <= 0
	case ">":
		out = cmp > 0
	case ">=":
		out = cmp >= 0
	}
	return &Boolean{At: pos, Value: out}, nil
}

func (i *Interp) evalConditional(n *ast.Conditional, sc *Scope) (Value, error) {
	cond, err := i.visitExpr(n.Cond, sc)
	if err != nil {
		return nil, err
	}
	b, err := i.asBoolean(cond, n.At)
	if err != nil {
		return nil, err
	}
	if b.Value {
		return i.visitExpr(n.Then, sc)
	}
	if n.Else == nil {
		return &Null{At: n.At}, nil
	}
	return i.visitExpr(n.Else, sc)
}

func (i *Interp) evalErrorExpr(n *ast.ErrorExpr, sc *Scope) (Value, error) {
	msg, err := i.visitExpr(n.Message, sc)
	if err != nil {
		return nil, err
	}
	s, err := i.stringify(msg, n.At)
	if err != nil {
		return nil, err
	}
	return nil, i.errorWithStack(ErrExplicit, n.At, "%s", s)
}

func (i *Interp) evalAssertExpr(n *ast.AssertExpr, sc *Scope) (Value, error) {
	cond, err := i.visitExpr(n.Cond, sc)
	if err != nil {
		return nil, err
	}
	b, err := i.asBoolean(cond, n.At)
	if err != nil {
		return nil, err
	}
	if !b.Value {
		msg := "assertion failed"
		if n.Message != nil {
			mv, err := i.visitExpr(n.Message, sc)
			if err != nil {
				return nil, err
			}
			s, err := i.stringify(mv, n.At)
			if err != nil {
				return nil, err
			}
			msg = s
		}
		return nil, i.errorWithStack(ErrAssertionFailed, n.At, "%s", msg)
	}
	return i.visitExpr(n.Rest, sc)
}

func (i *Interp) evalArrayComp(n *ast.ArrayComp, sc *Scope) (Value, error) {
	over, err := i.visitExpr(n.Over, sc)
	if err != nil {
		return nil, err
	}
	arr, err := i.asArray(over, n.At)
	if err != nil {
		return nil, err
	}
	var elems []*Thunk
	for _, t := range arr.Elements {
		esc := sc.ExtendSimple([]int{n.Slot}, []*Thunk{t})
		if n.Cond != nil {
			cond, err := i.visitExpr(n.Cond, esc)
			if err != nil {
				return nil, err
			}
			b, err := i.asBoolean(cond, n.At)
			if err != nil {
				return nil, err
			}
			if !b.Value {
				continue
			}
		}
		elems = append(elems, NewThunk(func() (Value, error) {
			return i.visitExpr(n.Body, esc)
		}))
	}
	return &Array{At: n.At, Elements: elems}, nil
}
