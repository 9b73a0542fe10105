package evaluator

import (
	"fmt"
	"strings"

	"github.com/jxlang/jx/internal/ast"
)

// Params is the pre-resolved parameter list of a function: names in
// declaration order, the name-to-position index used for named
// arguments, the scope slots each parameter binds to, and the bitsets
// the call validator works over.
type Params struct {
	params    []ast.Param
	names     []string
	slots     []int
	argIndex  map[string]int
	noDefault bitset
}

// NewParams resolves a declared parameter list once, at function
// construction.
func NewParams(decls []ast.Param) *Params {
	p := &Params{
		params:    decls,
		names:     make([]string, len(decls)),
		slots:     make([]int, len(decls)),
		argIndex:  make(map[string]int, len(decls)),
		noDefault: newBitset(len(decls)),
	}
	for idx, d := range decls {
		p.names[idx] = d.Name
		p.slots[idx] = d.Slot
		p.argIndex[d.Name] = idx
		if d.Default == nil {
			p.noDefault.set(idx)
		}
	}
	return p
}

// Names returns the parameter names in declaration order.
func (p *Params) Names() []string { return p.names }

// Function is a closure value: a parameter list and a body evaluated
// in an extension of the definition scope. Functions are ordinary
// values and may be stored, passed and returned.
type Function struct {
	At       ast.Position
	Name     string // for stack traces, empty for anonymous functions
	DefScope *Scope
	Params   *Params
	Body     ast.Expr
}

func (f *Function) Kind() Kind        { return KindFunction }
func (f *Function) Pos() ast.Position { return f.At }
func (f *Function) Inspect() string {
	return fmt.Sprintf("<function(%s)>", strings.Join(f.Params.names, ", "))
}

func (f *Function) describe() string {
	if f.Name != "" {
		return f.Name
	}
	return "anonymous function"
}

// Builtin is a native function exposed by the host through the same
// call path as language functions. Builtins bind positionally.
type Builtin struct {
	Name  string
	Arity int
	Fn    func(i *Interp, pos ast.Position, args []Value) (Value, error)
}

func (b *Builtin) Kind() Kind        { return KindFunction }
func (b *Builtin) Pos() ast.Position { return ast.Position{} }
func (b *Builtin) Inspect() string   { return fmt.Sprintf("<builtin %s>", b.Name) }

// Apply calls a function value. argNames runs parallel to args; an
// empty name marks a positional argument, and a nil slice means the
// call is purely positional.
func (i *Interp) Apply(fnVal Value, argNames []string, args []*Thunk, callPos ast.Position) (Value, error) {
	switch fn := fnVal.(type) {
	case *Function:
		return i.applyFunction(fn, argNames, args, callPos)
	case *Builtin:
		return i.applyBuiltin(fn, argNames, args, callPos)
	default:
		return nil, i.errorWithStack(ErrTypeMismatch, callPos,
			"expected function, got %s", fnVal.Kind())
	}
}

func (i *Interp) applyFunction(fn *Function, argNames []string, args []*Thunk, callPos ast.Position) (Value, error) {
	ps := fn.Params
	n := len(ps.params)

	named := false
	for _, name := range argNames {
		if name != "" {
			named = true
			break
		}
	}

	// Fast path: pure positional binding, slot i = parameter i, no
	// validation pass.
	if !named && len(args) == n {
		sc := fn.DefScope.ExtendSimple(ps.slots, args)
		return i.evalCall(fn, sc, callPos)
	}

	// Resolve every argument to a parameter position.
	i.validationPasses++
	bound := newBitset(n)
	repeated := newBitset(n)
	byParam := make([]*Thunk, n)
	var unknown []string
	for j, t := range args {
		name := ""
		if argNames != nil {
			name = argNames[j]
		}
		var idx int
		if name == "" {
			if j >= n {
				return nil, i.errorWithStack(ErrTooManyArguments, callPos,
					"too many arguments, function has %d parameter%s", n, pluralSuffix(n))
			}
			idx = j
		} else {
			var ok bool
			idx, ok = ps.argIndex[name]
			if !ok {
				unknown = append(unknown, name)
				continue
			}
		}
		if bound.has(idx) {
			repeated.set(idx)
			continue
		}
		bound.set(idx)
		byParam[idx] = t
	}

	// Three-way diagnosis over the bitsets. Duplicates and unknowns
	// point at the call site; missing arguments point at the
	// definition so the diagnostic names the parameter declaration.
	if err := failIfNonEmpty(repeated, ErrDuplicateBinding, callPos, ps.names,
		"parameter%s bound more than once: %s"); err != nil {
		return nil, err
	}
	missing := ps.noDefault.andNot(bound)
	if err := failIfNonEmpty(missing, ErrMissingArgument, fn.At, ps.names,
		"missing argument%s: %s"); err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		return nil, i.errorWithStack(ErrUnknownParameter, callPos,
			"function has no parameter%s %s", pluralSuffix(len(unknown)), strings.Join(unknown, ", "))
	}

	// Defaulted slots evaluate their default expression in the call
	// scope itself, so defaults may refer to other parameters.
	var sc *Scope
	values := make([]*Thunk, n)
	for idx := range ps.params {
		if bound.has(idx) {
			values[idx] = byParam[idx]
			continue
		}
		def := ps.params[idx].Default
		values[idx] = NewThunk(func() (Value, error) {
			return i.visitExpr(def, sc)
		})
	}
	sc = fn.DefScope.ExtendSimple(ps.slots, values)
	return i.evalCall(fn, sc, callPos)
}

func (i *Interp) applyBuiltin(b *Builtin, argNames []string, args []*Thunk, callPos ast.Position) (Value, error) {
	for _, name := range argNames {
		if name != "" {
			// Builtins have no named-argument table to map through.
			return nil, i.errorWithStack(ErrNoSuchParameter, callPos,
				"function has no parameter %s", name)
		}
	}
	if len(args) > b.Arity {
		return nil, i.errorWithStack(ErrTooManyArguments, callPos,
			"too many arguments, function has %d parameter%s", b.Arity, pluralSuffix(b.Arity))
	}
	if len(args) < b.Arity {
		return nil, i.errorWithStack(ErrMissingArgument, callPos,
			"wrong number of arguments: expected %d, got %d", b.Arity, len(args))
	}
	forced := make([]Value, len(args))
	for idx, t := range args {
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		forced[idx] = v
	}
	i.pushCall(b.Name, callPos)
	defer i.popCall()
	return b.Fn(i, callPos, forced)
}

func (i *Interp) evalCall(fn *Function, sc *Scope, callPos ast.Position) (Value, error) {
	i.pushCall(fn.describe(), callPos)
	defer i.popCall()
	return i.visitExpr(fn.Body, sc)
}
