package evaluator

import "github.com/jxlang/jx/internal/ast"

// Scope is the binding environment an expression is evaluated under:
// the implicit self/super/$ references plus a fixed-size array of
// lazy binding slots. Slot indices are assigned at parse time, so no
// name lookup happens during evaluation.
//
// Scopes are never mutated in place. Extension returns a new scope,
// sharing the parent's binding array whenever no slot changes, which
// makes sharing across sibling closures cheap.
type Scope struct {
	Dollar *Object
	Self   *Object
	Super  *Object

	bindings []*Thunk
}

// NewScope returns an empty scope with capacity for size slots.
func NewScope(size int) *Scope {
	return &Scope{bindings: make([]*Thunk, size)}
}

// Binding returns the thunk bound at the given slot.
func (s *Scope) Binding(slot int) *Thunk {
	if slot < 0 || slot >= len(s.bindings) {
		return nil
	}
	return s.bindings[slot]
}

// Len returns the number of slots in the scope.
func (s *Scope) Len() int { return len(s.bindings) }

// ScopeBind is one deferred binding for Extend. Make receives the
// self/super of the scope being created, so bindings may refer to the
// object they end up part of.
type ScopeBind struct {
	Slot int
	Make func(self, super *Object) *Thunk
}

// Extend returns a new scope with the given bindings and, when
// non-nil, replacement dollar/self references. A non-nil self also
// installs super, even a nil one: entering a root object clears any
// enclosing super. With no bindings the parent's slot array is shared
// structurally.
func (s *Scope) Extend(binds []ScopeBind, dollar, self, super *Object) *Scope {
	next := &Scope{
		Dollar:   s.Dollar,
		Self:     s.Self,
		Super:    s.Super,
		bindings: s.bindings,
	}
	if dollar != nil {
		next.Dollar = dollar
	}
	if self != nil {
		next.Self = self
		next.Super = super
	}
	if len(binds) == 0 {
		return next
	}
	size := len(s.bindings)
	for _, b := range binds {
		if b.Slot >= size {
			size = b.Slot + 1
		}
	}
	next.bindings = make([]*Thunk, size)
	copy(next.bindings, s.bindings)
	for _, b := range binds {
		next.bindings[b.Slot] = b.Make(next.Self, next.Super)
	}
	return next
}

// ExtendSimple is the fast path for function-call binding: the values
// are already-built thunks at known slots and no closure allocation is
// needed.
func (s *Scope) ExtendSimple(slots []int, values []*Thunk) *Scope {
	if len(slots) == 0 {
		return &Scope{
			Dollar:   s.Dollar,
			Self:     s.Self,
			Super:    s.Super,
			bindings: s.bindings,
		}
	}
	size := len(s.bindings)
	for _, slot := range slots {
		if slot >= size {
			size = slot + 1
		}
	}
	bindings := make([]*Thunk, size)
	copy(bindings, s.bindings)
	for i, slot := range slots {
		bindings[slot] = values[i]
	}
	return &Scope{
		Dollar:   s.Dollar,
		Self:     s.Self,
		Super:    s.Super,
		bindings: bindings,
	}
}

// bindVar reads a slot, failing on an unbound one. Unbound slots mean
// the parser assigned slots inconsistently, which is a caller error.
func (s *Scope) bindVar(slot int, name string, pos ast.Position) (*Thunk, error) {
	t := s.Binding(slot)
	if t == nil {
		return nil, newError(ErrInternal, pos, "unbound variable %s (slot %d)", name, slot)
	}
	return t, nil
}
