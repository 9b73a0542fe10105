package evaluator

import (
	"fmt"

	"github.com/jxlang/jx/internal/ast"
)

// Member describes a single field declaration of one object in a
// super chain. Compute produces the field value for a given resolving
// self; it receives the declaring object's super so that additive
// bodies can reach the ancestor value.
type Member struct {
	Additive   bool
	Visibility ast.Visibility
	Cacheable  bool
	Compute    func(self, super *Object, i *Interp) (Value, error)
}

// NamedMember pairs a field name with its member descriptor, keeping
// declaration order.
type NamedMember struct {
	Name   string
	Member Member
}

// AssertFn runs one object's assertion clauses against the final
// composed self. It receives the declaring level's super so assertion
// bodies can reach ancestor fields directly.
type AssertFn func(self, super *Object, i *Interp) error

// Object is an object value: an ordered member table plus an optional
// super object it inherits from. Objects are immutable once
// constructed except for their caches, which are append-only.
type Object struct {
	At ast.Position

	names   []string
	members map[string]*Member
	super   *Object
	assert  AssertFn

	// Field values already computed on behalf of some self. The self
	// component is nil for the common case self == this.
	cache map[fieldCacheKey]Value

	// Selves whose assertion pass has already run (or is running).
	assertsRun map[*Object]struct{}

	// Derived key views, memoized once per instance.
	keysDone     bool
	hiddenByName map[string]bool
	allNames     []string
	visibleNames []string
}

type fieldCacheKey struct {
	name string
	self *Object
}

// NewObject constructs an object with no super from ordered member
// declarations. A nil assert means the object declares no assertions.
func NewObject(at ast.Position, members []NamedMember, assert AssertFn) *Object {
	o := &Object{
		At:      at,
		names:   make([]string, 0, len(members)),
		members: make(map[string]*Member, len(members)),
		assert:  assert,
	}
	for idx := range members {
		m := members[idx]
		o.names = append(o.names, m.Name)
		member := m.Member
		o.members[m.Name] = &member
	}
	return o
}

func (o *Object) Kind() Kind        { return KindObject }
func (o *Object) Pos() ast.Position { return o.At }
func (o *Object) Inspect() string {
	return fmt.Sprintf("<object %d field(s)>", len(o.AllKeyNames()))
}

// Super returns the inheritance parent, or nil.
func (o *Object) Super() *Object { return o.super }

// AddSuper returns a new object whose super chain ends in parent: the
// existing chain is rebuilt on top of it, so parent becomes the
// ultimate ancestor. This realizes "+" between objects as chain
// composition rather than member copying.
func (o *Object) AddSuper(pos ast.Position, parent *Object) *Object {
	var chain []*Object
	for cur := o; cur != nil; cur = cur.super {
		chain = append(chain, cur)
	}
	result := parent
	for idx := len(chain) - 1; idx >= 0; idx-- {
		orig := chain[idx]
		result = &Object{
			At:      orig.At,
			names:   orig.names,
			members: orig.members,
			super:   result,
			assert:  orig.assert,
		}
	}
	return result
}

// Value resolves a field on this object.
func (o *Object) Value(name string, pos ast.Position, i *Interp) (Value, error) {
	return o.ValueFor(o, name, pos, i)
}

// ValueFor resolves a field starting the member lookup at this object
// while keeping self fixed; super access uses it with the subclass as
// self.
func (o *Object) ValueFor(self *Object, name string, pos ast.Position, i *Interp) (Value, error) {
	if err := o.TriggerAsserts(self, i); err != nil {
		return nil, err
	}
	key := fieldCacheKey{name: name}
	if self != o {
		key.self = self
	}
	if v, ok := o.cache[key]; ok {
		return v, nil
	}
	v, found, cacheable, err := o.valueRaw(name, self, pos, i)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, i.errorWithStack(ErrFieldNotFound, pos, "field does not exist: %s", name)
	}
	if cacheable {
		if o.cache == nil {
			o.cache = make(map[fieldCacheKey]Value)
		}
		o.cache[key] = v
	}
	return v, nil
}

// valueRaw walks the chain outward from this object. Only the
// outermost computation is cached, and only when the member allows it.
func (o *Object) valueRaw(name string, self *Object, pos ast.Position, i *Interp) (v Value, found, cacheable bool, err error) {
	for cur := o; cur != nil; cur = cur.super {
		m, ok := cur.members[name]
		if !ok {
			continue
		}
		own, err := m.Compute(self, cur.super, i)
		if err != nil {
			return nil, false, false, err
		}
		if m.Additive && cur.super != nil && cur.super.ContainsKey(name) {
			inherited, _, _, err := cur.super.valueRaw(name, self, pos, i)
			if err != nil {
				return nil, false, false, err
			}
			merged, err := i.merge(inherited, own, pos)
			if err != nil {
				return nil, false, false, err
			}
			return merged, true, m.Cacheable, nil
		}
		return own, true, m.Cacheable, nil
	}
	return nil, false, false, nil
}

// TriggerAsserts runs every assertion declared along the chain, root
// ancestor first and this object last, always against the final self.
// The pass runs at most once per (object, self) pair; it is marked as
// running up front so assertion bodies may read fields of self.
func (o *Object) TriggerAsserts(self *Object, i *Interp) error {
	if _, done := o.assertsRun[self]; done {
		return nil
	}
	if o.assertsRun == nil {
		o.assertsRun = make(map[*Object]struct{})
	}
	o.assertsRun[self] = struct{}{}
	var chain []*Object
	for cur := o; cur != nil; cur = cur.super {
		chain = append(chain, cur)
	}
	for idx := len(chain) - 1; idx >= 0; idx-- {
		if chain[idx].assert == nil {
			continue
		}
		if err := chain[idx].assert(self, chain[idx].super, i); err != nil {
			return err
		}
	}
	return nil
}

// ensureKeys derives the effective key set, walking the chain from the
// furthest ancestor to this object so later declarations win. A
// default-visibility declaration inherits the hiddenness it overrides;
// hidden hides; force-visible un-hides.
func (o *Object) ensureKeys() {
	if o.keysDone {
		return
	}
	var chain []*Object
	for cur := o; cur != nil; cur = cur.super {
		chain = append(chain, cur)
	}
	hidden := make(map[string]bool)
	var order []string
	for idx := len(chain) - 1; idx >= 0; idx-- {
		level := chain[idx]
		for _, name := range level.names {
			m := level.members[name]
			if _, seen := hidden[name]; !seen {
				order = append(order, name)
				hidden[name] = m.Visibility == ast.Hidden
				continue
			}
			switch m.Visibility {
			case ast.Hidden:
				hidden[name] = true
			case ast.ForceVisible:
				hidden[name] = false
			}
		}
	}
	visible := make([]string, 0, len(order))
	for _, name := range order {
		if !hidden[name] {
			visible = append(visible, name)
		}
	}
	o.hiddenByName = hidden
	o.allNames = order
	o.visibleNames = visible
	o.keysDone = true
}

// HasKeys reports whether any field is declared anywhere in the chain.
func (o *Object) HasKeys() bool {
	o.ensureKeys()
	return len(o.allNames) > 0
}

// ContainsKey reports whether the name is declared anywhere in the
// chain, hidden or not.
func (o *Object) ContainsKey(name string) bool {
	o.ensureKeys()
	_, ok := o.hiddenByName[name]
	return ok
}

// ContainsVisibleKey reports whether the name resolves to a visible
// field.
func (o *Object) ContainsVisibleKey(name string) bool {
	o.ensureKeys()
	hidden, ok := o.hiddenByName[name]
	return ok && !hidden
}

// AllKeyNames returns every declared key in effective declaration
// order.
func (o *Object) AllKeyNames() []string {
	o.ensureKeys()
	return o.allNames
}

// VisibleKeyNames returns the visible keys in effective declaration
// order, not alphabetical.
func (o *Object) VisibleKeyNames() []string {
	o.ensureKeys()
	return o.visibleNames
}
