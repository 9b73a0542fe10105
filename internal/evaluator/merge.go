package evaluator

import "github.com/jxlang/jx/internal/ast"

// merge implements "+" between arbitrary values: string
// concatenation (stringifying the other operand), numeric addition,
// lazy array concatenation, or super-chain extension for objects. Any
// other kind pair is a type mismatch.
func (i *Interp) merge(left, right Value, pos ast.Position) (Value, error) {
	if _, ok := left.(*String); ok {
		return i.concatStrings(left, right, pos)
	}
	if _, ok := right.(*String); ok {
		return i.concatStrings(left, right, pos)
	}
	switch l := left.(type) {
	case *Number:
		if r, ok := right.(*Number); ok {
			return &Number{At: pos, Value: l.Value + r.Value}, nil
		}
	case *Array:
		if r, ok := right.(*Array); ok {
			elems := make([]*Thunk, 0, len(l.Elements)+len(r.Elements))
			elems = append(elems, l.Elements...)
			elems = append(elems, r.Elements...)
			return &Array{At: pos, Elements: elems}, nil
		}
	case *Object:
		if r, ok := right.(*Object); ok {
			// Right's fields shadow left's; right still reaches
			// left's fields via super.
			return r.AddSuper(pos, l), nil
		}
	}
	return nil, i.errorWithStack(ErrTypeMismatch, pos,
		"cannot add %s and %s", left.Kind(), right.Kind())
}

// concatStrings renders the non-string operand to its canonical JSON
// text before concatenating.
func (i *Interp) concatStrings(left, right Value, pos ast.Position) (Value, error) {
	ls, err := i.stringify(left, pos)
	if err != nil {
		return nil, err
	}
	rs, err := i.stringify(right, pos)
	if err != nil {
		return nil, err
	}
	return &String{At: pos, Value: ls + rs}, nil
}

func (i *Interp) stringify(v Value, pos ast.Position) (string, error) {
	if s, ok := v.(*String); ok {
		return s.Value, nil
	}
	return i.ManifestJSON(v)
}
