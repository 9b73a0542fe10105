package evaluator

import "github.com/jxlang/jx/internal/ast"

// Equal is deep value equality. Arrays compare elementwise, objects
// compare their visible fields; functions cannot be tested for
// equality.
func (i *Interp) Equal(x, y Value, pos ast.Position) (bool, error) {
	if x.Kind() == KindFunction || y.Kind() == KindFunction {
		return false, i.errorWithStack(ErrTypeMismatch, pos, "cannot test equality of functions")
	}
	if x.Kind() != y.Kind() {
		return false, nil
	}
	switch a := x.(type) {
	case *Null:
		return true, nil
	case *Boolean:
		return a.Value == y.(*Boolean).Value, nil
	case *Number:
		return a.Value == y.(*Number).Value, nil
	case *String:
		return a.Value == y.(*String).Value, nil
	case *Array:
		b := y.(*Array)
		if len(a.Elements) != len(b.Elements) {
			return false, nil
		}
		for idx := range a.Elements {
			av, err := a.Elements[idx].Force()
			if err != nil {
				return false, err
			}
			bv, err := b.Elements[idx].Force()
			if err != nil {
				return false, err
			}
			eq, err := i.Equal(av, bv, pos)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case *Object:
		b := y.(*Object)
		akeys := a.VisibleKeyNames()
		bkeys := b.VisibleKeyNames()
		if len(akeys) != len(bkeys) {
			return false, nil
		}
		for _, name := range akeys {
			if !b.ContainsVisibleKey(name) {
				return false, nil
			}
			av, err := a.Value(name, pos, i)
			if err != nil {
				return false, err
			}
			bv, err := b.Value(name, pos, i)
			if err != nil {
				return false, err
			}
			eq, err := i.Equal(av, bv, pos)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	}
	return false, i.errorWithStack(ErrInternal, pos, "cannot compare %s values", x.Kind())
}
