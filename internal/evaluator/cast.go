package evaluator

import "github.com/jxlang/jx/internal/ast"

// Casts narrow a value to a specific kind, failing with a type
// mismatch that names both the expected and the actual kind.

func (i *Interp) asBoolean(v Value, pos ast.Position) (*Boolean, error) {
	if b, ok := v.(*Boolean); ok {
		return b, nil
	}
	return nil, i.castError(KindBoolean, v, pos)
}

func (i *Interp) asNumber(v Value, pos ast.Position) (*Number, error) {
	if n, ok := v.(*Number); ok {
		return n, nil
	}
	return nil, i.castError(KindNumber, v, pos)
}

func (i *Interp) asString(v Value, pos ast.Position) (*String, error) {
	if s, ok := v.(*String); ok {
		return s, nil
	}
	return nil, i.castError(KindString, v, pos)
}

func (i *Interp) asArray(v Value, pos ast.Position) (*Array, error) {
	if a, ok := v.(*Array); ok {
		return a, nil
	}
	return nil, i.castError(KindArray, v, pos)
}

func (i *Interp) asObject(v Value, pos ast.Position) (*Object, error) {
	if o, ok := v.(*Object); ok {
		return o, nil
	}
	return nil, i.castError(KindObject, v, pos)
}

func (i *Interp) castError(expected Kind, got Value, pos ast.Position) *EvalError {
	return i.errorWithStack(ErrTypeMismatch, pos, "expected %s, got %s", expected, got.Kind())
}
