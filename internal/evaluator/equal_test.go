package evaluator

import (
	"errors"
	"testing"

	"github.com/jxlang/jx/internal/ast"
)

func TestEqualScalars(t *testing.T) {
	tests := []struct {
		name string
		x, y Value
		want bool
	}{
		{"nulls", &Null{}, &Null{}, true},
		{"booleans equal", boolean(true), boolean(true), true},
		{"booleans differ", boolean(true), boolean(false), false},
		{"numbers equal", num(1.5), num(1.5), true},
		{"numbers differ", num(1), num(2), false},
		{"strings equal", str("a"), str("a"), true},
		{"strings differ", str("a"), str("b"), false},
		{"kind mismatch", num(1), str("1"), false},
		{"null vs false", &Null{}, boolean(false), false},
	}
	i := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := i.Equal(tt.x, tt.y, at(1))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.x.Inspect(), tt.y.Inspect(), got, tt.want)
			}
		})
	}
}

func TestEqualArrays(t *testing.T) {
	i := New()
	x := &Array{Elements: thunks(num(1), str("a"))}
	y := &Array{Elements: thunks(num(1), str("a"))}
	if eq, err := i.Equal(x, y, at(1)); err != nil || !eq {
		t.Errorf("equal arrays: got %v, %v", eq, err)
	}

	short := &Array{Elements: thunks(num(1))}
	if eq, err := i.Equal(x, short, at(1)); err != nil || eq {
		t.Errorf("length mismatch: got %v, %v", eq, err)
	}

	z := &Array{Elements: thunks(num(1), str("b"))}
	if eq, err := i.Equal(x, z, at(1)); err != nil || eq {
		t.Errorf("element mismatch: got %v, %v", eq, err)
	}
}

func TestEqualNestedArrays(t *testing.T) {
	i := New()
	x := &Array{Elements: thunks(&Array{Elements: thunks(num(2))})}
	y := &Array{Elements: thunks(&Array{Elements: thunks(num(2))})}
	if eq, err := i.Equal(x, y, at(1)); err != nil || !eq {
		t.Errorf("nested arrays: got %v, %v", eq, err)
	}
}

func TestEqualObjects(t *testing.T) {
	i := New()
	x := obj(
		named("a", constMember(num(1), ast.Visible)),
		named("h", constMember(num(7), ast.Hidden)),
	)
	y := obj(named("a", constMember(num(1), ast.Visible)))
	// Hidden fields do not participate.
	if eq, err := i.Equal(x, y, at(1)); err != nil || !eq {
		t.Errorf("hidden field ignored: got %v, %v", eq, err)
	}

	z := obj(named("a", constMember(num(2), ast.Visible)))
	if eq, err := i.Equal(x, z, at(1)); err != nil || eq {
		t.Errorf("value mismatch: got %v, %v", eq, err)
	}

	w := obj(named("b", constMember(num(1), ast.Visible)))
	if eq, err := i.Equal(x, w, at(1)); err != nil || eq {
		t.Errorf("key mismatch: got %v, %v", eq, err)
	}
}

func TestEqualFunctionsError(t *testing.T) {
	i := New()
	fn := &Function{At: at(1), DefScope: NewScope(0), Params: NewParams(nil), Body: &ast.NullLit{At: at(1)}}
	if _, err := i.Equal(fn, fn, at(1)); !errors.Is(err, KindOf(ErrTypeMismatch)) {
		t.Errorf("got %v, want TypeMismatch", err)
	}
	if _, err := i.Equal(num(1), fn, at(1)); !errors.Is(err, KindOf(ErrTypeMismatch)) {
		t.Errorf("got %v, want TypeMismatch", err)
	}
}
