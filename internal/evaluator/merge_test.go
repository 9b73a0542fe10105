package evaluator

import (
	"errors"
	"testing"

	"github.com/jxlang/jx/internal/ast"
)

func TestMergeStringConcatenation(t *testing.T) {
	tests := []struct {
		name  string
		left  Value
		right Value
		want  string
	}{
		{"string and number", str("a"), num(1), "a1"},
		{"number and string", num(2), str("b"), "2b"},
		{"two strings", str("a"), str("b"), "ab"},
		{"string and bool", str("is "), boolean(true), "is true"},
		{"string and null", str(""), &Null{}, "null"},
		{"string and array", str("xs="), &Array{Elements: []*Thunk{ForcedThunk(num(1)), ForcedThunk(num(2))}}, "xs=[1,2]"},
	}
	i := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := i.merge(tt.left, tt.right, at(1))
			if err != nil {
				t.Fatalf("merge: %v", err)
			}
			s, ok := v.(*String)
			if !ok {
				t.Fatalf("merge produced %T, want string", v)
			}
			if s.Value != tt.want {
				t.Errorf("merge = %q, want %q", s.Value, tt.want)
			}
		})
	}
}

func TestMergeNumbers(t *testing.T) {
	i := New()
	v, err := i.merge(num(1.5), num(2.25), at(1))
	if forceNumber(t, v, err) != 3.75 {
		t.Errorf("1.5 + 2.25 = %v", v)
	}
}

func TestMergeArraysStaysLazy(t *testing.T) {
	i := New()
	forced := false
	lazy := NewThunk(func() (Value, error) {
		forced = true
		return num(99), nil
	})
	left := &Array{Elements: []*Thunk{ForcedThunk(num(1)), ForcedThunk(num(2))}}
	right := &Array{Elements: []*Thunk{lazy}}

	v, err := i.merge(left, right, at(1))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	arr := v.(*Array)
	if len(arr.Elements) != 3 {
		t.Fatalf("concat length %d, want 3", len(arr.Elements))
	}
	if forced {
		t.Fatal("array concatenation forced an element")
	}
	ev, err := arr.Elements[2].Force()
	if got := forceNumber(t, ev, err); got != 99 {
		t.Errorf("element 2 = %v, want 99", got)
	}
}

func TestMergeObjectsRightShadowsLeft(t *testing.T) {
	i := New()
	left := obj(
		named("a", constMember(num(1), ast.Visible)),
		named("shared", constMember(num(10), ast.Visible)),
	)
	right := obj(
		named("b", constMember(num(2), ast.Visible)),
		named("shared", constMember(num(20), ast.Visible)),
	)
	v, err := i.merge(left, right, at(1))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	merged := v.(*Object)
	for name, want := range map[string]float64{"a": 1, "b": 2, "shared": 20} {
		fv, err := merged.Value(name, at(1), i)
		if forceNumber(t, fv, err) != want {
			t.Errorf("field %s = %v, want %v", name, fv, want)
		}
	}
	if !merged.ContainsVisibleKey("a") || !merged.ContainsVisibleKey("b") {
		t.Error("merged object does not expose both sides' fields")
	}
	// The right side can still reach the left's value via the chain.
	sv, _, _, err := merged.Super().valueRaw("shared", merged, at(1), i)
	if err != nil {
		t.Fatal(err)
	}
	if sv.(*Number).Value != 10 {
		t.Errorf("super shared = %v, want 10", sv)
	}
}

func TestMergeIncompatibleKinds(t *testing.T) {
	i := New()
	tests := []struct {
		name  string
		left  Value
		right Value
	}{
		{"bool and number", boolean(true), num(1)},
		{"array and object", &Array{}, obj()},
		{"null and null", &Null{}, &Null{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := i.merge(tt.left, tt.right, at(1)); !errors.Is(err, KindOf(ErrTypeMismatch)) {
				t.Errorf("got %v, want TypeMismatch", err)
			}
		})
	}
}
