package evaluator

import (
	"github.com/jxlang/jx/internal/ast"
)

func num(f float64) *Number   { return &Number{Value: f} }
func str(s string) *String    { return &String{Value: s} }
func boolean(b bool) *Boolean { return &Boolean{Value: b} }

func at(line int) ast.Position {
	return ast.Position{File: "test.jx", Line: line, Column: 1}
}

// constMember builds a cacheable member that always yields v.
func constMember(v Value, vis ast.Visibility) Member {
	return Member{
		Visibility: vis,
		Cacheable:  true,
		Compute: func(self, super *Object, i *Interp) (Value, error) {
			return v, nil
		},
	}
}

// countingMember yields v and bumps a counter on every computation.
func countingMember(v Value, cacheable bool, count *int) Member {
	return Member{
		Visibility: ast.Visible,
		Cacheable:  cacheable,
		Compute: func(self, super *Object, i *Interp) (Value, error) {
			*count++
			return v, nil
		},
	}
}

// obj builds an object from name/member pairs in declaration order.
func obj(members ...NamedMember) *Object {
	return NewObject(at(1), members, nil)
}

func named(name string, m Member) NamedMember {
	return NamedMember{Name: name, Member: m}
}

func forceNumber(t interface {
	Helper()
	Fatalf(string, ...interface{})
}, v Value, err error) float64 {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := v.(*Number)
	if !ok {
		t.Fatalf("expected number, got %T", v)
	}
	return n.Value
}
