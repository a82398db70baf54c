package ast_test

import (
	"testing"

	"github.com/kortschak/luceneql/ast"
)

func TestValidFieldName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"simple", "title", true},
		{"underscore body", "field_name_1", true},
		{"leading digit rejected", "1field", false},
		{"empty rejected", "", false},
		{"AND reserved", "AND", false},
		{"OR reserved", "OR", false},
		{"NOT reserved", "NOT", false},
		{"hyphen rejected", "field-name", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ast.ValidFieldName(tc.in); got != tc.want {
				t.Errorf("ValidFieldName(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewFieldRejectsReserved(t *testing.T) {
	if _, err := ast.NewField("OR", &ast.Term{Value: "x"}); err == nil {
		t.Error("NewField(\"OR\", ...) succeeded, want error")
	}
}

func TestNewOrNewAndPanicOnArity(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"Or empty", func() { ast.NewOr(nil) }},
		{"Or single", func() { ast.NewOr([]ast.Query{&ast.Term{Value: "a"}}) }},
		{"And empty", func() { ast.NewAnd(nil) }},
		{"And single", func() { ast.NewAnd([]ast.Query{&ast.Term{Value: "a"}}) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic, got none")
				}
			}()
			tc.fn()
		})
	}
}

func TestNewMinimumMatchPanicsOnNegativeMin(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic, got none")
		}
	}()
	ast.NewMinimumMatch([]ast.Query{&ast.Term{Value: "a"}}, -1)
}

func TestNewMultiQueryRejectsEmpty(t *testing.T) {
	if _, err := ast.NewMultiQuery(nil); err == nil {
		t.Error("NewMultiQuery(nil) succeeded, want error")
	}
}

func TestIsTerm(t *testing.T) {
	if !ast.IsTerm(&ast.Term{Value: "a"}) {
		t.Error("IsTerm(Term) = false, want true")
	}
	if ast.IsTerm(ast.NewAnd([]ast.Query{&ast.Term{Value: "a"}, &ast.Term{Value: "b"}})) {
		t.Error("IsTerm(And) = true, want false")
	}
}
