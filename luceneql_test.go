package luceneql_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kortschak/luceneql"
	"github.com/kortschak/luceneql/ast"
)

func TestParsePrintRoundTrip(t *testing.T) {
	inputs := []string{
		"the",
		`"The cat jumped"`,
		`fieldName:"The cat jumped"`,
		`"derp lerp"~3`,
		"derp AND lerp slerp orA OR orB last",
		`(title:test AND (pass OR fail)) AND "extra phrase"`,
		"cat*",
		"cat~",
		"cat~2",
		"[a TO z]",
		"+cat -dog",
		"(cat dog mouse)@2",
		"cat^2.5",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			mq, err := luceneql.Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", in, err)
			}
			printed := luceneql.PrintMulti(mq)
			reparsed, err := luceneql.Parse(printed)
			if err != nil {
				t.Fatalf("Parse(Print(Parse(%q))) = %q failed to reparse: %v", in, printed, err)
			}
			if diff := cmp.Diff(mq, reparsed); diff != "" {
				t.Errorf("round trip mismatch for %q (-orig +reparsed):\n%s", in, diff)
				t.Logf("printed: %q", printed)
			}
		})
	}
}

func TestParseFieldScope(t *testing.T) {
	mq, err := luceneql.Parse("fieldName:The cat jumped")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	want := ast.MultiQuery{
		&ast.Field{Name: "fieldName", Query: &ast.Term{Value: "The"}},
		&ast.Term{Value: "cat"},
		&ast.Term{Value: "jumped"},
	}
	if diff := cmp.Diff(want, mq); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		t.Logf("got: %# v", pretty.Formatter(mq))
	}
}

func TestParseWhitespaceInsensitivity(t *testing.T) {
	a, err := luceneql.Parse("cat AND dog")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	b, err := luceneql.Parse("  cat   AND\tdog  ")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("whitespace-insensitivity mismatch (-tight +loose):\n%s", diff)
	}
}

func TestParseRejectsReservedAndTrailingOperators(t *testing.T) {
	inputs := []string{"OR", "AND", "cat OR", "cat AND", "cat OR ", "AND:cat"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if _, err := luceneql.Parse(in); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", in)
			}
		})
	}
}

func TestParseInvalidDecimalDistance(t *testing.T) {
	_, err := luceneql.Parse(`"derp lerp"~3.2`)
	if err == nil {
		t.Fatal("Parse() succeeded, want error")
	}
	var pe *luceneql.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error is not a *luceneql.ParseError: %#v", err)
	}
	if pe.Kind != luceneql.InvalidNumber {
		t.Errorf("Kind = %v, want InvalidNumber", pe.Kind)
	}
}

func TestParseTrailingInput(t *testing.T) {
	_, err := luceneql.Parse(`"AND":cat`)
	if err == nil {
		t.Fatal("Parse() succeeded, want error")
	}
	var pe *luceneql.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error is not a *luceneql.ParseError: %#v", err)
	}
	if pe.Kind != luceneql.TrailingInput {
		t.Errorf("Kind = %v, want TrailingInput", pe.Kind)
	}
}

func TestParseErrorCorrelationIDsAreUnique(t *testing.T) {
	_, err1 := luceneql.Parse("cat OR")
	_, err2 := luceneql.Parse("cat OR")
	var pe1, pe2 *luceneql.ParseError
	if !errors.As(err1, &pe1) || !errors.As(err2, &pe2) {
		t.Fatal("expected both failures to be *luceneql.ParseError")
	}
	if pe1.ID == pe2.ID {
		t.Error("two independent parse failures produced the same correlation ID")
	}
}

func TestWithMaxDepth(t *testing.T) {
	if _, err := luceneql.Parse("((((cat))))", luceneql.WithMaxDepth(2)); err == nil {
		t.Error("Parse() with WithMaxDepth(2) succeeded on a 4-deep input, want DepthExceeded")
	}
}

func TestWithMetricsObservesBothOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := luceneql.NewMetrics(reg)

	if _, err := luceneql.Parse("cat", luceneql.WithMetrics(m)); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if _, err := luceneql.Parse("cat OR", luceneql.WithMetrics(m)); err == nil {
		t.Fatal("Parse() succeeded, want error")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}
	var sawOK, sawErr bool
	for _, f := range families {
		if f.GetName() != "luceneql_parse_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() != "result" {
					continue
				}
				switch l.GetValue() {
				case "ok":
					sawOK = true
				case "error":
					sawErr = true
				}
			}
		}
	}
	if !sawOK || !sawErr {
		t.Errorf("parse_total missing a result label: ok=%v error=%v", sawOK, sawErr)
	}
}

func TestPrintIsTotal(t *testing.T) {
	q := ast.NewMinimumMatch([]ast.Query{&ast.Term{Value: "a"}, &ast.Term{Value: "b"}}, 1)
	if got := luceneql.Print(q); got == "" {
		t.Error("Print() returned empty string")
	}
}
