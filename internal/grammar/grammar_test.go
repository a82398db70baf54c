package grammar

import (
	"testing"

	"github.com/kr/pretty"
)

// TestParseAccepts exercises the raw participle grammar directly (as
// opposed to convert_test.go, which exercises the AST it converts to) over
// inputs chosen to hit each production at least once.
func TestParseAccepts(t *testing.T) {
	inputs := []string{
		"cat",
		`"cat dog"`,
		`"cat dog"~3`,
		"cat*",
		"a*2",
		"cat~",
		"cat~2",
		"/ab+c/",
		"[a TO z]",
		"{a TO *}",
		"title:cat",
		"title:(cat OR dog)",
		"cat AND dog",
		"cat && dog",
		"cat OR dog",
		"cat || dog",
		"NOT cat",
		"!cat",
		"+cat -dog",
		"(cat dog)",
		"(cat dog)@1",
		"cat^2",
		"(cat OR dog)^0.5",
		"cat AND dog OR mouse",
		`title:"The cat" AND (pass OR fail)`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			tree, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", in, err)
			}
			if tree == nil || tree.First == nil {
				t.Fatalf("Parse(%q) produced an empty tree", in)
			}
			t.Logf("tree: %# v", pretty.Formatter(tree))
		})
	}
}

func TestParseRejects(t *testing.T) {
	inputs := []string{
		"",
		"cat OR",
		"(cat",
		"[a TO",
		"title:",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", in)
			}
		})
	}
}
