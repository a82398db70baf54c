// Package grammar implements the combinator-style recursive-descent
// grammar over the query language using github.com/alecthomas/participle/v2,
// plus the conversion of its raw parse tree into ast.Query values.
//
// The grammar productions below map onto the query language's surface
// grammar one for one; the names intentionally echo the shape of a
// hand-rolled recursive descent parser (sequence / query / field / atom /
// leaf) so the grammar tags read as close to the prose grammar as
// participle allows.
package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	qlexer "github.com/kortschak/luceneql/internal/lexer"
)

// rawSequence is the flat top-level (and group-inner) sequence: a seed
// query followed by zero or more (optional operator, query) items. An
// absent operator is the implicit-concatenation case.
type rawSequence struct {
	First *rawQuery    `@@`
	Rest  []*rawOpItem `@@*`
}

type rawOpItem struct {
	Op    string    `@( "AND" | "&&" | "OR" | "||" )?`
	Query *rawQuery `@@`
}

// rawQuery is a single query unit: an optional NOT/!, an optional
// adjacency-checked +/- sign, or a bare field-or-atom.
type rawQuery struct {
	Pos    lexer.Position
	Not    *rawNot    `  @@`
	Signed *rawSigned `| @@`
	Base   *rawBase   `| @@`
}

type rawNot struct {
	Keyword string    `@( "!" | "NOT" )`
	Query   *rawQuery `@@`
}

type rawSigned struct {
	Pos  lexer.Position
	Sign string   `@( "+" | "-" )`
	Base *rawBase `@@`
}

// rawBase is a field qualifier or a bare atom.
type rawBase struct {
	Pos   lexer.Position
	Field *rawField `  @@`
	Atom  *rawAtom  `| @@`
}

type rawField struct {
	Pos  lexer.Position
	Name string   `@Ident ":"`
	Atom *rawAtom `@@`
}

// rawAtom is a group or a leaf, with an optional trailing boost.
type rawAtom struct {
	Pos      lexer.Position
	Group    *rawGroup `  @@`
	Leaf     *rawLeaf  `| @@`
	BoostNum string    `( "^" @Number )?`
}

type rawGroup struct {
	Pos    lexer.Position
	Seq    *rawSequence `"(" @@ ")"`
	MinNum string       `( "@" @Number )?`
}

// rawLeaf is a single term-position leaf, chosen by lookahead on the
// leading token: phrase, regex, range, or identifier-rooted term.
type rawLeaf struct {
	Phrase *rawPhrase    `  @@`
	Regex  string        `| @Regex`
	Range  *rawRange     `| @@`
	Ident  *rawIdentTerm `| @@`
}

type rawPhrase struct {
	Pos     lexer.Position
	Text    string `@Phrase`
	ProxNum string `( "~" @Number )?`
}

type rawRange struct {
	Pos          lexer.Position
	LowerBracket string `@( "[" | "{" )`
	Lower        string `( @Ident | @Number | @"*" )`
	Upper        string `"TO" ( @Ident | @Number | @"*" )`
	UpperBracket string `@( "]" | "}" )`
}

// rawIdentTerm is an identifier together with any interleaved wildcard
// atoms and a trailing fuzzy suffix; convert.go classifies the
// combination into a Term, Prefix, WildCard, or Fuzzy node.
type rawIdentTerm struct {
	Pos   lexer.Position
	Text  string          `@Ident`
	Wild  []*rawWildPart  `@@*`
	Fuzzy *rawFuzzySuffix `( @@ )?`
}

// rawWildPart is one wildcard mark ('*' or '?') plus whatever literal run
// follows it before the next mark, the next fuzzy suffix, or the end of
// the term. Unlike the identifier read before the first mark, that run has
// no leading-letter constraint — "a*2" must decompose into Str("a"),
// ManyChar, Str("2") — so it is captured as however many Ident/Number
// tokens follow, concatenated, rather than a single @Ident.
type rawWildPart struct {
	Mark string `@( "*" | "?" )`
	Text string `@( Ident | Number )*`
}

type rawFuzzySuffix struct {
	Pos lexer.Position
	Num string `"~" @Number?`
}

var parser = participle.MustBuild[rawSequence](
	participle.Lexer(qlexer.Def),
	participle.Elide(qlexer.Whitespace),
	participle.UseLookahead(16),
)

// Parse runs the participle grammar over input and returns its raw parse
// tree. Callers should use Convert (see convert.go) to obtain an
// ast.MultiQuery from the result.
func Parse(input string) (*rawSequence, error) {
	return parser.ParseString("", input)
}
