// Package lexer defines the lexical rules shared by internal/grammar's
// participle grammar: phrases, regex literals, range brackets, numbers,
// identifiers, and the punctuation used by boolean/boost/fuzzy/proximity
// syntax.
package lexer

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Token type names, exported so internal/grammar can reference them by
// name in its participle struct tags (e.g. `@Ident`).
const (
	Phrase     = "Phrase"
	Regex      = "Regex"
	Number     = "Number"
	Ident      = "Ident"
	Operator   = "Operator"
	Whitespace = "Whitespace"
)

// Def is the shared lexer definition. Rules are tried in order at each
// position; Phrase and Regex must precede Ident/Operator so an opening
// quote or slash is never mistaken for punctuation, and Number precedes
// Ident so a bare digit run lexes as Number rather than falling through
// (identifiers must start with a letter, so order between them does not
// actually matter, but keeping digits-first documents the intent).
//
// An unterminated phrase or regex literal (no closing delimiter before
// end of input) fails every rule at that position, including Operator,
// since '"' and '/' are not members of its character class; the driver
// classifies that failure as UnterminatedLiteral.
var Def = lexer.MustSimple([]lexer.SimpleRule{
	{Name: Phrase, Pattern: `"[^"]*"`},
	{Name: Regex, Pattern: `/(\\/|[^/])*/`},
	{Name: Number, Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: Ident, Pattern: `[A-Za-z][A-Za-z0-9_]*`},
	{Name: Whitespace, Pattern: `[ \t\n\r]+`},
	{Name: Operator, Pattern: `&&|\|\||[!:^~*?+\-(){}\[\]@]`},
})
