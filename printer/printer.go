// Package printer renders an ast.Query back into the textual query
// language, total and structural: every value prints to a string that
// reparses to a structurally equal tree.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kortschak/luceneql/ast"
)

// Print renders a single query.
func Print(q ast.Query) string {
	var b strings.Builder
	write(&b, q)
	return b.String()
}

// PrintMulti renders a top-level sequence, joining siblings with a single
// space — the textual form of implicit concatenation.
func PrintMulti(qs ast.MultiQuery) string {
	var b strings.Builder
	for i, q := range qs {
		if i > 0 {
			b.WriteByte(' ')
		}
		write(&b, q)
	}
	return b.String()
}

// write is the single builder-walk at the heart of both entry points; it
// never recurses into a fresh strings.Builder, so cost is linear in tree
// size rather than quadratic.
func write(b *strings.Builder, q ast.Query) {
	switch n := q.(type) {
	case *ast.Term:
		b.WriteString(n.Value)
	case *ast.Phrase:
		writePhrase(b, n.Value)
	case *ast.Prefix:
		b.WriteString(n.Value)
		b.WriteByte('*')
	case *ast.Proximity:
		writePhrase(b, n.Value)
		b.WriteByte('~')
		b.WriteString(strconv.Itoa(n.Distance))
	case *ast.Fuzzy:
		b.WriteString(n.Value)
		b.WriteByte('~')
		if n.HasDistance {
			b.WriteString(strconv.Itoa(n.Distance))
		}
	case *ast.TermRegex:
		b.WriteByte('/')
		b.WriteString(n.Pattern)
		b.WriteByte('/')
	case *ast.TermRange:
		writeRange(b, n)
	case *ast.WildCard:
		writeWildCard(b, n)
	case *ast.Or:
		writeJoined(b, n.Queries, " OR ")
	case *ast.And:
		writeJoined(b, n.Queries, " AND ")
	case *ast.Not:
		b.WriteString("NOT ")
		write(b, n.Query)
	case *ast.Group:
		b.WriteByte('(')
		write(b, n.Query)
		b.WriteByte(')')
	case *ast.UnaryPlus:
		b.WriteByte('+')
		write(b, n.Query)
	case *ast.UnaryMinus:
		b.WriteByte('-')
		write(b, n.Query)
	case *ast.Field:
		b.WriteString(n.Name)
		b.WriteByte(':')
		write(b, n.Query)
	case *ast.Boost:
		write(b, n.Query)
		b.WriteByte('^')
		b.WriteString(formatFloat(n.Factor))
	case *ast.MinimumMatch:
		b.WriteByte('(')
		for i, sub := range n.Queries {
			if i > 0 {
				b.WriteByte(' ')
			}
			write(b, sub)
		}
		b.WriteString(")@")
		b.WriteString(strconv.Itoa(n.Min))
	default:
		panic(fmt.Sprintf("printer: unhandled query type %T", q))
	}
}

func writeJoined(b *strings.Builder, qs []ast.Query, sep string) {
	for i, sub := range qs {
		if i > 0 {
			b.WriteString(sep)
		}
		write(b, sub)
	}
}

// writePhrase wraps s in quotes verbatim. The query language has no escape
// for an interior '"' — the first one terminates the phrase — so s is
// assumed not to contain one, the same assumption internal/grammar's
// lexer makes when it produces a Phrase's Value.
func writePhrase(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')
}

func writeRange(b *strings.Builder, n *ast.TermRange) {
	if n.LowerInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('{')
	}
	if n.Lower == nil {
		b.WriteByte('*')
	} else {
		b.WriteString(*n.Lower)
	}
	b.WriteString(" TO ")
	if n.Upper == nil {
		b.WriteByte('*')
	} else {
		b.WriteString(*n.Upper)
	}
	if n.UpperInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte('}')
	}
}

func writeWildCard(b *strings.Builder, n *ast.WildCard) {
	for _, op := range n.Ops {
		switch o := op.(type) {
		case ast.Str:
			b.WriteString(o.Value)
		case ast.SingleChar:
			b.WriteByte('?')
		case ast.ManyChar:
			b.WriteByte('*')
		}
	}
}

// formatFloat renders a boost factor without a forced decimal point, so an
// integral boost like 2 prints "2" rather than "2.0" while still
// reparsing: the Number token accepts both forms.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
