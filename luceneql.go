// Package luceneql parses and prints a Lucene-compatible "classic" query
// language: terms, phrases, prefix/fuzzy/proximity modifiers, ranges,
// field qualifiers, boolean operators, unary +/-, parenthesised groups,
// boosts, regex literals, wildcards, and "(a b c)@n" minimum-match.
//
// Parse and Print/PrintMulti are pure functions over immutable values,
// safe to call concurrently from many goroutines on independent inputs.
package luceneql

import (
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"

	"github.com/kortschak/luceneql/ast"
	"github.com/kortschak/luceneql/internal/grammar"
	"github.com/kortschak/luceneql/internal/perr"
	"github.com/kortschak/luceneql/printer"
)

// Parse parses input and returns its top-level sequence of queries, or a
// *ParseError. The input is trimmed of leading/trailing whitespace before
// parsing; the grammar itself asserts end-of-input, so unconsumed trailing
// tokens (e.g. a dangling ")" or a trailing "OR") are reported rather than
// silently ignored.
func Parse(input string, opts ...Option) (ast.MultiQuery, error) {
	cfg := newConfig(opts)

	start := time.Now()
	mq, err := parse(input, cfg)
	if cfg.metrics != nil {
		cfg.metrics.observe(err == nil, time.Since(start).Seconds())
	}
	return mq, err
}

func parse(input string, cfg *Config) (ast.MultiQuery, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		pe := newParseError(perr.New(perr.UnexpectedToken, 0, "query", "input is empty"))
		classify(cfg.logger, pe)
		return nil, pe
	}

	if pe := checkUnterminatedLiteral(trimmed); pe != nil {
		classify(cfg.logger, pe)
		return nil, pe
	}

	raw, err := grammar.Parse(trimmed)
	if err != nil {
		pe := classifyParticipleError(err, trimmed)
		classify(cfg.logger, pe)
		return nil, pe
	}

	mq, err := grammar.Convert(raw, cfg.maxDepth, cfg.logger)
	if err != nil {
		pe := wrapPerr(err)
		classify(cfg.logger, pe)
		return nil, pe
	}
	return mq, nil
}

// Print renders a single query to its textual form.
func Print(q ast.Query) string {
	return printer.Print(q)
}

// PrintMulti renders a top-level sequence, joining siblings with a single
// space (the textual form of implicit concatenation).
func PrintMulti(qs ast.MultiQuery) string {
	return printer.PrintMulti(qs)
}

// checkUnterminatedLiteral scans for an opened '"' or (unescaped) '/' with
// no matching close. It runs before the grammar sees the input because
// participle's own lexer error for this case is a generic "invalid input
// text" with no indication that the cause was an unclosed delimiter rather
// than, say, a stray character. A phrase has no escape for an interior
// '"' — the first one closes it — so, unlike a regex's "\/", there is no
// escape to skip over here.
func checkUnterminatedLiteral(s string) *ParseError {
	const (
		none = iota
		inPhrase
		inRegex
	)
	state := none
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case inPhrase:
			if c == '"' {
				state = none
			}
		case inRegex:
			switch {
			case c == '\\' && i+1 < len(s) && s[i+1] == '/':
				i++
			case c == '/':
				state = none
			}
		default:
			switch c {
			case '"':
				state, start = inPhrase, i
			case '/':
				state, start = inRegex, i
			}
		}
	}
	if state == none {
		return nil
	}
	construct := "phrase"
	if state == inRegex {
		construct = "regex"
	}
	return newParseError(perr.New(perr.UnterminatedLiteral, start, construct,
		"opened delimiter is never closed"))
}

// classifyParticipleError maps a participle parse failure onto a Kind.
// participle.Error exposes the offending position and a human-readable
// message. Two shapes share that same generic "unexpected token" failure
// and are told apart here: TrailingInput, where everything up to the
// offending position is itself a complete, valid parse and what follows
// is simply never consumed (e.g. `"AND":cat`, where `"AND"` parses fine
// and `:cat` is leftover); and TrailingOperator, where the grammar's
// point of failure is "cat OR" looking for a second operand that was
// never supplied, indistinguishable in the raw message from any other
// unexpected-EOF failure.
func classifyParticipleError(err error, input string) *ParseError {
	offset := 0
	msg := err.Error()
	if pe, ok := err.(participle.Error); ok {
		offset = pe.Position().Offset
		msg = pe.Message()
	}

	kind := perr.UnexpectedToken
	switch {
	case isCompletePrefix(input, offset):
		kind = perr.TrailingInput
	case endsInOperator(input):
		kind = perr.TrailingOperator
	}
	return newParseError(perr.New(kind, offset, "query", msg).WithCause(err))
}

// isCompletePrefix reports whether input[:offset], trimmed of any trailing
// whitespace, is itself a complete grammar parse — the signature of
// trailing input the grammar never tried to consume, rather than a
// malformed construct.
func isCompletePrefix(input string, offset int) bool {
	if offset <= 0 || offset > len(input) {
		return false
	}
	prefix := strings.TrimRight(input[:offset], " \t\r\n")
	if prefix == "" {
		return false
	}
	_, err := grammar.Parse(prefix)
	return err == nil
}

func endsInOperator(s string) bool {
	trimmed := strings.TrimRight(s, " \t\r\n")
	for _, op := range []string{"AND", "OR", "&&", "||", "NOT"} {
		if !strings.HasSuffix(trimmed, op) {
			continue
		}
		if len(trimmed) == len(op) {
			return true
		}
		prev := trimmed[len(trimmed)-len(op)-1]
		if !isIdentByte(prev) {
			return true
		}
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func wrapPerr(err error) *ParseError {
	if pe, ok := err.(*perr.Error); ok {
		return newParseError(pe)
	}
	return newParseError(perr.New(perr.UnexpectedToken, 0, "query", err.Error()).WithCause(err))
}
