package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kortschak/luceneql/ast"
	"github.com/kortschak/luceneql/internal/associator"
	"github.com/kortschak/luceneql/internal/perr"
)

// converter carries the per-call configuration (depth limit, logger) that
// convertQuery/convertGroup/convertSequence need as they recurse; the leaf
// converters below need neither and stay plain functions.
type converter struct {
	maxDepth int
	log      zerolog.Logger
}

// Convert turns a raw parse tree produced by Parse into an ast.MultiQuery,
// rejecting trees that nest deeper than maxDepth. log receives Debug events
// for depth-limit rejections and Trace events for the associator run/op
// boundaries found at each sequence level; callers with nothing to log
// should pass zerolog.Nop(), which discards everything at negligible cost.
func Convert(seq *rawSequence, maxDepth int, log zerolog.Logger) (ast.MultiQuery, error) {
	c := &converter{maxDepth: maxDepth, log: log}
	siblings, err := c.convertSequence(seq, 1)
	if err != nil {
		return nil, err
	}
	mq, err := ast.NewMultiQuery(siblings)
	if err != nil {
		return nil, perr.New(perr.UnexpectedToken, 0, "query", err.Error())
	}
	return mq, nil
}

// convertSequence splits a flat [seed, (op, query)...] sequence into
// sibling queries at each implicit-concatenation boundary (an item whose Op
// is empty), running the operator-precedence associator over the explicit-
// operator run between boundaries. See internal/associator for the fold
// itself; this function only owns the run-splitting.
func (c *converter) convertSequence(seq *rawSequence, depth int) ([]ast.Query, error) {
	type item struct {
		op string
		rq *rawQuery
	}
	items := make([]item, 0, len(seq.Rest)+1)
	items = append(items, item{op: "", rq: seq.First})
	for _, r := range seq.Rest {
		items = append(items, item{op: r.Op, rq: r.Query})
	}

	var siblings []ast.Query
	i := 0
	for i < len(items) {
		seed, err := c.convertQuery(items[i].rq, depth)
		if err != nil {
			return nil, err
		}
		var rest []associator.OpQuery
		j := i + 1
		for j < len(items) && items[j].op != "" {
			q, err := c.convertQuery(items[j].rq, depth)
			if err != nil {
				return nil, err
			}
			op := associator.And
			if items[j].op == "OR" || items[j].op == "||" {
				op = associator.Or
			}
			rest = append(rest, associator.OpQuery{Op: op, Query: q})
			j++
		}
		c.log.Trace().Int("run_len", len(rest)+1).Int("depth", depth).Msg("associator run boundary")
		siblings = append(siblings, associator.Associate(seed, rest))
		i = j
	}
	return siblings, nil
}

func (c *converter) convertQuery(rq *rawQuery, depth int) (ast.Query, error) {
	if depth > c.maxDepth {
		c.log.Debug().Int("offset", rq.Pos.Offset).Int("depth", depth).Msg("rejecting input: depth limit exceeded")
		return nil, perr.New(perr.DepthExceeded, rq.Pos.Offset, "query", "nesting depth exceeded")
	}
	switch {
	case rq.Not != nil:
		inner, err := c.convertQuery(rq.Not.Query, depth+1)
		if err != nil {
			return nil, err
		}
		return &ast.Not{Query: inner}, nil
	case rq.Signed != nil:
		base, err := c.convertBase(rq.Signed.Base, depth+1)
		if err != nil {
			return nil, err
		}
		if rq.Signed.Pos.Offset+len(rq.Signed.Sign) != rq.Signed.Base.Pos.Offset {
			return nil, perr.New(perr.UnexpectedToken, rq.Signed.Pos.Offset, "unary +/-",
				"'+' or '-' must be immediately adjacent to its operand")
		}
		if rq.Signed.Sign == "+" {
			return &ast.UnaryPlus{Query: base}, nil
		}
		return &ast.UnaryMinus{Query: base}, nil
	default:
		return c.convertBase(rq.Base, depth)
	}
}

func (c *converter) convertBase(rb *rawBase, depth int) (ast.Query, error) {
	if rb.Field != nil {
		return c.convertField(rb.Field, depth)
	}
	return c.convertAtom(rb.Atom, depth)
}

func isReservedWord(s string) bool {
	return s == "AND" || s == "OR" || s == "NOT"
}

func (c *converter) convertField(rf *rawField, depth int) (ast.Query, error) {
	if isReservedWord(rf.Name) {
		return nil, perr.New(perr.ReservedFieldName, rf.Pos.Offset, "field name",
			fmt.Sprintf("%q is a reserved word and cannot be used as a field name", rf.Name))
	}
	inner, err := c.convertAtom(rf.Atom, depth)
	if err != nil {
		return nil, err
	}
	f, err := ast.NewField(rf.Name, inner)
	if err != nil {
		return nil, perr.New(perr.ReservedFieldName, rf.Pos.Offset, "field name", err.Error())
	}
	return f, nil
}

func (c *converter) convertAtom(ra *rawAtom, depth int) (ast.Query, error) {
	var base ast.Query
	var err error
	switch {
	case ra.Group != nil:
		base, err = c.convertGroup(ra.Group, depth+1)
	case ra.Leaf != nil:
		base, err = convertLeaf(ra.Leaf, ra.Pos.Offset)
	default:
		return nil, perr.New(perr.UnexpectedToken, ra.Pos.Offset, "atom", "expected a group or a term")
	}
	if err != nil {
		return nil, err
	}
	if ra.BoostNum != "" {
		f, ferr := strconv.ParseFloat(ra.BoostNum, 64)
		if ferr != nil || f < 0 {
			return nil, perr.New(perr.InvalidNumber, ra.Pos.Offset, "boost", "boost factor must be a non-negative number")
		}
		return &ast.Boost{Query: base, Factor: f}, nil
	}
	return base, nil
}

// convertGroup converts the contents of a parenthesised group. A group
// whose inner sequence associates to a single sibling is a plain Group
// wrapping that sibling; one that associates to several siblings joined
// only by implicit concatenation is a Group wrapping an And of them, on
// the view that bare juxtaposition inside parentheses is the same "all of
// these" relationship And already expresses. A group followed by "@n" is a
// MinimumMatch over the siblings directly, since MinimumMatch owns its
// list independently of Group.
func (c *converter) convertGroup(rg *rawGroup, depth int) (ast.Query, error) {
	if depth > c.maxDepth {
		c.log.Debug().Int("offset", rg.Pos.Offset).Int("depth", depth).Msg("rejecting input: depth limit exceeded")
		return nil, perr.New(perr.DepthExceeded, rg.Pos.Offset, "group", "nesting depth exceeded")
	}
	siblings, err := c.convertSequence(rg.Seq, depth)
	if err != nil {
		return nil, err
	}
	if rg.MinNum != "" {
		n, nerr := parseNonNegativeInt(rg.MinNum, rg.Pos.Offset, "minimum match")
		if nerr != nil {
			return nil, nerr
		}
		return ast.NewMinimumMatch(siblings, n), nil
	}
	switch len(siblings) {
	case 0:
		return nil, perr.New(perr.UnexpectedToken, rg.Pos.Offset, "group", "empty group")
	case 1:
		return &ast.Group{Query: siblings[0]}, nil
	default:
		return &ast.Group{Query: ast.NewAnd(siblings)}, nil
	}
}

func convertLeaf(rl *rawLeaf, offset int) (ast.Query, error) {
	switch {
	case rl.Phrase != nil:
		return convertPhrase(rl.Phrase)
	case rl.Regex != "":
		return convertRegex(rl.Regex), nil
	case rl.Range != nil:
		return convertRange(rl.Range), nil
	case rl.Ident != nil:
		return convertIdentTerm(rl.Ident)
	default:
		return nil, perr.New(perr.UnexpectedToken, offset, "leaf", "expected a term, phrase, regex, or range")
	}
}

func convertPhrase(rp *rawPhrase) (ast.Query, error) {
	text := rp.Text[1 : len(rp.Text)-1]
	if rp.ProxNum != "" {
		n, err := parseNonNegativeInt(rp.ProxNum, rp.Pos.Offset, "proximity")
		if err != nil {
			return nil, err
		}
		return &ast.Proximity{Value: text, Distance: n}, nil
	}
	return &ast.Phrase{Value: text}, nil
}

// convertRegex strips the leading and trailing '/' delimiters, leaving any
// internal "\/" escape untouched; the printer re-emits it unchanged, so
// Pattern round-trips byte for byte through Print.
func convertRegex(raw string) ast.Query {
	return &ast.TermRegex{Pattern: raw[1 : len(raw)-1]}
}

func convertRange(rr *rawRange) ast.Query {
	var lower, upper *string
	if rr.Lower != "*" {
		l := rr.Lower
		lower = &l
	}
	if rr.Upper != "*" {
		u := rr.Upper
		upper = &u
	}
	return &ast.TermRange{
		Lower:          lower,
		Upper:          upper,
		LowerInclusive: rr.LowerBracket == "[",
		UpperInclusive: rr.UpperBracket == "]",
	}
}

func convertIdentTerm(ri *rawIdentTerm) (ast.Query, error) {
	name := ri.Text

	if len(ri.Wild) == 0 {
		if ri.Fuzzy != nil {
			return convertFuzzy(name, ri.Fuzzy)
		}
		if isReservedWord(name) {
			return nil, perr.New(perr.UnexpectedToken, ri.Pos.Offset, "term",
				fmt.Sprintf("%q is a reserved word; quote it to use as a term", name))
		}
		return &ast.Term{Value: name}, nil
	}

	// A single trailing '*' with nothing after it is the dedicated Prefix
	// shape rather than a general WildCard.
	if len(ri.Wild) == 1 && ri.Wild[0].Mark == "*" && ri.Wild[0].Text == "" && ri.Fuzzy == nil {
		return &ast.Prefix{Value: name}, nil
	}

	if ri.Fuzzy != nil {
		return nil, perr.New(perr.UnexpectedToken, ri.Pos.Offset, "term", "a fuzzy suffix cannot follow a wildcard")
	}

	var ops []ast.WildCardOp
	if name != "" {
		ops = append(ops, ast.Str{Value: name})
	}
	for _, w := range ri.Wild {
		if w.Mark == "*" {
			ops = append(ops, ast.ManyChar{})
		} else {
			ops = append(ops, ast.SingleChar{})
		}
		if w.Text != "" {
			ops = append(ops, ast.Str{Value: w.Text})
		}
	}
	return &ast.WildCard{Ops: ops}, nil
}

func convertFuzzy(name string, rf *rawFuzzySuffix) (ast.Query, error) {
	if rf.Num == "" {
		return &ast.Fuzzy{Value: name, HasDistance: false}, nil
	}
	n, err := parseNonNegativeInt(rf.Num, rf.Pos.Offset, "fuzzy distance")
	if err != nil {
		return nil, err
	}
	return &ast.Fuzzy{Value: name, Distance: n, HasDistance: true}, nil
}

// parseNonNegativeInt rejects decimal numbers (the shared Number token
// also matches "3.2", which is valid as a boost factor but never as a
// proximity/fuzzy/minimum-match count) before parsing.
func parseNonNegativeInt(s string, offset int, construct string) (int, error) {
	if strings.Contains(s, ".") {
		return 0, perr.New(perr.InvalidNumber, offset, construct, "expected a non-negative integer, got a decimal number")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, perr.New(perr.InvalidNumber, offset, construct, "expected a non-negative integer")
	}
	return n, nil
}
