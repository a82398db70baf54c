// Package associator implements the operator-precedence associator: it
// folds a flat sequence of alternating queries and AND/OR operators into a
// correctly nested And/Or tree, with AND binding tighter than OR and
// same-operator runs flattened into a single node rather than a chain of
// nested binary nodes.
//
// This package has no dependency on the lexer or grammar; it operates
// purely over ast.Query values, which keeps it independently testable
// against synthetic op/query streams.
package associator

import "github.com/kortschak/luceneql/ast"

// Op is a binary boolean operator recognized by the associator.
type Op int

const (
	// And binds tighter than Or.
	And Op = iota
	Or
)

// OpQuery is one (operator, operand) pair following the seed query in a
// flat sequence.
type OpQuery struct {
	Op    Op
	Query ast.Query
}

// Associate folds seed and rest into a single query, observing AND-over-OR
// precedence and same-operator flattening. If rest is empty, seed is
// returned unchanged.
//
// The algorithm walks rest maintaining two buffers: tempAcc, the current
// same-operator run (seeded with seed), and out, the OR-level accumulator.
// For each (nextOp, nextQuery), compared against the operator that
// produced the *previous* step (currentOp):
//
//   - nextOp == currentOp: the run continues, so the previous operand is
//     appended to tempAcc.
//   - currentOp is Or and nextOp is And: the OR-level run ends; flush
//     tempAcc's accumulated operands individually into out and start a
//     fresh tempAcc, holding the previous operand, for the new AND run.
//   - currentOp is And and nextOp is Or: the AND-level run ends; append
//     the previous operand to tempAcc, wrap tempAcc as an And node, push
//     it into out, and start a fresh tempAcc.
//
// After the loop the final operand is folded in the same way, and out is
// collapsed: a single element is returned directly (eliding a length-one
// Or), otherwise the elements are wrapped in an Or.
func Associate(seed ast.Query, rest []OpQuery) ast.Query {
	if len(rest) == 0 {
		return seed
	}

	var out []ast.Query
	tempAcc := []ast.Query{seed}

	// currentOp/currentQuery track the most recently seen pair; rest[0]
	// is that first pair, so the loop below compares each subsequent pair
	// against it rather than re-processing it.
	currentOp := rest[0].Op
	currentQuery := rest[0].Query

	flushAnd := func() {
		if len(tempAcc) == 1 {
			out = append(out, tempAcc[0])
		} else {
			out = append(out, ast.NewAnd(append([]ast.Query(nil), tempAcc...)))
		}
		tempAcc = nil
	}

	for _, next := range rest[1:] {
		nextOp, nextQuery := next.Op, next.Query

		switch {
		case nextOp == currentOp:
			tempAcc = append(tempAcc, currentQuery)
		case currentOp == Or && nextOp == And:
			// OR -> AND: flush the OR-level run's pending operands
			// individually, then start a new AND run.
			out = append(out, tempAcc...)
			tempAcc = []ast.Query{currentQuery}
		case currentOp == And && nextOp == Or:
			// AND -> OR: close out the AND run (including its last
			// operand) as a single And node, then start a new run.
			tempAcc = append(tempAcc, currentQuery)
			flushAnd()
		}

		currentOp = nextOp
		currentQuery = nextQuery
	}

	// Fold the final operand the same way the loop would have, using the
	// last seen operator.
	if currentOp == And {
		tempAcc = append(tempAcc, currentQuery)
		flushAnd()
	} else {
		out = append(out, tempAcc...)
		out = append(out, currentQuery)
	}

	if len(out) == 1 {
		return out[0]
	}
	return ast.NewOr(out)
}
