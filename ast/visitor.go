package ast

// Visitor is implemented by callers that want to inspect every node of a
// Query tree as it is traversed depth-first, post-order (children before
// their parent). Each method can return an error to halt the traversal
// immediately; a nil return continues to the next node.
type Visitor interface {
	VisitTerm(*Term) error
	VisitPhrase(*Phrase) error
	VisitPrefix(*Prefix) error
	VisitProximity(*Proximity) error
	VisitFuzzy(*Fuzzy) error
	VisitTermRegex(*TermRegex) error
	VisitTermRange(*TermRange) error
	VisitWildCard(*WildCard) error
	VisitOr(*Or) error
	VisitAnd(*And) error
	VisitNot(*Not) error
	VisitGroup(*Group) error
	VisitUnaryPlus(*UnaryPlus) error
	VisitUnaryMinus(*UnaryMinus) error
	VisitField(*Field) error
	VisitBoost(*Boost) error
	VisitMinimumMatch(*MinimumMatch) error
}

// BaseVisitor satisfies Visitor with no-op methods. Embed it in a caller's
// own visitor type to only implement the methods needed.
type BaseVisitor struct{}

func (BaseVisitor) VisitTerm(*Term) error                   { return nil }
func (BaseVisitor) VisitPhrase(*Phrase) error                { return nil }
func (BaseVisitor) VisitPrefix(*Prefix) error                { return nil }
func (BaseVisitor) VisitProximity(*Proximity) error          { return nil }
func (BaseVisitor) VisitFuzzy(*Fuzzy) error                  { return nil }
func (BaseVisitor) VisitTermRegex(*TermRegex) error          { return nil }
func (BaseVisitor) VisitTermRange(*TermRange) error          { return nil }
func (BaseVisitor) VisitWildCard(*WildCard) error            { return nil }
func (BaseVisitor) VisitOr(*Or) error                        { return nil }
func (BaseVisitor) VisitAnd(*And) error                      { return nil }
func (BaseVisitor) VisitNot(*Not) error                      { return nil }
func (BaseVisitor) VisitGroup(*Group) error                  { return nil }
func (BaseVisitor) VisitUnaryPlus(*UnaryPlus) error          { return nil }
func (BaseVisitor) VisitUnaryMinus(*UnaryMinus) error        { return nil }
func (BaseVisitor) VisitField(*Field) error                  { return nil }
func (BaseVisitor) VisitBoost(*Boost) error                  { return nil }
func (BaseVisitor) VisitMinimumMatch(*MinimumMatch) error    { return nil }

// Walk traverses q depth-first, post-order, calling the matching Visit
// method on v for q and every descendant. It stops and returns the first
// error a Visit method produces.
func Walk(q Query, v Visitor) error {
	switch n := q.(type) {
	case *Term:
		return v.VisitTerm(n)
	case *Phrase:
		return v.VisitPhrase(n)
	case *Prefix:
		return v.VisitPrefix(n)
	case *Proximity:
		return v.VisitProximity(n)
	case *Fuzzy:
		return v.VisitFuzzy(n)
	case *TermRegex:
		return v.VisitTermRegex(n)
	case *TermRange:
		return v.VisitTermRange(n)
	case *WildCard:
		return v.VisitWildCard(n)
	case *Or:
		for _, sub := range n.Queries {
			if err := Walk(sub, v); err != nil {
				return err
			}
		}
		return v.VisitOr(n)
	case *And:
		for _, sub := range n.Queries {
			if err := Walk(sub, v); err != nil {
				return err
			}
		}
		return v.VisitAnd(n)
	case *Not:
		if err := Walk(n.Query, v); err != nil {
			return err
		}
		return v.VisitNot(n)
	case *Group:
		if err := Walk(n.Query, v); err != nil {
			return err
		}
		return v.VisitGroup(n)
	case *UnaryPlus:
		if err := Walk(n.Query, v); err != nil {
			return err
		}
		return v.VisitUnaryPlus(n)
	case *UnaryMinus:
		if err := Walk(n.Query, v); err != nil {
			return err
		}
		return v.VisitUnaryMinus(n)
	case *Field:
		if err := Walk(n.Query, v); err != nil {
			return err
		}
		return v.VisitField(n)
	case *Boost:
		if err := Walk(n.Query, v); err != nil {
			return err
		}
		return v.VisitBoost(n)
	case *MinimumMatch:
		for _, sub := range n.Queries {
			if err := Walk(sub, v); err != nil {
				return err
			}
		}
		return v.VisitMinimumMatch(n)
	default:
		return nil
	}
}

// WalkMulti walks every element of a MultiQuery in order.
func WalkMulti(qs MultiQuery, v Visitor) error {
	for _, q := range qs {
		if err := Walk(q, v); err != nil {
			return err
		}
	}
	return nil
}

// lastTermVisitor records the most recently visited leaf; since Walk is
// post-order and depth-first, the last leaf visited before the traversal
// ends is the rightmost leaf of the tree.
type lastTermVisitor struct {
	BaseVisitor
	last TermQuery
}

func (v *lastTermVisitor) VisitTerm(n *Term) error             { v.last = n; return nil }
func (v *lastTermVisitor) VisitPhrase(n *Phrase) error         { v.last = n; return nil }
func (v *lastTermVisitor) VisitPrefix(n *Prefix) error         { v.last = n; return nil }
func (v *lastTermVisitor) VisitProximity(n *Proximity) error   { v.last = n; return nil }
func (v *lastTermVisitor) VisitFuzzy(n *Fuzzy) error           { v.last = n; return nil }
func (v *lastTermVisitor) VisitTermRegex(n *TermRegex) error   { v.last = n; return nil }
func (v *lastTermVisitor) VisitTermRange(n *TermRange) error   { v.last = n; return nil }
func (v *lastTermVisitor) VisitWildCard(n *WildCard) error     { v.last = n; return nil }

// LastTerm returns the rightmost leaf (TermQuery) in q, or nil if q
// contains no leaves (which cannot happen for a well-formed AST, but an
// empty Group wrapping nothing is not rejected at the type level).
func LastTerm(q Query) TermQuery {
	v := &lastTermVisitor{}
	_ = Walk(q, v)
	return v.last
}
