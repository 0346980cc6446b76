package dl

import "math/big"

// operand is one side of a normalized edge: either a term-store
// variable or the graph's reserved zero variable, standing in for a
// literal numeric constant. Using a dedicated zero vertex rather than
// special-casing absolute bounds everywhere keeps the graph, the
// negative-cycle check, and the shortest-path engine ignorant of the
// distinction: a bound atom is just an ordinary edge incident to one
// fixed vertex.
type operand struct {
	zero bool
	ref  VarRef
}

// normalizedAtom is the edge builder's output before vertices and
// edge objects exist: x, y, and c such that the atom is equivalent to
// "y - x <= c", so the positive edge ends up pointing x -> y with
// weight c.
type normalizedAtom struct {
	x, y operand
	c    Weight
}

func epsilonOne() Weight {
	return RatWeight{Rat: big.NewRat(0, 1), Eps: 1}
}

func zeroWeight(logic Logic) Weight {
	if logic == RationalDL {
		return RatWeight{Rat: big.NewRat(0, 1), Eps: 0}
	}
	return IntWeight(0)
}

// normalize classifies atom into one of var-var, var-const, const-var,
// or diff-const and derives (x, y, c) uniformly by case analysis on
// (lhs_kind, rhs_kind), treating "c <= x" symmetrically with "x <= c"
// rather than favoring one direction.
func normalize(atom Atom, logic Logic) (normalizedAtom, error) {
	lhs, rhs := atom.Lhs(), atom.Rhs()

	switch {
	case lhs.IsVar() && rhs.IsVar():
		// lhs <= rhs  <=>  lhs - rhs <= 0  <=>  y=lhs, x=rhs, c=0
		return normalizedAtom{
			x: operand{ref: rhs.Var()},
			y: operand{ref: lhs.Var()},
			c: zeroWeight(logic),
		}, nil

	case lhs.IsVar() && rhs.IsConst():
		// lhs <= k  <=>  lhs - zero <= k  <=>  y=lhs, x=zero, c=k
		return normalizedAtom{
			x: operand{zero: true},
			y: operand{ref: lhs.Var()},
			c: rhs.Value(),
		}, nil

	case lhs.IsConst() && rhs.IsVar():
		// k <= rhs  <=>  zero - rhs <= -k  <=>  y=zero, x=rhs, c=-k
		return normalizedAtom{
			x: operand{ref: rhs.Var()},
			y: operand{zero: true},
			c: lhs.Value().Neg(),
		}, nil

	case lhs.IsMinus() && rhs.IsConst():
		return diffConst(atom, lhs, rhs.Value())

	case rhs.IsMinus() && lhs.IsConst():
		// k <= (p - q)  <=>  q - p <= -k  <=>  y=q, x=p, c=-k
		return diffConstSwapped(atom, rhs, lhs.Value())

	default:
		return normalizedAtom{}, MalformedAtom{Atom: atom, Why: "children do not match var-var, var-const, const-var, or diff-const"}
	}
}

func diffConst(atom Atom, minus Term, k Weight) (normalizedAtom, error) {
	if !minus.Minuend().IsVar() || !minus.Subtrahend().IsVar() {
		return normalizedAtom{}, MalformedAtom{Atom: atom, Why: "diff-const shape requires two variable operands"}
	}
	// p - q <= k  <=>  y=p, x=q, c=k
	return normalizedAtom{
		x: operand{ref: minus.Subtrahend().Var()},
		y: operand{ref: minus.Minuend().Var()},
		c: k,
	}, nil
}

func diffConstSwapped(atom Atom, minus Term, k Weight) (normalizedAtom, error) {
	if !minus.Minuend().IsVar() || !minus.Subtrahend().IsVar() {
		return normalizedAtom{}, MalformedAtom{Atom: atom, Why: "diff-const shape requires two variable operands"}
	}
	// k <= p - q  <=>  q - p <= -k  <=>  y=q, x=p, c=-k
	return normalizedAtom{
		x: operand{ref: minus.Minuend().Var()},
		y: operand{ref: minus.Subtrahend().Var()},
		c: k.Neg(),
	}, nil
}

// edgeWeights derives the positive edge weight from a normalized
// atom's constant, applying the term store's rescale factor;
// negatedWeight derives the negative edge weight from it.
func edgeWeights(c Weight, cfg Config, store TermStore) Weight {
	pos := c
	if cfg.RescaleEnabled && cfg.Logic == RationalDL && store != nil {
		pos = store.Rescale(pos)
	}
	return pos
}

// negatedWeight applies the logic-dependent negation rule: the strict
// negation of "x <= c" is "x > c", which becomes "x >= c+1" over
// integers and "x >= c+epsilon" over the rationals.
func negatedWeight(pos Weight, logic Logic) Weight {
	if logic == RationalDL {
		return pos.Neg().Sub(epsilonOne())
	}
	return pos.Neg().Sub(IntWeight(1))
}
