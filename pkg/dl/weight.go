package dl

import (
	"fmt"
	"math/big"
)

// Weight is the arithmetic boundary the core relies on for edge and
// potential values. The numeric kernel itself (integer and rational
// arithmetic) is an external collaborator; the core only ever adds,
// subtracts, negates, and compares weights through this interface.
//
// Implementations must be immutable: Add, Sub, and Neg return new
// values rather than mutating the receiver.
type Weight interface {
	Add(Weight) Weight
	Sub(Weight) Weight
	Neg() Weight
	// Cmp returns a negative number, zero, or a positive number
	// depending on whether the receiver is less than, equal to, or
	// greater than other.
	Cmp(other Weight) int
	IsZero() bool
	String() string
}

// IntWeight is the Weight implementation used for Integer-DL. Edge
// negation of "x <= c" becomes "x >= c+1", i.e. "-x <= -c-1", an exact
// integer step with no rounding concern.
type IntWeight int64

func (w IntWeight) Add(o Weight) Weight { return w + o.(IntWeight) }
func (w IntWeight) Sub(o Weight) Weight { return w - o.(IntWeight) }
func (w IntWeight) Neg() Weight         { return -w }

func (w IntWeight) Cmp(o Weight) int {
	ov := o.(IntWeight)
	switch {
	case w < ov:
		return -1
	case w > ov:
		return 1
	default:
		return 0
	}
}

func (w IntWeight) IsZero() bool  { return w == 0 }
func (w IntWeight) String() string { return fmt.Sprintf("%d", int64(w)) }

// RatWeight is the Weight implementation used for Rational-DL. Values
// are represented as rational + eps*epsilon, where epsilon is a
// symbolic infinitesimal used to translate the strict inequality that
// results from negating a non-strict rational difference constraint:
// negating "x - y <= c" produces "y - x <= -c - epsilon" rather than
// a non-strict bound with no exact rational witness. Comparison is
// lexicographic: the rational part dominates, ties are broken on the
// epsilon coefficient.
type RatWeight struct {
	Rat *big.Rat
	Eps int64
}

// NewRatWeight returns a RatWeight with no infinitesimal component.
func NewRatWeight(r *big.Rat) RatWeight {
	return RatWeight{Rat: r, Eps: 0}
}

func (w RatWeight) Add(o Weight) Weight {
	ov := o.(RatWeight)
	return RatWeight{Rat: new(big.Rat).Add(w.Rat, ov.Rat), Eps: w.Eps + ov.Eps}
}

func (w RatWeight) Sub(o Weight) Weight {
	ov := o.(RatWeight)
	return RatWeight{Rat: new(big.Rat).Sub(w.Rat, ov.Rat), Eps: w.Eps - ov.Eps}
}

func (w RatWeight) Neg() Weight {
	return RatWeight{Rat: new(big.Rat).Neg(w.Rat), Eps: -w.Eps}
}

func (w RatWeight) Cmp(o Weight) int {
	ov := o.(RatWeight)
	if c := w.Rat.Cmp(ov.Rat); c != 0 {
		return c
	}
	switch {
	case w.Eps < ov.Eps:
		return -1
	case w.Eps > ov.Eps:
		return 1
	default:
		return 0
	}
}

func (w RatWeight) IsZero() bool { return w.Rat.Sign() == 0 && w.Eps == 0 }

func (w RatWeight) String() string {
	if w.Eps == 0 {
		return w.Rat.RatString()
	}
	return fmt.Sprintf("%s%+dε", w.Rat.RatString(), w.Eps)
}
