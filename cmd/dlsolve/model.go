package main

import "github.com/bobosoft/opensmt/pkg/dl"

// variable is the demo driver's dl.VarRef: a name plus the dense
// index the term store handed out for it.
type variable struct {
	name string
	id   int
}

func (v *variable) VarID() int { return v.id }

type termKind int

const (
	termVar termKind = iota
	termConst
	termMinus
)

// term is the demo driver's dl.Term.
type term struct {
	kind               termKind
	v                  *variable
	k                  dl.Weight
	minuend, subtrahend *term
}

func varTerm(v *variable) *term  { return &term{kind: termVar, v: v} }
func constTerm(k int64) *term    { return &term{kind: termConst, k: dl.IntWeight(k)} }
func minusTerm(a, b *variable) *term {
	return &term{kind: termMinus, minuend: varTerm(a), subtrahend: varTerm(b)}
}

func (t *term) IsVar() bool   { return t.kind == termVar }
func (t *term) IsConst() bool { return t.kind == termConst }
func (t *term) IsMinus() bool { return t.kind == termMinus }

func (t *term) Var() dl.VarRef      { return t.v }
func (t *term) Value() dl.Weight    { return t.k }
func (t *term) Minuend() dl.Term    { return t.minuend }
func (t *term) Subtrahend() dl.Term { return t.subtrahend }

// atom is the demo driver's dl.Atom: one parsed "a - b <= k" line,
// carrying the stable id that also indexes its gini literal.
type atom struct {
	id   int64
	lhs  *term
	rhs  *term
	text string
}

func (a *atom) ID() int64    { return a.id }
func (a *atom) Lhs() dl.Term { return a.lhs }
func (a *atom) Rhs() dl.Term { return a.rhs }

// constStore is the demo driver's dl.TermStore. It never rescales: the
// driver only accepts integer constraints, so rational rescaling
// never applies.
type constStore struct{}

func (constStore) Rescale(w dl.Weight) dl.Weight { return w }
