package dl

// Core is the difference-logic theory plugin: a SAT engine declares
// atoms, asserts and retracts literals on them, and asks the core to
// deduce further literals, explain conflicts, and backtrack. Core
// owns the graph store, the journal, and the configured numeric
// kernel; it never reaches back into the SAT engine itself.
type Core struct {
	cfg    Config
	store  TermStore
	graph  *Graph
	tracer Tracer

	interrupted bool
}

// NewCore builds a Core against a term store, applying any Options.
func NewCore(store TermStore, opts ...Option) *Core {
	cfg := newConfig(opts...)
	return &Core{
		cfg:    cfg,
		store:  store,
		graph:  newGraph(cfg, store),
		tracer: DefaultTracer{},
	}
}

// SetTracer installs a diagnostic Tracer; nil restores the no-op
// tracer.
func (c *Core) SetTracer(t Tracer) {
	if t == nil {
		t = DefaultTracer{}
	}
	c.tracer = t
}

// Declare registers an atom's edge pair with the graph store without
// asserting it. It is safe to call more than once for the same atom.
func (c *Core) Declare(atom Atom) error {
	_, err := c.graph.insertStatic(atom)
	return err
}

// AssertLit activates atom at polarity, repairs potentials, and runs
// the deduction scan. An error of type Infeasible means the assertion
// produced a negative cycle; the caller should treat that as a theory
// conflict and is expected to Pop back to an earlier level before
// trying again.
func (c *Core) AssertLit(atom Atom, polarity Polarity) ([]Deduction, error) {
	if c.interrupted {
		return nil, Interrupted
	}
	if _, err := c.graph.insertStatic(atom); err != nil {
		return nil, err
	}

	e, err := c.graph.activate(atom, polarity)
	if err != nil {
		return nil, err
	}

	if err := c.graph.fixPotentials(e); err != nil {
		c.tracer.Trace(conflictPosition{atoms: infeasibleAtoms(err)})
		return nil, err
	}

	if c.graph.parallelAndHeavy(e) {
		return nil, nil
	}
	if !c.cfg.TheoryPropagation {
		return nil, nil
	}

	deductions := c.graph.deduceFromActivation(e)
	for _, d := range deductions {
		if err := c.graph.imply(d.Atom, d.Polarity); err != nil {
			return nil, err
		}
	}
	c.tracer.Trace(assertPosition{atoms: []Atom{atom}})
	return deductions, nil
}

// Push records a backtrack point; a matching Pop unwinds every
// activation, implication, potential change, and SPT update made
// since.
func (c *Core) Push() {
	c.graph.journal.PushMark()
}

// Pop unwinds the Journal to the most recent Push.
func (c *Core) Pop() {
	c.graph.journal.PopTo(c.graph)
}

// Interrupt asks any in-progress or future call on this Core to
// return Interrupted at its next opportunity.
func (c *Core) Interrupt() {
	c.interrupted = true
}

// Explain reconstructs the chain of active atoms that forced atom's
// current truth value, by walking the shortest-path tree that
// justified the relevant deduction. Under lazy SPT maintenance the
// tree is rebuilt on demand rather than read off stored parent
// pointers.
func (c *Core) Explain(atom Atom, polarity Polarity) ([]Atom, error) {
	p, ok := c.graph.pairs[atom.ID()]
	if !ok {
		return nil, newInvariantViolation("explain: atom %d was never declared", atom.ID())
	}
	e := p.edgeOf(polarity)

	if !c.cfg.LazyGeneration {
		if atoms, err := c.explainPath(e.From(), e.To()); err == nil {
			return atoms, nil
		}
	}
	// The recompute always records parent pointers, even under lazy
	// maintenance, since explainPath reads them.
	lazy := c.graph.cfg.LazyGeneration
	c.graph.cfg.LazyGeneration = false
	c.graph.runForward(e.From())
	c.graph.cfg.LazyGeneration = lazy
	return c.explainPath(e.From(), e.To())
}

// explainPath walks each vertex's sptParentFwd backward from dst to
// src; every parent was set by the most recent forward pass rooted at
// src. Under eager maintenance that pass may be stale -- the caller
// falls back to recomputing it when the walk fails to reach src.
func (c *Core) explainPath(src, dst *Vertex) ([]Atom, error) {
	var atoms []Atom
	guard := 0
	cur := dst
	for cur != src {
		guard++
		if guard > len(c.graph.vertices)+1 {
			return nil, newInvariantViolation("explain: SPT parent chain did not reach the source")
		}
		edge := c.sptEdgeInto(cur)
		if edge == nil {
			return nil, newInvariantViolation("explain: vertex %d has no SPT parent", cur.id)
		}
		atoms = append(atoms, edge.Atom())
		cur = edge.From()
	}
	return atoms, nil
}

func (c *Core) sptEdgeInto(v *Vertex) *Edge {
	return v.sptParentFwd
}

// ExplainCycle turns an error returned by AssertLit into the cycle of
// edges that made the assertion infeasible, if it was that kind of
// failure. Each edge's Atom and EdgePolarity together give the
// literal a SAT engine should negate in its blocking clause.
func ExplainCycle(err error) ([]*Edge, bool) {
	inf, ok := err.(Infeasible)
	if !ok {
		return nil, false
	}
	return inf.Cycle, true
}

func infeasibleAtoms(err error) []Atom {
	inf, ok := err.(Infeasible)
	if !ok {
		return nil
	}
	atoms := make([]Atom, len(inf.Cycle))
	for i, e := range inf.Cycle {
		atoms[i] = e.Atom()
	}
	return atoms
}

type conflictPosition struct{ atoms []Atom }

func (p conflictPosition) Active() []Atom   { return nil }
func (p conflictPosition) Conflict() []Atom { return p.atoms }

type assertPosition struct{ atoms []Atom }

func (p assertPosition) Active() []Atom   { return p.atoms }
func (p assertPosition) Conflict() []Atom { return nil }
