package dl

// Graph owns vertices and edges, the five adjacency views, and the
// atom state machine (Inactive / Active+ / Active- / Implied+ /
// Implied-). Nothing in this file runs Dijkstra; negcycle.go and
// sssp.go read these adjacency views but mutate only through the
// Journal.
type Graph struct {
	cfg   Config
	store TermStore

	vertices   []*Vertex
	varVertex  []*Vertex // index: VarRef.VarID(); lazily populated
	zeroVertex *Vertex

	pairs map[int64]*edgePair // atom.ID() -> pair
	edges []*Edge             // all edges ever created, index = EdgeID

	staticAdj     [][]*Edge
	activeAdj     [][]*Edge
	activeAdjIn   [][]*Edge
	inactiveAdj   [][]*Edge
	inactiveAdjIn [][]*Edge

	journal *Journal

	// epoch tokens backing the per-pass scratch fields on Vertex: a
	// scratch value is only valid when its stamp matches the current
	// epoch, so a new SSSP or negative-cycle pass invalidates every
	// stale value in O(1) instead of clearing vertex arrays.
	epochGamma    uint64
	epochPiPrime  uint64
	epochDistFwd  uint64
	epochFinalFwd uint64
	epochDistBwd  uint64
	epochFinalBwd uint64
	epochRelFwd   uint64
	epochRelBwd   uint64

	negCycleVertex *Vertex
	conflictEdges  []*Edge // conflictEdges[v.id] = edge used to relax v, valid only during/just after a negcycle check
}

func newGraph(cfg Config, store TermStore) *Graph {
	return &Graph{
		cfg:          cfg,
		store:        store,
		journal:      newJournal(),
		pairs:        make(map[int64]*edgePair),
		epochPiPrime: 1, // 0 is reserved so a freshly-allocated Edge's zero-value rwtStamp never looks cached
	}
}

func (g *Graph) allocVertex() *Vertex {
	id := len(g.vertices)
	v := newVertex(id)
	v.Pi = zeroWeight(g.cfg.Logic)
	g.vertices = append(g.vertices, v)
	g.staticAdj = append(g.staticAdj, nil)
	g.activeAdj = append(g.activeAdj, nil)
	g.activeAdjIn = append(g.activeAdjIn, nil)
	g.inactiveAdj = append(g.inactiveAdj, nil)
	g.inactiveAdjIn = append(g.inactiveAdjIn, nil)
	g.conflictEdges = append(g.conflictEdges, nil)
	return v
}

func (g *Graph) zero() *Vertex {
	if g.zeroVertex == nil {
		g.zeroVertex = g.allocVertex()
	}
	return g.zeroVertex
}

func (g *Graph) vertexForVar(ref VarRef) *Vertex {
	k := ref.VarID()
	if k >= len(g.varVertex) {
		grown := make([]*Vertex, k+1)
		copy(grown, g.varVertex)
		g.varVertex = grown
	}
	if g.varVertex[k] == nil {
		g.varVertex[k] = g.allocVertex()
	}
	return g.varVertex[k]
}

func (g *Graph) vertexForOperand(op operand) *Vertex {
	if op.zero {
		return g.zero()
	}
	return g.vertexForVar(op.ref)
}

// insertStatic ensures the edge pair for atom exists and is recorded
// in the static adjacency, and — if theory propagation is enabled —
// in the inactive adjacency views. It is idempotent by atom identity.
func (g *Graph) insertStatic(atom Atom) (*edgePair, error) {
	if p, ok := g.pairs[atom.ID()]; ok {
		return p, nil
	}

	na, err := normalize(atom, g.cfg.Logic)
	if err != nil {
		return nil, err
	}

	u := g.vertexForOperand(na.x)
	v := g.vertexForOperand(na.y)

	posWeight := edgeWeights(na.c, g.cfg, g.store)
	negWeight := negatedWeight(posWeight, g.cfg.Logic)

	posID := EdgeID(len(g.edges))
	pos := &Edge{id: posID, atom: atom, polarity: Positive, u: u, v: v, weight: posWeight}
	negID := posID + 1
	neg := &Edge{id: negID, atom: atom, polarity: Negative, u: v, v: u, weight: negWeight}
	g.edges = append(g.edges, pos, neg)

	p := &edgePair{pos: pos, neg: neg, state: stateInactive}
	g.pairs[atom.ID()] = p

	g.staticAdj[u.id] = append(g.staticAdj[u.id], pos)
	g.staticAdj[v.id] = append(g.staticAdj[v.id], neg)

	if g.cfg.TheoryPropagation {
		g.insertInactive(p)
	}

	return p, nil
}

func (g *Graph) insertInactive(p *edgePair) {
	g.inactiveAdj[p.pos.u.id] = append(g.inactiveAdj[p.pos.u.id], p.pos)
	g.inactiveAdjIn[p.pos.v.id] = append(g.inactiveAdjIn[p.pos.v.id], p.pos)
	g.inactiveAdj[p.neg.u.id] = append(g.inactiveAdj[p.neg.u.id], p.neg)
	g.inactiveAdjIn[p.neg.v.id] = append(g.inactiveAdjIn[p.neg.v.id], p.neg)
}

func (g *Graph) deleteInactive(p *edgePair) {
	g.inactiveAdj[p.pos.u.id] = removeEdge(g.inactiveAdj[p.pos.u.id], p.pos)
	g.inactiveAdjIn[p.pos.v.id] = removeEdge(g.inactiveAdjIn[p.pos.v.id], p.pos)
	g.inactiveAdj[p.neg.u.id] = removeEdge(g.inactiveAdj[p.neg.u.id], p.neg)
	g.inactiveAdjIn[p.neg.v.id] = removeEdge(g.inactiveAdjIn[p.neg.v.id], p.neg)
}

func removeEdge(list []*Edge, e *Edge) []*Edge {
	for i, x := range list {
		if x == e {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// activate selects pos or neg by polarity, appends it to the active
// adjacency views, removes both polarities of the atom from the
// inactive views, and journals the transition. Pre: atom is currently
// Inactive, or Implied at the other polarity; in the latter case the
// edge is activated all the same, so that fixPotentials reports the
// negative cycle it closes with the path that implied the other
// polarity. Undoing that activation leaves the atom Inactive.
func (g *Graph) activate(atom Atom, polarity Polarity) (*Edge, error) {
	p, ok := g.pairs[atom.ID()]
	if !ok {
		return nil, newInvariantViolation("activate: atom %d was never inserted", atom.ID())
	}
	if p.state == stateActivePos || p.state == stateActiveNeg {
		if p.state.polarity() == polarity {
			// Idempotent re-activation.
			return p.edgeOf(polarity), nil
		}
		return nil, newInvariantViolation("activate: atom %d already active at the other polarity", atom.ID())
	}
	if (p.state == stateImpliedPos || p.state == stateImpliedNeg) && p.state.polarity() == polarity {
		// An implied atom being asserted at the same polarity is a
		// silent promotion; no graph structure changes.
		return p.edgeOf(polarity), nil
	}

	e := p.edgeOf(polarity)
	g.activeAdj[e.u.id] = append(g.activeAdj[e.u.id], e)
	g.activeAdjIn[e.v.id] = append(g.activeAdjIn[e.v.id], e)

	if g.cfg.TheoryPropagation {
		g.deleteInactive(p)
	}

	if polarity == Positive {
		p.state = stateActivePos
	} else {
		p.state = stateActiveNeg
	}
	g.journal.recordActivated(atom, polarity)

	return e, nil
}

// deactivate is activate's exact inverse: it pops the most recent
// active-adjacency entry for the atom's edge, which must be the tail
// of both the forward and backward active adjacency, since
// activations and deactivations nest in strict LIFO order as the
// search backtracks.
func (g *Graph) deactivate(atom Atom) error {
	p, ok := g.pairs[atom.ID()]
	if !ok {
		return newInvariantViolation("deactivate: atom %d was never inserted", atom.ID())
	}
	if !p.state.isActive() {
		return newInvariantViolation("deactivate: atom %d is not active", atom.ID())
	}
	e := p.edgeOf(p.state.polarity())

	if err := popLIFO(g.activeAdj[e.u.id], e); err != nil {
		return err
	}
	g.activeAdj[e.u.id] = g.activeAdj[e.u.id][:len(g.activeAdj[e.u.id])-1]
	if err := popLIFO(g.activeAdjIn[e.v.id], e); err != nil {
		return err
	}
	g.activeAdjIn[e.v.id] = g.activeAdjIn[e.v.id][:len(g.activeAdjIn[e.v.id])-1]

	p.state = stateInactive
	if g.cfg.TheoryPropagation {
		g.insertInactive(p)
	}
	return nil
}

func popLIFO(list []*Edge, e *Edge) error {
	if len(list) == 0 || list[len(list)-1] != e {
		return newInvariantViolation("active adjacency LIFO violation: expected %v on top", e)
	}
	return nil
}

// imply marks atom as Implied at polarity without touching the active
// adjacency views.
func (g *Graph) imply(atom Atom, polarity Polarity) error {
	p, ok := g.pairs[atom.ID()]
	if !ok {
		return newInvariantViolation("imply: atom %d was never inserted", atom.ID())
	}
	if p.state != stateInactive {
		return newInvariantViolation("imply: atom %d is not inactive", atom.ID())
	}
	if g.cfg.TheoryPropagation {
		g.deleteInactive(p)
	}
	if polarity == Positive {
		p.state = stateImpliedPos
	} else {
		p.state = stateImpliedNeg
	}
	g.journal.recordImplied(atom, polarity)
	return nil
}

// unimply is imply's inverse.
func (g *Graph) unimply(atom Atom) error {
	p, ok := g.pairs[atom.ID()]
	if !ok {
		return newInvariantViolation("unimply: atom %d was never inserted", atom.ID())
	}
	if !p.state.isImplied() {
		return newInvariantViolation("unimply: atom %d is not implied", atom.ID())
	}
	p.state = stateInactive
	if g.cfg.TheoryPropagation {
		g.insertInactive(p)
	}
	return nil
}

// --- undoSink implementation, driving Journal.PopTo ---

func (g *Graph) undoActivate(atom Atom, polarity Polarity) {
	_ = g.deactivate(atom)
}

func (g *Graph) undoImply(atom Atom, polarity Polarity) {
	_ = g.unimply(atom)
}

func (g *Graph) undoPotentialChange(v *Vertex, oldPi Weight) {
	v.Pi = oldPi
	g.epochPiPrime++
}

func (g *Graph) undoSPTUpdate(v *Vertex, forward bool, oldParent *Edge, hadParent bool) {
	var newVal *Edge
	if hadParent {
		newVal = oldParent
	}
	if forward {
		v.sptParentFwd = newVal
	} else {
		v.sptParentBwd = newVal
	}
}

// parallelAndHeavy reports whether there is already an active edge
// u->v with weight <= e's weight, in which case activating e cannot
// imply anything new: any path that would route through e also
// routes through the cheaper parallel edge.
func (g *Graph) parallelAndHeavy(e *Edge) bool {
	for _, other := range g.activeAdj[e.u.id] {
		if other == e {
			continue
		}
		if other.v.id == e.v.id && other.weight.Cmp(e.weight) <= 0 {
			return true
		}
	}
	return false
}

func (g *Graph) setPotential(v *Vertex, newPi Weight) {
	g.journal.recordPotentialChanged(v, v.Pi)
	v.Pi = newPi
	g.epochPiPrime++
}

// setSPTParent records that edge parent was just used to relax v's
// distance, overwriting whatever tree edge previously claimed v. One
// slot per vertex means a superseded predecessor is never left
// marked alongside the edge that actually supersedes it.
func (g *Graph) setSPTParent(v *Vertex, forward bool, parent *Edge) {
	var old *Edge
	var had bool
	if forward {
		old, had = v.sptParentFwd, v.sptParentFwd != nil
		g.journal.recordSPTUpdated(v, true, old, had)
		v.sptParentFwd = parent
	} else {
		old, had = v.sptParentBwd, v.sptParentBwd != nil
		g.journal.recordSPTUpdated(v, false, old, had)
		v.sptParentBwd = parent
	}
}
