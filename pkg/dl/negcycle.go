package dl

import "container/heap"

// gammaHeap is an indexed max-heap over gamma, the amount by which a
// vertex's potential must still decrease during one fixPotentials
// pass. It mirrors the heightHeap pattern used for push-relabel
// height selection: a slice-backed heap.Interface whose Swap keeps
// each Vertex's heap index current so a later in-place key update can
// be reconciled with heap.Fix instead of a linear search.
type gammaHeap struct {
	items []*Vertex
	token uint64
}

func (h *gammaHeap) Len() int { return len(h.items) }

func (h *gammaHeap) Less(i, j int) bool {
	return h.items[i].gamma.Cmp(h.items[j].gamma) > 0
}

func (h *gammaHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].heapIdxGamma = i
	h.items[j].heapIdxGamma = j
}

func (h *gammaHeap) Push(x interface{}) {
	v := x.(*Vertex)
	v.heapIdxGamma = len(h.items)
	h.items = append(h.items, v)
}

func (h *gammaHeap) Pop() interface{} {
	n := len(h.items)
	v := h.items[n-1]
	h.items[n-1] = nil
	h.items = h.items[:n-1]
	v.heapIdxGamma = -1
	return v
}

// setGamma assigns v's required-decrease amount for the current pass,
// pushing it onto the heap if new or repositioning it via heap.Fix if
// its key improved.
func (h *gammaHeap) setGamma(v *Vertex, amount Weight) {
	v.gamma = amount
	v.gammaStamp = h.token
	if v.heapIdxGamma == -1 {
		heap.Push(h, v)
	} else {
		heap.Fix(h, v.heapIdxGamma)
	}
}

func (v *Vertex) gammaOrZero(token uint64, logic Logic) Weight {
	if v.gammaStamp == token {
		return v.gamma
	}
	return zeroWeight(logic)
}

// fixPotentials implements the Cotton-Maler incremental repair: given
// a newly activated edge e whose endpoints violate Pi(u)+w >= Pi(v),
// it propagates the minimal potential decrease needed to restore
// validity along active edges, or discovers that no such decrease
// exists (a negative cycle) and returns Infeasible.
//
// Potentials are read but never written until the whole pass
// succeeds: gamma values are computed against the untouched Pi, and
// only a successful pass calls setPotential (which journals the
// change). A failed pass leaves the graph exactly as it found it.
func (g *Graph) fixPotentials(e *Edge) error {
	u, v := e.From(), e.To()

	slack := u.Pi.Add(e.Weight()).Sub(v.Pi)
	if !(slack.Cmp(zeroWeight(g.cfg.Logic)) < 0) {
		return nil
	}

	g.epochGamma++
	token := g.epochGamma
	h := &gammaHeap{token: token}

	h.setGamma(v, v.Pi.Sub(u.Pi).Sub(e.Weight())) // v.Pi - (u.Pi+e.Weight()), i.e. -slack
	g.conflictEdges[v.id] = e

	touched := make([]*Vertex, 0, len(g.vertices))
	guard := 0
	for h.Len() > 0 {
		guard++
		if guard > len(g.vertices)+1 {
			return newInvariantViolation("fixPotentials: gamma propagation did not terminate")
		}

		x := heap.Pop(h).(*Vertex)
		touched = append(touched, x)

		if x == u {
			cycle, err := g.reconstructCycle(u, v, e)
			if err != nil {
				return err
			}
			return Infeasible{Cycle: cycle}
		}

		dx := x.gammaOrZero(token, g.cfg.Logic)
		for _, out := range g.activeAdj[x.id] {
			y := out.To()
			if y.piPrimeStamp == token && y != u {
				continue // already finalized this pass (shouldn't re-open)
			}
			edgeSlack := x.Pi.Add(out.Weight()).Sub(y.Pi)
			candidate := dx.Sub(edgeSlack)
			current := y.gammaOrZero(token, g.cfg.Logic)
			if candidate.Cmp(current) > 0 {
				h.setGamma(y, candidate)
				g.conflictEdges[y.id] = out
			}
		}

		x.piPrimeStamp = token
	}

	for _, x := range touched {
		dx := x.gammaOrZero(token, g.cfg.Logic)
		if dx.IsZero() {
			continue
		}
		g.setPotential(x, x.Pi.Sub(dx))
	}
	return nil
}

// reconstructCycle walks conflictEdges backward from u (the vertex
// whose own potential was found to need decreasing) until it reaches
// v, then closes the loop with e, producing the negative cycle's
// conflict edge set in source-to-sink order.
func (g *Graph) reconstructCycle(u, v *Vertex, e *Edge) ([]*Edge, error) {
	var chain []*Edge
	cur := u
	guard := 0
	for cur != v {
		guard++
		if guard > len(g.vertices)+1 {
			return nil, newInvariantViolation("reconstructCycle: conflict-edge chain did not reach the source")
		}
		edge := g.conflictEdges[cur.id]
		if edge == nil {
			return nil, newInvariantViolation("reconstructCycle: missing conflict edge at vertex %d", cur.id)
		}
		chain = append(chain, edge)
		cur = edge.From()
	}

	cycle := make([]*Edge, 0, len(chain)+1)
	for i := len(chain) - 1; i >= 0; i-- {
		cycle = append(cycle, chain[i])
	}
	cycle = append(cycle, e)
	return cycle, nil
}
