package dl

import "container/heap"

// rwt returns this edge's reduced weight, w(u,v) + Pi(u) - Pi(v),
// which is non-negative for every active edge whenever Pi is a valid
// potential function. The value is cached against the graph's
// potential-version token so a SSSP pass never recomputes it twice
// for the same potentials.
func (g *Graph) rwt(e *Edge) Weight {
	if e.rwtStamp == g.epochPiPrime {
		return e.rwt
	}
	e.rwt = e.Weight().Add(e.From().Pi).Sub(e.To().Pi)
	e.rwtStamp = g.epochPiPrime
	return e.rwt
}

// sptHeap is the shared indexed-heap shape for both the forward and
// backward Dijkstra passes; which vertex field it reads/writes is
// selected by forward.
type sptHeap struct {
	items   []*Vertex
	token   uint64
	forward bool
}

func (h *sptHeap) dist(v *Vertex) Weight {
	if h.forward {
		return v.distFwd
	}
	return v.distBwd
}

func (h *sptHeap) setDist(v *Vertex, d Weight) {
	if h.forward {
		v.distFwd = d
		v.distFwdStamp = h.token
	} else {
		v.distBwd = d
		v.distBwdStamp = h.token
	}
}

func (h *sptHeap) idx(v *Vertex) int {
	if h.forward {
		return v.heapIdxFwd
	}
	return v.heapIdxBwd
}

func (h *sptHeap) setIdx(v *Vertex, i int) {
	if h.forward {
		v.heapIdxFwd = i
	} else {
		v.heapIdxBwd = i
	}
}

func (h *sptHeap) Len() int { return len(h.items) }

func (h *sptHeap) Less(i, j int) bool {
	return h.dist(h.items[i]).Cmp(h.dist(h.items[j])) < 0
}

func (h *sptHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.setIdx(h.items[i], i)
	h.setIdx(h.items[j], j)
}

func (h *sptHeap) Push(x interface{}) {
	v := x.(*Vertex)
	h.setIdx(v, len(h.items))
	h.items = append(h.items, v)
}

func (h *sptHeap) Pop() interface{} {
	n := len(h.items)
	v := h.items[n-1]
	h.items[n-1] = nil
	h.items = h.items[:n-1]
	h.setIdx(v, -1)
	return v
}

func (h *sptHeap) offer(v *Vertex, d Weight) {
	h.setDist(v, d)
	if h.idx(v) == -1 {
		heap.Push(h, v)
	} else {
		heap.Fix(h, h.idx(v))
	}
}

// runForward computes the reduced-weight shortest-path tree rooted at
// src over the active edges, in the direction they point.
// finalFwdStamp marks the settled set. Relevance is seeded only at
// src and propagated from each relaxing predecessor's current
// relevance, re-set on every improvement until the vertex it belongs
// to is itself finalized; noRelevant counts how many relevant vertices
// are still unsettled, and the pass stops as soon as it reaches zero.
// Every vertex the pass reaches is relaxed from a relevant
// predecessor and so is itself relevant; the counter therefore reaches
// zero only when the frontier is empty, and the pass settles every
// vertex reachable from src. Relevance does not depend on inactive
// edges.
// When cfg.LazyGeneration is set, sptParentFwd pointers are left
// untouched and Explain must recompute the tree on demand; otherwise
// they are written eagerly as each edge is used to relax, one slot
// per vertex so a superseded predecessor is never left marked.
func (g *Graph) runForward(src *Vertex) []*Vertex {
	g.epochDistFwd++
	g.epochFinalFwd++
	h := &sptHeap{token: g.epochDistFwd, forward: true}

	src.distFromSrcFwd = 0
	h.offer(src, zeroWeight(g.cfg.Logic))
	src.relFwd = true
	src.relFwdStamp = g.epochFinalFwd
	noRelevant := 1

	visited := make([]*Vertex, 0, len(g.vertices))
	for h.Len() > 0 {
		x := heap.Pop(h).(*Vertex)
		x.finalFwdStamp = g.epochFinalFwd
		visited = append(visited, x)
		dx := x.distFwd
		xRelevant := g.forwardRelevant(x)
		if xRelevant {
			noRelevant--
		}

		for _, e := range g.activeAdj[x.id] {
			y := e.To()
			if y.finalFwdStamp == g.epochFinalFwd {
				continue
			}
			cand := dx.Add(g.rwt(e))
			if y.distFwdStamp != h.token || cand.Cmp(y.distFwd) < 0 {
				h.offer(y, cand)
				y.distFromSrcFwd = x.distFromSrcFwd + 1
				if !g.cfg.LazyGeneration {
					g.setSPTParent(y, true, e)
				}
				yWasRelevant := g.forwardRelevant(y)
				y.relFwd = xRelevant
				y.relFwdStamp = g.epochFinalFwd
				switch {
				case xRelevant && !yWasRelevant:
					noRelevant++
				case !xRelevant && yWasRelevant:
					noRelevant--
				}
			}
		}
		if noRelevant <= 0 {
			break
		}
	}
	return visited
}

// runBackward is runForward's mirror image: it computes reduced-weight
// distances FROM every vertex TO dst, walking activeAdjIn so that
// relaxation still follows edges in their forward orientation.
func (g *Graph) runBackward(dst *Vertex) []*Vertex {
	g.epochDistBwd++
	g.epochFinalBwd++
	h := &sptHeap{token: g.epochDistBwd, forward: false}

	dst.distFromSrcBwd = 0
	h.offer(dst, zeroWeight(g.cfg.Logic))
	dst.relBwd = true
	dst.relBwdStamp = g.epochFinalBwd
	noRelevant := 1

	visited := make([]*Vertex, 0, len(g.vertices))
	for h.Len() > 0 {
		x := heap.Pop(h).(*Vertex)
		x.finalBwdStamp = g.epochFinalBwd
		visited = append(visited, x)
		dx := x.distBwd
		xRelevant := g.backwardRelevant(x)
		if xRelevant {
			noRelevant--
		}

		for _, e := range g.activeAdjIn[x.id] {
			y := e.From()
			if y.finalBwdStamp == g.epochFinalBwd {
				continue
			}
			cand := dx.Add(g.rwt(e))
			if y.distBwdStamp != h.token || cand.Cmp(y.distBwd) < 0 {
				h.offer(y, cand)
				y.distFromSrcBwd = x.distFromSrcBwd + 1
				if !g.cfg.LazyGeneration {
					g.setSPTParent(y, false, e)
				}
				yWasRelevant := g.backwardRelevant(y)
				y.relBwd = xRelevant
				y.relBwdStamp = g.epochFinalBwd
				switch {
				case xRelevant && !yWasRelevant:
					noRelevant++
				case !xRelevant && yWasRelevant:
					noRelevant--
				}
			}
		}
		if noRelevant <= 0 {
			break
		}
	}
	return visited
}

func (g *Graph) forwardRelevant(v *Vertex) bool {
	return v.relFwdStamp == g.epochFinalFwd && v.relFwd
}

func (g *Graph) backwardRelevant(v *Vertex) bool {
	return v.relBwdStamp == g.epochFinalBwd && v.relBwd
}

func (g *Graph) forwardDist(v *Vertex) (Weight, bool) {
	if v.finalFwdStamp != g.epochFinalFwd {
		return nil, false
	}
	return v.distFwd, true
}

func (g *Graph) backwardDist(v *Vertex) (Weight, bool) {
	if v.finalBwdStamp != g.epochFinalBwd {
		return nil, false
	}
	return v.distBwd, true
}
