package dl

// Deduction is one theory-propagated literal. Reason is the edge that
// would need to be explained if the SAT engine later asks why; it is
// resolved lazily through Explain rather than eagerly attached here.
type Deduction struct {
	Atom     Atom
	Polarity Polarity
	Reason   *Edge
}

// deduceFromActivation runs after e=(u,v) has just been activated and
// the forward/backward reduced-weight trees rooted at v and u are
// current: every inactive edge (a,b) that closes a path
// a -> ... -> u -> v -> ... -> b no longer than its own weight is
// implied, at the polarity that edge already carries.
//
// It scans whichever of the two relevant sets is smaller and probes
// the other side with an O(1) stamp check, rather than scanning every
// inactive edge. The outer scan is filtered down to relevant vertices;
// since runForward and runBackward mark every vertex they settle as
// relevant, the filter keeps every settled vertex.
func (g *Graph) deduceFromActivation(e *Edge) []Deduction {
	u, v := e.From(), e.To()
	fwdRelevant := g.filterForwardRelevant(g.runForward(v))
	bwdRelevant := g.filterBackwardRelevant(g.runBackward(u))
	rwtUV := g.rwt(e)

	var out []Deduction
	if len(bwdRelevant) <= len(fwdRelevant) {
		for _, a := range bwdRelevant {
			bd, ok := g.backwardDist(a)
			if !ok {
				continue
			}
			for _, cand := range g.inactiveAdj[a.id] {
				b := cand.To()
				fd, ok := g.forwardDist(b)
				if !ok || !g.forwardRelevant(b) {
					continue
				}
				if d, implied := impliedByPath(bd, rwtUV, fd, a, b, cand); implied {
					out = append(out, d)
				}
			}
		}
	} else {
		for _, b := range fwdRelevant {
			fd, ok := g.forwardDist(b)
			if !ok {
				continue
			}
			for _, cand := range g.inactiveAdjIn[b.id] {
				a := cand.From()
				bd, ok := g.backwardDist(a)
				if !ok || !g.backwardRelevant(a) {
					continue
				}
				if d, implied := impliedByPath(bd, rwtUV, fd, a, b, cand); implied {
					out = append(out, d)
				}
			}
		}
	}
	return out
}

func (g *Graph) filterForwardRelevant(vs []*Vertex) []*Vertex {
	out := make([]*Vertex, 0, len(vs))
	for _, v := range vs {
		if g.forwardRelevant(v) {
			out = append(out, v)
		}
	}
	return out
}

func (g *Graph) filterBackwardRelevant(vs []*Vertex) []*Vertex {
	out := make([]*Vertex, 0, len(vs))
	for _, v := range vs {
		if g.backwardRelevant(v) {
			out = append(out, v)
		}
	}
	return out
}

// impliedByPath converts a reduced-weight path length back into the
// original edge weights (reduced weight is w + Pi(from) - Pi(to), so
// original length = pathRwt - Pi(a) + Pi(b)) and checks it against the
// candidate edge's own weight.
func impliedByPath(bd, rwtUV, fd Weight, a, b *Vertex, cand *Edge) (Deduction, bool) {
	pathRwt := bd.Add(rwtUV).Add(fd)
	trueLen := pathRwt.Sub(a.Pi).Add(b.Pi)
	if trueLen.Cmp(cand.Weight()) > 0 {
		return Deduction{}, false
	}
	return Deduction{Atom: cand.Atom(), Polarity: cand.EdgePolarity(), Reason: cand}, true
}
