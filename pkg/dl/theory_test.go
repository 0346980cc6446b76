package dl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreAssertLitHappyPath(t *testing.T) {
	core := NewCore(fakeStore{})
	vs := newVars("x", "y")
	x, y := vs[0], vs[1]

	atom := diffAtom(1, x, y, 3)
	require.NoError(t, core.Declare(atom))

	deductions, err := core.AssertLit(atom, Positive)
	require.NoError(t, err)
	assert.Empty(t, deductions)
}

func TestCoreAssertLitDetectsInfeasibility(t *testing.T) {
	core := NewCore(fakeStore{})
	vs := newVars("a", "b")
	a, b := vs[0], vs[1]

	atom1 := diffAtom(1, a, b, 2)  // pos edge b -> a, weight 2
	atom2 := diffAtom(2, b, a, -5) // pos edge a -> b, weight -5

	require.NoError(t, core.Declare(atom1))
	require.NoError(t, core.Declare(atom2))

	_, err := core.AssertLit(atom1, Positive)
	require.NoError(t, err)

	_, err = core.AssertLit(atom2, Positive)
	require.Error(t, err)

	cycle, ok := ExplainCycle(err)
	require.True(t, ok)
	require.Len(t, cycle, 2)

	sum := Weight(IntWeight(0))
	for _, e := range cycle {
		sum = sum.Add(e.Weight())
	}
	assert.True(t, sum.Cmp(IntWeight(0)) < 0)
}

func TestCoreDeducesAndExplainsAcrossPath(t *testing.T) {
	core := NewCore(fakeStore{})
	vs := newVars("u", "v", "w")
	u, v, w := vs[0], vs[1], vs[2]

	atomUV := diffAtom(1, v, u, 2) // pos edge u -> v, weight 2
	atomVW := diffAtom(2, w, v, 3) // pos edge v -> w, weight 3
	candidate := diffAtom(3, w, u, 6) // pos edge u -> w, weight 6; looser than the u->v->w path

	require.NoError(t, core.Declare(atomUV))
	require.NoError(t, core.Declare(atomVW))
	require.NoError(t, core.Declare(candidate))

	_, err := core.AssertLit(atomUV, Positive)
	require.NoError(t, err)

	deductions, err := core.AssertLit(atomVW, Positive)
	require.NoError(t, err)

	var found bool
	for _, d := range deductions {
		if d.Atom.ID() == candidate.ID() {
			found = true
			assert.Equal(t, Positive, d.Polarity)
		}
	}
	require.True(t, found, "candidate should have been implied by the u->v->w path")

	atoms, err := core.Explain(candidate, Positive)
	require.NoError(t, err)
	require.Len(t, atoms, 2)

	ids := map[int64]bool{}
	for _, a := range atoms {
		ids[a.ID()] = true
	}
	assert.True(t, ids[atomUV.ID()])
	assert.True(t, ids[atomVW.ID()])
}

// TestCoreExplainPicksTrueShortestPathAmongPredecessors guards against
// the multi-predecessor SPT bug: s->p(1), s->q(1), p->t(100), q->t(1)
// all active, with an inactive s->t(3) candidate implied only via the
// true shortest path s->q->t (length 2), not the heavier s->p->t
// (length 101). Explain must return exactly the q-route atoms.
func TestCoreExplainPicksTrueShortestPathAmongPredecessors(t *testing.T) {
	core := NewCore(fakeStore{})
	vs := newVars("s", "p", "q", "t")
	s, p, q, tt := vs[0], vs[1], vs[2], vs[3]

	atomSP := diffAtom(1, p, s, 1)
	atomSQ := diffAtom(2, q, s, 1)
	atomPT := diffAtom(3, tt, p, 100)
	atomQT := diffAtom(4, tt, q, 1)
	candidate := diffAtom(5, tt, s, 3)

	for _, a := range []*fakeAtom{atomSP, atomSQ, atomPT, atomQT, candidate} {
		require.NoError(t, core.Declare(a))
	}

	for _, a := range []*fakeAtom{atomSP, atomSQ, atomQT, atomPT} {
		_, err := core.AssertLit(a, Positive)
		require.NoError(t, err)
	}

	atoms, err := core.Explain(candidate, Positive)
	require.NoError(t, err)
	require.Len(t, atoms, 2)

	ids := map[int64]bool{}
	for _, a := range atoms {
		ids[a.ID()] = true
	}
	assert.True(t, ids[atomSQ.ID()], "explanation must use the true shortest-path edge s->q")
	assert.True(t, ids[atomQT.ID()], "explanation must use the true shortest-path edge q->t")
	assert.False(t, ids[atomSP.ID()], "explanation must not use the heavier, superseded s->p edge")
	assert.False(t, ids[atomPT.ID()], "explanation must not use the heavier, superseded p->t edge")
}

func TestCoreInterruptShortCircuitsAssertLit(t *testing.T) {
	core := NewCore(fakeStore{})
	vs := newVars("x", "y")
	atom := diffAtom(1, vs[0], vs[1], 1)
	require.NoError(t, core.Declare(atom))

	core.Interrupt()
	_, err := core.AssertLit(atom, Positive)
	assert.ErrorIs(t, err, Interrupted)
}

func TestCorePushPopAcrossConflict(t *testing.T) {
	core := NewCore(fakeStore{})
	vs := newVars("a", "b")
	a, b := vs[0], vs[1]

	atom1 := diffAtom(1, a, b, 2)
	atom2 := diffAtom(2, b, a, -5)
	require.NoError(t, core.Declare(atom1))
	require.NoError(t, core.Declare(atom2))

	core.Push()
	_, err := core.AssertLit(atom1, Positive)
	require.NoError(t, err)

	core.Push()
	_, err = core.AssertLit(atom2, Positive)
	require.Error(t, err)
	core.Pop() // undo atom2's attempted (and rolled-back) activation

	p2 := core.graph.pairs[atom2.ID()]
	assert.Equal(t, stateInactive, p2.state)

	core.Pop() // undo atom1
	p1 := core.graph.pairs[atom1.ID()]
	assert.Equal(t, stateInactive, p1.state)
}
