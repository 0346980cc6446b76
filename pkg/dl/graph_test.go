package dl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph() *Graph {
	return newGraph(defaultConfig(), nil)
}

func TestInsertStaticIsIdempotent(t *testing.T) {
	g := newTestGraph()
	vs := newVars("x", "y")
	a := diffAtom(1, vs[0], vs[1], 3)

	p1, err := g.insertStatic(a)
	require.NoError(t, err)
	p2, err := g.insertStatic(a)
	require.NoError(t, err)
	assert.Same(t, p1, p2)
}

func TestInsertStaticEdgePairIDs(t *testing.T) {
	g := newTestGraph()
	vs := newVars("x", "y")
	a := diffAtom(1, vs[0], vs[1], 3)

	p, err := g.insertStatic(a)
	require.NoError(t, err)
	assert.Equal(t, p.pos.id+1, p.neg.id)
	assert.Equal(t, p.pos.id%2, EdgeID(0))
	assert.Equal(t, p.pos.u, p.neg.v)
	assert.Equal(t, p.pos.v, p.neg.u)
}

func TestActivateDeactivateRoundtrip(t *testing.T) {
	g := newTestGraph()
	vs := newVars("x", "y")
	a := diffAtom(1, vs[0], vs[1], 3)
	_, err := g.insertStatic(a)
	require.NoError(t, err)

	e, err := g.activate(a, Positive)
	require.NoError(t, err)
	assert.Contains(t, g.activeAdj[e.u.id], e)

	require.NoError(t, g.deactivate(a))
	assert.NotContains(t, g.activeAdj[e.u.id], e)
	assert.Equal(t, stateInactive, g.pairs[a.ID()].state)
}

func TestActivateIsIdempotentAtSamePolarity(t *testing.T) {
	g := newTestGraph()
	vs := newVars("x", "y")
	a := diffAtom(1, vs[0], vs[1], 3)
	_, err := g.insertStatic(a)
	require.NoError(t, err)

	e1, err := g.activate(a, Positive)
	require.NoError(t, err)
	e2, err := g.activate(a, Positive)
	require.NoError(t, err)
	assert.Same(t, e1, e2)
	assert.Len(t, g.activeAdj[e1.u.id], 1)
}

func TestActivateRejectsOppositePolarity(t *testing.T) {
	g := newTestGraph()
	vs := newVars("x", "y")
	a := diffAtom(1, vs[0], vs[1], 3)
	_, err := g.insertStatic(a)
	require.NoError(t, err)

	_, err = g.activate(a, Positive)
	require.NoError(t, err)
	_, err = g.activate(a, Negative)
	assert.Error(t, err)
}

func TestImplyThenAssertSamePolarityIsNoop(t *testing.T) {
	g := newTestGraph()
	vs := newVars("x", "y")
	a := diffAtom(1, vs[0], vs[1], 3)
	_, err := g.insertStatic(a)
	require.NoError(t, err)

	require.NoError(t, g.imply(a, Positive))
	e, err := g.activate(a, Positive)
	require.NoError(t, err)
	assert.NotNil(t, e)
	// Implied-then-asserted should not have pushed a second active-adjacency entry.
	assert.Empty(t, g.activeAdj[e.u.id])
}

func TestDeactivateEnforcesLIFO(t *testing.T) {
	g := newTestGraph()
	vs := newVars("x", "y", "z")
	x, y, z := vs[0], vs[1], vs[2]

	// Both atoms' positive edges point out of y (pos edge = subtrahend
	// -> minuend), so they land on the same activeAdj[y] stack.
	a := diffAtom(1, x, y, 1) // x - y <= 1, pos edge y->x
	b := diffAtom(2, z, y, 2) // z - y <= 2, pos edge y->z
	_, err := g.insertStatic(a)
	require.NoError(t, err)
	_, err = g.insertStatic(b)
	require.NoError(t, err)

	_, err = g.activate(a, Positive)
	require.NoError(t, err)
	_, err = g.activate(b, Positive)
	require.NoError(t, err)

	// a is no longer on top of y's stack; deactivating it out of order
	// must fail.
	require.Error(t, g.deactivate(a))

	// Popping in LIFO order succeeds.
	require.NoError(t, g.deactivate(b))
	require.NoError(t, g.deactivate(a))
}

func TestParallelAndHeavy(t *testing.T) {
	g := newTestGraph()
	vs := newVars("x", "y")
	light := diffAtom(1, vs[0], vs[1], 1)
	heavy := diffAtom(2, vs[0], vs[1], 5)
	_, err := g.insertStatic(light)
	require.NoError(t, err)
	_, err = g.insertStatic(heavy)
	require.NoError(t, err)

	eLight, err := g.activate(light, Positive)
	require.NoError(t, err)
	eHeavy, err := g.activate(heavy, Positive)
	require.NoError(t, err)

	assert.False(t, g.parallelAndHeavy(eLight))
	assert.True(t, g.parallelAndHeavy(eHeavy))
}
