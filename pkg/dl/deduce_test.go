package dl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduceFromActivationFindsImpliedEdge(t *testing.T) {
	g := newTestGraph()
	vs := newVars("u", "v", "w")
	u, v, w := vs[0], vs[1], vs[2]

	eUV := activateDirect(t, g, diffAtom(1, v, u, 2)) // u --2--> v
	activateDirect(t, g, diffAtom(2, w, v, 3))         // v --3--> w

	implied := diffAtom(3, w, u, 6)    // u --6--> w, inactive; path u->v->w costs 5
	notImplied := diffAtom(4, w, u, 4) // u --4--> w, inactive; tighter than the path
	_, err := g.insertStatic(implied)
	require.NoError(t, err)
	_, err = g.insertStatic(notImplied)
	require.NoError(t, err)

	deductions := g.deduceFromActivation(eUV)

	var sawImplied, sawNotImplied bool
	for _, d := range deductions {
		if d.Atom.ID() == implied.ID() {
			sawImplied = true
			assert.Equal(t, Positive, d.Polarity)
		}
		if d.Atom.ID() == notImplied.ID() {
			sawNotImplied = true
		}
	}
	assert.True(t, sawImplied, "looser-than-path candidate should be implied")
	assert.False(t, sawNotImplied, "candidate stricter than the path must not be implied")
}

func TestDeduceFromActivationEmptyWhenNothingImplied(t *testing.T) {
	g := newTestGraph()
	vs := newVars("u", "v", "w")
	u, v, w := vs[0], vs[1], vs[2]

	eUV := activateDirect(t, g, diffAtom(1, v, u, 1))

	// w is disconnected; no inactive edge touches the relevant sets.
	_ = w
	deductions := g.deduceFromActivation(eUV)
	assert.Empty(t, deductions)
}
