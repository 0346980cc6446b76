package dl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeShapes(t *testing.T) {
	vs := newVars("x", "y")
	x, y := vs[0], vs[1]

	cases := []struct {
		name    string
		atom    *fakeAtom
		wantX   bool // true if x operand is the zero vertex
		wantY   bool
		wantC   int64
	}{
		{
			name:  "var <= var",
			atom:  orderAtom(1, x, y),
			wantC: 0,
		},
		{
			name:  "var <= const",
			atom:  boundAtom(2, x, 5),
			wantX: true,
			wantC: 5,
		},
		{
			name:  "const <= var",
			atom:  lowerBoundAtom(3, 5, x),
			wantY: true,
			wantC: -5,
		},
		{
			name:  "diff <= const",
			atom:  diffAtom(4, x, y, 3),
			wantC: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			na, err := normalize(tc.atom, IntegerDL)
			require.NoError(t, err)
			assert.Equal(t, tc.wantX, na.x.zero)
			assert.Equal(t, tc.wantY, na.y.zero)
			assert.Equal(t, IntWeight(tc.wantC), na.c)
		})
	}
}

func TestNormalizeConstLessEqualVar(t *testing.T) {
	vs := newVars("x")
	x := vs[0]

	// "5 <= x" should be equivalent in meaning to "-x <= -5", i.e. the
	// zero vertex is y and x is x, with c = -5.
	atom := lowerBoundAtom(1, 5, x)
	na, err := normalize(atom, IntegerDL)
	require.NoError(t, err)
	assert.False(t, na.x.zero)
	assert.True(t, na.y.zero)
	assert.Equal(t, IntWeight(-5), na.c)
}

func TestNormalizeDiffConstSwapped(t *testing.T) {
	vs := newVars("p", "q")
	p, q := vs[0], vs[1]

	// "3 <= p - q" <=> "q - p <= -3".
	atom := &fakeAtom{id: 1, lhs: fConst(3), rhs: fMinus(p, q)}
	na, err := normalize(atom, IntegerDL)
	require.NoError(t, err)
	assert.Equal(t, p.id, na.x.ref.VarID())
	assert.Equal(t, q.id, na.y.ref.VarID())
	assert.Equal(t, IntWeight(-3), na.c)
}

func TestNormalizeMalformed(t *testing.T) {
	vs := newVars("x", "y", "z")
	x, y, z := vs[0], vs[1], vs[2]

	// Minus term whose subtrahend is itself not a variable.
	bad := &fakeAtom{
		id:  1,
		lhs: &fakeTerm{kind: fakeTermMinus, minuend: fVar(x), subtrahend: fMinus(y, z)},
		rhs: fConst(1),
	}
	_, err := normalize(bad, IntegerDL)
	require.Error(t, err)
	var malformed MalformedAtom
	require.ErrorAs(t, err, &malformed)
}

func TestEdgeNegationRuleInteger(t *testing.T) {
	pos := edgeWeights(IntWeight(5), Config{Logic: IntegerDL}, nil)
	neg := negatedWeight(pos, IntegerDL)
	assert.Equal(t, IntWeight(5), pos)
	assert.Equal(t, IntWeight(-6), neg)
}

func TestEdgeNegationRuleRational(t *testing.T) {
	pos := RatWeight{Rat: ratOf(5, 1), Eps: 0}
	neg := negatedWeight(pos, RationalDL)
	got := neg.(RatWeight)
	assert.Equal(t, int64(-1), got.Eps)
	assert.Equal(t, 0, got.Rat.Cmp(ratOf(-5, 1)))
}

func TestEdgeWeightsRescale(t *testing.T) {
	cfg := Config{Logic: RationalDL, RescaleEnabled: true}
	store := ratRescaler{factor: 3}
	got := edgeWeights(RatWeight{Rat: ratOf(1, 1)}, cfg, store)
	assert.Equal(t, 0, got.(RatWeight).Rat.Cmp(ratOf(3, 1)))
}

type ratRescaler struct{ factor int64 }

func (r ratRescaler) Rescale(w Weight) Weight {
	rw := w.(RatWeight)
	return RatWeight{Rat: ratOf(0, 1).Mul(rw.Rat, ratOf(r.factor, 1)), Eps: rw.Eps * r.factor}
}
