package dl

// This file declares the boundary interfaces to the core's external
// collaborators: the term store (the expression-graph / term-interner
// that canonicalizes atoms before they ever reach the core) and the
// SMT configuration surface. The core never constructs these values;
// it only consumes them.

// VarRef identifies a single difference-logic variable as allocated
// by the term store. VarID is a dense, non-negative index: the term
// store is responsible for handing out a contiguous range starting at
// zero, since the Graph Store uses it directly to index its
// variable-to-vertex table.
type VarRef interface {
	VarID() int
}

// Term is a single child of an Atom as exposed by the term store. It
// is either a variable, a numeric constant, or a compound "minuend -
// subtrahend" difference term, as in the "x - y <= c" shape of a
// difference constraint.
type Term interface {
	IsVar() bool
	IsConst() bool
	IsMinus() bool

	// Var is valid only when IsVar reports true.
	Var() VarRef
	// Value is valid only when IsConst reports true.
	Value() Weight
	// Minuend and Subtrahend are valid only when IsMinus reports
	// true, and must themselves satisfy IsVar.
	Minuend() Term
	Subtrahend() Term
}

// Atom is a single canonicalized difference constraint as exposed by
// the term store: an inequality between two Terms, already normalized
// into one of var-var, var-const, const-var, or diff-const. The core
// never inspects anything about an Atom beyond its two children and
// its identity.
type Atom interface {
	ID() int64
	Lhs() Term
	Rhs() Term
}

// TermStore is consulted for the rescale factor applied to rational-DL
// edge weights. Most Integer-DL deployments never call Rescale.
type TermStore interface {
	// Rescale returns w scaled by whatever factor the term store
	// uses to clear denominators across the current problem. It is
	// only consulted when Config.RescaleEnabled is set.
	Rescale(w Weight) Weight
}

// Logic selects the numeric kernel and the negation rule the edge
// builder applies.
type Logic int

const (
	IntegerDL Logic = iota
	RationalDL
)

func (l Logic) String() string {
	if l == RationalDL {
		return "Rational-DL"
	}
	return "Integer-DL"
}

// Config mirrors the configuration flags the external SMT
// configuration surface hands to the core.
type Config struct {
	TheoryPropagation bool
	LazyGeneration    bool
	Logic             Logic
	RescaleEnabled    bool
}

// Option mutates a Config, following the functional-options pattern
// used throughout this codebase's SAT-facing packages.
type Option func(*Config)

func WithTheoryPropagation(enabled bool) Option {
	return func(c *Config) { c.TheoryPropagation = enabled }
}

func WithLazyGeneration(enabled bool) Option {
	return func(c *Config) { c.LazyGeneration = enabled }
}

func WithLogic(l Logic) Option {
	return func(c *Config) { c.Logic = l }
}

func WithRescale(enabled bool) Option {
	return func(c *Config) { c.RescaleEnabled = enabled }
}

// defaultConfig turns on theory propagation and eager SPT maintenance,
// assumes Integer-DL, and leaves rescaling off.
func defaultConfig() Config {
	return Config{
		TheoryPropagation: true,
		LazyGeneration:    false,
		Logic:             IntegerDL,
		RescaleEnabled:    false,
	}
}

func newConfig(opts ...Option) Config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
