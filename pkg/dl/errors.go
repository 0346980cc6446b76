package dl

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MalformedAtom is returned by the edge builder when an atom's
// children do not canonicalize to one of var-var, var-const,
// const-var, or diff-const. A caller observing this has a bug in its
// canonicalization pass upstream of the core.
type MalformedAtom struct {
	Atom Atom
	Why  string
}

func (e MalformedAtom) Error() string {
	return fmt.Sprintf("malformed atom %d: %s", e.Atom.ID(), e.Why)
}

// Infeasible is returned from assert_lit when activating an atom
// closes a negative cycle in the constraint graph. Cycle holds the
// edges on the cycle, in the order the negative-cycle
// check reconstructed them by walking conflict edges back from the
// offending vertex; each edge's Atom and EdgePolarity together give
// the literal that must be negated in a blocking clause.
type Infeasible struct {
	Cycle []*Edge
}

func (e Infeasible) Error() string {
	ids := make([]string, len(e.Cycle))
	for i, edge := range e.Cycle {
		ids[i] = fmt.Sprintf("%d", edge.Atom().ID())
	}
	return fmt.Sprintf("negative cycle: %s", strings.Join(ids, ", "))
}

// Interrupted is returned when a caller-visible interrupt flag was
// observed mid-operation. Any mutation already journaled by the
// aborted operation has been rolled back before this error is
// returned.
var Interrupted = errors.New("dl: interrupted before a result could be produced")

// invariantViolation wraps a broken internal invariant. The core does
// not attempt to recover from these; they indicate a bug in the core
// itself rather than caller misuse.
type invariantViolation struct {
	cause error
}

func (e invariantViolation) Error() string {
	return fmt.Sprintf("dl: broken invariant: %s", e.cause)
}

func (e invariantViolation) Unwrap() error { return e.cause }

func newInvariantViolation(format string, args ...interface{}) error {
	return invariantViolation{cause: errors.Errorf(format, args...)}
}
