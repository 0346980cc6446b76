package dl

import "github.com/sirupsen/logrus"

// SearchPosition is a read-only snapshot of the core's state at a
// point a Tracer may want to record: the atom the traced assert_lit
// activated (empty for a conflict), and the conflict (if any) that
// assert_lit produced.
type SearchPosition interface {
	Active() []Atom
	Conflict() []Atom
}

// Tracer observes the core's progress without influencing it. The
// core calls Trace when an assertion closes a negative cycle and after
// an assertion whose deduction scan ran; Push and Pop do not call it.
type Tracer interface {
	Trace(p SearchPosition)
}

// DefaultTracer discards everything. It is the zero-cost default so
// that Core imposes no overhead when nobody asked for tracing.
type DefaultTracer struct{}

func (DefaultTracer) Trace(SearchPosition) {}

// LoggingTracer renders each traced position as a structured log
// entry via logrus, mirroring this codebase's pervasive use of
// logrus for resolver diagnostics.
type LoggingTracer struct {
	Log *logrus.Entry
}

func (t LoggingTracer) Trace(p SearchPosition) {
	if t.Log == nil {
		return
	}
	active := make([]int64, 0, len(p.Active()))
	for _, a := range p.Active() {
		active = append(active, a.ID())
	}
	conflict := p.Conflict()
	if len(conflict) == 0 {
		t.Log.WithField("active", active).Debug("dl: search position")
		return
	}
	conflictIDs := make([]int64, 0, len(conflict))
	for _, a := range conflict {
		conflictIDs = append(conflictIDs, a.ID())
	}
	t.Log.WithFields(logrus.Fields{
		"active":   active,
		"conflict": conflictIDs,
	}).Debug("dl: conflict")
}
