package cp

// PropagateStatus is the return value of Propagator.Propagate: whether the
// propagator wants to run again later (Normal) or is permanently done for
// the remainder of the current subtree (Terminated).
type PropagateStatus int

const (
	StatusNormal PropagateStatus = iota
	StatusTerminated
)

// Propagator is the protocol every concrete propagator implements. The
// engine dispatches uniformly through this interface by small integer id
// rather than through a sum type, keeping a dense id namespace for the
// global FIFO and per-frame bookkeeping.
type Propagator interface {
	// ID returns the propagator's unique small integer id, assigned at
	// registration time.
	ID() int

	// Listen subscribes this propagator to the variables/events it
	// depends on. Called once after construction and again after every
	// successful (Normal) Propagate, to re-arm.
	Listen(s *Search)

	// Unlisten removes every subscription made by Listen. Called on
	// termination or when the engine backtracks past this propagator's
	// frame.
	Unlisten(s *Search)

	// Propagate performs deductions, mutating Variables as needed.
	Propagate(s *Search) PropagateStatus

	// Idempotent reports whether two successive calls to Propagate with
	// no intervening external change are guaranteed to be a no-op. The
	// engine uses this to skip a self-induced reschedule.
	Idempotent() bool

	base() *propagatorBase
}

// propagatorBase holds the bookkeeping every Propagator carries: its id,
// whether something has enqueued it since it last ran, and whether it
// currently sits in the global FIFO.
type propagatorBase struct {
	id           int
	hasNewEvents bool
	queued       bool
	idempotent   bool
}

func (b *propagatorBase) ID() int             { return b.id }
func (b *propagatorBase) Idempotent() bool    { return b.idempotent }
func (b *propagatorBase) base() *propagatorBase { return b }

// newPropagatorBase is called by concrete propagator constructors before
// Search.registerPropagator, which then overwrites id with the
// propagator's index in the registry.
func newPropagatorBase(id int, idempotent bool) propagatorBase {
	return propagatorBase{id: id, idempotent: idempotent}
}
