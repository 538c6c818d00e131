package cp

// Variable wraps a Domain and dispatches events to subscribed
// propagators. It is a thin facade: every mutation is
// forwarded to its Domain, and on a genuine change it calls
// notifyListeners for the events that actually fired, in the fixed order
// LowerBound/UpperBound (if the respective bound moved), then Assigned
// (if the domain is now a singleton), then Modified (unconditionally on
// any change).
type Variable struct {
	id     int
	Name   string
	domain *Domain
	search *Search

	// listeners[e] maps propagator id -> propagator, for propagators
	// currently subscribed to event e. At most one entry per propagator
	// id per event kind.
	listeners [4]map[int]Propagator
}

func newVariable(id int, name string, d *Domain, s *Search) *Variable {
	v := &Variable{id: id, Name: name, domain: d, search: s}
	for i := range v.listeners {
		v.listeners[i] = make(map[int]Propagator)
	}
	return v
}

// ID returns the variable's small integer id within its Search.
func (v *Variable) ID() int { return v.id }

// Domain exposes the underlying reversible domain (read-only use expected
// outside the engine and propagators).
func (v *Variable) Domain() *Domain { return v.domain }

// Subscribe registers p to be notified on event e. Called from a
// Propagator's Listen.
func (v *Variable) Subscribe(e Event, p Propagator) {
	v.listeners[e][p.ID()] = p
}

// Unsubscribe removes p from event e's listener set. Called from a
// Propagator's Unlisten.
func (v *Variable) Unsubscribe(e Event, p Propagator) {
	delete(v.listeners[e], p.ID())
}

// IsAssigned reports whether the domain has collapsed to one value.
func (v *Variable) IsAssigned() bool { return v.domain.IsSingleton() }

// Value returns the sole remaining value. Panics (InvalidUsageError) if
// the variable is not assigned.
func (v *Variable) Value() int {
	if !v.domain.IsSingleton() {
		panicInvalidUsage("Value() called on unassigned variable " + v.Name)
	}
	return v.domain.GetLB()
}

// Size, LB, UB, Possible, Iter forward directly to the Domain.
func (v *Variable) Size() int           { return v.domain.Size() }
func (v *Variable) LB() int             { return v.domain.GetLB() }
func (v *Variable) UB() int             { return v.domain.GetUB() }
func (v *Variable) Possible(x int) bool { return v.domain.Possible(x) }
func (v *Variable) Iter(f func(int))    { v.domain.Iter(f) }

// fireChange inspects a before/after snapshot of bounds and singleton-ness
// and notifies listeners in the mandated order.
func (v *Variable) fireChange(before domainOp, prevLB, prevUB int, wasSingleton bool) {
	if before == opSame {
		return
	}
	if before == opFailed {
		v.search.failed = true
		return
	}
	if v.domain.GetLB() != prevLB {
		v.notifyListeners(EventLowerBound)
	}
	if v.domain.GetUB() != prevUB {
		v.notifyListeners(EventUpperBound)
	}
	if !wasSingleton && v.domain.IsSingleton() {
		v.notifyListeners(EventAssigned)
	}
	v.notifyListeners(EventModified)
}

// mutate is the common wrapper every Variable mutator uses: snapshot the
// relevant before-state, apply the Domain operation, then fire events.
func (v *Variable) mutate(op func() domainOp) {
	prevLB, prevUB := -1, -1
	wasSingleton := false
	if !v.domain.IsEmpty() {
		prevLB, prevUB = v.domain.GetLB(), v.domain.GetUB()
		wasSingleton = v.domain.IsSingleton()
	}
	result := op()
	v.fireChange(result, prevLB, prevUB, wasSingleton)
}

// Assign collapses the domain to {x}.
func (v *Variable) Assign(x int) { v.mutate(func() domainOp { return v.domain.Assign(x) }) }

// Remove excludes x from the domain.
func (v *Variable) Remove(x int) { v.mutate(func() domainOp { return v.domain.Remove(x) }) }

// SetLB raises the lower bound to x.
func (v *Variable) SetLB(x int) { v.mutate(func() domainOp { return v.domain.SetLB(x) }) }

// SetUB lowers the upper bound to x.
func (v *Variable) SetUB(x int) { v.mutate(func() domainOp { return v.domain.SetUB(x) }) }

// Fail empties the domain directly, marking the shared search state
// failed. Used by propagators (BinPacking's no-sum test, AllDifferent's
// infeasible-matching check) that detect inconsistency without it
// surfacing as a single out-of-domain value.
func (v *Variable) Fail() { v.mutate(func() domainOp { return v.domain.fail() }) }

// TryValue returns the sole remaining value and true if the variable is
// assigned, or (0, false) otherwise — the non-panicking counterpart to
// Value(), used by propagators that branch on assignment rather than
// assuming it.
func (v *Variable) TryValue() (int, bool) {
	if !v.domain.IsSingleton() {
		return 0, false
	}
	return v.domain.GetLB(), true
}

// notifyListeners drains event e's listener map and dispatches to each
// subscriber. Draining, rather than iterating the live map, guarantees
// a propagator gets at most one wakeup per pending fixpoint pass:
// Listen re-adds it only after its own Propagate call returns.
func (v *Variable) notifyListeners(e Event) {
	m := v.listeners[e]
	if len(m) == 0 {
		return
	}
	v.listeners[e] = make(map[int]Propagator)
	for _, p := range m {
		v.search.wake(p)
	}
}
