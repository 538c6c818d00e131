package cp

// EqConstraint and NeqConstraint are the equality/disequality
// propagators: equality is bound-consistent (intersect the two ranges),
// disequality is a one-shot singleton exclusion that terminates once it
// has fired.

type EqConstraint struct {
	x, y *Variable
}

func NewEqConstraint(x, y *Variable) *EqConstraint { return &EqConstraint{x: x, y: y} }

func (c *EqConstraint) Satisfied() bool {
	return c.x.IsAssigned() && c.y.IsAssigned() && c.x.Value() == c.y.Value()
}

func (c *EqConstraint) Failed() bool {
	return c.x.UB() < c.y.LB() || c.y.UB() < c.x.LB()
}

func (c *EqConstraint) install(s *Search) {
	p := &eqPropagator{x: c.x, y: c.y}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type eqPropagator struct {
	propagatorBase
	x, y *Variable
}

func (p *eqPropagator) Listen(s *Search) {
	p.x.Subscribe(EventLowerBound, p)
	p.x.Subscribe(EventUpperBound, p)
	p.y.Subscribe(EventLowerBound, p)
	p.y.Subscribe(EventUpperBound, p)
}

func (p *eqPropagator) Unlisten(s *Search) {
	p.x.Unsubscribe(EventLowerBound, p)
	p.x.Unsubscribe(EventUpperBound, p)
	p.y.Unsubscribe(EventLowerBound, p)
	p.y.Unsubscribe(EventUpperBound, p)
}

func (p *eqPropagator) Propagate(s *Search) PropagateStatus {
	l := max(p.x.LB(), p.y.LB())
	u := min(p.x.UB(), p.y.UB())
	p.x.SetLB(l)
	p.x.SetUB(u)
	p.y.SetLB(l)
	p.y.SetUB(u)
	return StatusNormal
}

type NeqConstraint struct {
	x, y *Variable
}

func NewNeqConstraint(x, y *Variable) *NeqConstraint { return &NeqConstraint{x: x, y: y} }

func (c *NeqConstraint) Satisfied() bool {
	return c.x.IsAssigned() && c.y.IsAssigned() && c.x.Value() != c.y.Value()
}

func (c *NeqConstraint) Failed() bool {
	return c.x.IsAssigned() && c.y.IsAssigned() && c.x.Value() == c.y.Value()
}

func (c *NeqConstraint) install(s *Search) {
	p := &neqPropagator{x: c.x, y: c.y}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type neqPropagator struct {
	propagatorBase
	x, y *Variable
}

func (p *neqPropagator) Listen(s *Search) {
	p.x.Subscribe(EventAssigned, p)
	p.y.Subscribe(EventAssigned, p)
}

func (p *neqPropagator) Unlisten(s *Search) {
	p.x.Unsubscribe(EventAssigned, p)
	p.y.Unsubscribe(EventAssigned, p)
}

// Propagate fires once a side is assigned, excludes that value from the
// other side, and terminates — a fresh NeqPropagator would be redundant
// since once either side is singleton the constraint can never prune
// again. Until either side
// assigns, Propagate is a no-op and the propagator stays Normal so it
// keeps waiting on EventAssigned.
func (p *neqPropagator) Propagate(s *Search) PropagateStatus {
	if v, ok := p.x.TryValue(); ok {
		p.y.Remove(v)
		return StatusTerminated
	}
	if v, ok := p.y.TryValue(); ok {
		p.x.Remove(v)
		return StatusTerminated
	}
	return StatusNormal
}
