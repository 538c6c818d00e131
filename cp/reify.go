package cp

// ImpliedConstraint enforces (b = 1) => c holds (half-reification).
// Once b is assigned 1 the child constraint's propagators are
// registered directly into the search; their cleanup on backtrack falls
// out of the existing restoreFrame bookkeeping, so nothing here needs
// to track them separately.
type ImpliedConstraint struct {
	b *Variable
	c Constraint
}

func NewImpliedConstraint(b *Variable, c Constraint) *ImpliedConstraint {
	return &ImpliedConstraint{b: b, c: c}
}

func (ic *ImpliedConstraint) Satisfied() bool {
	if !ic.b.IsAssigned() {
		return false
	}
	if ic.b.Value() == 0 {
		return true
	}
	return ic.c.Satisfied()
}

func (ic *ImpliedConstraint) Failed() bool {
	if !ic.b.IsAssigned() || ic.b.Value() == 0 {
		return false
	}
	return ic.c.Failed()
}

func (ic *ImpliedConstraint) install(s *Search) {
	p := &impliedPropagator{b: ic.b, c: ic.c}
	p.propagatorBase = newPropagatorBase(0, false)
	s.registerPropagator(p)
}

type impliedPropagator struct {
	propagatorBase
	b *Variable
	c Constraint
}

func (p *impliedPropagator) Listen(s *Search)   { p.b.Subscribe(EventModified, p) }
func (p *impliedPropagator) Unlisten(s *Search) { p.b.Unsubscribe(EventModified, p) }

func (p *impliedPropagator) Propagate(s *Search) PropagateStatus {
	if p.b.IsAssigned() {
		if p.b.Value() == 1 {
			p.c.install(s)
		}
		return StatusTerminated
	}
	if p.c.Failed() {
		p.b.Assign(0)
	}
	return StatusNormal
}

// ReifiedConstraint enforces (b = 1) <=> c. notC must be the logical
// negation of c, supplied by the caller; negation construction stays in
// the modeling layer.
type ReifiedConstraint struct {
	b    *Variable
	c    Constraint
	notC Constraint
}

func NewReifiedConstraint(b *Variable, c, notC Constraint) *ReifiedConstraint {
	return &ReifiedConstraint{b: b, c: c, notC: notC}
}

func (rc *ReifiedConstraint) Satisfied() bool {
	if !rc.b.IsAssigned() {
		return false
	}
	if rc.b.Value() == 0 {
		return rc.notC.Satisfied()
	}
	return rc.c.Satisfied()
}

func (rc *ReifiedConstraint) Failed() bool {
	if !rc.b.IsAssigned() {
		return false
	}
	if rc.b.Value() == 0 {
		return rc.notC.Failed()
	}
	return rc.c.Failed()
}

func (rc *ReifiedConstraint) install(s *Search) {
	p := &reifiedPropagator{b: rc.b, c: rc.c, notC: rc.notC}
	p.propagatorBase = newPropagatorBase(0, false)
	s.registerPropagator(p)
}

type reifiedPropagator struct {
	propagatorBase
	b    *Variable
	c    Constraint
	notC Constraint
}

func (p *reifiedPropagator) Listen(s *Search)   { p.b.Subscribe(EventModified, p) }
func (p *reifiedPropagator) Unlisten(s *Search) { p.b.Unsubscribe(EventModified, p) }

func (p *reifiedPropagator) Propagate(s *Search) PropagateStatus {
	if p.b.IsAssigned() {
		if p.b.Value() == 1 {
			p.c.install(s)
		} else {
			p.notC.install(s)
		}
		return StatusTerminated
	}
	if p.c.Failed() {
		p.b.Assign(0)
	}
	if p.notC.Failed() {
		p.b.Assign(1)
	}
	return StatusNormal
}
