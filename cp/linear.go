package cp

// floorDiv and ceilDiv are integer division helpers (q assumed > 0):
// Go's / truncates toward zero, so negative numerators need the
// explicit correction both helpers apply.
func floorDiv(p, q int) int {
	if p > 0 {
		return p / q
	}
	return -((-p + q - 1) / q)
}

func ceilDiv(p, q int) int {
	if p > 0 {
		return (p + q - 1) / q
	}
	return -((-p) / q)
}

// LinearInequalityConstraint enforces Σ a[i]*x[i] ≤ b with bound
// consistency.
type LinearInequalityConstraint struct {
	x []*Variable
	a []int
	b int
}

func NewLinearInequalityConstraint(x []*Variable, a []int, b int) *LinearInequalityConstraint {
	if len(x) != len(a) {
		panicInvalidUsage("LinearInequalityConstraint: len(x) != len(a)")
	}
	return &LinearInequalityConstraint{x: x, a: a, b: b}
}

func (c *LinearInequalityConstraint) Satisfied() bool {
	sum := 0
	for i, v := range c.x {
		if !v.IsAssigned() {
			return false
		}
		sum += v.Value() * c.a[i]
	}
	return sum <= c.b
}

func (c *LinearInequalityConstraint) Failed() bool {
	lower := 0
	for i, v := range c.x {
		if c.a[i] > 0 {
			lower += v.LB() * c.a[i]
		} else {
			lower += v.UB() * c.a[i]
		}
	}
	return lower > c.b
}

func (c *LinearInequalityConstraint) install(s *Search) {
	p := &linearInequalityPropagator{x: c.x, a: c.a, b: c.b}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type linearInequalityPropagator struct {
	propagatorBase
	x []*Variable
	a []int
	b int
}

func (p *linearInequalityPropagator) Listen(s *Search) {
	for i, v := range p.x {
		if p.a[i] > 0 {
			v.Subscribe(EventLowerBound, p)
		} else {
			v.Subscribe(EventUpperBound, p)
		}
	}
}

func (p *linearInequalityPropagator) Unlisten(s *Search) {
	for i, v := range p.x {
		if p.a[i] > 0 {
			v.Unsubscribe(EventLowerBound, p)
		} else {
			v.Unsubscribe(EventUpperBound, p)
		}
	}
}

func (p *linearInequalityPropagator) Propagate(s *Search) PropagateStatus {
	lowerSum := 0
	for i, v := range p.x {
		if p.a[i] > 0 {
			lowerSum += v.LB() * p.a[i]
		} else {
			lowerSum += v.UB() * p.a[i]
		}
	}
	for i, v := range p.x {
		if p.a[i] > 0 {
			up := p.b - lowerSum + v.LB()*p.a[i]
			v.SetUB(floorDiv(up, p.a[i]))
		} else {
			down := -p.b + lowerSum - v.UB()*p.a[i]
			v.SetLB(ceilDiv(down, -p.a[i]))
		}
	}
	return StatusNormal
}

// LinearEqualityConstraint enforces Σ a[i]*x[i] = b by intersecting the
// ≤ b and ≥ b bound-consistency passes — the natural generalization of
// LinearInequalityConstraint's shape to equality: install registers two
// inequality propagators, one for a·x ≤ b and one for -a·x ≤ -b.
type LinearEqualityConstraint struct {
	x []*Variable
	a []int
	b int
}

func NewLinearEqualityConstraint(x []*Variable, a []int, b int) *LinearEqualityConstraint {
	if len(x) != len(a) {
		panicInvalidUsage("LinearEqualityConstraint: len(x) != len(a)")
	}
	return &LinearEqualityConstraint{x: x, a: a, b: b}
}

func (c *LinearEqualityConstraint) Satisfied() bool {
	sum := 0
	for i, v := range c.x {
		if !v.IsAssigned() {
			return false
		}
		sum += v.Value() * c.a[i]
	}
	return sum == c.b
}

func (c *LinearEqualityConstraint) Failed() bool {
	lower, upper := 0, 0
	for i, v := range c.x {
		if c.a[i] > 0 {
			lower += v.LB() * c.a[i]
			upper += v.UB() * c.a[i]
		} else {
			lower += v.UB() * c.a[i]
			upper += v.LB() * c.a[i]
		}
	}
	return lower > c.b || upper < c.b
}

func (c *LinearEqualityConstraint) install(s *Search) {
	neg := make([]int, len(c.a))
	for i, ai := range c.a {
		neg[i] = -ai
	}
	le := &linearInequalityPropagator{x: c.x, a: c.a, b: c.b}
	le.propagatorBase = newPropagatorBase(0, true)
	ge := &linearInequalityPropagator{x: c.x, a: neg, b: -c.b}
	ge.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(le)
	s.registerPropagator(ge)
}

// LinearNotEqualConstraint enforces Σ a[i]*x[i] ≠ b. Pruning waits
// until at most one variable is unassigned: with a residual r = b minus
// the fixed terms, the last variable cannot take r/a[i] (when that is
// integral), and with everything assigned an exact hit is a failure.
type LinearNotEqualConstraint struct {
	x []*Variable
	a []int
	b int
}

func NewLinearNotEqualConstraint(x []*Variable, a []int, b int) *LinearNotEqualConstraint {
	if len(x) != len(a) {
		panicInvalidUsage("LinearNotEqualConstraint: len(x) != len(a)")
	}
	return &LinearNotEqualConstraint{x: x, a: a, b: b}
}

func (c *LinearNotEqualConstraint) Satisfied() bool {
	sum := 0
	for i, v := range c.x {
		if !v.IsAssigned() {
			return false
		}
		sum += v.Value() * c.a[i]
	}
	return sum != c.b
}

func (c *LinearNotEqualConstraint) Failed() bool {
	sum := 0
	for i, v := range c.x {
		if !v.IsAssigned() {
			return false
		}
		sum += v.Value() * c.a[i]
	}
	return sum == c.b
}

func (c *LinearNotEqualConstraint) install(s *Search) {
	p := &linearNotEqualPropagator{x: c.x, a: c.a, b: c.b}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type linearNotEqualPropagator struct {
	propagatorBase
	x []*Variable
	a []int
	b int
}

func (p *linearNotEqualPropagator) Listen(s *Search) {
	for _, v := range p.x {
		v.Subscribe(EventAssigned, p)
	}
}

func (p *linearNotEqualPropagator) Unlisten(s *Search) {
	for _, v := range p.x {
		v.Unsubscribe(EventAssigned, p)
	}
}

func (p *linearNotEqualPropagator) Propagate(s *Search) PropagateStatus {
	rest := p.b
	open := -1
	for i, v := range p.x {
		val, ok := v.TryValue()
		if !ok {
			if open >= 0 {
				return StatusNormal // two or more unassigned, nothing to do
			}
			open = i
			continue
		}
		rest -= val * p.a[i]
	}
	if open < 0 {
		if rest == 0 {
			p.x[0].Fail()
		}
		return StatusTerminated
	}
	if p.a[open] != 0 && rest%p.a[open] == 0 {
		p.x[open].Remove(rest / p.a[open])
	}
	return StatusTerminated
}
