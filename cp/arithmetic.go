package cp

// SimpleArithmeticConstraint enforces x + y = c or x - y = c. The
// propagator marches both ordered domains in lockstep rather than doing
// a naive O(|dom(x)|*|dom(y)|) double loop, and one pass makes both
// variables arc-consistent.
type SimpleArithmeticConstraint struct {
	x, y *Variable
	c    int
	plus bool
}

// NewArithmeticConstraint builds x + y = c (plus=true) or x - y = c
// (plus=false).
func NewArithmeticConstraint(x, y *Variable, c int, plus bool) *SimpleArithmeticConstraint {
	return &SimpleArithmeticConstraint{x: x, y: y, c: c, plus: plus}
}

func (c *SimpleArithmeticConstraint) Satisfied() bool {
	if !c.x.IsAssigned() || !c.y.IsAssigned() {
		return false
	}
	if c.plus {
		return c.x.Value()+c.y.Value() == c.c
	}
	return c.x.Value()-c.y.Value() == c.c
}

func (c *SimpleArithmeticConstraint) Failed() bool {
	if c.plus {
		return c.x.UB()+c.y.UB() < c.c || c.x.LB()+c.y.LB() > c.c
	}
	return c.x.UB()-c.y.LB() < c.c || c.x.LB()-c.y.UB() > c.c
}

func (c *SimpleArithmeticConstraint) install(s *Search) {
	p := &arithmeticPropagator{x: c.x, y: c.y, c: c.c, plus: c.plus}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type arithmeticPropagator struct {
	propagatorBase
	x, y *Variable
	c    int
	plus bool
}

func (p *arithmeticPropagator) Listen(s *Search) {
	p.x.Subscribe(EventModified, p)
	p.y.Subscribe(EventModified, p)
}

func (p *arithmeticPropagator) Unlisten(s *Search) {
	p.x.Unsubscribe(EventModified, p)
	p.y.Unsubscribe(EventModified, p)
}

// Propagate marches both domains, sorted ascending, simultaneously
// (descending for y when plus=true, so the two sums converge on c from
// opposite ends) discarding values that cannot be completed by anything
// remaining on the other side.
func (p *arithmeticPropagator) Propagate(s *Search) PropagateStatus {
	xs := p.x.Domain().Values()
	ys := p.y.Domain().Values()
	if len(xs) == 0 {
		p.x.Fail()
		return StatusNormal
	}
	if len(ys) == 0 {
		p.y.Fail()
		return StatusNormal
	}

	keepX := make(map[int]bool, len(xs))
	keepY := make(map[int]bool, len(ys))

	if p.plus {
		i, j := 0, len(ys)-1
		for i < len(xs) && j >= 0 {
			sum := xs[i] + ys[j]
			switch {
			case sum < p.c:
				i++
			case sum > p.c:
				j--
			default:
				keepX[xs[i]] = true
				keepY[ys[j]] = true
				i++
				j--
			}
		}
	} else {
		i, j := 0, 0
		for i < len(xs) && j < len(ys) {
			diff := xs[i] - ys[j]
			switch {
			case diff < p.c:
				i++
			case diff > p.c:
				j++
			default:
				keepX[xs[i]] = true
				keepY[ys[j]] = true
				i++
				j++
			}
		}
	}

	for _, v := range xs {
		if !keepX[v] {
			p.x.Remove(v)
		}
	}
	for _, v := range ys {
		if !keepY[v] {
			p.y.Remove(v)
		}
	}
	return StatusNormal
}

// AbsConstraint enforces x = |y|.
type AbsConstraint struct {
	x, y *Variable
}

func NewAbsConstraint(x, y *Variable) *AbsConstraint { return &AbsConstraint{x: x, y: y} }

func (c *AbsConstraint) Satisfied() bool {
	return c.x.IsAssigned() && c.y.IsAssigned() && c.x.Value() == abs(c.y.Value())
}

func (c *AbsConstraint) Failed() bool {
	lo, hi := absBounds(c.y.LB(), c.y.UB())
	return hi < c.x.LB() || lo > c.x.UB()
}

func (c *AbsConstraint) install(s *Search) {
	p := &absPropagator{x: c.x, y: c.y}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type absPropagator struct {
	propagatorBase
	x, y *Variable
}

func (p *absPropagator) Listen(s *Search) {
	p.x.Subscribe(EventModified, p)
	p.y.Subscribe(EventModified, p)
}
func (p *absPropagator) Unlisten(s *Search) {
	p.x.Unsubscribe(EventModified, p)
	p.y.Unsubscribe(EventModified, p)
}

// Propagate tightens x's bounds from |y|'s range, then removes any y
// value whose absolute value is no longer possible for x, and finally
// any x value v for which neither v nor -v is possible for y.
func (p *absPropagator) Propagate(s *Search) PropagateStatus {
	lo, hi := absBounds(p.y.LB(), p.y.UB())
	p.x.SetLB(max(lo, 0))
	p.x.SetUB(hi)

	for _, v := range p.y.Domain().Values() {
		if !p.x.Possible(abs(v)) {
			p.y.Remove(v)
		}
	}
	for _, v := range p.x.Domain().Values() {
		if !p.y.Possible(v) && !p.y.Possible(-v) {
			p.x.Remove(v)
		}
	}
	return StatusNormal
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func absBounds(lb, ub int) (lo, hi int) {
	hi = max(abs(lb), abs(ub))
	if lb <= 0 && ub >= 0 {
		lo = 0
	} else {
		lo = min(abs(lb), abs(ub))
	}
	return lo, hi
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
