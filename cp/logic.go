package cp

// AndConstraint, OrConstraint, and NegateConstraint are the Boolean
// propagators. They operate on {0,1} variables; the caller is
// responsible for giving every participant that domain.

type AndConstraint struct {
	result *Variable
	vars   []*Variable
}

func NewAndConstraint(result *Variable, vars []*Variable) *AndConstraint {
	return &AndConstraint{result: result, vars: vars}
}

func (c *AndConstraint) Satisfied() bool {
	if !c.result.IsAssigned() {
		return false
	}
	result := c.result.Value()
	for _, v := range c.vars {
		if !v.IsAssigned() {
			return false
		}
		if v.Value() == 0 {
			return result == 0
		}
	}
	return result != 0
}

func (c *AndConstraint) Failed() bool {
	if c.result.IsAssigned() && c.result.Value() == 1 {
		for _, v := range c.vars {
			if v.IsAssigned() && v.Value() == 0 {
				return true
			}
		}
	}
	return false
}

func (c *AndConstraint) install(s *Search) {
	p := &andPropagator{result: c.result, vars: c.vars}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type andPropagator struct {
	propagatorBase
	result *Variable
	vars   []*Variable
}

func (p *andPropagator) Listen(s *Search) {
	p.result.Subscribe(EventModified, p)
	for _, v := range p.vars {
		v.Subscribe(EventModified, p)
	}
}

func (p *andPropagator) Unlisten(s *Search) {
	p.result.Unsubscribe(EventModified, p)
	for _, v := range p.vars {
		v.Unsubscribe(EventModified, p)
	}
}

func (p *andPropagator) Propagate(s *Search) PropagateStatus {
	if p.result.IsAssigned() {
		if p.result.Value() == 1 {
			for _, v := range p.vars {
				v.Assign(1)
			}
			return StatusNormal
		}
		ones, unknown := 0, 0
		for _, v := range p.vars {
			if v.IsAssigned() {
				if v.Value() == 1 {
					ones++
				}
			} else {
				unknown++
			}
		}
		if ones == len(p.vars) {
			p.result.Fail()
		} else if unknown == 1 && ones+1 == len(p.vars) {
			for _, v := range p.vars {
				if !v.IsAssigned() {
					v.Assign(0)
				}
			}
		}
		return StatusNormal
	}
	can0, can1 := false, true
	for _, v := range p.vars {
		if v.Possible(0) {
			can0 = true
		}
		if !v.Possible(1) {
			can1 = false
		}
	}
	if !can0 {
		p.result.Remove(0)
	}
	if !can1 {
		p.result.Remove(1)
	}
	return StatusNormal
}

type OrConstraint struct {
	result *Variable
	vars   []*Variable
}

func NewOrConstraint(result *Variable, vars []*Variable) *OrConstraint {
	return &OrConstraint{result: result, vars: vars}
}

func (c *OrConstraint) Satisfied() bool {
	if !c.result.IsAssigned() {
		return false
	}
	result := c.result.Value()
	for _, v := range c.vars {
		if !v.IsAssigned() {
			return false
		}
		if v.Value() == 1 {
			return result != 0
		}
	}
	return result == 0
}

func (c *OrConstraint) Failed() bool {
	if c.result.IsAssigned() && c.result.Value() == 0 {
		for _, v := range c.vars {
			if v.IsAssigned() && v.Value() == 1 {
				return true
			}
		}
	}
	return false
}

func (c *OrConstraint) install(s *Search) {
	p := &orPropagator{result: c.result, vars: c.vars}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type orPropagator struct {
	propagatorBase
	result *Variable
	vars   []*Variable
}

func (p *orPropagator) Listen(s *Search) {
	p.result.Subscribe(EventModified, p)
	for _, v := range p.vars {
		v.Subscribe(EventModified, p)
	}
}

func (p *orPropagator) Unlisten(s *Search) {
	p.result.Unsubscribe(EventModified, p)
	for _, v := range p.vars {
		v.Unsubscribe(EventModified, p)
	}
}

func (p *orPropagator) Propagate(s *Search) PropagateStatus {
	if p.result.IsAssigned() {
		if p.result.Value() == 1 {
			ones := 0
			for _, v := range p.vars {
				if v.Possible(1) {
					ones++
				}
			}
			if ones == 0 {
				p.result.Fail()
				return StatusNormal
			}
			if ones == 1 {
				for _, v := range p.vars {
					if v.Possible(1) {
						v.Assign(1)
					}
				}
			}
			return StatusNormal
		}
		for _, v := range p.vars {
			v.Assign(0)
		}
		return StatusNormal
	}
	can1, can0 := false, true
	for _, v := range p.vars {
		if v.Possible(1) {
			can1 = true
		}
		if !v.Possible(0) {
			can0 = false
		}
	}
	if !can0 {
		p.result.Remove(0)
	}
	if !can1 {
		p.result.Remove(1)
	}
	return StatusNormal
}

// NegateConstraint enforces x = !y over {0,1} variables.
type NegateConstraint struct {
	x, y *Variable
}

func NewNegateConstraint(x, y *Variable) *NegateConstraint { return &NegateConstraint{x: x, y: y} }

func (c *NegateConstraint) Satisfied() bool {
	return c.x.IsAssigned() && c.y.IsAssigned() && c.x.Value() != c.y.Value()
}

func (c *NegateConstraint) Failed() bool {
	return c.x.IsAssigned() && c.y.IsAssigned() && c.x.Value() == c.y.Value()
}

func (c *NegateConstraint) install(s *Search) {
	p := &negatePropagator{x: c.x, y: c.y}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type negatePropagator struct {
	propagatorBase
	x, y *Variable
}

func (p *negatePropagator) Listen(s *Search) {
	p.x.Subscribe(EventModified, p)
	p.y.Subscribe(EventModified, p)
}

func (p *negatePropagator) Unlisten(s *Search) {
	p.x.Unsubscribe(EventModified, p)
	p.y.Unsubscribe(EventModified, p)
}

func (p *negatePropagator) Propagate(s *Search) PropagateStatus {
	for val := 0; val < 2; val++ {
		if !p.x.Possible(val) {
			p.y.Remove(val ^ 1)
		}
	}
	for val := 0; val < 2; val++ {
		if !p.y.Possible(val) {
			p.x.Remove(val ^ 1)
		}
	}
	return StatusNormal
}
