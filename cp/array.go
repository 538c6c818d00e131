package cp

// ArrayIntElementConstraint enforces value = array[index] over a fixed
// []int array; index is 1-based.
type ArrayIntElementConstraint struct {
	index, value *Variable
	array        []int
}

func NewArrayIntElementConstraint(index, value *Variable, array []int) *ArrayIntElementConstraint {
	if len(array) == 0 {
		panicInvalidUsage("ArrayIntElementConstraint: empty array is not allowed")
	}
	return &ArrayIntElementConstraint{index: index, value: value, array: array}
}

func (c *ArrayIntElementConstraint) Satisfied() bool {
	if !c.index.IsAssigned() || !c.value.IsAssigned() {
		return false
	}
	pos := c.index.Value()
	if pos < 1 || pos > len(c.array) {
		return false
	}
	return c.array[pos-1] == c.value.Value()
}

func (c *ArrayIntElementConstraint) Failed() bool {
	for _, i := range c.index.Domain().Values() {
		if i >= 1 && i <= len(c.array) && c.value.Possible(c.array[i-1]) {
			return false
		}
	}
	return true
}

func (c *ArrayIntElementConstraint) install(s *Search) {
	p := &arrayIntElementPropagator{index: c.index, value: c.value, array: c.array}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type arrayIntElementPropagator struct {
	propagatorBase
	index, value *Variable
	array        []int
}

func (p *arrayIntElementPropagator) Listen(s *Search) {
	p.index.Subscribe(EventModified, p)
	p.value.Subscribe(EventModified, p)
}

func (p *arrayIntElementPropagator) Unlisten(s *Search) {
	p.index.Unsubscribe(EventModified, p)
	p.value.Unsubscribe(EventModified, p)
}

func (p *arrayIntElementPropagator) Propagate(s *Search) PropagateStatus {
	p.index.SetLB(1)
	p.index.SetUB(len(p.array))

	possible := make(map[int]bool)
	for _, i := range p.index.Domain().Values() {
		possible[p.array[i-1]] = true
	}
	for _, v := range p.value.Domain().Values() {
		if !possible[v] {
			p.value.Remove(v)
		}
	}
	for _, i := range p.index.Domain().Values() {
		if !p.value.Possible(p.array[i-1]) {
			p.index.Remove(i)
		}
	}
	return StatusNormal
}

// ArrayVarElementConstraint generalizes ArrayIntElementConstraint to an
// array of Variables: value = array[index], built the same way as the
// int-array form: restrict index to
// [1, len(array)], restrict value to the union of array cells reachable
// through dom(index), and eliminate an index i when value shares no
// value with array[i].
type ArrayVarElementConstraint struct {
	index, value *Variable
	array        []*Variable
}

func NewArrayVarElementConstraint(index, value *Variable, array []*Variable) *ArrayVarElementConstraint {
	if len(array) == 0 {
		panicInvalidUsage("ArrayVarElementConstraint: empty array is not allowed")
	}
	return &ArrayVarElementConstraint{index: index, value: value, array: array}
}

func (c *ArrayVarElementConstraint) Satisfied() bool {
	if !c.index.IsAssigned() || !c.value.IsAssigned() {
		return false
	}
	pos := c.index.Value()
	if pos < 1 || pos > len(c.array) {
		return false
	}
	cell := c.array[pos-1]
	return cell.IsAssigned() && cell.Value() == c.value.Value()
}

func (c *ArrayVarElementConstraint) Failed() bool {
	for _, i := range c.index.Domain().Values() {
		if i < 1 || i > len(c.array) {
			continue
		}
		if cellsIntersect(c.array[i-1], c.value) {
			return false
		}
	}
	return true
}

func (c *ArrayVarElementConstraint) install(s *Search) {
	p := &arrayVarElementPropagator{index: c.index, value: c.value, array: c.array}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type arrayVarElementPropagator struct {
	propagatorBase
	index, value *Variable
	array        []*Variable
}

func (p *arrayVarElementPropagator) Listen(s *Search) {
	p.index.Subscribe(EventModified, p)
	p.value.Subscribe(EventModified, p)
	for _, cell := range p.array {
		cell.Subscribe(EventModified, p)
	}
}

func (p *arrayVarElementPropagator) Unlisten(s *Search) {
	p.index.Unsubscribe(EventModified, p)
	p.value.Unsubscribe(EventModified, p)
	for _, cell := range p.array {
		cell.Unsubscribe(EventModified, p)
	}
}

func (p *arrayVarElementPropagator) Propagate(s *Search) PropagateStatus {
	p.index.SetLB(1)
	p.index.SetUB(len(p.array))

	possible := make(map[int]bool)
	for _, i := range p.index.Domain().Values() {
		p.array[i-1].Iter(func(v int) { possible[v] = true })
	}
	for _, v := range p.value.Domain().Values() {
		if !possible[v] {
			p.value.Remove(v)
		}
	}
	for _, i := range p.index.Domain().Values() {
		if !cellsIntersect(p.array[i-1], p.value) {
			p.index.Remove(i)
		}
	}
	return StatusNormal
}

func cellsIntersect(a, b *Variable) bool {
	found := false
	a.Iter(func(v int) {
		if !found && b.Possible(v) {
			found = true
		}
	})
	return found
}
