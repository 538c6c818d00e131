package cp

import (
	"sort"

	"github.com/gitrdm/ezcp/cp/graph"
)

// GlobalCardinalityConstraint generalizes AllDifferentConstraint with a
// per-value occurrence cap. A value absent from card may not be used by
// any variable.
type GlobalCardinalityConstraint struct {
	vars []*Variable
	card map[int]int
}

func NewGlobalCardinalityConstraint(vars []*Variable, card map[int]int) *GlobalCardinalityConstraint {
	return &GlobalCardinalityConstraint{vars: vars, card: card}
}

func (c *GlobalCardinalityConstraint) Satisfied() bool {
	count := make(map[int]int)
	for _, v := range c.vars {
		if !v.IsAssigned() {
			return false
		}
		count[v.Value()]++
	}
	for val, n := range count {
		cap, ok := c.card[val]
		if !ok || n > cap {
			return false
		}
	}
	return true
}

func (c *GlobalCardinalityConstraint) Failed() bool {
	count := make(map[int]int)
	for _, v := range c.vars {
		if v.IsAssigned() {
			count[v.Value()]++
		}
	}
	for val, n := range count {
		cap, ok := c.card[val]
		if !ok || n > cap {
			return true
		}
	}
	return false
}

func (c *GlobalCardinalityConstraint) install(s *Search) {
	p := &gccPropagator{vars: c.vars, card: c.card}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type gccPropagator struct {
	propagatorBase
	vars []*Variable
	card map[int]int
}

func (p *gccPropagator) Listen(s *Search) {
	for _, v := range p.vars {
		v.Subscribe(EventModified, p)
	}
}

func (p *gccPropagator) Unlisten(s *Search) {
	for _, v := range p.vars {
		v.Unsubscribe(EventModified, p)
	}
}

// Propagate replaces AllDifferent's unit value-side capacity with
// cap(a), computes a feasibility flow, and filters on same-SCC
// membership of the residual graph only; the free-node alternating-path
// extension AllDifferent adds does not apply once values have
// capacities above one.
func (p *gccPropagator) Propagate(s *Search) PropagateStatus {
	n := len(p.vars)

	valSet := make(map[int]bool)
	for _, v := range p.vars {
		v.Iter(func(x int) { valSet[x] = true })
	}
	vals := make([]int, 0, len(valSet))
	for v := range valSet {
		vals = append(vals, v)
	}
	sort.Ints(vals)
	valIndex := make(map[int]int, len(vals))
	for i, v := range vals {
		valIndex[v] = i
	}
	m := len(vals)

	source := 0
	varBase := 1
	valBase := varBase + n
	sink := valBase + m
	fg := graph.NewFlowGraph(sink + 1)
	for i := 0; i < n; i++ {
		fg.AddEdge(source, varBase+i, 1)
	}
	for a := 0; a < m; a++ {
		fg.AddEdge(valBase+a, sink, p.card[vals[a]])
	}
	type key struct{ i, a int }
	edgeOf := make(map[key]int)
	for i, v := range p.vars {
		v.Iter(func(x int) {
			a := valIndex[x]
			edgeOf[key{i, a}] = fg.AddEdge(varBase+i, valBase+a, 1)
		})
	}

	flow := fg.MaxFlow(source, sink)
	if flow < n {
		p.vars[0].Fail()
		return StatusNormal
	}

	g := graph.NewDigraph(n + m)
	for k, eid := range edgeOf {
		if fg.Edge(eid).Flow > 0 {
			g.AddEdge(k.i, n+k.a)
		} else {
			g.AddEdge(n+k.a, k.i)
		}
	}
	comp, _ := graph.SCC(g)

	for valNode := n; valNode < n+m; valNode++ {
		for _, varNode := range g.Adj(valNode) {
			if comp[valNode] != comp[varNode] {
				p.vars[varNode].Remove(vals[valNode-n])
			}
		}
	}
	return StatusNormal
}
