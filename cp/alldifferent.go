package cp

import (
	"sort"

	"github.com/gitrdm/ezcp/cp/graph"
)

// AllDifferentConstraint enforces that all variables take pairwise
// distinct values, propagated to arc consistency via Régin's algorithm.
type AllDifferentConstraint struct {
	vars []*Variable
}

func NewAllDifferentConstraint(vars []*Variable) *AllDifferentConstraint {
	return &AllDifferentConstraint{vars: vars}
}

func (c *AllDifferentConstraint) Satisfied() bool {
	seen := make(map[int]bool, len(c.vars))
	for _, v := range c.vars {
		if !v.IsAssigned() {
			return false
		}
		val := v.Value()
		if seen[val] {
			return false
		}
		seen[val] = true
	}
	return true
}

func (c *AllDifferentConstraint) Failed() bool {
	seen := make(map[int]bool, len(c.vars))
	for _, v := range c.vars {
		if v.IsAssigned() {
			val := v.Value()
			if seen[val] {
				return true
			}
			seen[val] = true
		}
	}
	return false
}

func (c *AllDifferentConstraint) install(s *Search) {
	p := &allDifferentPropagator{vars: c.vars}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type allDifferentPropagator struct {
	propagatorBase
	vars []*Variable
}

func (p *allDifferentPropagator) Listen(s *Search) {
	for _, v := range p.vars {
		v.Subscribe(EventModified, p)
	}
}

func (p *allDifferentPropagator) Unlisten(s *Search) {
	for _, v := range p.vars {
		v.Unsubscribe(EventModified, p)
	}
}

// Propagate builds the bipartite var/value flow network, finds a
// maximum matching, orients the residual graph (matched edges var->val,
// unmatched val->var), computes SCCs, and additionally marks as useful
// every edge reachable by an alternating path from an unmatched value.
// Any edge that ends up neither a matching edge, inside a common SCC,
// nor alternating-reachable is removed.
func (p *allDifferentPropagator) Propagate(s *Search) PropagateStatus {
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
		fg.AddEdge(valBase+a, sink, 1)
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
	matchedVal := make([]int, n)
	for i := range matchedVal {
		matchedVal[i] = -1
	}
	for k, eid := range edgeOf {
		if fg.Edge(eid).Flow > 0 {
			matchedVal[k.i] = k.a
			g.AddEdge(k.i, n+k.a)
		} else {
			g.AddEdge(n+k.a, k.i)
		}
	}

	comp, _ := graph.SCC(g)

	valUsed := make([]bool, m)
	for _, a := range matchedVal {
		if a >= 0 {
			valUsed[a] = true
		}
	}
	free := make([]bool, n+m)
	for a := 0; a < m; a++ {
		if !valUsed[a] {
			free[n+a] = true
		}
	}

	type edgeKey [2]int
	ok := make(map[edgeKey]bool)
	radj := make([][]int, n+m)
	for v := 0; v < n+m; v++ {
		for _, u := range g.Adj(v) {
			radj[u] = append(radj[u], v)
			if comp[v] == comp[u] {
				ok[edgeKey{v, u}] = true
			}
		}
	}
	for i := 0; i < n; i++ {
		for _, u := range g.Adj(i) {
			ok[edgeKey{i, u}] = true // matching edges are always useful
		}
	}

	for iter := 0; iter < 2; iter++ {
		visited := make([]bool, n+m)
		queue := make([]int, 0, n+m)
		for v := 0; v < n+m; v++ {
			if free[v] {
				visited[v] = true
				queue = append(queue, v)
			}
		}
		for qi := 0; qi < len(queue); qi++ {
			v := queue[qi]
			var neighbors []int
			if iter == 0 {
				neighbors = g.Adj(v)
			} else {
				neighbors = radj[v]
			}
			for _, u := range neighbors {
				if iter == 0 {
					ok[edgeKey{v, u}] = true
				} else {
					ok[edgeKey{u, v}] = true
				}
				if !visited[u] {
					visited[u] = true
					queue = append(queue, u)
				}
			}
		}
	}

	for valNode := n; valNode < n+m; valNode++ {
		for _, varNode := range g.Adj(valNode) {
			if !ok[edgeKey{valNode, varNode}] {
				p.vars[varNode].Remove(vals[valNode-n])
			}
		}
	}
	return StatusNormal
}
