package cp

import "github.com/gitrdm/ezcp/cp/graph"

// TreeConstraint enforces that the edges {(v, parent[v]) : parent[v] != v}
// together with the roots {v : parent[v] = v} form a spanning forest with
// exactly ntree trees. A node whose parent is itself is the root of its
// tree; every other node's parent chain must terminate at some root.
type TreeConstraint struct {
	ntree  *Variable
	parent []*Variable
}

func NewTreeConstraint(ntree *Variable, parent []*Variable) *TreeConstraint {
	if len(parent) == 0 {
		panicInvalidUsage("TreeConstraint: empty parent array")
	}
	return &TreeConstraint{ntree: ntree, parent: parent}
}

// Satisfied walks every node's parent chain up to a self-loop root,
// failing on a cycle, then checks the root count against ntree.
func (c *TreeConstraint) Satisfied() bool {
	n := len(c.parent)
	if !c.ntree.IsAssigned() {
		return false
	}
	roots := 0
	for i := 0; i < n; i++ {
		if !c.parent[i].IsAssigned() {
			return false
		}
		if c.parent[i].Value() == i {
			roots++
		}
	}
	if roots != c.ntree.Value() {
		return false
	}
	for i := 0; i < n; i++ {
		cur := i
		steps := 0
		for c.parent[cur].Value() != cur {
			cur = c.parent[cur].Value()
			steps++
			if steps > n {
				return false // cycle, never reached a root
			}
		}
	}
	return true
}

// Failed rebuilds the candidate graph from the current domains and
// reports a definite inconsistency: a node with no path to any potential
// root, or tree-count bounds disjoint from ntree's domain.
func (c *TreeConstraint) Failed() bool {
	minTree, maxTree, allReachable := c.treeBounds()
	if !allReachable {
		return true
	}
	return minTree > c.ntree.UB() || maxTree < c.ntree.LB()
}

// treeBounds computes the sink-SCC lower bound and potential-root upper
// bound on the number of trees, plus whether every node is reachable
// from the virtual super-root in the extended candidate graph.
func (c *TreeConstraint) treeBounds() (minTree, maxTree int, allReachable bool) {
	n := len(c.parent)
	g := graph.NewDigraph(n)
	maxTree = 0
	for v := 0; v < n; v++ {
		c.parent[v].Iter(func(u int) {
			if u != v {
				g.AddEdge(v, u)
			}
		})
		if c.parent[v].Possible(v) {
			maxTree++
		}
	}
	comp, numComp := graph.SCC(g)
	sink := graph.SinkComponents(g, comp, numComp)

	// A sink component has no candidate parent outside itself, so at
	// least one of its nodes must be a root; components are disjoint.
	minTree = 0
	for _, isSink := range sink {
		if isSink {
			minTree++
		}
	}

	ext := c.extendedGraph()
	reach := reachableFrom(ext, 0)
	allReachable = true
	for v := 0; v < n; v++ {
		if !reach[v+1] {
			allReachable = false
		}
	}
	return minTree, maxTree, allReachable
}

// extendedGraph builds the candidate graph on nodes {0..n} where node 0
// is a virtual super-root: 0 -> v+1 and v+1 -> 0 iff v can be a root,
// and u+1 -> v+1 iff v can take u as its parent.
func (c *TreeConstraint) extendedGraph() *graph.Digraph {
	n := len(c.parent)
	ext := graph.NewDigraph(n + 1)
	for v := 0; v < n; v++ {
		c.parent[v].Iter(func(u int) {
			if u == v {
				ext.AddEdge(0, v+1)
				ext.AddEdge(v+1, 0)
			} else {
				ext.AddEdge(u+1, v+1)
			}
		})
	}
	return ext
}

func (c *TreeConstraint) install(s *Search) {
	p := &treePropagator{ntree: c.ntree, parent: c.parent, c: c}
	p.propagatorBase = newPropagatorBase(0, true)
	s.registerPropagator(p)
}

type treePropagator struct {
	propagatorBase
	ntree  *Variable
	parent []*Variable
	c      *TreeConstraint
}

func (p *treePropagator) Listen(s *Search) {
	p.ntree.Subscribe(EventModified, p)
	for _, v := range p.parent {
		v.Subscribe(EventModified, p)
	}
}

func (p *treePropagator) Unlisten(s *Search) {
	p.ntree.Unsubscribe(EventModified, p)
	for _, v := range p.parent {
		v.Unsubscribe(EventModified, p)
	}
}

// Propagate tightens ntree to [sink-SCC count, potential-root count],
// fails if any node cannot be reached from the virtual super-root, then
// computes the dominator tree of the extended graph and removes every
// candidate parent u of v where v strictly dominates u: any chain from
// u up to its root would pass through v, so v is an ancestor of u in
// every remaining forest, and making u the parent of v closes a cycle.
func (p *treePropagator) Propagate(s *Search) PropagateStatus {
	n := len(p.parent)

	minTree, maxTree, _ := p.c.treeBounds()
	p.ntree.SetLB(minTree)
	if s.failed {
		return StatusNormal
	}
	p.ntree.SetUB(maxTree)
	if s.failed {
		return StatusNormal
	}

	ext := p.c.extendedGraph()
	idom := graph.Dominators(ext, 0)
	for v := 0; v < n; v++ {
		if idom[v+1] == -1 {
			p.parent[v].Fail()
			return StatusNormal
		}
	}
	entry, exit := graph.DomTreeTimes(idom, 0)

	for v := 0; v < n; v++ {
		var toRemove []int
		p.parent[v].Iter(func(u int) {
			if u != v && graph.StrictlyDominates(entry, exit, v+1, u+1) {
				toRemove = append(toRemove, u)
			}
		})
		for _, u := range toRemove {
			p.parent[v].Remove(u)
			if s.failed {
				return StatusNormal
			}
		}
	}
	return StatusNormal
}

func reachableFrom(g *graph.Digraph, root int) []bool {
	n := g.N()
	visited := make([]bool, n)
	visited[root] = true
	queue := []int{root}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, v := range g.Adj(u) {
			if !visited[v] {
				visited[v] = true
				queue = append(queue, v)
			}
		}
	}
	return visited
}
