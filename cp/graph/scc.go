package graph

// SCC computes strongly connected components via Kosaraju's algorithm: a
// forward DFS to compute a post-order, then a reverse-graph DFS visited in
// decreasing post-order. It returns, for each node, its
// component id, and the total number of components. The second pass
// discovers components in topological order of the condensation DAG;
// ids are numbered in the reverse of that order, so they follow reverse
// topological order (a sink component gets id 0).
func SCC(g *Digraph) (comp []int, numComp int) {
	n := g.n
	visited := make([]bool, n)
	order := make([]int, 0, n)

	var dfs1 func(u int)
	dfs1 = func(u int) {
		visited[u] = true
		for _, w := range g.adj[u] {
			if !visited[w] {
				dfs1(w)
			}
		}
		order = append(order, u)
	}
	for u := 0; u < n; u++ {
		if !visited[u] {
			dfs1(u)
		}
	}

	radj := make([][]int, n)
	for u := 0; u < n; u++ {
		for _, w := range g.adj[u] {
			radj[w] = append(radj[w], u)
		}
	}

	comp = make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	cid := 0
	var dfs2 func(u, c int)
	dfs2 = func(u, c int) {
		comp[u] = c
		for _, w := range radj[u] {
			if comp[w] == -1 {
				dfs2(w, c)
			}
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		u := order[i]
		if comp[u] == -1 {
			dfs2(u, cid)
			cid++
		}
	}
	for u := range comp {
		comp[u] = cid - 1 - comp[u]
	}
	return comp, cid
}

// SinkComponents reports, for each component id, whether it is a sink of
// the condensation — it has no outgoing edge to a different component.
// TreeConstraint's lower bound on the number of trees is the count of
// sink components.
func SinkComponents(g *Digraph, comp []int, numComp int) []bool {
	sink := make([]bool, numComp)
	for i := range sink {
		sink[i] = true
	}
	for u := 0; u < g.n; u++ {
		for _, w := range g.adj[u] {
			if comp[u] != comp[w] {
				sink[comp[u]] = false
			}
		}
	}
	return sink
}
