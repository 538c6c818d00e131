package graph

// Dominators computes the immediate-dominator tree of g rooted at root
// using the simple (path-compression, no link-eval forest) variant of the
// Lengauer–Tarjan algorithm: a DFS numbering pass,
// semi-dominator computation with ancestor path compression, then a
// linear resolution pass. idom[root] == root; idom[v] == -1 for any v not
// reachable from root.
func Dominators(g *Digraph, root int) []int {
	n := g.n
	dfn := make([]int, n)
	for i := range dfn {
		dfn[i] = -1
	}
	vertex := make([]int, 0, n)
	parent := make([]int, n)
	semi := make([]int, n)
	label := make([]int, n)
	ancestor := make([]int, n)
	for i := range ancestor {
		ancestor[i] = -1
	}

	var dfs func(u int)
	dfs = func(u int) {
		dfn[u] = len(vertex)
		semi[u] = dfn[u]
		label[u] = u
		vertex = append(vertex, u)
		for _, w := range g.adj[u] {
			if dfn[w] == -1 {
				parent[w] = u
				dfs(w)
			}
		}
	}
	dfs(root)

	pred := make([][]int, n)
	for u := 0; u < n; u++ {
		if dfn[u] == -1 {
			continue
		}
		for _, w := range g.adj[u] {
			if dfn[w] != -1 {
				pred[w] = append(pred[w], u)
			}
		}
	}

	var compress func(v int)
	compress = func(v int) {
		a := ancestor[v]
		if ancestor[a] == -1 {
			return
		}
		compress(a)
		if semi[label[a]] < semi[label[v]] {
			label[v] = label[a]
		}
		ancestor[v] = ancestor[a]
	}
	eval := func(v int) int {
		if ancestor[v] == -1 {
			return label[v]
		}
		compress(v)
		return label[v]
	}

	idom := make([]int, n)
	for i := range idom {
		idom[i] = -1
	}
	bucket := make([][]int, n)

	nVisited := len(vertex)
	for i := nVisited - 1; i >= 1; i-- {
		w := vertex[i]
		for _, v := range pred[w] {
			u := eval(v)
			if semi[u] < semi[w] {
				semi[w] = semi[u]
			}
		}
		bucket[vertex[semi[w]]] = append(bucket[vertex[semi[w]]], w)
		ancestor[w] = parent[w]

		pw := parent[w]
		for _, v := range bucket[pw] {
			u := eval(v)
			if semi[u] < semi[v] {
				idom[v] = u
			} else {
				idom[v] = pw
			}
		}
		bucket[pw] = nil
	}
	for i := 1; i < nVisited; i++ {
		w := vertex[i]
		if idom[w] != vertex[semi[w]] {
			idom[w] = idom[idom[w]]
		}
	}
	idom[root] = root
	return idom
}

// DomTreeTimes runs a DFS over the dominator tree described by idom
// (children of u are every v with idom[v] == u, v != root) and returns
// entry/exit timestamps usable for the ancestor test: u strictly
// dominates v iff entry[u] < entry[v] < exit[u].
func DomTreeTimes(idom []int, root int) (entry, exit []int) {
	n := len(idom)
	children := make([][]int, n)
	for v, u := range idom {
		if v == root || u < 0 {
			continue
		}
		children[u] = append(children[u], v)
	}
	entry = make([]int, n)
	exit = make([]int, n)
	for i := range entry {
		entry[i] = -1
		exit[i] = -1
	}
	clock := 0
	var dfs func(u int)
	dfs = func(u int) {
		entry[u] = clock
		clock++
		for _, c := range children[u] {
			if entry[c] == -1 {
				dfs(c)
			}
		}
		exit[u] = clock
		clock++
	}
	dfs(root)
	return entry, exit
}

// StrictlyDominates reports whether u strictly dominates v (u != v and
// every path from root to v passes through u) given entry/exit times
// computed by DomTreeTimes.
func StrictlyDominates(entry, exit []int, u, v int) bool {
	if u == v {
		return false
	}
	if entry[u] < 0 || entry[v] < 0 {
		return false
	}
	return entry[u] < entry[v] && entry[v] < exit[u]
}
