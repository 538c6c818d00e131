package graph

// Matching runs Dinic's algorithm on the bipartite flow network
// source -> var_i (cap 1) -> val_a (cap 1, a in domains[i]) -> val_a's
// sink edge (cap capacity(a)) -> sink. With capacity(a) == 1 for every a
// this is the classic AllDifferent matching; with per-value capacities
// it is GCC's feasibility flow.
//
// It returns, for each variable, the value it was matched to (-1 if
// none), and the total matched count.
func Matching(nVars, domainSize int, domains [][]int, capacity func(a int) int) (varToVal []int, matched int) {
	source := 0
	varBase := 1
	valBase := varBase + nVars
	sink := valBase + domainSize

	fg := NewFlowGraph(sink + 1)
	for i := 0; i < nVars; i++ {
		fg.AddEdge(source, varBase+i, 1)
	}
	for a := 0; a < domainSize; a++ {
		fg.AddEdge(valBase+a, sink, capacity(a))
	}
	type key struct{ i, a int }
	edgeOf := make(map[key]int, nVars*2)
	for i := 0; i < nVars; i++ {
		for _, a := range domains[i] {
			edgeOf[key{i, a}] = fg.AddEdge(varBase+i, valBase+a, 1)
		}
	}

	fg.MaxFlow(source, sink)

	varToVal = make([]int, nVars)
	for i := range varToVal {
		varToVal[i] = -1
	}
	matched = 0
	for i := 0; i < nVars; i++ {
		for _, a := range domains[i] {
			if fg.Edge(edgeOf[key{i, a}]).Flow > 0 {
				varToVal[i] = a
				matched++
				break
			}
		}
	}
	return varToVal, matched
}
