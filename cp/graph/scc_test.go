package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSCCSingleCycleIsOneComponent(t *testing.T) {
	g := NewDigraph(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 0)
	comp, numComp := SCC(g)
	require.Equal(t, 1, numComp)
	require.Equal(t, comp[0], comp[1])
	require.Equal(t, comp[1], comp[2])
}

func TestSCCDisjointNodesAreSeparateComponents(t *testing.T) {
	g := NewDigraph(3)
	// no edges at all
	comp, numComp := SCC(g)
	require.Equal(t, 3, numComp)
	require.NotEqual(t, comp[0], comp[1])
	require.NotEqual(t, comp[1], comp[2])
	require.NotEqual(t, comp[0], comp[2])
}

func TestSCCMixedCycleAndChain(t *testing.T) {
	// 0<->1 form a 2-cycle; 1->2 is a one-way bridge into a sink node.
	g := NewDigraph(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 0)
	g.AddEdge(1, 2)
	comp, numComp := SCC(g)
	require.Equal(t, 2, numComp)
	require.Equal(t, comp[0], comp[1])
	require.NotEqual(t, comp[1], comp[2])
}

func TestSinkComponentsFlagsOnlyTerminalComponents(t *testing.T) {
	// 0<->1 feeds into the singleton sink 2.
	g := NewDigraph(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 0)
	g.AddEdge(1, 2)
	comp, numComp := SCC(g)
	sink := SinkComponents(g, comp, numComp)
	require.False(t, sink[comp[0]], "the 2-cycle component has an outgoing edge to node 2, so it is not a sink")
	require.True(t, sink[comp[2]], "node 2 has no outgoing edges at all, so its component is a sink")
}
