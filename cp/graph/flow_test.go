package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxFlowSaturatesSourceCapacity(t *testing.T) {
	// Source capacity (2+1=3) is the binding constraint; the network has
	// enough downstream capacity to carry all of it.
	fg := NewFlowGraph(4)
	fg.AddEdge(0, 1, 2)
	fg.AddEdge(0, 2, 1)
	fg.AddEdge(1, 2, 1)
	fg.AddEdge(1, 3, 1)
	fg.AddEdge(2, 3, 2)
	require.Equal(t, 3, fg.MaxFlow(0, 3))
}

func TestMaxFlowBottleneckEdge(t *testing.T) {
	fg := NewFlowGraph(3)
	fg.AddEdge(0, 1, 5)
	fg.AddEdge(1, 2, 2)
	require.Equal(t, 2, fg.MaxFlow(0, 2))
}

func TestMaxFlowParallelDisjointPaths(t *testing.T) {
	fg := NewFlowGraph(4)
	fg.AddEdge(0, 1, 1)
	fg.AddEdge(0, 2, 1)
	fg.AddEdge(1, 3, 1)
	fg.AddEdge(2, 3, 1)
	require.Equal(t, 2, fg.MaxFlow(0, 3))
}

func TestMaxFlowNoPathIsZero(t *testing.T) {
	fg := NewFlowGraph(3)
	fg.AddEdge(0, 1, 4)
	// node 2 is disconnected from both 0 and 1.
	require.Equal(t, 0, fg.MaxFlow(0, 2))
}

func TestMaxFlowEdgeRecordsCommittedFlow(t *testing.T) {
	fg := NewFlowGraph(3)
	eid := fg.AddEdge(0, 1, 3)
	fg.AddEdge(1, 2, 3)
	require.Equal(t, 3, fg.MaxFlow(0, 2))
	require.Equal(t, 3, fg.Edge(eid).Flow)
}
