package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func unitCapacity(a int) int { return 1 }

func TestMatchingPerfectBipartiteMatch(t *testing.T) {
	// 3 variables, domains {0,1}, {1,2}, {0,2} over 3 values: a perfect
	// matching exists (e.g. 0->0, 1->1, 2->2).
	domains := [][]int{{0, 1}, {1, 2}, {0, 2}}
	varToVal, matched := Matching(3, 3, domains, unitCapacity)
	require.Equal(t, 3, matched)
	seen := map[int]bool{}
	for i, a := range varToVal {
		require.GreaterOrEqual(t, a, 0, "variable %d should be matched", i)
		require.False(t, seen[a], "value %d matched to more than one variable", a)
		seen[a] = true
	}
}

func TestMatchingInfeasibleWhenDomainsCollide(t *testing.T) {
	// 3 variables all confined to the same single value: only one can
	// match.
	domains := [][]int{{0}, {0}, {0}}
	_, matched := Matching(3, 1, domains, unitCapacity)
	require.Equal(t, 1, matched)
}

func TestMatchingRespectsPerValueCapacity(t *testing.T) {
	// 3 variables all confined to value 0, but its capacity is 2 (GCC
	// shape): exactly 2 should match.
	domains := [][]int{{0}, {0}, {0}}
	cap2 := func(a int) int { return 2 }
	_, matched := Matching(3, 1, domains, cap2)
	require.Equal(t, 2, matched)
}

func TestMatchingUnmatchedVariableReportsNegativeOne(t *testing.T) {
	domains := [][]int{{0}, {0}}
	varToVal, matched := Matching(2, 1, domains, unitCapacity)
	require.Equal(t, 1, matched)
	unmatchedCount := 0
	for _, a := range varToVal {
		if a == -1 {
			unmatchedCount++
		}
	}
	require.Equal(t, 1, unmatchedCount)
}
