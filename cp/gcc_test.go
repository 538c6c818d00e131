package cp

import "testing"

// TestGCCForcedSingletonExhaustsCapacity mirrors AllDifferent's Hall-set
// pruning but through a per-value capacity: v0 is pinned to value 1 and
// its capacity is exactly 1, so no other variable may take 1.
func TestGCCForcedSingletonExhaustsCapacity(t *testing.T) {
	s := newSearch()
	v0 := s.NewVariable(1, 1, "v0")
	v1 := s.NewVariable(1, 2, "v1")
	v2 := s.NewVariable(1, 2, "v2")
	card := map[int]int{1: 1, 2: 2}
	NewGlobalCardinalityConstraint([]*Variable{v0, v1, v2}, card).install(s)
	s.runFixpoint()
	if v1.Possible(1) || v2.Possible(1) {
		t.Fatal("value 1's single slot is taken by v0; v1 and v2 must not keep it")
	}
	if !v1.IsAssigned() || v1.Value() != 2 || !v2.IsAssigned() || v2.Value() != 2 {
		t.Fatalf("v1 and v2 should be forced to 2, got v1.assigned=%v v2.assigned=%v", v1.IsAssigned(), v2.IsAssigned())
	}
}

func TestGCCFailsWhenCapacityBelowDemand(t *testing.T) {
	s := newSearch()
	v0 := s.NewVariable(1, 2, "v0")
	v1 := s.NewVariable(1, 2, "v1")
	v2 := s.NewVariable(1, 2, "v2")
	card := map[int]int{1: 1, 2: 1}
	NewGlobalCardinalityConstraint([]*Variable{v0, v1, v2}, card).install(s)
	s.runFixpoint()
	if !v0.Domain().IsEmpty() && !v1.Domain().IsEmpty() && !v2.Domain().IsEmpty() {
		t.Fatal("3 variables cannot fit into a total capacity of 2; some domain should have failed")
	}
}

func TestGCCSatisfiedFailed(t *testing.T) {
	s := newSearch()
	v0 := s.NewVariable(1, 2, "v0")
	v1 := s.NewVariable(1, 2, "v1")
	c := NewGlobalCardinalityConstraint([]*Variable{v0, v1}, map[int]int{1: 1, 2: 1})
	v0.Assign(1)
	v1.Assign(2)
	if !c.Satisfied() {
		t.Fatal("one occurrence each of 1 and 2 should satisfy cap 1 each")
	}

	s2 := newSearch()
	w0 := s2.NewVariable(1, 1, "w0")
	w1 := s2.NewVariable(1, 1, "w1")
	if !NewGlobalCardinalityConstraint([]*Variable{w0, w1}, map[int]int{1: 1}).Failed() {
		t.Fatal("two occurrences of value 1 exceed cap 1, should report Failed")
	}
}

func TestGCCValueAbsentFromCardIsForbidden(t *testing.T) {
	s := newSearch()
	v0 := s.NewVariable(1, 3, "v0")
	card := map[int]int{1: 1, 2: 1}
	c := NewGlobalCardinalityConstraint([]*Variable{v0}, card)
	v0.Assign(3)
	if !c.Failed() {
		t.Fatal("value 3 has no entry in card and should be forbidden")
	}
}
