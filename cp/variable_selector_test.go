package cp

import "testing"

func TestLexSelectsLowestID(t *testing.T) {
	s := newSearch()
	a := s.NewVariable(1, 5, "a")
	b := s.NewVariable(1, 5, "b")
	got := Lex{}.Select([]*Variable{b, a})
	if got != a {
		t.Fatalf("Lex selected %s, want a (lowest id)", got.Name)
	}
}

func TestFirstFailSelectsSmallestDomain(t *testing.T) {
	s := newSearch()
	a := s.NewVariable(1, 5, "a")
	b := s.NewVariable(1, 2, "b")
	got := FirstFail{}.Select([]*Variable{a, b})
	if got != b {
		t.Fatalf("FirstFail selected %s, want b (smallest domain)", got.Name)
	}
}

func TestFirstFailTieBreakByID(t *testing.T) {
	s := newSearch()
	a := s.NewVariable(1, 5, "a")
	b := s.NewVariable(1, 5, "b")
	got := FirstFail{}.Select([]*Variable{b, a})
	if got != a {
		t.Fatalf("FirstFail tie-break selected %s, want a (lowest id)", got.Name)
	}
}

func TestAntiFirstFailSelectsLargestDomain(t *testing.T) {
	s := newSearch()
	a := s.NewVariable(1, 5, "a")
	b := s.NewVariable(1, 2, "b")
	got := AntiFirstFail{}.Select([]*Variable{a, b})
	if got != a {
		t.Fatalf("AntiFirstFail selected %s, want a (largest domain)", got.Name)
	}
}

func TestValueVariableSelectorSmallest(t *testing.T) {
	s := newSearch()
	a := s.NewVariable(5, 10, "a")
	b := s.NewVariable(1, 10, "b")
	got := ValueVariableSelector{Largest: false}.Select([]*Variable{a, b})
	if got != b {
		t.Fatalf("ValueVariableSelector(smallest LB) selected %s, want b", got.Name)
	}
}

func TestValueVariableSelectorLargest(t *testing.T) {
	s := newSearch()
	a := s.NewVariable(1, 5, "a")
	b := s.NewVariable(1, 10, "b")
	got := ValueVariableSelector{Largest: true}.Select([]*Variable{a, b})
	if got != b {
		t.Fatalf("ValueVariableSelector(largest UB) selected %s, want b", got.Name)
	}
}
