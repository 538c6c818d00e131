package cp

// VariableSelector picks the next unassigned variable to branch on.
// All built-ins break ties by variable id, ascending, so selection is
// deterministic for a given model.
type VariableSelector interface {
	Select(unassigned []*Variable) *Variable
}

// Lex selects the lowest-id unassigned variable.
type Lex struct{}

func (Lex) Select(unassigned []*Variable) *Variable {
	best := unassigned[0]
	for _, v := range unassigned[1:] {
		if v.ID() < best.ID() {
			best = v
		}
	}
	return best
}

// FirstFail selects the variable with the smallest domain, breaking ties
// by id.
type FirstFail struct{}

func (FirstFail) Select(unassigned []*Variable) *Variable {
	best := unassigned[0]
	for _, v := range unassigned[1:] {
		if v.Size() < best.Size() || (v.Size() == best.Size() && v.ID() < best.ID()) {
			best = v
		}
	}
	return best
}

// AntiFirstFail selects the variable with the largest domain, breaking
// ties by id.
type AntiFirstFail struct{}

func (AntiFirstFail) Select(unassigned []*Variable) *Variable {
	best := unassigned[0]
	for _, v := range unassigned[1:] {
		if v.Size() > best.Size() || (v.Size() == best.Size() && v.ID() < best.ID()) {
			best = v
		}
	}
	return best
}

// ValueVariableSelector picks the variable whose current bound (largest
// or smallest UB/LB, depending on Largest) is most extreme, breaking ties
// by id.
type ValueVariableSelector struct {
	Largest bool
}

func (s ValueVariableSelector) Select(unassigned []*Variable) *Variable {
	best := unassigned[0]
	for _, v := range unassigned[1:] {
		var better bool
		if s.Largest {
			better = v.UB() > best.UB() || (v.UB() == best.UB() && v.ID() < best.ID())
		} else {
			better = v.LB() < best.LB() || (v.LB() == best.LB() && v.ID() < best.ID())
		}
		if better {
			best = v
		}
	}
	return best
}
