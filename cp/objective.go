package cp

// LinearObjective minimizes sum(Coeffs[i] * Vars[i]) + Constant.
// Bound() gives the tightest lower bound derivable from current domains (each positive
// coefficient contributes its variable's lower bound, each negative
// coefficient contributes its variable's upper bound); Value() requires
// every variable to be assigned.
type LinearObjective struct {
	Vars     []*Variable
	Coeffs   []int
	Constant int
}

// NewLinearObjective builds a minimization objective over vars with the
// matching per-variable coefficients.
func NewLinearObjective(vars []*Variable, coeffs []int, constant int) *LinearObjective {
	return &LinearObjective{Vars: vars, Coeffs: coeffs, Constant: constant}
}

func (o *LinearObjective) Bound() int {
	total := o.Constant
	for i, v := range o.Vars {
		c := o.Coeffs[i]
		if c >= 0 {
			total += c * v.LB()
		} else {
			total += c * v.UB()
		}
	}
	return total
}

func (o *LinearObjective) Value() int {
	total := o.Constant
	for i, v := range o.Vars {
		total += o.Coeffs[i] * v.Value()
	}
	return total
}

// negatedObjective adapts a LinearObjective for maximization by searching
// the negated sum: Value() is the negated inner value and Bound() the
// negated upper bound of the inner sum, so minimizing them maximizes the
// inner objective (see Solver.AddMaximizeObjective). The search only
// sees these negated numbers; callers read the maximizing assignment
// from the variables.
type negatedObjective struct {
	inner *LinearObjective
}

func (n negatedObjective) Bound() int { return -n.innerMaxBound() }

func (n negatedObjective) innerMaxBound() int {
	total := n.inner.Constant
	for i, v := range n.inner.Vars {
		c := n.inner.Coeffs[i]
		if c >= 0 {
			total += c * v.UB()
		} else {
			total += c * v.LB()
		}
	}
	return total
}

func (n negatedObjective) Value() int { return -n.inner.Value() }
