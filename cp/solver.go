package cp

import "log"

// Solver is the library's top-level handle: variable and
// constraint registration, then a single Search per Solver instance.
type Solver struct {
	s *Search
}

// NewSolver creates an empty solver.
func NewSolver() *Solver {
	return &Solver{s: newSearch()}
}

// SetLogger attaches an optional debug logger, written to only at
// checkpoint/rollback/fail boundaries. Nil (the default) disables
// logging entirely.
func (sv *Solver) SetLogger(l *log.Logger) { sv.s.logger = l }

// NewVariable creates a new branchable variable with domain [lb, ub].
func (sv *Solver) NewVariable(lb, ub int, name string) *Variable {
	return sv.s.NewVariable(lb, ub, name)
}

// ConstVariable creates a variable pinned to one value.
func (sv *Solver) ConstVariable(value int) *Variable {
	return sv.s.ConstVariable(value)
}

// VariableByName looks up a previously named variable.
func (sv *Solver) VariableByName(name string) (*Variable, bool) {
	return sv.s.VariableByName(name)
}

// RequireVariable resolves a name that a model builder expects to exist,
// returning a ModelError for an unknown name. Front ends use this when
// wiring constraint arguments to declared variables.
func (sv *Solver) RequireVariable(name string) (*Variable, error) {
	v, ok := sv.s.VariableByName(name)
	if !ok {
		return nil, &ModelError{Msg: "unknown variable " + name}
	}
	return v, nil
}

// AddConstraint registers a constraint to be installed at the next
// Search.
func (sv *Solver) AddConstraint(c Constraint) {
	sv.s.AddConstraint(c)
}

// AddObjective sets a minimization objective.
func (sv *Solver) AddObjective(o Objective) {
	sv.s.AddObjective(o)
}

// AddMaximizeObjective sets a maximization objective by internally
// minimizing its negation.
func (sv *Solver) AddMaximizeObjective(o *LinearObjective) {
	sv.s.AddObjective(negatedObjective{inner: o})
}

// Search begins a depth-first search with the given configuration,
// returning a SolutionStream. Starting a second concurrent search on
// the same Solver panics with an InvalidUsageError.
func (sv *Solver) Search(cfg Config) *SolutionStream {
	if cfg.VariableSelector == nil {
		cfg.VariableSelector = FirstFail{}
	}
	if cfg.Brancher == nil {
		cfg.Brancher = MinValueBrancher{}
	}
	sv.s.config = cfg
	return &SolutionStream{s: sv.s}
}

// SolutionStream yields successive solutions from a Search.
type SolutionStream struct {
	s    *Search
	done bool
}

// Next advances the search and reports whether a new solution is
// available. While true, every branchable Variable's Value() reflects
// that solution: the domains remain in the state corresponding to the
// last emitted solution until the next call.
func (st *SolutionStream) Next() bool {
	if st.done {
		return false
	}
	ok := st.s.Next()
	if !ok {
		st.done = true
	} else if st.s.objective == nil && !st.s.config.AllSolutions {
		// Satisfaction mode without AllSolutions stops after the first
		// solution; the search state stays positioned on it.
		st.done = true
	}
	return ok
}

// Stats reports current search statistics.
func (st *SolutionStream) Stats() Stats { return st.s.Stats() }
