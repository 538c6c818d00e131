package cp

// Config holds the search options: selection and branching strategy,
// the branchable-variable restriction, enumeration mode, and the time
// limit.
type Config struct {
	// VariableSelector picks the next unassigned variable to branch on.
	VariableSelector VariableSelector
	// Brancher turns the selected variable into branches.
	Brancher Brancher
	// BranchableVars restricts branching to these variable names. Empty
	// means every non-constant variable is branchable.
	BranchableVars []string
	// AllSolutions: for satisfaction, enumerate every solution; for
	// optimization, emit every improving solution instead of only the
	// final optimum.
	AllSolutions bool
	// TimeLimitMillis, if > 0, bounds search wall-clock time, checked
	// between propagation rounds, never inside a Propagate call.
	TimeLimitMillis int
}

// DefaultConfig returns FirstFail variable selection with MinValue
// branching.
func DefaultConfig() Config {
	return Config{
		VariableSelector: FirstFail{},
		Brancher:         MinValueBrancher{},
	}
}
