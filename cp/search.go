package cp

import (
	"log"
	"time"
)

// Constraint is a declarative object that, once installed, produces a set
// of Propagators and exposes satisfied/failed predicates used by the
// engine's defensive post-fixpoint check.
type Constraint interface {
	// install builds this constraint's propagators against s, registers
	// them, and arms their initial subscriptions.
	install(s *Search)

	// Satisfied reports whether the constraint holds under the current
	// (fully assigned) variable values. Only meaningful once every
	// variable the constraint touches is assigned.
	Satisfied() bool

	// Failed reports whether the constraint can no longer be satisfied
	// given the current (possibly partial) domains.
	Failed() bool
}

// Objective is a function of variables that Search can minimize: a thin
// wrapper with a Bound() used for pruning against the incumbent and a
// Value() used once every variable is assigned.
type Objective interface {
	// Bound returns a sound lower bound on the objective given the
	// current domains.
	Bound() int
	// Value returns the objective's value under the current (fully
	// assigned) variables.
	Value() int
}

// searchNode is one stack frame of the depth-first engine.
type searchNode struct {
	variable  *Variable
	branch    int
	nBranches int

	fixpointMark        int // trail mark taken at this frame's fresh-node checkpoint
	nPropagatorsAtEntry int
	terminated          []Propagator

	branchMark int // trail mark taken right before committing the current branch
}

// Stats reports search progress.
type Stats struct {
	Depth                  int
	MaxDepth               int
	Fails                  int
	TotalSolutionsReported int
	WholeTreeExplored      bool
}

// Search is the shared, single-threaded engine state: the reversible
// trail, the variable/propagator registries, the propagation FIFO, and the
// explicit depth-first stack. Variables and Propagators are identified
// by small integer ids; each Variable also keeps a pointer back to its
// Search, used to set the failed flag and to wake listeners.
type Search struct {
	vars       []*Variable
	varByName  map[string]*Variable
	constants  map[int]bool
	trail      *trail
	propagators []Propagator

	constraints []Constraint
	objective   Objective

	queue    []Propagator
	failed   bool
	reschedCurrent bool
	executing      Propagator

	stack []*searchNode

	config Config

	haveBest     bool
	currentMin   int
	bestSnapshot []int  // index = variable id
	bestAssigned []bool // tracks which entries of bestSnapshot are meaningful

	running   bool
	started   bool
	emittedFinal bool
	startTime time.Time
	deadline  time.Time
	hasDeadline bool

	stats Stats

	logger *log.Logger
}

func newSearch() *Search {
	return &Search{
		varByName: make(map[string]*Variable),
		constants: make(map[int]bool),
		trail:     newTrail(),
	}
}

// NewVariable creates a variable with domain [lb, ub].
func (s *Search) NewVariable(lb, ub int, name string) *Variable {
	id := len(s.vars)
	d := newDomain(id, s.trail, lb, ub)
	v := newVariable(id, name, d, s)
	s.vars = append(s.vars, v)
	s.trail.domains = append(s.trail.domains, d)
	if name != "" {
		s.varByName[name] = v
	}
	return v
}

// ConstVariable creates a variable fixed to a single value, excluded from
// default branching.
func (s *Search) ConstVariable(value int) *Variable {
	v := s.NewVariable(value, value, "")
	s.constants[v.ID()] = true
	return v
}

// VariableByName looks up a variable created with a non-empty name.
func (s *Search) VariableByName(name string) (*Variable, bool) {
	v, ok := s.varByName[name]
	return v, ok
}

// AddConstraint registers a constraint to be installed at the next Search
// root.
func (s *Search) AddConstraint(c Constraint) {
	s.constraints = append(s.constraints, c)
}

// AddObjective sets the objective to minimize.
func (s *Search) AddObjective(o Objective) {
	s.objective = o
}

// registerPropagator assigns p its id, appends it to the registry, arms
// its initial subscriptions, and enqueues it for a first pass.
func (s *Search) registerPropagator(p Propagator) {
	p.base().id = len(s.propagators)
	s.propagators = append(s.propagators, p)
	p.Listen(s)
	s.wake(p)
}

// wake is called by Variable.notifyListeners for every drained listener.
// If p is the propagator currently executing, the notification came from
// within p's own Propagate call: set reschedCurrent instead of
// enqueueing now, so a propagator that mutates variables it also
// listens on does not re-enter itself mid-call.
func (s *Search) wake(p Propagator) {
	if s.executing != nil && s.executing.ID() == p.ID() {
		s.reschedCurrent = true
		return
	}
	b := p.base()
	b.hasNewEvents = true
	if !b.queued {
		b.queued = true
		s.queue = append(s.queue, p)
	}
}

// runFixpoint drains the propagation FIFO to a fixpoint or to failure.
func (s *Search) runFixpoint() {
	for len(s.queue) > 0 {
		s.reschedCurrent = false
		p := s.queue[0]
		s.queue = s.queue[1:]
		b := p.base()
		b.queued = false
		b.hasNewEvents = false

		s.executing = p
		status := p.Propagate(s)
		s.executing = nil

		if status == StatusNormal {
			p.Listen(s)
			if s.failed {
				s.abortQueue()
				return
			}
			if s.reschedCurrent && !p.Idempotent() {
				b.queued = true
				s.queue = append(s.queue, p)
			}
		} else {
			if s.failed {
				p.Listen(s)
				s.abortQueue()
				return
			}
			p.Unlisten(s)
			if n := s.currentFrame(); n != nil {
				n.terminated = append(n.terminated, p)
			}
		}
	}
}

// abortQueue empties the FIFO, restoring queued=false and re-arming every
// propagator still waiting in it, so the next fixpoint round starts
// clean.
func (s *Search) abortQueue() {
	for _, p := range s.queue {
		p.base().queued = false
		p.Listen(s)
	}
	s.queue = s.queue[:0]
}

func (s *Search) currentFrame() *searchNode {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// restoreFrame undoes the propagator-registry bookkeeping recorded for a
// frame being popped: terminated propagators are re-armed, and any
// propagator created after the frame was entered (by a reification
// wrapper, say) is unlistened and discarded.
func (s *Search) restoreFrame(n *searchNode) {
	for _, p := range n.terminated {
		p.Listen(s)
	}
	for i := len(s.propagators) - 1; i >= n.nPropagatorsAtEntry; i-- {
		s.propagators[i].Unlisten(s)
	}
	s.propagators = s.propagators[:n.nPropagatorsAtEntry]
}

func (s *Search) branchableVars() []*Variable {
	if len(s.config.BranchableVars) > 0 {
		out := make([]*Variable, 0, len(s.config.BranchableVars))
		for _, name := range s.config.BranchableVars {
			if v, ok := s.varByName[name]; ok {
				out = append(out, v)
			}
		}
		return out
	}
	out := make([]*Variable, 0, len(s.vars))
	for _, v := range s.vars {
		if !s.constants[v.ID()] {
			out = append(out, v)
		}
	}
	return out
}

func (s *Search) collectUnassigned() []*Variable {
	var out []*Variable
	for _, v := range s.branchableVars() {
		if v.Size() > 1 {
			out = append(out, v)
		}
	}
	return out
}

func (s *Search) checkSatisfied() bool {
	for _, c := range s.constraints {
		if !c.Satisfied() {
			return false
		}
	}
	return true
}

func (s *Search) saveBest() {
	if s.bestSnapshot == nil {
		s.bestSnapshot = make([]int, len(s.vars))
		s.bestAssigned = make([]bool, len(s.vars))
	}
	for _, v := range s.vars {
		if v.IsAssigned() {
			s.bestSnapshot[v.ID()] = v.Value()
			s.bestAssigned[v.ID()] = true
		} else {
			s.bestAssigned[v.ID()] = false
		}
	}
}

func (s *Search) timeExpired() bool {
	if !s.hasDeadline {
		return false
	}
	return time.Now().After(s.deadline)
}

func (s *Search) debugf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// installAll builds every pending constraint's propagators and pushes the
// root frame. Called once, lazily, on the first Next().
func (s *Search) installAll() {
	for _, c := range s.constraints {
		c.install(s)
	}
	s.stack = append(s.stack, &searchNode{})
	s.started = true
	s.startTime = time.Now()
	if s.config.TimeLimitMillis > 0 {
		s.hasDeadline = true
		s.deadline = s.startTime.Add(time.Duration(s.config.TimeLimitMillis) * time.Millisecond)
	}
	s.stats.WholeTreeExplored = true
}

// Next runs the depth-first loop until it yields a solution, exhausts
// the tree, or the configured time limit elapses.
// Returns true iff a solution was produced (readable via the Variables'
// current, still-asserted domains).
func (s *Search) Next() bool {
	if s.running {
		panicInvalidUsage("a second concurrent search was started on this Solver")
	}
	s.running = true
	defer func() { s.running = false }()

	if !s.started {
		s.installAll()
	}

	for {
		if len(s.stack) == 0 {
			if s.objective != nil && !s.config.AllSolutions && s.haveBest && !s.emittedFinal {
				s.emittedFinal = true
				s.restoreBestAndStop()
				s.stats.TotalSolutionsReported++
				return true
			}
			return false
		}

		node := s.currentFrame()

		if node.variable == nil {
			// The time limit is consulted between propagation rounds and
			// before choosing branches, never mid-Propagate; pure
			// backtracking is always allowed to finish so an exhausted
			// tree is not misreported as truncated.
			if s.timeExpired() {
				s.stats.WholeTreeExplored = false
				return false
			}
			node.fixpointMark = s.trail.mark()
			node.nPropagatorsAtEntry = len(s.propagators)
			s.failed = false
			s.runFixpoint()

			if s.failed {
				s.debugf("propagation failed at depth %d", len(s.stack))
				s.trail.rollbackTo(node.fixpointMark)
				s.restoreFrame(node)
				s.popFrame()
				s.stats.Fails++
				continue
			}

			unassigned := s.collectUnassigned()
			if len(unassigned) == 0 {
				if !s.checkSatisfied() {
					s.stats.Fails++
					s.trail.rollbackTo(node.fixpointMark)
					s.restoreFrame(node)
					s.popFrame()
					continue
				}
				if s.objective == nil {
					s.popFrame()
					s.stats.TotalSolutionsReported++
					return true
				}
				val := s.objective.Value()
				if !s.haveBest || val < s.currentMin {
					s.haveBest = true
					s.currentMin = val
					s.saveBest()
					if s.config.AllSolutions {
						s.popFrame()
						s.stats.TotalSolutionsReported++
						return true
					}
				}
				s.trail.rollbackTo(node.fixpointMark)
				s.restoreFrame(node)
				s.popFrame()
				continue
			}

			if s.objective != nil && s.haveBest && s.objective.Bound() >= s.currentMin {
				s.trail.rollbackTo(node.fixpointMark)
				s.restoreFrame(node)
				s.popFrame()
				continue
			}

			v := s.config.VariableSelector.Select(unassigned)
			n := s.config.Brancher.NBranches(v)
			node.variable = v
			node.branch = 0
			node.nBranches = n
			s.updateDepthStats()
			continue
		}

		if node.branch > 0 {
			s.trail.rollbackTo(node.branchMark)
		}
		if node.branch == node.nBranches {
			s.debugf("branches exhausted at depth %d, backtracking", len(s.stack))
			s.trail.rollbackTo(node.fixpointMark)
			s.restoreFrame(node)
			s.popFrame()
			continue
		}
		if s.timeExpired() {
			s.stats.WholeTreeExplored = false
			return false
		}
		node.branchMark = s.trail.mark()
		s.config.Brancher.Branch(node.variable, node.branch)
		node.branch++
		s.stack = append(s.stack, &searchNode{})
		s.updateDepthStats()
	}
}

func (s *Search) popFrame() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Search) updateDepthStats() {
	s.stats.Depth = len(s.stack)
	if s.stats.Depth > s.stats.MaxDepth {
		s.stats.MaxDepth = s.stats.Depth
	}
}

// restoreBestAndStop re-asserts the best solution found when searching a
// minimization objective in non-streaming mode: once the stack empties,
// the recorded incumbent is re-assigned so the caller can read it, and
// it is emitted exactly once.
func (s *Search) restoreBestAndStop() {
	if !s.haveBest {
		return
	}
	for _, v := range s.vars {
		if s.bestAssigned[v.ID()] {
			v.Assign(s.bestSnapshot[v.ID()])
		}
	}
}

// Stats returns a copy of the current search statistics.
func (s *Search) Stats() Stats { return s.stats }
