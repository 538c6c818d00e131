// Package cp provides a finite-domain constraint programming engine:
// reversible integer-domain variables, a propagator/event protocol, a
// depth-first search engine with checkpoint/rollback, and a handful of
// propagators with non-trivial algorithmic content (AllDifferent arc
// consistency, bin packing, spanning-tree reasoning).
package cp

import "errors"

// ErrFailure marks a backtrackable inconsistency in the current partial
// assignment. Domain mutations report it by setting the shared search
// state's failed flag; propagators never return it directly.
var ErrFailure = errors.New("cp: domain failure")

// ErrInvalidValue describes an operation that targets a value outside a
// domain's valid range. No function in this package returns it: Domain
// and Variable mutations treat such a value as absent instead.
var ErrInvalidValue = errors.New("cp: value out of domain range")

// ModelError is a fatal, non-backtrackable error describing a malformed
// model: an unknown variable reference, a shape mismatch between a
// constraint and its arguments, or (for a front end) an unsupported
// constraint id. ModelError is never recovered by the engine.
type ModelError struct {
	Msg string
}

func (e *ModelError) Error() string { return "cp: model error: " + e.Msg }

// InvalidUsageError reports programmer misuse of the API: reading Value()
// of an unassigned variable, or opening a second concurrent search on the
// same Solver. These are not backtrackable conditions and are raised as
// panics at the call site that violated the contract.
type InvalidUsageError struct {
	Msg string
}

func (e *InvalidUsageError) Error() string { return "cp: invalid usage: " + e.Msg }

func panicInvalidUsage(msg string) {
	panic(&InvalidUsageError{Msg: msg})
}
