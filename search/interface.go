// Package search implements a game-independent negascout (principal
// variation search) with iterative deepening.
package search

import "errors"

// Infinity is the magnitude of a decided position. An evaluator returns
// Infinity when the side to move has won and -Infinity when it has lost.
const Infinity = 2000000000

// MaxDepth bounds the search depth.
const MaxDepth = 64

var (
	// ErrAborted is returned when the stop predicate or the context ends a
	// search before the requested depth completed.
	ErrAborted = errors.New("search aborted")

	ErrDepthOutOfRange = errors.New("depth out of range")
)

// Child is a legal move together with the state it leads to.
type Child[S comparable, M any] struct {
	Move  M
	State S
}

// Game is the rule set the searcher drives. States are seen from the side
// to move; Apply and Expand return states seen from the next mover.
type Game[S comparable, M any] interface {
	// Expand appends every legal move from s to buf. The order must be
	// deterministic; the index of a child in this order identifies it in
	// the best-path table.
	Expand(s S, buf []Child[S, M]) []Child[S, M]
	// Apply plays m on s, returning false if m is illegal.
	Apply(s S, m M) (S, bool)
}

// Evaluator scores a state for the side to move. It must satisfy
// eval(flip(s)) == -eval(s) for undecided states and return +-Infinity for
// decided ones.
type Evaluator[S comparable] func(S) int

// IsTerminal reports whether score marks a decided position.
func IsTerminal(score int) bool {
	return score >= Infinity || score <= -Infinity
}
