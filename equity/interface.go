// Package equity scores Quoridor positions for the side to move.
package equity

import "github.com/domino14/quoridor/game"

// Evaluator scores a state from the side to move's point of view. Decided
// positions score +-search.Infinity; every other score is antisymmetric
// under game.State.Flip.
type Evaluator interface {
	Evaluate(s game.State) int
}

// DefaultDistanceWeight is the value of one step of path length.
const DefaultDistanceWeight = 100000
