package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quoridor/move"
)

var ErrIllegalMove = errors.New("illegal move")

// Orient converts a move between First's board coordinates and the
// coordinates seen by side. The conversion is its own inverse.
func Orient(m move.Move, side Side) move.Move {
	if side == Second {
		return m.Mirror()
	}
	return m
}

// Game is a played-out sequence of states. It keeps enough history to
// undo moves and to count repeated positions.
type Game struct {
	history []State
	moves   []move.Move
	seen    map[uint64]int
}

func NewGame(start State) *Game {
	g := &Game{
		history: []State{start},
		seen:    map[uint64]int{start.Hash(): 1},
	}
	return g
}

// State is the current position, from the side to move's point of view.
func (g *Game) State() State {
	return g.history[len(g.history)-1]
}

// PlayMove plays m, given from the side to move's point of view.
func (g *Game) PlayMove(m move.Move) error {
	if g.Over() {
		return fmt.Errorf("%w: game is over", ErrIllegalMove)
	}
	next, ok := g.State().Apply(m)
	if !ok {
		return fmt.Errorf("%w: %v", ErrIllegalMove, m)
	}
	g.history = append(g.history, next)
	g.moves = append(g.moves, m)
	g.seen[next.Hash()]++
	log.Debug().Str("move", m.String()).Int("turn", len(g.moves)).Msg("played-move")
	return nil
}

// Undo takes back the last move. It returns false at the start.
func (g *Game) Undo() bool {
	if len(g.moves) == 0 {
		return false
	}
	h := g.State().Hash()
	g.seen[h]--
	if g.seen[h] == 0 {
		delete(g.seen, h)
	}
	g.history = g.history[:len(g.history)-1]
	g.moves = g.moves[:len(g.moves)-1]
	return true
}

// Moves lists the moves played so far, each from its mover's point of
// view.
func (g *Game) Moves() []move.Move {
	return g.moves
}

// Turn is the number of moves played.
func (g *Game) Turn() int {
	return len(g.moves)
}

// Over reports whether a pawn reached its goal row.
func (g *Game) Over() bool {
	return g.State().Lost()
}

// Winner returns the side that reached its goal, if any.
func (g *Game) Winner() (Side, bool) {
	s := g.State()
	if !s.Lost() {
		return First, false
	}
	return s.Turn.Other(), true
}

// Repetitions is the number of times the current position has occurred.
func (g *Game) Repetitions() int {
	return g.seen[g.State().Hash()]
}
