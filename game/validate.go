package game

import (
	"errors"
	"fmt"

	"github.com/domino14/quoridor/board"
)

var ErrInvalidState = errors.New("invalid state")

// Validate checks a state built from outside input. States produced by
// Apply always pass.
func (s State) Validate() error {
	if !s.Me.InRange(board.Size) || !s.Opponent.InRange(board.Size) {
		return fmt.Errorf("%w: pawn off the board", ErrInvalidState)
	}
	if s.Me == s.Opponent {
		return fmt.Errorf("%w: both pawns on %v", ErrInvalidState, s.Me)
	}
	if s.MyWalls < 0 || s.MyWalls > InitialWalls ||
		s.OpponentWalls < 0 || s.OpponentWalls > InitialWalls {
		return fmt.Errorf("%w: wall counts %d/%d", ErrInvalidState, s.MyWalls, s.OpponentWalls)
	}
	if s.Turn != First && s.Turn != Second {
		return fmt.Errorf("%w: turn %d", ErrInvalidState, s.Turn)
	}
	h := s.HWalls.AndNot(board.GuardHWalls)
	v := s.VWalls.AndNot(board.GuardVWalls)
	if s.HWalls.And(board.GuardHWalls) != board.GuardHWalls ||
		s.VWalls.And(board.GuardVWalls) != board.GuardVWalls {
		return fmt.Errorf("%w: missing edge guards", ErrInvalidState)
	}
	if !h.AndNot(board.WallAnchors).IsEmpty() || !v.AndNot(board.WallAnchors).IsEmpty() {
		return fmt.Errorf("%w: wall outside the anchor area", ErrInvalidState)
	}
	if !h.And(v).IsEmpty() {
		return fmt.Errorf("%w: crossing walls", ErrInvalidState)
	}
	if !h.And(h.ShiftRight(1)).IsEmpty() || !v.And(v.ShiftDown(1)).IsEmpty() {
		return fmt.Errorf("%w: overlapping walls", ErrInvalidState)
	}
	placed := h.Count() + v.Count()
	if placed+int(s.MyWalls)+int(s.OpponentWalls) > 2*InitialWalls {
		return fmt.Errorf("%w: %d walls placed with %d/%d left",
			ErrInvalidState, placed, s.MyWalls, s.OpponentWalls)
	}
	if _, _, ok := s.Distances(); !ok {
		return fmt.Errorf("%w: a pawn cannot reach its goal", ErrInvalidState)
	}
	return nil
}
