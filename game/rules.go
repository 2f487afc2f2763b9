package game

import (
	"github.com/domino14/quoridor/board"
	"github.com/domino14/quoridor/move"
)

var (
	forward   = board.Position{X: 1, Y: 0}
	jump      = board.Position{X: 2, Y: 0}
	sideRight = board.Position{X: 1, Y: 1}
	sideLeft  = board.Position{X: 1, Y: -1}
)

// Apply validates m and returns the resulting state, already flipped to
// the next mover's point of view. ok is false for an illegal move, and for
// every move once the game is decided.
func (s State) Apply(m move.Move) (State, bool) {
	if m == move.Invalid || s.Lost() {
		return State{}, false
	}
	if m.Type() == move.MoveTypePut {
		return s.PlaceWall(m.Orientation(), m.Position())
	}
	return s.Advance(m.Position())
}

// Advance moves Me to the given cell if that is a legal pawn move.
func (s State) Advance(to board.Position) (State, bool) {
	if !s.CanAdvance(to) {
		return State{}, false
	}
	next := s
	next.Me = to
	return next.Flip(), true
}

// CanAdvance checks a pawn move: a single step, a straight jump over an
// adjacent opponent, or a diagonal step around the opponent when a wall
// or the board edge stops the straight jump.
func (s State) CanAdvance(to board.Position) bool {
	if !to.InRange(board.Size) || to == s.Opponent {
		return false
	}
	diff := to.Sub(s.Me)
	for d := board.Right; d <= board.Down; d++ {
		// Express the move in a frame where d points right.
		rel := diff.Rotate(-int(d))
		if s.HasWall(s.Me, d) {
			continue
		}
		if rel == forward {
			return true
		}
		if s.Opponent != s.Me.Add(d.Step()) {
			continue
		}
		if !s.HasWall(s.Opponent, d) {
			if rel == jump {
				return true
			}
			continue
		}
		if rel == sideRight && !s.HasWall(s.Opponent, d.Clockwise()) {
			return true
		}
		if rel == sideLeft && !s.HasWall(s.Opponent, d.CounterClockwise()) {
			return true
		}
	}
	return false
}

// AdvanceTargets appends every legal pawn destination to buf, in
// direction order Right, Up, Left, Down.
func (s State) AdvanceTargets(buf []board.Position) []board.Position {
	for d := board.Right; d <= board.Down; d++ {
		if s.HasWall(s.Me, d) {
			continue
		}
		step := s.Me.Add(d.Step())
		if step != s.Opponent {
			buf = append(buf, step)
			continue
		}
		if !s.HasWall(s.Opponent, d) {
			buf = append(buf, step.Add(d.Step()))
			continue
		}
		for _, side := range [2]board.Direction{d.Clockwise(), d.CounterClockwise()} {
			if !s.HasWall(s.Opponent, side) {
				buf = append(buf, step.Add(side.Step()))
			}
		}
	}
	return buf
}

// WallCandidates returns the anchors where a wall of orientation o fits
// geometrically: not on top of, crossing, or overlapping an existing
// wall. Reachability is not checked.
func (s State) WallCandidates(o move.Orientation) board.BitBoard {
	if o == move.Horizontal {
		return board.WallAnchors.
			AndNot(s.HWalls).
			AndNot(s.HWalls.ShiftRight(1)).
			AndNot(s.HWalls.ShiftLeft(1)).
			AndNot(s.VWalls)
	}
	return board.WallAnchors.
		AndNot(s.VWalls).
		AndNot(s.VWalls.ShiftDown(1)).
		AndNot(s.VWalls.ShiftUp(1)).
		AndNot(s.HWalls)
}

// PlaceWall puts a wall anchored at p, if Me has walls left, the wall
// fits, and both pawns can still reach their goal rows.
func (s State) PlaceWall(o move.Orientation, p board.Position) (State, bool) {
	if s.MyWalls <= 0 || !p.InRange(board.WallSize) {
		return State{}, false
	}
	if s.HWalls.At(p) || s.VWalls.At(p) {
		return State{}, false
	}
	next := s
	if o == move.Horizontal {
		if s.HWalls.At(board.Position{X: p.X - 1, Y: p.Y}) ||
			s.HWalls.At(board.Position{X: p.X + 1, Y: p.Y}) {
			return State{}, false
		}
		next.HWalls.Set(p)
	} else {
		if s.VWalls.At(board.Position{X: p.X, Y: p.Y - 1}) ||
			s.VWalls.At(board.Position{X: p.X, Y: p.Y + 1}) {
			return State{}, false
		}
		next.VWalls.Set(p)
	}
	if _, _, ok := next.Distances(); !ok {
		return State{}, false
	}
	next.MyWalls--
	return next.Flip(), true
}
