package game

import (
	"encoding/binary"

	"github.com/cespare/xxhash"

	"github.com/domino14/quoridor/board"
)

// Side is a physical player. First starts on the bottom row.
type Side uint8

const (
	First Side = iota
	Second
)

func (s Side) Other() Side {
	return s ^ 1
}

func (s Side) String() string {
	if s == Second {
		return "second"
	}
	return "first"
}

// InitialWalls is the number of walls each player starts with.
const InitialWalls = 10

// State is a position seen from the side to move. Me always heads for
// row 0 and Opponent for row 8; Turn records which physical player Me is.
// After every move the state is flipped so that the next mover becomes Me.
type State struct {
	Me            board.Position
	Opponent      board.Position
	MyWalls       int8
	OpponentWalls int8
	Turn          Side
	// HWalls and VWalls hold wall anchors plus the fixed guard walls
	// around the board edge.
	HWalls board.BitBoard
	VWalls board.BitBoard
}

// InitialState is the starting position with First to move.
func InitialState() State {
	return State{
		Me:            board.Position{X: 4, Y: board.Size - 1},
		Opponent:      board.Position{X: 4, Y: 0},
		MyWalls:       InitialWalls,
		OpponentWalls: InitialWalls,
		Turn:          First,
		HWalls:        board.GuardHWalls,
		VWalls:        board.GuardVWalls,
	}
}

// HWallAt reports a horizontal wall anchored at p, or a guard wall.
func (s State) HWallAt(p board.Position) bool {
	return s.HWalls.At(p)
}

// VWallAt reports a vertical wall anchored at p, or a guard wall.
func (s State) VWallAt(p board.Position) bool {
	return s.VWalls.At(p)
}

// HFullWall has bit p set when the step p -> p+(0,1) is blocked.
func (s State) HFullWall() board.BitBoard {
	return s.HWalls.Or(s.HWalls.ShiftRight(1))
}

// VFullWall has bit p set when the step p -> p+(1,0) is blocked.
func (s State) VFullWall() board.BitBoard {
	return s.VWalls.Or(s.VWalls.ShiftDown(1))
}

// HasWall reports whether one step from p in direction d is blocked,
// including by the board edge.
func (s State) HasWall(p board.Position, d board.Direction) bool {
	switch d {
	case board.Right:
		return s.vBlocked(p)
	case board.Left:
		return s.vBlocked(board.Position{X: p.X - 1, Y: p.Y})
	case board.Down:
		return s.hBlocked(p)
	default:
		return s.hBlocked(board.Position{X: p.X, Y: p.Y - 1})
	}
}

func (s State) hBlocked(p board.Position) bool {
	return s.HWalls.At(p) || s.HWalls.At(board.Position{X: p.X - 1, Y: p.Y})
}

func (s State) vBlocked(p board.Position) bool {
	return s.VWalls.At(p) || s.VWalls.At(board.Position{X: p.X, Y: p.Y - 1})
}

// Flip returns the same position seen by the other player: both pawns
// and all walls are reflected through the centre of the board and the
// wall counts are exchanged.
func (s State) Flip() State {
	return State{
		Me:            s.Opponent.Mirror(),
		Opponent:      s.Me.Mirror(),
		MyWalls:       s.OpponentWalls,
		OpponentWalls: s.MyWalls,
		Turn:          s.Turn.Other(),
		HWalls:        s.HWalls.Reverse(),
		VWalls:        s.VWalls.Reverse(),
	}
}

// Lost reports whether the previous mover already reached its goal row.
func (s State) Lost() bool {
	return s.Opponent.Y == board.Size-1
}

// Distances returns the shortest path length to the goal row for both
// pawns. ok is false if either pawn is cut off.
func (s State) Distances() (mine, theirs int, ok bool) {
	hf, vf := s.HFullWall(), s.VFullWall()
	mp := board.PotentialSearch(hf, vf, board.MyGoal, board.OneHot(s.Me))
	if mp == board.Unreachable {
		return 0, 0, false
	}
	op := board.PotentialSearch(hf, vf, board.OneHot(s.Opponent), board.OpponentGoal)
	if op == board.Unreachable {
		return 0, 0, false
	}
	return mp + int(s.Me.Y), op + board.Size - 1 - int(s.Opponent.Y), true
}

// MyDistance is the number of steps Me needs without jumps.
func (s State) MyDistance() (int, bool) {
	ps := board.PotentialSearch(s.HFullWall(), s.VFullWall(), board.MyGoal, board.OneHot(s.Me))
	if ps == board.Unreachable {
		return 0, false
	}
	return ps + int(s.Me.Y), true
}

// OpponentDistance is the number of steps Opponent needs without jumps.
func (s State) OpponentDistance() (int, bool) {
	ps := board.PotentialSearch(s.HFullWall(), s.VFullWall(), board.OneHot(s.Opponent), board.OpponentGoal)
	if ps == board.Unreachable {
		return 0, false
	}
	return ps + board.Size - 1 - int(s.Opponent.Y), true
}

// Hash is a 64-bit digest of the full state, side to move included.
func (s State) Hash() uint64 {
	var buf [39]byte
	buf[0] = byte(s.Me.X)
	buf[1] = byte(s.Me.Y)
	buf[2] = byte(s.Opponent.X)
	buf[3] = byte(s.Opponent.Y)
	buf[4] = byte(s.MyWalls)
	buf[5] = byte(s.OpponentWalls)
	buf[6] = byte(s.Turn)
	binary.LittleEndian.PutUint64(buf[7:], s.HWalls[0])
	binary.LittleEndian.PutUint64(buf[15:], s.HWalls[1])
	binary.LittleEndian.PutUint64(buf[23:], s.VWalls[0])
	binary.LittleEndian.PutUint64(buf[31:], s.VWalls[1])
	return xxhash.Sum64(buf[:])
}
