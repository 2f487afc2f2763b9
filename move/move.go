package move

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/quoridor/board"
)

// MoveType is a type of move; a pawn advance or a wall placement.
type MoveType uint8

const (
	MoveTypeAdvance MoveType = iota
	MoveTypePut
)

// Orientation is the orientation of a wall.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "V"
	}
	return "H"
}

const (
	// layout
	// 16       8
	// xxxxxxxx xxxxxxxx
	// 000000to yyyyxxxx
	// t - type (0 advance, 1 put)
	// o - orientation (0 horizontal, 1 vertical); always 0 for advances
	// y - row
	// x - column
	//
	// An advance stores its destination cell; a put stores the upper-left
	// cell of the 2x2 block the wall separates.

	yShift           = 4
	orientationShift = 8
	typeShift        = 9

	coordBitmask = (1 << 4) - 1
)

// Move is a packed move. Moves are always expressed from the point of
// view of the side to move.
type Move uint16

// Invalid is never produced by NewAdvance or NewPut.
const Invalid Move = 0xFFFF

var ErrMalformedMove = errors.New("malformed move")

func pack(t MoveType, o Orientation, p board.Position) Move {
	return Move(uint16(t)<<typeShift | uint16(o)<<orientationShift |
		uint16(p.Y)<<yShift | uint16(p.X))
}

// NewAdvance creates a pawn move to the given cell.
func NewAdvance(to board.Position) Move {
	return pack(MoveTypeAdvance, Horizontal, to)
}

// NewPut creates a wall placement anchored at p.
func NewPut(o Orientation, p board.Position) Move {
	return pack(MoveTypePut, o, p)
}

func (m Move) Type() MoveType {
	return MoveType(m >> typeShift & 1)
}

func (m Move) Orientation() Orientation {
	return Orientation(m >> orientationShift & 1)
}

// Position is the destination of an advance, or the anchor of a put.
func (m Move) Position() board.Position {
	return board.Position{
		X: int8(m & coordBitmask),
		Y: int8(m >> yShift & coordBitmask),
	}
}

// Mirror re-expresses m from the other player's point of view.
func (m Move) Mirror() Move {
	p := m.Position()
	if m.Type() == MoveTypeAdvance {
		return NewAdvance(p.Mirror())
	}
	return NewPut(m.Orientation(), board.Position{
		X: board.WallSize - 1 - p.X,
		Y: board.WallSize - 1 - p.Y,
	})
}

func (m Move) String() string {
	if m == Invalid {
		return "(invalid)"
	}
	if m.Type() == MoveTypePut {
		return fmt.Sprintf("WALL %s %s", m.Orientation(), m.Position())
	}
	return fmt.Sprintf("MOVE %s", m.Position())
}

// Parse reads a move in the form "MOVE x y" or "WALL H|V x y".
// Coordinates are only checked for being small non-negative integers;
// legality is decided by the game state.
func Parse(s string) (Move, error) {
	return ParseFields(strings.Fields(s))
}

// ParseFields is Parse for an already split line.
func ParseFields(fields []string) (Move, error) {
	if len(fields) == 0 {
		return Invalid, fmt.Errorf("%w: empty", ErrMalformedMove)
	}
	switch strings.ToUpper(fields[0]) {
	case "MOVE":
		if len(fields) != 3 {
			return Invalid, fmt.Errorf("%w: MOVE takes x y", ErrMalformedMove)
		}
		p, err := parsePosition(fields[1], fields[2], board.Size)
		if err != nil {
			return Invalid, err
		}
		return NewAdvance(p), nil
	case "WALL":
		if len(fields) != 4 {
			return Invalid, fmt.Errorf("%w: WALL takes H|V x y", ErrMalformedMove)
		}
		var o Orientation
		switch strings.ToUpper(fields[1]) {
		case "H":
			o = Horizontal
		case "V":
			o = Vertical
		default:
			return Invalid, fmt.Errorf("%w: orientation %q", ErrMalformedMove, fields[1])
		}
		p, err := parsePosition(fields[2], fields[3], board.WallSize)
		if err != nil {
			return Invalid, err
		}
		return NewPut(o, p), nil
	}
	return Invalid, fmt.Errorf("%w: unknown command %q", ErrMalformedMove, fields[0])
}

func parsePosition(xs, ys string, limit int8) (board.Position, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return board.Position{}, fmt.Errorf("%w: %v", ErrMalformedMove, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return board.Position{}, fmt.Errorf("%w: %v", ErrMalformedMove, err)
	}
	p := board.Position{X: int8(x), Y: int8(y)}
	if x < 0 || y < 0 || x >= int(limit) || y >= int(limit) {
		return board.Position{}, fmt.Errorf("%w: (%d, %d) is off the board", ErrMalformedMove, x, y)
	}
	return p, nil
}
