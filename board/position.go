package board

import "fmt"

// Size is the number of cells per side.
const Size = 9

// Position is a cell coordinate. X grows to the right, Y grows downward.
// The side to move always starts on row Size-1 and heads for row 0.
type Position struct {
	X, Y int8
}

func (p Position) String() string {
	return fmt.Sprintf("%d %d", p.X, p.Y)
}

func (p Position) Add(q Position) Position {
	return Position{p.X + q.X, p.Y + q.Y}
}

func (p Position) Sub(q Position) Position {
	return Position{p.X - q.X, p.Y - q.Y}
}

// Rotate turns p by n quarter turns around the origin. One quarter turn
// maps (1, 0) to (0, -1), i.e. Right to Up.
func (p Position) Rotate(n int) Position {
	switch n & 3 {
	case 1:
		return Position{p.Y, -p.X}
	case 2:
		return Position{-p.X, -p.Y}
	case 3:
		return Position{-p.Y, p.X}
	}
	return p
}

// InRange reports whether both coordinates lie in [0, n).
func (p Position) InRange(n int8) bool {
	return p.X >= 0 && p.X < n && p.Y >= 0 && p.Y < n
}

// Mirror reflects a cell through the centre of the board.
func (p Position) Mirror() Position {
	return Position{Size - 1 - p.X, Size - 1 - p.Y}
}

// Direction is a step direction. The values are quarter-turn counts from
// Right, so Direction(d).Step() == Position{1, 0}.Rotate(d).
type Direction uint8

const (
	Right Direction = iota
	Up
	Left
	Down
)

var directionNames = [4]string{"right", "up", "left", "down"}

func (d Direction) String() string {
	return directionNames[d&3]
}

// Step returns the unit vector for d.
func (d Direction) Step() Position {
	return Position{1, 0}.Rotate(int(d))
}

// Clockwise and CounterClockwise return the perpendicular directions.
func (d Direction) Clockwise() Direction {
	return (d + 3) & 3
}

func (d Direction) CounterClockwise() Direction {
	return (d + 1) & 3
}
