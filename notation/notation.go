// Package notation reads and writes the plain-text position format used
// by match harnesses:
//
//	mx my ox oy mw ow
//	c c c c c c c c    (8 rows of 8 wall anchors)
//
// Coordinates are from the side to move's point of view. Each anchor cell
// is 0 (empty), 1 (horizontal wall) or 2 (vertical wall).
package notation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/domino14/quoridor/board"
	"github.com/domino14/quoridor/game"
)

var ErrMalformedState = errors.New("malformed state")

const (
	cellEmpty      = 0
	cellHorizontal = 1
	cellVertical   = 2
)

// Decoder reads consecutive states from a stream.
type Decoder struct {
	sc *bufio.Scanner
}

func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Decoder{sc: sc}
}

func (d *Decoder) next() (int, error) {
	if !d.sc.Scan() {
		if err := d.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	v, err := strconv.Atoi(d.sc.Text())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return v, nil
}

// Decode reads the next state. It returns io.EOF if the stream ends
// cleanly before a state starts, and io.ErrUnexpectedEOF if it ends
// inside one. The state is validated and marked as First to move.
func (d *Decoder) Decode() (game.State, error) {
	var header [6]int
	for i := range header {
		v, err := d.next()
		if err == io.EOF && i > 0 {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return game.State{}, err
		}
		header[i] = v
	}
	for _, v := range header {
		if v < -128 || v > 127 {
			return game.State{}, fmt.Errorf("%w: value %d out of range", ErrMalformedState, v)
		}
	}
	s := game.InitialState()
	s.Me = board.Position{X: int8(header[0]), Y: int8(header[1])}
	s.Opponent = board.Position{X: int8(header[2]), Y: int8(header[3])}
	s.MyWalls = int8(header[4])
	s.OpponentWalls = int8(header[5])

	for y := int8(0); y < board.WallSize; y++ {
		for x := int8(0); x < board.WallSize; x++ {
			v, err := d.next()
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			if err != nil {
				return game.State{}, err
			}
			p := board.Position{X: x, Y: y}
			switch v {
			case cellEmpty:
			case cellHorizontal:
				s.HWalls.Set(p)
			case cellVertical:
				s.VWalls.Set(p)
			default:
				return game.State{}, fmt.Errorf("%w: wall cell %d at %v", ErrMalformedState, v, p)
			}
		}
	}
	if err := s.Validate(); err != nil {
		return game.State{}, err
	}
	return s, nil
}

// ParseState reads a single state from a string.
func ParseState(text string) (game.State, error) {
	return NewDecoder(strings.NewReader(text)).Decode()
}

// FormatState writes s in the harness format. The result parses back to
// s with Turn set to First.
func FormatState(s game.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d %d %d %d %d\n", s.Me.X, s.Me.Y, s.Opponent.X, s.Opponent.Y,
		s.MyWalls, s.OpponentWalls)
	for y := int8(0); y < board.WallSize; y++ {
		for x := int8(0); x < board.WallSize; x++ {
			p := board.Position{X: x, Y: y}
			c := cellEmpty
			if s.HWallAt(p) {
				c = cellHorizontal
			} else if s.VWallAt(p) {
				c = cellVertical
			}
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
