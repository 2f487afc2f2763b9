package game

import (
	"fmt"
	"strings"

	"github.com/domino14/quoridor/board"
)

// FirstView returns the state as seen by First, whoever is to move.
func (s State) FirstView() State {
	if s.Turn == Second {
		return s.Flip()
	}
	return s
}

// ToDisplayText draws the board from First's side: First is '^' and
// heads up, Second is 'v' and heads down. Cells the side to move may step
// to are marked 'o'.
func (s State) ToDisplayText() string {
	v := s.FirstView()
	first, second := v.Me, v.Opponent
	firstWalls, secondWalls := v.MyWalls, v.OpponentWalls

	targets := map[board.Position]bool{}
	for _, t := range s.AdvanceTargets(nil) {
		if s.Turn == Second {
			t = t.Mirror()
		}
		targets[t] = true
	}

	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < board.Size; x++ {
		fmt.Fprintf(&sb, "%d ", x)
	}
	sb.WriteString("\n  |" + strings.Repeat("-", 2*board.Size-1) + "|\n")
	for y := int8(0); y < board.Size; y++ {
		fmt.Fprintf(&sb, "%d |", y)
		for x := int8(0); x < board.Size; x++ {
			p := board.Position{X: x, Y: y}
			switch {
			case p == first:
				sb.WriteByte('^')
			case p == second:
				sb.WriteByte('v')
			case targets[p]:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
			if v.HasWall(p, board.Right) {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\n  |")
		for x := int8(0); x < board.Size; x++ {
			p := board.Position{X: x, Y: y}
			if v.HasWall(p, board.Down) {
				sb.WriteByte('-')
			} else {
				sb.WriteByte(' ')
			}
			switch {
			case v.HWallAt(p) && p.InRange(board.WallSize):
				sb.WriteByte('-')
			case v.VWallAt(p) && p.InRange(board.WallSize):
				sb.WriteByte('|')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Remaining walls: {first: %d, second: %d}\n", firstWalls, secondWalls)
	fmt.Fprintf(&sb, "To move: %s\n", s.Turn)
	return sb.String()
}
