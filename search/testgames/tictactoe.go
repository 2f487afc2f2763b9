package testgames

import (
	"strings"

	"github.com/domino14/quoridor/search"
)

// TicTacToeState is a 3x3 board from the side to move's view: 1 marks its
// own stones, -1 the opponent's.
type TicTacToeState [9]int8

// TicTacToeMove is a cell index 0..8.
type TicTacToeMove int8

var lines = [8][3]int8{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func (s TicTacToeState) String() string {
	var sb strings.Builder
	for i, c := range s {
		switch c {
		case 1:
			sb.WriteByte('o')
		case -1:
			sb.WriteByte('x')
		default:
			sb.WriteByte('.')
		}
		if i%3 == 2 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (s TicTacToeState) hasLine(who int8) bool {
	for _, l := range lines {
		if s[l[0]] == who && s[l[1]] == who && s[l[2]] == who {
			return true
		}
	}
	return false
}

func (s TicTacToeState) flip() TicTacToeState {
	for i := range s {
		s[i] = -s[i]
	}
	return s
}

type TicTacToe struct{}

func (TicTacToe) Expand(s TicTacToeState, buf []search.Child[TicTacToeState, TicTacToeMove]) []search.Child[TicTacToeState, TicTacToeMove] {
	if s.hasLine(-1) {
		return buf
	}
	for i := range s {
		if s[i] != 0 {
			continue
		}
		next := s
		next[i] = 1
		buf = append(buf, search.Child[TicTacToeState, TicTacToeMove]{
			Move:  TicTacToeMove(i),
			State: next.flip(),
		})
	}
	return buf
}

func (TicTacToe) Apply(s TicTacToeState, m TicTacToeMove) (TicTacToeState, bool) {
	if m < 0 || m > 8 || s[m] != 0 || s.hasLine(-1) {
		return TicTacToeState{}, false
	}
	s[m] = 1
	return s.flip(), true
}

// TicTacToeEval counts lines still open for each side.
func TicTacToeEval(s TicTacToeState) int {
	if s.hasLine(-1) {
		return -search.Infinity
	}
	score := 0
	for _, l := range lines {
		var mine, theirs bool
		for _, c := range l {
			mine = mine || s[c] == 1
			theirs = theirs || s[c] == -1
		}
		switch {
		case mine && !theirs:
			score++
		case theirs && !mine:
			score--
		}
	}
	return score
}
