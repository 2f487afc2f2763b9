package search

import (
	"fmt"
	"strings"
)

// PrincipalVariation replays the committed best-path line from root and
// returns the moves along it. The line stops early where a position was
// decided before the search depth.
func (s *Searcher[S, M]) PrincipalVariation(root S) []M {
	var moves []M
	st := root
	var buf []Child[S, M]
	for _, idx := range s.path.Line() {
		buf = s.game.Expand(st, buf[:0])
		if idx < 0 || int(idx) >= len(buf) {
			break
		}
		moves = append(moves, buf[idx].Move)
		st = buf[idx].State
	}
	return moves
}

// PVLine is a principal variation with its score, for display.
type PVLine[M any] struct {
	Moves []M
	Score int
}

func (p PVLine[M]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %d\n", p.Score)
	for i, m := range p.Moves {
		fmt.Fprintf(&sb, "%d: %v\n", i+1, m)
	}
	return sb.String()
}

// NLBString renders the line without line breaks.
func (p PVLine[M]) NLBString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %d; ", p.Score)
	for i, m := range p.Moves {
		fmt.Fprintf(&sb, "%d: %v; ", i+1, m)
	}
	return sb.String()
}
