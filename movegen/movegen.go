// Package movegen enumerates Quoridor moves for the searcher.
package movegen

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quoridor/board"
	"github.com/domino14/quoridor/equity"
	"github.com/domino14/quoridor/game"
	"github.com/domino14/quoridor/move"
	"github.com/domino14/quoridor/search"
)

// Child is a move and the state it leads to, seen by the next mover.
type Child = search.Child[game.State, move.Move]

// Play is a generated move with its static score for the side that made
// it.
type Play struct {
	Move  move.Move
	Next  game.State
	Score int
}

// Generator implements search.Game for Quoridor.
type Generator struct {
	verify  bool
	targets []board.Position
	plays   []Play
}

func NewGenerator() *Generator {
	return &Generator{targets: make([]board.Position, 0, 8)}
}

// SetVerify makes Expand check every generated pair against Apply and
// panic on a mismatch.
func (gen *Generator) SetVerify(v bool) {
	gen.verify = v
}

// Expand appends every legal move of s: pawn moves first, then horizontal
// and vertical walls in anchor order. Walls that would cut a pawn off
// from its goal are left out.
func (gen *Generator) Expand(s game.State, buf []Child) []Child {
	if s.Lost() {
		return buf
	}
	start := len(buf)
	gen.targets = s.AdvanceTargets(gen.targets[:0])
	for _, to := range gen.targets {
		next := s
		next.Me = to
		buf = append(buf, Child{Move: move.NewAdvance(to), State: next.Flip()})
	}
	if s.MyWalls > 0 {
		for _, o := range [2]move.Orientation{move.Horizontal, move.Vertical} {
			s.WallCandidates(o).ForEach(func(p board.Position) {
				if next, ok := s.PlaceWall(o, p); ok {
					buf = append(buf, Child{Move: move.NewPut(o, p), State: next})
				}
			})
		}
	}
	if gen.verify {
		gen.check(s, buf[start:])
	}
	return buf
}

// Apply plays m on s.
func (gen *Generator) Apply(s game.State, m move.Move) (game.State, bool) {
	return s.Apply(m)
}

func (gen *Generator) check(s game.State, children []Child) {
	for _, c := range children {
		next, ok := s.Apply(c.Move)
		if !ok || next != c.State {
			log.Error().Str("move", c.Move.String()).Bool("legal", ok).
				Msg("generated-move-mismatch")
			panic(fmt.Sprintf("generator and Apply disagree on %v from\n%s", c.Move, s.ToDisplayText()))
		}
	}
}

// GenAll generates every legal play of s scored by eval for the side to
// move, best first. The returned slice is reused by the next call.
func (gen *Generator) GenAll(s game.State, eval equity.Evaluator) []Play {
	children := gen.Expand(s, nil)
	gen.plays = gen.plays[:0]
	for _, c := range children {
		gen.plays = append(gen.plays, Play{Move: c.Move, Next: c.State, Score: -eval.Evaluate(c.State)})
	}
	slices.SortStableFunc(gen.plays, func(a, b Play) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return gen.plays
}

var _ search.Game[game.State, move.Move] = (*Generator)(nil)
