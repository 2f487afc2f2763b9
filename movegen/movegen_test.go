package movegen

import (
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/domino14/quoridor/board"
	"github.com/domino14/quoridor/equity"
	"github.com/domino14/quoridor/game"
	"github.com/domino14/quoridor/move"
)

func TestOpeningMoveCount(t *testing.T) {
	is := is.New(t)
	gen := NewGenerator()
	children := gen.Expand(game.InitialState(), nil)
	// Three pawn moves plus every anchor in both orientations.
	is.Equal(len(children), 3+2*board.WallSize*board.WallSize)
	is.Equal(children[0].Move.Type(), move.MoveTypeAdvance)
	is.Equal(children[3].Move.Type(), move.MoveTypePut)
}

func TestExpandAgreesWithApply(t *testing.T) {
	is := is.New(t)
	gen := NewGenerator()
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	var buf []Child
	for g := 0; g < 30; g++ {
		s := game.InitialState()
		for ply := 0; ply < 100 && !s.Lost(); ply++ {
			buf = gen.Expand(s, buf[:0])
			if len(buf) == 0 {
				break
			}
			seen := map[move.Move]bool{}
			for _, c := range buf {
				is.True(!seen[c.Move])
				seen[c.Move] = true
				next, ok := gen.Apply(s, c.Move)
				is.True(ok)
				is.Equal(next, c.State)
				is.Equal(next.Flip().Flip(), next)
			}
			// Nothing legal is left out.
			for x := int8(0); x < board.Size; x++ {
				for y := int8(0); y < board.Size; y++ {
					for _, m := range []move.Move{
						move.NewAdvance(board.Position{X: x, Y: y}),
						move.NewPut(move.Horizontal, board.Position{X: x, Y: y}),
						move.NewPut(move.Vertical, board.Position{X: x, Y: y}),
					} {
						_, ok := s.Apply(m)
						is.Equal(ok, seen[m])
					}
				}
			}
			s = buf[rng.Intn(len(buf))].State
		}
	}
}

func TestVerifyMode(t *testing.T) {
	is := is.New(t)
	gen := NewGenerator()
	gen.SetVerify(true)
	s := game.InitialState()
	for i := 0; i < 12; i++ {
		children := gen.Expand(s, nil)
		is.True(len(children) > 0)
		s = children[len(children)/2].State
	}
}

func TestNoMovesOnceDecided(t *testing.T) {
	is := is.New(t)
	s := game.InitialState()
	s.Me = board.Position{X: 2, Y: 1}
	s, ok := s.Apply(move.NewAdvance(board.Position{X: 2, Y: 0}))
	is.True(ok)
	gen := NewGenerator()
	is.Equal(len(gen.Expand(s, nil)), 0)
	_, ok = gen.Apply(s, move.NewAdvance(board.Position{X: 4, Y: 7}))
	is.True(!ok)
}

func TestGenAllSorted(t *testing.T) {
	is := is.New(t)
	gen := NewGenerator()
	plays := gen.GenAll(game.InitialState(), equity.NewPathCalculator(equity.DefaultDistanceWeight))
	is.Equal(len(plays), 131)
	for i := 1; i < len(plays); i++ {
		is.True(plays[i-1].Score >= plays[i].Score)
	}
	// Stepping forward is the best static move on an empty board.
	is.Equal(plays[0].Move, move.NewAdvance(board.Position{X: 4, Y: 7}))
}
