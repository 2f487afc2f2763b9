package game

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"

	"github.com/domino14/quoridor/board"
	"github.com/domino14/quoridor/move"
)

func pos(x, y int8) board.Position {
	return board.Position{X: x, Y: y}
}

func legalMoves(s State) []move.Move {
	var moves []move.Move
	for _, t := range s.AdvanceTargets(nil) {
		moves = append(moves, move.NewAdvance(t))
	}
	for _, o := range []move.Orientation{move.Horizontal, move.Vertical} {
		s.WallCandidates(o).ForEach(func(p board.Position) {
			if _, ok := s.PlaceWall(o, p); ok {
				moves = append(moves, move.NewPut(o, p))
			}
		})
	}
	return moves
}

// randomStates plays random games and returns every state seen.
func randomStates(seed byte, games, plies int) []State {
	key := make([]byte, 32)
	key[0] = seed
	rng := frand.NewCustom(key, 1024, 12)
	var states []State
	for g := 0; g < games; g++ {
		s := InitialState()
		for p := 0; p < plies && !s.Lost(); p++ {
			states = append(states, s)
			moves := legalMoves(s)
			if len(moves) == 0 {
				break
			}
			m := moves[rng.Intn(len(moves))]
			next, ok := s.Apply(m)
			if !ok {
				panic("generated move rejected: " + m.String())
			}
			s = next
		}
		states = append(states, s)
	}
	return states
}

func TestInitialState(t *testing.T) {
	is := is.New(t)
	s := InitialState()
	is.NoErr(s.Validate())
	mine, ok := s.MyDistance()
	is.True(ok)
	is.Equal(mine, 8)
	theirs, ok := s.OpponentDistance()
	is.True(ok)
	is.Equal(theirs, 8)
	a, b, ok := s.Distances()
	is.True(ok)
	is.Equal([]int{a, b}, []int{8, 8})
	is.True(!s.Lost())
	is.Equal(s.Flip().Flip(), s)
	is.Equal(s.Flip().Turn, Second)
}

func TestFlipIsAnInvolution(t *testing.T) {
	is := is.New(t)
	for _, s := range randomStates(1, 20, 80) {
		f := s.Flip()
		is.Equal(f.Flip(), s)
		is.Equal(f.Me, s.Opponent.Mirror())
		is.Equal(f.MyWalls, s.OpponentWalls)
		m1, o1, ok1 := s.Distances()
		m2, o2, ok2 := f.Distances()
		is.True(ok1 && ok2)
		is.Equal(m1, o2)
		is.Equal(o1, m2)
		is.NoErr(s.Validate())
	}
}

func TestFullWallMasks(t *testing.T) {
	is := is.New(t)
	s := InitialState()
	s, ok := s.PlaceWall(move.Horizontal, pos(2, 3))
	is.True(ok)
	s = s.Flip()
	is.True(s.HWallAt(pos(2, 3)))
	is.True(s.HFullWall().At(pos(2, 3)))
	is.True(s.HFullWall().At(pos(3, 3)))
	is.True(!s.HFullWall().At(pos(4, 3)))
	is.True(s.HasWall(pos(2, 3), board.Down))
	is.True(s.HasWall(pos(3, 4), board.Up))
	is.True(!s.HasWall(pos(4, 4), board.Up))

	s, ok = s.PlaceWall(move.Vertical, pos(5, 5))
	is.True(ok)
	s = s.Flip()
	is.True(s.VFullWall().At(pos(5, 5)))
	is.True(s.VFullWall().At(pos(5, 6)))
	is.True(s.HasWall(pos(5, 6), board.Right))
	is.True(s.HasWall(pos(6, 5), board.Left))
	is.True(!s.HasWall(pos(6, 7), board.Left))
}

func TestEdgesAreWalls(t *testing.T) {
	is := is.New(t)
	s := InitialState()
	for i := int8(0); i < board.Size; i++ {
		is.True(s.HasWall(pos(i, 0), board.Up))
		is.True(s.HasWall(pos(i, board.Size-1), board.Down))
		is.True(s.HasWall(pos(0, i), board.Left))
		is.True(s.HasWall(pos(board.Size-1, i), board.Right))
	}
	is.True(!s.HasWall(pos(4, 4), board.Up))
}

func TestOpeningAdvances(t *testing.T) {
	is := is.New(t)
	s := InitialState()
	assert.ElementsMatch(t, []board.Position{pos(5, 8), pos(4, 7), pos(3, 8)}, s.AdvanceTargets(nil))
	next, ok := s.Apply(move.NewAdvance(pos(4, 7)))
	is.True(ok)
	is.Equal(next.Opponent, pos(4, 1))
	is.Equal(next.Me, pos(4, 8))
	is.Equal(next.Turn, Second)
	_, ok = s.Apply(move.NewAdvance(pos(4, 6)))
	is.True(!ok)
	_, ok = s.Apply(move.NewAdvance(pos(3, 7)))
	is.True(!ok)
}

func TestStraightJump(t *testing.T) {
	s := InitialState()
	s.Me = pos(4, 5)
	s.Opponent = pos(4, 4)
	assert.ElementsMatch(t, []board.Position{pos(5, 5), pos(4, 3), pos(3, 5), pos(4, 6)}, s.AdvanceTargets(nil))
	assert.True(t, s.CanAdvance(pos(4, 3)))
	assert.False(t, s.CanAdvance(pos(4, 4)))
}

func TestDiagonalJumpBehindWall(t *testing.T) {
	s := InitialState()
	s.Me = pos(4, 5)
	s.Opponent = pos(4, 4)
	s.MyWalls = 8
	s.HWalls.Set(pos(3, 3))
	assert.NoError(t, s.Validate())
	assert.ElementsMatch(t,
		[]board.Position{pos(5, 5), pos(3, 5), pos(4, 6), pos(3, 4), pos(5, 4)},
		s.AdvanceTargets(nil))
	assert.False(t, s.CanAdvance(pos(4, 3)))

	// A wall on one side of the opponent leaves only the other diagonal.
	s.VWalls.Set(pos(4, 3))
	assert.NoError(t, s.Validate())
	assert.True(t, s.CanAdvance(pos(3, 4)))
	assert.False(t, s.CanAdvance(pos(5, 4)))
}

func TestDiagonalJumpAtEdge(t *testing.T) {
	s := InitialState()
	s.Me = pos(4, 1)
	s.Opponent = pos(4, 0)
	assert.ElementsMatch(t,
		[]board.Position{pos(5, 1), pos(3, 1), pos(4, 2), pos(3, 0), pos(5, 0)},
		s.AdvanceTargets(nil))
}

func TestNoJumpThroughWallInFront(t *testing.T) {
	s := InitialState()
	s.Me = pos(4, 5)
	s.Opponent = pos(4, 4)
	// Wall between the two pawns.
	s.HWalls.Set(pos(4, 4))
	s.MyWalls = 9
	assert.NoError(t, s.Validate())
	for _, p := range []board.Position{pos(4, 3), pos(3, 4), pos(5, 4), pos(4, 4)} {
		assert.False(t, s.CanAdvance(p), p.String())
	}
}

func TestAdvanceTargetsAgreeWithCanAdvance(t *testing.T) {
	is := is.New(t)
	for _, s := range randomStates(2, 20, 80) {
		if s.Lost() {
			continue
		}
		targets := map[board.Position]bool{}
		for _, p := range s.AdvanceTargets(nil) {
			is.True(!targets[p])
			targets[p] = true
		}
		for x := int8(-1); x <= board.Size; x++ {
			for y := int8(-1); y <= board.Size; y++ {
				p := pos(x, y)
				is.Equal(s.CanAdvance(p), targets[p])
			}
		}
	}
}

func TestWallCandidatesCoverLegalWalls(t *testing.T) {
	is := is.New(t)
	for _, s := range randomStates(3, 10, 60) {
		for _, o := range []move.Orientation{move.Horizontal, move.Vertical} {
			cand := s.WallCandidates(o)
			for x := int8(-1); x <= board.WallSize; x++ {
				for y := int8(-1); y <= board.WallSize; y++ {
					_, ok := s.PlaceWall(o, pos(x, y))
					if ok {
						is.True(cand.At(pos(x, y)))
					}
				}
			}
		}
	}
}

func TestWallPlacementRules(t *testing.T) {
	is := is.New(t)
	s := InitialState()
	s.HWalls.Set(pos(3, 3))
	s.VWalls.Set(pos(5, 5))

	cases := []struct {
		o     move.Orientation
		p     board.Position
		legal bool
	}{
		{move.Horizontal, pos(3, 3), false}, // duplicate
		{move.Vertical, pos(3, 3), false},   // crossing
		{move.Horizontal, pos(2, 3), false}, // overlaps the left half
		{move.Horizontal, pos(4, 3), false}, // overlaps the right half
		{move.Horizontal, pos(1, 3), true},  // touches end to end
		{move.Horizontal, pos(5, 3), true},
		{move.Vertical, pos(3, 2), true}, // meets the wall at a right angle
		{move.Vertical, pos(5, 4), false},
		{move.Vertical, pos(5, 6), false},
		{move.Vertical, pos(5, 7), true},
		{move.Horizontal, pos(5, 5), false},
		{move.Horizontal, pos(8, 0), false}, // off the anchor grid
		{move.Vertical, pos(0, 8), false},
		{move.Vertical, pos(-1, 0), false},
	}
	for _, c := range cases {
		next, ok := s.PlaceWall(c.o, c.p)
		is.Equal(ok, c.legal)
		if ok {
			is.Equal(next.OpponentWalls, int8(InitialWalls-1))
			is.Equal(next.MyWalls, int8(InitialWalls))
			is.Equal(next.Turn, Second)
		}
	}

	s.MyWalls = 0
	_, ok := s.PlaceWall(move.Horizontal, pos(0, 0))
	is.True(!ok)
}

func TestSealingWallRejected(t *testing.T) {
	is := is.New(t)
	s := InitialState()
	// The opponent sits in the top right corner with one wall on its left.
	s.Opponent = pos(8, 0)
	s.OpponentWalls = 9
	s.VWalls.Set(pos(7, 0))
	is.NoErr(s.Validate())

	// Closing the bottom of the pocket would cut it off.
	_, ok := s.PlaceWall(move.Horizontal, pos(7, 1))
	is.True(!ok)
	mine, ok := s.MyDistance()
	is.True(ok)
	is.Equal(mine, 8)

	// The same wall one row lower leaves a way out.
	_, ok = s.PlaceWall(move.Horizontal, pos(7, 2))
	is.True(ok)

	// Sealing oneself is just as illegal.
	s = InitialState()
	s.Me = pos(0, 8)
	s.OpponentWalls = 9
	s.VWalls.Set(pos(0, 7))
	is.NoErr(s.Validate())
	_, ok = s.PlaceWall(move.Horizontal, pos(0, 6))
	is.True(!ok)
}

func TestLost(t *testing.T) {
	is := is.New(t)
	s := InitialState()
	s.Me = pos(3, 1)
	next, ok := s.Apply(move.NewAdvance(pos(3, 0)))
	is.True(ok)
	is.True(next.Lost())
	_, ok = next.Apply(move.NewAdvance(pos(4, 7)))
	is.True(!ok)
}

func TestHash(t *testing.T) {
	is := is.New(t)
	s := InitialState()
	is.Equal(s.Hash(), InitialState().Hash())
	is.True(s.Hash() != s.Flip().Hash())
	w, ok := s.PlaceWall(move.Vertical, pos(7, 7))
	is.True(ok)
	is.True(w.Hash() != s.Flip().Hash())
}

func TestValidate(t *testing.T) {
	bad := []func(*State){
		func(s *State) { s.Me = pos(9, 0) },
		func(s *State) { s.Opponent = s.Me },
		func(s *State) { s.MyWalls = 11 },
		func(s *State) { s.OpponentWalls = -1 },
		func(s *State) { s.Turn = 2 },
		func(s *State) { s.HWalls.Clear(pos(0, -1)) },
		func(s *State) { s.HWalls.Set(pos(8, 3)) },
		func(s *State) { s.HWalls.Set(pos(2, 2)); s.VWalls.Set(pos(2, 2)) },
		func(s *State) { s.HWalls.Set(pos(2, 2)); s.HWalls.Set(pos(3, 2)) },
		func(s *State) { s.VWalls.Set(pos(2, 2)); s.VWalls.Set(pos(2, 3)) },
		func(s *State) {
			s.Me = pos(0, 8)
			s.VWalls.Set(pos(0, 7))
			s.HWalls.Set(pos(0, 6))
			s.MyWalls, s.OpponentWalls = 9, 9
		},
	}
	for i, mutate := range bad {
		s := InitialState()
		mutate(&s)
		assert.ErrorIs(t, s.Validate(), ErrInvalidState, "case %d", i)
	}
}
