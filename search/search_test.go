package search_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/domino14/quoridor/search"
	"github.com/domino14/quoridor/search/testgames"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// minimax is a plain negamax with no pruning.
func minimax[S comparable, M any](g search.Game[S, M], eval search.Evaluator[S], s S, depth int) int {
	v := eval(s)
	if search.IsTerminal(v) || depth == 0 {
		return v
	}
	children := g.Expand(s, nil)
	if len(children) == 0 {
		return v
	}
	best := -search.Infinity - 100
	for _, c := range children {
		best = max(best, -minimax(g, eval, c.State, depth-1))
	}
	return best
}

// rootTies lists every root move whose minimax value equals the best.
func rootTies[S comparable, M any](g search.Game[S, M], eval search.Evaluator[S], s S, depth int) []M {
	best := minimax(g, eval, s, depth)
	var ties []M
	for _, c := range g.Expand(s, nil) {
		if -minimax(g, eval, c.State, depth-1) == best {
			ties = append(ties, c.Move)
		}
	}
	return ties
}

func checkAgainstMinimax[S comparable, M any](t *testing.T, g search.Game[S, M], eval search.Evaluator[S], s S, depth int) {
	t.Helper()
	searcher := search.NewSearcher(g, eval)
	res, err := searcher.Search(context.Background(), s, depth)
	assert.NoError(t, err)
	want := minimax(g, eval, s, depth)
	assert.Equal(t, want, res.Score, "state %v depth %d", s, depth)
	if !search.IsTerminal(want) && len(g.Expand(s, nil)) > 0 {
		assert.ElementsMatch(t, rootTies(g, eval, s, depth), res.Moves, "state %v depth %d", s, depth)
	}
}

func TestNegascoutMatchesMinimaxNim(t *testing.T) {
	positions := []testgames.NimState{{1, 2, 3}, {3, 4, 5}, {2, 2, 1}, {1, 0, 4}, {0, 0, 1}}
	for _, p := range positions {
		for depth := 1; depth <= 4; depth++ {
			checkAgainstMinimax[testgames.NimState, testgames.NimMove](t, testgames.Nim{}, testgames.NimEval, p, depth)
		}
	}
}

func TestNegascoutMatchesMinimaxTicTacToe(t *testing.T) {
	positions := []testgames.TicTacToeState{
		{},
		{1, 0, 0, 0, -1, 0, 0, 0, 0},
		{1, -1, 0, 0, 1, 0, 0, 0, -1},
		{-1, 1, -1, 0, 1, 0, 0, 0, 0},
		{1, 1, 0, -1, -1, 0, 0, 0, 0},
	}
	for _, p := range positions {
		for depth := 1; depth <= 4; depth++ {
			checkAgainstMinimax[testgames.TicTacToeState, testgames.TicTacToeMove](t, testgames.TicTacToe{}, testgames.TicTacToeEval, p, depth)
		}
	}
}

func TestNegascoutMatchesMinimaxRandomTrees(t *testing.T) {
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	for i := 0; i < 50; i++ {
		root := testgames.TreeNode(rng.Uint64n(1 << 62))
		for depth := 1; depth <= 4; depth++ {
			checkAgainstMinimax[testgames.TreeNode, int](t, testgames.Tree{}, testgames.TreeEval, root, depth)
		}
	}
}

func TestStaleHintsDoNotChangeScore(t *testing.T) {
	is := is.New(t)
	rng := frand.NewCustom(bytes.Repeat([]byte{7}, 32), 1024, 12)
	searcher := search.NewSearcher[testgames.TreeNode, int](testgames.Tree{}, testgames.TreeEval)
	for i := 0; i < 20; i++ {
		root := testgames.TreeNode(rng.Uint64n(1 << 62))
		// The table still holds the line of the previous root.
		res, err := searcher.Search(context.Background(), root, 4)
		is.NoErr(err)
		is.Equal(res.Score, minimax[testgames.TreeNode, int](testgames.Tree{}, testgames.TreeEval, root, 4))
	}
}

func TestIterativeDeepeningMatchesFixedDepth(t *testing.T) {
	is := is.New(t)
	g := testgames.Nim{}
	root := testgames.NimState{3, 4, 5}
	searcher := search.NewSearcher[testgames.NimState, testgames.NimMove](g, testgames.NimEval)
	res, err := searcher.IterativelyDeepen(context.Background(), root, 4)
	is.NoErr(err)
	is.Equal(res.Depth, 4)
	is.Equal(res.Score, minimax[testgames.NimState, testgames.NimMove](g, testgames.NimEval, root, 4))
}

func TestIterativeDeepeningStopsAfterFirstDepth(t *testing.T) {
	is := is.New(t)
	g := testgames.TicTacToe{}
	root := testgames.TicTacToeState{}

	fresh := search.NewSearcher[testgames.TicTacToeState, testgames.TicTacToeMove](g, testgames.TicTacToeEval)
	want, err := fresh.Search(context.Background(), root, 1)
	is.NoErr(err)

	searcher := search.NewSearcher[testgames.TicTacToeState, testgames.TicTacToeMove](g, testgames.TicTacToeEval)
	searcher.SetStop(func() bool { return true })
	res, err := searcher.IterativelyDeepen(context.Background(), root, 6)
	is.NoErr(err)
	is.Equal(res.Depth, 1)
	is.Equal(res.Score, want.Score)
	is.Equal(res.Moves, want.Moves)
}

func TestIterativeDeepeningCancelledContext(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	searcher := search.NewSearcher[testgames.NimState, testgames.NimMove](testgames.Nim{}, testgames.NimEval)
	res, err := searcher.IterativelyDeepen(ctx, testgames.NimState{3, 4, 5}, 5)
	is.NoErr(err)
	is.Equal(res.Depth, 1)
	is.True(len(res.Moves) > 0)
}

func TestSearchAborts(t *testing.T) {
	is := is.New(t)
	searcher := search.NewSearcher[testgames.NimState, testgames.NimMove](testgames.Nim{}, testgames.NimEval)
	searcher.SetStop(func() bool { return true })
	_, err := searcher.Search(context.Background(), testgames.NimState{3, 4, 5}, 3)
	is.True(err == search.ErrAborted)
	// A single ply never polls.
	_, err = searcher.Search(context.Background(), testgames.NimState{3, 4, 5}, 1)
	is.NoErr(err)
}

func TestIterativeDeepeningStopsAtForcedWin(t *testing.T) {
	is := is.New(t)
	searcher := search.NewSearcher[testgames.NimState, testgames.NimMove](testgames.Nim{}, testgames.NimEval)
	res, err := searcher.IterativelyDeepen(context.Background(), testgames.NimState{0, 0, 3}, 10)
	is.NoErr(err)
	is.Equal(res.Depth, 1)
	is.Equal(res.Score, search.Infinity)
	is.Equal(res.Moves, []testgames.NimMove{{Heap: 2, Take: 3}})
}

func TestTicTacToeIsADraw(t *testing.T) {
	is := is.New(t)
	searcher := search.NewSearcher[testgames.TicTacToeState, testgames.TicTacToeMove](testgames.TicTacToe{}, testgames.TicTacToeEval)
	res, err := searcher.IterativelyDeepen(context.Background(), testgames.TicTacToeState{}, 9)
	is.NoErr(err)
	is.Equal(res.Depth, 9)
	is.True(!search.IsTerminal(res.Score))
}

func TestPrincipalVariationReplays(t *testing.T) {
	is := is.New(t)
	g := testgames.Nim{}
	root := testgames.NimState{2, 3, 4}
	searcher := search.NewSearcher[testgames.NimState, testgames.NimMove](g, testgames.NimEval)
	res, err := searcher.IterativelyDeepen(context.Background(), root, 3)
	is.NoErr(err)
	pv := searcher.PrincipalVariation(root)
	is.True(len(pv) > 0)
	is.True(len(pv) <= res.Depth)
	first, ok := res.Move()
	is.True(ok)
	is.Equal(pv[0], first)
	st := root
	for _, m := range pv {
		st, ok = g.Apply(st, m)
		is.True(ok)
	}
	line := search.PVLine[testgames.NimMove]{Moves: pv, Score: res.Score}
	is.True(len(line.NLBString()) > 0)
}

func TestLogStream(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	searcher := search.NewSearcher[testgames.NimState, testgames.NimMove](testgames.Nim{}, testgames.NimEval)
	searcher.SetLogStream(&buf)
	_, err := searcher.IterativelyDeepen(context.Background(), testgames.NimState{3, 4, 5}, 3)
	is.NoErr(err)

	var entries []struct {
		Depth int      `yaml:"depth"`
		Score int      `yaml:"score"`
		Best  []string `yaml:"best"`
	}
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &entries))
	is.Equal(len(entries), 3)
	for i, e := range entries {
		is.Equal(e.Depth, i+1)
		is.True(len(e.Best) > 0)
	}
}

func TestDepthOutOfRange(t *testing.T) {
	searcher := search.NewSearcher[testgames.NimState, testgames.NimMove](testgames.Nim{}, testgames.NimEval)
	for _, d := range []int{0, -1, search.MaxDepth} {
		_, err := searcher.Search(context.Background(), testgames.NimState{1, 1, 1}, d)
		assert.ErrorIs(t, err, search.ErrDepthOutOfRange, fmt.Sprint(d))
	}
}
