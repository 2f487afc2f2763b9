package search

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync/atomic"
)

// Result is the outcome of one completed search.
type Result[M any] struct {
	Depth int
	Score int
	// Moves holds every root move that reached Score, in search order.
	Moves []M
	Nodes uint64
}

// Move returns the first best move.
func (r Result[M]) Move() (M, bool) {
	if len(r.Moves) == 0 {
		var zero M
		return zero, false
	}
	return r.Moves[0], true
}

func (r Result[M]) String() string {
	return fmt.Sprintf("depth %d score %d moves %v", r.Depth, r.Score, r.Moves)
}

type plyBuffer[S comparable, M any] struct {
	children []Child[S, M]
	scores   []int
	order    []int
}

// Searcher runs negascout over a Game. A Searcher is not safe for
// concurrent use; give every goroutine its own.
type Searcher[S comparable, M any] struct {
	game Game[S, M]
	eval Evaluator[S]
	stop func() bool

	depth int
	path  BestPath
	plies [MaxDepth + 1]plyBuffer[S, M]
	nodes atomic.Uint64

	logStream io.Writer
}

func NewSearcher[S comparable, M any](g Game[S, M], eval Evaluator[S]) *Searcher[S, M] {
	return &Searcher[S, M]{game: g, eval: eval}
}

// SetStop installs a predicate polled before expanding every node that is
// neither a leaf nor on the last ply. It should become true once the time
// budget is spent.
func (s *Searcher[S, M]) SetStop(stop func() bool) {
	s.stop = stop
}

// SetLogStream makes IterativelyDeepen write one YAML entry per completed
// depth to w.
func (s *Searcher[S, M]) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Nodes is the number of nodes expanded since the last reset.
func (s *Searcher[S, M]) Nodes() uint64 {
	return s.nodes.Load()
}

// BestPath exposes the move-ordering table.
func (s *Searcher[S, M]) BestPath() *BestPath {
	return &s.path
}

// Search runs one negascout pass to the given depth. Moves on the line
// committed by the previous Search are tried first. On success the new
// line is committed; on ErrAborted the table keeps the previous line.
func (s *Searcher[S, M]) Search(ctx context.Context, root S, depth int) (Result[M], error) {
	if depth < 1 || depth >= MaxDepth {
		return Result[M]{}, fmt.Errorf("%w: %d", ErrDepthOutOfRange, depth)
	}
	s.depth = depth
	res := Result[M]{Depth: depth}
	score, err := s.negascout(ctx, root, s.eval(root), 0, -Infinity, Infinity, true, &res)
	if err != nil {
		return Result[M]{}, err
	}
	s.path.commit(depth)
	res.Score = score
	res.Nodes = s.nodes.Load()
	return res, nil
}

func (s *Searcher[S, M]) halted(ctx context.Context) bool {
	return ctx.Err() != nil || (s.stop != nil && s.stop())
}

// negascout returns the value of st for its side to move. score0 is the
// static evaluation of st, computed by the caller while ordering moves.
// Only the root receives a non-nil res; ties are collected there.
func (s *Searcher[S, M]) negascout(ctx context.Context, st S, score0, ply, alpha, beta int,
	onPV bool, res *Result[M]) (int, error) {

	if IsTerminal(score0) || ply == s.depth {
		s.path.clear(ply, s.depth)
		return score0, nil
	}
	if ply < s.depth-1 && s.halted(ctx) {
		return 0, ErrAborted
	}
	s.nodes.Add(1)

	hint := noMove
	if onPV {
		hint = s.path.hint(ply)
	}
	buf := &s.plies[ply]
	hint = s.orderChildren(buf, st, hint)
	if len(buf.order) == 0 {
		s.path.clear(ply, s.depth)
		return score0, nil
	}

	best := -Infinity - 100
	for i, idx := range buf.order {
		child := &buf.children[idx]
		childPV := idx == hint
		score := alpha
		if i > 0 {
			v, err := s.negascout(ctx, child.State, buf.scores[idx], ply+1, -alpha-1, -alpha, childPV, nil)
			if err != nil {
				return 0, err
			}
			score = -v
		}
		if beta <= score {
			return s.register(ply, idx, child.Move, score, best, res), nil
		}
		if alpha < score || i == 0 {
			alpha = s.raise(ply, score)
			v, err := s.negascout(ctx, child.State, buf.scores[idx], ply+1, -beta, -alpha, childPV, nil)
			if err != nil {
				return 0, err
			}
			score = -v
			if beta <= score {
				return s.register(ply, idx, child.Move, score, best, res), nil
			}
			if alpha < score {
				alpha = s.raise(ply, score)
			}
		}
		best = s.register(ply, idx, child.Move, score, best, res)
	}
	return best, nil
}

// raise returns the new lower bound after finding score. The root keeps
// its bound one below the best score so later probes can detect ties.
func (s *Searcher[S, M]) raise(ply, score int) int {
	if ply == 0 {
		return score - 1
	}
	return score
}

func (s *Searcher[S, M]) register(ply, idx int, m M, score, best int, res *Result[M]) int {
	if best < score {
		s.path.record(ply, idx, s.depth)
		if res != nil {
			res.Moves = append(res.Moves[:0], m)
		}
		return score
	}
	if best == score && res != nil {
		res.Moves = append(res.Moves, m)
	}
	return best
}

// orderChildren expands st into buf and sorts the children by their
// static score, lowest first: a low score for the opponent is good for
// the side to move. A valid hint is moved to the front. It returns the
// hint, or noMove if it was out of range.
func (s *Searcher[S, M]) orderChildren(buf *plyBuffer[S, M], st S, hint int) int {
	buf.children = s.game.Expand(st, buf.children[:0])
	n := len(buf.children)
	buf.scores = slices.Grow(buf.scores[:0], n)[:n]
	buf.order = slices.Grow(buf.order[:0], n)[:n]
	for i := range buf.children {
		buf.scores[i] = s.eval(buf.children[i].State)
		buf.order[i] = i
	}
	scores := buf.scores
	slices.SortStableFunc(buf.order, func(a, b int) int {
		return cmp.Compare(scores[a], scores[b])
	})
	if hint < 0 || hint >= n {
		return noMove
	}
	pos := slices.Index(buf.order, hint)
	copy(buf.order[1:pos+1], buf.order[:pos])
	buf.order[0] = hint
	return hint
}
