package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type iterationLog struct {
	Depth      int      `yaml:"depth"`
	Score      int      `yaml:"score"`
	Best       []string `yaml:"best"`
	PV         []string `yaml:"pv"`
	Nodes      uint64   `yaml:"nodes"`
	ElapsedSec float64  `yaml:"elapsed-sec"`
}

// IterativelyDeepen searches root at depths 1, 2, ... maxDepth, each pass
// ordered by the line of the one before. It stops early once a pass finds
// a decided score, or when the stop predicate or ctx ends a pass; that
// pass is discarded and the last completed one is returned. Depth 1 never
// polls the stop predicate, so a result is always available for a root
// with legal moves.
func (s *Searcher[S, M]) IterativelyDeepen(ctx context.Context, root S, maxDepth int) (Result[M], error) {
	if maxDepth < 1 || maxDepth >= MaxDepth {
		return Result[M]{}, fmt.Errorf("%w: %d", ErrDepthOutOfRange, maxDepth)
	}
	tstart := time.Now()
	s.nodes.Store(0)
	s.path.Reset()

	g := &errgroup.Group{}
	done := make(chan struct{})

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	var best Result[M]
	g.Go(func() error {
		defer close(done)
		var err error
		best, err = s.deepen(ctx, root, maxDepth, tstart)
		return err
	})

	err := g.Wait()
	log.Info().
		Int("depth", best.Depth).
		Int("score", best.Score).
		Uint64("nodes", s.nodes.Load()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("search-returning")
	return best, err
}

func (s *Searcher[S, M]) deepen(ctx context.Context, root S, maxDepth int, tstart time.Time) (Result[M], error) {
	var last Result[M]
	for d := 1; d <= maxDepth; d++ {
		log.Debug().Int("depth", d).Msg("deepening-iteratively")
		res, err := s.Search(ctx, root, d)
		if errors.Is(err, ErrAborted) {
			log.Debug().Int("depth", d).Int("completed", last.Depth).Msg("search-aborted")
			break
		}
		if err != nil {
			return last, err
		}
		last = res
		log.Info().Int("depth", d).Int("score", res.Score).
			Str("best", fmt.Sprint(res.Moves)).Msg("best-val")
		if err := s.writeIteration(root, res, tstart); err != nil {
			return last, err
		}
		if IsTerminal(res.Score) || len(res.Moves) == 0 {
			break
		}
	}
	return last, nil
}

func (s *Searcher[S, M]) writeIteration(root S, res Result[M], tstart time.Time) error {
	if s.logStream == nil {
		return nil
	}
	entry := iterationLog{
		Depth:      res.Depth,
		Score:      res.Score,
		Nodes:      res.Nodes,
		ElapsedSec: time.Since(tstart).Seconds(),
	}
	for _, m := range res.Moves {
		entry.Best = append(entry.Best, fmt.Sprint(m))
	}
	for _, m := range s.PrincipalVariation(root) {
		entry.PV = append(entry.PV, fmt.Sprint(m))
	}
	out, err := yaml.Marshal([]iterationLog{entry})
	if err != nil {
		return err
	}
	_, err = s.logStream.Write(out)
	return err
}
