package automatic

// Engine-versus-engine runs over a pool of workers.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/quoridor/config"
	"github.com/domino14/quoridor/game"
	"github.com/domino14/quoridor/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// Results aggregates finished games.
type Results struct {
	FirstWins  int
	SecondWins int
	Draws      int
	Plies      *stats.Summary
	Depth      *stats.Summary
}

func NewResults() *Results {
	return &Results{
		Plies: stats.NewSummary("plies"),
		Depth: stats.NewSummary("avg-depth"),
	}
}

func (res *Results) Add(rec GameRecord) {
	switch rec.Winner {
	case game.First.String():
		res.FirstWins++
	case game.Second.String():
		res.SecondWins++
	default:
		res.Draws++
	}
	res.Plies.Push(float64(rec.Plies))
	res.Depth.Push(rec.AvgDepth)
}

func (res *Results) Games() int {
	return res.FirstWins + res.SecondWins + res.Draws
}

func (res *Results) String() string {
	var sb strings.Builder
	n := res.Games()
	fmt.Fprintf(&sb, "Games played: %d\n", n)
	if n == 0 {
		return sb.String()
	}
	firstScore := (float64(res.FirstWins) + float64(res.Draws)/2) / float64(n)
	fmt.Fprintf(&sb, "First wins: %d (%.1f%%)\n", res.FirstWins, 100*float64(res.FirstWins)/float64(n))
	fmt.Fprintf(&sb, "Second wins: %d (%.1f%%)\n", res.SecondWins, 100*float64(res.SecondWins)/float64(n))
	fmt.Fprintf(&sb, "Draws: %d\n", res.Draws)
	fmt.Fprintf(&sb, "First's score: %.3f\n", firstScore)
	fmt.Fprintf(&sb, "%v (95%% +- %.2f)\n", res.Plies, res.Plies.ConfidenceInterval(95))
	fmt.Fprintf(&sb, "%v\n", res.Depth)
	return sb.String()
}

// StartCompVComp plays numGames games on threads workers and blocks until
// they finish or ctx is done. Every finished game is appended to logw as a
// YAML document when logw is not nil. On cancellation the results of the
// games that did finish are returned with the context's error.
func StartCompVComp(ctx context.Context, cfg *config.Config, numGames, threads int,
	logw io.Writer) (*Results, error) {

	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	if threads < 1 {
		threads = 1
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	CVCCounter.Set(0)
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	records := make(chan GameRecord, threads)

	g.Go(func() error {
		defer close(jobs)
		for i := 1; i <= numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
		}
		log.Debug().Msg("Finished queueing all jobs.")
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			r := NewGameRunner(cfg)
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for id := range jobs {
				rec, err := r.PlayGame(gctx, id)
				if err != nil {
					return err
				}
				CVCCounter.Add(1)
				select {
				case records <- rec:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(records)
	}()

	res := NewResults()
	var enc *yaml.Encoder
	if logw != nil {
		enc = yaml.NewEncoder(logw)
	}
	var logErr error
	for rec := range records {
		res.Add(rec)
		if enc != nil && logErr == nil {
			logErr = enc.Encode(rec)
		}
	}
	err := g.Wait()
	if enc != nil && logErr == nil {
		logErr = enc.Close()
	}
	log.Info().Int("games", res.Games()).Msg("All games finished.")
	if err != nil {
		return res, err
	}
	return res, logErr
}
