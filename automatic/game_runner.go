// Package automatic plays engine-versus-engine games, for tuning and for
// catching regressions in the search.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quoridor/bot"
	"github.com/domino14/quoridor/config"
	"github.com/domino14/quoridor/game"
)

const (
	ReasonGoal       = "goal"
	ReasonRepetition = "repetition"
	ReasonTurnLimit  = "turn-limit"

	ResultDraw = "draw"

	// A position seen this many times ends the game as a draw.
	MaxRepetitions = 3
)

// GameRecord is one finished self-play game. Moves are written in First's
// board coordinates.
type GameRecord struct {
	ID       int      `yaml:"id"`
	Winner   string   `yaml:"winner"`
	Reason   string   `yaml:"reason"`
	Plies    int      `yaml:"plies"`
	AvgDepth float64  `yaml:"avg-depth"`
	Moves    []string `yaml:"moves"`
}

// GameRunner plays full games between two bots. It is not safe for
// concurrent use; give every worker its own.
type GameRunner struct {
	maxTurns int
	bots     [2]*bot.Bot
	gamechan chan string
}

func NewGameRunner(cfg *config.Config) *GameRunner {
	return &GameRunner{
		maxTurns: cfg.GetInt(config.ConfigSelfplayMaxTurns),
		bots:     [2]*bot.Bot{bot.NewBot(cfg), bot.NewBot(cfg)},
	}
}

// SetGameChan makes the runner send the final board of every game to c.
func (r *GameRunner) SetGameChan(c chan string) {
	r.gamechan = c
}

// PlayGame plays one game from the initial position to a win or a draw.
func (r *GameRunner) PlayGame(ctx context.Context, id int) (GameRecord, error) {
	g := game.NewGame(game.InitialState())
	rec := GameRecord{ID: id, Winner: ResultDraw}
	depthSum := 0
	for {
		if winner, ok := g.Winner(); ok {
			rec.Winner = winner.String()
			rec.Reason = ReasonGoal
			break
		}
		if g.Turn() >= r.maxTurns {
			rec.Reason = ReasonTurnLimit
			break
		}
		if g.Repetitions() >= MaxRepetitions {
			rec.Reason = ReasonRepetition
			break
		}
		if err := ctx.Err(); err != nil {
			return rec, err
		}
		s := g.State()
		b := r.bots[s.Turn]
		m, err := b.BestMove(ctx, s)
		if err != nil {
			return rec, fmt.Errorf("game %d turn %d: %w", id, g.Turn(), err)
		}
		if err := g.PlayMove(m); err != nil {
			return rec, fmt.Errorf("game %d turn %d: %w", id, g.Turn(), err)
		}
		rec.Moves = append(rec.Moves, game.Orient(m, s.Turn).String())
		depthSum += b.LastResult().Depth
	}
	rec.Plies = g.Turn()
	if rec.Plies > 0 {
		rec.AvgDepth = float64(depthSum) / float64(rec.Plies)
	}
	log.Debug().Int("game", id).Str("winner", rec.Winner).Str("reason", rec.Reason).
		Int("plies", rec.Plies).Msg("game-over")
	if r.gamechan != nil {
		r.gamechan <- g.State().ToDisplayText()
	}
	return rec, nil
}
