// Package bot picks moves for the side to move under a time budget.
package bot

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/quoridor/config"
	"github.com/domino14/quoridor/equity"
	"github.com/domino14/quoridor/game"
	"github.com/domino14/quoridor/move"
	"github.com/domino14/quoridor/movegen"
	"github.com/domino14/quoridor/search"
)

var (
	ErrGameOver = errors.New("game is over")
	ErrNoMoves  = errors.New("no legal moves")
)

// Bot owns a searcher and is not safe for concurrent use.
type Bot struct {
	budget   time.Duration
	maxDepth int

	gen      *movegen.Generator
	calc     *equity.PathCalculator
	searcher *search.Searcher[game.State, move.Move]

	last search.Result[move.Move]
}

func NewBot(cfg *config.Config) *Bot {
	bot := &Bot{
		budget:   cfg.GetDuration(config.ConfigSearchTimeBudget),
		maxDepth: cfg.GetInt(config.ConfigSearchMaxDepth),
		gen:      movegen.NewGenerator(),
		calc:     equity.NewPathCalculator(cfg.GetInt(config.ConfigDistanceWeight)),
	}
	bot.gen.SetVerify(cfg.GetBool(config.ConfigVerifyMovegen))
	bot.searcher = search.NewSearcher[game.State, move.Move](bot.gen, bot.calc.Evaluate)
	return bot
}

// SetLogStream forwards per-depth search logs to w.
func (bot *Bot) SetLogStream(w io.Writer) {
	bot.searcher.SetLogStream(w)
}

func (bot *Bot) SetBudget(d time.Duration) {
	bot.budget = d
}

func (bot *Bot) SetMaxDepth(d int) {
	bot.maxDepth = d
}

// BestMove searches s until the budget runs out or ctx is done, then picks
// uniformly among the moves that tied for the best score. The move is from
// the side to move's point of view.
func (bot *Bot) BestMove(ctx context.Context, s game.State) (move.Move, error) {
	if s.Lost() {
		return move.Invalid, ErrGameOver
	}
	if bot.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, bot.budget)
		defer cancel()
	}
	res, err := bot.searcher.IterativelyDeepen(ctx, s, bot.maxDepth)
	if err != nil {
		return move.Invalid, err
	}
	bot.last = res
	if len(res.Moves) == 0 {
		return move.Invalid, ErrNoMoves
	}
	m := res.Moves[frand.Intn(len(res.Moves))]
	log.Debug().
		Str("move", m.String()).
		Int("depth", res.Depth).
		Int("score", res.Score).
		Strs("ties", lo.Map(res.Moves, func(m move.Move, _ int) string { return m.String() })).
		Msg("bot-chose-move")
	return m, nil
}

// LastResult is the search result behind the most recent BestMove.
func (bot *Bot) LastResult() search.Result[move.Move] {
	return bot.last
}

// PrincipalVariation is the line the last search expected from root.
func (bot *Bot) PrincipalVariation(root game.State) search.PVLine[move.Move] {
	return search.PVLine[move.Move]{Moves: bot.searcher.PrincipalVariation(root), Score: bot.last.Score}
}

// Evaluate is the static score of s for its side to move.
func (bot *Bot) Evaluate(s game.State) int {
	return bot.calc.Evaluate(s)
}

// Generator exposes the bot's move generator.
func (bot *Bot) Generator() *movegen.Generator {
	return bot.gen
}
