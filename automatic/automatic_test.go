package automatic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/quoridor/config"
	"github.com/domino14/quoridor/game"
	"github.com/domino14/quoridor/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func quickConfig(maxTurns int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSearchTimeBudget, 10*time.Millisecond)
	cfg.Set(config.ConfigSearchMaxDepth, 2)
	cfg.Set(config.ConfigSelfplayMaxTurns, maxTurns)
	return cfg
}

func TestPlayGameTurnLimit(t *testing.T) {
	is := is.New(t)
	r := NewGameRunner(quickConfig(0))
	rec, err := r.PlayGame(context.Background(), 1)
	is.NoErr(err)
	is.Equal(rec.Winner, ResultDraw)
	is.Equal(rec.Reason, ReasonTurnLimit)
	is.Equal(rec.Plies, 0)
}

func TestPlayGameReplays(t *testing.T) {
	is := is.New(t)
	r := NewGameRunner(quickConfig(16))
	gamechan := make(chan string, 1)
	r.SetGameChan(gamechan)
	rec, err := r.PlayGame(context.Background(), 7)
	is.NoErr(err)
	is.Equal(rec.ID, 7)
	is.Equal(len(rec.Moves), rec.Plies)
	is.True(rec.AvgDepth >= 1)
	is.True(strings.Contains(<-gamechan, "Remaining walls"))

	// The recorded moves are in First's coordinates; replay them.
	g := game.NewGame(game.InitialState())
	for _, text := range rec.Moves {
		m, err := move.Parse(text)
		is.NoErr(err)
		is.NoErr(g.PlayMove(game.Orient(m, g.State().Turn)))
	}
	if rec.Reason == ReasonGoal {
		w, ok := g.Winner()
		is.True(ok)
		is.Equal(w.String(), rec.Winner)
	}
}

func TestPlayGameCancelled(t *testing.T) {
	is := is.New(t)
	r := NewGameRunner(quickConfig(50))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.PlayGame(ctx, 1)
	is.Equal(err, context.Canceled)
}

func TestCompVComp(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	res, err := StartCompVComp(context.Background(), quickConfig(10), 3, 2, &buf)
	is.NoErr(err)
	is.Equal(res.Games(), 3)
	is.Equal(res.Plies.Count(), 3)
	is.Equal(IsPlaying.Value(), int64(0))
	is.Equal(CVCCounter.Value(), int64(3))

	recs, err := ReadLog(&buf)
	is.NoErr(err)
	is.Equal(len(recs), 3)
	ids := map[int]bool{}
	for _, rec := range recs {
		ids[rec.ID] = true
		is.True(rec.Plies <= 10)
	}
	is.Equal(ids, map[int]bool{1: true, 2: true, 3: true})
	is.True(strings.HasPrefix(res.String(), "Games played: 3\n"))
}

func TestAnalyzeLogFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "selfplay.yaml")
	f, err := os.Create(path)
	is.NoErr(err)
	_, err = StartCompVComp(context.Background(), quickConfig(4), 2, 1, f)
	is.NoErr(err)
	is.NoErr(f.Close())

	out, err := AnalyzeLogFile(path)
	is.NoErr(err)
	is.True(strings.Contains(out, "Games played: 2"))
	is.True(strings.Contains(out, "plies: n=2"))
}
