package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/quoridor/automatic"
	"github.com/domino14/quoridor/config"
	"github.com/domino14/quoridor/game"
	"github.com/domino14/quoridor/move"
	"github.com/domino14/quoridor/notation"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) DurationDefault(key string, defaultD time.Duration) (time.Duration, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultD, nil
	}
	return time.ParseDuration(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

// selfplaying reports whether a self-play run is still going, reaping it
// if it just finished.
func (sc *ShellController) selfplaying() bool {
	if sc.selfplayDone == nil {
		return false
	}
	select {
	case <-sc.selfplayDone:
		sc.waitSelfplay()
		return false
	default:
		return true
	}
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.game = game.NewGame(game.InitialState())
	sc.curPlays = nil
	return msg(sc.game.State().ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.State().ToDisplayText()), nil
}

// playAbsolute plays m, given in First's board coordinates.
func (sc *ShellController) playAbsolute(m move.Move) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	s := sc.game.State()
	if err := sc.game.PlayMove(game.Orient(m, s.Turn)); err != nil {
		return nil, err
	}
	sc.curPlays = nil
	return msg(sc.afterMove(m, s.Turn)), nil
}

func (sc *ShellController) afterMove(m move.Move, mover game.Side) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s played %v\n", mover, m)
	sb.WriteString(sc.game.State().ToDisplayText())
	if winner, ok := sc.game.Winner(); ok {
		fmt.Fprintf(&sb, "\n%s wins!", winner)
	}
	return sb.String()
}

func (sc *ShellController) advance(cmd *shellcmd) (*Response, error) {
	m, err := move.ParseFields(append([]string{"MOVE"}, cmd.args...))
	if err != nil {
		return nil, err
	}
	return sc.playAbsolute(m)
}

func (sc *ShellController) wall(cmd *shellcmd) (*Response, error) {
	m, err := move.ParseFields(append([]string{"WALL"}, cmd.args...))
	if err != nil {
		return nil, err
	}
	return sc.playAbsolute(m)
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	n := 15
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	s := sc.game.State()
	plays := sc.gen.GenAll(s, sc.bot)
	sc.curPlays = plays[:min(n, len(plays))]

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d legal moves\n", len(plays))
	sb.WriteString("     Move           Score\n")
	for i, p := range sc.curPlays {
		fmt.Fprintf(&sb, "%3d: %-15s%d\n", i+1, game.Orient(p.Move, s.Turn), p.Score)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) playGenerated(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <n>, after gen")
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(cmd.args[0], "#"))
	if err != nil {
		return nil, err
	}
	idx--
	if idx < 0 || idx >= len(sc.curPlays) {
		return nil, errors.New("play outside range")
	}
	return sc.playAbsolute(game.Orient(sc.curPlays[idx].Move, sc.game.State().Turn))
}

func (sc *ShellController) engine(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.selfplaying() {
		return nil, errSelfplaying
	}
	budget, err := cmd.options.DurationDefault("time", sc.config.GetDuration(config.ConfigSearchTimeBudget))
	if err != nil {
		return nil, err
	}
	depth, err := cmd.options.IntDefault("depth", sc.config.GetInt(config.ConfigSearchMaxDepth))
	if err != nil {
		return nil, err
	}
	sc.bot.SetBudget(budget)
	sc.bot.SetMaxDepth(depth)
	defer func() {
		sc.bot.SetBudget(sc.config.GetDuration(config.ConfigSearchTimeBudget))
		sc.bot.SetMaxDepth(sc.config.GetInt(config.ConfigSearchMaxDepth))
	}()

	s := sc.game.State()
	m, err := sc.bot.BestMove(context.Background(), s)
	if err != nil {
		return nil, err
	}
	res := sc.bot.LastResult()
	ties := lo.Map(res.Moves, func(t move.Move, _ int) string {
		return game.Orient(t, s.Turn).String()
	})
	header := fmt.Sprintf("depth %d, score %d, %d nodes; best: %s",
		res.Depth, res.Score, res.Nodes, strings.Join(ties, ", "))
	if len(cmd.args) > 0 && cmd.args[0] == "show" {
		return msg(header + "\nwould play " + game.Orient(m, s.Turn).String()), nil
	}
	r, err := sc.playAbsolute(game.Orient(m, s.Turn))
	if err != nil {
		return nil, err
	}
	return msg(header + "\n" + r.message), nil
}

// pv shows the line the engine expected after its last search. It is
// only meaningful right after `engine show`.
func (sc *ShellController) pv(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	s := sc.game.State()
	line := sc.bot.PrincipalVariation(s)
	if len(line.Moves) == 0 {
		return nil, errors.New("no principal variation; run `engine show` first")
	}
	turn := s.Turn
	for i, m := range line.Moves {
		line.Moves[i] = game.Orient(m, turn)
		turn = turn.Other()
	}
	return msg(line.String()), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	s := sc.game.State()
	mine, theirs, ok := s.Distances()
	if !ok {
		return nil, errors.New("a pawn is cut off from its goal")
	}
	return msg(fmt.Sprintf("%s to move: distance %d vs %d, walls %d vs %d, static score %d",
		s.Turn, mine, theirs, s.MyWalls, s.OpponentWalls, sc.bot.Evaluate(s))), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Undo() {
		return nil, errors.New("nothing to undo")
	}
	sc.curPlays = nil
	return msg(sc.game.State().ToDisplayText()), nil
}

// load starts a game from a position file in the harness format. The
// position is taken to have First to move.
func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file>")
	}
	f, err := os.Open(cmd.args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := notation.NewDecoder(f).Decode()
	if err != nil {
		return nil, err
	}
	sc.game = game.NewGame(s)
	sc.curPlays = nil
	log.Debug().Str("file", cmd.args[0]).Msg("loaded-position")
	return msg(s.ToDisplayText()), nil
}

// export writes the current position, from the side to move's point of
// view, in the harness format.
func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	text := notation.FormatState(sc.game.State())
	if len(cmd.args) == 0 {
		return msg(text), nil
	}
	if err := os.WriteFile(cmd.args[0], []byte(text), 0o644); err != nil {
		return nil, err
	}
	return msg("exported to " + cmd.args[0]), nil
}

func (sc *ShellController) selfplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		switch cmd.args[0] {
		case "stop":
			if !sc.selfplaying() {
				return nil, errors.New("no self-play to stop")
			}
			sc.stopSelfplay()
			return msg("self-play stopped"), nil
		case "show":
			if sc.selfplaying() {
				return nil, errSelfplaying
			}
			if sc.selfplayResults == nil {
				return nil, errors.New("no self-play results yet")
			}
			return msg(sc.selfplayResults.String()), nil
		case "hist":
			if sc.selfplaying() {
				return nil, errSelfplaying
			}
			if sc.selfplayResults == nil {
				return nil, errors.New("no self-play results yet")
			}
			var sb strings.Builder
			if err := sc.selfplayResults.Plies.Histogram(&sb, 10, 40); err != nil {
				return nil, err
			}
			return msg(sb.String()), nil
		default:
			return nil, fmt.Errorf("unknown selfplay argument %q", cmd.args[0])
		}
	}
	if sc.selfplaying() {
		return nil, errSelfplaying
	}
	games, err := cmd.options.IntDefault("games", sc.config.GetInt(config.ConfigSelfplayGames))
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigSelfplayThreads))
	if err != nil {
		return nil, err
	}
	logfile := cmd.options.String("log")
	if logfile == "" {
		logfile = sc.config.GetString(config.ConfigSelfplayLog)
	}
	var f *os.File
	if logfile != "" {
		f, err = os.Create(logfile)
		if err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.selfplayCancel = cancel
	sc.selfplayDone = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		var res *automatic.Results
		var err error
		if f != nil {
			res, err = automatic.StartCompVComp(ctx, sc.config, games, threads, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		} else {
			res, err = automatic.StartCompVComp(ctx, sc.config, games, threads, nil)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("selfplay-failed")
		}
		sc.selfplayResults = res
		if res != nil {
			log.Info().Int("games", res.Games()).Int("first-wins", res.FirstWins).
				Int("second-wins", res.SecondWins).Int("draws", res.Draws).Msg("selfplay-done")
		}
	}(sc.selfplayDone)
	return msg(fmt.Sprintf("started %d games on %d threads; `selfplay show` when done", games, threads)), nil
}

// waitSelfplay blocks until a running self-play finishes.
func (sc *ShellController) waitSelfplay() {
	if sc.selfplayDone == nil {
		return
	}
	<-sc.selfplayDone
	sc.selfplayDone = nil
	sc.selfplayCancel()
	sc.selfplayCancel = nil
}

func (sc *ShellController) stopSelfplay() {
	if sc.selfplayCancel != nil {
		sc.selfplayCancel()
	}
	sc.waitSelfplay()
}

var settableKeys = []string{
	config.ConfigSearchTimeBudget,
	config.ConfigSearchMaxDepth,
	config.ConfigDistanceWeight,
	config.ConfigVerifyMovegen,
	config.ConfigSelfplayGames,
	config.ConfigSelfplayThreads,
	config.ConfigSelfplayMaxTurns,
	config.ConfigSelfplayLog,
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		var sb strings.Builder
		for _, k := range settableKeys {
			fmt.Fprintf(&sb, "%-20s %v\n", k, sc.config.Get(k))
		}
		return msg(sb.String()), nil
	}
	key := cmd.args[0]
	if !lo.Contains(settableKeys, key) {
		return nil, fmt.Errorf("%q cannot be set; choose one of %s", key, strings.Join(settableKeys, ", "))
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s = %v", key, sc.config.Get(key))), nil
	}
	if sc.selfplaying() {
		return nil, errSelfplaying
	}
	value := cmd.args[1]
	switch key {
	case config.ConfigSearchTimeBudget:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, d)
	case config.ConfigSelfplayLog:
		sc.config.Set(key, value)
	case config.ConfigVerifyMovegen:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, b)
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, n)
	}
	sc.resetBot()
	return msg("set " + key + " to " + value), nil
}
