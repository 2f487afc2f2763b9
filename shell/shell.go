package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/quoridor/automatic"
	"github.com/domino14/quoridor/bot"
	"github.com/domino14/quoridor/config"
	"github.com/domino14/quoridor/game"
	"github.com/domino14/quoridor/movegen"
)

var (
	errNoData            = errors.New("no data in command")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("no game in progress; start one with `new`")
	errSelfplaying       = errors.New("self-play is running; `selfplay stop` first")
)

type ShellController struct {
	l        *readline.Instance
	out      io.Writer
	config   *config.Config
	execPath string

	gitVersion string

	game     *game.Game
	bot      *bot.Bot
	gen      *movegen.Generator
	curPlays []movegen.Play

	selfplayCancel  context.CancelFunc
	selfplayDone    chan struct{}
	selfplayResults *automatic.Results
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func newController(cfg *config.Config, execPath, gitVersion string, out io.Writer) *ShellController {
	sc := &ShellController{
		out:        out,
		config:     cfg,
		execPath:   execPath,
		gitVersion: gitVersion,
	}
	sc.resetBot()
	return sc
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := newController(cfg, execPath, gitVersion, os.Stderr)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mquoridor>\033[0m ",
		HistoryFile:     "/tmp/quoridor-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

// resetBot rebuilds the engine after a config change.
func (sc *ShellController) resetBot() {
	sc.bot = bot.NewBot(sc.config)
	sc.gen = sc.bot.Generator()
	sc.curPlays = nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a command line into the command, its positional
// arguments and its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		// Loop handles these itself; a one-shot command just stops.
		sc.stopSelfplay()
		return msg("bye"), nil
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "s", "show":
		return sc.show(cmd)
	case "move":
		return sc.advance(cmd)
	case "wall":
		return sc.wall(cmd)
	case "gen":
		return sc.generate(cmd)
	case "play":
		return sc.playGenerated(cmd)
	case "engine", "aiplay":
		return sc.engine(cmd)
	case "pv":
		return sc.pv(cmd)
	case "eval":
		return sc.eval(cmd)
	case "p", "undo":
		return sc.undo(cmd)
	case "load":
		return sc.load(cmd)
	case "export":
		return sc.export(cmd)
	case "selfplay", "autoplay":
		return sc.selfplay(cmd)
	case "set":
		return sc.set(cmd)
	default:
		log.Debug().Msgf("you said: %v", line)
		return nil, fmt.Errorf("unrecognized command %q; try `help`", cmd.cmd)
	}
}

// Execute runs one command line and prints its response.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "bye" {
			sc.stopSelfplay()
			sig <- syscall.SIGINT
			break
		}
		sc.Execute(sig, line)
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops background work before the process exits.
func (sc *ShellController) Cleanup() {
	sc.stopSelfplay()
}

// WaitBackground blocks until a running self-play finishes.
func (sc *ShellController) WaitBackground() {
	sc.waitSelfplay()
}
