package shell

import (
	"errors"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const usageText = `Commands (coordinates are x y from First's side, 0 0 top-left):
  new                      start a new game
  show | s                 show the board
  move <x> <y>             move your pawn
  wall <H|V> <x> <y>       place a wall anchored at x y
  gen [n]                  list the n best moves by static score
  play <n>                 play move n from the last gen list
  engine [show] [-time d] [-depth n]
                           let the engine move (or only show its choice)
  pv                       show the engine's expected line
  eval                     show distances and the static score
  undo | p                 take back the last move
  load <file>              load a position file
  export [file]            print or save the position
  selfplay [-games n] [-threads n] [-log file]
  selfplay stop|show|hist  manage a self-play run
  set [key [value]]        show or change settings
  help [topic]             this text, or more on one command
  exit | bye               leave`

var helpTopics = map[string]string{
	"wall": `wall <H|V> <x> <y>
  A horizontal wall anchored at x y blocks the two steps between rows y
  and y+1 in columns x and x+1. A vertical wall blocks the two steps
  between columns x and x+1 in rows y and y+1. Walls may not overlap,
  cross, or cut either pawn off from its goal.`,
	"engine": `engine [show] [-time 500ms] [-depth 8]
  Runs an iterative-deepening negascout search on the position and plays
  the best move. With show the move is only printed. -time and -depth
  override search-time-budget and search-max-depth for this search.`,
	"selfplay": `selfplay [-games n] [-threads n] [-log file]
  Plays engine-versus-engine games in the background. Games that run
  past selfplay-max-turns or repeat a position three times are draws.
  selfplay show prints the summary, selfplay hist a histogram of game
  lengths, selfplay stop cancels the run.`,
	"load": `load <file>
  Reads "mx my ox oy mw ow" followed by 8 rows of 8 wall cells (0 none,
  1 horizontal, 2 vertical), from the side to move's point of view.`,
	"set": `set [key [value]]
  Keys: ` + strings.Join(settableKeys, ", "),
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usageText), nil
	}
	text, ok := helpTopics[cmd.args[0]]
	if !ok {
		topics := lo.Keys(helpTopics)
		slices.Sort(topics)
		return nil, errors.New("there is no help text for the topic " + cmd.args[0] +
			"; topics: " + strings.Join(topics, ", "))
	}
	return msg(text), nil
}
