package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"engine":   {Options: []string{"-time", "-depth"}, Args: []string{"show"}},
	"wall":     {Args: []string{"H", "V"}},
	"selfplay": {Options: []string{"-games", "-threads", "-log"}, Args: []string{"stop", "show", "hist"}},
	"set":      {Args: settableKeys},
	"help":     {Args: []string{"wall", "engine", "selfplay", "load", "set"}},
}

var commandNames = []string{
	"new", "show", "move", "wall", "gen", "play", "engine", "pv", "eval",
	"undo", "load", "export", "selfplay", "set", "help", "exit",
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string
	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		if metadata, ok := commandMetadata[fields[0]]; ok {
			if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
				completions = metadata.Options
			} else {
				completions = metadata.Args
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
