package runner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidID      = errors.New("invalid task id")
	ErrUnknownTask    = errors.New("no task with that id")
)

// HelpText lists the shell commands.
const HelpText = `Commands:
  add <text>          add a task
  done <id>           toggle a task between pending and completed
  rm <id>             delete a task (asks first)
  clear               delete every task (asks first)
  clear done          delete completed tasks
  search <term>       show only tasks containing term ("/term" works too)
  search              show every task again
  ls                  print the list
  help                show this help
  quit                leave the shell`

// Command is one parsed shell line.
type Command struct {
	Name string
	Arg  string
}

var aliases = map[string]string{
	"a":      "add",
	"new":    "add",
	"toggle": "done",
	"x":      "done",
	"delete": "rm",
	"del":    "rm",
	"find":   "search",
	"list":   "ls",
	"?":      "help",
	"exit":   "quit",
	"q":      "quit",
}

// ParseCommand splits a line into a lower-cased command name and its argument.
// A leading "/" is shorthand for search.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if rest, ok := strings.CutPrefix(line, "/"); ok {
		return Command{Name: "search", Arg: strings.TrimSpace(rest)}
	}

	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	return Command{Name: name, Arg: strings.TrimSpace(arg)}
}

// ParseID parses a task ID argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, arg)
	}
	return id, nil
}
