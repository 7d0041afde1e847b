package editor

import (
	"errors"
	"strings"
)

// Command names
const (
	CmdNew      = "new"
	CmdLoad     = "load"
	CmdSave     = "save"
	CmdShow     = "show"
	CmdAdd      = "add"
	CmdDel      = "del"
	CmdRemove   = "remove"
	CmdFill     = "fill"
	CmdDistance = "distance"
	CmdRoute    = "route"
	CmdRing     = "ring"
	CmdRender   = "render"
	CmdRecent   = "recent"
	CmdClear    = "clear"
	CmdHelp     = "help"
	CmdExit     = "exit"
)

var (
	// ErrExit is returned by Exec for the exit command.
	ErrExit = errors.New("editor: exit requested")
	// ErrUnknownCommand is returned for an unrecognised command name.
	ErrUnknownCommand = errors.New("editor: unknown command")
	// ErrUsage is returned when a command has the wrong arguments.
	ErrUsage = errors.New("editor: usage")
	// ErrNoPath is returned by save when the map has never been saved or loaded.
	ErrNoPath = errors.New("editor: no file path")
)

// Command is one parsed input line.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a line on whitespace. Blank lines and lines starting
// with '#' yield ok == false.
func ParseCommand(line string) (cmd Command, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return Command{}, false
	}
	return Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}, true
}

// usage lists the accepted forms, keyed by command.
var usage = map[string]string{
	CmdNew:      "new [width] [height] [name]",
	CmdLoad:     "load <path>",
	CmdSave:     "save [path]",
	CmdShow:     "show [set|color|floor|item|player|user|pos <label>]",
	CmdAdd:      "add floor <pos> <color> | add item <pos> <marker> <color> <name> | add player <pos> <marker> <color> <name> <user_id> | add user <id> <hash> | add color <#color>",
	CmdDel:      "del color <index>",
	CmdRemove:   "remove <floor|item|player> <pos>",
	CmdFill:     "fill <pos> <radius> <color> | fill all <color>",
	CmdDistance: "distance <a> <b>",
	CmdRoute:    "route <a> <b>",
	CmdRing:     "ring <pos> <distance>",
	CmdRender:   "render <path> [--raw]",
	CmdRecent:   "recent [clear]",
	CmdClear:    "clear",
	CmdHelp:     "help",
	CmdExit:     "exit",
}

var commandOrder = []string{
	CmdNew, CmdLoad, CmdSave, CmdShow, CmdAdd, CmdDel, CmdRemove, CmdFill,
	CmdDistance, CmdRoute, CmdRing, CmdRender, CmdRecent, CmdClear, CmdHelp, CmdExit,
}

// UsageError reports a malformed command.
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	msg := "usage: " + usage[e.Command]
	if e.Reason != "" {
		msg = e.Reason + "; " + msg
	}
	return msg
}

func (e *UsageError) Unwrap() error { return ErrUsage }

func usageErr(cmd, reason string) error {
	return &UsageError{Command: cmd, Reason: reason}
}
