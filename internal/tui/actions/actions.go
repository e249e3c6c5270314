// Package actions maps key presses to commands and computes in-place list
// updates. It has no terminal dependencies so it can be tested directly.
package actions

import (
	"github.com/julianstephens/weekly/internal/models"
)

type Action int

const (
	None Action = iota
	SelectDay
	NextDay
	PrevDay
	CursorUp
	CursorDown
	Add
	Edit
	Delete
	Toggle
	ToggleTheme
	RequestPermission
	CycleLanguage
	Help
	Confirm
	Close
	Quit
)

var actionNames = map[Action]string{
	None:              "none",
	SelectDay:         "select-day",
	NextDay:           "next-day",
	PrevDay:           "prev-day",
	CursorUp:          "cursor-up",
	CursorDown:        "cursor-down",
	Add:               "add",
	Edit:              "edit",
	Delete:            "delete",
	Toggle:            "toggle",
	ToggleTheme:       "toggle-theme",
	RequestPermission: "request-permission",
	CycleLanguage:     "cycle-language",
	Help:              "help",
	Confirm:           "confirm",
	Close:             "close",
	Quit:              "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Mode is what currently has input focus.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeForm
	ModeConfirm
	ModeHelp
)

// State is the part of the view state that affects key handling.
type State struct {
	Mode Mode
	Day  models.Day
	// Selected is the id of the entry under the cursor, if any.
	Selected string
}

type Command struct {
	Action  Action
	Day     models.Day
	EntryID string
}

// Resolve returns the command for key in state st. Keys use Bubble Tea's
// KeyMsg.String() names.
func Resolve(key string, st State) Command {
	if key == "ctrl+c" {
		return Command{Action: Quit}
	}

	switch st.Mode {
	case ModeForm:
		// the form consumes everything else
		if key == "esc" {
			return Command{Action: Close}
		}
		return Command{}
	case ModeConfirm:
		switch key {
		case "y", "Y", "enter":
			return Command{Action: Confirm, Day: st.Day, EntryID: st.Selected}
		case "n", "N", "esc", "q":
			return Command{Action: Close}
		}
		return Command{}
	case ModeHelp:
		switch key {
		case "?", "esc":
			return Command{Action: Close}
		case "q":
			return Command{Action: Quit}
		}
		return Command{}
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '7' {
		return Command{Action: SelectDay, Day: models.Days[key[0]-'1']}
	}

	switch key {
	case "tab", "l", "right":
		return Command{Action: NextDay, Day: shift(st.Day, 1)}
	case "shift+tab", "h", "left":
		return Command{Action: PrevDay, Day: shift(st.Day, -1)}
	case "up", "k":
		return Command{Action: CursorUp, Day: st.Day}
	case "down", "j":
		return Command{Action: CursorDown, Day: st.Day}
	case "ctrl+n", "a":
		return Command{Action: Add, Day: st.Day}
	case "e", "enter":
		return entryCommand(Edit, st)
	case "d", "delete":
		return entryCommand(Delete, st)
	case " ", "space", "x":
		return entryCommand(Toggle, st)
	case "t":
		return Command{Action: ToggleTheme}
	case "n":
		return Command{Action: RequestPermission}
	case "L":
		return Command{Action: CycleLanguage}
	case "?":
		return Command{Action: Help}
	case "q":
		return Command{Action: Quit}
	}
	return Command{}
}

func entryCommand(a Action, st State) Command {
	if st.Selected == "" {
		return Command{}
	}
	return Command{Action: a, Day: st.Day, EntryID: st.Selected}
}

func shift(d models.Day, by int) models.Day {
	i := d.Index()
	if i < 0 {
		return models.Days[0]
	}
	n := len(models.Days)
	return models.Days[((i+by)%n+n)%n]
}
