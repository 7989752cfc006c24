package input

import (
	"fmt"
	"strings"
)

// Canonical key names shared by every frontend.
const (
	KeyLeft  = "left"
	KeyRight = "right"
	KeyUp    = "up"
	KeyDown  = "down"
	KeySpace = "space"
	KeyEsc   = "esc"
	KeyCtrlC = "ctrl+c"
)

// Keymap binds canonical key names to actions.
type Keymap map[string]Action

// DefaultKeymap returns WASD plus arrow keys, space to fire, R to restart and
// Esc, Ctrl-C or Q to quit.
func DefaultKeymap() Keymap {
	return Keymap{
		"a":      ActionRotateLeft,
		KeyLeft:  ActionRotateLeft,
		"d":      ActionRotateRight,
		KeyRight: ActionRotateRight,
		"w":      ActionThrustForward,
		KeyUp:    ActionThrustForward,
		"s":      ActionThrustBackward,
		KeyDown:  ActionThrustBackward,
		KeySpace: ActionFire,
		"r":      ActionRestart,
		KeyEsc:   ActionQuit,
		KeyCtrlC: ActionQuit,
		"q":      ActionQuit,
	}
}

// Lookup resolves a key name case-insensitively.
func (k Keymap) Lookup(name string) (Action, bool) {
	a, ok := k[strings.ToLower(name)]
	return a, ok
}

// Bind maps name to the action called actionName, as written in config files.
func (k Keymap) Bind(name, actionName string) error {
	for a := Action(0); a < actionCount; a++ {
		if a.String() == actionName {
			k[strings.ToLower(name)] = a
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", actionName)
}

// Keys returns every key name bound to a.
func (k Keymap) Keys(a Action) []string {
	var names []string
	for name, bound := range k {
		if bound == a {
			names = append(names, name)
		}
	}
	return names
}
