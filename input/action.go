// Package input describes what a key press asks the game to do, independent
// of the window or terminal library that produced it.
package input

import "snake-sync/game/types"

// Kind is the category of an Action.
type Kind int

const (
	None Kind = iota
	Move
	Restart
	Snapshot
	Quit
)

// Action is a decoded key press.
type Action struct {
	Kind      Kind
	Direction types.Direction // set for Move
}

// MoveTo returns a Move action.
func MoveTo(d types.Direction) Action {
	return Action{Kind: Move, Direction: d}
}

// FromRune maps the letter keys shared by every front end.
func FromRune(r rune) Action {
	switch r {
	case 'w', 'W':
		return MoveTo(types.Up)
	case 'a', 'A':
		return MoveTo(types.Left)
	case 's', 'S':
		return MoveTo(types.Down)
	case 'd', 'D':
		return MoveTo(types.Right)
	case 'r', 'R':
		return Action{Kind: Restart}
	case 'p', 'P':
		return Action{Kind: Snapshot}
	case 'q', 'Q':
		return Action{Kind: Quit}
	default:
		return Action{}
	}
}
