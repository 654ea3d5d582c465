package selection

import (
	"fmt"
	"strings"
)

// Key is a key press the controller reacts to.
type Key string

const (
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	// KeyOpen is the platform-modifier + K shortcut. It is honored whether
	// or not the surface is open.
	KeyOpen Key = "Mod+K"
)

// ParseKey maps a key name to a Key. Ctrl+K, Meta+K and Cmd+K are all
// accepted as the open shortcut.
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arrowup", "up":
		return KeyArrowUp, nil
	case "arrowdown", "down":
		return KeyArrowDown, nil
	case "enter", "return":
		return KeyEnter, nil
	case "escape", "esc":
		return KeyEscape, nil
	case "mod+k", "ctrl+k", "meta+k", "cmd+k", "open":
		return KeyOpen, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// Event is a movement input to the transition table.
type Event int

const (
	EventDown Event = iota
	EventUp
)

// State is the highlighted index over a list of Length entries.
// When Length > 0, 0 <= Index < Length.
type State struct {
	Index  int
	Length int
}

// Reset returns the state for a freshly replaced list.
func Reset(length int) State {
	if length < 0 {
		length = 0
	}
	return State{Index: 0, Length: length}
}

// transitions is the movement table. An empty list has nothing to move over
// and is left unchanged by every event.
var transitions = map[Event]func(State) State{
	EventDown: func(s State) State {
		return State{Index: (s.Index + 1) % s.Length, Length: s.Length}
	},
	EventUp: func(s State) State {
		return State{Index: (s.Index - 1 + s.Length) % s.Length, Length: s.Length}
	},
}

// Next applies ev to s.
func (s State) Next(ev Event) State {
	fn, ok := transitions[ev]
	if !ok || s.Length == 0 {
		return s
	}
	return fn(s)
}

// Selected returns the highlighted index, or false for an empty list.
func (s State) Selected() (int, bool) {
	if s.Length == 0 {
		return 0, false
	}
	return s.Index, true
}

// ActionKind tells the controller's owner what a key press asks for.
type ActionKind int

const (
	// ActionNone means the key changed nothing outside the controller.
	ActionNone ActionKind = iota
	// ActionMove means the highlight moved.
	ActionMove
	// ActionActivate means the result at Index should be navigated to.
	ActionActivate
	// ActionDismiss means the surface was closed without activation.
	ActionDismiss
	// ActionOpen means the surface was opened.
	ActionOpen
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionMove:
		return "move"
	case ActionActivate:
		return "activate"
	case ActionDismiss:
		return "dismiss"
	case ActionOpen:
		return "open"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is the outcome of one key press.
type Action struct {
	Kind  ActionKind
	Index int
}

// Controller tracks the highlight and whether the surface is open.
// It is not safe for concurrent use; its owner serializes access.
type Controller struct {
	state State
	open  bool
}

// State returns the current highlight state.
func (c *Controller) State() State { return c.state }

// IsOpen reports whether key handling is live.
func (c *Controller) IsOpen() bool { return c.open }

// Open makes key handling live.
func (c *Controller) Open() { c.open = true }

// Close stops key handling. The highlight is kept.
func (c *Controller) Close() { c.open = false }

// SetResults records a replaced result list and resets the highlight.
func (c *Controller) SetResults(length int) {
	c.state = Reset(length)
}

// Handle applies one key press.
func (c *Controller) Handle(key Key) Action {
	if !c.open {
		if key == KeyOpen {
			c.open = true
			return Action{Kind: ActionOpen}
		}
		return Action{Kind: ActionNone}
	}

	switch key {
	case KeyArrowDown:
		return c.move(EventDown)
	case KeyArrowUp:
		return c.move(EventUp)
	case KeyEnter:
		idx, ok := c.state.Selected()
		if !ok {
			return Action{Kind: ActionNone}
		}
		c.open = false
		return Action{Kind: ActionActivate, Index: idx}
	case KeyEscape:
		c.open = false
		return Action{Kind: ActionDismiss}
	}
	return Action{Kind: ActionNone}
}

func (c *Controller) move(ev Event) Action {
	next := c.state.Next(ev)
	if next == c.state {
		return Action{Kind: ActionNone, Index: c.state.Index}
	}
	c.state = next
	return Action{Kind: ActionMove, Index: next.Index}
}
