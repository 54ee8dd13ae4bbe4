package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - switch direction left
	ActionRight          // D, Right arrow - switch direction right
	ActionUp             // W, Up arrow - free camera forward
	ActionDown           // S, Down arrow - free camera backward
	ActionSpace          // Space - brake, start, skip
	ActionShift          // free camera: move instead of yaw
	ActionAlt            // free camera: rotate instead of move
	ActionBack           // B, Escape - back to menu
	ActionQuit           // Q, Ctrl+C - exit
)

// Browser key codes used by the free camera; the key map keeps them so
// recorded inputs stay compatible with the web build.
const (
	KeyCodeShift = 16
	KeyCodeAlt   = 18
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionSpace:
		return "Space"
	case ActionShift:
		return "Shift"
	case ActionAlt:
		return "Alt"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// UserEvents is the per-tick input consumed by the game state machine.
type UserEvents struct {
	KeyRightDelta int // -1, 0 or 1
	KeyUpDelta    int // -1, 0 or 1
	SpacePressed  int // 0 or 1, held
	MouseDown     *Vec2
	MouseAt       *Vec2
	Keys          map[int]int // key code -> 0|1
}

// Key reports whether the given key code is held.
func (e UserEvents) Key(code int) bool {
	return e.Keys != nil && e.Keys[code] != 0
}

// Space reports whether space is held, as a float for smoothing.
func (e UserEvents) Space() float64 {
	if e.SpacePressed != 0 {
		return 1
	}
	return 0
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Events converts the frame to the game's UserEvents.
// Left and right in the same frame cancel out.
func (f InputFrame) Events() UserEvents {
	ev := UserEvents{Keys: make(map[int]int)}
	if f.Has(ActionRight) {
		ev.KeyRightDelta++
	}
	if f.Has(ActionLeft) {
		ev.KeyRightDelta--
	}
	if f.Has(ActionUp) {
		ev.KeyUpDelta++
	}
	if f.Has(ActionDown) {
		ev.KeyUpDelta--
	}
	if f.Has(ActionSpace) {
		ev.SpacePressed = 1
	}
	if f.Has(ActionShift) {
		ev.Keys[KeyCodeShift] = 1
	}
	if f.Has(ActionAlt) {
		ev.Keys[KeyCodeAlt] = 1
	}
	return ev
}
