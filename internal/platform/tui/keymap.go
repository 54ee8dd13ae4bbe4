package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/memocart/internal/core"
)

// holdWindow is how long a key counts as held after its last press.
// Terminals report repeats, not releases, so a held key is one that keeps
// repeating; the window spans the usual initial repeat delay.
const holdWindow = 550 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to actions. Modifiers come back as their
// own action (shift+up yields Shift and Up). isQuit reports a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	case "esc", "b":
		return []core.Action{core.ActionBack}, false
	case " ", "enter":
		return []core.Action{core.ActionSpace}, false
	}

	var mods []core.Action
	for {
		switch {
		case strings.HasPrefix(key, "shift+"):
			mods = append(mods, core.ActionShift)
			key = strings.TrimPrefix(key, "shift+")
			continue
		case strings.HasPrefix(key, "alt+"):
			mods = append(mods, core.ActionAlt)
			key = strings.TrimPrefix(key, "alt+")
			continue
		}
		break
	}

	var a core.Action
	switch key {
	case "left", "a", "h":
		a = core.ActionLeft
	case "right", "d", "l":
		a = core.ActionRight
	case "up", "w", "k":
		a = core.ActionUp
	case "down", "s", "j":
		a = core.ActionDown
	default:
		return nil, false
	}
	return append(mods, a), false
}

// held reports whether an action keeps its effect between presses.
// Steering is an edge: one press sets the switch target.
func held(a core.Action) bool {
	switch a {
	case core.ActionSpace, core.ActionUp, core.ActionDown, core.ActionShift, core.ActionAlt:
		return true
	}
	return false
}

// InputTracker accumulates key presses between ticks and emulates key
// holding on top of the terminal's repeat events.
type InputTracker struct {
	lastSeen map[core.Action]time.Time
	pending  core.InputFrame
}

// NewInputTracker creates an empty tracker.
func NewInputTracker() *InputTracker {
	return &InputTracker{
		lastSeen: make(map[core.Action]time.Time),
		pending:  core.NewInputFrame(),
	}
}

// Press records actions seen at now.
func (t *InputTracker) Press(now time.Time, actions ...core.Action) {
	for _, a := range actions {
		t.pending.Set(a)
		if held(a) {
			t.lastSeen[a] = now
		}
	}
}

// Frame returns the input of the tick at now and starts a new one.
func (t *InputTracker) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a := range t.pending.Actions {
		f.Set(a)
	}
	for a, seen := range t.lastSeen {
		if now.Sub(seen) <= holdWindow {
			f.Set(a)
		} else {
			delete(t.lastSeen, a)
		}
	}
	t.pending.Clear()
	return f
}

// Release forgets every held key, e.g. after the run restarts.
func (t *InputTracker) Release() {
	clear(t.lastSeen)
	t.pending.Clear()
}
