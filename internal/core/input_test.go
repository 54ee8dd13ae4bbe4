package core

import "testing"

func TestInputFrameEvents(t *testing.T) {
	tests := []struct {
		name      string
		actions   []Action
		right, up int
		space     int
	}{
		{"empty", nil, 0, 0, 0},
		{"right", []Action{ActionRight}, 1, 0, 0},
		{"left", []Action{ActionLeft}, -1, 0, 0},
		{"left and right cancel", []Action{ActionLeft, ActionRight}, 0, 0, 0},
		{"up with brake", []Action{ActionUp, ActionSpace}, 0, 1, 1},
		{"down", []Action{ActionDown}, 0, -1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			ev := f.Events()
			if ev.KeyRightDelta != tc.right {
				t.Errorf("KeyRightDelta = %d, expected %d", ev.KeyRightDelta, tc.right)
			}
			if ev.KeyUpDelta != tc.up {
				t.Errorf("KeyUpDelta = %d, expected %d", ev.KeyUpDelta, tc.up)
			}
			if ev.SpacePressed != tc.space {
				t.Errorf("SpacePressed = %d, expected %d", ev.SpacePressed, tc.space)
			}
		})
	}
}

func TestInputFrameModifierKeys(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionShift)
	ev := f.Events()

	if !ev.Key(KeyCodeShift) {
		t.Error("shift should be reported as held")
	}
	if ev.Key(KeyCodeAlt) {
		t.Error("alt should not be reported as held")
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionSpace)
	f.Clear()
	if f.Has(ActionSpace) {
		t.Error("Clear() should drop all actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionRight.String() != "Right" {
		t.Errorf("ActionRight.String() = %q, expected %q", ActionRight.String(), "Right")
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected %q", Action(99).String(), "Unknown")
	}
}
