package game

import "github.com/vovakirdan/memocart/internal/core"

// applyFreeControls flies the debug camera. Alt + arrows looks around,
// Shift + arrows strafes, plain arrows turn and move forward. Dragging the
// mouse rotates relative to where the drag started.
func applyFreeControls(g *State, ev core.UserEvents) {
	switch {
	case ev.MouseDown != nil && g.Free == nil:
		g.Free = &FreeCamera{RotX: g.RotX, RotY: g.RotY}
	case ev.MouseDown == nil && g.Free != nil:
		g.Free = nil
	}

	right, up := float64(ev.KeyRightDelta), float64(ev.KeyUpDelta)
	var move core.Vec3
	switch {
	case ev.Key(core.KeyCodeAlt):
		g.RotY += 0.03 * right
		g.RotX += 0.02 * up
	case ev.Key(core.KeyCodeShift):
		move[1] += 0.1 * up
		move[0] += 0.1 * right
	default:
		g.RotY += 0.03 * right
		move[2] += 0.1 * up
	}

	if ev.MouseDown != nil && ev.MouseAt != nil && g.Free != nil {
		g.RotY = g.Free.RotY - 0.005*(ev.MouseAt[0]-ev.MouseDown[0])
		g.RotX = g.Free.RotX + 0.005*(ev.MouseAt[1]-ev.MouseDown[1])
	}

	g.Origin = g.Origin.Add(g.Rot.Transform(move))
}
