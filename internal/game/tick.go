package game

import (
	"math"

	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/worldgen"
)

const (
	maxFrameDelta = 100 // seconds; a resumed tab must not teleport the cart

	minSpeed = 0.01
	maxSpeed = 20
	maxAcc   = 4

	cameraFollow = 0.03
	switchFollow = 0.1
	brakeFollow  = 0.1

	demoRestartDelay     = 3
	tutorialRestartDelay = 5
	gameRestartDelay     = 1
	levelUpDelay         = 4
)

// Tick advances prev by one frame and returns the new state. prev is not
// modified.
func (e *Engine) Tick(prev *State, clock Clock, ev core.UserEvents) *State {
	g := prev.Clone()

	if g.Time == 0 {
		g.StartTime = clock.Time
		g.StatusChangedTime = clock.Time
		g.StepTime = clock.Time
		g.StepTick = clock.Tick
		g.Time = clock.Time
		g.Tick = clock.Tick
	}
	dt := core.ClampF(clock.Time-g.Time, 0, maxFrameDelta)
	g.Time = clock.Time
	g.Tick = clock.Tick

	free := e.opts.Debug.FreeControls

	if g.IsTutorial() {
		g = e.stepTutorial(g, ev)
	}

	if free {
		applyFreeControls(g, ev)
	}

	if g.Level >= 0 {
		if ev.KeyRightDelta != 0 {
			g.SwitchDirectionTarget = float64(ev.KeyRightDelta)
		}
		g.Braking += (ev.Space() - g.Braking) * brakeFollow
	} else {
		g = e.driveDemo(g, ev)
	}

	if g.StepIndex < 0 {
		g.Status = StatusFinished
	}

	var dropped *worldgen.TrackSegment
	g.TrackStepProgress += dt * g.Speed
	if g.TrackStepProgress >= 1 {
		d := e.advance(g)
		dropped = &d
	}

	trackCoords := worldgen.TrackToCoordinates(g.Track, core.Vec3{})

	descent := g.Track[0].Descent
	g.Acc += 2 * (0.1 + descent) * (0.1 + descent) * dt
	g.Acc *= math.Pow(0.99, 60*dt)
	g.Acc = core.ClampF(g.Acc, 0, maxAcc)
	g.Acc -= 3 * g.Braking * dt

	g.Speed += dt * g.Acc
	g.Speed *= math.Pow(0.997, 60*dt)
	g.Speed = core.ClampF(g.Speed, minSpeed, maxSpeed)

	switch g.Status {
	case StatusGameOver:
		g.Acc = 0
		g.Speed = math.Max(0, -g.Speed*0.01)
		g.TrackStepProgress += (0.5 - g.TrackStepProgress) * 0.002
		g.RotX += (-0.6 - g.RotX) * 0.007
		g.RotY += (math.Atan(trackCoords[0][0]) + 0.7 - g.RotY) * 0.008
		g.ZoomOut += (1 - g.ZoomOut) * 0.007
	case StatusFinished:
		g.Acc = 0
		g.Speed = 0
	default:
		if !free {
			e.aimCamera(g, trackCoords)
		}
		g.SwitchDirection += (g.SwitchDirectionTarget - g.SwitchDirection) * switchFollow
	}

	g.Rot = core.RotationXY(g.RotX, g.RotY)

	if !free {
		g.Origin = core.Vec3{
			-g.ZoomOut,
			0.2 * g.ZoomOut,
			1.3 + math.Min(0, 0.2*g.Braking-0.1*core.Smoothstep(0, 6, g.Speed)) - 0.6*g.ZoomOut,
		}
	}

	g.UIBlink = g.Tick%120 < 60
	if g.Level > 0 {
		e.syncUI(g)
	}

	if g.AltTrackMode == CartOnAlt {
		g.TerrainOffset = g.AltTrackOffset
	} else {
		g.TerrainOffset = core.Vec3{}
	}

	syncAudio(prev, g, dropped)

	if prev.Status != g.Status {
		g.StatusChangedTime = g.Time
	}
	elapsed := g.Time - g.StatusChangedTime
	switch {
	case g.Status == StatusGameOver && e.restartAllowed(g, elapsed, ev):
		g = e.Restart(g)
	case g.Status == StatusFinished && elapsed > levelUpDelay:
		g = e.LevelUp(g)
	}

	if e.opts.Debug.NoSpeed {
		g.Speed = 0
	}

	return g
}

// restartAllowed says whether a crashed run may start over now.
func (e *Engine) restartAllowed(g *State, elapsed float64, ev core.UserEvents) bool {
	switch {
	case g.IsDemo():
		return elapsed > demoRestartDelay
	case g.IsTutorial():
		return elapsed > tutorialRestartDelay
	}
	return elapsed > gameRestartDelay && ev.SpacePressed != 0
}

// driveDemo plays the attract mode: it always takes the right branch and
// wanders elsewhere.
func (e *Engine) driveDemo(g *State, ev core.UserEvents) *State {
	if ev.SpacePressed != 0 {
		g = e.LevelUp(g)
	}

	if g.Status != StatusRunning {
		if g.Status == StatusFinished || g.Time-g.StatusChangedTime > demoRestartDelay {
			g = e.Restart(g)
		}
	}

	if ib, ok := g.CurrentIntersection(); ok {
		if !CorrectDirection(g.SwitchDirectionTarget, ib.Biome) {
			g.SwitchDirectionTarget = -g.SwitchDirectionTarget
		}
	} else if g.Tick%60 == 0 {
		g.SwitchDirectionTarget = 1
		if e.opts.Rand() < 0.5 {
			g.SwitchDirectionTarget = -1
		}
	}
	return g
}

// advance moves the window one step down and resolves the junction the
// new front segment belongs to. It returns the dropped segment.
func (e *Engine) advance(g *State) worldgen.TrackSegment {
	g.StepTick = g.Tick
	g.StepTime = g.Time
	g.TrackStepProgress = 0
	g.StepIndex--

	size := len(g.Track)
	dropped := g.Track[0]
	next := make([]worldgen.TrackSegment, 0, size)
	next = append(next, g.Track[1:]...)
	g.Track = append(next, e.gen.Track(g.StepIndex-size+1, g.Seed))

	g.WorldDelta = g.WorldDelta.Add(worldgen.SegmentDelta(dropped))

	ib, ok := g.Track[0].IntersectionBiome()
	if ok {
		g.IntersectionBiomeEnd = ib.Duration - ib.LocalIndex
	}

	switch {
	case ok && ib.LocalIndex >= ib.Duration-1 && g.AltTrackMode == CartOnAlt:
		e.crash(g, ib)

	case ok && ib.LocalIndex < ib.Duration:
		var droppedAlt *worldgen.TrackSegment
		if len(g.AltTrack) > 0 {
			d := g.AltTrack[0]
			droppedAlt = &d
		}
		g.AltTrack = mirrorTrack(g.Track, ib.LocalIndex)

		if droppedAlt != nil {
			g.AltTrackOffset[0] -= worldgen.TurnDX * (dropped.Turn - droppedAlt.Turn)
			g.AltTrackOffset[1] -= worldgen.DescentDY * (dropped.Descent - droppedAlt.Descent)
		}

		diverged := ib.LocalIndex > 0 && g.AltTrackOffset[0] != 0
		if !diverged || g.AltTrackMode == AltTrackOff {
			g.AltTrackMode = CartOnAlt
			if CorrectDirection(g.SwitchDirectionTarget, ib.Biome) {
				g.AltTrackMode = CartOnMain
			}
		}

		// a junction missed too often gives no second chance on the wrong branch
		g.AltTrackFailures = g.FailuresAt(ib.Index)
		if g.AltTrackMode == CartOnAlt && g.AltTrackFailures >= size-1 {
			e.crash(g, ib)
		}

	case g.AltTrackMode != AltTrackOff:
		// junction left behind on the right branch
		g.AltTrack = nil
		g.AltTrackMode = AltTrackOff
		g.AltTrackOffset = core.Vec3{}
		g.AltTrackFailures = 0
	}

	return dropped
}

// crash ends the run at junction ib.
func (e *Engine) crash(g *State, ib worldgen.TrackBiome) {
	if g.Status == StatusGameOver {
		return
	}
	g.Status = StatusGameOver
	g.GameOversCountPerBiomeIndex[ib.Index]++
	e.logger.Debug("crash", "level", g.Level, "biome", ib.Index, "step", g.StepIndex,
		"failures", g.GameOversCountPerBiomeIndex[ib.Index])
}

// mirrorTrack returns the wrong branch: track with every turn from the
// junction point on inverted. idx is the junction-local index of track[0].
func mirrorTrack(track []worldgen.TrackSegment, idx int) []worldgen.TrackSegment {
	alt := make([]worldgen.TrackSegment, len(track))
	for i, t := range track {
		if idx+i >= 0 {
			t.Turn = -t.Turn
		}
		alt[i] = t
	}
	return alt
}

// aimCamera eases the camera toward a point a few segments ahead.
func (e *Engine) aimCamera(g *State, trackCoords []core.Vec3) {
	n := max(2, min(3, len(g.Track)-1))
	coords := trackCoords
	if _, ok := g.CurrentIntersection(); ok && g.AltTrackMode == CartOnAlt && len(g.AltTrack) == len(g.Track) {
		coords = worldgen.TrackToCoordinates(g.AltTrack, core.Vec3{})
	}
	if len(coords) < n+2 {
		return
	}
	p := g.TrackStepProgress
	target := coords[n].
		Add(coords[1].Scale(1 - p)).
		Add(coords[n+1].Sub(coords[n]).Scale(p))

	targetRotX := math.Atan(-0.2 + 0.5*target[1]/float64(n))
	targetRotY := math.Atan(0.8 * target[0] / float64(n))
	g.RotX += (targetRotX - g.RotX) * cameraFollow
	g.RotY += (targetRotY - g.RotY) * cameraFollow
}
