package game

import (
	"math"

	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/worldgen"
)

const (
	shakeDecay   = 0.95
	volumeFollow = 0.01
)

// syncAudio derives the sound channels of g. dropped is the segment the
// cart just left, nil if it did not change step this frame.
func syncAudio(prev, g *State, dropped *worldgen.TrackSegment) {
	a := &g.Audio
	a.TriggerSwitchChange = false
	a.TriggerCartAccident = false
	a.TriggerLightCartAccident = false
	a.TriggerIntersectionSwitch = false
	a.TriggerWin = false

	target := 1.0
	if g.Status == StatusFinished {
		target = 0
	}
	a.Volume += (target - a.Volume) * volumeFollow

	a.Speed = g.Speed
	a.Braking = g.Braking
	a.CartPitch = core.Mix(0.4, 1.4, g.Speed)
	a.WindGain = 0.2 * core.Smoothstep(0, 2, g.Speed)

	a.TurnShake *= shakeDecay
	a.DescentShake *= shakeDecay
	if dropped != nil {
		front := g.Track[0]
		a.TurnShake = math.Max(a.TurnShake, math.Min(1, 2*math.Abs(front.Turn-dropped.Turn)))
		a.DescentShake = math.Max(a.DescentShake, math.Min(1, 2*math.Abs(front.Descent-dropped.Descent)))

		if prev.AltTrackOffset[0] == 0 && g.AltTrackOffset[0] != 0 {
			// the branches just split
			if g.AltTrackMode == CartOnAlt {
				a.TriggerLightCartAccident = true
			} else {
				a.TriggerIntersectionSwitch = true
			}
		}
	}

	for i := range a.BiomesProximity {
		a.BiomesProximity[i] = 0
	}
	n := float64(len(g.Track))
	for i, t := range g.Track {
		w := 1 - float64(i)/n
		pa := w * (1 - t.BiomeMix)
		pb := w * t.BiomeMix
		if pa > a.BiomesProximity[t.BiomeA.Type] {
			a.BiomesProximity[t.BiomeA.Type] = pa
		}
		if pb > a.BiomesProximity[t.BiomeB.Type] {
			a.BiomesProximity[t.BiomeB.Type] = pb
		}
	}

	if prev.Level == g.Level && math.Signbit(prev.SwitchDirectionTarget) != math.Signbit(g.SwitchDirectionTarget) {
		a.TriggerSwitchChange = true
	}
	if prev.Status != g.Status {
		switch g.Status {
		case StatusGameOver:
			a.TriggerCartAccident = true
		case StatusFinished:
			a.TriggerWin = true
		}
	}

	a.StepIndex = g.StepIndex
	a.Home = g.IsDemo()
}
