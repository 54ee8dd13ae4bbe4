package game

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/worldgen"
)

const frame = 1.0 / 60

// runner ticks an engine at 60 frames per second.
type runner struct {
	e     *Engine
	s     *State
	clock Clock
}

func newRunner(e *Engine, s *State) *runner {
	return &runner{e: e, s: s}
}

// step ticks once and returns the previous state.
func (r *runner) step(ev core.UserEvents) *State {
	r.clock.Tick++
	r.clock.Time += frame
	prev := r.s
	r.s = r.e.Tick(prev, r.clock, ev)
	return prev
}

func left() core.UserEvents  { return core.UserEvents{KeyRightDelta: -1} }
func right() core.UserEvents { return core.UserEvents{KeyRightDelta: 1} }
func space() core.UserEvents { return core.UserEvents{SpacePressed: 1} }

func checkWindow(t *testing.T, s *State) {
	t.Helper()
	size := TrackSize(s.Quality)
	if len(s.Track) != size {
		t.Fatalf("len(Track) = %d, expected %d", len(s.Track), size)
	}
	if n := len(s.AltTrack); n != 0 && n != size {
		t.Fatalf("len(AltTrack) = %d, expected 0 or %d", n, size)
	}
	for i, seg := range s.Track {
		if seg.TrackIndex != s.StepIndex-i {
			t.Fatalf("Track[%d].TrackIndex = %d, expected %d", i, seg.TrackIndex, s.StepIndex-i)
		}
	}
	if s.TrackStepProgress < 0 || s.TrackStepProgress >= 1 {
		t.Fatalf("TrackStepProgress = %v out of [0,1)", s.TrackStepProgress)
	}
}

func TestTickDoesNotModifyPrevious(t *testing.T) {
	e := NewEngine(nil, Options{})
	s := e.Create(1, "abc", QualityLow, "bob")
	r := newRunner(e, s)
	r.step(core.UserEvents{})
	before := *r.s
	track0 := r.s.Track[0]

	prev := r.s
	r.e.Tick(prev, Clock{Time: r.clock.Time + 5, Tick: r.clock.Tick + 1}, right())

	if prev.StepIndex != before.StepIndex || prev.Track[0] != track0 || prev.SwitchDirectionTarget != -1 {
		t.Error("Tick() modified its input state")
	}
}

func TestTickFirstFrameInitialisesClock(t *testing.T) {
	e := NewEngine(nil, Options{})
	s := e.Create(1, "abc", QualityLow, "bob")
	next := e.Tick(s, Clock{Time: 12.5, Tick: 750}, core.UserEvents{})

	if next.StartTime != 12.5 || next.StepTime != 12.5 || next.StatusChangedTime != 12.5 {
		t.Errorf("times = %v/%v/%v, expected 12.5", next.StartTime, next.StepTime, next.StatusChangedTime)
	}
	if next.StepIndex != s.StepIndex || next.TrackStepProgress != 0 {
		t.Error("first frame should not move the cart")
	}
}

func TestTickFrameDeltaCapped(t *testing.T) {
	e := NewEngine(nil, Options{})
	r := newRunner(e, e.Create(1, "abc", QualityLow, "bob"))
	r.step(core.UserEvents{})

	start := r.s.StepIndex
	next := e.Tick(r.s, Clock{Time: r.clock.Time + 1e6, Tick: r.clock.Tick + 1}, core.UserEvents{})
	if next.StepIndex != start-1 {
		t.Errorf("StepIndex = %d, expected exactly one step from %d", next.StepIndex, start)
	}
	if next.Speed > maxSpeed || next.Acc > maxAcc {
		t.Errorf("Speed, Acc = %v, %v beyond limits", next.Speed, next.Acc)
	}
	checkWindow(t, next)
}

func TestCorrectRunFinishesAndLevelsUp(t *testing.T) {
	e := NewEngine(nil, Options{})
	r := newRunner(e, e.Create(1, "abc", QualityMedium, "bob"))

	var finishedAt *State
	var score HighScore
	scored := false
	for i := 0; i < 200000 && r.s.Level == 1; i++ {
		prev := r.step(left())
		checkWindow(t, r.s)
		if r.s.Level != 1 {
			score, scored = ScoreFor(prev, r.s, time.Unix(0, 0))
			break
		}

		if r.s.Status == StatusGameOver {
			t.Fatalf("crashed at step %d while steering correctly", r.s.StepIndex)
		}
		if prev.Status == StatusRunning && r.s.StepIndex != prev.StepIndex && r.s.StepIndex != prev.StepIndex-1 {
			t.Fatalf("StepIndex jumped from %d to %d", prev.StepIndex, r.s.StepIndex)
		}
		if prev.StepIndex < 0 && r.s.Status != StatusFinished {
			t.Fatalf("StepIndex %d but status %v", prev.StepIndex, r.s.Status)
		}
		if r.s.Status == StatusFinished && finishedAt == nil {
			finishedAt = r.s
			if !r.s.Audio.TriggerWin {
				t.Error("finishing should trigger the win sound")
			}
			if r.s.UIState == nil || r.s.UIState.Title != "YES!" {
				t.Errorf("UIState = %+v, expected YES!", r.s.UIState)
			}
		}
		if r.s.Status == StatusFinished && r.s.Speed != 0 {
			t.Fatalf("Speed = %v after finish", r.s.Speed)
		}
	}

	if finishedAt == nil {
		t.Fatal("run never finished")
	}
	if r.s.Level != 2 || r.s.Seed != "abc" {
		t.Errorf("after finish: level %d seed %q, expected 2 abc", r.s.Level, r.s.Seed)
	}
	if !scored || score.Level != 2 || score.Username != "bob" || score.Seed != "abc" {
		t.Errorf("ScoreFor() = %+v, %v", score, scored)
	}
}

func TestWrongTurnCrashes(t *testing.T) {
	e := NewEngine(nil, Options{})
	r := newRunner(e, e.Create(1, "abc", QualityLow, "bob"))

	crashed := false
	for i := 0; i < 200000; i++ {
		prev := r.step(right())
		checkWindow(t, r.s)
		if r.s.Status == StatusGameOver {
			crashed = true
			if !r.s.Audio.TriggerCartAccident {
				t.Error("crash should trigger the accident sound")
			}
			if prev.AltTrackMode != CartOnAlt {
				t.Errorf("crashed with AltTrackMode %v", prev.AltTrackMode)
			}
			break
		}
	}
	if !crashed {
		t.Fatal("wrong turn never crashed")
	}

	ib, ok := r.s.CurrentIntersection()
	if !ok || ib.Index != 2 {
		t.Fatalf("crash outside the junction: %+v %v", ib, ok)
	}
	if r.s.FailuresAt(2) != 1 {
		t.Errorf("FailuresAt(2) = %d, expected 1", r.s.FailuresAt(2))
	}
	if r.s.UIState == nil || r.s.UIState.Title != "Oops!" || r.s.UIState.Failures != 1 {
		t.Errorf("UIState = %+v", r.s.UIState)
	}

	// no restart without the player asking for it
	for i := 0; i < 300; i++ {
		r.step(core.UserEvents{})
	}
	if r.s.Status != StatusGameOver {
		t.Fatalf("Status = %v, expected to wait on game over", r.s.Status)
	}
	if r.s.UIState.Footer != e.Messages().PressSpace {
		t.Errorf("footer = %q, expected the restart hint", r.s.UIState.Footer)
	}
	if r.s.Speed != 0 {
		t.Errorf("Speed = %v after crash", r.s.Speed)
	}

	r.step(space())
	if r.s.Status != StatusRunning || r.s.Level != 1 || r.s.StepIndex != worldgen.LevelStepIndex(1) {
		t.Fatalf("after restart: %v level %d step %d", r.s.Status, r.s.Level, r.s.StepIndex)
	}
	if r.s.FailuresAt(2) != 1 {
		t.Errorf("restart lost the crash counter")
	}
	if r.s.SwitchDirectionTarget != 1 {
		t.Errorf("restart lost the steering target")
	}
}

func TestRepeatedMissCrashesOnEnteringAltTrack(t *testing.T) {
	tests := []struct {
		name     string
		quality  Quality
		failures int
		instant  bool
	}{
		{"low at threshold", QualityLow, TrackSize(QualityLow) - 1, true},
		{"high at threshold", QualityHigh, TrackSize(QualityHigh) - 1, true},
		{"low below threshold", QualityLow, TrackSize(QualityLow) - 2, false},
		{"first miss", QualityHigh, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(nil, Options{})
			s := e.Create(1, "abc", tt.quality, "bob")
			s.GameOversCountPerBiomeIndex[2] = tt.failures
			r := newRunner(e, s)

			for i := 0; i < 200000 && r.s.AltTrackMode != CartOnAlt && r.s.Status == StatusRunning; i++ {
				r.step(right())
				checkWindow(t, r.s)
			}
			if r.s.AltTrackMode != CartOnAlt {
				t.Fatalf("AltTrackMode = %v, expected %v", r.s.AltTrackMode, CartOnAlt)
			}
			if r.s.AltTrackFailures != tt.failures {
				t.Errorf("AltTrackFailures = %d, expected %d", r.s.AltTrackFailures, tt.failures)
			}

			crashed := r.s.Status == StatusGameOver
			if crashed != tt.instant {
				t.Fatalf("crashed on entering = %v, expected %v", crashed, tt.instant)
			}
			if crashed && r.s.FailuresAt(2) != tt.failures+1 {
				t.Errorf("FailuresAt(2) = %d, expected %d", r.s.FailuresAt(2), tt.failures+1)
			}
		})
	}
}

func TestAltTrackModeDoesNotFlipAfterDivergence(t *testing.T) {
	for _, seed := range []string{"abc", "xyz", "2024-01-01"} {
		e := NewEngine(nil, Options{})
		r := newRunner(e, e.Create(4, seed, QualityHigh, "bob"))

		for i := 0; i < 60000 && r.s.Status == StatusRunning; i++ {
			ev := left()
			if (i/45)%2 == 1 {
				ev = right()
			}
			prev := r.step(ev)
			checkWindow(t, r.s)
			if r.s.Level != 4 {
				break
			}
			if prev.AltTrackOffset[0] != 0 && r.s.AltTrackOffset[0] != 0 && prev.AltTrackMode != r.s.AltTrackMode {
				t.Fatalf("seed %q step %d: AltTrackMode changed %v -> %v after divergence",
					seed, r.s.StepIndex, prev.AltTrackMode, r.s.AltTrackMode)
			}
			if r.s.AltTrackMode == AltTrackOff && len(r.s.AltTrack) != 0 {
				t.Fatalf("AltTrack kept while mode is off")
			}
		}
	}
}

func TestStepIndexBelowZeroFinishes(t *testing.T) {
	e := NewEngine(nil, Options{})
	r := newRunner(e, e.Create(1, "abc", QualityLow, "bob"))
	r.step(core.UserEvents{})

	r.s.StepIndex = -1
	r.step(core.UserEvents{})
	if r.s.Status != StatusFinished {
		t.Fatalf("Status = %v, expected finished", r.s.Status)
	}
	for i := 0; i < 60*5 && r.s.Level == 1; i++ {
		r.step(core.UserEvents{})
	}
	if r.s.Level != 2 {
		t.Errorf("Level = %d, expected level up after the finish delay", r.s.Level)
	}
}

func TestBraking(t *testing.T) {
	e := NewEngine(nil, Options{})
	r := newRunner(e, e.Create(1, "abc", QualityLow, "bob"))
	for i := 0; i < 120; i++ {
		r.step(space())
	}
	if r.s.Braking < 0.99 {
		t.Errorf("Braking = %v after holding space, expected close to 1", r.s.Braking)
	}
	for i := 0; i < 120; i++ {
		r.step(core.UserEvents{})
	}
	if r.s.Braking > 0.01 {
		t.Errorf("Braking = %v after release, expected close to 0", r.s.Braking)
	}
}

func TestDemo(t *testing.T) {
	e := NewEngine(nil, Options{Rand: fixedRand(0.75)})

	t.Run("space starts the tutorial", func(t *testing.T) {
		r := newRunner(e, e.Create(worldgen.LevelDemo, "abc", QualityLow, ""))
		r.step(core.UserEvents{})
		r.step(space())
		if r.s.Level != worldgen.LevelTutorial || r.s.Seed != "0.75" {
			t.Errorf("after space: level %d seed %q", r.s.Level, r.s.Seed)
		}
	})

	t.Run("steers itself through junctions", func(t *testing.T) {
		r := newRunner(e, e.Create(worldgen.LevelDemo, "abc", QualityLow, ""))
		for i := 0; i < 20000; i++ {
			r.step(core.UserEvents{})
			if r.s.Status == StatusGameOver {
				t.Fatalf("demo crashed at step %d", r.s.StepIndex)
			}
			if ib, ok := r.s.CurrentIntersection(); ok && r.s.Level == worldgen.LevelDemo {
				if !CorrectDirection(r.s.SwitchDirectionTarget, ib.Biome) {
					t.Fatalf("demo steering wrong at step %d", r.s.StepIndex)
				}
			}
		}
	})

	t.Run("finished demo restarts with a new seed", func(t *testing.T) {
		r := newRunner(e, e.Create(worldgen.LevelDemo, "abc", QualityLow, ""))
		r.step(core.UserEvents{})
		r.s.Status = StatusFinished
		r.step(core.UserEvents{})
		if r.s.Level != worldgen.LevelDemo || r.s.Seed != "0.75" || r.s.Status != StatusRunning {
			t.Errorf("after finish: level %d seed %q status %v", r.s.Level, r.s.Seed, r.s.Status)
		}
	})
}

func TestNoSpeed(t *testing.T) {
	e := NewEngine(nil, Options{Debug: Debug{NoSpeed: true}})
	r := newRunner(e, e.Create(1, "abc", QualityLow, "bob"))
	for i := 0; i < 600; i++ {
		r.step(core.UserEvents{})
	}
	if r.s.StepIndex != worldgen.LevelStepIndex(1) {
		t.Errorf("StepIndex = %d, expected the cart to stay put", r.s.StepIndex)
	}
}

func TestFreeControls(t *testing.T) {
	e := NewEngine(nil, Options{Debug: Debug{FreeControls: true, NoSpeed: true}})
	r := newRunner(e, e.Create(1, "abc", QualityLow, "bob"))
	r.step(core.UserEvents{})

	origin := r.s.Origin
	r.step(core.UserEvents{KeyUpDelta: 1})
	if r.s.Origin == origin {
		t.Error("up arrow should move the free camera")
	}

	r.step(core.UserEvents{MouseDown: &core.Vec2{10, 10}, MouseAt: &core.Vec2{10, 10}})
	if r.s.Free == nil {
		t.Fatal("mouse down should anchor the drag")
	}
	rotY := r.s.Free.RotY
	r.step(core.UserEvents{MouseDown: &core.Vec2{10, 10}, MouseAt: &core.Vec2{110, 10}})
	if got := r.s.RotY; math.Abs(got-(rotY-0.5)) > 1e-9 {
		t.Errorf("RotY = %v, expected %v", got, rotY-0.5)
	}
	r.step(core.UserEvents{})
	if r.s.Free != nil {
		t.Error("mouse up should drop the drag anchor")
	}
}

func TestAudio(t *testing.T) {
	e := NewEngine(nil, Options{})
	r := newRunner(e, e.Create(1, "abc", QualityLow, "bob"))
	for i := 0; i < 120; i++ {
		r.step(core.UserEvents{})
	}
	a := r.s.Audio
	if a.Volume <= 0.5 || a.Volume > 1 {
		t.Errorf("Volume = %v, expected ramping toward 1", a.Volume)
	}
	if a.StepIndex != r.s.StepIndex || a.Home {
		t.Errorf("StepIndex, Home = %d, %v", a.StepIndex, a.Home)
	}
	if a.CartPitch < 0.4 {
		t.Errorf("CartPitch = %v", a.CartPitch)
	}
	var total float64
	for _, p := range a.BiomesProximity {
		if p < 0 || p > 1 {
			t.Fatalf("BiomesProximity out of range: %v", a.BiomesProximity)
		}
		total += p
	}
	if total == 0 {
		t.Error("BiomesProximity is empty")
	}

	r.step(right())
	if !r.s.Audio.TriggerSwitchChange {
		t.Error("changing direction should trigger the switch sound")
	}
	r.step(right())
	if r.s.Audio.TriggerSwitchChange {
		t.Error("switch trigger should last one frame")
	}
}

func TestUIBlink(t *testing.T) {
	e := NewEngine(nil, Options{})
	s := e.Create(1, "abc", QualityLow, "bob")
	if got := e.Tick(s, Clock{Time: 1, Tick: 30}, core.UserEvents{}).UIBlink; !got {
		t.Error("UIBlink should be on at tick 30")
	}
	if got := e.Tick(s, Clock{Time: 1, Tick: 90}, core.UserEvents{}).UIBlink; got {
		t.Error("UIBlink should be off at tick 90")
	}
}

func TestAreaUI(t *testing.T) {
	e := NewEngine(nil, Options{})
	r := newRunner(e, e.Create(2, "abc", QualityLow, "bob"))
	r.step(core.UserEvents{})
	if r.s.UIState == nil || r.s.UIState.Area != worldgen.FormatTrackIndex(r.s.StepIndex) {
		t.Fatalf("UIState = %+v", r.s.UIState)
	}
	ui := r.s.UIState
	r.step(core.UserEvents{})
	if r.s.Area() == ui.Area && r.s.UIState != ui {
		t.Error("UIState replaced without a content change")
	}
}

func TestScoreFor(t *testing.T) {
	e := NewEngine(nil, Options{})
	now := time.Unix(1700000000, 0)

	tut := e.Create(0, "abc", QualityLow, "bob")
	if got, ok := ScoreFor(tut, e.LevelUp(tut), now); !ok || got.Level != 1 || !got.Date.Equal(now) {
		t.Errorf("ScoreFor(tutorial -> 1) = %+v, %v", got, ok)
	}

	demo := e.Create(-1, "abc", QualityLow, "bob")
	if _, ok := ScoreFor(demo, e.LevelUp(demo), now); ok {
		t.Error("leaving the demo is not a score")
	}

	s := e.Create(3, "abc", QualityLow, "bob")
	if _, ok := ScoreFor(s, e.Restart(s), now); ok {
		t.Error("a restart is not a score")
	}

	anon := e.Create(3, "abc", QualityLow, "")
	if _, ok := ScoreFor(anon, e.LevelUp(anon), now); ok {
		t.Error("anonymous runs are not scored")
	}
}
