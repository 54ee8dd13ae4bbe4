package game

import (
	"errors"
	"testing"

	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/worldgen"
)

type fakeMemory struct {
	finished bool
	marks    int
	err      error
}

func (m *fakeMemory) TutorialFinished() bool { return m.finished }

func (m *fakeMemory) MarkTutorialFinished() error {
	m.marks++
	if m.err != nil {
		return m.err
	}
	m.finished = true
	return nil
}

func TestTutorialReachesIntersectionPrompt(t *testing.T) {
	e := NewEngine(nil, Options{})
	r := newRunner(e, e.Create(0, "abc", QualityMedium, "bob"))
	prompt := e.TutorialUI(false, 3)

	for i := 0; i < 100000 && r.s.UIState != prompt; i++ {
		r.step(core.UserEvents{})
		checkWindow(t, r.s)
	}
	if r.s.UIState != prompt {
		t.Fatalf("never reached the intersection prompt, UIState = %+v", r.s.UIState)
	}
	if _, ok := r.s.Track[0].IntersectionBiome(); !ok {
		t.Errorf("Track[0] at step %d is not part of a junction", r.s.StepIndex)
	}
	if r.s.StepIndex >= 50 {
		t.Errorf("StepIndex = %d, expected below 50", r.s.StepIndex)
	}
	if r.s.UIState.Title != "INTERSECTION!" || r.s.UIState.Footer != "Press RIGHT" {
		t.Errorf("prompt = %+v", r.s.UIState)
	}

	// the cart waits for the player
	step := r.s.StepIndex
	for i := 0; i < 600; i++ {
		r.step(core.UserEvents{})
	}
	if r.s.UIState != prompt {
		t.Errorf("prompt left without input: %+v", r.s.UIState)
	}
	if step-r.s.StepIndex > 1 {
		t.Errorf("cart moved from %d to %d while waiting", step, r.s.StepIndex)
	}
}

func TestTutorialFullRun(t *testing.T) {
	mem := &fakeMemory{}
	e := NewEngine(nil, Options{Memory: mem})
	r := newRunner(e, e.Create(0, "abc", QualityMedium, "bob"))

	seen := make(map[string]bool)
	crashed := false
	for i := 0; i < 400000 && r.s.Level == 0; i++ {
		ev := right()
		if crashed {
			ev = left()
		}
		r.step(ev)
		if r.s.Level != 0 {
			break
		}
		checkWindow(t, r.s)
		if r.s.UIState != nil {
			seen[r.s.UIState.Title] = true
		}
		if r.s.Status == StatusGameOver && !crashed {
			crashed = true
			if r.s.FailuresAt(2) != 1 {
				t.Errorf("FailuresAt(2) = %d, expected 1", r.s.FailuresAt(2))
			}
		}
	}

	if !crashed {
		t.Error("going right should have crashed")
	}
	if r.s.Level != 1 {
		t.Fatalf("Level = %d, expected the tutorial to lead to level 1", r.s.Level)
	}
	if r.s.Seed != "abc" {
		t.Errorf("Seed = %q, expected the tutorial map", r.s.Seed)
	}
	for _, title := range []string{
		"Tutorial",
		"incoming\nINTERSECTION!",
		"INTERSECTION!",
		"Wrong turn!",
		"Remember",
		"Good Job!",
		"Mine Escaped!",
	} {
		if !seen[title] {
			t.Errorf("tutorial step %q never shown", title)
		}
	}
	if !mem.finished || mem.marks != 1 {
		t.Errorf("memory finished=%v marks=%d, expected one mark", mem.finished, mem.marks)
	}
}

func TestTutorialSkip(t *testing.T) {
	t.Run("first time cannot skip", func(t *testing.T) {
		e := NewEngine(nil, Options{Memory: &fakeMemory{}})
		s := e.Create(0, "abc", QualityLow, "bob")
		if s.TutorialSkippable {
			t.Error("TutorialSkippable = true before the tutorial was ever finished")
		}
		if got := e.TutorialUI(false, 1).Footer; got != "" {
			t.Errorf("intro footer = %q, expected none", got)
		}
	})

	t.Run("space skips once finished", func(t *testing.T) {
		e := NewEngine(nil, Options{Memory: &fakeMemory{finished: true}})
		r := newRunner(e, e.Create(0, "abc", QualityLow, "bob"))
		if !r.s.TutorialSkippable {
			t.Error("TutorialSkippable = false after the tutorial was finished")
		}
		intro := e.TutorialUI(true, 1)
		if intro.Footer != "SPACE to skip" {
			t.Errorf("intro footer = %q", intro.Footer)
		}
		for i := 0; i < 600 && r.s.UIState != intro; i++ {
			r.step(core.UserEvents{})
		}
		if r.s.UIState != intro {
			t.Fatal("never reached the intro step")
		}
		r.step(space())
		if r.s.Level != 1 || r.s.Seed != "abc" {
			t.Errorf("after skip: level %d seed %q", r.s.Level, r.s.Seed)
		}
	})
}

func TestTutorialScriptStableAcrossCreate(t *testing.T) {
	mem := &fakeMemory{}
	e := NewEngine(nil, Options{Memory: mem})
	prompt := e.TutorialUI(false, 3)

	first := e.Create(0, "abc", QualityMedium, "bob")
	mem.finished = true
	second := e.Create(0, "abc", QualityMedium, "bob")

	if first.TutorialSkippable || !second.TutorialSkippable {
		t.Errorf("TutorialSkippable = %v, %v, expected false, true", first.TutorialSkippable, second.TutorialSkippable)
	}
	if e.TutorialUI(false, 3) != prompt {
		t.Fatal("Create() replaced the tutorial overlays")
	}

	// the older run still follows its own script
	r := newRunner(e, first)
	for i := 0; i < 100000 && r.s.UIState != prompt; i++ {
		r.step(core.UserEvents{})
	}
	if r.s.UIState != prompt {
		t.Errorf("first run never reached the intersection prompt, UIState = %+v", r.s.UIState)
	}
	if e.TutorialUI(true, 1).Footer != "SPACE to skip" || e.TutorialUI(false, 1).Footer != "" {
		t.Error("intro footers depend on the script, not on when Create ran")
	}
}

func TestTutorialMemoryError(t *testing.T) {
	mem := &fakeMemory{err: errors.New("disk full")}
	e := NewEngine(nil, Options{Memory: mem})
	e.markTutorialFinished()
	e.markTutorialFinished()
	if mem.marks != 1 {
		t.Errorf("marks = %d, expected a single attempt", mem.marks)
	}
}

func TestStepTutorialRouting(t *testing.T) {
	e := NewEngine(nil, Options{})
	s := e.Create(0, "abc", QualityLow, "bob")

	s = e.stepTutorial(s, core.UserEvents{})
	if s.UIState != e.TutorialUI(false, 0) || s.Tutorial != 0 {
		t.Fatalf("first step not entered: %d %+v", s.Tutorial, s.UIState)
	}

	s.Time, s.StartTime = 1, 0
	s = e.stepTutorial(s, core.UserEvents{})
	if s.Tutorial != 1 {
		t.Fatalf("Tutorial = %d, expected to leave the first step", s.Tutorial)
	}

	s.Tutorial = 4 // wrong turn, skipped while still above step 50
	s.UIState = nil
	s = e.stepTutorial(s, core.UserEvents{})
	if s.Tutorial != 5 {
		t.Errorf("Tutorial = %d, expected the wrong-turn step to be skipped", s.Tutorial)
	}

	s.Tutorial = e.TutorialSteps()
	s.UIState = &UIState{Title: "stale"}
	s = e.stepTutorial(s, core.UserEvents{})
	if s.UIState != nil {
		t.Errorf("UIState = %+v after the last step, expected nil", s.UIState)
	}
}

func TestTutorialOnlyInLevelZero(t *testing.T) {
	e := NewEngine(nil, Options{})
	r := newRunner(e, e.Create(2, "abc", QualityLow, "bob"))
	for i := 0; i < 30; i++ {
		r.step(core.UserEvents{})
	}
	if r.s.Tutorial != 0 {
		t.Errorf("Tutorial = %d outside the tutorial level", r.s.Tutorial)
	}
	if r.s.UIState == nil || r.s.UIState.Area == "" {
		t.Errorf("UIState = %+v, expected the area label", r.s.UIState)
	}
	if r.s.Level != 2 || r.s.StepIndex > worldgen.LevelStepIndex(2) {
		t.Errorf("unexpected state: level %d step %d", r.s.Level, r.s.StepIndex)
	}
}
