package game

import "github.com/vovakirdan/memocart/internal/core"

type cond func(s *State, ev core.UserEvents) bool

type tickFunc func(s *State, ev core.UserEvents) *State

// tutorialStep is one overlay of the tutorial. A step is current while
// State.UIState points at its ui.
type tutorialStep struct {
	ui    *UIState
	skip  cond
	enter cond
	leave cond
	tick  tickFunc
}

func or(conds ...cond) cond {
	return func(s *State, ev core.UserEvents) bool {
		for _, c := range conds {
			if c(s, ev) {
				return true
			}
		}
		return false
	}
}

func and(conds ...cond) cond {
	return func(s *State, ev core.UserEvents) bool {
		for _, c := range conds {
			if !c(s, ev) {
				return false
			}
		}
		return true
	}
}

func always(*State, core.UserEvents) bool { return true }
func never(*State, core.UserEvents) bool  { return false }

func rightPressed(_ *State, ev core.UserEvents) bool { return ev.KeyRightDelta == 1 }

// before and after compare against the step index, which counts down.
func before(i int) cond {
	return func(s *State, _ core.UserEvents) bool { return s.StepIndex > i }
}

func after(i int) cond {
	return func(s *State, _ core.UserEvents) bool { return s.StepIndex < i }
}

func cartOnMain(s *State, _ core.UserEvents) bool { return s.AltTrackMode == CartOnMain }
func cartOnAlt(s *State, _ core.UserEvents) bool  { return s.AltTrackMode == CartOnAlt }

func tickNoop(s *State, _ core.UserEvents) *State { return s }

func tickStop(s *State, _ core.UserEvents) *State {
	s.Speed = 0
	return s
}

func tickSlowDown(s *State, _ core.UserEvents) *State {
	s.Speed += (1 - s.Speed) * 0.01
	s.Acc -= s.Acc * 0.01
	return s
}

// buildTutorial returns the tutorial script. The run starts at step 60:
// the junction (biome 2) spans steps 21..40 and the finish is at 0.
// A player who finished it once may skip the intro.
func (e *Engine) buildTutorial(finishedOnce bool) []tutorialStep {
	msg := e.opts.Messages
	successfulTurn := and(after(39), cartOnMain)

	intro := tutorialStep{
		ui:    &UIState{Title: "Tutorial", FooterCentered: true, FooterBlink: true},
		skip:  never,
		enter: always,
		leave: after(60),
		tick:  tickNoop,
	}
	if finishedOnce {
		intro.ui.Footer = msg.SpaceToSkip
		intro.tick = func(s *State, ev core.UserEvents) *State {
			if ev.SpacePressed != 0 {
				return e.LevelUp(s)
			}
			return s
		}
	}

	return []tutorialStep{
		{
			ui:    &UIState{Title: "Tutorial"},
			skip:  never,
			enter: always,
			leave: func(s *State, _ core.UserEvents) bool { return s.Time-s.StartTime > 0.2 },
			tick:  tickNoop,
		},
		intro,
		{
			ui:    &UIState{Title: "incoming\nINTERSECTION!", Body: "Let's go... RIGHT!"},
			skip:  never,
			enter: after(60),
			leave: after(50),
			tick:  tickNoop,
		},
		{
			ui: &UIState{
				Title:          "INTERSECTION!",
				Body:           "Let's go... RIGHT!",
				FooterBlink:    true,
				FooterCentered: true,
				Footer:         msg.PressRight,
			},
			skip:  cartOnAlt,
			enter: after(50),
			leave: rightPressed,
			tick:  tickStop,
		},
		{
			ui:    &UIState{Title: "Wrong turn!", Body: "Let's remember\nfor next run!"},
			skip:  or(before(50), successfulTurn),
			enter: after(38),
			leave: before(38),
			tick:  tickNoop,
		},
		{
			ui:    &UIState{Title: "Remember", Body: "to go LEFT!"},
			skip:  successfulTurn,
			enter: and(after(60), before(40)),
			leave: after(40),
			tick:  tickNoop,
		},
		{
			ui:    &UIState{Title: "Good Job!", Body: "ProTip:\n" + msg.HoldSpace + "\nto   brake"},
			skip:  never,
			enter: after(34),
			leave: after(16),
			tick:  tickSlowDown,
		},
		{
			ui: &UIState{
				Title:  "Mine Escaped!",
				Black:  true,
				Body:   "Game will start.\nSame map but...\nfrom higher!",
				Footer: "Get Prepared...",
			},
			skip:  never,
			enter: after(16),
			leave: after(1),
			tick: func(s *State, ev core.UserEvents) *State {
				e.markTutorialFinished()
				return tickSlowDown(s, ev)
			},
		},
	}
}

func (e *Engine) markTutorialFinished() {
	if e.tutorialMarked {
		return
	}
	e.tutorialMarked = true
	if err := e.opts.Memory.MarkTutorialFinished(); err != nil {
		e.logger.Warn("could not remember tutorial completion", "error", err)
	}
}

func (e *Engine) script(skippable bool) []tutorialStep {
	if skippable {
		return e.tutorials[1]
	}
	return e.tutorials[0]
}

// stepTutorial routes the state through the tutorial script it was
// created with.
func (e *Engine) stepTutorial(s *State, ev core.UserEvents) *State {
	script := e.script(s.TutorialSkippable)
	if s.Tutorial < 0 || s.Tutorial >= len(script) {
		s.UIState = nil
		return s
	}
	step := script[s.Tutorial]
	switch {
	case s.UIState == step.ui:
		if step.leave(s, ev) {
			s.Tutorial++
		} else {
			s = step.tick(s, ev)
		}
	case step.skip(s, ev):
		s.Tutorial++
	case step.enter(s, ev):
		s.UIState = step.ui
	default:
		s.UIState = nil
	}
	return s
}

// TutorialSteps returns how many steps the tutorial has.
func (e *Engine) TutorialSteps() int {
	return len(e.tutorials[0])
}

// TutorialUI returns the overlay of tutorial step i, or nil. The pointers
// stay the same for the life of the engine.
func (e *Engine) TutorialUI(skippable bool, i int) *UIState {
	script := e.script(skippable)
	if i < 0 || i >= len(script) {
		return nil
	}
	return script[i].ui
}
