package game

import (
	"io"
	"math/rand/v2"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/worldgen"
)

// Messages are the input hints shown to the player. They differ between
// keyboard and touch frontends.
type Messages struct {
	PressSpace  string
	HoldSpace   string
	SpaceToSkip string
	PressRight  string
}

// KeyboardMessages returns the hints for keyboard play.
func KeyboardMessages() Messages {
	return Messages{
		PressSpace:  "Press SPACE",
		HoldSpace:   "Hold SPACE",
		SpaceToSkip: "SPACE to skip",
		PressRight:  "Press RIGHT",
	}
}

// TouchMessages returns the hints for touch play.
func TouchMessages() Messages {
	return Messages{
		PressSpace:  "TAP here",
		HoldSpace:   "TAP and HOLD",
		SpaceToSkip: "TAP to skip",
		PressRight:  "Swipe RIGHT",
	}
}

// Debug holds developer toggles.
type Debug struct {
	FreeControls bool // keys and mouse drive the camera, auto-aim is off
	NoSpeed      bool // the cart never moves
}

// TutorialMemory remembers across sessions whether the tutorial was
// completed once.
type TutorialMemory interface {
	TutorialFinished() bool
	MarkTutorialFinished() error
}

// memoryFlag is the in-process TutorialMemory.
type memoryFlag struct{ finished bool }

func (m *memoryFlag) TutorialFinished() bool { return m.finished }

func (m *memoryFlag) MarkTutorialFinished() error {
	m.finished = true
	return nil
}

// Options configures an Engine.
type Options struct {
	Messages Messages
	Debug    Debug
	Memory   TutorialMemory
	// Rand drives the demo: fresh seeds and idle steering. Defaults to math/rand/v2.
	Rand   func() float64
	Logger *log.Logger
}

// Engine owns everything a run needs besides its State: the generator,
// options and the tutorial script. One Engine serves one player; the
// Generator may be shared.
type Engine struct {
	gen    *worldgen.Generator
	opts   Options
	logger *log.Logger

	// tutorials[1] is the script for players who finished it once.
	tutorials [2][]tutorialStep

	tutorialMarked bool
}

// NewEngine creates an engine. A nil generator gets a fresh caching one.
func NewEngine(gen *worldgen.Generator, opts Options) *Engine {
	if gen == nil {
		gen = worldgen.NewGenerator()
	}
	if opts.Messages == (Messages{}) {
		opts.Messages = KeyboardMessages()
	}
	if opts.Memory == nil {
		opts.Memory = &memoryFlag{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.Float64
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		gen:    gen,
		opts:   opts,
		logger: logger,
	}
	e.tutorials = [2][]tutorialStep{e.buildTutorial(false), e.buildTutorial(true)}
	return e
}

// Generator returns the generator the engine draws tracks from.
func (e *Engine) Generator() *worldgen.Generator {
	return e.gen
}

// Messages returns the input hints in use.
func (e *Engine) Messages() Messages {
	return e.opts.Messages
}

// Create starts a run. Level -1 is the demo, 0 the tutorial, anything
// above a real game.
func (e *Engine) Create(level int, seed string, quality Quality, username string) *State {
	speed, acc := 0.0, 0.1
	var ui *UIState
	skippable := false

	switch {
	case level == worldgen.LevelDemo:
		acc, speed = 1, 3
		ui = &UIState{
			UseContextTitle: true,
			ShowHighscores:  true,
			FooterBlink:     true,
			FooterCentered:  true,
			Footer:          e.opts.Messages.PressSpace,
		}
	case level == worldgen.LevelTutorial:
		skippable = e.opts.Memory.TutorialFinished()
	default:
		speed = 2
		ui = &UIState{LevelInfoActive: true}
	}

	stepIndex := worldgen.LevelStepIndex(level)
	size := TrackSize(quality)
	track := e.gen.Window(stepIndex, size, seed)

	// world offset as if the cart came all the way down from the top
	worldDelta := core.Vec3{}.Sub(e.gen.PathOffset(stepIndex, seed))

	s := &State{
		Status:       StatusRunning,
		Level:        level,
		LevelReached: level,
		Seed:         seed,
		Quality:      quality,
		Username:     username,

		StepIndex: stepIndex,
		Track:     track,

		Speed: speed,
		Acc:   acc,

		SwitchDirection:       -1,
		SwitchDirectionTarget: -1,

		Rot:        core.Identity(),
		Origin:     core.Vec3{0, 0.05, 1.4},
		WorldDelta: worldDelta,

		TutorialSkippable:           skippable,
		GameOversCountPerBiomeIndex: make(map[int]int),
		UIState:                     ui,

		Audio: AudioState{
			Volume:    0.5,
			StepIndex: stepIndex,
			Home:      level == worldgen.LevelDemo,
		},
	}
	e.logger.Debug("run created", "level", level, "seed", seed, "quality", quality, "step", stepIndex)
	return s
}

// freshSeed draws a new demo seed.
func (e *Engine) freshSeed() string {
	return strconv.FormatFloat(e.opts.Rand(), 'f', -1, 64)
}

// Restart replays the same level. The demo gets a new seed; everything
// else keeps its map. Tutorial progress, steering and the per-junction
// crash counters carry over.
func (e *Engine) Restart(s *State) *State {
	seed := s.Seed
	if s.IsDemo() {
		seed = e.freshSeed()
	}
	g := e.Create(s.Level, seed, s.Quality, s.Username)
	g.Tutorial = s.Tutorial
	g.TutorialSkippable = s.TutorialSkippable
	g.SwitchDirectionTarget = s.SwitchDirectionTarget
	if seed == s.Seed {
		for k, v := range s.GameOversCountPerBiomeIndex {
			g.GameOversCountPerBiomeIndex[k] = v
		}
	}
	e.logger.Debug("restart", "level", g.Level, "seed", g.Seed)
	return g
}

// LevelUp starts the next level. Leaving the demo picks a new seed and
// forgets the crash counters; otherwise the map and counters carry over.
func (e *Engine) LevelUp(s *State) *State {
	seed := s.Seed
	if s.IsDemo() {
		seed = e.freshSeed()
	}
	g := e.Create(s.Level+1, seed, s.Quality, s.Username)
	if seed == s.Seed {
		for k, v := range s.GameOversCountPerBiomeIndex {
			g.GameOversCountPerBiomeIndex[k] = v
		}
	}
	e.logger.Debug("level up", "level", g.Level, "seed", g.Seed)
	return g
}

// CorrectDirection reports whether steering toward target takes the main
// track at the junction. A junction biome with a seed above 0.5 wants a
// left turn.
func CorrectDirection(target float64, junction worldgen.Biome) bool {
	return (target < 0) == (junction.Seed > 0.5)
}
