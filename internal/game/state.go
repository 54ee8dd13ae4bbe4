// Package game implements the mine-cart state machine: creation of a run,
// the per-frame tick, the tutorial, and the restart and level-up transforms.
// Every transform returns a new State; the previous one is left untouched.
package game

import (
	"maps"
	"slices"

	"github.com/vovakirdan/memocart/internal/config"
	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/worldgen"
)

// Status is the run status.
type Status uint8

const (
	StatusRunning Status = iota
	StatusFinished
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	case StatusGameOver:
		return "gameover"
	}
	return "unknown"
}

// AltTrackMode says where the cart is while a junction resolves.
type AltTrackMode uint8

const (
	AltTrackOff AltTrackMode = iota
	CartOnAlt                // the cart follows the mirrored, wrong path
	CartOnMain
)

func (m AltTrackMode) String() string {
	switch m {
	case AltTrackOff:
		return "off"
	case CartOnAlt:
		return "cart-on-alt"
	case CartOnMain:
		return "cart-on-main"
	}
	return "unknown"
}

// Quality names a detail preset. It only sizes the track window here.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// TrackSize returns the window length for a quality. Unknown qualities get
// the smallest window.
func TrackSize(q Quality) int {
	return trackSizes(string(q))
}

var trackSizes = config.QualityResolver(map[string]int{
	config.QualityMedium: 10,
	config.QualityHigh:   12,
	config.DefaultKey:    8,
})

// Clock is the frame clock supplied by the caller.
type Clock struct {
	Time float64 // seconds
	Tick int
}

// UIState describes the overlay. A nil *UIState hides it. Tutorial steps
// are recognised by pointer, so never copy a step's UIState.
type UIState struct {
	Title  string
	Body   string
	Footer string
	Area   string

	// Failures is how many times the run crashed at the current junction.
	Failures int

	TitleCentered   bool
	FooterCentered  bool
	FooterBlink     bool
	UseContextTitle bool
	ShowHighscores  bool
	LevelInfoActive bool
	Black           bool
}

// AudioState is the flat channel set consumed once per frame by a sound layer.
type AudioState struct {
	Volume          float64
	Speed           float64
	Braking         float64
	DescentShake    float64
	TurnShake       float64
	CartPitch       float64
	WindGain        float64
	BiomesProximity [worldgen.MaxBiomeType + 1]float64

	TriggerSwitchChange       bool
	TriggerCartAccident       bool
	TriggerLightCartAccident  bool
	TriggerIntersectionSwitch bool
	TriggerWin                bool

	StepIndex int
	Home      bool
}

// FreeCamera keeps the camera rotation captured when a debug drag started.
type FreeCamera struct {
	RotX, RotY float64
}

// State is one frame of a run.
type State struct {
	Status       Status
	Level        int
	LevelReached int
	Seed         string
	Quality      Quality
	Username     string

	StepIndex         int
	TrackStepProgress float64
	Track             []worldgen.TrackSegment
	AltTrack          []worldgen.TrackSegment
	AltTrackMode      AltTrackMode
	AltTrackOffset    core.Vec3
	AltTrackFailures  int

	Speed   float64
	Acc     float64
	Braking float64

	SwitchDirection       float64
	SwitchDirectionTarget float64

	RotX, RotY    float64
	Rot           core.Mat3
	Origin        core.Vec3
	WorldDelta    core.Vec3
	TerrainOffset core.Vec3
	ZoomOut       float64

	Tutorial                    int
	TutorialSkippable           bool // the run uses the script with a skippable intro
	GameOversCountPerBiomeIndex map[int]int
	UIState                     *UIState
	UIBlink                     bool

	Time              float64
	StartTime         float64
	StatusChangedTime float64
	StepTime          float64
	Tick              int
	StepTick          int

	IntersectionBiomeEnd int

	Audio AudioState
	Free  *FreeCamera
}

// Clone returns a copy that shares nothing mutable with s.
// UIState is shared on purpose: its pointer identifies tutorial steps.
func (s *State) Clone() *State {
	c := *s
	c.Track = slices.Clone(s.Track)
	c.AltTrack = slices.Clone(s.AltTrack)
	c.GameOversCountPerBiomeIndex = maps.Clone(s.GameOversCountPerBiomeIndex)
	if c.GameOversCountPerBiomeIndex == nil {
		c.GameOversCountPerBiomeIndex = make(map[int]int)
	}
	if s.Free != nil {
		f := *s.Free
		c.Free = &f
	}
	return &c
}

// Area is the label of the current step, e.g. "AREA 1-3".
func (s *State) Area() string {
	return worldgen.FormatTrackIndex(s.StepIndex)
}

// IsDemo reports whether the state is the attract-mode demo.
func (s *State) IsDemo() bool { return s.Level == worldgen.LevelDemo }

// IsTutorial reports whether the state is the tutorial run.
func (s *State) IsTutorial() bool { return s.Level == worldgen.LevelTutorial }

// CurrentIntersection returns the junction the front segment belongs to.
func (s *State) CurrentIntersection() (worldgen.TrackBiome, bool) {
	if len(s.Track) == 0 {
		return worldgen.TrackBiome{}, false
	}
	return s.Track[0].IntersectionBiome()
}

// FailuresAt returns how many runs crashed at biomeIndex.
func (s *State) FailuresAt(biomeIndex int) int {
	return s.GameOversCountPerBiomeIndex[biomeIndex]
}
