package tui

import (
	"io"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memocart/internal/config"
	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/game"
	"github.com/vovakirdan/memocart/internal/storage"
	"github.com/vovakirdan/memocart/internal/worldgen"
)

// Session bundles what one player's program needs.
type Session struct {
	Player  config.Player
	Tuning  config.Tuning
	Runtime core.RuntimeConfig

	// Store is optional; without it nothing is recorded.
	Store *storage.Store
	// Generator may be shared between sessions. Nil makes a private one.
	Generator *worldgen.Generator
	// Memory defaults to Store, or to an in-process flag without a store.
	Memory game.TutorialMemory

	Logger *log.Logger
	Now    func() time.Time
	Rand   func() float64
}

// Model is the Bubble Tea model running one memocart session: the demo
// on the home screen, then the tutorial and the levels.
type Model struct {
	session Session
	engine  *game.Engine
	state   *game.State
	seed    string // the map the player plays, as opposed to the demo's
	runID   string

	screen *core.Screen
	keys   *KeyMapper
	input  *InputTracker
	clock  *frameClock
	scores []storage.ScoreEntry
	logger *log.Logger

	bestLevel    int // this session
	personalBest int // stored for the player on m.seed
	crashes      int
	quitting  bool
}

// runStats is the telemetry recorded when a session ends.
type runStats struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	TickRate       int    `json:"tickRate"`
	Seed           string `json:"seed"`
	BestLevel      int    `json:"bestLevel"`
	Crashes        int    `json:"crashes"`
	Ticks          int    `json:"ticks"`
	GeneratorFlaws int64  `json:"generatorFlaws"`
}

// NewModel creates the model and starts the demo.
func NewModel(sess Session) Model {
	if sess.Now == nil {
		sess.Now = time.Now
	}
	if sess.Rand == nil {
		sess.Rand = rand.Float64
	}
	if sess.Runtime.TickRate <= 0 {
		sess.Runtime.TickRate = sess.Tuning.TickRate
	}
	if sess.Runtime.TickRate <= 0 {
		sess.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if sess.Generator == nil {
		sess.Generator = worldgen.NewGenerator()
	}
	if sess.Memory == nil && sess.Store != nil {
		sess.Memory = sess.Store
	}
	logger := sess.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	messages := game.KeyboardMessages()
	if sess.Tuning.Messages == "touch" {
		messages = game.TouchMessages()
	}
	engine := game.NewEngine(sess.Generator, game.Options{
		Messages: messages,
		Debug: game.Debug{
			FreeControls: sess.Tuning.Debug.FreeControls,
			NoSpeed:      sess.Tuning.Debug.NoSpeed,
		},
		Memory: sess.Memory,
		Rand:   sess.Rand,
		Logger: logger,
	})

	now := sess.Now()
	m := Model{
		session: sess,
		engine:  engine,
		seed:    config.ResolveSeed(sess.Player, now, sess.Rand),
		runID:   storage.NewRunID(),
		screen:  core.NewScreen(sess.Runtime.ScreenW, sess.Runtime.ScreenH),
		keys:    NewKeyMapper(),
		input:   NewInputTracker(),
		clock:   &frameClock{start: now},
		logger:  logger,
	}
	m.state = m.home()
	m.refreshScores()
	return m
}

// home creates a demo run on a throwaway seed.
func (m *Model) home() *game.State {
	seed := config.ResolveSeed(config.Player{Mode: config.ModeRandom}, m.session.Now(), m.session.Rand)
	return m.engine.Create(worldgen.LevelDemo, seed, m.quality(), m.session.Player.Username)
}

func (m *Model) quality() game.Quality {
	return game.Quality(m.session.Player.Quality)
}

func (m *Model) refreshScores() {
	if m.session.Store == nil {
		return
	}
	scores, err := m.session.Store.TopScores(m.seed, maxScoreLines)
	if err != nil {
		m.logger.Warn("could not load highscores", "seed", m.seed, "error", err)
		return
	}
	m.scores = scores

	if m.session.Player.Username == "" {
		return
	}
	best, err := m.session.Store.BestLevel(m.seed, m.session.Player.Username)
	if err != nil {
		m.logger.Warn("could not load best level", "seed", m.seed, "error", err)
		return
	}
	m.personalBest = best
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.session.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.session.Runtime.ScreenW = msg.Width
		m.session.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	actions, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		m.recordSession()
		return m, tea.Quit
	}
	m.input.Press(m.session.Now(), actions...)
	return m, nil
}

func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	frame := m.input.Frame(t)
	prev := m.state

	if frame.Has(core.ActionBack) && !prev.IsDemo() {
		m.logger.Debug("back to home", "level", prev.Level)
		m.state = m.home()
		m.input.Release()
		return m, tickCmd(m.session.Runtime.TickRate)
	}

	next := m.engine.Tick(prev, m.clock.next(t), frame.Events())

	// Leaving the demo lands on the player's own map.
	if prev.IsDemo() && !next.IsDemo() && next.Seed != m.seed {
		next = m.engine.Create(next.Level, m.seed, m.quality(), m.session.Player.Username)
		m.input.Release()
		m.logger.Info("run started", "seed", m.seed, "level", next.Level, "user", m.session.Player.Username)
	}

	if !next.IsDemo() {
		if next.Status == game.StatusGameOver && prev.Status != game.StatusGameOver {
			m.crashes++
		}
		m.bestLevel = max(m.bestLevel, next.LevelReached)
	}

	if hs, ok := game.ScoreFor(prev, next, m.session.Now()); ok {
		m.logger.Info("level reached", "user", hs.Username, "level", hs.Level, "seed", hs.Seed)
		if m.session.Store != nil {
			if err := m.session.Store.RecordScore(hs); err != nil {
				m.logger.Warn("could not record score", "error", err)
			}
			m.refreshScores()
		}
	}

	m.state = next
	return m, tickCmd(m.session.Runtime.TickRate)
}

// recordSession stores the session telemetry. Failures are logged only.
func (m *Model) recordSession() {
	if m.session.Store == nil {
		return
	}
	stats := runStats{
		Width:          m.screen.Width(),
		Height:         m.screen.Height(),
		TickRate:       m.session.Runtime.TickRate,
		Seed:           m.seed,
		BestLevel:      m.bestLevel,
		Crashes:        m.crashes,
		Ticks:          m.clock.tick,
		GeneratorFlaws: m.engine.Generator().Flaws(),
	}
	if err := m.session.Store.RecordSuccess(m.runID, m.session.Player, stats); err != nil {
		m.logger.Warn("could not record stats", "error", err)
	}
}

// context is the subtitle of the home screen.
func (m Model) context() string {
	p := m.session.Player
	label := "RANDOM RUN"
	switch {
	case p.Seed != "":
		label = "SEED " + m.seed
	case p.Mode == config.ModeDaily:
		label = "DAILY RUN " + m.seed
	}
	if p.Username != "" {
		label = p.Username + " - " + label
	}
	return label
}

// State returns the current game state.
func (m Model) State() *game.State {
	return m.state
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	drawScene(m.screen, m.state, sceneInput{Context: m.context(), Scores: m.scores, Best: m.personalBest})
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local session.
func Run(sess Session) error {
	model := NewModel(sess)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		if sess.Store != nil {
			//nolint:errcheck // Best-effort telemetry, the run error wins
			sess.Store.RecordFailure(model.runID, sess.Player, err)
		}
		return err
	}
	return nil
}
