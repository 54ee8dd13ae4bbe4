package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/memocart/internal/config"
	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/platform/tui"
	"github.com/vovakirdan/memocart/internal/storage"
	"github.com/vovakirdan/memocart/internal/worldgen"
)

var (
	flagQuality string
	flagMode    string
	flagUser    string
	flagSeed    string
	flagSave    bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play memocart in this terminal",
	Long: `Start on the home screen; press SPACE to ride.

Controls:
  Left/Right (A/D)  - Pick the branch at the next junction
  Space (hold)      - Brake
  Esc/B             - Back to the home screen
  Q/Ctrl+C          - Quit

Modes:
  random - a new mine every session
  daily  - the mine of the day, shared by every player

Examples:
  memocart play --user alice
  memocart play --mode daily --save
  memocart play --seed hello --quality medium`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagQuality, "quality", "", "Detail: low, medium, high (longer look-ahead)")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Mode: random, daily")
	playCmd.Flags().StringVar(&flagUser, "user", "", "Username for highscores (3-8 letters or digits)")
	playCmd.Flags().StringVar(&flagSeed, "seed", "", "Play a specific mine")
	playCmd.Flags().BoolVar(&flagSave, "save", false, "Save quality, mode and username to the user config")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write debug logs to this file")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	player := cfg.Player
	if flagQuality != "" {
		player.Quality = flagQuality
	}
	if flagMode != "" {
		player.Mode = flagMode
	}
	if flagUser != "" {
		player.Username = flagUser
	}
	player.Seed = flagSeed

	if errs := config.Validate(player); len(errs) > 0 {
		return fmt.Errorf("invalid player settings:\n%s", config.JoinErrors(errs))
	}

	if flagSave {
		cfg.Player = player
		path := flagConfig
		if path == "" {
			path = config.UserConfigPath()
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
	}

	logger, closeLog, err := playLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil // Continue without storage - game still works
	}
	if store != nil {
		defer store.Close()
	}

	genOpts := []worldgen.Option{worldgen.WithLogger(logger)}
	if cfg.Tuning.Debug.NoCache {
		genOpts = append(genOpts, worldgen.WithoutCache())
	}

	sess := tui.Session{
		Player: player,
		Tuning: cfg.Tuning,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Tuning.TickRate,
		},
		Store:     store,
		Generator: worldgen.NewGenerator(genOpts...),
		Logger:    logger,
	}
	if err := tui.Run(sess); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// playLogger logs to a file while the alternate screen owns the terminal.
func playLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "memocart",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
