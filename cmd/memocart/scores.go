package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/memocart/internal/config"
	"github.com/vovakirdan/memocart/internal/platform/tui"
	"github.com/vovakirdan/memocart/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [seed]",
	Short: "Show highscores",
	Long: `Browse the highscores of every seed played, or print the top
players of one seed with --plain. --clear deletes a seed's scores. Without a seed, --plain prints today's
daily run.

Examples:
  memocart scores
  memocart scores 2024-05-01
  memocart scores --plain --limit 10
  memocart scores 2024-05-01 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive view")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 5, "Number of players to print with --plain")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the given seed")
}

func runScores(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	seed := ""
	if len(args) == 1 {
		seed = args[0]
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if seed == "" {
			return fmt.Errorf("--clear needs a seed")
		}
		if err := store.ClearScores(seed); err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Printf("Cleared highscores for %s\n", seed)
		return nil
	}

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, seed, width, height)
	}

	if seed == "" {
		seed = config.DailySeed(time.Now())
	}
	scores, err := store.TopScores(seed, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("Highscores - %s\n", seed)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'memocart play --seed %s --user <name>' to set the first one!\n", seed)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "Rank", "Player", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8s  %-5d  %s\n", i+1, entry.Username, entry.Level, dateStr)
	}
	return nil
}
