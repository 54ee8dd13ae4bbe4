// memocart is an endless mine-cart ride through a procedurally generated
// mine, played in the terminal. Remember the junctions: a wrong turn ends
// the run.
//
// Usage:
//
//	memocart play            - Play locally
//	memocart serve           - Start SSH server for remote play
//	memocart scores [seed]   - Show highscores
//	memocart survey          - Print the biome layout of a seed
//	memocart config          - Inspect or create the config file
//
// Global flags:
//
//	--config <path> - Use a specific config file
//	--fps <rate>    - Set tick rate (overrides config)
//	--db <path>     - Set database path (overrides config)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memocart/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagFPS    int
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memocart",
	Short: "memocart - a mine-cart memory game in your terminal",
	Long: `memocart sends a cart down an endless mine generated from a seed.
At every junction pick LEFT or RIGHT; the wrong branch ends in a wall.
The mine is the same for everyone sharing a seed, so memory is the game.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View highscores
  survey   - Print the layout of a seed
  config   - Inspect or create the config file

Examples:
  memocart play --user alice
  memocart play --mode daily --quality high
  memocart serve --ssh :2222
  memocart scores 2024-05-01
  memocart survey --seed hello --levels 3`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default: ~/.memocart/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in frames per second (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default: from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(surveyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagFPS > 0 {
		cfg.Tuning.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg, nil
}
