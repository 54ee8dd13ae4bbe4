package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memocart/internal/worldgen"
)

var (
	flagSurveySeed   string
	flagSurveyLevels int
	flagTexture      int
	flagFind         string
	flagStep         int
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Print the biome layout of a seed",
	Long: `Print, level by level, the biomes a seed generates from the top of the
mine down. Junctions show the side that leads on. Useful to check a map
or to cheat at the daily run.

With --texture N, also dump the packed track window of the first N steps
of every level, as the renderer would sample it (4 bytes per step, hex).
With --find TYPE, count the biomes of that type on every level instead.
--step N tells which area and level band a track step belongs to.

Examples:
  memocart survey --seed hello
  memocart survey --seed hello --find ice
  memocart survey --seed hello --step 250
  memocart survey --seed 2024-05-01 --levels 5 --texture 8`,
	Args: cobra.NoArgs,
	RunE: runSurvey,
}

func init() {
	surveyCmd.Flags().StringVar(&flagSurveySeed, "seed", "", "Seed to survey (required)")
	surveyCmd.Flags().IntVar(&flagSurveyLevels, "levels", 3, "Number of levels to print")
	surveyCmd.Flags().IntVar(&flagTexture, "texture", 0, "Dump the packed window of this many steps per level")
	surveyCmd.Flags().StringVar(&flagFind, "find", "", "Count biomes of this type per level (e.g. ice, ufo)")
	surveyCmd.Flags().IntVar(&flagStep, "step", 0, "Locate a track step instead of surveying")
	//nolint:errcheck // The flag exists
	surveyCmd.MarkFlagRequired("seed")
}

func runSurvey(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("step") {
		fmt.Println(worldgen.DescribeStep(flagStep))
		return nil
	}
	if flagSurveyLevels < 1 {
		return fmt.Errorf("--levels must be at least 1")
	}

	gen := worldgen.NewGenerator()
	levels := gen.Survey(flagSurveyLevels+1, flagSurveySeed) // levelMax is exclusive

	if flagFind != "" {
		typ, ok := worldgen.ParseBiomeType(flagFind)
		if !ok {
			return fmt.Errorf("unknown biome type %q", flagFind)
		}
		for _, l := range levels {
			fmt.Printf("L%d: %d %s\n", l.Level, l.Count(typ), typ)
		}
		return nil
	}

	if err := worldgen.WriteSurvey(os.Stdout, levels); err != nil {
		return err
	}

	if flagTexture <= 0 {
		return nil
	}
	fmt.Println()
	buf := make([]byte, flagTexture*worldgen.BytesPerSegment)
	for level := 1; level <= flagSurveyLevels; level++ {
		window := gen.Window(worldgen.LevelStepIndex(level), flagTexture, flagSurveySeed)
		if err := worldgen.EncodeTrack(window, buf); err != nil {
			return fmt.Errorf("level %d: %w", level, err)
		}
		fmt.Printf("L%d: %s\n", level, hex.EncodeToString(buf))
	}
	return nil
}
