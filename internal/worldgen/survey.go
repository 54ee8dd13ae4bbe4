package worldgen

import (
	"fmt"
	"io"
	"strings"
)

// LevelSurvey lists what a level is made of, bottom up.
type LevelSurvey struct {
	Level  int
	Tracks []TrackSegment
	Biomes []Biome
}

// Survey walks levels 1..levelMax-1 of seed and records the segments and
// the sequence of distinct biomes met on each. Intended for tuning.
func (g *Generator) Survey(levelMax int, seed string) []LevelSurvey {
	var levels []LevelSurvey
	prevStep := 0
	for l := 1; l < levelMax; l++ {
		stepIndex := LevelStepIndex(l)
		ls := LevelSurvey{Level: l, Tracks: make([]TrackSegment, 0, stepIndex-prevStep)}
		var current *Biome
		for step := prevStep; step < stepIndex; step++ {
			t := g.Track(step, seed)
			if u, ok := t.UniqueBiome(); ok && (current == nil || u.Index != current.Index) {
				b := u.Biome
				current = &b
				ls.Biomes = append(ls.Biomes, b)
			}
			ls.Tracks = append(ls.Tracks, t)
		}
		levels = append(levels, ls)
		prevStep = stepIndex
	}
	return levels
}

// Count returns how many of the level's biomes are of type t.
func (l LevelSurvey) Count(t BiomeType) int {
	n := 0
	for _, b := range l.Biomes {
		if b.Type == t {
			n++
		}
	}
	return n
}

// DescribeStep locates a track step: its area label and the level band
// holding it.
func DescribeStep(stepIndex int) string {
	span := LevelForStepIndex(stepIndex)
	return fmt.Sprintf("step %d: %s, level %d band (biomes %d-%d)",
		stepIndex, FormatTrackIndex(stepIndex), span.Level, span.FirstBiome, span.LastBiome)
}

// PrintBiome names a biome for humans. Junctions print the correct way to go.
func PrintBiome(b Biome) string {
	if b.Type == BiomeIntersection {
		if b.Seed > 0.5 {
			return "LEFT"
		}
		return "RIGHT"
	}
	return b.Type.String()
}

// WriteSurvey prints one line per level: "L1: LEFT coal empty".
func WriteSurvey(w io.Writer, levels []LevelSurvey) error {
	for _, l := range levels {
		names := make([]string, len(l.Biomes))
		for i, b := range l.Biomes {
			names[i] = PrintBiome(b)
		}
		if _, err := fmt.Fprintf(w, "L%d: %s\n", l.Level, strings.Join(names, " ")); err != nil {
			return err
		}
	}
	return nil
}
