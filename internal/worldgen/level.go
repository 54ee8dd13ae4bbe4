package worldgen

import "math"

// Special levels.
const (
	LevelDemo     = -1
	LevelTutorial = 0
)

const demoLevelDepth = 8

// biomesForLevel is the number of biomes a run of level l starts above the finish.
func biomesForLevel(l int) int {
	f := float64(l)
	return 3 * int(math.Floor(f+0.2*f*f))
}

// LevelStepBiomeIndex returns the biome a level starts in.
func LevelStepBiomeIndex(level int) int {
	switch level {
	case LevelDemo:
		return biomesForLevel(demoLevelDepth)
	case LevelTutorial:
		return biomesForLevel(1)
	}
	return biomesForLevel(level)
}

// LevelStepIndex returns the track step a level starts at.
func LevelStepIndex(level int) int {
	return BiomeFreq * LevelStepBiomeIndex(level)
}

// LevelSpan describes where a biome sits in the level ladder.
type LevelSpan struct {
	Level      int
	FirstBiome int  // lowest biome index that belongs to Level
	LastBiome  int  // the biome Level starts in
	Starts     bool // the biome is exactly where Level starts
}

// LevelForBiomeIndex finds the smallest level >= 1 whose start is at or
// above biomeIndex.
func LevelForBiomeIndex(biomeIndex int) LevelSpan {
	prev := 0
	for l := 1; ; l++ {
		start := biomesForLevel(l)
		if start >= biomeIndex {
			return LevelSpan{
				Level:      l,
				FirstBiome: prev + 1,
				LastBiome:  start,
				Starts:     start == biomeIndex,
			}
		}
		prev = start
	}
}

// LevelForStepIndex is LevelForBiomeIndex for a track step.
func LevelForStepIndex(stepIndex int) LevelSpan {
	return LevelForBiomeIndex(BiomeIndexForTrack(stepIndex))
}

// ReverseBiomeIndex counts biomes from the top of a level's run:
// the starting biome is 0.
func ReverseBiomeIndex(level, biomeIndex int) int {
	return LevelStepBiomeIndex(level) - biomeIndex
}
