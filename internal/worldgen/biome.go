// Package worldgen turns a seed string and a step index into the mine:
// biome placement, track segments, level boundaries and the packed form
// the renderer samples. Every function here is a pure function of its
// arguments; Generator layers memoization on top.
package worldgen

import (
	"math"
	"strings"

	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/prng"
)

// BiomeType classifies a zone of the mine. Values must fit in a nibble,
// the renderer packs two of them per texel.
type BiomeType uint8

const (
	BiomeIntersection BiomeType = 0 // the track forks, the player must pick a side
	BiomeEmpty        BiomeType = 1
	BiomeDark         BiomeType = 2 // fireflies
	BiomeWired        BiomeType = 3
	BiomeCoal         BiomeType = 4
	BiomeGold         BiomeType = 5
	BiomePlant        BiomeType = 6
	BiomeDangerous    BiomeType = 7 // erratic turns and drops
	BiomeSapphire     BiomeType = 8
	BiomeFire         BiomeType = 9
	BiomeUFO          BiomeType = 10
	BiomeVoid         BiomeType = 11 // filler between two junctions
	BiomeIce          BiomeType = 12
	BiomeFinish       BiomeType = 15 // last tile of the run
)

// MaxBiomeType is the largest value the packed texture can carry.
const MaxBiomeType = 15

// BiomeSafeEach is the period of safe biomes. Safe biomes never host a junction.
const BiomeSafeEach = 6

var biomeNames = map[BiomeType]string{
	BiomeIntersection: "intersection",
	BiomeEmpty:        "empty",
	BiomeDark:         "dark",
	BiomeWired:        "wired",
	BiomeCoal:         "coal",
	BiomeGold:         "gold",
	BiomePlant:        "plant",
	BiomeDangerous:    "dangerous",
	BiomeSapphire:     "sapphire",
	BiomeFire:         "fire",
	BiomeUFO:          "ufo",
	BiomeVoid:         "void",
	BiomeIce:          "ice",
	BiomeFinish:       "finish",
}

// String returns the lowercase name of the biome type.
func (t BiomeType) String() string {
	if name, ok := biomeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseBiomeType resolves a biome name, case-insensitively.
func ParseBiomeType(s string) (BiomeType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range biomeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// Biome identifies a thematic zone of the mine.
type Biome struct {
	Index int
	Seed  float64 // [0,1), drives every per-biome decision
	Type  BiomeType
	Safe  bool
}

// biomeWeight is the frequency weight of a type as a function of biome index.
type biomeWeight struct {
	typ    BiomeType
	weight func(i float64) float64
}

// ramp fades a weight from a to b while the biome index goes from `from` to `to`.
func ramp(from, to, a, b float64) func(float64) float64 {
	return func(i float64) float64 {
		return core.Mix(a, b, core.Smoothstep(from, to, i))
	}
}

func constant(w float64) func(float64) float64 {
	return func(float64) float64 { return w }
}

// Rare biomes only show up deep in the mine, plain ones fade out.
var biomeWeights = []biomeWeight{
	{BiomeUFO, ramp(40, 80, 0, 1)},
	{BiomeFire, ramp(20, 60, 0, 2)},
	{BiomeSapphire, ramp(12, 40, 0, 2)},
	{BiomeIce, ramp(8, 30, 0, 3)},
	{BiomePlant, constant(4)},
	{BiomeGold, constant(6)},
	{BiomeCoal, constant(8)},
	{BiomeDark, ramp(0, 20, 4, 10)},
	{BiomeDangerous, ramp(4, 40, 5, 15)},
	{BiomeEmpty, ramp(0, 60, 30, 10)},
	{BiomeWired, ramp(0, 60, 30, 12)},
}

// genBiomeType picks a type for biomeIndex by walking the cumulative
// distribution of the index-dependent weights with r in [0,1).
func genBiomeType(biomeIndex int, r float64) BiomeType {
	i := float64(biomeIndex)
	weights := make([]float64, len(biomeWeights))
	var sum float64
	for k, bw := range biomeWeights {
		weights[k] = bw.weight(i)
		sum += weights[k]
	}
	if sum <= 0 {
		return BiomeEmpty
	}
	for k, w := range weights {
		r -= w / sum
		if r < 0 {
			return biomeWeights[k].typ
		}
	}
	return biomeWeights[len(biomeWeights)-1].typ
}

const (
	intersectionRoulette = 3
	tutorialBiomeIndex   = 2
	firstRouletteIndex   = 6
	voidProbability      = 0.8
)

// isSafeBiome marks one biome every BiomeSafeEach; every index <= 0 is safe.
func isSafeBiome(biomeIndex int) bool {
	return biomeIndex%BiomeSafeEach <= 0
}

// genBiomeBase generates a biome without looking at its neighbours.
func genBiomeBase(biomeIndex int, seed string) Biome {
	r := prng.New(prng.Key("biome", biomeIndex, seed))
	b := Biome{
		Index: biomeIndex,
		Seed:  r.Float64(),
		Safe:  isSafeBiome(biomeIndex),
	}

	if biomeIndex <= 0 {
		b.Type = BiomeFinish
		return b
	}

	b.Type = genBiomeType(biomeIndex, r.Float64())

	switch {
	case biomeIndex == tutorialBiomeIndex:
		// The tutorial junction always wants a left turn.
		b.Type = BiomeIntersection
		b.Seed = 0.5 + 0.5*b.Seed
	case biomeIndex > firstRouletteIndex && !b.Safe:
		// One slot out of each period hosts a junction. The last slot can never
		// win so two periods cannot put junctions back to back.
		ref := biomeIndex / intersectionRoulette
		winner := int(math.Floor(
			prng.New(prng.Key("biome_min", ref, seed)).Float64() * (intersectionRoulette - 1),
		))
		if biomeIndex%intersectionRoulette == winner {
			b.Type = BiomeIntersection
		}
	}

	return b
}

// neighborPass usually empties a biome squeezed between two junctions.
func neighborPass(b, prev, next Biome, seed string) Biome {
	if b.Type == BiomeIntersection || b.Type == BiomeFinish || b.Safe {
		return b
	}
	if prev.Type != BiomeIntersection || next.Type != BiomeIntersection {
		return b
	}
	if prng.New(prng.Key("biome_void", b.Index, seed)).Float64() < voidProbability {
		b.Type = BiomeVoid
	}
	return b
}

// genBiome is the uncached, neighbour-corrected biome for biomeIndex.
func genBiome(biomeIndex int, seed string) Biome {
	return neighborPass(
		genBiomeBase(biomeIndex, seed),
		genBiomeBase(biomeIndex-1, seed),
		genBiomeBase(biomeIndex+1, seed),
		seed,
	)
}
