package worldgen

import (
	"fmt"
	"math"

	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/prng"
)

// Track layout constants.
const (
	BiomeFreq             = 20                                      // steps per biome
	BiomeWindowTransition = 8                                       // steps spent blending two biomes
	BiomePad              = (BiomeFreq - BiomeWindowTransition) / 2 // steps before/after the blend
	BiomeDur              = 2*BiomePad + 1                          // active steps of a biome
	LevelSafeMult         = BiomeSafeEach * BiomeFreq               // steps per area level
)

// Generated value bounds. The exact numbers keep the geometry away from
// degenerate boundaries.
const (
	MinTurn    = -0.4999
	MaxTurn    = 0.4999
	MinDescent = 0.1
	MaxDescent = 0.9999
)

// Projection scales shared with the renderer.
const (
	TurnDX    = 0.7  // lateral range of a full turn
	DescentDY = -0.6 // the maximum possible descent
)

const (
	intersectionTurnSmoothing = 5
	flawEpsilon               = 1e-9
)

// TrackBiome is a biome seen from one track step.
type TrackBiome struct {
	Biome
	LocalIndex int // starts negative while the biome fades in
	Duration   int // active steps, without the fading
}

// Active reports whether the step is still inside the biome's active window.
func (b TrackBiome) Active() bool {
	return b.LocalIndex < b.Duration
}

// BiomeSlot says which of a segment's two biomes something refers to.
type BiomeSlot uint8

const (
	SlotNone BiomeSlot = iota
	SlotA
	SlotB
)

// TrackSegment is one step of track.
type TrackSegment struct {
	Turn       float64 // [-0.5, 0.5]
	Descent    float64 // [0, 1]
	BiomeA     TrackBiome
	BiomeB     TrackBiome
	BiomeMix   float64 // 0 = all A, 1 = all B
	TrackSeed  float64
	TrackIndex int

	Unique       BiomeSlot // set only outside transitions
	Intersection BiomeSlot // whichever side is a junction
}

func (t TrackSegment) slot(s BiomeSlot) (TrackBiome, bool) {
	switch s {
	case SlotA:
		return t.BiomeA, true
	case SlotB:
		return t.BiomeB, true
	}
	return TrackBiome{}, false
}

// UniqueBiome returns the only active biome, if the segment is not blending.
func (t TrackSegment) UniqueBiome() (TrackBiome, bool) {
	return t.slot(t.Unique)
}

// IntersectionBiome returns the junction biome this segment belongs to, if any.
func (t TrackSegment) IntersectionBiome() (TrackBiome, bool) {
	return t.slot(t.Intersection)
}

// DominantBiome returns the biome with the larger share of the mix.
func (t TrackSegment) DominantBiome() TrackBiome {
	if t.BiomeMix > 0.5 {
		return t.BiomeB
	}
	return t.BiomeA
}

// Flaw flags reported by genTrack when a weight sum collapses to zero.
type Flaw uint8

const (
	FlawTurnWeights Flaw = 1 << iota
	FlawSlopeWeights
)

// BiomeIndexForTrack returns the biome a track step starts counting from.
func BiomeIndexForTrack(trackIndex int) int {
	return int(math.Ceil(float64(trackIndex) / BiomeFreq))
}

// globalNoise holds the per-seed phase offsets of the noise bands.
type globalNoise [8]float64

func drawGlobalNoise(seed string) globalNoise {
	r := prng.New(prng.Key("track", seed))
	var g globalNoise
	for i := range g {
		g[i] = r.Float64()
	}
	return g
}

// genTrack builds one segment from its two biomes.
// a is the biome of BiomeIndexForTrack(trackIndex), b the one before it.
func genTrack(trackIndex int, seed string, a, b Biome) (TrackSegment, Flaw) {
	var flaw Flaw
	g := drawGlobalNoise(seed)
	local := prng.New(prng.Key("track", trackIndex, seed))
	trackSeed := local.Float64()

	biomeIndex := BiomeIndexForTrack(trackIndex)
	delta := biomeIndex*BiomeFreq - trackIndex
	biomeA := TrackBiome{Biome: a, LocalIndex: BiomePad + delta, Duration: BiomeDur}
	biomeB := TrackBiome{Biome: b, LocalIndex: delta - (BiomeFreq - BiomePad), Duration: BiomeDur}
	biomeMix := core.Smoothstep(BiomePad, BiomeFreq-BiomePad, float64(delta))

	withBiome := func(f func(TrackBiome) float64) float64 {
		return core.Mix(f(biomeA), f(biomeB), biomeMix)
	}

	slowTurnFactor := withBiome(func(b TrackBiome) float64 {
		if b.Seed < 0.2 {
			return 0.1
		}
		return 1
	})
	slowSlopeFactor := withBiome(func(b TrackBiome) float64 {
		return 0.01 + math.Pow(math.Mod(b.Seed*9, 1.5), 3)
	})
	normalTurnFactor := withBiome(func(b TrackBiome) float64 {
		return math.Pow(math.Mod(b.Seed*80, 1), 2)
	})
	normalSlopeFactor := withBiome(func(b TrackBiome) float64 {
		return math.Pow(math.Mod(b.Seed*4, 1), 2)
	})
	crazyTurnFactor := withBiome(func(b TrackBiome) float64 {
		amp := 0.1
		if b.Type == BiomeDangerous {
			amp = 0.5
		}
		return amp * math.Mod(b.Seed*11, 1)
	})
	crazySlopeFactor := withBiome(func(b TrackBiome) float64 {
		r := crazyTurnFactor + math.Mod(b.Seed*3, 1)
		if b.Type == BiomeDangerous {
			switch {
			case r < 0.1:
				return 10
			case r < 0.2:
				return 1
			}
			return 0.2 * r
		}
		return 0.1 * r
	})

	ti := float64(trackIndex)
	slowTurn := math.Cos(7*g[0] + 0.12*ti)
	slowSlope := math.Cos(999*g[1] + 0.2*ti)
	normalTurn := math.Cos(9*g[2] + 0.3*ti)
	normalSlope := math.Sin(99*g[3] + 0.35*(ti-444))
	crazyTurn := core.Mix(
		math.Sin(10*g[4]+0.7*ti),
		math.Cos(20*g[5]+2*ti),
		0.3-0.4*local.Float64(),
	)
	jitter := 5 * (local.Float64() - 0.5)
	crazySlope := core.Mix(
		core.Mix(jitter, math.Cos(20*g[6]+3*ti), local.Float64()),
		math.Sin(30*g[7]+0.8*ti),
		0.3,
	)

	turnFactorsSum := crazyTurnFactor + normalTurnFactor + slowTurnFactor
	if turnFactorsSum == 0 {
		flaw |= FlawTurnWeights
		turnFactorsSum = flawEpsilon
	}
	slopeFactorsSum := slowSlopeFactor + crazySlopeFactor + normalSlopeFactor
	if slopeFactorsSum == 0 {
		flaw |= FlawSlopeWeights
		slopeFactorsSum = flawEpsilon
	}

	turn := (crazyTurnFactor*crazyTurn +
		normalTurnFactor*normalTurn +
		slowTurnFactor*slowTurn) / (turnFactorsSum * 2)

	averageSlope := withBiome(func(b TrackBiome) float64 {
		a := 0.5
		switch b.Type {
		case BiomeFinish:
			a = 0.1
		case BiomeFire:
			a = 0.8
		case BiomeDangerous:
			a = 0.2
		}
		return a + math.Mod(b.Seed*9, 0.05)
	})
	slopeAmp := withBiome(func(b TrackBiome) float64 {
		if b.Type == BiomeDangerous {
			return 0.8
		}
		return 0.3
	})
	descent := averageSlope + slopeAmp*(slowSlopeFactor*slowSlope+
		normalSlopeFactor*normalSlope+
		crazySlopeFactor*crazySlope)/slopeFactorsSum

	descent = withBiome(func(b TrackBiome) float64 {
		r := math.Mod(b.Seed*11, 1)
		if r < 0.2 && !b.Safe {
			return descent * 0.2 // flat stretch
		}
		if r > 0.8 {
			return descent + 0.6 // steep stretch
		}
		return descent
	})

	turn = core.ClampF(turn, MinTurn, MaxTurn)
	descent = core.ClampF(descent, MinDescent, MaxDescent)

	turn = withBiome(func(b TrackBiome) float64 {
		switch b.Type {
		case BiomeFinish:
			return 0
		case BiomeIntersection:
			return intersectionTurn(b, trackIndex, trackSeed)
		}
		return turn
	})
	// Junction curves can exceed the generic range; the packed texture cannot.
	turn = core.ClampF(turn, MinTurn, MaxTurn)

	seg := TrackSegment{
		Turn:       turn,
		Descent:    descent,
		BiomeA:     biomeA,
		BiomeB:     biomeB,
		BiomeMix:   biomeMix,
		TrackSeed:  trackSeed,
		TrackIndex: trackIndex,
	}
	switch {
	case biomeA.Type == BiomeIntersection:
		seg.Intersection = SlotA
	case biomeB.Type == BiomeIntersection:
		seg.Intersection = SlotB
	}
	switch biomeMix {
	case 0:
		seg.Unique = SlotA
	case 1:
		seg.Unique = SlotB
	}
	return seg, flaw
}

// intersectionTurn is the fork curve: the track leaves neutral at a seeded
// point inside the biome, holds its divergence, then settles back.
// The main track turns left when the biome seed is above 0.5.
func intersectionTurn(b TrackBiome, trackIndex int, trackSeed float64) float64 {
	window := math.Ceil(float64(BiomeDur-intersectionTurnSmoothing) / 2)
	start := math.Floor(math.Mod(b.Seed*987, window))
	ti := float64(trackIndex)
	speed := 0.7 + 0.2*math.Cos(7*b.Seed+0.6*ti+0.3*math.Sin(9+trackSeed+1.2*ti))
	sign := 1.0
	if b.Seed > 0.5 {
		sign = -1
	}
	idx := float64(b.LocalIndex)
	return core.Mix(0, sign*speed,
		core.Smoothstep(start, start+intersectionTurnSmoothing, idx)*
			core.Smoothstep(BiomeDur, BiomeDur-intersectionTurnSmoothing, idx),
	)
}

// FormatTrackIndex renders the area label shown to the player, e.g. "AREA 1-3".
func FormatTrackIndex(trackIndex int) string {
	level, biome := AreaOfTrackIndex(trackIndex)
	return fmt.Sprintf("AREA %d-%d", level, biome)
}

// AreaOfTrackIndex returns the 1-based area level and biome of a step.
func AreaOfTrackIndex(trackIndex int) (level, biome int) {
	t := float64(trackIndex - 1)
	l := math.Max(0, math.Floor(t/LevelSafeMult))
	b := math.Max(0, math.Floor((t-LevelSafeMult*l)/BiomeFreq))
	return int(l) + 1, int(b) + 1
}
