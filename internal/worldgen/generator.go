package worldgen

import (
	"container/list"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memocart/internal/core"
)

// DefaultSeedLimit is how many seeds a Generator keeps memoized.
const DefaultSeedLimit = 32

// seedCache holds everything memoized for one seed.
type seedCache struct {
	biomes map[int]Biome
	tracks map[int]TrackSegment
	used   *list.Element
}

// Generator memoizes biomes and track segments per (index, seed).
// Only the most recently used seeds are kept; older ones are dropped and
// regenerated on demand. It is safe for concurrent use; SSH sessions
// share one instance.
type Generator struct {
	cache     bool
	seedLimit int
	logger    *log.Logger
	flaws     atomic.Int64

	mu    sync.Mutex
	seeds map[string]*seedCache
	lru   *list.List
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger routes generation warnings to logger.
func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithoutCache recomputes every biome and segment. Used while tuning
// generation constants.
func WithoutCache() Option {
	return func(g *Generator) {
		g.cache = false
	}
}

// WithSeedLimit caps how many seeds stay memoized. Values below 1 are
// ignored.
func WithSeedLimit(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.seedLimit = n
		}
	}
}

// NewGenerator creates a caching generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		cache:     true,
		seedLimit: DefaultSeedLimit,
		logger:    log.New(io.Discard),
		seeds:     make(map[string]*seedCache),
		lru:       list.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// entry returns the cache of seed, marking it as most recently used and
// evicting the oldest seeds past the limit. g.mu must be held.
func (g *Generator) entry(seed string) *seedCache {
	if c, ok := g.seeds[seed]; ok {
		g.lru.MoveToFront(c.used)
		return c
	}

	c := &seedCache{
		biomes: make(map[int]Biome),
		tracks: make(map[int]TrackSegment),
		used:   g.lru.PushFront(seed),
	}
	g.seeds[seed] = c
	for g.lru.Len() > g.seedLimit {
		oldest := g.lru.Back()
		g.lru.Remove(oldest)
		delete(g.seeds, oldest.Value.(string))
	}
	return c
}

// Biome returns the biome at biomeIndex for seed.
func (g *Generator) Biome(biomeIndex int, seed string) Biome {
	if g.cache {
		g.mu.Lock()
		b, ok := g.entry(seed).biomes[biomeIndex]
		g.mu.Unlock()
		if ok {
			return b
		}
	}

	b := genBiome(biomeIndex, seed)

	if g.cache {
		g.mu.Lock()
		g.entry(seed).biomes[biomeIndex] = b
		g.mu.Unlock()
	}
	return b
}

// Track returns the segment at trackIndex for seed.
func (g *Generator) Track(trackIndex int, seed string) TrackSegment {
	if g.cache {
		g.mu.Lock()
		t, ok := g.entry(seed).tracks[trackIndex]
		g.mu.Unlock()
		if ok {
			return t
		}
	}

	t := g.generate(trackIndex, seed)

	if g.cache {
		g.mu.Lock()
		g.entry(seed).tracks[trackIndex] = t
		g.mu.Unlock()
	}
	return t
}

func (g *Generator) generate(trackIndex int, seed string) TrackSegment {
	biomeIndex := BiomeIndexForTrack(trackIndex)
	t, flaw := genTrack(trackIndex, seed, g.Biome(biomeIndex, seed), g.Biome(biomeIndex-1, seed))
	if flaw != 0 {
		g.flaws.Add(1)
		g.logger.Warn("degenerate track weights",
			"track", trackIndex,
			"seed", seed,
			"turn", flaw&FlawTurnWeights != 0,
			"slope", flaw&FlawSlopeWeights != 0,
		)
	}
	return t
}

// Window returns size consecutive segments going down from top:
// top, top-1, ..., top-size+1.
func (g *Generator) Window(top, size int, seed string) []TrackSegment {
	out := make([]TrackSegment, 0, size)
	for i := range size {
		out = append(out, g.Track(top-i, seed))
	}
	return out
}

// PathOffset sums SegmentDelta over segments [0, stepIndex). The segments
// are generated on the fly and not memoized; only their biomes are.
func (g *Generator) PathOffset(stepIndex int, seed string) core.Vec3 {
	var offset core.Vec3
	for i := 0; i < stepIndex; i++ {
		offset = offset.Add(SegmentDelta(g.generate(i, seed)))
	}
	return offset
}

// Flaws returns how many generated segments hit a degenerate weight sum.
func (g *Generator) Flaws() int64 {
	return g.flaws.Load()
}

// CacheSize returns the number of memoized biomes and segments.
func (g *Generator) CacheSize() (biomes, tracks int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.seeds {
		biomes += len(c.biomes)
		tracks += len(c.tracks)
	}
	return biomes, tracks
}

// CachedSeeds returns how many seeds are memoized.
func (g *Generator) CachedSeeds() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.seeds)
}
