// Package prng provides keyed deterministic random streams.
// The same key always yields the same sequence, on every platform and run,
// which is what lets the world be regenerated from a seed string alone.
package prng

import (
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Stream is a deterministic sequence of floats in [0, 1) derived from a key.
type Stream struct {
	r *rand.Rand
}

// New creates a stream for the given key.
func New(key string) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(keyWord(key, "a"), keyWord(key, "b")))}
}

// Float64 returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Key joins key parts with "_", formatting ints without allocation-heavy fmt.
// Key("biome", 12, "abc") == "biome_12_abc".
func Key(parts ...any) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte('_')
		}
		switch v := p.(type) {
		case string:
			sb.WriteString(v)
		case int:
			sb.WriteString(strconv.Itoa(v))
		case int64:
			sb.WriteString(strconv.FormatInt(v, 10))
		case float64:
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		default:
			sb.WriteString("?")
		}
	}
	return sb.String()
}

// keyWord hashes a salted key into one PCG seed word.
func keyWord(key, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(salt))
	return h.Sum64()
}
