package prng

import (
	"math"
	"testing"
)

func TestStreamReproducible(t *testing.T) {
	a := New("biome_3_abc")
	b := New("biome_3_abc")

	for i := 0; i < 100; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
	}
}

func TestStreamRange(t *testing.T) {
	s := New("track_42_seed")
	for i := 0; i < 10000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

func TestDistinctKeysDiffer(t *testing.T) {
	keys := []string{"biome_1_abc", "biome_2_abc", "biome_1_abd", "track_1_abc", "biome_min_1_abc"}
	seen := make(map[float64]string)
	for _, k := range keys {
		v := New(k).Float64()
		if other, ok := seen[v]; ok {
			t.Errorf("keys %q and %q produced the same first draw %v", k, other, v)
		}
		seen[v] = k
	}
}

func TestNeighbourKeysUncorrelated(t *testing.T) {
	// First draws of consecutive biome keys should look uniform, not drift.
	const n = 2000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := New(Key("biome", i, "seed")).Float64()
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if math.Abs(mean-0.5) > 0.03 {
		t.Errorf("mean of first draws = %f, expected close to 0.5", mean)
	}
	if math.Abs(variance-1.0/12) > 0.01 {
		t.Errorf("variance of first draws = %f, expected close to %f", variance, 1.0/12)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		parts    []any
		expected string
	}{
		{[]any{"biome", 12, "abc"}, "biome_12_abc"},
		{[]any{"track", -3, "x"}, "track_-3_x"},
		{[]any{"track", "x"}, "track_x"},
		{[]any{"v", 0.5}, "v_0.5"},
	}
	for _, tc := range tests {
		if got := Key(tc.parts...); got != tc.expected {
			t.Errorf("Key(%v) = %q, expected %q", tc.parts, got, tc.expected)
		}
	}
}
