package config

import (
	"strconv"
	"time"
)

// DailySeed returns the seed shared by every player on the given day: the
// UTC date as YYYY-MM-DD.
func DailySeed(now time.Time) string {
	return now.UTC().Format(time.DateOnly)
}

// ResolveSeed picks the seed for a new game. An explicit seed always wins;
// daily mode uses DailySeed; random mode draws from rnd.
func ResolveSeed(p Player, now time.Time, rnd func() float64) string {
	if p.Seed != "" {
		return p.Seed
	}
	if p.Mode == ModeDaily {
		return DailySeed(now)
	}
	return strconv.FormatFloat(rnd(), 'f', -1, 64)
}
