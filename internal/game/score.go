package game

import "time"

// HighScore is what a run reports when the player reaches a new level.
type HighScore struct {
	Username string
	Level    int
	Seed     string
	Date     time.Time
}

// ScoreFor returns the score to record for the transition prev -> next,
// if any. Only named players reaching a real level count.
func ScoreFor(prev, next *State, now time.Time) (HighScore, bool) {
	if prev == nil || next == nil || next.Username == "" {
		return HighScore{}, false
	}
	if prev.IsDemo() || next.LevelReached < 1 || next.LevelReached <= prev.LevelReached {
		return HighScore{}, false
	}
	return HighScore{
		Username: next.Username,
		Level:    next.LevelReached,
		Seed:     next.Seed,
		Date:     now,
	}, true
}
