package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Field IDs reported by Validate.
const (
	FieldQuality  = "quality"
	FieldMode     = "mode"
	FieldUsername = "username"
)

// FieldError is one invalid field of a player profile.
type FieldError struct {
	ID      string
	Message string
}

func (e FieldError) Error() string {
	return e.ID + ": " + e.Message
}

var (
	qualities = []string{QualityLow, QualityMedium, QualityHigh}
	modes     = []string{ModeRandom, ModeDaily}

	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]{3,8}$`)
)

// Validate checks a player profile. A nil result means the profile is playable.
func Validate(p Player) []FieldError {
	var errs []FieldError
	if !contains(qualities, p.Quality) {
		errs = append(errs, FieldError{ID: FieldQuality, Message: withSuggestion("Please select a game quality", p.Quality, qualities)})
	}
	if !contains(modes, p.Mode) {
		errs = append(errs, FieldError{ID: FieldMode, Message: withSuggestion("Please select a game mode", p.Mode, modes)})
	}
	switch {
	case p.Username == "":
		errs = append(errs, FieldError{ID: FieldUsername, Message: "Please input a username"})
	case !usernameRe.MatchString(p.Username):
		errs = append(errs, FieldError{ID: FieldUsername, Message: "username is 3-8 alphanum characters"})
	}
	return errs
}

// JoinErrors renders field errors one per line.
func JoinErrors(errs []FieldError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

func withSuggestion(msg, got string, candidates []string) string {
	if s := Suggest(got, candidates); s != "" {
		return fmt.Sprintf("%s (did you mean %q?)", msg, s)
	}
	return msg
}

// Suggest returns the closest candidate to token within an edit budget that
// grows with the candidate length, or "" when nothing is close enough.
func Suggest(token string, candidates []string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return ""
	}
	best := ""
	bestDist := -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
