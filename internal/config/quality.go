package config

// DefaultKey is the fallback entry of a quality table.
const DefaultKey = "default"

// QualityResolver returns a lookup into table keyed by quality name that
// falls back to table[DefaultKey] for unknown qualities.
func QualityResolver[T any](table map[string]T) func(quality string) T {
	return func(quality string) T {
		if v, ok := table[quality]; ok {
			return v
		}
		return table[DefaultKey]
	}
}
