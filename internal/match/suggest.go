package match

import (
	"strings"
	"unicode"
)

// DefaultMinScore is the least similarity for a name to be suggested.
const DefaultMinScore = 0.5

// Suggest returns the name in names most similar to name, if any scores at
// least DefaultMinScore. Ties go to the earlier name.
func Suggest(name string, names []string) (string, bool) {
	return SuggestAbove(name, names, DefaultMinScore)
}

// SuggestAbove is Suggest with an explicit threshold.
func SuggestAbove(name string, names []string, minScore float64) (string, bool) {
	want := Normalize(name)

	best, bestScore := "", -1.0

	for _, n := range names {
		if n == name {
			continue
		}

		if score := Similarity(want, Normalize(n)); score > bestScore {
			best, bestScore = n, score
		}
	}

	if bestScore < minScore {
		return "", false
	}

	return best, true
}

// Normalize lowercases s and drops '_' and '-'.
func Normalize(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}
