package utils

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// NormalizeName canonicalizes a business name for comparison: case-folded,
// punctuation stripped, whitespace collapsed. "Tony's Pizza!" and
// "tonys  pizza" normalize to the same string.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastSpace := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		default:
			// Punctuation is dropped without inserting a separator so
			// "Tony's" collapses to "tonys" rather than "tony s".
		}
	}

	return strings.TrimSpace(b.String())
}

// NameSimilarity returns a similarity score in [0, 1] between two business
// names. Both inputs are normalized first. The score is the better of a
// token-set Jaccard overlap and a levenshtein ratio, so reordered words
// ("Pizza Tony's" vs "Tony's Pizza") and small misspellings both score high.
func NameSimilarity(a, b string) float64 {
	na := NormalizeName(a)
	nb := NormalizeName(b)

	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	jaccard := tokenSetSimilarity(na, nb)
	ratio := levenshteinRatio(na, nb)
	if jaccard > ratio {
		return jaccard
	}
	return ratio
}

func tokenSetSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[token] = struct{}{}
	}
	return set
}

func levenshteinRatio(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
