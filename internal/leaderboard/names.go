// Package leaderboard fuses per-source candidate scores into a ranked
// leaderboard and writes its output artifacts.
package leaderboard

import (
	"regexp"
	"strings"
)

var nonNameChars = regexp.MustCompile(`[^a-z0-9\s-]`)
var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeName canonicalizes a candidate name for cross-source joining:
// lowercase, punctuation stripped, whitespace collapsed. Idempotent.
func NormalizeName(name string) string {
	s := strings.ToLower(name)
	s = nonNameChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NameSimilarity scores how likely two names refer to the same person:
// 1.0 for an exact normalized match, 0.8 for containment, otherwise the
// Jaccard overlap of name words.
func NameSimilarity(a, b string) float64 {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.8
	}

	wordsA := strings.Fields(na)
	wordsB := strings.Fields(nb)
	setA := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		setA[w] = true
	}
	var intersection int
	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		if !setB[w] {
			setB[w] = true
			if setA[w] {
				intersection++
			}
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// fuzzyMatchThreshold is the minimum NameSimilarity for treating two source
// records as the same candidate when their normalized names differ.
const fuzzyMatchThreshold = 0.8
