package analysis

import "strings"

// Lexicon-based polarity scoring for review comments. Scores are the signed
// fraction of sentiment-bearing words in the text, so they fall in [-1, 1].

var positiveWords = map[string]bool{
	"good": true, "great": true, "excellent": true, "nice": true,
	"awesome": true, "perfect": true, "clean": true, "clear": true,
	"helpful": true, "thanks": true, "thank": true, "well": true,
	"solid": true, "elegant": true, "love": true, "like": true,
	"appreciate": true, "improved": true, "better": true, "works": true,
}

var negativeWords = map[string]bool{
	"bad": true, "wrong": true, "broken": true, "bug": true,
	"issue": true, "problem": true, "confusing": true, "unclear": true,
	"messy": true, "hack": true, "hacky": true, "slow": true,
	"fails": true, "failing": true, "missing": true, "incorrect": true,
	"error": true, "duplicate": true, "redundant": true, "fragile": true,
}

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// polarity scores a single text in [-1, 1].
func polarity(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}
	var score int
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:()[]{}\"'")
		if positiveWords[w] {
			score++
		} else if negativeWords[w] {
			score--
		}
	}
	return float64(score) / float64(len(words))
}

// classifySentiment buckets an average polarity into positive, critical or
// neutral.
func classifySentiment(avg float64) string {
	switch {
	case avg > positiveThreshold:
		return "positive"
	case avg < negativeThreshold:
		return "critical"
	default:
		return "neutral"
	}
}
