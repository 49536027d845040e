package leaderboard

import (
	"math"
	"sort"

	"github.com/ibhanwork/hiresight/internal/config"
	"github.com/ibhanwork/hiresight/internal/types"
)

// tierBoundary maps a combined-score threshold to its tier label and emoji.
type tierBoundary struct {
	min   float64
	label string
	emoji string
}

var tierBoundaries = []tierBoundary{
	{0.85, "Excellent Match", "🥇"},
	{0.75, "Very Good Match", "🥈"},
	{0.65, "Good Match", "🥉"},
	{0.50, "Moderate Match", "✅"},
	{0.35, "Fair Match", "⚠️"},
	{0, "Low Match", "❌"},
}

// Tier returns the tier label and emoji for a combined score.
func Tier(score float64) (string, string) {
	for _, b := range tierBoundaries {
		if score >= b.min {
			return b.label, b.emoji
		}
	}
	last := tierBoundaries[len(tierBoundaries)-1]
	return last.label, last.emoji
}

// Generator fuses candidate scores into a ranked leaderboard.
type Generator struct {
	LinkedInWeight float64
	GitHubWeight   float64
	MinScore       float64
}

// NewGenerator creates a generator from the scoring configuration.
func NewGenerator(cfg *config.ScoringConfig) *Generator {
	if cfg == nil {
		cfg = config.DefaultScoring()
	}
	return &Generator{
		LinkedInWeight: cfg.LinkedInWeight,
		GitHubWeight:   cfg.GitHubWeight,
		MinScore:       cfg.MinScore,
	}
}

// Generate ranks the candidates. Candidates with no signal from either
// source are dropped rather than scored zero; a candidate present in only
// one source keeps that source's score unweighted. When both sources are
// present the weights are normalized to sum to one before averaging.
func (g *Generator) Generate(scores []types.CandidateScore) ([]types.RankedCandidate, types.LeaderboardStats) {
	ranked := make([]types.RankedCandidate, 0, len(scores))
	for _, s := range scores {
		combined, ok := g.combine(s.LinkedInScore, s.GitHubScore)
		if !ok || combined < g.MinScore {
			continue
		}
		tier, emoji := Tier(combined)
		ranked = append(ranked, types.RankedCandidate{
			Name:             s.Name,
			CombinedScore:    combined,
			LinkedInScore:    s.LinkedInScore,
			GitHubScore:      s.GitHubScore,
			Tier:             tier,
			Emoji:            emoji,
			GitHubUsername:   s.GitHubUsername,
			LinkedInRawScore: s.LinkedInRawScore,
			GitHubRawScore:   s.GitHubRawScore,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore > ranked[j].CombinedScore
	})

	// Dense 1-based ranks: equal scores share a rank, the next distinct
	// score takes the next integer.
	rank := 0
	for i := range ranked {
		if i == 0 || ranked[i].CombinedScore != ranked[i-1].CombinedScore {
			rank++
		}
		ranked[i].Rank = rank
	}

	return ranked, g.stats(ranked)
}

// combine fuses the two source scores. The boolean is false when neither
// source produced a signal.
func (g *Generator) combine(linkedin, github float64) (float64, bool) {
	switch {
	case linkedin == 0 && github == 0:
		return 0, false
	case linkedin == 0:
		return round6(github), true
	case github == 0:
		return round6(linkedin), true
	}
	total := g.LinkedInWeight + g.GitHubWeight
	if total == 0 {
		return round6((linkedin + github) / 2), true
	}
	return round6((linkedin*g.LinkedInWeight + github*g.GitHubWeight) / total), true
}

func (g *Generator) stats(ranked []types.RankedCandidate) types.LeaderboardStats {
	stats := types.LeaderboardStats{
		TotalCandidates:  len(ranked),
		TierDistribution: make(map[string]int),
		LinkedInWeight:   g.LinkedInWeight,
		GitHubWeight:     g.GitHubWeight,
	}
	if len(ranked) == 0 {
		return stats
	}

	scores := make([]float64, len(ranked))
	var sum float64
	for i, c := range ranked {
		scores[i] = c.CombinedScore
		sum += c.CombinedScore
		stats.TierDistribution[c.Tier]++
	}
	sort.Float64s(scores)

	stats.AverageScore = round6(sum / float64(len(scores)))
	stats.MedianScore = scores[len(scores)/2]
	stats.HighestScore = scores[len(scores)-1]
	stats.LowestScore = scores[0]
	return stats
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
