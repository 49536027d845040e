package types

// CandidateScore holds the independently sourced scores for one candidate.
// Identity is the candidate's human name; cross-source joining happens on
// its normalized form (see leaderboard.NormalizeName). A zero score means
// "no signal from this source", not "scored zero"; the leaderboard
// generator treats the two cases identically by policy.
type CandidateScore struct {
	Name             string  `json:"name"`
	LinkedInScore    float64 `json:"linkedin_score"`
	GitHubScore      float64 `json:"github_score"`
	GitHubUsername   string  `json:"github_username,omitempty"`
	LinkedInRawScore float64 `json:"linkedin_raw_score,omitempty"`
	GitHubRawScore   float64 `json:"github_raw_score,omitempty"`
}

// RankedCandidate is a CandidateScore with its combined score, dense
// 1-based rank and tier assignment. Recomputed on every leaderboard
// generation; JSON/CSV snapshots are output artifacts, not sources of
// truth.
type RankedCandidate struct {
	Rank             int     `json:"rank"`
	Name             string  `json:"name"`
	CombinedScore    float64 `json:"combined_score"`
	LinkedInScore    float64 `json:"linkedin_score"`
	GitHubScore      float64 `json:"github_score"`
	Tier             string  `json:"tier"`
	Emoji            string  `json:"emoji"`
	GitHubUsername   string  `json:"github_username,omitempty"`
	LinkedInRawScore float64 `json:"linkedin_raw_score,omitempty"`
	GitHubRawScore   float64 `json:"github_raw_score,omitempty"`
}

// LeaderboardStats summarizes a generated leaderboard.
type LeaderboardStats struct {
	TotalCandidates  int            `json:"total_candidates"`
	AverageScore     float64        `json:"average_score"`
	MedianScore      float64        `json:"median_score"`
	HighestScore     float64        `json:"highest_score"`
	LowestScore      float64        `json:"lowest_score"`
	TierDistribution map[string]int `json:"tier_distribution"`
	LinkedInWeight   float64        `json:"linkedin_weight"`
	GitHubWeight     float64        `json:"github_weight"`
}

// RankedResume is one scored resume from the /api/rank endpoint.
// Score is on the 0-100 scale.
type RankedResume struct {
	Name       string   `json:"name"`
	Score      float64  `json:"score"`
	MatchScore float64  `json:"matchScore"`
	Skills     []string `json:"skills"`
	Note       string   `json:"note"`
	Summary    string   `json:"summary"`
	Filename   string   `json:"filename,omitempty"`
}
