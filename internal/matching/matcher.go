// Package matching scores a candidate analysis against job requirements
// using four weighted factors, and audits the requirements themselves for
// bias signals.
package matching

import (
	"fmt"
	"strings"

	"github.com/ibhanwork/hiresight/internal/config"
	"github.com/ibhanwork/hiresight/internal/types"
)

// Match tier labels and thresholds on the overall 0-100 score.
const (
	TierTop      = "Top Match"
	TierHigh     = "High Match"
	TierModerate = "Moderate Match"
	TierLow      = "Low Match"
)

// Matcher evaluates analyses against job requirements.
type Matcher struct {
	cfg *config.ScoringConfig
}

// New creates a matcher. A nil config uses the defaults.
func New(cfg *config.ScoringConfig) *Matcher {
	if cfg == nil {
		cfg = config.DefaultScoring()
	}
	return &Matcher{cfg: cfg}
}

// Match computes the four-factor match of an analysis against requirements.
func (m *Matcher) Match(analysis *types.Analysis, req *types.JobRequirements) *types.MatchResult {
	fit := m.currentFit(analysis, req)
	growth := m.growthPotential(analysis, fit.RequiredMissing)
	collab := m.collaborationFit(analysis, req)
	quality := qualityScore(analysis)

	w := m.cfg.MatchingWeights
	overall := fit.Score*w.CurrentFit +
		growth.Score*w.GrowthPotential +
		collab.Score*w.CollaborationFit +
		quality.Score*w.CodeQuality

	result := &types.MatchResult{
		OverallScore:  round2(overall),
		Tier:          matchTier(overall),
		CurrentFit:    fit,
		Growth:        growth,
		Collaboration: collab,
		Quality:       quality,
	}
	result.Recommendations = m.recommend(analysis, result, req)
	return result
}

// currentFit measures present-day skill overlap: required skills dominate,
// preferred skills and the confidence of the matched skills round it out.
func (m *Matcher) currentFit(analysis *types.Analysis, req *types.JobRequirements) types.CurrentFit {
	fit := types.CurrentFit{
		RequiredMatched:  []string{},
		RequiredMissing:  []string{},
		PreferredMatched: []string{},
	}

	var matchedConfidence float64
	for _, skill := range req.RequiredSkills {
		if score, ok := findSkill(analysis.Skills.Skills, skill); ok {
			fit.RequiredMatched = append(fit.RequiredMatched, skill)
			matchedConfidence += score.Confidence
		} else {
			fit.RequiredMissing = append(fit.RequiredMissing, skill)
		}
	}
	for _, skill := range req.PreferredSkills {
		if _, ok := findSkill(analysis.Skills.Skills, skill); ok {
			fit.PreferredMatched = append(fit.PreferredMatched, skill)
		}
	}
	fit.SkillGaps = fit.RequiredMissing

	requiredRatio := 1.0
	if len(req.RequiredSkills) > 0 {
		requiredRatio = float64(len(fit.RequiredMatched)) / float64(len(req.RequiredSkills))
	}
	preferredRatio := 1.0
	if len(req.PreferredSkills) > 0 {
		preferredRatio = float64(len(fit.PreferredMatched)) / float64(len(req.PreferredSkills))
	}
	avgConfidence := 0.0
	if len(fit.RequiredMatched) > 0 {
		avgConfidence = matchedConfidence / float64(len(fit.RequiredMatched))
	}

	fit.MatchPercentage = round2(requiredRatio * 100)
	fit.Score = round2(requiredRatio*60 + preferredRatio*30 + avgConfidence/100*10)
	return fit
}

// growthPotential blends adaptability, learning velocity and the rate of
// recent skill acquisition, and estimates ramp-up time for each skill gap.
func (m *Matcher) growthPotential(analysis *types.Analysis, gaps []string) types.GrowthPotential {
	learning := analysis.Learning

	velocityComponent := clamp01(learning.LearningVelocity/0.5) * 30
	newSkillsComponent := clamp01(float64(learning.NewSkillsLastYear)/6) * 30
	score := learning.AdaptabilityScore*0.4 + velocityComponent + newSkillsComponent

	growth := types.GrowthPotential{
		Score:             round2(score),
		Adaptability:      learning.AdaptabilityScore,
		LearningVelocity:  learning.LearningVelocity,
		NewSkillsLastYear: learning.NewSkillsLastYear,
		Classification:    learning.GrowthPotential,
	}

	if len(gaps) > 0 {
		growth.RampUpEstimates = make(map[string]string, len(gaps))
		for _, gap := range gaps {
			growth.RampUpEstimates[gap] = rampUpEstimate(learning.LearningVelocity)
		}
	}
	return growth
}

func rampUpEstimate(velocity float64) string {
	switch {
	case velocity > 0.5:
		return "1-2 months"
	case velocity > 0.2:
		return "2-4 months"
	default:
		return "4-6 months"
	}
}

// collaborationFit scores work style alignment (50), communication habits
// (30) and team dynamics (20).
func (m *Matcher) collaborationFit(analysis *types.Analysis, req *types.JobRequirements) types.CollaborationFit {
	collab := types.CollaborationFit{
		RequiredStyle:     req.WorkStyle,
		AsyncFriendly:     hasStyle(analysis.WorkStyle, "Async"),
		MentorshipCapable: hasStyle(analysis.WorkStyle, "Mentorship"),
	}

	styleScore := 50.0
	collab.WorkStyleMatch = "unspecified"
	if req.WorkStyle != "" {
		if hasStyle(analysis.WorkStyle, req.WorkStyle) {
			collab.WorkStyleMatch = "match"
		} else {
			collab.WorkStyleMatch = "partial"
			styleScore = 25
		}
	}

	commits := analysis.Contributions.Commits
	prs := analysis.Contributions.PullRequests
	var comm float64
	if commits.UsesConventionalCommits {
		comm += 10
	}
	if commits.AvgMessageLength > 40 {
		comm += 10
	}
	if prs.AvgCommentsPerPR > 2 {
		comm += 10
	}
	collab.CommunicationQuality = round2(comm / 30 * 100)

	reviews := analysis.Contributions.Reviews
	var team float64
	if reviews.TotalReviews > 0 {
		team += 10
	}
	if reviews.SentimentClass == "positive" {
		team += 10
	}
	collab.TeamDynamics = round2(team / 20 * 100)

	collab.Score = round2(styleScore + comm + team)
	return collab
}

// qualityScore passes the code quality analysis through as a match factor.
func qualityScore(analysis *types.Analysis) types.QualityScore {
	q := analysis.CodeQuality
	return types.QualityScore{
		Score:         round2(q.Overall),
		Documentation: q.Documentation,
		Testing:       q.Testing,
		Maintenance:   q.Maintenance,
		Tier:          q.Tier,
	}
}

func matchTier(score float64) string {
	switch {
	case score >= 85:
		return TierTop
	case score >= 70:
		return TierHigh
	case score >= 50:
		return TierModerate
	default:
		return TierLow
	}
}

// findSkill matches a required skill against the inventory, tolerating case
// differences and containment in either direction ("Postgres" matches
// "PostgreSQL").
func findSkill(skills []types.SkillScore, name string) (types.SkillScore, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return types.SkillScore{}, false
	}
	for _, s := range skills {
		have := strings.ToLower(s.Name)
		if have == needle || strings.Contains(have, needle) || strings.Contains(needle, have) {
			return s, true
		}
	}
	return types.SkillScore{}, false
}

func hasStyle(profile types.WorkStyleProfile, want string) bool {
	needle := strings.ToLower(want)
	for _, s := range profile.Styles {
		if strings.Contains(strings.ToLower(s.Style), needle) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// recommend produces templated hiring guidance from the match factors.
func (m *Matcher) recommend(analysis *types.Analysis, result *types.MatchResult, req *types.JobRequirements) types.Recommendations {
	rec := types.Recommendations{
		Strengths:          []string{},
		Considerations:     []string{},
		InterviewQuestions: []string{},
	}

	fit := result.CurrentFit
	if fit.MatchPercentage >= 80 {
		rec.Strengths = append(rec.Strengths,
			fmt.Sprintf("Covers %d of %d required skills", len(fit.RequiredMatched), len(req.RequiredSkills)))
	}
	if result.Growth.Classification == "High" {
		rec.Strengths = append(rec.Strengths, "High growth potential with an active learning pattern")
	}
	if result.Quality.Tier == "Excellent" || result.Quality.Tier == "Good" {
		rec.Strengths = append(rec.Strengths,
			fmt.Sprintf("%s code quality across public repositories", result.Quality.Tier))
	}
	if result.Collaboration.MentorshipCapable {
		rec.Strengths = append(rec.Strengths, "Review history shows mentorship capability")
	}

	if len(fit.RequiredMissing) > 0 {
		rec.Considerations = append(rec.Considerations,
			fmt.Sprintf("Missing required skills: %s", strings.Join(fit.RequiredMissing, ", ")))
	}
	if analysis.Contributions.Commits.ConsistencyScore < 40 && analysis.Contributions.Commits.TotalCommits > 0 {
		rec.Considerations = append(rec.Considerations, "Irregular commit cadence in recent history")
	}
	if result.Quality.Tier == "Needs Improvement" {
		rec.Considerations = append(rec.Considerations, "Public repositories show limited quality signals")
	}

	for _, gap := range fit.RequiredMissing {
		rec.InterviewQuestions = append(rec.InterviewQuestions,
			fmt.Sprintf("How would you approach getting productive with %s?", gap))
	}
	if top := analysis.Skills.TopSkills; len(top) > 0 {
		rec.InterviewQuestions = append(rec.InterviewQuestions,
			fmt.Sprintf("Walk through a project where you applied %s in depth.", top[0]))
	}
	if req.WorkStyle != "" && result.Collaboration.WorkStyleMatch == "partial" {
		rec.InterviewQuestions = append(rec.InterviewQuestions,
			fmt.Sprintf("The team works in a %s style. How have you adapted to that before?", req.WorkStyle))
	}
	return rec
}
