package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibhanwork/hiresight/internal/types"
)

func strongAnalysis() *types.Analysis {
	return &types.Analysis{
		Skills: types.SkillInventory{
			SkillCount: 4,
			TopSkills:  []string{"Go", "PostgreSQL"},
			Skills: []types.SkillScore{
				{Name: "Go", Confidence: 95},
				{Name: "PostgreSQL", Confidence: 80},
				{Name: "Docker", Confidence: 70},
				{Name: "React", Confidence: 60},
			},
		},
		Contributions: types.ContributionPatterns{
			Commits: types.CommitBehavior{
				TotalCommits:            120,
				AvgMessageLength:        55,
				UsesConventionalCommits: true,
				ConsistencyScore:        85,
			},
			PullRequests: types.PullRequestActivity{
				Created: 40, Merged: 30, MergeRatePct: 75, AvgCommentsPerPR: 3,
			},
			Reviews: types.ReviewBehavior{
				TotalReviews: 25, AvgReviewLength: 150,
				SentimentClass: "positive", ReviewToPRRatio: 0.7,
			},
		},
		WorkStyle: types.WorkStyleProfile{
			PrimaryStyle: "Collaborative",
			Styles: []types.WorkStyle{
				{Style: "Collaborative", Confidence: 90},
				{Style: "Mentorship-Oriented", Confidence: 60},
			},
		},
		CodeQuality: types.CodeQuality{
			Documentation: 90, Testing: 80, Maintenance: 85,
			Overall: 64, Tier: "Good",
		},
		Learning: types.LearningTrajectory{
			NewSkillsLastYear: 6,
			LearningVelocity:  0.6,
			AdaptabilityScore: 80,
			GrowthPotential:   "High",
		},
	}
}

func TestMatchStrongCandidate(t *testing.T) {
	m := New(nil)
	req := &types.JobRequirements{
		Role:            "Backend Engineer",
		RequiredSkills:  []string{"Go", "PostgreSQL"},
		PreferredSkills: []string{"Docker"},
		WorkStyle:       "Collaborative",
	}

	result := m.Match(strongAnalysis(), req)

	fit := result.CurrentFit
	assert.Equal(t, []string{"Go", "PostgreSQL"}, fit.RequiredMatched)
	assert.Empty(t, fit.RequiredMissing)
	assert.Equal(t, []string{"Docker"}, fit.PreferredMatched)
	assert.InDelta(t, 100, fit.MatchPercentage, 0.01)
	// 60 + 30 + avg(95,80)/100*10 = 98.75
	assert.InDelta(t, 98.75, fit.Score, 0.01)

	// 80*0.4 + min(1, 0.6/0.5)*30 + min(1, 6/6)*30 = 92
	assert.InDelta(t, 92, result.Growth.Score, 0.01)
	assert.Empty(t, result.Growth.RampUpEstimates)

	collab := result.Collaboration
	assert.Equal(t, "match", collab.WorkStyleMatch)
	assert.True(t, collab.MentorshipCapable)
	// 50 style + 30 communication + 20 team
	assert.InDelta(t, 100, collab.Score, 0.01)

	assert.InDelta(t, 64, result.Quality.Score, 0.01)

	// 98.75*0.4 + 92*0.3 + 100*0.2 + 64*0.1 = 93.5
	assert.InDelta(t, 93.5, result.OverallScore, 0.01)
	assert.Equal(t, TierTop, result.Tier)
}

func TestMatchSkillContainment(t *testing.T) {
	m := New(nil)
	analysis := &types.Analysis{
		Skills: types.SkillInventory{
			Skills: []types.SkillScore{{Name: "PostgreSQL", Confidence: 80}},
		},
	}
	result := m.Match(analysis, &types.JobRequirements{RequiredSkills: []string{"postgres"}})
	assert.Equal(t, []string{"postgres"}, result.CurrentFit.RequiredMatched)
}

func TestMatchMissingSkillsGetRampUp(t *testing.T) {
	m := New(nil)
	analysis := strongAnalysis()
	analysis.Learning.LearningVelocity = 0.3
	req := &types.JobRequirements{RequiredSkills: []string{"Go", "Kafka"}}

	result := m.Match(analysis, req)
	assert.Equal(t, []string{"Kafka"}, result.CurrentFit.RequiredMissing)
	require.Contains(t, result.Growth.RampUpEstimates, "Kafka")
	assert.Equal(t, "2-4 months", result.Growth.RampUpEstimates["Kafka"])
	assert.Contains(t, result.Recommendations.Considerations[0], "Kafka")
}

func TestRampUpEstimate(t *testing.T) {
	assert.Equal(t, "1-2 months", rampUpEstimate(0.6))
	assert.Equal(t, "2-4 months", rampUpEstimate(0.3))
	assert.Equal(t, "4-6 months", rampUpEstimate(0.1))
}

func TestMatchTierBoundaries(t *testing.T) {
	assert.Equal(t, TierTop, matchTier(85))
	assert.Equal(t, TierHigh, matchTier(84.99))
	assert.Equal(t, TierHigh, matchTier(70))
	assert.Equal(t, TierModerate, matchTier(69.99))
	assert.Equal(t, TierModerate, matchTier(50))
	assert.Equal(t, TierLow, matchTier(49.99))
}

func TestMatchStylePartial(t *testing.T) {
	m := New(nil)
	req := &types.JobRequirements{WorkStyle: "Solo"}
	result := m.Match(strongAnalysis(), req)
	assert.Equal(t, "partial", result.Collaboration.WorkStyleMatch)
	// 25 style + 30 communication + 20 team
	assert.InDelta(t, 75, result.Collaboration.Score, 0.01)
}

func TestMatchEmptyAnalysis(t *testing.T) {
	m := New(nil)
	result := m.Match(&types.Analysis{}, &types.JobRequirements{
		RequiredSkills: []string{"Go"},
	})
	assert.Equal(t, []string{"Go"}, result.CurrentFit.RequiredMissing)
	assert.Equal(t, TierLow, result.Tier)
	assert.GreaterOrEqual(t, result.OverallScore, 0.0)
}

func TestDetectBiasClean(t *testing.T) {
	m := New(nil)
	report := m.DetectBias(&types.JobRequirements{
		Role:           "Backend Engineer",
		RequiredSkills: []string{"Go", "PostgreSQL"},
	})
	assert.False(t, report.BiasesFound)
	assert.Zero(t, report.BiasCount)
	assert.Equal(t, 100.0, report.FairnessScore)
}

func TestDetectBiasFindings(t *testing.T) {
	m := New(nil)
	report := m.DetectBias(&types.JobRequirements{
		Role:           "Rockstar Engineer",
		RequiredSkills: []string{"Go"},
		Experience:     "10+ years of experience, senior only",
		Additional:     "Ivy League degree preferred, Bay Area candidates only",
	})

	require.True(t, report.BiasesFound)
	typesSeen := map[string]bool{}
	for _, b := range report.Biases {
		typesSeen[b.Type] = true
	}
	assert.True(t, typesSeen[BiasEducation])
	assert.True(t, typesSeen[BiasLocation])
	assert.True(t, typesSeen[BiasExperience])
	assert.True(t, typesSeen[BiasKeyword])
	assert.Equal(t, 4, report.BiasCount)
	assert.Equal(t, 40.0, report.FairnessScore)
}

func TestDetectBiasSingleExperiencePhraseIgnored(t *testing.T) {
	m := New(nil)
	report := m.DetectBias(&types.JobRequirements{
		Experience: "3 years of experience with Go",
	})
	for _, b := range report.Biases {
		assert.NotEqual(t, BiasExperience, b.Type)
	}
}

func TestDetectBiasRequirementsOverload(t *testing.T) {
	m := New(nil)
	report := m.DetectBias(&types.JobRequirements{
		RequiredSkills: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"},
	})
	require.Equal(t, 1, report.BiasCount)
	assert.Equal(t, BiasRequirements, report.Biases[0].Type)
	assert.Equal(t, 85.0, report.FairnessScore)
}

func TestFairnessScoreFloor(t *testing.T) {
	m := New(nil)
	req := &types.JobRequirements{
		Role:           "Rockstar ninja guru wizard",
		RequiredSkills: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"},
		Experience:     "10+ years of experience, senior, 5+ years",
		Additional:     "PhD from an Ivy League university, Bay Area or New York only, US only",
	}
	report := m.DetectBias(req)
	assert.GreaterOrEqual(t, report.FairnessScore, 0.0)
}
