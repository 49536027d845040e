package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/types"
)

var testNow = time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

func newTestAnalyzer() *Analyzer {
	a := New(nil, zap.NewNop())
	a.now = func() time.Time { return testNow }
	return a
}

func monthsAgo(n int) time.Time {
	return testNow.AddDate(0, -n, 0)
}

func testBundle(repos ...types.Repository) *types.ProfileBundle {
	return &types.ProfileBundle{
		Profile: &types.Profile{
			Username:         "octocat",
			PublicRepos:      len(repos),
			CreatedAt:        monthsAgo(36),
			AccountAgeMonths: 36,
		},
		AllRepositories: repos,
		TopRepositories: repos,
		FetchedAt:       testNow,
	}
}

func TestAnalyzeSkillsFromLanguages(t *testing.T) {
	a := newTestAnalyzer()
	bundle := testBundle(
		types.Repository{
			Name:      "api-server",
			Languages: map[string]int{"Go": 90000, "Makefile": 1000},
			SizeKB:    2000,
			Stars:     10,
			PushedAt:  monthsAgo(1),
		},
		types.Repository{
			Name:      "cli-tool",
			Languages: map[string]int{"Go": 40000},
			SizeKB:    500,
			PushedAt:  monthsAgo(2),
		},
	)

	inv := a.analyzeSkills(bundle)
	require.NotEmpty(t, inv.Skills)
	assert.Equal(t, "Go", inv.Skills[0].Name)
	assert.Equal(t, 2, inv.Skills[0].RepoCount)
	assert.Equal(t, CategoryLanguage, inv.Skills[0].Category)
	// Full marks on volume, spread and complexity; recency one month into
	// the twelve-month decay.
	assert.InDelta(t, 97.5, inv.Skills[0].Confidence, 0.01)
	assert.Contains(t, inv.TopSkills, "Go")
	assert.Equal(t, inv.SkillCount, len(inv.Skills))
}

func TestAnalyzeSkillsFromDependencies(t *testing.T) {
	a := newTestAnalyzer()
	bundle := testBundle(types.Repository{
		Name:         "webapp",
		Languages:    map[string]int{"JavaScript": 50000},
		Dependencies: []string{"react", "jest", "some-unknown-lib"},
		PushedAt:     monthsAgo(1),
	})

	inv := a.analyzeSkills(bundle)
	byName := map[string]types.SkillScore{}
	for _, s := range inv.Skills {
		byName[s.Name] = s
	}

	assert.Equal(t, CategoryFrontend, byName["React"].Category)
	assert.Equal(t, CategoryTesting, byName["Jest"].Category)
	assert.Contains(t, byName, "some-unknown-lib")
}

func TestAnalyzeSkillsRecencyDecay(t *testing.T) {
	a := newTestAnalyzer()
	fresh := testBundle(types.Repository{
		Name: "r", Languages: map[string]int{"Go": 1000}, PushedAt: monthsAgo(0),
	})
	stale := testBundle(types.Repository{
		Name: "r", Languages: map[string]int{"Go": 1000}, PushedAt: monthsAgo(24),
	})

	freshConf := a.analyzeSkills(fresh).Skills[0].Confidence
	staleConf := a.analyzeSkills(stale).Skills[0].Confidence
	assert.Greater(t, freshConf, staleConf)
	// Only the 30-point recency sub-score differs.
	assert.InDelta(t, 30, freshConf-staleConf, 0.01)
}

func TestAnalyzeSkillsEvidenceCap(t *testing.T) {
	a := newTestAnalyzer()
	repos := make([]types.Repository, 5)
	for i := range repos {
		repos[i] = types.Repository{
			Name:      string(rune('a' + i)),
			Languages: map[string]int{"Python": 1000},
			PushedAt:  monthsAgo(1),
		}
	}
	inv := a.analyzeSkills(testBundle(repos...))
	require.Len(t, inv.Skills, 1)
	assert.Equal(t, 5, inv.Skills[0].RepoCount)
	assert.Len(t, inv.Skills[0].Evidence, 3)
}

func TestAnalyzeSkillsEmptyBundle(t *testing.T) {
	a := newTestAnalyzer()
	inv := a.analyzeSkills(testBundle())
	assert.Zero(t, inv.SkillCount)
	assert.Empty(t, inv.Skills)
}

func TestConsistencyScore(t *testing.T) {
	base := monthsAgo(3)
	even := []time.Time{base, base.AddDate(0, 0, 7), base.AddDate(0, 0, 14), base.AddDate(0, 0, 21)}
	assert.InDelta(t, 100, consistencyScore(even), 0.01)

	erratic := []time.Time{base, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2), base.AddDate(0, 0, 90)}
	assert.Less(t, consistencyScore(erratic), consistencyScore(even))

	assert.Equal(t, 0.0, consistencyScore(nil))
	assert.Equal(t, 0.0, consistencyScore([]time.Time{base}))
	assert.Equal(t, 100.0, consistencyScore([]time.Time{base, base, base}))
}

func TestIsConventional(t *testing.T) {
	assert.True(t, isConventional("feat: add login"))
	assert.True(t, isConventional("Fix: crash on resume upload"))
	assert.True(t, isConventional("feat(api): new endpoint"))
	assert.False(t, isConventional("added some stuff"))
	assert.False(t, isConventional("feature creep"))
}

func TestAnalyzeCommits(t *testing.T) {
	commits := []types.CommitInfo{
		{Message: "feat: one", Date: monthsAgo(2), Additions: 10, Deletions: 2},
		{Message: "fix: two", Date: monthsAgo(2).AddDate(0, 0, 7), Additions: 5, Deletions: 1},
		{Message: "random", Date: monthsAgo(2).AddDate(0, 0, 14)},
	}
	behavior := analyzeCommits(commits)
	assert.Equal(t, 3, behavior.TotalCommits)
	assert.Equal(t, 15, behavior.TotalAdditions)
	assert.Equal(t, 3, behavior.TotalDeletions)
	assert.InDelta(t, 66.67, behavior.ConventionalCommitPct, 0.01)
	assert.True(t, behavior.UsesConventionalCommits)
	assert.InDelta(t, 100, behavior.ConsistencyScore, 0.01)
}

func TestAnalyzePullRequests(t *testing.T) {
	prs := []types.PullRequestInfo{
		{Merged: true, Comments: 2, ReviewComments: 1, Additions: 100, Deletions: 20},
		{Merged: true, Comments: 0, Additions: 50, Deletions: 10},
		{Merged: false, Comments: 3, Additions: 10, Deletions: 0},
		{Merged: true, Additions: 30, Deletions: 10},
	}
	activity := analyzePullRequests(prs)
	assert.Equal(t, 4, activity.Created)
	assert.Equal(t, 3, activity.Merged)
	assert.InDelta(t, 75, activity.MergeRatePct, 0.01)
	assert.InDelta(t, 1.5, activity.AvgCommentsPerPR, 0.01)
	assert.InDelta(t, 57.5, activity.AvgSize, 0.01)
}

func TestAnalyzeReviewsSentiment(t *testing.T) {
	positive := analyzeReviews([]types.ReviewInfo{
		{Body: "great work, clean implementation"},
		{Body: "nice refactor, thanks"},
	}, 4)
	assert.Equal(t, "positive", positive.SentimentClass)
	assert.InDelta(t, 0.5, positive.ReviewToPRRatio, 0.01)

	critical := analyzeReviews([]types.ReviewInfo{
		{Body: "this is broken and wrong"},
	}, 1)
	assert.Equal(t, "critical", critical.SentimentClass)

	empty := analyzeReviews(nil, 0)
	assert.Equal(t, "neutral", empty.SentimentClass)
	assert.Zero(t, empty.TotalReviews)
}

func TestWorkStyleSoloDeveloper(t *testing.T) {
	a := newTestAnalyzer()
	patterns := types.ContributionPatterns{
		PullRequests: types.PullRequestActivity{Created: 10, Merged: 9, MergeRatePct: 90},
		Reviews:      types.ReviewBehavior{SentimentClass: "neutral"},
	}
	profile := a.analyzeWorkStyle(patterns)
	assert.Equal(t, StyleSolo, profile.PrimaryStyle)
	assert.InDelta(t, 90, profile.Styles[0].Confidence, 0.01)
}

func TestWorkStyleCollaborative(t *testing.T) {
	a := newTestAnalyzer()
	patterns := types.ContributionPatterns{
		PullRequests: types.PullRequestActivity{Created: 10, Merged: 5, MergeRatePct: 50, AvgCommentsPerPR: 5},
		Reviews:      types.ReviewBehavior{ReviewToPRRatio: 0.8, SentimentClass: "neutral"},
	}
	profile := a.analyzeWorkStyle(patterns)
	assert.Equal(t, StyleCollaborative, profile.PrimaryStyle)
}

func TestWorkStyleMentorship(t *testing.T) {
	a := newTestAnalyzer()
	patterns := types.ContributionPatterns{
		Reviews: types.ReviewBehavior{
			TotalReviews:    5,
			AvgReviewLength: 240,
			SentimentClass:  "positive",
		},
	}
	profile := a.analyzeWorkStyle(patterns)
	require.NotEmpty(t, profile.Styles)
	assert.Equal(t, StyleMentorship, profile.PrimaryStyle)
	assert.InDelta(t, 80, profile.Styles[0].Confidence, 0.01)
}

func TestWorkStyleDefault(t *testing.T) {
	a := newTestAnalyzer()
	profile := a.analyzeWorkStyle(types.ContributionPatterns{
		Reviews: types.ReviewBehavior{SentimentClass: "neutral"},
	})
	require.Len(t, profile.Styles, 1)
	assert.Equal(t, StyleIndependent, profile.PrimaryStyle)
	assert.Equal(t, 50.0, profile.Styles[0].Confidence)
}

func TestQualityScoring(t *testing.T) {
	a := newTestAnalyzer()
	bundle := testBundle(
		types.Repository{
			Name:         "polished",
			Description:  "a well kept project",
			Topics:       []string{"go", "api", "server", "docker", "infra", "extra"},
			License:      "MIT",
			Dependencies: []string{"github.com/stretchr/testify"},
			CICDTools:    []string{"GitHub Actions"},
			CreatedAt:    monthsAgo(24),
			PushedAt:     monthsAgo(1),
		},
		types.Repository{Name: "forked", Fork: true},
	)

	quality := a.analyzeQuality(bundle)
	require.Len(t, quality.Repositories, 1, "forks are excluded")

	rq := quality.Repositories[0]
	assert.InDelta(t, 100, rq.Documentation, 0.01)
	assert.InDelta(t, 100, rq.Testing, 0.01)
	assert.InDelta(t, 100, rq.Maintenance, 0.01)
	// Component weights sum to 0.70, so a perfect repo lands at 70.
	assert.InDelta(t, 70, rq.Overall, 0.01)
	assert.Equal(t, TierGood, quality.Tier)
}

func TestQualityBareRepo(t *testing.T) {
	a := newTestAnalyzer()
	bundle := testBundle(types.Repository{
		Name:      "scratch",
		CreatedAt: monthsAgo(2),
		PushedAt:  monthsAgo(20),
	})

	quality := a.analyzeQuality(bundle)
	rq := quality.Repositories[0]
	assert.InDelta(t, 25, rq.Documentation, 0.01)
	assert.InDelta(t, 20, rq.Testing, 0.01)
	assert.InDelta(t, 30, rq.Maintenance, 0.01)
	assert.Equal(t, TierNeedsImprovement, quality.Tier)
}

func TestQualityNoRepos(t *testing.T) {
	a := newTestAnalyzer()
	quality := a.analyzeQuality(testBundle())
	assert.Equal(t, TierNeedsImprovement, quality.Tier)
	assert.Zero(t, quality.Overall)
}

func TestLearningTrajectory(t *testing.T) {
	a := newTestAnalyzer()
	recent := monthsAgo(1)
	older := monthsAgo(9)
	ancient := monthsAgo(20)
	skills := types.SkillInventory{
		SkillCount: 3,
		Skills: []types.SkillScore{
			{Name: "Go", Category: CategoryLanguage, LastUsed: &recent},
			{Name: "React", Category: CategoryFrontend, LastUsed: &older},
			{Name: "Perl", Category: CategoryLanguage, LastUsed: &ancient},
		},
	}
	bundle := testBundle(
		types.Repository{Name: "old", SizeKB: 100, CreatedAt: monthsAgo(30)},
		types.Repository{Name: "new", SizeKB: 500, CreatedAt: monthsAgo(2)},
	)

	traj := a.analyzeLearning(bundle, skills)
	assert.Equal(t, 3, traj.TotalSkills)
	assert.Equal(t, []string{"Go"}, traj.RecentSkills)
	assert.Equal(t, 2, traj.NewSkillsLastYear)
	assert.Equal(t, []string{CategoryFrontend, CategoryLanguage}, traj.Categories)
	assert.InDelta(t, 40, traj.DiversificationScore, 0.01)
	assert.InDelta(t, 3.0/36, traj.LearningVelocity, 0.0001)
	assert.Equal(t, TrendIncreasing, traj.ComplexityTrend)
	assert.Equal(t, GrowthDeveloping, traj.GrowthPotential)
}

func TestComplexityTrend(t *testing.T) {
	assert.Equal(t, TrendInsufficient, complexityTrend(nil))
	assert.Equal(t, TrendInsufficient, complexityTrend([]types.Repository{{CreatedAt: testNow}}))
	assert.Equal(t, TrendStable, complexityTrend([]types.Repository{
		{SizeKB: 100, CreatedAt: monthsAgo(20)},
		{SizeKB: 100, CreatedAt: monthsAgo(2)},
	}))
}

func TestAnalyzeEndToEnd(t *testing.T) {
	a := newTestAnalyzer()
	bundle := testBundle(types.Repository{
		Name:         "service",
		Description:  "production service",
		Languages:    map[string]int{"Go": 120000},
		Dependencies: []string{"github.com/stretchr/testify", "github.com/jackc/pgx/v5"},
		License:      "Apache-2.0",
		CICDTools:    []string{"GitHub Actions"},
		CreatedAt:    monthsAgo(18),
		PushedAt:     monthsAgo(1),
		Commits: []types.CommitInfo{
			{Message: "feat: initial", Date: monthsAgo(3)},
			{Message: "fix: bug", Date: monthsAgo(2)},
		},
		PullRequests: []types.PullRequestInfo{{Merged: true, Comments: 1}},
		Reviews:      []types.ReviewInfo{{Body: "nice work"}},
	})

	analysis := a.Analyze(bundle)
	assert.Equal(t, "octocat", analysis.Profile.Username)
	assert.NotZero(t, analysis.Skills.SkillCount)
	assert.NotEmpty(t, analysis.WorkStyle.PrimaryStyle)
	assert.NotEmpty(t, analysis.CodeQuality.Tier)
	assert.NotEmpty(t, analysis.Learning.GrowthPotential)
	assert.Equal(t, testNow, analysis.AnalyzedAt)
}
