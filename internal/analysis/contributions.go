package analysis

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ibhanwork/hiresight/internal/types"
)

// conventionalPrefixes are the commit types of the Conventional Commits
// convention.
var conventionalPrefixes = []string{
	"feat:", "fix:", "docs:", "style:", "refactor:",
	"perf:", "test:", "chore:", "ci:", "build:",
}

// A commit history is treated as following the convention once this share of
// messages carries a recognized prefix.
const conventionalAdoptionPct = 30.0

// analyzeContributions aggregates commit, pull request and review behavior
// across the enriched repositories.
func (a *Analyzer) analyzeContributions(bundle *types.ProfileBundle) types.ContributionPatterns {
	var commits []types.CommitInfo
	var prs []types.PullRequestInfo
	var reviews []types.ReviewInfo
	for _, repo := range bundle.TopRepositories {
		commits = append(commits, repo.Commits...)
		prs = append(prs, repo.PullRequests...)
		reviews = append(reviews, repo.Reviews...)
	}

	return types.ContributionPatterns{
		Commits:      analyzeCommits(commits),
		PullRequests: analyzePullRequests(prs),
		Reviews:      analyzeReviews(reviews, len(prs)),
	}
}

func analyzeCommits(commits []types.CommitInfo) types.CommitBehavior {
	behavior := types.CommitBehavior{TotalCommits: len(commits)}
	if len(commits) == 0 {
		return behavior
	}

	var msgLen, conventional int
	var dates []time.Time
	for _, c := range commits {
		behavior.TotalAdditions += c.Additions
		behavior.TotalDeletions += c.Deletions
		msgLen += len(c.Message)
		if isConventional(c.Message) {
			conventional++
		}
		if !c.Date.IsZero() {
			dates = append(dates, c.Date)
		}
	}

	behavior.AvgMessageLength = float64(msgLen) / float64(len(commits))
	behavior.ConventionalCommitPct = float64(conventional) / float64(len(commits)) * 100
	behavior.UsesConventionalCommits = behavior.ConventionalCommitPct >= conventionalAdoptionPct
	behavior.ConsistencyScore = consistencyScore(dates)
	return behavior
}

func isConventional(message string) bool {
	first := strings.ToLower(strings.SplitN(message, "\n", 2)[0])
	for _, prefix := range conventionalPrefixes {
		if strings.HasPrefix(first, prefix) {
			return true
		}
		// Scoped form, e.g. "feat(api): ...".
		bare := strings.TrimSuffix(prefix, ":")
		if strings.HasPrefix(first, bare+"(") {
			return true
		}
	}
	return false
}

// consistencyScore measures cadence regularity from the coefficient of
// variation of inter-commit gaps. A perfectly even cadence scores 100, an
// erratic one approaches 0. Fewer than two dated commits score 0.
func consistencyScore(dates []time.Time) float64 {
	if len(dates) < 2 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	gaps := make([]float64, 0, len(dates)-1)
	var sum float64
	for i := 1; i < len(dates); i++ {
		gap := dates[i].Sub(dates[i-1]).Hours() / 24
		gaps = append(gaps, gap)
		sum += gap
	}
	mean := sum / float64(len(gaps))
	if mean == 0 {
		return 100
	}

	var variance float64
	for _, g := range gaps {
		variance += (g - mean) * (g - mean)
	}
	variance /= float64(len(gaps))
	cv := math.Sqrt(variance) / mean

	return math.Max(0, 100-cv*50)
}

func analyzePullRequests(prs []types.PullRequestInfo) types.PullRequestActivity {
	activity := types.PullRequestActivity{Created: len(prs)}
	if len(prs) == 0 {
		return activity
	}

	var comments, size int
	for _, pr := range prs {
		if pr.Merged {
			activity.Merged++
		}
		comments += pr.Comments + pr.ReviewComments
		size += pr.Additions + pr.Deletions
	}
	activity.MergeRatePct = float64(activity.Merged) / float64(len(prs)) * 100
	activity.AvgCommentsPerPR = float64(comments) / float64(len(prs))
	activity.AvgSize = float64(size) / float64(len(prs))
	return activity
}

func analyzeReviews(reviews []types.ReviewInfo, prCount int) types.ReviewBehavior {
	behavior := types.ReviewBehavior{TotalReviews: len(reviews), SentimentClass: "neutral"}
	if len(reviews) == 0 {
		return behavior
	}

	var length int
	var sentiment float64
	for _, r := range reviews {
		length += len(r.Body)
		sentiment += polarity(r.Body)
	}
	behavior.AvgReviewLength = float64(length) / float64(len(reviews))
	behavior.AvgSentiment = sentiment / float64(len(reviews))
	behavior.SentimentClass = classifySentiment(behavior.AvgSentiment)
	if prCount > 0 {
		behavior.ReviewToPRRatio = float64(len(reviews)) / float64(prCount)
	} else {
		behavior.ReviewToPRRatio = float64(len(reviews))
	}
	return behavior
}
