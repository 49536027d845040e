package analysis

import (
	"fmt"
	"sort"

	"github.com/ibhanwork/hiresight/internal/types"
)

// Work style labels.
const (
	StyleSolo          = "Solo Developer"
	StyleCollaborative = "Collaborative"
	StyleMentorship    = "Mentorship-Oriented"
	StyleAsync         = "Async-Friendly"
	StyleIndependent   = "Independent Contributor"
)

// analyzeWorkStyle classifies how the candidate tends to work, from
// contribution signals. Multiple styles can apply; the profile is sorted by
// confidence and the strongest becomes the primary style.
func (a *Analyzer) analyzeWorkStyle(patterns types.ContributionPatterns) types.WorkStyleProfile {
	var styles []types.WorkStyle
	th := a.cfg.WorkStyle

	mergeRate := patterns.PullRequests.MergeRatePct / 100
	if patterns.PullRequests.Created > 0 && mergeRate > th.SoloMergeRate {
		styles = append(styles, types.WorkStyle{
			Style:      StyleSolo,
			Confidence: mergeRate * 100,
			Indicators: []string{
				fmt.Sprintf("%.0f%% of pull requests self-merged", patterns.PullRequests.MergeRatePct),
			},
		})
	}

	reviewRatio := patterns.Reviews.ReviewToPRRatio
	avgComments := patterns.PullRequests.AvgCommentsPerPR
	if reviewRatio > th.HighReviewRatio || avgComments > 3 {
		var indicators []string
		if reviewRatio > th.HighReviewRatio {
			indicators = append(indicators, fmt.Sprintf("%.1f reviews per pull request", reviewRatio))
		}
		if avgComments > 3 {
			indicators = append(indicators, fmt.Sprintf("%.1f comments per pull request", avgComments))
		}
		styles = append(styles, types.WorkStyle{
			Style:      StyleCollaborative,
			Confidence: clamp(reviewRatio*100+avgComments*10, 0, 100),
			Indicators: indicators,
		})
	}

	if patterns.Reviews.AvgReviewLength > th.MentorshipReviewLength &&
		patterns.Reviews.SentimentClass == "positive" {
		styles = append(styles, types.WorkStyle{
			Style:      StyleMentorship,
			Confidence: clamp(patterns.Reviews.AvgReviewLength/3, 0, 100),
			Indicators: []string{
				fmt.Sprintf("detailed, supportive reviews averaging %.0f characters", patterns.Reviews.AvgReviewLength),
			},
		})
	}

	conventional := patterns.Commits.ConventionalCommitPct / 100
	msgLen := patterns.Commits.AvgMessageLength
	if conventional > 0.5 || msgLen > 50 {
		var indicators []string
		if conventional > 0.5 {
			indicators = append(indicators, fmt.Sprintf("%.0f%% conventional commit messages", patterns.Commits.ConventionalCommitPct))
		}
		if msgLen > 50 {
			indicators = append(indicators, fmt.Sprintf("descriptive commit messages averaging %.0f characters", msgLen))
		}
		styles = append(styles, types.WorkStyle{
			Style:      StyleAsync,
			Confidence: clamp(conventional*100+msgLen/2, 0, 100),
			Indicators: indicators,
		})
	}

	if len(styles) == 0 {
		styles = append(styles, types.WorkStyle{
			Style:      StyleIndependent,
			Confidence: 50,
			Indicators: []string{"no strong collaboration or cadence signals"},
		})
	}

	sort.SliceStable(styles, func(i, j int) bool {
		return styles[i].Confidence > styles[j].Confidence
	})

	return types.WorkStyleProfile{
		PrimaryStyle: styles[0].Style,
		Styles:       styles,
	}
}
