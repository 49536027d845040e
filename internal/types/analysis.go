package types

import "time"

// SkillScore is one skill with its evidence-weighted confidence.
// Confidence is 0-100, relative to the candidate's own skill distribution
// (max-normalized within a single analysis run).
type SkillScore struct {
	Name       string     `json:"name"`
	Confidence float64    `json:"confidence"`
	RepoCount  int        `json:"repo_count"`
	LastUsed   *time.Time `json:"last_used,omitempty"`
	Category   string     `json:"category"`
	Evidence   []string   `json:"evidence,omitempty"`
}

// SkillInventory is the full skill analysis for one profile, sorted by
// descending confidence.
type SkillInventory struct {
	Skills     []SkillScore `json:"skills"`
	TopSkills  []string     `json:"top_skills"`
	SkillCount int          `json:"skill_count"`
}

// CommitBehavior aggregates commit activity across analyzed repositories.
type CommitBehavior struct {
	TotalCommits            int     `json:"total_commits"`
	TotalAdditions          int     `json:"total_additions"`
	TotalDeletions          int     `json:"total_deletions"`
	AvgMessageLength        float64 `json:"avg_message_length"`
	UsesConventionalCommits bool    `json:"uses_conventional_commits"`
	ConventionalCommitPct   float64 `json:"conventional_commit_percentage"`
	ConsistencyScore        float64 `json:"consistency_score"`
}

// PullRequestActivity aggregates pull request activity.
type PullRequestActivity struct {
	Created          int     `json:"total_prs_created"`
	Merged           int     `json:"total_prs_merged"`
	MergeRatePct     float64 `json:"merge_rate_percentage"`
	AvgCommentsPerPR float64 `json:"avg_comments_per_pr"`
	AvgSize          float64 `json:"avg_pr_size"`
}

// ReviewBehavior aggregates code review activity including sentiment.
type ReviewBehavior struct {
	TotalReviews    int     `json:"total_reviews_given"`
	AvgReviewLength float64 `json:"avg_review_length"`
	AvgSentiment    float64 `json:"avg_sentiment"`
	SentimentClass  string  `json:"sentiment_classification"`
	ReviewToPRRatio float64 `json:"review_to_pr_ratio"`
}

// ContributionPatterns is the combined contribution analysis.
type ContributionPatterns struct {
	Commits      CommitBehavior      `json:"commit_behavior"`
	PullRequests PullRequestActivity `json:"pull_request_activity"`
	Reviews      ReviewBehavior      `json:"code_review_behavior"`
}

// WorkStyle is one detected work style with its confidence and supporting
// indicators.
type WorkStyle struct {
	Style      string   `json:"style"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"indicators"`
}

// WorkStyleProfile holds all detected styles, sorted by confidence.
type WorkStyleProfile struct {
	PrimaryStyle string      `json:"primary_style"`
	Styles       []WorkStyle `json:"all_styles"`
}

// RepoQuality is the per-repository code quality assessment.
type RepoQuality struct {
	RepoName      string  `json:"repo_name"`
	Documentation float64 `json:"documentation_score"`
	Testing       float64 `json:"testing_score"`
	Maintenance   float64 `json:"maintenance_score"`
	Overall       float64 `json:"overall_score"`
}

// CodeQuality aggregates repository quality scores.
type CodeQuality struct {
	Repositories  []RepoQuality `json:"repository_scores"`
	Documentation float64       `json:"documentation"`
	Testing       float64       `json:"testing"`
	Maintenance   float64       `json:"maintenance"`
	Overall       float64       `json:"overall"`
	Tier          string        `json:"quality_tier"`
}

// LearningTrajectory describes skill acquisition patterns and growth
// potential.
type LearningTrajectory struct {
	TotalSkills          int      `json:"total_skills"`
	RecentSkills         []string `json:"recent_skills"`
	NewSkillsLastYear    int      `json:"new_skills_last_year"`
	Categories           []string `json:"skill_categories"`
	DiversificationScore float64  `json:"diversification_score"`
	ComplexityTrend      string   `json:"complexity_trend"`
	LearningVelocity     float64  `json:"learning_velocity"`
	AdaptabilityScore    float64  `json:"adaptability_score"`
	GrowthPotential      string   `json:"growth_potential"`
}

// Analysis is the complete profile analysis produced from a ProfileBundle.
type Analysis struct {
	Profile       Profile              `json:"profile_metadata"`
	Skills        SkillInventory       `json:"skills_analysis"`
	Contributions ContributionPatterns `json:"contribution_patterns"`
	WorkStyle     WorkStyleProfile     `json:"work_style"`
	CodeQuality   CodeQuality          `json:"code_quality"`
	Learning      LearningTrajectory   `json:"learning_trajectory"`
	AnalyzedAt    time.Time            `json:"analyzed_at"`
}
