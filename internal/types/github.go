package types

import "time"

// Profile holds the GitHub user profile metadata relevant to analysis.
type Profile struct {
	Username         string    `json:"username"`
	Name             string    `json:"name,omitempty"`
	Bio              string    `json:"bio,omitempty"`
	Company          string    `json:"company,omitempty"`
	Location         string    `json:"location,omitempty"`
	PublicRepos      int       `json:"public_repos"`
	Followers        int       `json:"followers"`
	Following        int       `json:"following"`
	CreatedAt        time.Time `json:"created_at"`
	AccountAgeMonths int       `json:"account_age_months"`
}

// Repository is a fetched repository with the enrichment needed for analysis.
// Summary listings populate only the metadata fields; top repositories also
// carry languages, commits, pull requests, reviews, dependencies and CI/CD
// detection results.
type Repository struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	SizeKB      int       `json:"size"`
	Fork        bool      `json:"is_fork"`
	Topics      []string  `json:"topics,omitempty"`
	License     string    `json:"license,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	PushedAt    time.Time `json:"pushed_at"`

	Languages    map[string]int    `json:"languages,omitempty"` // bytes per language
	Dependencies []string          `json:"dependencies,omitempty"`
	CICDTools    []string          `json:"cicd_tools,omitempty"`
	Commits      []CommitInfo      `json:"commits,omitempty"`
	PullRequests []PullRequestInfo `json:"pull_requests,omitempty"`
	Reviews      []ReviewInfo      `json:"code_reviews,omitempty"`
}

// CommitInfo is one commit authored by the analyzed user.
type CommitInfo struct {
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
	Additions int       `json:"additions,omitempty"`
	Deletions int       `json:"deletions,omitempty"`
}

// PullRequestInfo is one pull request opened by the analyzed user.
type PullRequestInfo struct {
	Number         int  `json:"number"`
	Merged         bool `json:"merged"`
	Comments       int  `json:"comments_count"`
	ReviewComments int  `json:"review_comments_count"`
	Additions      int  `json:"additions"`
	Deletions      int  `json:"deletions"`
}

// ReviewInfo is one code review authored by the analyzed user.
type ReviewInfo struct {
	Body  string `json:"body"`
	State string `json:"state,omitempty"`
}

// ProfileBundle is everything fetched for one GitHub user in a single run.
type ProfileBundle struct {
	Profile         *Profile     `json:"profile"`
	AllRepositories []Repository `json:"all_repositories"`
	TopRepositories []Repository `json:"top_repositories"`
	FetchedAt       time.Time    `json:"fetched_at"`
}
