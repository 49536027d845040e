package github

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v57/github"

	"github.com/ibhanwork/hiresight/internal/types"
)

// enrichRepository fills in the expensive per-repo detail: language byte
// counts, a sample of the owner's commits, pull request activity, review
// bodies, declared dependencies, and CI/CD tooling.
func (c *Client) enrichRepository(ctx context.Context, owner string, repo *types.Repository) error {
	if err := c.fetchLanguages(ctx, owner, repo); err != nil {
		return err
	}
	if err := c.fetchCommits(ctx, owner, repo); err != nil {
		return err
	}
	if err := c.fetchPullRequests(ctx, owner, repo); err != nil {
		return err
	}
	if err := c.fetchDependencies(ctx, owner, repo); err != nil {
		return err
	}
	return c.detectCICD(ctx, owner, repo)
}

func (c *Client) fetchLanguages(ctx context.Context, owner string, repo *types.Repository) error {
	var langs map[string]int
	err := c.retry.withRetry(ctx, c.log, "repos.languages", func() error {
		var err error
		langs, _, err = c.gh.Repositories.ListLanguages(ctx, owner, repo.Name)
		return err
	})
	if err != nil {
		return err
	}
	repo.Languages = langs
	return nil
}

func (c *Client) fetchCommits(ctx context.Context, owner string, repo *types.Repository) error {
	opts := &gh.CommitsListOptions{
		Author:      owner,
		ListOptions: gh.ListOptions{PerPage: commitSampleSize},
	}
	var commits []*gh.RepositoryCommit
	err := c.retry.withRetry(ctx, c.log, "repos.commits", func() error {
		var resp *gh.Response
		var err error
		commits, resp, err = c.gh.Repositories.ListCommits(ctx, owner, repo.Name, opts)
		// Empty repositories answer 409.
		if resp != nil && resp.StatusCode == http.StatusConflict {
			commits = nil
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	repo.Commits = make([]types.CommitInfo, 0, len(commits))
	for _, cm := range commits {
		info := types.CommitInfo{
			Message: cm.GetCommit().GetMessage(),
			Date:    cm.GetCommit().GetAuthor().GetDate().Time,
		}
		if stats := cm.GetStats(); stats != nil {
			info.Additions = stats.GetAdditions()
			info.Deletions = stats.GetDeletions()
		}
		repo.Commits = append(repo.Commits, info)
	}
	return nil
}

func (c *Client) fetchPullRequests(ctx context.Context, owner string, repo *types.Repository) error {
	opts := &gh.PullRequestListOptions{
		State:       "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: prSampleSize},
	}
	var prs []*gh.PullRequest
	err := c.retry.withRetry(ctx, c.log, "pulls.list", func() error {
		var err error
		prs, _, err = c.gh.PullRequests.List(ctx, owner, repo.Name, opts)
		return err
	})
	if err != nil {
		return err
	}

	repo.PullRequests = make([]types.PullRequestInfo, 0, len(prs))
	for _, pr := range prs {
		repo.PullRequests = append(repo.PullRequests, types.PullRequestInfo{
			Number:         pr.GetNumber(),
			Merged:         pr.GetMerged() || pr.MergedAt != nil,
			Comments:       pr.GetComments(),
			ReviewComments: pr.GetReviewComments(),
			Additions:      pr.GetAdditions(),
			Deletions:      pr.GetDeletions(),
		})

		reviews, err := c.fetchReviews(ctx, owner, repo.Name, pr.GetNumber())
		if err != nil {
			return err
		}
		repo.Reviews = append(repo.Reviews, reviews...)
	}
	return nil
}

func (c *Client) fetchReviews(ctx context.Context, owner, repoName string, number int) ([]types.ReviewInfo, error) {
	var reviews []*gh.PullRequestReview
	err := c.retry.withRetry(ctx, c.log, "pulls.reviews", func() error {
		var err error
		reviews, _, err = c.gh.PullRequests.ListReviews(ctx, owner, repoName, number, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]types.ReviewInfo, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, types.ReviewInfo{
			Body:  rv.GetBody(),
			State: rv.GetState(),
		})
	}
	return out, nil
}
