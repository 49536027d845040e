package github

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	gh "github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/ibhanwork/hiresight/internal/types"
)

// DefaultTopRepos is how many recently pushed repositories get the deep
// enrichment pass (languages, commits, pull requests, reviews, manifests).
const DefaultTopRepos = 10

const (
	commitSampleSize = 50
	prSampleSize     = 30
)

// ErrUserNotFound indicates the GitHub user does not exist.
type ErrUserNotFound struct {
	Username string
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("GitHub user not found: %s", e.Username)
}

// Client wraps the GitHub REST API for profile analysis.
type Client struct {
	gh       *gh.Client
	log      *zap.Logger
	retry    RetryPolicy
	topRepos int
}

// Option configures a Client.
type Option func(*Client)

// WithTopRepos overrides how many repositories are enriched.
func WithTopRepos(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.topRepos = n
		}
	}
}

// WithRetryPolicy overrides the rate-limit retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// NewClient creates a GitHub client. An empty token yields unauthenticated
// access with its lower rate limits.
func NewClient(ctx context.Context, token string, log *zap.Logger, opts ...Option) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	c := &Client{
		gh:       gh.NewClient(httpClient),
		log:      log,
		retry:    DefaultRetryPolicy(),
		topRepos: DefaultTopRepos,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProfile assembles the full profile bundle for a username: account
// metadata, every public repository, and a deep enrichment of the most
// recently pushed ones.
func (c *Client) FetchProfile(ctx context.Context, username string) (*types.ProfileBundle, error) {
	username, err := ExtractUsername(username)
	if err != nil {
		return nil, err
	}

	profile, err := c.fetchUser(ctx, username)
	if err != nil {
		return nil, err
	}

	repos, err := c.fetchRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].PushedAt.After(repos[j].PushedAt)
	})

	top := c.topRepos
	if top > len(repos) {
		top = len(repos)
	}
	topRepos := make([]types.Repository, top)
	copy(topRepos, repos[:top])
	for i := range topRepos {
		if err := c.enrichRepository(ctx, username, &topRepos[i]); err != nil {
			// Enrichment is best effort per repo, surface only in logs.
			c.log.Warn("repository enrichment incomplete",
				zap.String("repo", topRepos[i].Name),
				zap.Error(err))
		}
	}

	return &types.ProfileBundle{
		Profile:         profile,
		AllRepositories: repos,
		TopRepositories: topRepos,
		FetchedAt:       time.Now().UTC(),
	}, nil
}

func (c *Client) fetchUser(ctx context.Context, username string) (*types.Profile, error) {
	var user *gh.User
	err := c.retry.withRetry(ctx, c.log, "users.get", func() error {
		var resp *gh.Response
		var err error
		user, resp, err = c.gh.Users.Get(ctx, username)
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return &ErrUserNotFound{Username: username}
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	created := user.GetCreatedAt().Time
	return &types.Profile{
		Username:         user.GetLogin(),
		Name:             user.GetName(),
		Bio:              user.GetBio(),
		Company:          user.GetCompany(),
		Location:         user.GetLocation(),
		PublicRepos:      user.GetPublicRepos(),
		Followers:        user.GetFollowers(),
		Following:        user.GetFollowing(),
		CreatedAt:        created,
		AccountAgeMonths: monthsSince(created, time.Now()),
	}, nil
}

func (c *Client) fetchRepositories(ctx context.Context, username string) ([]types.Repository, error) {
	var repos []types.Repository
	opts := &gh.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for {
		var page []*gh.Repository
		var resp *gh.Response
		err := c.retry.withRetry(ctx, c.log, "repos.list", func() error {
			var err error
			page, resp, err = c.gh.Repositories.ListByUser(ctx, username, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}
		for _, r := range page {
			repos = append(repos, convertRepository(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

func convertRepository(r *gh.Repository) types.Repository {
	repo := types.Repository{
		Name:        r.GetName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		SizeKB:      r.GetSize(),
		Fork:        r.GetFork(),
		Topics:      r.Topics,
		CreatedAt:   r.GetCreatedAt().Time,
		PushedAt:    r.GetPushedAt().Time,
	}
	if lic := r.GetLicense(); lic != nil {
		repo.License = lic.GetSPDXID()
	}
	return repo
}

func monthsSince(t, now time.Time) int {
	if t.IsZero() || t.After(now) {
		return 0
	}
	months := (now.Year()-t.Year())*12 + int(now.Month()) - int(t.Month())
	if now.Day() < t.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
