package github

import (
	"context"
	"errors"
	"testing"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"octocat", "octocat"},
		{"@octocat", "octocat"},
		{"https://github.com/octocat", "octocat"},
		{"https://github.com/octocat/some-repo", "octocat"},
		{"github.com/octocat?tab=repositories", "octocat"},
		{"  octocat  ", "octocat"},
		{"my-user-42", "my-user-42"},
	}
	for _, tt := range tests {
		got, err := ExtractUsername(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestExtractUsernameInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"has spaces",
		"-leading",
		"trailing-",
		"way.too.dotted",
		"https://gitlab.com/someone",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", // 40 chars
	} {
		_, err := ExtractUsername(input)
		var invalid *ErrInvalidUsername
		assert.ErrorAs(t, err, &invalid, input)
	}
}

func TestWithRetryRateLimit(t *testing.T) {
	policy := RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Minute,
		sleep: func(ctx context.Context, d time.Duration) error {
			return nil
		},
	}

	calls := 0
	err := policy.withRetry(context.Background(), zap.NewNop(), "test", func() error {
		calls++
		return &gh.RateLimitError{Message: "rate limited"}
	})

	assert.Equal(t, 3, calls)
	var rateLimited *ErrRateLimited
	require.ErrorAs(t, err, &rateLimited)
	assert.Equal(t, 3, rateLimited.Attempts)
}

func TestWithRetryDoublesDelay(t *testing.T) {
	var delays []time.Duration
	policy := RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Minute,
		sleep: func(ctx context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		},
	}

	_ = policy.withRetry(context.Background(), zap.NewNop(), "test", func() error {
		return &gh.AbuseRateLimitError{}
	})

	assert.Equal(t, []time.Duration{time.Minute, 2 * time.Minute}, delays)
}

func TestWithRetryRecovers(t *testing.T) {
	policy := RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Minute,
		sleep:        func(ctx context.Context, d time.Duration) error { return nil },
	}

	calls := 0
	err := policy.withRetry(context.Background(), zap.NewNop(), "test", func() error {
		calls++
		if calls == 1 {
			return &gh.RateLimitError{}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryPassesThroughOtherErrors(t *testing.T) {
	policy := DefaultRetryPolicy()
	sentinel := errors.New("boom")
	calls := 0
	err := policy.withRetry(context.Background(), zap.NewNop(), "test", func() error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestParsePackageJSON(t *testing.T) {
	deps := parsePackageJSON(`{
		"dependencies": {"react": "^18.0.0", "express": "^4.18.0"},
		"devDependencies": {"jest": "^29.0.0"}
	}`)
	assert.ElementsMatch(t, []string{"react", "express", "jest"}, deps)
	assert.Nil(t, parsePackageJSON("not json"))
}

func TestParseRequirementsTxt(t *testing.T) {
	deps := parseRequirementsTxt(`
# comment
Django==4.2
requests>=2.31
numpy
-r extra.txt
pytest ; python_version >= "3.8"
`)
	assert.Equal(t, []string{"django", "requests", "numpy", "pytest"}, deps)
}

func TestParseGoMod(t *testing.T) {
	deps := parseGoMod(`module example.com/app

go 1.22

require (
	github.com/stretchr/testify v1.9.0
	go.uber.org/zap v1.27.0 // indirect
)

require github.com/google/uuid v1.6.0
`)
	assert.Equal(t, []string{
		"github.com/stretchr/testify",
		"go.uber.org/zap",
		"github.com/google/uuid",
	}, deps)
}

func TestParseCargoToml(t *testing.T) {
	deps := parseCargoToml(`
[package]
name = "app"

[dependencies]
serde = "1.0"
tokio = { version = "1", features = ["full"] }

[dev-dependencies]
criterion = "0.5"
`)
	assert.Equal(t, []string{"serde", "tokio", "criterion"}, deps)
}

func TestParseGemfile(t *testing.T) {
	deps := parseGemfile(`
source "https://rubygems.org"
gem "rails", "~> 7.0"
gem 'puma'
`)
	assert.Equal(t, []string{"rails", "puma"}, deps)
}

func TestMonthsSince(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, monthsSince(time.Time{}, now))
	assert.Equal(t, 12, monthsSince(time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 11, monthsSince(time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, monthsSince(now.Add(time.Hour), now))
}
