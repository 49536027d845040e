package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibhanwork/hiresight/internal/llm"
)

const postingHTML = `
<html>
	<body>
		<nav>Jobs | About</nav>
		<div class="job-description">
			<h1>Backend Engineer</h1>
			<p>We are looking for 3+ years of Go and PostgreSQL experience.</p>
		</div>
		<form id="application-form">First name: Last name:</form>
		<footer>EEO employer</footer>
	</body>
</html>`

func TestFetchPosting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	f := NewPostingFetcher(PostingFetcherConfig{})
	posting, err := f.FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, server.URL, posting.URL)
	assert.Equal(t, PlatformUnknown, posting.Platform)
	assert.False(t, posting.FromCache)
	assert.Contains(t, posting.Text, "Backend Engineer")
	assert.Contains(t, posting.Text, "3+ years of Go")
	assert.NotContains(t, posting.Text, "First name")
	assert.NotContains(t, posting.Text, "EEO employer")
}

func TestFetchPostingHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewPostingFetcher(PostingFetcherConfig{})
	_, err := f.FetchPosting(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
}

type stubLLM struct {
	response string
	prompt   string
}

func (s *stubLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompt = prompt
	return s.response, nil
}

func (s *stubLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateContent(ctx, prompt, tier)
}

func (s *stubLLM) GetModel(llm.ModelTier) string { return "stub" }
func (s *stubLLM) Close() error                  { return nil }

func TestExtractRequirements(t *testing.T) {
	stub := &stubLLM{response: "```json\n" + `{
		"role": "Backend Engineer",
		"required_skills": ["Go", "PostgreSQL"],
		"preferred_skills": ["Kubernetes"],
		"experience": "3+ years building APIs"
	}` + "\n```"}

	posting := &Posting{
		URL:      "https://example.com/jobs/1",
		Platform: PlatformUnknown,
		Text:     "Backend Engineer. 3+ years of Go and PostgreSQL.",
	}

	req, err := ExtractRequirements(context.Background(), stub, posting)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", req.Role)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, req.RequiredSkills)
	assert.Equal(t, []string{"Kubernetes"}, req.PreferredSkills)
	assert.Equal(t, "3+ years building APIs", req.Experience)
	// raw posting text is kept for the bias audit
	assert.Equal(t, posting.Text, req.Description)
	assert.Contains(t, stub.prompt, posting.Text)
}

func TestExtractRequirementsBadJSON(t *testing.T) {
	stub := &stubLLM{response: "sorry, I could not parse that posting"}
	_, err := ExtractRequirements(context.Background(), stub, &Posting{Text: "text"})
	assert.Error(t, err)
}

func TestExtractRequirementsFailsValidation(t *testing.T) {
	// missing required_skills
	stub := &stubLLM{response: `{"role": "Backend Engineer"}`}
	_, err := ExtractRequirements(context.Background(), stub, &Posting{Text: "text"})
	assert.Error(t, err)
}
