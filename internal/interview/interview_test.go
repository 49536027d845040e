package interview

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibhanwork/hiresight/internal/llm"
	"github.com/ibhanwork/hiresight/internal/types"
)

type stubClient struct {
	response   string
	failFor    string
	lastPrompt string
	lastTier   llm.ModelTier
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.lastPrompt = prompt
	s.lastTier = tier
	if s.failFor != "" && strings.Contains(prompt, s.failFor) {
		return "", errors.New("model refused")
	}
	return s.response, nil
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateContent(context.Background(), prompt, tier)
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub" }
func (s *stubClient) Close() error                  { return nil }

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Jane Doe", "Backend engineer with 5 years of Go and PostgreSQL.")

	assert.Contains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "Backend engineer with 5 years of Go and PostgreSQL.")
	assert.Contains(t, prompt, "PROFILE SUMMARY")
	assert.Contains(t, prompt, "8-10 questions")
	assert.Contains(t, prompt, "3-5 questions")
	assert.Contains(t, prompt, "2-3 deeper questions")
}

func TestOutputFilename(t *testing.T) {
	assert.Equal(t, "jane_doe_interview_questions.txt", OutputFilename("Jane Doe"))
	assert.Equal(t, "j__smith_interview_questions.txt", OutputFilename("J. Smith"))
	assert.Equal(t, "unknown_interview_questions.txt", OutputFilename(""))
}

func TestGenerate(t *testing.T) {
	stub := &stubClient{response: "1. Tell me about your Go experience."}
	gen := NewGeneratorWithClient(stub, nil)

	result, err := gen.Generate(context.Background(), &types.InterviewRequest{
		CandidateName: "Jane Doe",
		CandidateText: "Go, PostgreSQL, five years backend.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.CandidateName)
	assert.Equal(t, stub.response, result.Questions)
	assert.Equal(t, llm.TierStandard, stub.lastTier)
	assert.Contains(t, stub.lastPrompt, "five years backend")
}

func TestGenerateBatch_SkipsFailedCandidate(t *testing.T) {
	stub := &stubClient{response: "1. Why Go?", failFor: "Bob Ray"}
	gen := NewGeneratorWithClient(stub, nil)
	dir := t.TempDir()

	reqs := []*types.InterviewRequest{
		{CandidateName: "Jane Doe", CandidateText: "Go and PostgreSQL."},
		{CandidateName: "Bob Ray", CandidateText: "React and CSS."},
	}

	results, err := gen.GenerateBatch(context.Background(), reqs, dir)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Jane Doe", results[0].CandidateName)
	assert.FileExists(t, filepath.Join(dir, "jane_doe_interview_questions.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "bob_ray_interview_questions.txt"))
}

func TestGenerateBatch_AllFailed(t *testing.T) {
	stub := &stubClient{failFor: "PROFILE SUMMARY"} // every prompt carries this header
	gen := NewGeneratorWithClient(stub, nil)

	_, err := gen.GenerateBatch(context.Background(), []*types.InterviewRequest{
		{CandidateName: "Jane Doe", CandidateText: "Go."},
	}, t.TempDir())
	assert.Error(t, err)
}

func TestWriteToFile(t *testing.T) {
	gen := NewGeneratorWithClient(&stubClient{}, nil)
	dir := t.TempDir()

	result := &types.InterviewResult{
		CandidateName: "Jane Doe",
		Questions:     "1. Why Go?",
	}
	require.NoError(t, gen.WriteToFile(filepath.Join(dir, "reports"), result))

	assert.Equal(t, filepath.Join(dir, "reports", "jane_doe_interview_questions.txt"), result.OutputFile)
	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "1. Why Go?", string(data))
}
