// Package interview generates tailored interview question sets for
// shortlisted candidates using the LLM client.
package interview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/llm"
	"github.com/ibhanwork/hiresight/internal/prompts"
	"github.com/ibhanwork/hiresight/internal/session"
	"github.com/ibhanwork/hiresight/internal/types"
)

// generateTimeout bounds a single question-generation call.
const generateTimeout = 30 * time.Second

// Generator produces interview question documents.
type Generator struct {
	client llm.Client
	log    *zap.Logger
}

// NewGenerator creates a generator backed by the configured LLM provider.
func NewGenerator(ctx context.Context, apiKey string, log *zap.Logger) (*Generator, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{client: client, log: log}, nil
}

// NewGeneratorWithClient wires an existing client, used by tests.
func NewGeneratorWithClient(client llm.Client, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{client: client, log: log}
}

// Close releases the underlying client.
func (g *Generator) Close() error {
	return g.client.Close()
}

// Generate produces the question set for one candidate from their combined
// profile text (resume extract, analysis summary, or both).
func (g *Generator) Generate(ctx context.Context, req *types.InterviewRequest) (*types.InterviewResult, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	prompt := BuildPrompt(req.CandidateName, req.CandidateText)
	questions, err := g.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate interview questions: %w", err)
	}

	g.log.Info("interview questions generated",
		zap.String("candidate", req.CandidateName),
		zap.Int("length", len(questions)))

	return &types.InterviewResult{
		CandidateName: req.CandidateName,
		Questions:     questions,
	}, nil
}

// WriteToFile persists a result under dir as <name>_interview_questions.txt
// and records the path on the result.
func (g *Generator) WriteToFile(dir string, result *types.InterviewResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, OutputFilename(result.CandidateName))
	if err := os.WriteFile(path, []byte(result.Questions), 0o644); err != nil {
		return fmt.Errorf("failed to write interview questions: %w", err)
	}
	result.OutputFile = path
	return nil
}

// GenerateBatch produces a question set per request and writes each to
// outDir. Individual failures are logged and skipped so one refused
// candidate does not sink the batch; the error is non-nil only when no
// candidate succeeded.
func (g *Generator) GenerateBatch(ctx context.Context, reqs []*types.InterviewRequest, outDir string) ([]*types.InterviewResult, error) {
	var results []*types.InterviewResult
	var lastErr error
	for _, req := range reqs {
		result, err := g.Generate(ctx, req)
		if err != nil {
			lastErr = err
			g.log.Warn("skipping candidate in interview batch",
				zap.String("candidate", req.CandidateName), zap.Error(err))
			continue
		}
		if err := g.WriteToFile(outDir, result); err != nil {
			g.log.Warn("failed to store interview questions",
				zap.String("candidate", req.CandidateName), zap.Error(err))
		}
		results = append(results, result)
	}
	if len(results) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return results, nil
}

// OutputFilename derives the on-disk name for a candidate's question set.
func OutputFilename(candidateName string) string {
	return session.SanitizeID(candidateName) + "_interview_questions.txt"
}

// BuildPrompt assembles the question-generation prompt from the
// externalized template.
func BuildPrompt(candidateName, candidateText string) string {
	template := prompts.MustGet("interview.json", "generate-questions")
	return prompts.Format(template, map[string]string{
		"CandidateName": candidateName,
		"CandidateText": candidateText,
	})
}
