package leaderboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibhanwork/hiresight/internal/config"
	"github.com/ibhanwork/hiresight/internal/types"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "john obrien", NormalizeName("John  O'Brien"))
	assert.Equal(t, "maria garcia-lopez", NormalizeName("Maria Garcia-Lopez"))
	assert.Equal(t, "jane doe", NormalizeName("  Jane   DOE.  "))
	assert.Equal(t, "", NormalizeName("!!!"))
}

func TestNormalizeNameIdempotent(t *testing.T) {
	for _, name := range []string{"John  O'Brien", "Jane Doe", "A. B. C-D", "  x  "} {
		once := NormalizeName(name)
		assert.Equal(t, once, NormalizeName(once), name)
	}
}

func TestNameSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, NameSimilarity("Jane Doe", "jane doe"))
	assert.Equal(t, 0.8, NameSimilarity("Jane Doe", "Jane Doe Smith"))
	assert.InDelta(t, 0.2, NameSimilarity("Jane Marie Doe", "Jane Smith Jones"), 0.001)
	assert.Equal(t, 0.0, NameSimilarity("", "Jane"))
	assert.Equal(t, 0.0, NameSimilarity("Alice Brown", "Carol Davis"))
}

func defaultGenerator() *Generator {
	return NewGenerator(config.DefaultScoring())
}

func TestGenerateSkipsCandidatesWithNoSignal(t *testing.T) {
	g := defaultGenerator()
	ranked, stats := g.Generate([]types.CandidateScore{
		{Name: "Present", LinkedInScore: 0.8, GitHubScore: 0.6},
		{Name: "Ghost"},
	})
	require.Len(t, ranked, 1)
	assert.Equal(t, "Present", ranked[0].Name)
	assert.Equal(t, 1, stats.TotalCandidates)
}

func TestGenerateSingleSourcePassThrough(t *testing.T) {
	g := defaultGenerator()
	ranked, _ := g.Generate([]types.CandidateScore{
		{Name: "LinkedIn Only", LinkedInScore: 0.7},
		{Name: "GitHub Only", GitHubScore: 0.9},
	})
	require.Len(t, ranked, 2)
	assert.Equal(t, "GitHub Only", ranked[0].Name)
	assert.Equal(t, 0.9, ranked[0].CombinedScore)
	assert.Equal(t, 0.7, ranked[1].CombinedScore)
}

func TestGenerateWeightNormalization(t *testing.T) {
	g := &Generator{LinkedInWeight: 2, GitHubWeight: 6}
	ranked, _ := g.Generate([]types.CandidateScore{
		{Name: "Both", LinkedInScore: 0.4, GitHubScore: 0.8},
	})
	require.Len(t, ranked, 1)
	// (0.4*2 + 0.8*6) / 8 = 0.7
	assert.Equal(t, 0.7, ranked[0].CombinedScore)
}

func TestGenerateMinScoreFilter(t *testing.T) {
	g := defaultGenerator()
	g.MinScore = 0.5
	ranked, _ := g.Generate([]types.CandidateScore{
		{Name: "Keep", LinkedInScore: 0.6, GitHubScore: 0.6},
		{Name: "Drop", LinkedInScore: 0.2, GitHubScore: 0.2},
	})
	require.Len(t, ranked, 1)
	assert.Equal(t, "Keep", ranked[0].Name)
}

func TestGenerateDenseRanks(t *testing.T) {
	g := defaultGenerator()
	ranked, _ := g.Generate([]types.CandidateScore{
		{Name: "A", LinkedInScore: 0.9, GitHubScore: 0.9},
		{Name: "B", LinkedInScore: 0.9, GitHubScore: 0.9},
		{Name: "C", LinkedInScore: 0.5, GitHubScore: 0.5},
	})
	require.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 1, ranked[1].Rank)
	assert.Equal(t, 2, ranked[2].Rank)
}

func TestGenerateStableSortPreservesInputOrderOnTies(t *testing.T) {
	g := defaultGenerator()
	ranked, _ := g.Generate([]types.CandidateScore{
		{Name: "First", LinkedInScore: 0.6, GitHubScore: 0.6},
		{Name: "Second", LinkedInScore: 0.6, GitHubScore: 0.6},
	})
	assert.Equal(t, "First", ranked[0].Name)
	assert.Equal(t, "Second", ranked[1].Name)
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		tier  string
		emoji string
	}{
		{0.90, "Excellent Match", "🥇"},
		{0.85, "Excellent Match", "🥇"},
		{0.80, "Very Good Match", "🥈"},
		{0.75, "Very Good Match", "🥈"},
		{0.70, "Good Match", "🥉"},
		{0.65, "Good Match", "🥉"},
		{0.55, "Moderate Match", "✅"},
		{0.50, "Moderate Match", "✅"},
		{0.40, "Fair Match", "⚠️"},
		{0.35, "Fair Match", "⚠️"},
		{0.3499999, "Low Match", "❌"},
		{0.10, "Low Match", "❌"},
		{0.0, "Low Match", "❌"},
	}
	for _, tt := range tests {
		tier, emoji := Tier(tt.score)
		assert.Equal(t, tt.tier, tier, "score %.2f", tt.score)
		assert.Equal(t, tt.emoji, emoji, "score %.2f", tt.score)
	}
}

func TestGenerateStats(t *testing.T) {
	g := defaultGenerator()
	ranked, stats := g.Generate([]types.CandidateScore{
		{Name: "A", LinkedInScore: 0.9, GitHubScore: 0.9},
		{Name: "B", LinkedInScore: 0.6, GitHubScore: 0.6},
		{Name: "C", LinkedInScore: 0.3, GitHubScore: 0.3},
	})
	require.Len(t, ranked, 3)
	assert.Equal(t, 3, stats.TotalCandidates)
	assert.InDelta(t, 0.6, stats.AverageScore, 1e-9)
	assert.Equal(t, 0.6, stats.MedianScore)
	assert.Equal(t, 0.9, stats.HighestScore)
	assert.Equal(t, 0.3, stats.LowestScore)
	assert.Equal(t, 1, stats.TierDistribution["Excellent Match"])
	assert.Equal(t, 1, stats.TierDistribution["Moderate Match"])
	assert.Equal(t, 1, stats.TierDistribution["Low Match"])
}

func TestLoadLinkedInCSV(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "results.csv")
	csvData := "name,score,github_username\nJane Doe,85,janedoe\nBob Lee,55,\n,90,\nBad Row,not-a-number,x\n"
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	scores, err := LoadLinkedInCSV(path)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	assert.Equal(t, "Jane Doe", scores[0].Name)
	assert.Equal(t, 0.85, scores[0].LinkedInScore)
	assert.Equal(t, 85.0, scores[0].LinkedInRawScore)
	assert.Equal(t, "janedoe", scores[0].GitHubUsername)
	assert.Equal(t, 0.55, scores[1].LinkedInScore)
}

func TestLoadLinkedInCSVSubPercentScore(t *testing.T) {
	// A 0.9% resume match is stored as "0.90" on the percent scale and must
	// not be mistaken for an already-normalized 0.90.
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "results.csv")
	csvData := "candidate_name,resume_score,github_username\nWeak Match,0.90,\n"
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	scores, err := LoadLinkedInCSV(path)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 0.009, scores[0].LinkedInScore, 1e-9)
	assert.Equal(t, 0.90, scores[0].LinkedInRawScore)
}

func TestLoadLinkedInCSVMissingColumns(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "results.csv")
	require.NoError(t, os.WriteFile(path, []byte("foo,bar\n1,2\n"), 0o644))

	_, err := LoadLinkedInCSV(path)
	assert.Error(t, err)
}

func TestLoadGitHubReports(t *testing.T) {
	tmpDir := t.TempDir()
	report := `{
		"analysis": {"profile_metadata": {"username": "janedoe", "name": "Jane Doe"}},
		"match_results": {"overall_score": 82.5}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "analysis_janedoe.json"), []byte(report), 0o644))
	noMatch := `{"analysis": {"profile_metadata": {"username": "ghost"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "analysis_ghost.json"), []byte(noMatch), 0o644))

	scores, err := LoadGitHubReports(tmpDir)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "Jane Doe", scores[0].Name)
	assert.Equal(t, "janedoe", scores[0].GitHubUsername)
	assert.Equal(t, 0.825, scores[0].GitHubScore)
	assert.Equal(t, 82.5, scores[0].GitHubRawScore)
}

func TestMergeScores(t *testing.T) {
	linkedin := []types.CandidateScore{
		{Name: "Jane Doe", LinkedInScore: 0.8},
		{Name: "Solo LinkedIn", LinkedInScore: 0.5},
	}
	github := []types.CandidateScore{
		{Name: "jane doe", GitHubScore: 0.7, GitHubUsername: "janedoe"},
		{Name: "Solo GitHub", GitHubScore: 0.6, GitHubUsername: "solo"},
	}

	merged := MergeScores(linkedin, github)
	require.Len(t, merged, 3)

	byName := map[string]types.CandidateScore{}
	for _, m := range merged {
		byName[m.Name] = m
	}
	jane := byName["Jane Doe"]
	assert.Equal(t, 0.8, jane.LinkedInScore)
	assert.Equal(t, 0.7, jane.GitHubScore)
	assert.Equal(t, "janedoe", jane.GitHubUsername)
	assert.Equal(t, 0.5, byName["Solo LinkedIn"].LinkedInScore)
	assert.Equal(t, 0.6, byName["Solo GitHub"].GitHubScore)
}

func TestMergeScoresFuzzy(t *testing.T) {
	linkedin := []types.CandidateScore{{Name: "Jane Doe", LinkedInScore: 0.8}}
	github := []types.CandidateScore{{Name: "Jane Doe Smith", GitHubScore: 0.7}}

	merged := MergeScores(linkedin, github)
	require.Len(t, merged, 1)
	assert.Equal(t, 0.8, merged[0].LinkedInScore)
	assert.Equal(t, 0.7, merged[0].GitHubScore)
}

func TestSnapshotWriters(t *testing.T) {
	tmpDir := t.TempDir()
	snap := &Snapshot{
		SessionID:   "session_acme_backend_20260801_120000_abcd1234",
		JobTitle:    "Backend Engineer",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Candidates: []types.RankedCandidate{
			{Rank: 1, Name: "Jane Doe", CombinedScore: 0.9, Tier: "Excellent Match", Emoji: "🥇"},
			{Rank: 2, Name: "Bob Lee", CombinedScore: 0.6, Tier: "Moderate Match", Emoji: "✅"},
		},
		Stats: types.LeaderboardStats{TotalCandidates: 2, AverageScore: 0.75},
	}

	jsonPath := filepath.Join(tmpDir, "leaderboard.json")
	require.NoError(t, snap.WriteJSON(jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jane Doe")
	assert.Contains(t, string(data), "\"candidates\"")

	csvPath := filepath.Join(tmpDir, "leaderboard.csv")
	require.NoError(t, snap.WriteCSV(csvPath))
	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "Rank,Name,Combined Score")
	assert.Contains(t, string(csvData), "Jane Doe")

	mdPath := filepath.Join(tmpDir, "leaderboard.md")
	require.NoError(t, snap.WriteMarkdown(mdPath))
	mdData, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(mdData), "# Backend Engineer")
	assert.Contains(t, string(mdData), "| 1 | Jane Doe |")

	xlsxPath := filepath.Join(tmpDir, "leaderboard.xlsx")
	require.NoError(t, snap.WriteXLSX(xlsxPath))
	info, err := os.Stat(xlsxPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
