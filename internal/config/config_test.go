package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"port": 9090, "upload_dir": "/tmp/hiresight", "github_token": "ghp_test"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/hiresight", cfg.UploadDir)
	assert.Equal(t, "ghp_test", cfg.GitHubToken)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9999}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9999, merged.Port)
	assert.Equal(t, "uploads", merged.UploadDir)
	assert.Equal(t, int64(64<<20), merged.MaxUploadBytes)
	require.NotNil(t, merged.Scoring)
	assert.Equal(t, 0.5, merged.Scoring.LinkedInWeight)
}

func TestScoringConfig_Validate(t *testing.T) {
	s := DefaultScoring()
	assert.NoError(t, s.Validate())

	s = DefaultScoring()
	s.LinkedInWeight = 0
	s.GitHubWeight = 0
	assert.Error(t, s.Validate())

	s = DefaultScoring()
	s.MinScore = 1.5
	assert.Error(t, s.Validate())

	s = DefaultScoring()
	s.RecencyDecayMonths = 0
	assert.Error(t, s.Validate())
}

func TestDefaultScoring_Weights(t *testing.T) {
	s := DefaultScoring()

	// Skill sub-score maxima cover the full 0-100 confidence range.
	sum := s.SkillWeights.LinesOfCodeMax + s.SkillWeights.RepoCountMax +
		s.SkillWeights.RecencyMax + s.SkillWeights.ComplexityMax
	assert.InDelta(t, 100.0, sum, 1e-9)

	mw := s.MatchingWeights
	assert.InDelta(t, 1.0, mw.CurrentFit+mw.GrowthPotential+mw.CollaborationFit+mw.CodeQuality, 1e-9)

	// Quality weights intentionally sum to 0.70.
	qw := s.QualityWeights
	assert.InDelta(t, 0.70, qw.Documentation+qw.Testing+qw.Maintenance, 1e-9)
}
