package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ibhanwork/hiresight/internal/leaderboard"
	"github.com/ibhanwork/hiresight/internal/observability"
	"github.com/ibhanwork/hiresight/internal/schemas"
	"github.com/ibhanwork/hiresight/internal/types"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <session-dir>",
	Short: "Generate a leaderboard from a session directory",
	Long:  "Fuses results.csv and reports/analysis_*.json from a session directory into a ranked leaderboard, written as leaderboard.json plus CSV, Markdown and XLSX exports.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeaderboard,
}

var (
	leaderboardLinkedInWeight float64
	leaderboardGitHubWeight   float64
	leaderboardMinScore       float64
)

func init() {
	leaderboardCmd.Flags().Float64Var(&leaderboardLinkedInWeight, "linkedin-weight", 0, "Resume score weight (overrides config)")
	leaderboardCmd.Flags().Float64Var(&leaderboardGitHubWeight, "github-weight", 0, "GitHub score weight (overrides config)")
	leaderboardCmd.Flags().Float64Var(&leaderboardMinScore, "min-score", 0, "Minimum combined score to include")
	rootCmd.AddCommand(leaderboardCmd)
}

func runLeaderboard(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sessionDir := args[0]

	linkedinScores, err := loadIfPresent(filepath.Join(sessionDir, "results.csv"), leaderboard.LoadLinkedInCSV)
	if err != nil {
		return err
	}
	githubScores, err := loadIfPresent(filepath.Join(sessionDir, "reports"), leaderboard.LoadGitHubReports)
	if err != nil {
		return err
	}

	merged := leaderboard.MergeScores(linkedinScores, githubScores)
	if len(merged) == 0 {
		return fmt.Errorf("no candidate scores found in %s", sessionDir)
	}

	gen := leaderboard.NewGenerator(cfg.Scoring)
	if leaderboardLinkedInWeight > 0 || leaderboardGitHubWeight > 0 {
		gen.LinkedInWeight = leaderboardLinkedInWeight
		gen.GitHubWeight = leaderboardGitHubWeight
	}
	if leaderboardMinScore > 0 {
		gen.MinScore = leaderboardMinScore
	}

	ranked, stats := gen.Generate(merged)
	snapshot := &leaderboard.Snapshot{
		SessionID:   filepath.Base(sessionDir),
		GeneratedAt: time.Now().UTC(),
		Candidates:  ranked,
		Stats:       stats,
	}

	jsonPath := filepath.Join(sessionDir, "leaderboard.json")
	if err := snapshot.WriteJSON(jsonPath); err != nil {
		return err
	}
	base := filepath.Join(sessionDir, "leaderboard")
	for ext, write := range map[string]func(string) error{
		".csv":  snapshot.WriteCSV,
		".md":   snapshot.WriteMarkdown,
		".xlsx": snapshot.WriteXLSX,
	} {
		if err := write(base + ext); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to export %s: %v\n", ext, err)
		}
	}

	// Output validation is a safety check, not a requirement.
	if data, err := os.ReadFile(jsonPath); err == nil {
		if err := schemas.ValidateLeaderboard(data); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: output validation failed: %v\n", err)
		}
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintLeaderboard(ranked, stats)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Ranked %d candidates to %s\n", len(ranked), jsonPath)
	return nil
}

// loadIfPresent treats a missing file or directory as an empty score set.
func loadIfPresent(path string, load func(string) ([]types.CandidateScore, error)) ([]types.CandidateScore, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return load(path)
}
