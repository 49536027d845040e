package leaderboard

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ibhanwork/hiresight/internal/types"
)

// Snapshot is a generated leaderboard with its context, as persisted to
// leaderboard.json and exported to the other formats.
type Snapshot struct {
	SessionID   string                  `json:"session_id,omitempty"`
	JobTitle    string                  `json:"job_title,omitempty"`
	GeneratedAt time.Time               `json:"generated_at"`
	Candidates  []types.RankedCandidate `json:"candidates"`
	Stats       types.LeaderboardStats  `json:"statistics"`
}

// WriteJSON persists the snapshot as indented JSON.
func (s *Snapshot) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write leaderboard JSON: %w", err)
	}
	return nil
}

var exportColumns = []string{
	"Rank", "Name", "Combined Score", "LinkedIn Score", "GitHub Score", "Tier", "GitHub Username",
}

// WriteCSV exports the ranked candidates as CSV.
func (s *Snapshot) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create leaderboard CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(exportColumns); err != nil {
		return err
	}
	for _, c := range s.Candidates {
		row := []string{
			strconv.Itoa(c.Rank),
			c.Name,
			formatScore(c.CombinedScore),
			formatScore(c.LinkedInScore),
			formatScore(c.GitHubScore),
			c.Tier,
			c.GitHubUsername,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteMarkdown exports the leaderboard as a Markdown report.
func (s *Snapshot) WriteMarkdown(path string) error {
	var b strings.Builder
	title := s.JobTitle
	if title == "" {
		title = "Candidate Leaderboard"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Candidates: %d | Average: %s | Median: %s\n\n",
		s.Stats.TotalCandidates, formatScore(s.Stats.AverageScore), formatScore(s.Stats.MedianScore))

	b.WriteString("| Rank | Candidate | Score | Tier |\n")
	b.WriteString("|------|-----------|-------|------|\n")
	for _, c := range s.Candidates {
		fmt.Fprintf(&b, "| %d | %s | %s | %s %s |\n",
			c.Rank, c.Name, formatScore(c.CombinedScore), c.Emoji, c.Tier)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write leaderboard Markdown: %w", err)
	}
	return nil
}

// WriteXLSX exports the leaderboard as a spreadsheet with a summary header.
func (s *Snapshot) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Leaderboard"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for col, header := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, c := range s.Candidates {
		values := []interface{}{
			c.Rank, c.Name, c.CombinedScore, c.LinkedInScore, c.GitHubScore, c.Tier, c.GitHubUsername,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	statsRow := len(s.Candidates) + 3
	summary := fmt.Sprintf("Candidates: %d, Average: %s, Weights: LinkedIn %.2f / GitHub %.2f",
		s.Stats.TotalCandidates, formatScore(s.Stats.AverageScore),
		s.Stats.LinkedInWeight, s.Stats.GitHubWeight)
	cell, err := excelize.CoordinatesToCellName(1, statsRow)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, summary); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write leaderboard XLSX: %w", err)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
