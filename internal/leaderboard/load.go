package leaderboard

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ibhanwork/hiresight/internal/types"
)

// LoadLinkedInCSV reads per-candidate resume scores from a results CSV.
// The header must contain a name column and a score column; a
// github_username column is carried through when present. Scores are on the
// 0-100 scale and are normalized to [0, 1].
func LoadLinkedInCSV(path string) ([]types.CandidateScore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse results CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	nameCol, scoreCol, userCol := -1, -1, -1
	for i, col := range records[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name", "candidate", "candidate_name":
			nameCol = i
		case "score", "linkedin_score", "resume_score":
			scoreCol = i
		case "github_username", "github":
			userCol = i
		}
	}
	if nameCol < 0 || scoreCol < 0 {
		return nil, fmt.Errorf("results CSV is missing name or score column")
	}

	var scores []types.CandidateScore
	for _, row := range records[1:] {
		if nameCol >= len(row) || scoreCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		if name == "" {
			continue
		}
		raw, err := strconv.ParseFloat(strings.TrimSpace(row[scoreCol]), 64)
		if err != nil {
			continue
		}
		score := types.CandidateScore{
			Name:             name,
			LinkedInScore:    normalizeScore(raw),
			LinkedInRawScore: raw,
		}
		if userCol >= 0 && userCol < len(row) {
			score.GitHubUsername = strings.TrimSpace(row[userCol])
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// LoadGitHubReports reads every analysis report in a session's reports
// directory and extracts the candidate's match score.
func LoadGitHubReports(dir string) ([]types.CandidateScore, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "analysis_*.json"))
	if err != nil {
		return nil, err
	}

	var scores []types.CandidateScore
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read report %s: %w", filepath.Base(path), err)
		}
		var report types.GitHubReport
		if err := json.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("failed to parse report %s: %w", filepath.Base(path), err)
		}
		if report.MatchResults == nil {
			continue
		}

		name := report.Analysis.Profile.Name
		if name == "" {
			name = report.Analysis.Profile.Username
		}
		scores = append(scores, types.CandidateScore{
			Name:           name,
			GitHubUsername: report.Analysis.Profile.Username,
			GitHubScore:    normalizeScore(report.MatchResults.OverallScore),
			GitHubRawScore: report.MatchResults.OverallScore,
		})
	}
	return scores, nil
}

// MergeScores joins the two score sources into one record per candidate.
// Records join on normalized name first, then on fuzzy similarity above the
// threshold; unmatched records from either source survive on their own.
func MergeScores(linkedin, github []types.CandidateScore) []types.CandidateScore {
	merged := make([]types.CandidateScore, len(linkedin))
	copy(merged, linkedin)
	claimed := make([]bool, len(merged))

	for _, gh := range github {
		idx := -1
		for i := range merged {
			if claimed[i] {
				continue
			}
			if NormalizeName(merged[i].Name) == NormalizeName(gh.Name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			best := 0.0
			for i := range merged {
				if claimed[i] {
					continue
				}
				if sim := NameSimilarity(merged[i].Name, gh.Name); sim >= fuzzyMatchThreshold && sim > best {
					best = sim
					idx = i
				}
			}
		}

		if idx < 0 {
			merged = append(merged, gh)
			claimed = append(claimed, true)
			continue
		}
		claimed[idx] = true
		merged[idx].GitHubScore = gh.GitHubScore
		merged[idx].GitHubRawScore = gh.GitHubRawScore
		if merged[idx].GitHubUsername == "" {
			merged[idx].GitHubUsername = gh.GitHubUsername
		}
	}
	return merged
}

// normalizeScore maps a 0-100 score onto [0, 1] with clamping. Both inputs
// use the percent scale (results.csv resume scores and analysis report
// overall scores), so the division is unconditional: a "score below 1 is
// already normalized" heuristic would inflate sub-1% matches 100x.
func normalizeScore(raw float64) float64 {
	s := raw / 100
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
