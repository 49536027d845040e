// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/ibhanwork/hiresight/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobRequirements outputs a human-readable summary of the job to rank
// against.
func (p *Printer) PrintJobRequirements(req *types.JobRequirements) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:       %s\n", req.Role))
	if req.Experience != "" {
		sb.WriteString(fmt.Sprintf("Experience: %s\n", req.Experience))
	}
	sb.WriteString("\n")

	if len(req.RequiredSkills) > 0 {
		sb.WriteString("Required Skills:\n")
		count := min(len(req.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", req.RequiredSkills[i]))
		}
		if len(req.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(req.RequiredSkills)-maxItemsToShow))
		}
	}

	if len(req.PreferredSkills) > 0 {
		sb.WriteString("\nPreferred Skills:\n")
		count := min(len(req.PreferredSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", req.PreferredSkills[i]))
		}
		if len(req.PreferredSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(req.PreferredSkills)-3))
		}
	}

	p.printBox("JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedResumes outputs the top scored resumes with matched skills.
func (p *Printer) PrintRankedResumes(resumes []types.RankedResume) {
	if len(resumes) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total resumes scored: %d\n\n", len(resumes)))

	count := min(len(resumes), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := resumes[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.Name))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  (%s)\n", r.Score, r.Note))
		if len(r.Skills) > 0 {
			skills := strings.Join(r.Skills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(resumes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more resumes", len(resumes)-maxItemsToShow))
	}

	p.printBox("RANKED RESUMES", sb.String())
}

// PrintAnalysis outputs a compact summary of a GitHub profile analysis.
func (p *Printer) PrintAnalysis(analysis *types.Analysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Username:   %s\n", analysis.Profile.Username))
	sb.WriteString(fmt.Sprintf("Repos:      %d\n", analysis.Profile.PublicRepos))
	sb.WriteString(fmt.Sprintf("Work Style: %s\n", analysis.WorkStyle.PrimaryStyle))
	sb.WriteString(fmt.Sprintf("Quality:    %.1f (%s)\n", analysis.CodeQuality.Overall, analysis.CodeQuality.Tier))
	sb.WriteString(fmt.Sprintf("Growth:     %s\n", analysis.Learning.GrowthPotential))

	if len(analysis.Skills.TopSkills) > 0 {
		sb.WriteString("\nTop Skills:\n")
		count := min(len(analysis.Skills.TopSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", analysis.Skills.TopSkills[i]))
		}
	}

	p.printBox("GITHUB PROFILE ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs the four-factor match against job requirements.
func (p *Printer) PrintMatchResult(match *types.MatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:       %.1f/100  (%s)\n\n", match.OverallScore, match.Tier))
	sb.WriteString(fmt.Sprintf("Current Fit:   %.1f\n", match.CurrentFit.Score))
	sb.WriteString(fmt.Sprintf("Growth:        %.1f\n", match.Growth.Score))
	sb.WriteString(fmt.Sprintf("Collaboration: %.1f\n", match.Collaboration.Score))
	sb.WriteString(fmt.Sprintf("Code Quality:  %.1f\n", match.Quality.Score))

	if len(match.Recommendations.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		count := min(len(match.Recommendations.Strengths), 3)
		for i := 0; i < count; i++ {
			rec := match.Recommendations.Strengths[i]
			if len(rec) > 50 {
				rec = rec[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
	}

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBiasReport outputs detected job description bias, or a clean bill.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBiasReport(report *types.BiasReport) {
	if report == nil || !report.BiasesFound {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO BIAS INDICATORS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fairness score: %.0f/100 (%d findings)\n\n", report.FairnessScore, report.BiasCount))

	for i, f := range report.Biases {
		detail := f.Description
		if len(detail) > 45 {
			detail = detail[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", f.Type, f.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", detail))
		if i < len(report.Biases)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("BIAS REPORT", sb.String())
}

// PrintLeaderboard outputs the ranked leaderboard with tiers.
func (p *Printer) PrintLeaderboard(candidates []types.RankedCandidate, stats types.LeaderboardStats) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates: %d   Average: %.3f   Median: %.3f\n\n",
		stats.TotalCandidates, stats.AverageScore, stats.MedianScore))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := candidates[i]
		sb.WriteString(fmt.Sprintf("%s #%d  %s\n", c.Emoji, c.Rank, c.Name))
		sb.WriteString(fmt.Sprintf("    %.3f  (%s)\n", c.CombinedScore, c.Tier))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(candidates)-maxItemsToShow))
	}

	p.printBox("LEADERBOARD", sb.String())
}
