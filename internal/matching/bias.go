package matching

import (
	"fmt"
	"strings"

	"github.com/ibhanwork/hiresight/internal/types"
)

// Bias finding types.
const (
	BiasEducation    = "education"
	BiasLocation     = "location"
	BiasExperience   = "experience"
	BiasKeyword      = "exclusionary_keyword"
	BiasRequirements = "requirements_overload"
)

const fairnessPenaltyPerBias = 15

// DetectBias scans job requirements for exclusionary language and
// structural issues. It audits the posting, not the candidate.
func (m *Matcher) DetectBias(req *types.JobRequirements) *types.BiasReport {
	text := strings.ToLower(strings.Join([]string{
		req.Role,
		strings.Join(req.RequiredSkills, " "),
		strings.Join(req.PreferredSkills, " "),
		req.Experience,
		req.Additional,
		req.Description,
	}, " "))

	report := &types.BiasReport{Biases: []types.BiasFinding{}}
	kw := m.cfg.BiasKeywords

	if hits := keywordHits(text, kw.Education); len(hits) > 0 {
		report.Biases = append(report.Biases, types.BiasFinding{
			Type:           BiasEducation,
			Severity:       "medium",
			Description:    fmt.Sprintf("Education-based filtering language: %s", strings.Join(hits, ", ")),
			Recommendation: "Evaluate demonstrated skills instead of credentials",
		})
	}
	if hits := keywordHits(text, kw.Location); len(hits) > 0 {
		report.Biases = append(report.Biases, types.BiasFinding{
			Type:           BiasLocation,
			Severity:       "high",
			Description:    fmt.Sprintf("Location-restrictive language: %s", strings.Join(hits, ", ")),
			Recommendation: "State timezone or legal constraints explicitly rather than regions",
		})
	}
	// A single experience phrase is common boilerplate; repetition signals a
	// seniority filter.
	if hits := keywordHits(text, kw.Experience); len(hits) > 1 {
		report.Biases = append(report.Biases, types.BiasFinding{
			Type:           BiasExperience,
			Severity:       "medium",
			Description:    fmt.Sprintf("Heavy emphasis on tenure: %s", strings.Join(hits, ", ")),
			Recommendation: "Describe the problems to be solved instead of years served",
		})
	}
	if hits := keywordHits(text, kw.Keyword); len(hits) > 0 {
		report.Biases = append(report.Biases, types.BiasFinding{
			Type:           BiasKeyword,
			Severity:       "low",
			Description:    fmt.Sprintf("Exclusionary jargon: %s", strings.Join(hits, ", ")),
			Recommendation: "Use neutral role descriptions",
		})
	}
	if len(req.RequiredSkills) > m.cfg.MaxRequiredSkills {
		report.Biases = append(report.Biases, types.BiasFinding{
			Type:     BiasRequirements,
			Severity: "medium",
			Description: fmt.Sprintf("%d required skills listed; long lists deter qualified applicants",
				len(req.RequiredSkills)),
			Recommendation: fmt.Sprintf("Trim required skills to %d or fewer, move the rest to preferred",
				m.cfg.MaxRequiredSkills),
		})
	}

	report.BiasCount = len(report.Biases)
	report.BiasesFound = report.BiasCount > 0
	report.FairnessScore = float64(max(0, 100-report.BiasCount*fairnessPenaltyPerBias))
	return report
}

func keywordHits(text string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}
