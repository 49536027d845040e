package analysis

import (
	"strings"
	"time"

	"github.com/ibhanwork/hiresight/internal/types"
)

// Quality tier labels and their thresholds on the aggregate overall score.
const (
	TierExcellent        = "Excellent"
	TierGood             = "Good"
	TierFair             = "Fair"
	TierNeedsImprovement = "Needs Improvement"
)

// analyzeQuality scores documentation, testing and maintenance hygiene for
// each non-fork enriched repository, then averages the components.
func (a *Analyzer) analyzeQuality(bundle *types.ProfileBundle) types.CodeQuality {
	now := a.now()
	var quality types.CodeQuality
	for _, repo := range bundle.TopRepositories {
		if repo.Fork {
			continue
		}
		rq := types.RepoQuality{
			RepoName:      repo.Name,
			Documentation: documentationScore(repo),
			Testing:       testingScore(repo),
			Maintenance:   maintenanceScore(repo, now),
		}
		rq.Overall = rq.Documentation*a.cfg.QualityWeights.Documentation +
			rq.Testing*a.cfg.QualityWeights.Testing +
			rq.Maintenance*a.cfg.QualityWeights.Maintenance
		quality.Repositories = append(quality.Repositories, rq)
	}

	n := float64(len(quality.Repositories))
	if n == 0 {
		quality.Tier = TierNeedsImprovement
		return quality
	}
	for _, rq := range quality.Repositories {
		quality.Documentation += rq.Documentation / n
		quality.Testing += rq.Testing / n
		quality.Maintenance += rq.Maintenance / n
		quality.Overall += rq.Overall / n
	}
	quality.Tier = qualityTier(quality.Overall)
	return quality
}

// documentationScore: a hosted repository serves a README by convention, so
// the baseline is granted; description, topics and license add the rest.
func documentationScore(repo types.Repository) float64 {
	score := 25.0
	if strings.TrimSpace(repo.Description) != "" {
		score += 25
	}
	score += min(25, float64(len(repo.Topics))*5)
	if repo.License != "" {
		score += 25
	}
	return score
}

func testingScore(repo types.Repository) float64 {
	score := 20.0
	if hasTestingFramework(repo.Dependencies) {
		score += 40
	}
	if len(repo.CICDTools) > 0 {
		score += 40
	}
	return score
}

func hasTestingFramework(deps []string) bool {
	for _, dep := range deps {
		if testingFrameworks[dep] {
			return true
		}
	}
	return false
}

func maintenanceScore(repo types.Repository, now time.Time) float64 {
	var score float64
	switch pushed := monthsBetween(repo.PushedAt, now); {
	case repo.PushedAt.IsZero():
	case pushed < 3:
		score += 40
	case pushed < 6:
		score += 30
	case pushed < 12:
		score += 20
	}
	switch age := monthsBetween(repo.CreatedAt, now); {
	case repo.CreatedAt.IsZero():
	case age > 12:
		score += 30
	case age > 6:
		score += 20
	}
	if !repo.Fork {
		score += 30
	}
	return score
}

func qualityTier(overall float64) string {
	switch {
	case overall >= 75:
		return TierExcellent
	case overall >= 60:
		return TierGood
	case overall >= 40:
		return TierFair
	default:
		return TierNeedsImprovement
	}
}
