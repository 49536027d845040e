package analysis

import (
	"sort"

	"github.com/ibhanwork/hiresight/internal/types"
)

// Growth potential labels.
const (
	GrowthHigh       = "High"
	GrowthModerate   = "Moderate"
	GrowthDeveloping = "Developing"
)

// Complexity trend labels.
const (
	TrendIncreasing   = "increasing"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient_data"
)

const (
	recentSkillMonths = 6
	newSkillMonths    = 12
)

// analyzeLearning estimates how actively the candidate acquires new skills.
// Velocity is skills per month of account age; adaptability blends breadth,
// category diversification and recent activity.
func (a *Analyzer) analyzeLearning(bundle *types.ProfileBundle, skills types.SkillInventory) types.LearningTrajectory {
	now := a.now()
	traj := types.LearningTrajectory{TotalSkills: skills.SkillCount}

	categories := make(map[string]bool)
	for _, s := range skills.Skills {
		categories[s.Category] = true
		if s.LastUsed == nil {
			continue
		}
		months := monthsBetween(*s.LastUsed, now)
		if months <= recentSkillMonths {
			traj.RecentSkills = append(traj.RecentSkills, s.Name)
		}
		if months <= newSkillMonths {
			traj.NewSkillsLastYear++
		}
	}

	for c := range categories {
		traj.Categories = append(traj.Categories, c)
	}
	sort.Strings(traj.Categories)

	traj.DiversificationScore = min(100, float64(len(traj.Categories))*20)

	ageMonths := bundle.Profile.AccountAgeMonths
	if ageMonths > 0 {
		traj.LearningVelocity = float64(skills.SkillCount) / float64(ageMonths)
	}

	breadth := min(1, float64(skills.SkillCount)/20) * 30
	recency := min(1, float64(len(traj.RecentSkills))/10) * 30
	traj.AdaptabilityScore = min(100, breadth+traj.DiversificationScore*0.4+recency)

	switch {
	case traj.AdaptabilityScore >= 75:
		traj.GrowthPotential = GrowthHigh
	case traj.AdaptabilityScore >= 50:
		traj.GrowthPotential = GrowthModerate
	default:
		traj.GrowthPotential = GrowthDeveloping
	}

	traj.ComplexityTrend = complexityTrend(bundle.TopRepositories)
	return traj
}

// complexityTrend compares the size of the candidate's newer repositories
// against the older half as a rough proxy for project ambition over time.
func complexityTrend(repos []types.Repository) string {
	dated := make([]types.Repository, 0, len(repos))
	for _, r := range repos {
		if !r.CreatedAt.IsZero() {
			dated = append(dated, r)
		}
	}
	if len(dated) < 2 {
		return TrendInsufficient
	}

	sort.Slice(dated, func(i, j int) bool {
		return dated[i].CreatedAt.Before(dated[j].CreatedAt)
	})

	half := len(dated) / 2
	olderMean := meanSize(dated[:half])
	newerMean := meanSize(dated[half:])
	if olderMean > 0 && newerMean > olderMean*1.2 {
		return TrendIncreasing
	}
	if olderMean == 0 && newerMean > 0 {
		return TrendIncreasing
	}
	return TrendStable
}

func meanSize(repos []types.Repository) float64 {
	if len(repos) == 0 {
		return 0
	}
	var sum float64
	for _, r := range repos {
		sum += float64(r.SizeKB)
	}
	return sum / float64(len(repos))
}
