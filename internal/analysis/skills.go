package analysis

import (
	"sort"
	"time"

	"github.com/ibhanwork/hiresight/internal/types"
)

const (
	maxEvidence  = 3
	topSkillsCap = 10
)

type skillAccum struct {
	name       string
	category   string
	bytes      float64
	lastUsed   time.Time
	complexity float64
	repos      map[string]bool
	evidence   []string
}

func (s *skillAccum) observe(repo string, pushed time.Time) {
	if pushed.After(s.lastUsed) {
		s.lastUsed = pushed
	}
	if s.repos[repo] {
		return
	}
	s.repos[repo] = true
	if len(s.evidence) < maxEvidence {
		s.evidence = append(s.evidence, repo)
	}
}

// analyzeSkills derives a confidence-ranked skill inventory from the
// enriched repositories. Languages contribute byte volume; dependency
// manifests contribute framework and tooling skills. Confidence blends four
// sub-scores (code volume, repo spread, recency, complexity), each
// max-normalized against the candidate's own strongest skill.
func (a *Analyzer) analyzeSkills(bundle *types.ProfileBundle) types.SkillInventory {
	accums := make(map[string]*skillAccum)
	get := func(name, category string) *skillAccum {
		if acc, ok := accums[name]; ok {
			return acc
		}
		acc := &skillAccum{name: name, category: category, repos: make(map[string]bool)}
		accums[name] = acc
		return acc
	}

	for _, repo := range bundle.TopRepositories {
		var totalBytes float64
		for _, b := range repo.Languages {
			totalBytes += float64(b)
		}
		for lang, b := range repo.Languages {
			acc := get(lang, CategoryLanguage)
			acc.bytes += float64(b)
			byteShare := 0.0
			if totalBytes > 0 {
				byteShare = float64(b) / totalBytes
			}
			acc.complexity += float64(repo.SizeKB)/1000 + float64(repo.Stars)*2 + byteShare*10
			acc.observe(repo.Name, repo.PushedAt)
		}

		for _, dep := range repo.Dependencies {
			mapping, ok := dependencySkills[dep]
			if !ok {
				mapping = skillMapping{Skill: dep, Category: categorize(dep)}
			}
			acc := get(mapping.Skill, mapping.Category)
			acc.complexity += float64(repo.Stars) + float64(repo.SizeKB)/1000
			acc.observe(repo.Name, repo.PushedAt)
		}
	}

	if len(accums) == 0 {
		return types.SkillInventory{}
	}

	var maxBytes, maxRepos, maxComplexity float64
	for _, acc := range accums {
		maxBytes = max(maxBytes, acc.bytes)
		maxRepos = max(maxRepos, float64(len(acc.repos)))
		maxComplexity = max(maxComplexity, acc.complexity)
	}

	w := a.cfg.SkillWeights
	now := a.now()
	skills := make([]types.SkillScore, 0, len(accums))
	for _, acc := range accums {
		confidence := share(acc.bytes, maxBytes)*w.LinesOfCodeMax +
			share(float64(len(acc.repos)), maxRepos)*w.RepoCountMax +
			a.recencyFactor(acc.lastUsed, now)*w.RecencyMax +
			share(acc.complexity, maxComplexity)*w.ComplexityMax

		score := types.SkillScore{
			Name:       acc.name,
			Confidence: clamp(confidence, 0, 100),
			RepoCount:  len(acc.repos),
			Category:   acc.category,
			Evidence:   acc.evidence,
		}
		if !acc.lastUsed.IsZero() {
			lastUsed := acc.lastUsed
			score.LastUsed = &lastUsed
		}
		skills = append(skills, score)
	}

	sort.SliceStable(skills, func(i, j int) bool {
		if skills[i].Confidence != skills[j].Confidence {
			return skills[i].Confidence > skills[j].Confidence
		}
		return skills[i].Name < skills[j].Name
	})

	top := make([]string, 0, topSkillsCap)
	for _, s := range skills[:min(len(skills), topSkillsCap)] {
		top = append(top, s.Name)
	}

	return types.SkillInventory{
		Skills:     skills,
		TopSkills:  top,
		SkillCount: len(skills),
	}
}

// recencyFactor decays linearly from 1 at last use to 0 after the configured
// number of months.
func (a *Analyzer) recencyFactor(lastUsed, now time.Time) float64 {
	if lastUsed.IsZero() {
		return 0
	}
	months := monthsBetween(lastUsed, now)
	factor := 1 - float64(months)/float64(a.cfg.RecencyDecayMonths)
	return clamp(factor, 0, 1)
}

func share(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func monthsBetween(from, to time.Time) int {
	if from.After(to) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
