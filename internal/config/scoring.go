package config

import "fmt"

// ScoringConfig gathers every weight, threshold and keyword list used by the
// scoring pipeline. Components receive the relevant sub-struct through their
// constructors, so tests can run with alternate weight sets and there is no
// ambient mutable state.
type ScoringConfig struct {
	// Skill confidence sub-score maxima (sum to 100).
	SkillWeights SkillWeights `json:"skill_weights"`

	// Per-repository quality component weights. These deliberately sum to
	// 0.70, preserving the original under-weighted formula; see DESIGN.md.
	QualityWeights QualityWeights `json:"quality_weights"`

	// Four-factor matching weights (sum to 1.0).
	MatchingWeights MatchingWeights `json:"matching_weights"`

	// Work style gating thresholds.
	WorkStyle WorkStyleThresholds `json:"work_style_thresholds"`

	// Leaderboard fusion.
	LinkedInWeight float64 `json:"linkedin_weight"`
	GitHubWeight   float64 `json:"github_weight"`
	MinScore       float64 `json:"min_score_threshold"`

	// Months over which skill recency decays linearly to zero.
	RecencyDecayMonths int `json:"recency_decay_months"`

	// Bias detection keyword lists.
	BiasKeywords BiasKeywords `json:"bias_keywords"`

	// Required-skill count above which a job posting is flagged.
	MaxRequiredSkills int `json:"max_required_skills"`
}

// SkillWeights are the maxima of the four skill-confidence sub-scores.
type SkillWeights struct {
	LinesOfCodeMax float64 `json:"lines_of_code_max"`
	RepoCountMax   float64 `json:"repo_count_max"`
	RecencyMax     float64 `json:"recency_max"`
	ComplexityMax  float64 `json:"complexity_max"`
}

// QualityWeights weight the per-repository quality components.
type QualityWeights struct {
	Documentation float64 `json:"documentation"`
	Testing       float64 `json:"testing"`
	Maintenance   float64 `json:"maintenance"`
}

// MatchingWeights weight the four match factors.
type MatchingWeights struct {
	CurrentFit       float64 `json:"current_fit"`
	GrowthPotential  float64 `json:"growth_potential"`
	CollaborationFit float64 `json:"collaboration_fit"`
	CodeQuality      float64 `json:"code_quality"`
}

// WorkStyleThresholds gate the work style classifications.
type WorkStyleThresholds struct {
	SoloMergeRate          float64 `json:"solo_developer_threshold"`  // PR merge rate above which Solo Developer applies
	HighReviewRatio        float64 `json:"high_review_ratio"`         // review-to-PR ratio for Collaborative
	MentorshipReviewLength float64 `json:"mentorship_comment_length"` // avg review chars for Mentorship
}

// BiasKeywords are the fixed keyword lists scanned for in job requirements.
type BiasKeywords struct {
	Education  []string `json:"education"`
	Location   []string `json:"location"`
	Experience []string `json:"experience"`
	Keyword    []string `json:"keyword"`
}

// DefaultScoring returns the standard scoring configuration.
func DefaultScoring() *ScoringConfig {
	return &ScoringConfig{
		SkillWeights: SkillWeights{
			LinesOfCodeMax: 20,
			RepoCountMax:   30,
			RecencyMax:     30,
			ComplexityMax:  20,
		},
		QualityWeights: QualityWeights{
			Documentation: 0.30,
			Testing:       0.25,
			Maintenance:   0.15,
		},
		MatchingWeights: MatchingWeights{
			CurrentFit:       0.40,
			GrowthPotential:  0.30,
			CollaborationFit: 0.20,
			CodeQuality:      0.10,
		},
		WorkStyle: WorkStyleThresholds{
			SoloMergeRate:          0.80,
			HighReviewRatio:        0.60,
			MentorshipReviewLength: 100,
		},
		LinkedInWeight:     0.5,
		GitHubWeight:       0.5,
		MinScore:           0.0,
		RecencyDecayMonths: 12,
		BiasKeywords: BiasKeywords{
			Education:  []string{"university", "degree", "phd", "masters", "college", "ivy league"},
			Location:   []string{"bay area", "silicon valley", "san francisco", "new york", "us only", "usa"},
			Experience: []string{"years of experience", "senior", "5+ years", "10+ years"},
			Keyword:    []string{"ninja", "rockstar", "guru", "wizard"},
		},
		MaxRequiredSkills: 8,
	}
}

// Validate checks the scoring configuration for values that would corrupt
// downstream score ranges.
func (s *ScoringConfig) Validate() error {
	sum := s.SkillWeights.LinesOfCodeMax + s.SkillWeights.RepoCountMax +
		s.SkillWeights.RecencyMax + s.SkillWeights.ComplexityMax
	if sum <= 0 {
		return fmt.Errorf("config error: skill weights must sum positively")
	}
	mw := s.MatchingWeights
	if mw.CurrentFit+mw.GrowthPotential+mw.CollaborationFit+mw.CodeQuality <= 0 {
		return fmt.Errorf("config error: matching weights must sum positively")
	}
	if s.LinkedInWeight < 0 || s.GitHubWeight < 0 {
		return fmt.Errorf("config error: fusion weights must be non-negative")
	}
	if s.LinkedInWeight+s.GitHubWeight == 0 {
		return fmt.Errorf("config error: fusion weights must sum positively")
	}
	if s.MinScore < 0 || s.MinScore > 1 {
		return fmt.Errorf("config error: 'min_score_threshold' must be in [0, 1]")
	}
	if s.RecencyDecayMonths <= 0 {
		return fmt.Errorf("config error: 'recency_decay_months' must be positive")
	}
	return nil
}
