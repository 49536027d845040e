package types

// CurrentFit is the required/preferred skill overlap component of a match.
type CurrentFit struct {
	Score            float64  `json:"score"`
	RequiredMatched  []string `json:"required_skills_match"`
	RequiredMissing  []string `json:"required_skills_missing"`
	PreferredMatched []string `json:"preferred_skills_match"`
	SkillGaps        []string `json:"skill_gaps"`
	MatchPercentage  float64  `json:"match_percentage"`
}

// GrowthPotential is the learning-trajectory component of a match.
type GrowthPotential struct {
	Score             float64           `json:"score"`
	Adaptability      float64           `json:"adaptability_score"`
	LearningVelocity  float64           `json:"learning_velocity"`
	NewSkillsLastYear int               `json:"new_skills_last_year"`
	Classification    string            `json:"growth_classification"`
	RampUpEstimates   map[string]string `json:"ramp_up_estimates,omitempty"`
}

// CollaborationFit is the work-style and communication component of a match.
type CollaborationFit struct {
	Score                float64 `json:"score"`
	WorkStyleMatch       string  `json:"work_style_match"`
	RequiredStyle        string  `json:"required_style"`
	CommunicationQuality float64 `json:"communication_quality"`
	TeamDynamics         float64 `json:"team_dynamics_score"`
	AsyncFriendly        bool    `json:"async_friendly"`
	MentorshipCapable    bool    `json:"mentorship_capable"`
}

// QualityScore is the code-quality pass-through component of a match.
type QualityScore struct {
	Score         float64 `json:"score"`
	Documentation float64 `json:"documentation_score"`
	Testing       float64 `json:"testing_score"`
	Maintenance   float64 `json:"maintenance_score"`
	Tier          string  `json:"quality_tier"`
}

// Recommendations is the templated hiring guidance produced alongside a
// match score.
type Recommendations struct {
	Strengths          []string `json:"strengths"`
	Considerations     []string `json:"considerations"`
	InterviewQuestions []string `json:"interview_questions"`
}

// MatchResult is the complete four-factor match of one analysis against a
// set of job requirements. Scores are 0-100.
type MatchResult struct {
	OverallScore    float64          `json:"overall_score"`
	Tier            string           `json:"tier"`
	CurrentFit      CurrentFit       `json:"current_fit"`
	Growth          GrowthPotential  `json:"growth_potential"`
	Collaboration   CollaborationFit `json:"collaboration_fit"`
	Quality         QualityScore     `json:"code_quality"`
	Recommendations Recommendations  `json:"recommendations"`
}

// BiasFinding is one detected bias in a job's requirements.
type BiasFinding struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// BiasReport summarizes bias detection over job requirements text.
type BiasReport struct {
	BiasesFound   bool          `json:"biases_found"`
	BiasCount     int           `json:"bias_count"`
	Biases        []BiasFinding `json:"biases"`
	FairnessScore float64       `json:"fairness_score"`
}

// GitHubReport is the persisted shape of reports/analysis_<username>.json:
// the raw analysis plus the match against the session's job requirements.
type GitHubReport struct {
	Analysis     Analysis     `json:"analysis"`
	MatchResults *MatchResult `json:"match_results,omitempty"`
	Bias         *BiasReport  `json:"bias_report,omitempty"`
}
