// Package analysis turns a fetched GitHub profile bundle into a structured
// candidate analysis: skills, contribution patterns, work style, code
// quality and learning trajectory.
package analysis

import (
	"time"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/config"
	"github.com/ibhanwork/hiresight/internal/types"
)

// Analyzer runs the full analysis pipeline over a profile bundle. All
// analyzers are pure over their inputs; configuration supplies the weights
// and thresholds.
type Analyzer struct {
	cfg *config.ScoringConfig
	log *zap.Logger
	now func() time.Time
}

// New creates an analyzer. A nil scoring config uses the defaults.
func New(cfg *config.ScoringConfig, log *zap.Logger) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultScoring()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{cfg: cfg, log: log, now: time.Now}
}

// Analyze produces the complete analysis for a fetched profile.
func (a *Analyzer) Analyze(bundle *types.ProfileBundle) *types.Analysis {
	skills := a.analyzeSkills(bundle)
	contributions := a.analyzeContributions(bundle)

	analysis := &types.Analysis{
		Profile:       *bundle.Profile,
		Skills:        skills,
		Contributions: contributions,
		WorkStyle:     a.analyzeWorkStyle(contributions),
		CodeQuality:   a.analyzeQuality(bundle),
		Learning:      a.analyzeLearning(bundle, skills),
		AnalyzedAt:    a.now().UTC(),
	}

	a.log.Info("profile analyzed",
		zap.String("username", bundle.Profile.Username),
		zap.Int("skills", skills.SkillCount),
		zap.String("primary_style", analysis.WorkStyle.PrimaryStyle),
		zap.String("quality_tier", analysis.CodeQuality.Tier))

	return analysis
}
