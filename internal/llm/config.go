// Package llm wraps the Gemini API behind a small provider-neutral client.
// HireSight uses it for two jobs: extracting structured requirements from
// fetched job postings and generating interview questions from resume text.
package llm

// ModelTier selects how much model capability a call needs.
type ModelTier string

const (
	// TierLite handles cheap classification, such as deciding whether a
	// fetched page is a job posting at all.
	TierLite ModelTier = "lite"
	// TierStandard handles requirement extraction and interview question
	// generation. This is the default tier for all current callers.
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for long-form candidate narratives.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies the backing LLM provider.
type Provider string

// ProviderGemini is the only provider currently implemented.
const ProviderGemini Provider = "gemini"

// Config maps tiers to concrete model names for a provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name. Unknown tiers fall back to
// standard, then lite, so a misconfigured tier degrades instead of failing.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden. The
// receiver is not modified.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	clone := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		clone.Models[k] = v
	}
	clone.Models[tier] = model
	return clone
}
