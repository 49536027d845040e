package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/db"
	"github.com/ibhanwork/hiresight/internal/llm"
	"github.com/ibhanwork/hiresight/internal/types"
)

// Posting is the processed text of a job posting.
type Posting struct {
	URL       string
	Platform  Platform
	Text      string
	FromCache bool
}

// PostingFetcher retrieves job postings, with platform-aware extraction, an
// optional database cache and a headless-browser fallback for SPA boards.
type PostingFetcher struct {
	opts       *Options
	db         *db.DB // nil disables caching
	cacheTTL   time.Duration
	useBrowser bool
	log        *zap.Logger
}

// PostingFetcherConfig configures a PostingFetcher.
type PostingFetcherConfig struct {
	Options    *Options
	DB         *db.DB
	CacheTTL   time.Duration
	UseBrowser bool
	Log        *zap.Logger
}

// NewPostingFetcher creates a fetcher. All config fields are optional.
func NewPostingFetcher(cfg PostingFetcherConfig) *PostingFetcher {
	if cfg.Options == nil {
		cfg.Options = DefaultOptions()
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = db.DefaultPageCacheTTL
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	return &PostingFetcher{
		opts:       cfg.Options,
		db:         cfg.DB,
		cacheTTL:   cfg.CacheTTL,
		useBrowser: cfg.UseBrowser,
		log:        cfg.Log,
	}
}

// FetchPosting retrieves a posting URL and reduces it to plain text.
func (f *PostingFetcher) FetchPosting(ctx context.Context, urlStr string) (*Posting, error) {
	platform := DetectPlatform(urlStr)

	if f.db != nil {
		cached, err := f.db.GetFreshPage(ctx, urlStr, f.cacheTTL)
		if err != nil {
			f.log.Warn("page cache lookup failed", zap.String("url", urlStr), zap.Error(err))
		} else if cached != nil {
			f.log.Debug("posting served from cache", zap.String("url", urlStr))
			return &Posting{
				URL:       cached.URL,
				Platform:  Platform(cached.Platform),
				Text:      cached.Text,
				FromCache: true,
			}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.opts)
	if err != nil {
		return nil, err
	}

	text, err := extractPostingText(result.HTML, platform)
	if err != nil {
		return nil, err
	}

	if f.useBrowser && ShouldUseBrowser(text) {
		f.log.Info("posting text too short, retrying with browser",
			zap.String("url", urlStr),
			zap.Int("length", len(text)))
		html, berr := WithBrowser(ctx, urlStr, f.opts.Timeout, f.log)
		if berr != nil {
			f.log.Warn("browser fallback failed", zap.String("url", urlStr), zap.Error(berr))
		} else if btext, terr := extractPostingText(html, platform); terr == nil && len(btext) > len(text) {
			text = btext
		}
	}

	posting := &Posting{
		URL:      urlStr,
		Platform: platform,
		Text:     text,
	}

	if f.db != nil {
		err := f.db.SavePage(ctx, &db.FetchedPage{
			URL:        urlStr,
			Platform:   string(platform),
			Text:       text,
			HTTPStatus: result.StatusCode,
		})
		if err != nil {
			f.log.Warn("page cache write failed", zap.String("url", urlStr), zap.Error(err))
		}
	}

	return posting, nil
}

func extractPostingText(html string, platform Platform) (string, error) {
	return ExtractMainText(html,
		PlatformContentSelectors(platform),
		PlatformNoiseSelectors(platform)...)
}

// ExtractRequirements turns posting text into structured hiring requirements
// via the LLM. The raw text is preserved on the Description field so the
// bias audit can scan wording the structured fields drop.
func ExtractRequirements(ctx context.Context, client llm.Client, posting *Posting) (*types.JobRequirements, error) {
	prompt := llm.BuildExtractionPrompt(llm.JobRequirementsSchema(), posting.Text)
	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to extract requirements: %w", err)
	}

	cleaned := llm.ExtractJSONObject(llm.CleanJSONBlock(raw))
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object found in LLM response")
	}

	var req types.JobRequirements
	if err := json.Unmarshal([]byte(cleaned), &req); err != nil {
		return nil, fmt.Errorf("failed to parse requirements JSON: %w", err)
	}
	req.Description = posting.Text

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("extracted requirements failed validation: %w", err)
	}
	return &req, nil
}
