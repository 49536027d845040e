package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ibhanwork/hiresight/internal/config"
	"github.com/ibhanwork/hiresight/internal/db"
	"github.com/ibhanwork/hiresight/internal/extract"
	"github.com/ibhanwork/hiresight/internal/fetch"
	"github.com/ibhanwork/hiresight/internal/llm"
	"github.com/ibhanwork/hiresight/internal/observability"
	"github.com/ibhanwork/hiresight/internal/similarity"
	"github.com/ibhanwork/hiresight/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a directory of resumes against a job",
	Long:  "Scores every supported resume in a directory against a job description (local JSON file or posting URL) and writes the ranking as results.csv.",
	RunE:  runRank,
}

var (
	rankJobFile    string
	rankJobURL     string
	rankResumesDir string
	rankOutput     string
)

func init() {
	rankCmd.Flags().StringVarP(&rankJobFile, "job", "j", "", "Path to JobRequirements JSON file")
	rankCmd.Flags().StringVarP(&rankJobURL, "job-url", "u", "", "URL of a job posting to fetch and extract")
	rankCmd.Flags().StringVarP(&rankResumesDir, "resumes", "r", "", "Directory of resume files (required)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "results.csv", "Path to output results CSV")

	if err := rankCmd.MarkFlagRequired("resumes"); err != nil {
		panic(fmt.Sprintf("failed to mark resumes flag as required: %v", err))
	}
	rankCmd.MarkFlagsOneRequired("job", "job-url")
	rankCmd.MarkFlagsMutuallyExclusive("job", "job-url")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cliContext(cmd)

	req, err := resolveJob(ctx, cfg)
	if err != nil {
		return err
	}

	candidates, err := rankDirectory(cfg, req, rankResumesDir)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no supported resume files found in %s", rankResumesDir)
	}

	if err := writeRankCSV(rankOutput, candidates); err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintJobRequirements(req)
		printer.PrintRankedResumes(candidates)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Ranked %d resumes to %s\n", len(candidates), rankOutput)
	return nil
}

// resolveJob loads the requirements from the local file or extracts them
// from a fetched posting.
func resolveJob(ctx context.Context, cfg *config.Config) (*types.JobRequirements, error) {
	if rankJobFile != "" {
		data, err := os.ReadFile(rankJobFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job file %s: %w", rankJobFile, err)
		}
		var req types.JobRequirements
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("failed to parse job JSON: %w", err)
		}
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("invalid job requirements: %w", err)
		}
		return &req, nil
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required to extract requirements from a posting URL")
	}

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = log.Sync() }()

	var store *db.DB
	if cfg.DatabaseURL != "" {
		store, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("posting cache unavailable, fetching without it")
		} else {
			defer store.Close()
			if err := store.EnsureSchema(ctx); err != nil {
				return nil, err
			}
		}
	}

	fetcher := fetch.NewPostingFetcher(fetch.PostingFetcherConfig{
		DB:         store,
		UseBrowser: cfg.UseBrowser,
		Log:        log,
	})
	posting, err := fetcher.FetchPosting(ctx, rankJobURL)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	return fetch.ExtractRequirements(ctx, client, posting)
}

// rankDirectory scores every supported resume file in dir.
func rankDirectory(cfg *config.Config, req *types.JobRequirements, dir string) ([]types.RankedResume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read resumes directory: %w", err)
	}

	scorer := similarity.New(similarity.Options{})
	jobText := req.Text()

	var candidates []types.RankedResume
	for _, entry := range entries {
		if entry.IsDir() || !extract.SupportedResume(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		text, err := extract.File(path)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", entry.Name(), err)
			continue
		}

		score := math.Round(scorer.Score(jobText, text)*10000) / 100

		var found []string
		lower := strings.ToLower(text)
		for _, skill := range req.RequiredSkills {
			if strings.Contains(lower, strings.ToLower(skill)) {
				found = append(found, skill)
			}
		}

		candidates = append(candidates, types.RankedResume{
			Name:       extract.CandidateName(text, entry.Name()),
			Score:      score,
			MatchScore: score,
			Skills:     found,
			Note:       fmt.Sprintf("Matched %d/%d required skills", len(found), len(req.RequiredSkills)),
			Summary:    fmt.Sprintf("Resume score: %g/100", score),
			Filename:   entry.Name(),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates, nil
}

func writeRankCSV(path string, candidates []types.RankedResume) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"candidate_name", "resume_score", "github_username"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, c := range candidates {
		if err := cw.Write([]string{c.Name, fmt.Sprintf("%.2f", c.Score), ""}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
