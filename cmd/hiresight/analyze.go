package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ibhanwork/hiresight/internal/analysis"
	"github.com/ibhanwork/hiresight/internal/github"
	"github.com/ibhanwork/hiresight/internal/matching"
	"github.com/ibhanwork/hiresight/internal/observability"
	"github.com/ibhanwork/hiresight/internal/schemas"
	"github.com/ibhanwork/hiresight/internal/session"
	"github.com/ibhanwork/hiresight/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <username-or-profile-url>",
	Short: "Analyze a GitHub profile",
	Long:  "Fetches a candidate's public GitHub activity, analyzes skills, contribution patterns, work style, code quality and learning trajectory, and writes the report as analysis_<username>.json. With --job, also matches the profile against job requirements and checks them for bias.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var (
	analyzeJobFile string
	analyzeOutput  string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Path to JobRequirements JSON file for matching")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Output path (default analysis_<username>.json)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cliContext(cmd)

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var req *types.JobRequirements
	if analyzeJobFile != "" {
		data, err := os.ReadFile(analyzeJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job file %s: %w", analyzeJobFile, err)
		}
		req = &types.JobRequirements{}
		if err := json.Unmarshal(data, req); err != nil {
			return fmt.Errorf("failed to parse job JSON: %w", err)
		}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("invalid job requirements: %w", err)
		}
	}

	client := github.NewClient(ctx, cfg.GitHubToken, log)
	bundle, err := client.FetchProfile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	result := analysis.New(cfg.Scoring, log).Analyze(bundle)
	report := &types.GitHubReport{Analysis: *result}
	if req != nil {
		matcher := matching.New(cfg.Scoring)
		report.MatchResults = matcher.Match(result, req)
		report.Bias = matcher.DetectBias(req)
	}

	output := analyzeOutput
	if output == "" {
		output = fmt.Sprintf("analysis_%s.json", session.SanitizeID(result.Profile.Username))
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if dir := filepath.Dir(output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", output, err)
	}

	// Output validation is a safety check, not a requirement.
	if err := schemas.ValidateAnalysisReport(data); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: output validation failed: %v\n", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintAnalysis(result)
		if report.MatchResults != nil {
			printer.PrintMatchResult(report.MatchResults)
		}
		if report.Bias != nil {
			printer.PrintBiasReport(report.Bias)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Wrote analysis for %s to %s\n", result.Profile.Username, output)
	return nil
}
