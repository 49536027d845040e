package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/config"
)

// loadConfig resolves the effective configuration: config file (if given),
// then environment, then built-in defaults.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.FromEnv()

	merged := cfg.MergeWithDefaults(config.Defaults())
	merged.Verbose = merged.Verbose || verbose
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// newLogger builds the zap logger for CLI commands.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		return log, nil
	}
	log, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}
