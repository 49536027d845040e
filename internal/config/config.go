// Package config provides configuration loading and validation for the
// HireSight server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Server
	Port      int    `json:"port,omitempty"`
	UploadDir string `json:"upload_dir,omitempty"` // Base directory for session storage

	// External services
	DatabaseURL  string `json:"database_url,omitempty"`  // Optional PostgreSQL session index
	GitHubToken  string `json:"github_token,omitempty"`  // Personal access token (5000 req/h vs 60 unauthenticated)
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	APIKey       string `json:"api_key,omitempty"` // Shared key exchanged for bearer tokens

	// SMTP
	SMTPHost string `json:"smtp_host,omitempty"`
	SMTPPort int    `json:"smtp_port,omitempty"`
	SMTPUser string `json:"smtp_user,omitempty"`
	SMTPPass string `json:"smtp_pass,omitempty"`
	SMTPFrom string `json:"smtp_from,omitempty"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Headless browser for SPA job postings
	Verbose    bool `json:"verbose,omitempty"`

	// Limits
	MaxUploadBytes  int64 `json:"max_upload_bytes,omitempty"`
	MaxZipEntries   int   `json:"max_zip_entries,omitempty"`
	MaxZipFileBytes int64 `json:"max_zip_file_bytes,omitempty"`

	// Scoring
	Scoring *ScoringConfig `json:"scoring,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills unset fields from environment variables.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.GitHubToken == "" {
		c.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("HIRESIGHT_API_KEY")
	}
	if c.SMTPHost == "" {
		c.SMTPHost = os.Getenv("SMTP_HOST")
	}
	if c.SMTPPort == 0 {
		if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
			c.SMTPPort = p
		}
	}
	if c.SMTPUser == "" {
		c.SMTPUser = os.Getenv("SMTP_USER")
	}
	if c.SMTPPass == "" {
		c.SMTPPass = os.Getenv("SMTP_PASS")
	}
	if c.SMTPFrom == "" {
		c.SMTPFrom = os.Getenv("SMTP_FROM")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.MaxZipEntries < 0 {
		return fmt.Errorf("config error: 'max_zip_entries' must be non-negative")
	}
	if c.Scoring != nil {
		if err := c.Scoring.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags should always win for bools, so those are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GitHubToken == "" {
		result.GitHubToken = defaults.GitHubToken
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SMTPHost == "" {
		result.SMTPHost = defaults.SMTPHost
	}
	if result.SMTPPort == 0 {
		result.SMTPPort = defaults.SMTPPort
	}
	if result.SMTPFrom == "" {
		result.SMTPFrom = defaults.SMTPFrom
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.MaxZipEntries == 0 {
		result.MaxZipEntries = defaults.MaxZipEntries
	}
	if result.MaxZipFileBytes == 0 {
		result.MaxZipFileBytes = defaults.MaxZipFileBytes
	}
	if result.Scoring == nil {
		result.Scoring = defaults.Scoring
	}

	return result
}

// Defaults returns the built-in configuration defaults.
func Defaults() Config {
	return Config{
		Port:            8080,
		UploadDir:       "uploads",
		SMTPPort:        587,
		MaxUploadBytes:  64 << 20, // 64 MiB
		MaxZipEntries:   200,
		MaxZipFileBytes: 16 << 20, // 16 MiB per extracted file
		Scoring:         DefaultScoring(),
	}
}
