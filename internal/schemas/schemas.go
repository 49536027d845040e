// Package schemas validates HireSight's persisted JSON artifacts against
// embedded JSON Schemas.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var schemaFS embed.FS

// Artifact names accepted by Validate.
const (
	ArtifactSessionMetadata = "session_metadata"
	ArtifactLeaderboard     = "leaderboard"
	ArtifactAnalysisReport  = "analysis_report"
)

// Validate checks a JSON document against the embedded schema for artifact.
// Returns *ValidationError for schema violations.
func Validate(artifact string, jsonContent []byte) error {
	schema, err := schemaFS.ReadFile(artifact + ".schema.json")
	if err != nil {
		return &SchemaLoadError{
			Path:    artifact,
			Message: "unknown artifact schema",
			Cause:   err,
		}
	}
	return ValidateJSONString(string(schema), string(jsonContent))
}

// ValidateSessionMetadata checks a metadata.json document.
func ValidateSessionMetadata(jsonContent []byte) error {
	return Validate(ArtifactSessionMetadata, jsonContent)
}

// ValidateLeaderboard checks a leaderboard snapshot document.
func ValidateLeaderboard(jsonContent []byte) error {
	return Validate(ArtifactLeaderboard, jsonContent)
}

// ValidateAnalysisReport checks an analysis_<username>.json document.
func ValidateAnalysisReport(jsonContent []byte) error {
	return Validate(ArtifactAnalysisReport, jsonContent)
}

// Schema returns the raw embedded schema for an artifact.
func Schema(artifact string) ([]byte, error) {
	data, err := schemaFS.ReadFile(artifact + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("unknown artifact schema %q: %w", artifact, err)
	}
	return data, nil
}
