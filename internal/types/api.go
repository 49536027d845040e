package types

import (
	"github.com/go-playground/validator/v10"
)

// GitHubAnalyzeRequest is the body of POST /api/github/analyze.
// Username accepts a bare username or a github.com profile URL.
type GitHubAnalyzeRequest struct {
	Username     string           `json:"username" validate:"required,min=1,max=200"`
	Requirements *JobRequirements `json:"job_requirements,omitempty"`
	SessionID    string           `json:"session_id,omitempty"`
}

// Validate validates the GitHubAnalyzeRequest using the validator.
func (r *GitHubAnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// InterviewRequest is the body of POST /api/interview/generate. With
// candidate fields set it generates one question set; with only a session ID
// it generates a set for every resume stored in that session.
type InterviewRequest struct {
	CandidateName string `json:"candidate_name" validate:"required_without=SessionID"`
	CandidateText string `json:"candidate_text" validate:"required_without=SessionID"`
	SessionID     string `json:"session_id,omitempty"`
}

// Validate validates the InterviewRequest using the validator.
func (r *InterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// InterviewResult is the generated interview material for one candidate.
type InterviewResult struct {
	CandidateName string `json:"candidate_name"`
	Questions     string `json:"questions"`
	OutputFile    string `json:"output_file,omitempty"`
}

// LeaderboardRequest is the body of POST /api/leaderboard.
type LeaderboardRequest struct {
	SessionID      string  `json:"session_id" validate:"required,min=1"`
	LinkedInWeight float64 `json:"linkedin_weight,omitempty" validate:"gte=0"`
	GitHubWeight   float64 `json:"github_weight,omitempty" validate:"gte=0"`
	MinScore       float64 `json:"min_score,omitempty" validate:"gte=0,lte=1"`
}

// Validate validates the LeaderboardRequest using the validator.
func (r *LeaderboardRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// InviteRequest is the body of POST /api/invite.
type InviteRequest struct {
	Candidates  []InviteCandidate `json:"candidates" validate:"required,min=1,dive"`
	Role        string            `json:"role" validate:"required,min=1"`
	Company     string            `json:"company" validate:"required,min=1"`
	ScheduleURL string            `json:"schedule_url,omitempty" validate:"omitempty,url"`
}

// InviteResult reports the outcome of an invitation batch.
type InviteResult struct {
	Sent   []string        `json:"sent"`
	Failed []InviteFailure `json:"failed,omitempty"`
}

// InviteFailure describes one undeliverable invitation.
type InviteFailure struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// InviteCandidate is one recipient of an interview invitation.
type InviteCandidate struct {
	Name  string `json:"name" validate:"required,min=1"`
	Email string `json:"email" validate:"required,email"`
}

// Validate validates the InviteRequest using the validator.
func (r *InviteRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TokenRequest is the body of POST /api/auth/token.
type TokenRequest struct {
	APIKey string `json:"api_key" validate:"required,min=1"`
}

// Validate validates the TokenRequest using the validator.
func (r *TokenRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
