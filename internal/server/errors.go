// Package server provides the HTTP JSON API for HireSight.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ibhanwork/hiresight/internal/extract"
	"github.com/ibhanwork/hiresight/internal/github"
	"github.com/ibhanwork/hiresight/internal/session"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthorized indicates a missing or invalid credential
type ErrUnauthorized struct {
	Reason string
}

func (e *ErrUnauthorized) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrServiceUnavailable indicates an optional capability is not configured
type ErrServiceUnavailable struct {
	Service string
}

func (e *ErrServiceUnavailable) Error() string {
	return fmt.Sprintf("service not configured: %s", e.Service)
}

// ErrUpstream indicates a dependency call failed
type ErrUpstream struct {
	Service string
	Err     error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("upstream %s failure: %v", e.Service, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		unauthorized   *ErrUnauthorized
		notFound       *ErrNotFound
		unavailable    *ErrServiceUnavailable
		upstream       *ErrUpstream
		badFormat      *extract.ErrUnsupportedFormat
		emptyDoc       *extract.ErrEmptyDocument
		archiveLimit   *extract.ErrArchiveTooLarge
		unsafePath     *extract.ErrUnsafePath
		badUsername    *github.ErrInvalidUsername
		userMissing    *github.ErrUserNotFound
		rateLimited    *github.ErrRateLimited
		sessionMissing *session.ErrSessionNotFound
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &badFormat),
		errors.As(err, &emptyDoc),
		errors.As(err, &unsafePath),
		errors.As(err, &badUsername):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &notFound),
		errors.As(err, &userMissing),
		errors.As(err, &sessionMissing):
		return http.StatusNotFound
	case errors.As(err, &archiveLimit):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage keeps 500 bodies generic so internal details do not leak.
func publicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
