package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/statustracker/internal/domain/category"
	"github.com/rpggio/statustracker/internal/domain/tracked"
	"github.com/rpggio/statustracker/internal/github"
)

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
// It returns nil for errors it does not recognise.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var validation *tracked.ValidationError
	var reference *github.ReferenceError
	var upstream *github.APIError

	switch {
	case errors.As(err, &validation):
		return &APIError{Code: "INVALID_INPUT", Message: validation.Message}
	case errors.Is(err, category.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "category name required"}
	case errors.Is(err, tracked.ErrInvalidReference):
		msg := "invalid GitHub URL"
		if errors.As(err, &reference) {
			msg = reference.Error()
		}
		return &APIError{Code: "INVALID_REFERENCE", Message: msg, RecoveryHint: "Use https://github.com/owner/repo/issues/N or /pull/N"}
	case errors.Is(err, tracked.ErrDuplicate):
		return &APIError{Code: "DUPLICATE", Message: "issue already tracked", RecoveryHint: "Call list_tracked_items to find it"}
	case errors.Is(err, tracked.ErrItemNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "tracked item not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, category.ErrCategoryNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "category not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, tracked.ErrUpstreamFetch):
		msg := "GitHub API error"
		if errors.As(err, &upstream) {
			msg = upstream.Error()
		}
		switch {
		case errors.Is(err, github.ErrNotFound):
			return &APIError{Code: "UPSTREAM_NOT_FOUND", Message: msg}
		case errors.Is(err, github.ErrRateLimited):
			return &APIError{Code: "RATE_LIMITED", Message: msg, RecoveryHint: "Retry later or configure GITHUB_TOKEN"}
		default:
			return &APIError{Code: "UPSTREAM_ERROR", Message: msg}
		}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
