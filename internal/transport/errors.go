package transport

import (
	"errors"
	"net/http"

	"github.com/rpggio/statustracker/internal/domain/category"
	"github.com/rpggio/statustracker/internal/domain/tracked"
	"github.com/rpggio/statustracker/internal/github"
)

// APIError is the HTTP rendering of a domain error.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// MapError maps domain errors to HTTP status codes and messages.
// Errors it does not recognise become 500 INTERNAL.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var validation *tracked.ValidationError
	var reference *github.ReferenceError
	var upstream *github.APIError

	switch {
	case errors.As(err, &validation):
		return &APIError{Status: http.StatusBadRequest, Code: "INVALID_INPUT", Message: validation.Message}
	case errors.Is(err, category.ErrInvalidInput):
		return &APIError{Status: http.StatusBadRequest, Code: "INVALID_INPUT", Message: "category name required"}
	case errors.Is(err, tracked.ErrInvalidReference):
		msg := "invalid GitHub URL"
		if errors.As(err, &reference) {
			msg = reference.Error()
		}
		return &APIError{Status: http.StatusBadRequest, Code: "INVALID_REFERENCE", Message: msg}
	case errors.Is(err, tracked.ErrDuplicate):
		return &APIError{Status: http.StatusConflict, Code: "DUPLICATE", Message: "issue already tracked"}
	case errors.Is(err, tracked.ErrItemNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "tracked item not found"}
	case errors.Is(err, category.ErrCategoryNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "category not found"}
	case errors.Is(err, tracked.ErrUpstreamFetch):
		msg := "GitHub API error"
		if errors.As(err, &upstream) {
			msg = upstream.Error()
		}
		switch {
		case errors.Is(err, github.ErrNotFound):
			return &APIError{Status: http.StatusNotFound, Code: "UPSTREAM_NOT_FOUND", Message: msg}
		case errors.Is(err, github.ErrRateLimited):
			return &APIError{Status: http.StatusTooManyRequests, Code: "RATE_LIMITED", Message: msg}
		default:
			return &APIError{Status: http.StatusBadGateway, Code: "UPSTREAM_ERROR", Message: msg}
		}
	default:
		return &APIError{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "internal error"}
	}
}
