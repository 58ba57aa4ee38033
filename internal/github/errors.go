package github

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference indicates a URL that does not point at an issue or pull request.
	ErrInvalidReference = errors.New("invalid issue reference")
	// ErrNotFound indicates the upstream answered 404.
	ErrNotFound = errors.New("issue not found")
	// ErrRateLimited indicates the upstream answered 403.
	ErrRateLimited = errors.New("rate limit reached")
	// ErrUpstream covers every other failed exchange with the upstream.
	ErrUpstream = errors.New("upstream error")
)

// ReferenceError describes a URL that failed to parse.
type ReferenceError struct {
	URL string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("invalid GitHub URL %q, expected format: https://github.com/owner/repo/issues/123", e.URL)
}

func (e *ReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// APIError is a failed fetch. It unwraps to ErrNotFound, ErrRateLimited or ErrUpstream.
type APIError struct {
	Kind       error
	StatusCode int
	Owner      string
	Repo       string
	Number     int
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrNotFound):
		return "issue not found, verify the URL"
	case errors.Is(e.Kind, ErrRateLimited):
		return "GitHub API rate limit reached, retry later"
	case e.StatusCode != 0:
		return fmt.Sprintf("GitHub API error: %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("GitHub API error: %v", e.Err)
	default:
		return "GitHub API error"
	}
}

func (e *APIError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func statusError(status int, ref Reference) *APIError {
	kind := ErrUpstream
	switch status {
	case 404:
		kind = ErrNotFound
	case 403:
		kind = ErrRateLimited
	}
	return &APIError{
		Kind:       kind,
		StatusCode: status,
		Owner:      ref.Owner,
		Repo:       ref.Repo,
		Number:     ref.Number,
	}
}
