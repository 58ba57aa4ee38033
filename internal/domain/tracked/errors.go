package tracked

import "errors"

var (
	// ErrInvalidInput indicates missing or malformed create input.
	ErrInvalidInput = errors.New("invalid tracked item input")
	// ErrInvalidReference indicates a source URL that is not an issue or pull request URL.
	ErrInvalidReference = errors.New("invalid issue reference")
	// ErrDuplicate indicates the source URL is already tracked.
	ErrDuplicate = errors.New("issue already tracked")
	// ErrItemNotFound indicates no tracked item has the given ID.
	ErrItemNotFound = errors.New("tracked item not found")
	// ErrUpstreamFetch indicates the live state could not be loaded while creating.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
)

// ValidationError names the offending field. It unwraps to ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
