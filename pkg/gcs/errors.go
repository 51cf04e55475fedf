package gcs

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks client-side validation failures. No request is
// sent to the collaborator when it is returned.
var ErrInvalidArgument = errors.New("invalid argument")

// APIError is a non-success response from the collaborator. Body holds the
// raw response body so callers can surface it verbatim.
type APIError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("upstream %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("upstream %s", e.Status)
}

// AsAPIError unwraps err to an APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
