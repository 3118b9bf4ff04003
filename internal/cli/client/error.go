package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the single failure shape for every backend capability call.
// Callers never see raw transport status codes; they match on this type.
type APIError struct {
	// Status is the HTTP status returned by the backend
	Status int
	// Diagnostic is the backend-provided error body, when available
	Diagnostic string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("backend returned %d %s: %s", e.Status, http.StatusText(e.Status), e.Diagnostic)
	}
	return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
}

// AsAPIError unwraps err into an APIError, if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a backend rejection of the credential
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}
