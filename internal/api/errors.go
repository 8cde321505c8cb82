package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a backend-reported failure.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// IsAuthRejected reports whether err means the backend rejected the supplied
// credentials. This is the recoverable login failure: the operator may
// correct the credentials and resubmit.
func IsAuthRejected(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized ||
		apiErr.StatusCode == http.StatusForbidden
}
