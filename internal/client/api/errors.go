package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iudanet/procure/pkg/api"
)

// Error represents a non-2xx server response. Business-rule rejections
// from the server (duplicate invoice number and the like) arrive here
// too and are displayed verbatim by the caller.
type Error struct {
	StatusCode int
	Problem    api.ErrorResponse
}

func (e *Error) Error() string {
	if e.Problem.Detail != "" {
		return fmt.Sprintf("server error (%d): %s: %s", e.StatusCode, e.Problem.Title, e.Problem.Detail)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Problem.Title)
}

// FieldErrors returns server-side per-field messages, if any
func (e *Error) FieldErrors() map[string][]string {
	return e.Problem.Errors
}

// IsAuthError reports whether err is a 401 response
func IsAuthError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
