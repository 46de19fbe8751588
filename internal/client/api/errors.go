package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Method and Path identify the failed request.
	Method string
	Path   string
	// Message is the trimmed response body.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: server error: %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: server error: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
