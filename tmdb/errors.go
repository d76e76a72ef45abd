package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrMissingAPIKey indicates no API key was supplied
	ErrMissingAPIKey = errors.New("TMDB API key is required")
	// ErrUnauthorized indicates authentication failure
	ErrUnauthorized = errors.New("unauthorized: invalid TMDB API key")
)

// APIError represents a non-200 TMDB API response
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("TMDB API error: status %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match credential failures
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}
