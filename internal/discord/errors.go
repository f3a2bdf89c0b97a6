package discord

import (
	"errors"
	"fmt"
)

// Common errors returned by the Discord client.
var (
	// ErrAuth indicates a missing or invalid bot token.
	ErrAuth = errors.New("Discord authentication error")

	// ErrNotFound indicates the channel or message does not exist.
	ErrNotFound = errors.New("not found on Discord")

	// ErrRateLimited indicates Discord's own rate limit was hit.
	ErrRateLimited = errors.New("Discord rate limit exceeded")

	// ErrNetwork indicates a network connectivity issue.
	ErrNetwork = errors.New("network error communicating with Discord")

	// ErrAPI indicates a general API error.
	ErrAPI = errors.New("Discord API error")
)

// APIError represents an error response from the Discord API.
type APIError struct {
	StatusCode int
	Code       int // Discord error code (e.g., 50001 missing access)
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("Discord API error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("Discord API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code onto the matching sentinel error so callers can
// use errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == 401 || e.StatusCode == 403:
		return ErrAuth
	case e.StatusCode == 404:
		return ErrNotFound
	case e.StatusCode == 429:
		return ErrRateLimited
	default:
		return ErrAPI
	}
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuth)
}

// IsNotFound returns true if the error indicates a missing channel or message.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
