package hydra

import (
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
)

// APIError is a non-2xx answer from the admin API. It always matches
// errors.ErrUpstream and, depending on the status, ErrChallengeNotFound or
// ErrChallengeExpired.
type APIError struct {
	Operation   string `json:"-"`
	StatusCode  int    `json:"-"`
	Name        string `json:"error"`
	Description string `json:"error_description"`
	// RedirectTo is set by Hydra when a challenge was already handled.
	RedirectTo string `json:"redirect_to,omitempty"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("hydra %s: %d %s: %s", e.Operation, e.StatusCode, e.Name, e.Description)
	}
	return fmt.Sprintf("hydra %s: %d %s", e.Operation, e.StatusCode, e.Name)
}

func (e *APIError) Unwrap() []error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return []error{apperrors.ErrUpstream, apperrors.ErrChallengeNotFound}
	case http.StatusConflict, http.StatusGone:
		return []error{apperrors.ErrUpstream, apperrors.ErrChallengeExpired}
	default:
		return []error{apperrors.ErrUpstream}
	}
}
