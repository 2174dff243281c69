package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// ErrorPageData contains data for rendering the error page
type ErrorPageData struct {
	AppName    string
	StatusCode int
	StatusText string
	Message    string
	RequestID  string
}

var errorTmpl = mustTemplate("error.html")

// errorResponse maps an error to the status and the message shown to the
// user. Upstream details are never part of the message.
func errorResponse(err error) (int, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrMissingParameter):
		return http.StatusBadRequest, err.Error()
	case apperrors.Is(err, apperrors.ErrStateMismatch):
		return http.StatusBadRequest, "The authorization response does not match a request made by this browser"
	case apperrors.Is(err, apperrors.ErrStateExpired):
		return http.StatusBadRequest, "The authorization request expired, please sign in again"
	case apperrors.Is(err, apperrors.ErrAuthorizationDenied):
		return http.StatusBadRequest, "Authorization failed"
	case apperrors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "Not authenticated"
	case apperrors.Is(err, apperrors.ErrInvalidCSRFToken):
		return http.StatusForbidden, "Invalid CSRF token, reload the form and try again"
	case apperrors.Is(err, apperrors.ErrTokenExchangeFailed):
		return http.StatusInternalServerError, "Authentication failed"
	case apperrors.Is(err, apperrors.ErrChallengeNotFound), apperrors.Is(err, apperrors.ErrChallengeExpired):
		return http.StatusInternalServerError, "This sign-in request is no longer valid, please start again from the application"
	default:
		return http.StatusInternalServerError, "An internal error occurred"
	}
}

// handleError logs err and renders the error page.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorResponse(err)

	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("request failed")

	s.renderErrorPage(w, r, status, message)
}

func (s *Server) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := ErrorPageData{
		AppName:    s.config.GetAppName(),
		StatusCode: status,
		StatusText: http.StatusText(status),
		Message:    message,
		RequestID:  middleware.GetReqID(r.Context()),
	}
	if err := renderHTML(w, status, errorTmpl, data); err != nil {
		log.Err(err).Msg("Failed to render error template")
		http.Error(w, message, status)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to encode JSON response")
	}
}

// writeJSONError writes an OAuth2 style error response
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}
