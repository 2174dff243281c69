package server

import (
	"crypto/subtle"
	"net/http"

	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
)

const (
	csrfCookieName = "_csrf"
	csrfFieldName  = "_csrf"
	csrfTokenBytes = 32
)

// csrfToken returns the browser's double-submit token, issuing one if the
// request carries none. Forms embed it in a hidden field.
func (s *Server) csrfToken(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(csrfCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	token := generateRandomString(csrfTokenBytes)
	s.setCookie(w, r, csrfCookieName, token, 0)
	return token
}

// CSRFMiddleware rejects form posts whose _csrf field does not match the
// _csrf cookie.
func (s *Server) CSRFMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(csrfCookieName)
		if err != nil || cookie.Value == "" {
			s.handleError(w, r, apperrors.ErrInvalidCSRFToken)
			return
		}
		submitted := r.PostFormValue(csrfFieldName)
		if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(submitted)) != 1 {
			s.handleError(w, r, apperrors.ErrInvalidCSRFToken)
			return
		}
		next(w, r)
	}
}
