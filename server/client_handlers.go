package server

import (
	"net/http"

	"github.com/jrsteele09/go-oauth-demo-apps/oauthmodel"
	"github.com/jrsteele09/go-oauth-demo-apps/relyingparty"
	"github.com/rs/zerolog/log"
)

// ClientIndexData contains data for rendering the client home page
type ClientIndexData struct {
	AppName       string
	Authenticated bool
	Profile       oauthmodel.TokenSet
}

// ClientIndexHandler renders the login prompt or, once signed in, the
// session status.
func (s *Server) ClientIndexHandler() http.HandlerFunc {
	tmpl := mustTemplate("client_index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Load(r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		data := ClientIndexData{AppName: s.config.GetAppName()}
		if profile, err := s.flow.GetProfile(sess); err == nil {
			data.Authenticated = true
			data.Profile = profile
		}

		if err := renderHTML(w, http.StatusOK, tmpl, data); err != nil {
			log.Err(err).Msg("Failed to render client index template")
		}
	}
}

// AuthHandler starts the authorization code flow (GET /auth)
func (s *Server) AuthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Load(r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		authorizeURL, err := s.flow.BeginAuthorization(sess)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		if err := s.sessions.Save(w, r, sess); err != nil {
			s.handleError(w, r, err)
			return
		}
		http.Redirect(w, r, authorizeURL, http.StatusFound)
	}
}

// CallbackHandler completes the code exchange (GET /callback)
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Load(r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		q := r.URL.Query()
		callbackErr := s.flow.HandleCallback(r.Context(), sess, relyingparty.CallbackParams{
			Code:             q.Get("code"),
			State:            q.Get("state"),
			Error:            q.Get("error"),
			ErrorDescription: q.Get("error_description"),
		})

		if callbackErr == nil {
			if err := s.sessions.Renew(r.Context(), sess); err != nil {
				s.handleError(w, r, err)
				return
			}
		}
		// The outstanding state is consumed either way
		if err := s.sessions.Save(w, r, sess); err != nil {
			s.handleError(w, r, err)
			return
		}
		if callbackErr != nil {
			s.handleError(w, r, callbackErr)
			return
		}
		redirectSuccess(w, r, "/")
	}
}

// LogoutHandler destroys the session (GET /logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Load(r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		s.flow.Logout(sess)
		if err := s.sessions.Destroy(w, r, sess); err != nil {
			s.handleError(w, r, err)
			return
		}
		redirectSuccess(w, r, "/")
	}
}

// ProfileHandler returns the session's tokens as JSON (GET /profile)
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Load(r)
		if err != nil {
			log.Err(err).Msg("Failed to load session")
			writeJSONError(w, "server_error", "An internal error occurred", http.StatusInternalServerError)
			return
		}

		profile, err := s.flow.GetProfile(sess)
		if err != nil {
			writeJSONError(w, "unauthenticated", "Not authenticated", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

// HealthzHandler reports liveness
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"app":    string(s.config.GetApp()),
		})
	}
}
