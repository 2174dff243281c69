package server

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/jrsteele09/go-oauth-demo-apps/challenge"
	"github.com/rs/zerolog/log"
)

// denyAccess is the submit button value that rejects a challenge
const denyAccess = "Deny access"

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName            string
	Action             string
	Challenge          string
	ClientName         string
	CSRFToken          string
	Email              string // Preserve email on error
	InvalidCredentials bool
}

// ConsentPageData contains data for rendering the consent page
type ConsentPageData struct {
	AppName        string
	Action         string
	Challenge      string
	ClientName     string
	Subject        string
	RequestedScope []string
	CSRFToken      string
}

// ProviderIndexHandler renders the login & consent app's home page
func (s *Server) ProviderIndexHandler() http.HandlerFunc {
	tmpl := mustTemplate("provider_index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"AppName": s.config.GetAppName(),
		}

		if err := renderHTML(w, http.StatusOK, tmpl, data); err != nil {
			log.Err(err).Msg("Failed to render provider index template")
		}
	}
}

// LoginGetHandler resolves or prompts for a login challenge (GET /login)
func (s *Server) LoginGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := s.challenges.ResolveLogin(r.Context(), r.URL.Query().Get("login_challenge"))
		s.renderOutcome(w, r, out, err)
	}
}

// LoginPostHandler processes the login form submission (POST /login)
func (s *Server) LoginPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		out, err := s.challenges.DecideLogin(r.Context(), r.PostFormValue("challenge"), challenge.LoginDecision{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
			Remember: isChecked(r.PostFormValue("remember")),
			Deny:     r.PostFormValue("submit") == denyAccess,
		})
		s.renderOutcome(w, r, out, err)
	}
}

// ConsentGetHandler resolves or prompts for a consent challenge (GET /consent)
func (s *Server) ConsentGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := s.challenges.ResolveConsent(r.Context(), r.URL.Query().Get("consent_challenge"))
		s.renderOutcome(w, r, out, err)
	}
}

// ConsentPostHandler processes the consent form submission (POST /consent)
func (s *Server) ConsentPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		out, err := s.challenges.DecideConsent(r.Context(), r.PostFormValue("challenge"), challenge.ConsentDecision{
			GrantScope: r.PostForm["grant_scope"],
			Remember:   isChecked(r.PostFormValue("remember")),
			Deny:       r.PostFormValue("submit") == denyAccess,
		})
		s.renderOutcome(w, r, out, err)
	}
}

var (
	loginTmpl   = mustTemplate("login.html")
	consentTmpl = mustTemplate("consent.html")
)

// renderOutcome redirects the browser back to Hydra for a resolved challenge
// or renders the form the challenge still needs.
func (s *Server) renderOutcome(w http.ResponseWriter, r *http.Request, out challenge.Outcome, err error) {
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if out.Resolved() {
		redirectSuccess(w, r, out.RedirectTo)
		return
	}
	if out.Form == nil {
		s.handleError(w, r, fmt.Errorf("[server renderOutcome] %s challenge has neither redirect nor form", r.URL.Path))
		return
	}

	form := out.Form
	var (
		tmpl *template.Template
		data any
	)
	switch form.Kind {
	case challenge.KindLogin:
		tmpl = loginTmpl
		data = LoginPageData{
			AppName:            s.config.GetAppName(),
			Action:             RouteLogin,
			Challenge:          form.Challenge,
			ClientName:         form.Client.DisplayName(),
			CSRFToken:          s.csrfToken(w, r),
			Email:              form.Email,
			InvalidCredentials: form.InvalidCredentials,
		}
	default:
		tmpl = consentTmpl
		data = ConsentPageData{
			AppName:        s.config.GetAppName(),
			Action:         RouteConsent,
			Challenge:      form.Challenge,
			ClientName:     form.Client.DisplayName(),
			Subject:        form.Subject,
			RequestedScope: form.RequestedScope,
			CSRFToken:      s.csrfToken(w, r),
		}
	}

	if err := renderHTML(w, http.StatusOK, tmpl, data); err != nil {
		log.Err(err).Str("form", string(form.Kind)).Msg("Failed to render form template")
	}
}

// isChecked reports whether an HTML checkbox value was submitted as ticked
func isChecked(v string) bool {
	switch v {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}
