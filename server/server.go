package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-oauth-demo-apps/challenge"
	"github.com/jrsteele09/go-oauth-demo-apps/internal/config"
	"github.com/jrsteele09/go-oauth-demo-apps/oauthmodel"
	"github.com/jrsteele09/go-oauth-demo-apps/relyingparty"
	"github.com/jrsteele09/go-oauth-demo-apps/sessions"
	"github.com/rs/zerolog/log"
)

// FlowController runs the relying party side of the authorization code flow.
type FlowController interface {
	BeginAuthorization(sess *sessions.Session) (string, error)
	HandleCallback(ctx context.Context, sess *sessions.Session, p relyingparty.CallbackParams) error
	GetProfile(sess *sessions.Session) (oauthmodel.TokenSet, error)
	Logout(sess *sessions.Session)
}

// ChallengeResolver answers Hydra's login and consent redirects.
type ChallengeResolver interface {
	ResolveLogin(ctx context.Context, challengeID string) (challenge.Outcome, error)
	DecideLogin(ctx context.Context, challengeID string, d challenge.LoginDecision) (challenge.Outcome, error)
	ResolveConsent(ctx context.Context, challengeID string) (challenge.Outcome, error)
	DecideConsent(ctx context.Context, challengeID string, d challenge.ConsentDecision) (challenge.Outcome, error)
}

var (
	_ FlowController    = (*relyingparty.Controller)(nil)
	_ ChallengeResolver = (*challenge.Service)(nil)
)

type Server struct {
	dev    bool // ENV=DEV, case-insensitive
	mux    *http.ServeMux
	routes []string
	config config.Config

	// client app
	sessions *sessions.Manager
	flow     FlowController

	// login-consent app
	challenges ChallengeResolver
}

// NewClientApp serves the OAuth2 client application.
func NewClientApp(c config.Config, sm *sessions.Manager, flow FlowController) *Server {
	s := newServer(c)
	s.sessions = sm
	s.flow = flow
	s.initClientRoutes()
	s.logRoutes()
	return s
}

// NewLoginConsentApp serves Hydra's login and consent endpoints.
func NewLoginConsentApp(c config.Config, challenges ChallengeResolver) *Server {
	s := newServer(c)
	s.challenges = challenges
	s.initLoginConsentRoutes()
	s.logRoutes()
	return s
}

func newServer(c config.Config) *Server {
	return &Server{
		dev:    c.IsDev(),
		mux:    http.NewServeMux(),
		config: c,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if !s.dev {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func logError(method, path, error string) {
	log.Error().Msgf("[%-19s] %s %s", colourMethod(method), path, Red+error+ResetColor)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
