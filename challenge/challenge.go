package challenge

import (
	"time"

	"github.com/jrsteele09/go-oauth-demo-apps/hydra"
	"github.com/jrsteele09/go-oauth-demo-apps/users"
)

// Kind of provider-side interaction
type Kind string

const (
	KindLogin   Kind = "login"
	KindConsent Kind = "consent"
)

// Metric outcomes
const (
	outcomeSkip               = "skip"
	outcomePrompt             = "prompt"
	outcomeAccept             = "accept"
	outcomeReject             = "reject"
	outcomeInvalidCredentials = "invalid_credentials"
)

// DefaultRememberFor is used when a user asks to be remembered.
const DefaultRememberFor = time.Hour

// Form is what the user has to be shown before a challenge can be resolved.
type Form struct {
	Kind               Kind
	Challenge          string
	Client             hydra.OAuth2Client
	RequestedScope     []string
	Subject            string
	Email              string // login only, preserved on a failed attempt
	InvalidCredentials bool
}

// Outcome is either a resolved challenge (RedirectTo set) or a form to render.
type Outcome struct {
	RedirectTo string
	Form       *Form
}

func (o Outcome) Resolved() bool {
	return o.RedirectTo != ""
}

// LoginDecision is a submitted login form.
type LoginDecision struct {
	Email    string
	Password string
	Remember bool
	Deny     bool
}

// ConsentDecision is a submitted consent form.
type ConsentDecision struct {
	GrantScope []string
	Remember   bool
	Deny       bool
}

// Service resolves Hydra login and consent challenges. A challenge is either
// left untouched or resolved exactly once by an accept or reject call.
type Service struct {
	admin       hydra.AdminAPI
	users       users.UserRepo
	rememberFor time.Duration
}

func NewService(admin hydra.AdminAPI, userRepo users.UserRepo, rememberFor time.Duration) *Service {
	if rememberFor <= 0 {
		rememberFor = DefaultRememberFor
	}
	return &Service{
		admin:       admin,
		users:       userRepo,
		rememberFor: rememberFor,
	}
}

func (s *Service) rememberForSeconds() *int64 {
	secs := int64(s.rememberFor / time.Second)
	return &secs
}
