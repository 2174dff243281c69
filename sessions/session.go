package sessions

import (
	"time"

	"github.com/jrsteele09/go-oauth-demo-apps/oauthmodel"
)

// Session stores one browser's relying party state. A session without an
// access token is unauthenticated.
type Session struct {
	ID string `json:"-"`

	// Tokens (set only by a successful code exchange)
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	IDToken      string    `json:"id_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	TokenExpiry  time.Time `json:"token_expiry,omitempty"`

	// Outstanding authorization request (cleared by the callback)
	PendingState  string    `json:"pending_state,omitempty"`
	CodeVerifier  string    `json:"code_verifier,omitempty"`
	StateIssuedAt time.Time `json:"state_issued_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// Tokens returns the stored tokens as a TokenSet.
func (s *Session) Tokens() oauthmodel.TokenSet {
	return oauthmodel.TokenSet{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		IDToken:      s.IDToken,
		TokenType:    s.TokenType,
		Expiry:       s.TokenExpiry,
	}
}

// SetTokens replaces the stored tokens with t.
func (s *Session) SetTokens(t oauthmodel.TokenSet) {
	s.AccessToken = t.AccessToken
	s.RefreshToken = t.RefreshToken
	s.IDToken = t.IDToken
	s.TokenType = t.TokenType
	s.TokenExpiry = t.Expiry
}

func (s *Session) ClearPendingAuthorization() {
	s.PendingState = ""
	s.CodeVerifier = ""
	s.StateIssuedAt = time.Time{}
}

// Reset drops everything the session holds apart from its identity.
func (s *Session) Reset() {
	*s = Session{ID: s.ID, CreatedAt: s.CreatedAt}
}
