package relyingparty

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"github.com/jrsteele09/go-oauth-demo-apps/internal/metrics"
	"github.com/jrsteele09/go-oauth-demo-apps/oauthmodel"
	"github.com/jrsteele09/go-oauth-demo-apps/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	// stateBytes gives 256 bits of entropy, well above the 128 bit minimum
	stateBytes = 32

	DefaultStateTTL = 10 * time.Minute
)

// Options configures a Controller.
type Options struct {
	Scopes     []string
	UsePKCE    bool
	StateTTL   time.Duration
	HTTPClient *http.Client // used for the token endpoint, defaults to a pooled cleanhttp client
}

// CallbackParams are the query parameters the authorization server appends to
// the redirect URI.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// Controller drives the authorization code flow for the client app. Sessions
// move from unauthenticated to awaiting callback on BeginAuthorization, and to
// authenticated only after a successful code exchange.
type Controller struct {
	exchanger  TokenExchanger
	scopes     []string
	usePKCE    bool
	stateTTL   time.Duration
	httpClient *http.Client
	now        func() time.Time
}

func NewController(exchanger TokenExchanger, opts Options) *Controller {
	if opts.StateTTL <= 0 {
		opts.StateTTL = DefaultStateTTL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = cleanhttp.DefaultPooledClient()
	}
	return &Controller{
		exchanger:  exchanger,
		scopes:     opts.Scopes,
		usePKCE:    opts.UsePKCE,
		stateTTL:   opts.StateTTL,
		httpClient: opts.HTTPClient,
		now:        time.Now,
	}
}

// BeginAuthorization records a fresh state value (and PKCE verifier) on the
// session and returns the authorize endpoint URL to redirect the browser to.
// The caller must save the session.
func (c *Controller) BeginAuthorization(sess *sessions.Session) (string, error) {
	state, err := randomState()
	if err != nil {
		return "", fmt.Errorf("[relyingparty BeginAuthorization] %w", err)
	}

	var opts []oauth2.AuthCodeOption
	if len(c.scopes) > 0 {
		opts = append(opts, oauth2.SetAuthURLParam("scope", oauthmodel.JoinScope(c.scopes)))
	}

	sess.PendingState = state
	sess.StateIssuedAt = c.now()
	sess.CodeVerifier = ""
	if c.usePKCE {
		sess.CodeVerifier = oauth2.GenerateVerifier()
		opts = append(opts, oauth2.S256ChallengeOption(sess.CodeVerifier))
	}

	return c.exchanger.AuthCodeURL(state, opts...), nil
}

// HandleCallback completes the flow. The outstanding state is consumed whatever
// the outcome, so a callback can never be replayed. On success the exchanged
// tokens are stored on the session unchanged. The caller must save the session.
func (c *Controller) HandleCallback(ctx context.Context, sess *sessions.Session, p CallbackParams) error {
	pendingState, verifier, issuedAt := sess.PendingState, sess.CodeVerifier, sess.StateIssuedAt
	sess.ClearPendingAuthorization()

	if p.Error != "" {
		return fmt.Errorf("%w: %s %s", apperrors.ErrAuthorizationDenied, p.Error, p.ErrorDescription)
	}
	if p.Code == "" {
		return fmt.Errorf("%w: authorization code", apperrors.ErrMissingParameter)
	}
	if pendingState == "" || subtle.ConstantTimeCompare([]byte(pendingState), []byte(p.State)) != 1 {
		return apperrors.ErrStateMismatch
	}
	if c.now().Sub(issuedAt) > c.stateTTL {
		return apperrors.ErrStateExpired
	}

	opts := []oauth2.AuthCodeOption{}
	if len(c.scopes) > 0 {
		opts = append(opts, oauth2.SetAuthURLParam("scope", oauthmodel.JoinScope(c.scopes)))
	}
	if verifier != "" {
		opts = append(opts, oauth2.VerifierOption(verifier))
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.exchanger.Exchange(ctx, p.Code, opts...)
	if err != nil {
		metrics.TokenExchange(metrics.ResultFailure)
		return fmt.Errorf("%w: %w: %w", apperrors.ErrUpstream, apperrors.ErrTokenExchangeFailed, err)
	}
	metrics.TokenExchange(metrics.ResultSuccess)

	idToken, _ := token.Extra("id_token").(string)
	sess.SetTokens(oauthmodel.TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		IDToken:      idToken,
		TokenType:    token.Type(),
		Expiry:       token.Expiry,
	})
	log.Debug().Bool("id_token", idToken != "").Time("expiry", token.Expiry).Msg("authorization code exchanged")
	return nil
}

// GetProfile returns the tokens held by an authenticated session together with
// the decoded display claims of its ID token.
func (c *Controller) GetProfile(sess *sessions.Session) (oauthmodel.TokenSet, error) {
	if !sess.Authenticated() {
		return oauthmodel.TokenSet{}, apperrors.ErrUnauthenticated
	}
	tokens := sess.Tokens()
	if tokens.IDToken != "" {
		claims, err := DecodeIDTokenClaims(tokens.IDToken)
		if err != nil {
			log.Warn().Err(err).Msg("stored id token could not be decoded")
		}
		tokens.Claims = claims
	}
	return tokens, nil
}

// Logout drops the tokens and any outstanding authorization request.
func (c *Controller) Logout(sess *sessions.Session) {
	if sess == nil {
		return
	}
	sess.Reset()
}

func randomState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
