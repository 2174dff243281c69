package challenge

import (
	"context"
	"fmt"
	"maps"

	"github.com/jrsteele09/go-oauth-demo-apps/hydra"
	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"github.com/jrsteele09/go-oauth-demo-apps/internal/metrics"
	"github.com/jrsteele09/go-oauth-demo-apps/internal/utils"
	"github.com/jrsteele09/go-oauth-demo-apps/oauthmodel"
	"github.com/rs/zerolog/log"
)

// ResolveConsent grants the requested scope and audience when Hydra marked
// the consent as skippable, otherwise returns the consent form.
func (s *Service) ResolveConsent(ctx context.Context, challenge string) (Outcome, error) {
	if challenge == "" {
		return Outcome{}, fmt.Errorf("%w: consent challenge", apperrors.ErrMissingParameter)
	}

	req, err := s.admin.GetConsentRequest(ctx, challenge)
	if err != nil {
		return Outcome{}, fmt.Errorf("[challenge ResolveConsent] %w", err)
	}

	if !req.Skip {
		metrics.ChallengeResolved(string(KindConsent), outcomePrompt)
		return Outcome{Form: &Form{
			Kind:           KindConsent,
			Challenge:      challenge,
			Client:         req.Client,
			RequestedScope: req.RequestedScope,
			Subject:        req.Subject,
		}}, nil
	}

	redirect, err := s.admin.AcceptConsentRequest(ctx, challenge, hydra.AcceptConsentRequest{
		GrantScope:               req.RequestedScope,
		GrantAccessTokenAudience: req.RequestedAccessTokenAudience,
		Session:                  consentSession(req, nil),
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("[challenge ResolveConsent] %w", err)
	}
	metrics.ChallengeResolved(string(KindConsent), outcomeSkip)
	log.Debug().Str("subject", req.Subject).Strs("scope", req.RequestedScope).Msg("consent skipped")
	return Outcome{RedirectTo: redirect.RedirectTo}, nil
}

// DecideConsent resolves a consent challenge from a submitted form. Only
// scopes that were actually requested are granted.
func (s *Service) DecideConsent(ctx context.Context, challenge string, d ConsentDecision) (Outcome, error) {
	if challenge == "" {
		return Outcome{}, fmt.Errorf("%w: consent challenge", apperrors.ErrMissingParameter)
	}

	req, err := s.admin.GetConsentRequest(ctx, challenge)
	if err != nil {
		return Outcome{}, fmt.Errorf("[challenge DecideConsent] %w", err)
	}

	if d.Deny {
		return s.reject(ctx, KindConsent, challenge, s.admin.RejectConsentRequest)
	}

	granted, dropped := oauthmodel.GrantScope(req.RequestedScope, d.GrantScope)
	if len(dropped) > 0 {
		log.Warn().Strs("dropped", dropped).Str("client_id", req.Client.ClientID).Msg("consent form submitted scopes that were not requested")
	}

	redirect, err := s.admin.AcceptConsentRequest(ctx, challenge, hydra.AcceptConsentRequest{
		GrantScope:               granted,
		GrantAccessTokenAudience: req.RequestedAccessTokenAudience,
		Remember:                 utils.Ptr(d.Remember),
		RememberFor:              s.rememberForSeconds(),
		Session:                  consentSession(req, interactiveAccessTokenClaims),
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("[challenge DecideConsent] %w", err)
	}
	metrics.ChallengeResolved(string(KindConsent), outcomeAccept)
	return Outcome{RedirectTo: redirect.RedirectTo}, nil
}

// interactiveAccessTokenClaims are added to access tokens granted through the consent form.
var interactiveAccessTokenClaims = map[string]any{"custom_claim": "custom_value"}

// consentSession embeds the email the login step stored in the context,
// plus any extra access token claims.
func consentSession(req *hydra.ConsentRequest, accessTokenClaims map[string]any) *hydra.ConsentSession {
	var session hydra.ConsentSession
	if email := req.ContextString("email"); email != "" {
		session.IDToken = map[string]any{"email": email}
	}
	if len(accessTokenClaims) > 0 {
		session.AccessToken = maps.Clone(accessTokenClaims)
	}
	if session.IDToken == nil && session.AccessToken == nil {
		return nil
	}
	return &session
}
