package challenge

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-oauth-demo-apps/hydra"
	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"github.com/jrsteele09/go-oauth-demo-apps/internal/metrics"
	"github.com/jrsteele09/go-oauth-demo-apps/internal/utils"
	"github.com/jrsteele09/go-oauth-demo-apps/oauthmodel"
	"github.com/jrsteele09/go-oauth-demo-apps/users"
	"github.com/rs/zerolog/log"
)

// ResolveLogin accepts a login challenge Hydra marked as skippable, otherwise
// returns the login form.
func (s *Service) ResolveLogin(ctx context.Context, challenge string) (Outcome, error) {
	if challenge == "" {
		return Outcome{}, fmt.Errorf("%w: login challenge", apperrors.ErrMissingParameter)
	}

	req, err := s.admin.GetLoginRequest(ctx, challenge)
	if err != nil {
		return Outcome{}, fmt.Errorf("[challenge ResolveLogin] %w", err)
	}

	if !req.Skip {
		metrics.ChallengeResolved(string(KindLogin), outcomePrompt)
		return Outcome{Form: loginForm(challenge, req)}, nil
	}

	redirect, err := s.admin.AcceptLoginRequest(ctx, challenge, hydra.AcceptLoginRequest{
		Subject:     req.Subject,
		Remember:    utils.Ptr(false),
		RememberFor: s.rememberForSeconds(),
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("[challenge ResolveLogin] %w", err)
	}
	metrics.ChallengeResolved(string(KindLogin), outcomeSkip)
	log.Debug().Str("subject", req.Subject).Str("client_id", req.Client.ClientID).Msg("login skipped")
	return Outcome{RedirectTo: redirect.RedirectTo}, nil
}

// DecideLogin resolves a login challenge from a submitted form. Invalid
// credentials leave the challenge open and return the form again.
func (s *Service) DecideLogin(ctx context.Context, challenge string, d LoginDecision) (Outcome, error) {
	if challenge == "" {
		return Outcome{}, fmt.Errorf("%w: login challenge", apperrors.ErrMissingParameter)
	}

	req, err := s.admin.GetLoginRequest(ctx, challenge)
	if err != nil {
		return Outcome{}, fmt.Errorf("[challenge DecideLogin] %w", err)
	}

	if d.Deny {
		return s.reject(ctx, KindLogin, challenge, s.admin.RejectLoginRequest)
	}

	user, err := users.Authenticate(s.users, d.Email, d.Password)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrInvalidCredentials) {
			return Outcome{}, fmt.Errorf("[challenge DecideLogin] %w", err)
		}
		metrics.ChallengeResolved(string(KindLogin), outcomeInvalidCredentials)
		log.Info().Err(err).Str("client_id", req.Client.ClientID).Msg("login attempt failed")
		form := loginForm(challenge, req)
		form.Email = d.Email
		form.InvalidCredentials = true
		return Outcome{Form: form}, nil
	}

	redirect, err := s.admin.AcceptLoginRequest(ctx, challenge, hydra.AcceptLoginRequest{
		Subject:     user.ID,
		Remember:    utils.Ptr(d.Remember),
		RememberFor: s.rememberForSeconds(),
		Context:     map[string]any{"email": user.Email},
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("[challenge DecideLogin] %w", err)
	}
	metrics.ChallengeResolved(string(KindLogin), outcomeAccept)
	return Outcome{RedirectTo: redirect.RedirectTo}, nil
}

func loginForm(challenge string, req *hydra.LoginRequest) *Form {
	return &Form{
		Kind:           KindLogin,
		Challenge:      challenge,
		Client:         req.Client,
		RequestedScope: req.RequestedScope,
	}
}

type rejectFunc func(ctx context.Context, challenge string, body hydra.RejectRequest) (*hydra.RedirectTo, error)

func (s *Service) reject(ctx context.Context, kind Kind, challenge string, rejectFn rejectFunc) (Outcome, error) {
	redirect, err := rejectFn(ctx, challenge, hydra.RejectRequest{
		Error:            oauthmodel.AccessDenied.Code,
		ErrorDescription: oauthmodel.AccessDenied.Description,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("[challenge reject %s] %w", kind, err)
	}
	metrics.ChallengeResolved(string(kind), outcomeReject)
	return Outcome{RedirectTo: redirect.RedirectTo}, nil
}
