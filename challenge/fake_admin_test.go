package challenge

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-oauth-demo-apps/hydra"
	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
)

// fakeAdmin is an in-memory AdminAPI that enforces single-use challenges.
type fakeAdmin struct {
	mu       sync.Mutex
	logins   map[string]*hydra.LoginRequest
	consents map[string]*hydra.ConsentRequest
	resolved map[string]bool
	err      error

	acceptedLogins   []hydra.AcceptLoginRequest
	acceptedConsents []hydra.AcceptConsentRequest
	rejections       []hydra.RejectRequest
}

var _ hydra.AdminAPI = (*fakeAdmin)(nil)

func newFakeAdmin() *fakeAdmin {
	return &fakeAdmin{
		logins:   map[string]*hydra.LoginRequest{},
		consents: map[string]*hydra.ConsentRequest{},
		resolved: map[string]bool{},
	}
}

func (f *fakeAdmin) open(challenge string) error {
	if f.err != nil {
		return f.err
	}
	if f.resolved[challenge] {
		return &hydra.APIError{Operation: "resolve", StatusCode: 410, Name: "request_expired"}
	}
	return nil
}

func (f *fakeAdmin) GetLoginRequest(_ context.Context, challenge string) (*hydra.LoginRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.open(challenge); err != nil {
		return nil, err
	}
	req, ok := f.logins[challenge]
	if !ok {
		return nil, &hydra.APIError{Operation: "GetLoginRequest", StatusCode: 404, Name: "not_found"}
	}
	cp := *req
	return &cp, nil
}

func (f *fakeAdmin) AcceptLoginRequest(_ context.Context, challenge string, body hydra.AcceptLoginRequest) (*hydra.RedirectTo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.open(challenge); err != nil {
		return nil, err
	}
	f.resolved[challenge] = true
	f.acceptedLogins = append(f.acceptedLogins, body)
	return &hydra.RedirectTo{RedirectTo: "http://hydra.test/oauth2/auth?login_verifier=" + challenge}, nil
}

func (f *fakeAdmin) RejectLoginRequest(_ context.Context, challenge string, body hydra.RejectRequest) (*hydra.RedirectTo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.open(challenge); err != nil {
		return nil, err
	}
	f.resolved[challenge] = true
	f.rejections = append(f.rejections, body)
	return &hydra.RedirectTo{RedirectTo: "http://client.test/callback?error=" + body.Error}, nil
}

func (f *fakeAdmin) GetConsentRequest(_ context.Context, challenge string) (*hydra.ConsentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.open(challenge); err != nil {
		return nil, err
	}
	req, ok := f.consents[challenge]
	if !ok {
		return nil, &hydra.APIError{Operation: "GetConsentRequest", StatusCode: 404, Name: "not_found"}
	}
	cp := *req
	return &cp, nil
}

func (f *fakeAdmin) AcceptConsentRequest(_ context.Context, challenge string, body hydra.AcceptConsentRequest) (*hydra.RedirectTo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.open(challenge); err != nil {
		return nil, err
	}
	f.resolved[challenge] = true
	f.acceptedConsents = append(f.acceptedConsents, body)
	return &hydra.RedirectTo{RedirectTo: "http://hydra.test/oauth2/auth?consent_verifier=" + challenge}, nil
}

func (f *fakeAdmin) RejectConsentRequest(_ context.Context, challenge string, body hydra.RejectRequest) (*hydra.RedirectTo, error) {
	return f.RejectLoginRequest(context.Background(), challenge, body)
}

var errUnreachable = apperrors.Wrapf(apperrors.ErrUpstream, "dial tcp: connection refused")
