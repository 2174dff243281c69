package hydra

import "context"

// AdminAPI is the subset of the Hydra admin API used to resolve login and
// consent challenges. Each challenge may only be accepted or rejected once.
type AdminAPI interface {
	GetLoginRequest(ctx context.Context, challenge string) (*LoginRequest, error)
	AcceptLoginRequest(ctx context.Context, challenge string, body AcceptLoginRequest) (*RedirectTo, error)
	RejectLoginRequest(ctx context.Context, challenge string, body RejectRequest) (*RedirectTo, error)

	GetConsentRequest(ctx context.Context, challenge string) (*ConsentRequest, error)
	AcceptConsentRequest(ctx context.Context, challenge string, body AcceptConsentRequest) (*RedirectTo, error)
	RejectConsentRequest(ctx context.Context, challenge string, body RejectRequest) (*RedirectTo, error)
}
