package relyingparty

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-oauth-demo-apps/internal/config"
	"golang.org/x/oauth2"
)

// TokenExchanger is the part of *oauth2.Config the flow controller needs.
type TokenExchanger interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

var _ TokenExchanger = (*oauth2.Config)(nil)

// NewOAuth2Config builds the client's oauth2 configuration. When an issuer URL
// is configured the endpoints come from OIDC discovery, otherwise from the
// token host and the configured paths.
func NewOAuth2Config(ctx context.Context, c config.OAuthConfig, client *http.Client) (*oauth2.Config, error) {
	endpoint := oauth2.Endpoint{
		AuthURL:   c.GetAuthorizeURL(),
		TokenURL:  c.GetTokenURL(),
		AuthStyle: oauth2.AuthStyleInHeader,
	}

	if issuer := c.GetIssuerURL(); issuer != "" {
		if client != nil {
			ctx = oidc.ClientContext(ctx, client)
		}
		provider, err := oidc.NewProvider(ctx, issuer)
		if err != nil {
			return nil, fmt.Errorf("[relyingparty NewOAuth2Config] discovery failed for %s: %w", issuer, err)
		}
		endpoint = provider.Endpoint()
	}

	return &oauth2.Config{
		ClientID:     c.GetClientID(),
		ClientSecret: c.GetClientSecret(),
		Endpoint:     endpoint,
		RedirectURL:  c.GetRedirectURL(),
		Scopes:       c.GetScopes(),
	}, nil
}
