package config

import (
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/jrsteele09/go-oauth-demo-apps/oauthmodel"
)

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetClientID() string {
	return GetEnv("CLIENT_ID", "")
}

func (OAuth) GetClientSecret() string {
	return GetEnv("CLIENT_SECRET", "")
}

// GetIssuerURL enables OIDC discovery when set; the static endpoints below are
// used otherwise.
func (OAuth) GetIssuerURL() string {
	return GetEnv("OAUTH_ISSUER_URL", "")
}

func (OAuth) GetTokenHost() string {
	return strings.TrimRight(GetEnv("OAUTH_TOKEN_HOST", "http://0.0.0.0:4444"), "/")
}

func (o OAuth) GetAuthorizeURL() string {
	return o.GetTokenHost() + GetEnv("OAUTH_AUTHORIZE_PATH", "/oauth2/auth")
}

func (o OAuth) GetTokenURL() string {
	return o.GetTokenHost() + GetEnv("OAUTH_TOKEN_PATH", "/oauth2/token")
}

// GetRedirectURL must match the redirect URI registered for the client exactly.
func (OAuth) GetRedirectURL() string {
	return GetEnv("OAUTH_REDIRECT_URL", "http://0.0.0.0:4000/callback")
}

func (OAuth) GetScopes() []string {
	scopes := oauthmodel.ParseScope(GetEnv("OAUTH_SCOPES", ""))
	if len(scopes) == 0 {
		return []string{oidc.ScopeOpenID, oidc.ScopeOfflineAccess, "email"}
	}
	return scopes
}

func (OAuth) GetUsePKCE() bool {
	return GetBoolEnv("OAUTH_USE_PKCE", false)
}

func (OAuth) GetStateTTL() time.Duration {
	return GetDurationEnv("OAUTH_STATE_TTL", 10*time.Minute)
}
