package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-demo-apps/internal/config"
	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDefaults(t *testing.T) {
	t.Setenv("ENV", "DEV")
	t.Setenv("CLIENT_ID", "demo-client")
	t.Setenv("CLIENT_SECRET", "demo-secret")

	c := config.New(config.ClientApp)
	require.NoError(t, c.Validate())

	assert.Equal(t, ":4000", c.GetPort())
	assert.Equal(t, []string{"openid", "offline_access", "email"}, c.GetScopes())
	assert.Equal(t, "http://0.0.0.0:4444/oauth2/auth", c.GetAuthorizeURL())
	assert.Equal(t, "http://0.0.0.0:4444/oauth2/token", c.GetTokenURL())
	assert.Equal(t, "http://0.0.0.0:4000/callback", c.GetRedirectURL())
	assert.False(t, c.GetCookieSecure())
	assert.NotEmpty(t, c.GetCookieSecret())
	assert.Equal(t, config.SessionStoreMemory, c.GetSessionStore())
}

func TestLoginConsentDefaults(t *testing.T) {
	t.Setenv("ENV", "DEV")
	t.Setenv("HYDRA_ADMIN_URL", "http://0.0.0.0:4445/")

	c := config.New(config.LoginConsentApp)
	require.NoError(t, c.Validate())

	assert.Equal(t, ":3000", c.GetPort())
	assert.Equal(t, "http://0.0.0.0:4445", c.GetHydraAdminURL())
	assert.Equal(t, time.Hour, c.GetRememberFor())
	assert.Equal(t, 10, c.GetLoginRateLimit())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("COOKIE_SECRET", "")
	t.Setenv("CLIENT_ID", "")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_URL", "")

	err := config.New(config.ClientApp).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "COOKIE_SECRET")
	assert.Contains(t, err.Error(), "CLIENT_ID")
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestProductionCookieDefaults(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("COOKIE_SECRET", "s3cret")

	c := config.New(config.ClientApp)
	assert.True(t, c.GetCookieSecure())
	assert.Equal(t, "s3cret", c.GetCookieSecret())
}

func TestDurationParsing(t *testing.T) {
	t.Setenv("REMEMBER_FOR", "7200")
	t.Setenv("OAUTH_STATE_TTL", "90s")

	c := config.New(config.LoginConsentApp)
	assert.Equal(t, 2*time.Hour, c.GetRememberFor())
	assert.Equal(t, 90*time.Second, c.GetStateTTL())
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example")

	origins := config.New(config.ClientApp).GetAllowedOrigins()
	assert.True(t, origins.IsAllowedOrigin("http://a.example"))
	assert.True(t, origins.IsAllowedOrigin("http://b.example"))
	assert.False(t, origins.IsAllowedOrigin("http://0.0.0.0"))
}

func TestIsDevIgnoresCase(t *testing.T) {
	t.Setenv("ENV", "dev")
	assert.True(t, config.New(config.ClientApp).IsDev())

	t.Setenv("ENV", "PROD")
	assert.False(t, config.New(config.ClientApp).IsDev())
}
