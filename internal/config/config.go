package config

import "time"

// App identifies which of the two demo applications a configuration serves.
type App string

const (
	ClientApp       App = "client"
	LoginConsentApp App = "login-consent"
)

type Config interface {
	EnvConfig
	CorsConfig
	OAuthConfig
	HydraConfig
	SecurityConfig
	Validate() error
}

type EnvConfig interface {
	GetApp() App
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsDev() bool
	GetLogLevel() string
	GetMetricsEnabled() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetIssuerURL() string
	GetTokenHost() string
	GetAuthorizeURL() string
	GetTokenURL() string
	GetRedirectURL() string
	GetScopes() []string
	GetUsePKCE() bool
	GetStateTTL() time.Duration
}

type HydraConfig interface {
	GetHydraAdminURL() string
	GetHydraAdminTimeout() time.Duration
	GetRememberFor() time.Duration
	GetUsersFile() string
}

type SecurityConfig interface {
	GetCookieSecret() string
	GetCookieSecure() bool
	GetCookieDomain() string
	GetSessionMaxAge() time.Duration
	GetSessionStore() string
	GetRedisURL() string
	GetLoginRateLimit() int
}

type mainConfig struct {
	EnvVars
	Cors
	OAuth
	Hydra
	Security
}

// New returns the environment backed configuration for app.
func New(app App) Config {
	env := EnvVars{app: app}
	return mainConfig{
		EnvVars:  env,
		OAuth:    OAuth{},
		Hydra:    Hydra{},
		Security: Security{dev: env.IsDev()},
	}
}
