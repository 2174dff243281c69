package config

import "time"

const (
	cookieSecretVar     = "COOKIE_SECRET"
	defaultCookieSecret = "change-me-in-production"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Security struct {
	dev bool
}

var _ SecurityConfig = Security{}

// GetCookieSecret only falls back to the placeholder secret in DEV; Validate
// rejects an empty secret everywhere else.
func (s Security) GetCookieSecret() string {
	if s.dev {
		return GetEnv(cookieSecretVar, defaultCookieSecret)
	}
	return GetEnv(cookieSecretVar, "")
}

func (s Security) GetCookieSecure() bool {
	return GetBoolEnv("COOKIE_SECURE", !s.dev)
}

func (Security) GetCookieDomain() string {
	return GetEnv("COOKIE_DOMAIN", "")
}

func (Security) GetSessionMaxAge() time.Duration {
	return GetDurationEnv("SESSION_MAX_AGE", 24*time.Hour)
}

func (Security) GetSessionStore() string {
	return GetEnv("SESSION_STORE", SessionStoreMemory)
}

func (Security) GetRedisURL() string {
	return GetEnv("REDIS_URL", "")
}

// GetLoginRateLimit is the number of login submissions allowed per IP per minute.
func (Security) GetLoginRateLimit() int {
	return GetIntEnv("LOGIN_RATE_LIMIT", 10)
}
