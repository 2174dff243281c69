package config

import (
	"fmt"
	"net/url"

	"github.com/hashicorp/go-multierror"
	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
)

// Validate reports every missing or malformed setting for the configured app at once.
func (c mainConfig) Validate() error {
	var result *multierror.Error

	if c.GetCookieSecret() == "" {
		result = multierror.Append(result, fmt.Errorf("%w: %s must be set outside DEV", apperrors.ErrInvalidConfig, cookieSecretVar))
	}

	switch c.GetApp() {
	case ClientApp:
		if c.GetClientID() == "" || c.GetClientSecret() == "" {
			result = multierror.Append(result, fmt.Errorf("%w: CLIENT_ID and CLIENT_SECRET environment variables must be set", apperrors.ErrInvalidConfig))
		}
		if err := validateURL("OAUTH_REDIRECT_URL", c.GetRedirectURL()); err != nil {
			result = multierror.Append(result, err)
		}
		switch c.GetSessionStore() {
		case SessionStoreMemory:
		case SessionStoreRedis:
			if c.GetRedisURL() == "" {
				result = multierror.Append(result, fmt.Errorf("%w: REDIS_URL must be set when SESSION_STORE=redis", apperrors.ErrInvalidConfig))
			}
		default:
			result = multierror.Append(result, fmt.Errorf("%w: unknown SESSION_STORE %q", apperrors.ErrInvalidConfig, c.GetSessionStore()))
		}
	case LoginConsentApp:
		if c.GetHydraAdminURL() == "" {
			result = multierror.Append(result, fmt.Errorf("%w: HYDRA_ADMIN_URL environment variable must be set", apperrors.ErrInvalidConfig))
		} else if err := validateURL("HYDRA_ADMIN_URL", c.GetHydraAdminURL()); err != nil {
			result = multierror.Append(result, err)
		}
	default:
		result = multierror.Append(result, fmt.Errorf("%w: unknown app %q", apperrors.ErrInvalidConfig, c.GetApp()))
	}

	return result.ErrorOrNil()
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s is not an absolute URL: %q", apperrors.ErrInvalidConfig, name, raw)
	}
	return nil
}
