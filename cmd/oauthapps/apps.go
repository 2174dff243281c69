package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/jrsteele09/go-oauth-demo-apps/challenge"
	"github.com/jrsteele09/go-oauth-demo-apps/hydra"
	"github.com/jrsteele09/go-oauth-demo-apps/internal/config"
	"github.com/jrsteele09/go-oauth-demo-apps/relyingparty"
	"github.com/jrsteele09/go-oauth-demo-apps/server"
	"github.com/jrsteele09/go-oauth-demo-apps/sessions"
	"github.com/jrsteele09/go-oauth-demo-apps/sessions/memory"
	"github.com/jrsteele09/go-oauth-demo-apps/sessions/redisrepo"
	"github.com/jrsteele09/go-oauth-demo-apps/users"
	fakeuserrepo "github.com/jrsteele09/go-oauth-demo-apps/users/repofake"
	"github.com/rs/zerolog/log"
)

const sessionCleanupInterval = 10 * time.Minute

// newHandler wires the configured app. The returned cleanup releases any
// connections opened on the way.
func newHandler(ctx context.Context, c config.Config) (http.Handler, func(), error) {
	switch c.GetApp() {
	case config.ClientApp:
		return newClientApp(ctx, c)
	case config.LoginConsentApp:
		h, err := newLoginConsentApp(c)
		return h, func() {}, err
	default:
		return nil, nil, fmt.Errorf("unknown app %q", c.GetApp())
	}
}

func newClientApp(ctx context.Context, c config.Config) (http.Handler, func(), error) {
	httpClient := cleanhttp.DefaultPooledClient()

	oauthConfig, err := relyingparty.NewOAuth2Config(ctx, c, httpClient)
	if err != nil {
		return nil, nil, err
	}
	flow := relyingparty.NewController(oauthConfig, relyingparty.Options{
		Scopes:     c.GetScopes(),
		UsePKCE:    c.GetUsePKCE(),
		StateTTL:   c.GetStateTTL(),
		HTTPClient: httpClient,
	})

	repo, cleanup, err := newSessionRepo(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	sm := sessions.NewManager(repo, sessions.CookieOptions{
		Secret: []byte(c.GetCookieSecret()),
		Secure: c.GetCookieSecure(),
		Domain: c.GetCookieDomain(),
		MaxAge: c.GetSessionMaxAge(),
	})

	log.Info().
		Str("authorize_url", oauthConfig.Endpoint.AuthURL).
		Str("redirect_url", oauthConfig.RedirectURL).
		Strs("scopes", oauthConfig.Scopes).
		Bool("pkce", c.GetUsePKCE()).
		Str("session_store", c.GetSessionStore()).
		Msg("Client app configured")

	return server.NewClientApp(c, sm, flow), cleanup, nil
}

func newSessionRepo(ctx context.Context, c config.Config) (sessions.Repo, func(), error) {
	if c.GetSessionStore() != config.SessionStoreRedis {
		return memory.New(c.GetSessionMaxAge(), sessionCleanupInterval), func() {}, nil
	}

	client, err := redisrepo.NewClient(ctx, c.GetRedisURL())
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Err(err).Msg("Failed to close redis client")
		}
	}
	return redisrepo.New(client), cleanup, nil
}

func newLoginConsentApp(c config.Config) (http.Handler, error) {
	admin, err := hydra.NewClient(c.GetHydraAdminURL(), hydra.WithTimeout(c.GetHydraAdminTimeout()))
	if err != nil {
		return nil, err
	}

	entries := users.DemoDirectory
	if path := c.GetUsersFile(); path != "" {
		if entries, err = users.LoadDirectoryFile(path); err != nil {
			return nil, err
		}
	} else {
		log.Warn().Msg("USERS_FILE not set, using the built-in demo users")
	}
	userRepo := fakeuserrepo.NewFakeUserRepo()
	if err := users.Seed(userRepo, entries); err != nil {
		return nil, err
	}

	log.Info().
		Str("hydra_admin_url", c.GetHydraAdminURL()).
		Int("users", len(entries)).
		Dur("remember_for", c.GetRememberFor()).
		Msg("Login & consent app configured")

	return server.NewLoginConsentApp(c, challenge.NewService(admin, userRepo, c.GetRememberFor())), nil
}
