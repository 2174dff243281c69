package memory

import (
	"context"
	"time"

	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"github.com/jrsteele09/go-oauth-demo-apps/sessions"
	gocache "github.com/patrickmn/go-cache"
)

var _ sessions.Repo = (*Repo)(nil)

// Repo is an in-process session store; entries expire with their ttl.
type Repo struct {
	c *gocache.Cache
}

// New creates a repo whose janitor sweeps expired sessions every cleanupInterval.
func New(defaultTTL, cleanupInterval time.Duration) *Repo {
	return &Repo{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (r *Repo) Get(_ context.Context, sessionID string) (*sessions.Session, error) {
	v, ok := r.c.Get(sessionID)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	s, ok := v.(sessions.Session)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return &s, nil
}

// Upsert stores a copy of the session so callers can't mutate stored state.
func (r *Repo) Upsert(_ context.Context, session *sessions.Session, ttl time.Duration) error {
	if session == nil || session.ID == "" {
		return apperrors.Wrapf(apperrors.ErrMissingParameter, "[memory Upsert] session id")
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	r.c.Set(session.ID, *session, ttl)
	return nil
}

func (r *Repo) Delete(_ context.Context, sessionID string) error {
	r.c.Delete(sessionID)
	return nil
}
