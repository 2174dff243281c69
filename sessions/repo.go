package sessions

import (
	"context"
	"time"
)

// Repo persists sessions keyed by their opaque id. Get returns
// errors.ErrSessionNotFound for unknown or expired ids.
type Repo interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Upsert(ctx context.Context, session *Session, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
