package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"github.com/jrsteele09/go-oauth-demo-apps/sessions"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "oauthapps:session:"

var _ sessions.Repo = (*Repo)(nil)

// Repo stores sessions as JSON documents in Redis so several client app
// instances can share browser sessions.
type Repo struct {
	client *redis.Client
}

// NewClient parses a redis:// URL and checks the server is reachable.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func New(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Get(ctx context.Context, sessionID string) (*sessions.Session, error) {
	b, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("[redisrepo Get] %w", err)
	}
	var s sessions.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("[redisrepo Get] corrupt session %s: %w", sessionID, err)
	}
	s.ID = sessionID
	return &s, nil
}

// Upsert writes the session with SET ... EX ttl; last writer wins.
func (r *Repo) Upsert(ctx context.Context, session *sessions.Session, ttl time.Duration) error {
	if session == nil || session.ID == "" {
		return apperrors.Wrapf(apperrors.ErrMissingParameter, "[redisrepo Upsert] session id")
	}
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("[redisrepo Upsert] %w", err)
	}
	return r.client.Set(ctx, sessionKeyPrefix+session.ID, b, ttl).Err()
}

func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
