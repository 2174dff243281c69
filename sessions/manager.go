package sessions

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
)

const (
	// DefaultCookieName is the cookie carrying the signed session id
	DefaultCookieName = "oauthapps_session"

	sessionIDBytes = 32
)

// CookieOptions controls how the session id cookie is issued.
type CookieOptions struct {
	Name   string
	Secret []byte
	Secure bool
	Domain string
	MaxAge time.Duration
}

// Manager binds sessions held in a Repo to browsers through a signed,
// HttpOnly, SameSite=Lax cookie.
type Manager struct {
	repo Repo
	opts CookieOptions
	now  func() time.Time
}

func NewManager(repo Repo, opts CookieOptions) *Manager {
	if opts.Name == "" {
		opts.Name = DefaultCookieName
	}
	return &Manager{repo: repo, opts: opts, now: time.Now}
}

// Load returns the session referenced by the request cookie. A missing,
// forged or expired cookie yields a fresh session that is not stored until Save.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	if id, ok := m.sessionIDFromRequest(r); ok {
		s, err := m.repo.Get(r.Context(), id)
		if err == nil {
			s.ID = id
			return s, nil
		}
		if !apperrors.Is(err, apperrors.ErrSessionNotFound) {
			return nil, fmt.Errorf("[sessions Load] failed to read session: %w", err)
		}
	}
	return m.newSession()
}

// Save persists the session and (re)issues its cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	if err := m.repo.Upsert(r.Context(), s, m.opts.MaxAge); err != nil {
		return fmt.Errorf("[sessions Save] failed to store session: %w", err)
	}
	m.setCookie(w, m.sign(s.ID), int(m.opts.MaxAge.Seconds()))
	return nil
}

// Destroy removes the session from the store and expires the cookie.
// Destroying an unknown or already destroyed session is not an error.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request, s *Session) error {
	defer m.setCookie(w, "", -1)
	if s == nil || s.ID == "" {
		return nil
	}
	if err := m.repo.Delete(r.Context(), s.ID); err != nil {
		return fmt.Errorf("[sessions Destroy] failed to delete session: %w", err)
	}
	s.Reset()
	return nil
}

// Renew moves the session to a fresh id and deletes the record stored under
// the old one, so a cookie issued before sign-in no longer resolves.
// The caller must Save the session afterwards.
func (m *Manager) Renew(ctx context.Context, s *Session) error {
	fresh, err := m.newSession()
	if err != nil {
		return err
	}
	if s.ID != "" {
		if err := m.repo.Delete(ctx, s.ID); err != nil {
			return fmt.Errorf("[sessions Renew] failed to delete previous session: %w", err)
		}
	}
	s.ID = fresh.ID
	return nil
}

func (m *Manager) newSession() (*Session, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("[sessions newSession] failed to generate session id: %w", err)
	}
	return &Session{
		ID:        base64.RawURLEncoding.EncodeToString(b),
		CreatedAt: m.now(),
	}, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.Name,
		Value:    value,
		Path:     "/",
		Domain:   m.opts.Domain,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (m *Manager) sessionIDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.opts.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	id, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok || id == "" {
		return "", false
	}
	expected := m.mac(id)
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(got, expected) {
		return "", false
	}
	return id, true
}

func (m *Manager) sign(id string) string {
	return id + "." + base64.RawURLEncoding.EncodeToString(m.mac(id))
}

func (m *Manager) mac(id string) []byte {
	h := hmac.New(sha256.New, m.opts.Secret)
	h.Write([]byte(id))
	return h.Sum(nil)
}
