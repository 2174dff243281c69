package sessions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-demo-apps/sessions"
	"github.com/jrsteele09/go-oauth-demo-apps/sessions/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*sessions.Manager, *memory.Repo) {
	t.Helper()
	repo := memory.New(time.Hour, time.Minute)
	return sessions.NewManager(repo, sessions.CookieOptions{
		Secret: []byte("test-secret"),
		MaxAge: time.Hour,
	}), repo
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessions.DefaultCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", sessions.DefaultCookieName)
	return nil
}

func TestLoadWithoutCookieReturnsFreshSession(t *testing.T) {
	m, _ := newManager(t)

	s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.Authenticated())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	m, _ := newManager(t)

	s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	s.AccessToken = "access-1"

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), s))

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	loaded, err := m.Load(req)
	require.NoError(t, err)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, "access-1", loaded.AccessToken)
}

func TestForgedCookieIsIgnored(t *testing.T) {
	m, repo := newManager(t)

	stored := &sessions.Session{ID: "victim", AccessToken: "secret-token"}
	require.NoError(t, repo.Upsert(context.Background(), stored, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessions.DefaultCookieName, Value: "victim.bm90LWEtc2lnbmF0dXJl"})
	s, err := m.Load(req)
	require.NoError(t, err)
	assert.NotEqual(t, "victim", s.ID)
	assert.False(t, s.Authenticated())
}

func TestCookieSignedWithOtherSecretIsIgnored(t *testing.T) {
	m, _ := newManager(t)
	other := sessions.NewManager(memory.New(time.Hour, time.Minute), sessions.CookieOptions{Secret: []byte("other"), MaxAge: time.Hour})

	s, err := other.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, other.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), s))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, rec))
	loaded, err := m.Load(req)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, loaded.ID)
}

func TestDestroyIsIdempotent(t *testing.T) {
	m, repo := newManager(t)

	s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	s.AccessToken = "access-1"
	require.NoError(t, m.Save(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), s))
	id := s.ID

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		require.NoError(t, m.Destroy(rec, httptest.NewRequest(http.MethodGet, "/", nil), s))
		assert.Less(t, sessionCookie(t, rec).MaxAge, 0)
		assert.False(t, s.Authenticated())
	}

	_, err = repo.Get(context.Background(), id)
	assert.Error(t, err)
}

func TestSessionIDHasEnoughEntropy(t *testing.T) {
	m, _ := newManager(t)

	s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	// 32 random bytes, base64url without padding
	assert.Len(t, s.ID, 43)
	assert.False(t, strings.Contains(s.ID, "."))
}

func TestRenewIssuesNewIDAndDropsOldRecord(t *testing.T) {
	m, repo := newManager(t)
	ctx := context.Background()

	s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), s))
	oldCookie := sessionCookie(t, rec)
	oldID := s.ID

	s.AccessToken = "access-1"
	require.NoError(t, m.Renew(ctx, s))
	assert.NotEqual(t, oldID, s.ID)

	rec = httptest.NewRecorder()
	require.NoError(t, m.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), s))
	assert.NotEqual(t, oldCookie.Value, sessionCookie(t, rec).Value)

	_, err = repo.Get(ctx, oldID)
	assert.Error(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(oldCookie)
	loaded, err := m.Load(req)
	require.NoError(t, err)
	assert.NotEqual(t, oldID, loaded.ID)
	assert.False(t, loaded.Authenticated())
}
