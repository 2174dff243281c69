package hydra_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-demo-apps/hydra"
	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"github.com/jrsteele09/go-oauth-demo-apps/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *hydra.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := hydra.NewClient(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestGetLoginRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/admin/oauth2/auth/requests/login", r.URL.Path)
		assert.Equal(t, "abc", r.URL.Query().Get("login_challenge"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"challenge":       "abc",
			"skip":            true,
			"subject":         "1",
			"requested_scope": []string{"openid", "email"},
			"client":          map[string]any{"client_id": "demo", "client_name": "Demo App"},
		})
	})

	req, err := c.GetLoginRequest(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, req.Skip)
	assert.Equal(t, "1", req.Subject)
	assert.Equal(t, []string{"openid", "email"}, req.RequestedScope)
	assert.Equal(t, "Demo App", req.Client.DisplayName())
}

func TestAcceptLoginRequestSendsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/oauth2/auth/requests/login/accept", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1", body["subject"])
		assert.Equal(t, true, body["remember"])
		assert.EqualValues(t, 3600, body["remember_for"])
		assert.Equal(t, map[string]any{"email": "user@example.com"}, body["context"])

		_ = json.NewEncoder(w).Encode(hydra.RedirectTo{RedirectTo: "http://hydra/next"})
	})

	out, err := c.AcceptLoginRequest(context.Background(), "abc", hydra.AcceptLoginRequest{
		Subject:     "1",
		Remember:    utils.Ptr(true),
		RememberFor: utils.Ptr(int64(3600)),
		Context:     map[string]any{"email": "user@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "http://hydra/next", out.RedirectTo)
}

func TestRejectConsentRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/oauth2/auth/requests/consent/reject", r.URL.Path)
		assert.Equal(t, "xyz", r.URL.Query().Get("consent_challenge"))
		var body hydra.RejectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "access_denied", body.Error)
		_ = json.NewEncoder(w).Encode(hydra.RedirectTo{RedirectTo: "http://client/callback?error=access_denied"})
	})

	out, err := c.RejectConsentRequest(context.Background(), "xyz", hydra.RejectRequest{Error: "access_denied"})
	require.NoError(t, err)
	assert.Contains(t, out.RedirectTo, "access_denied")
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{"not found", http.StatusNotFound, apperrors.ErrChallengeNotFound},
		{"already handled", http.StatusGone, apperrors.ErrChallengeExpired},
		{"conflict", http.StatusConflict, apperrors.ErrChallengeExpired},
		{"server error", http.StatusInternalServerError, apperrors.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "boom", "error_description": "details"})
			})

			_, err := c.GetConsentRequest(context.Background(), "xyz")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrUpstream)
			assert.ErrorIs(t, err, tt.target)

			var apiErr *hydra.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "boom", apiErr.Name)
		})
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.GetLoginRequest(context.Background(), "abc")
	var apiErr *hydra.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Name)
}

func TestUnreachableIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := hydra.NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.GetLoginRequest(context.Background(), "abc")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestMissingChallenge(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.GetLoginRequest(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrMissingParameter)
}

func TestAcceptWithoutRedirectIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.AcceptConsentRequest(context.Background(), "xyz", hydra.AcceptConsentRequest{GrantScope: []string{"openid"}})
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	_, err := hydra.NewClient("localhost:4445")
	assert.Error(t, err)
}

func TestWithTimeoutLeavesCallerClientUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"challenge": "abc"})
	}))
	t.Cleanup(srv.Close)
	shared := srv.Client()

	c, err := hydra.NewClient(srv.URL, hydra.WithTimeout(time.Second), hydra.WithHTTPClient(shared))
	require.NoError(t, err)

	_, err = c.GetLoginRequest(context.Background(), "abc")
	require.NoError(t, err)
	assert.Zero(t, shared.Timeout)
}

func TestWithTimeoutAndNilHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"challenge": "abc"})
	}))
	t.Cleanup(srv.Close)

	var c *hydra.Client
	var err error
	require.NotPanics(t, func() {
		c, err = hydra.NewClient(srv.URL, hydra.WithHTTPClient(nil), hydra.WithTimeout(time.Second))
	})
	require.NoError(t, err)

	req, err := c.GetLoginRequest(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", req.Challenge)
}

func TestWithTimeoutBoundsSlowCalls(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c, err := hydra.NewClient(srv.URL, hydra.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.GetLoginRequest(context.Background(), "abc")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
