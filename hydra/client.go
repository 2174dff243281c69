package hydra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	apperrors "github.com/jrsteele09/go-oauth-demo-apps/internal/errors"
	"github.com/jrsteele09/go-oauth-demo-apps/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	loginRequestPath   = "/admin/oauth2/auth/requests/login"
	consentRequestPath = "/admin/oauth2/auth/requests/consent"

	loginChallengeParam   = "login_challenge"
	consentChallengeParam = "consent_challenge"

	maxErrorBody = 64 << 10
)

var _ AdminAPI = (*Client)(nil)

// Client talks to the Hydra admin API over HTTP. It is safe for concurrent
// use and is meant to be created once per process.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the pooled cleanhttp client. A nil client keeps the default.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout bounds every admin call; zero keeps the client's own timeout.
// The caller's http.Client is never modified.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.timeout = d
	}
}

func NewClient(adminURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(adminURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("[hydra NewClient] invalid admin url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[hydra NewClient] admin url must be absolute: %q", adminURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: cleanhttp.DefaultPooledClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = cleanhttp.DefaultPooledClient()
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

func (c *Client) GetLoginRequest(ctx context.Context, challenge string) (*LoginRequest, error) {
	var out LoginRequest
	if err := c.do(ctx, "getLoginRequest", http.MethodGet, loginRequestPath, loginChallengeParam, challenge, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptLoginRequest(ctx context.Context, challenge string, body AcceptLoginRequest) (*RedirectTo, error) {
	return c.redirect(ctx, "acceptLoginRequest", loginRequestPath+"/accept", loginChallengeParam, challenge, body)
}

func (c *Client) RejectLoginRequest(ctx context.Context, challenge string, body RejectRequest) (*RedirectTo, error) {
	return c.redirect(ctx, "rejectLoginRequest", loginRequestPath+"/reject", loginChallengeParam, challenge, body)
}

func (c *Client) GetConsentRequest(ctx context.Context, challenge string) (*ConsentRequest, error) {
	var out ConsentRequest
	if err := c.do(ctx, "getConsentRequest", http.MethodGet, consentRequestPath, consentChallengeParam, challenge, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptConsentRequest(ctx context.Context, challenge string, body AcceptConsentRequest) (*RedirectTo, error) {
	return c.redirect(ctx, "acceptConsentRequest", consentRequestPath+"/accept", consentChallengeParam, challenge, body)
}

func (c *Client) RejectConsentRequest(ctx context.Context, challenge string, body RejectRequest) (*RedirectTo, error) {
	return c.redirect(ctx, "rejectConsentRequest", consentRequestPath+"/reject", consentChallengeParam, challenge, body)
}

func (c *Client) redirect(ctx context.Context, op, path, param, challenge string, body any) (*RedirectTo, error) {
	var out RedirectTo
	if err := c.do(ctx, op, http.MethodPut, path, param, challenge, body, &out); err != nil {
		return nil, err
	}
	if out.RedirectTo == "" {
		return nil, fmt.Errorf("%w: hydra %s: response has no redirect_to", apperrors.ErrUpstream, op)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, op, method, path, param, challenge string, body, out any) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveAdminRequest(op, start, err) }()

	if challenge == "" {
		return fmt.Errorf("[hydra %s] %w: %s", op, apperrors.ErrMissingParameter, param)
	}

	u := *c.baseURL
	u.Path += path
	u.RawQuery = url.Values{param: []string{challenge}}.Encode()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[hydra %s] encode body: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("[hydra %s] build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: hydra %s: %w", apperrors.ErrUpstream, op, err)
	}
	defer resp.Body.Close()

	log.Debug().Str("operation", op).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("hydra admin call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Operation: op, StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if jsonErr := json.Unmarshal(raw, apiErr); jsonErr != nil || apiErr.Name == "" {
			apiErr.Name = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: hydra %s: decode response: %w", apperrors.ErrUpstream, op, err)
	}
	return nil
}
