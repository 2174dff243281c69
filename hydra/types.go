package hydra

// OAuth2Client is the part of the Hydra client registration shown on the consent page.
type OAuth2Client struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name,omitempty"`
	ClientURI  string `json:"client_uri,omitempty"`
	LogoURI    string `json:"logo_uri,omitempty"`
	PolicyURI  string `json:"policy_uri,omitempty"`
	TosURI     string `json:"tos_uri,omitempty"`
}

// DisplayName falls back to the client id when no name was registered.
func (c OAuth2Client) DisplayName() string {
	if c.ClientName != "" {
		return c.ClientName
	}
	return c.ClientID
}

// LoginRequest is an in-progress login challenge.
type LoginRequest struct {
	Challenge                    string       `json:"challenge"`
	Skip                         bool         `json:"skip"`
	Subject                      string       `json:"subject"`
	Client                       OAuth2Client `json:"client"`
	RequestURL                   string       `json:"request_url,omitempty"`
	RequestedScope               []string     `json:"requested_scope"`
	RequestedAccessTokenAudience []string     `json:"requested_access_token_audience,omitempty"`
	SessionID                    string       `json:"session_id,omitempty"`
}

// ConsentRequest is an in-progress consent challenge. Context carries whatever
// the login step attached when it accepted the login request.
type ConsentRequest struct {
	Challenge                    string         `json:"challenge"`
	Skip                         bool           `json:"skip"`
	Subject                      string         `json:"subject"`
	Client                       OAuth2Client   `json:"client"`
	RequestURL                   string         `json:"request_url,omitempty"`
	RequestedScope               []string       `json:"requested_scope"`
	RequestedAccessTokenAudience []string       `json:"requested_access_token_audience,omitempty"`
	Context                      map[string]any `json:"context,omitempty"`
	LoginChallenge               string         `json:"login_challenge,omitempty"`
	LoginSessionID               string         `json:"login_session_id,omitempty"`
}

// ContextString returns a string value stored in the consent context.
func (c *ConsentRequest) ContextString(key string) string {
	if c == nil || c.Context == nil {
		return ""
	}
	s, _ := c.Context[key].(string)
	return s
}

type AcceptLoginRequest struct {
	Subject     string         `json:"subject"`
	Remember    *bool          `json:"remember,omitempty"`
	RememberFor *int64         `json:"remember_for,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
	ACR         string         `json:"acr,omitempty"`
}

// ConsentSession holds the claims Hydra embeds into the issued tokens.
type ConsentSession struct {
	AccessToken map[string]any `json:"access_token,omitempty"`
	IDToken     map[string]any `json:"id_token,omitempty"`
}

type AcceptConsentRequest struct {
	GrantScope               []string        `json:"grant_scope"`
	GrantAccessTokenAudience []string        `json:"grant_access_token_audience,omitempty"`
	Remember                 *bool           `json:"remember,omitempty"`
	RememberFor              *int64          `json:"remember_for,omitempty"`
	Session                  *ConsentSession `json:"session,omitempty"`
}

// RejectRequest is used for both login and consent rejections.
type RejectRequest struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorHint        string `json:"error_hint,omitempty"`
	StatusCode       int    `json:"status_code,omitempty"`
}

// RedirectTo is returned by every accept and reject call.
type RedirectTo struct {
	RedirectTo string `json:"redirect_to"`
}
