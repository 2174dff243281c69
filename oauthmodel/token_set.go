package oauthmodel

import "time"

// TokenSet is the view of the tokens a client session holds after a
// successful authorization code exchange.
type TokenSet struct {
	// AccessToken as issued by the token endpoint, untouched.
	AccessToken string `json:"access_token"`

	// RefreshToken is only present when offline_access was granted.
	// Never serialised back to the browser.
	RefreshToken string `json:"-"`

	// IDToken is present when the openid scope was granted.
	IDToken string `json:"id_token,omitempty"`

	TokenType string    `json:"token_type,omitempty"`
	Expiry    time.Time `json:"expiry,omitempty"`

	// Claims decoded from IDToken for display purposes only.
	Claims *IDTokenClaims `json:"claims,omitempty"`
}

// IDTokenClaims is the subset of identity claims the client app displays.
type IDTokenClaims struct {
	Subject   string    `json:"sub,omitempty"`
	Email     string    `json:"email,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}
