package relyingparty

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-oauth-demo-apps/oauthmodel"
)

// DecodeIDTokenClaims reads the display claims from an ID token WITHOUT
// verifying its signature. The result must only ever be shown to the user who
// already holds the token.
func DecodeIDTokenClaims(rawIDToken string) (*oauthmodel.IDTokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawIDToken, claims); err != nil {
		return nil, fmt.Errorf("[relyingparty DecodeIDTokenClaims] %w", err)
	}

	view := &oauthmodel.IDTokenClaims{}
	view.Subject, _ = claims.GetSubject()
	view.Issuer, _ = claims.GetIssuer()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		view.ExpiresAt = exp.Time
	}
	view.Email, _ = claims["email"].(string)
	return view, nil
}
