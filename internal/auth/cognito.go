// Package auth verifies access tokens issued by the Amazon Cognito user pool
// and extracts the caller identity the rest of the application keys on.
//
// Verification follows the standard Cognito contract: RS256 signatures
// checked against the pool's JWKS (fetched and cached by keyfunc), issuer
// pinned to the pool URL, and the client id checked against either the aud
// claim (id tokens) or the client_id claim (access tokens).
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified identity attached to a request.
type Claims struct {
	Sub   string
	Email string
	Name  string
}

// ErrInvalidToken is returned for any token that fails verification. The
// underlying cause is deliberately not exposed to callers (or clients).
var ErrInvalidToken = errors.New("invalid token")

// Verifier validates Cognito-issued JWTs.
type Verifier struct {
	keys     jwt.Keyfunc
	issuer   string
	clientID string
}

// NewVerifier builds a Verifier for the given user pool. It fetches the
// pool's JWKS once up front and keeps it refreshed in the background.
func NewVerifier(ctx context.Context, region, userPoolID, clientID string) (*Verifier, error) {
	issuer := fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{issuer + "/.well-known/jwks.json"})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	return &Verifier{keys: jwks.Keyfunc, issuer: issuer, clientID: clientID}, nil
}

// newVerifierWithKeyfunc is the test seam: same validation, caller-supplied keys.
func newVerifierWithKeyfunc(keys jwt.Keyfunc, issuer, clientID string) *Verifier {
	return &Verifier{keys: keys, issuer: issuer, clientID: clientID}
}

// Verify parses and validates a raw bearer token and returns the caller
// identity. Any failure (signature, expiry, issuer, audience) surfaces as
// ErrInvalidToken.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, v.keys,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if !v.audienceOK(mc) {
		return nil, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return nil, ErrInvalidToken
	}
	email, _ := mc["email"].(string)
	name, _ := mc["name"].(string)
	return &Claims{Sub: sub, Email: email, Name: name}, nil
}

// audienceOK accepts either token flavor Cognito issues: id tokens carry the
// app client in aud, access tokens in client_id.
func (v *Verifier) audienceOK(mc jwt.MapClaims) bool {
	if v.clientID == "" {
		return true
	}
	if cid, _ := mc["client_id"].(string); cid == v.clientID {
		return true
	}
	aud, err := mc.GetAudience()
	if err != nil {
		return false
	}
	for _, a := range aud {
		if a == v.clientID {
			return true
		}
	}
	return false
}
