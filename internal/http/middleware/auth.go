// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication backed by the identity
// provider's JWKS. On success the middleware provisions (or loads) the app
// account for the token subject and stashes its id under "userID" so
// downstream handlers can resolve the caller without touching auth concerns.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/catlinkdev/go-catcare-backend/internal/auth"
	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// ClaimsVerifier validates a raw bearer token and returns its claims.
type ClaimsVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserProvisioner resolves the app account for an identity-provider subject,
// creating the row on first sight.
type UserProvisioner interface {
	GetOrCreate(ctx context.Context, sub, email, name string) (*domain.User, error)
}

// BearerAuth authenticates requests with an Authorization: Bearer token.
//
// Behavior:
//   - Verifier nil (no user pool configured, local development): the request
//     passes through. If an X-User-Sub header is present, the account for
//     that subject is still provisioned so the rest of the stack behaves as
//     in production.
//   - Verifier set: a missing or invalid token is rejected with 401; a valid
//     token provisions the account and sets "userID" in the Gin context.
//
// The 401 body mirrors the handlers' error envelope without importing the
// handlers package (which depends on this one).
func BearerAuth(v ClaimsVerifier, users UserProvisioner) gin.HandlerFunc {
	reject := func(c *gin.Context, msg string) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"code":       "unauthorized",
			"message":    msg,
		})
	}

	provision := func(c *gin.Context, sub, email, name string) bool {
		if users == nil {
			return true
		}
		u, err := users.GetOrCreate(c.Request.Context(), sub, email, name)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "internal_error",
				"message":    "account lookup failed",
			})
			return false
		}
		c.Set("userID", u.ID)
		c.Set("userSub", sub)
		return true
	}

	return func(c *gin.Context) {
		if v == nil {
			if sub := strings.TrimSpace(c.GetHeader("X-User-Sub")); sub != "" {
				if !provision(c, sub, "", "") {
					return
				}
			}
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			reject(c, "missing bearer token")
			return
		}

		claims, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			reject(c, "invalid or expired token")
			return
		}
		if !provision(c, claims.Sub, claims.Email, claims.Name) {
			return
		}
		c.Next()
	}
}
