package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/ftmlabs/directory-api/internal/auth"
	"github.com/ftmlabs/directory-api/internal/identity"
	"github.com/gin-gonic/gin"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) bool
}

type AuthMiddleware struct {
	jwt     TokenVerifier
	revoked RevocationChecker
}

func NewAuthMiddleware(jwt TokenVerifier, revoked RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, revoked: revoked}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			abortError(c, http.StatusUnauthorized, "Missing or invalid access token")
			return
		}

		claims, err := m.jwt.VerifyToken(raw)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "Invalid or expired access token")
			return
		}

		if m.revoked != nil && m.revoked.IsRevoked(c.Request.Context(), claims.JTI) {
			abortError(c, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		// Identity rides on the request context so anything downstream of the
		// handler sees the same caller, not a shared package variable.
		c.Set(CtxClaims, claims)
		c.Request = c.Request.WithContext(identity.WithActor(c.Request.Context(), identity.Actor{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}))

		c.Next()
	}
}

// ClaimsFromContext lets handlers read the verified token without knowing
// the magic key.
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"message": msg,
		"stack":   stackMask,
	})
}
