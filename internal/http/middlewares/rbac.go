package middlewares

import (
	"net/http"

	"github.com/ftmlabs/directory-api/internal/identity"
	"github.com/gin-gonic/gin"
)

// RequireRole passes callers whose role is in the allowed set. Membership is
// a real set test so adding a role to a route is a one-word change.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))

	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		actor, ok := identity.ActorFrom(c.Request.Context())

		if !ok {
			abortError(c, http.StatusUnauthorized, "Missing identity context")
			return
		}

		if _, ok := allowed[actor.Role]; !ok {
			abortError(c, http.StatusUnauthorized, "You cannot access this ressource")
			return
		}

		c.Next()
	}
}
