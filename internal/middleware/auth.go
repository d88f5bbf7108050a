package middleware

import (
	"net/http"
	"strings"

	jwtsvc "tablebook/internal/pkg/jwt"
	"tablebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// RequireAuth rejects requests without a valid session token and stores the
// owner id in the context.
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid Authorization header")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("owner_id", claims.OwnerID)
		c.Set("authenticated", true)
		c.Next()
	}
}

// OptionalAuth resolves the session when a valid token is present but lets
// anonymous requests through. Handlers behind it read the "authenticated"
// flag and fall back to device-local behavior when it is false. An invalid
// token counts as anonymous, not rejected — an expired session must not
// break local-cache paths.
func OptionalAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("authenticated", false)

		if token := bearerToken(c); token != "" {
			if claims, err := jwt.ValidateToken(token); err == nil {
				c.Set("owner_id", claims.OwnerID)
				c.Set("authenticated", true)
			}
		}
		c.Next()
	}
}
