package auth

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"weatherapp/server/internal/api/response"
)

// userIDKey is the gin context key the middleware stores the resolved user
// id under. Handlers read it through UserID and never touch the token again.
const userIDKey = "auth_user_id"

// Middleware gates protected routes. It extracts the bearer token from the
// Authorization header, verifies it and attaches the resolved user id to the
// request context. Both a missing and an invalid token answer 401 before any
// handler runs.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortUnauthorized(c, "no token provided")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.AbortUnauthorized(c, "no token provided")
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			slog.Debug("token verification failed", "path", c.FullPath())
			response.AbortUnauthorized(c, "failed to authenticate token")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id the middleware stored on the
// context. The second return is false when the route was not gated.
func UserID(c *gin.Context) (string, bool) {
	userID, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}
