package utils

import (
	"CloudVault/model"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "SESSION"

// SessionResolver resolves a session token to the user snapshot stored
// at login.
type SessionResolver interface {
	Get(ctx context.Context, token string) (*model.User, error)
}

// SessionAuthMiddleware rejects requests without a valid session cookie
// and exposes the resolved user to downstream handlers.
func SessionAuthMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User session not found"})
			c.Abort()
			return
		}
		user, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User session not found"})
			c.Abort()
			return
		}
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("username", user.UserName)
		c.Next()
	}
}
