package middleware

import (
	"net/http"
	"strings"

	"dailydiet/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "token"
	// UserIDContextKey is where the guard stores the authenticated user id.
	UserIDContextKey = "user_id"
)

// Auth gates every protected route behind session token verification.
// Absent, blank, unverifiable, expired and wrong-shaped tokens all get the
// same 401 so callers learn nothing about why verification failed.
func Auth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || strings.TrimSpace(tokenString) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(UserIDContextKey, claims.UserID)
		c.Next()
	}
}
