package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sudhamsh22/voyagefix/internal/app/domain/auth"
	"github.com/Sudhamsh22/voyagefix/internal/app/domain/session"
)

// extractToken pulls the access token from the Authorization header, falling
// back to the persisted session bundle for browser requests.
func extractToken(c *gin.Context, store session.Store) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if store != nil {
		if bundle, err := store.Load(c); err == nil {
			return bundle.Token
		}
	}
	return ""
}

// OptionalAuth resolves the caller's identity when a valid token is present
// and stays silent otherwise. Handlers behind it must treat a missing userID
// as anonymous.
func OptionalAuth(authService auth.AuthService, store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, store)
		if token == "" {
			c.Next()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			logger.Debug("Ignoring invalid bearer token")
			c.Next()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth(authService auth.AuthService, store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, store)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			logger.Debug("Rejected invalid bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// UserID reads the authenticated user id set by the auth middleware.
func UserID(c *gin.Context) (string, error) {
	userID := c.GetString("userID")
	if userID == "" {
		return "", fmt.Errorf("no authenticated user in context")
	}
	return userID, nil
}
