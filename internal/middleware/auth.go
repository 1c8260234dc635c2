package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tunedeck/backend/internal/services"
	"github.com/tunedeck/backend/pkg/logger"
	"github.com/tunedeck/backend/pkg/oidc"
	"go.uber.org/zap"
)

// ClaimsVerifier validates a raw bearer credential.
type ClaimsVerifier interface {
	Verify(ctx context.Context, raw string) (*oidc.Claims, error)
}

// Auth extracts the caller identity from the Authorization header. A request
// without a bearer token passes through anonymously; a request with an
// invalid one is rejected rather than downgraded to anonymous. On success the
// caller's subject id lands in the context under "userID" and the local user
// mirror is created on first sight.
func Auth(verifier ClaimsVerifier, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header || raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			c.Abort()
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		if _, err := users.Ensure(claims); err != nil {
			// The mirror row is a convenience; the verified identity is not.
			logger.L().Warn("failed to mirror user", zap.String("subject", claims.Subject), zap.Error(err))
		}

		c.Set("userID", claims.Subject)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireUser rejects requests that reached this point without a verified
// caller identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerID(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerID returns the verified subject id of the caller, or "" when the
// request is anonymous.
func CallerID(c *gin.Context) string {
	v, ok := c.Get("userID")
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// Claims returns the verified claims of the caller, or nil.
func Claims(c *gin.Context) *oidc.Claims {
	v, ok := c.Get("claims")
	if !ok {
		return nil
	}
	claims, _ := v.(*oidc.Claims)
	return claims
}
