package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeclock/api/internal/config"
	"codeclock/api/internal/security"
)

const (
	// ContextClaims holds the verified *security.AccessClaims.
	ContextClaims = "access_claims"
	// ContextSubject holds the authenticated Subject.
	ContextSubject = "current_subject"
)

// Subject is the identity a verified access token proves. IsAdmin here is
// the token's cached claim; admin-gated routes re-check it against storage.
type Subject struct {
	ID      string
	Email   string
	IsAdmin bool
}

// Auth verifies the bearer access token by signature and expiry alone and
// exposes the subject to downstream handlers. Any failure is a 401.
func Auth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseAccessToken(tokenStr, cfg.Auth.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextSubject, Subject{
			ID:      claims.Subject,
			Email:   claims.Email,
			IsAdmin: claims.IsAdmin,
		})

		c.Next()
	}
}

// CurrentSubject returns the subject set by Auth, if any.
func CurrentSubject(c *gin.Context) (Subject, bool) {
	val, exists := c.Get(ContextSubject)
	if !exists {
		return Subject{}, false
	}
	subject, ok := val.(Subject)
	return subject, ok
}
