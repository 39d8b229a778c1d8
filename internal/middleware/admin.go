package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeclock/api/internal/models"
)

// UserLoader is the slice of the credential store the admin check needs.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

// RequireAdmin re-reads the subject's user record instead of trusting the
// token's is_admin claim: demotions bite immediately on admin routes, and a
// freshly promoted user only needs a new token, not a schema-level wait.
// Runs after Auth; 403 when the subject is not an admin.
func RequireAdmin(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := CurrentSubject(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), subject.ID)
		if err != nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Next()
	}
}
