package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserCounter is the existence predicate behind the first-run gate.
type UserCounter interface {
	CountUsers(ctx context.Context) (int, error)
}

// FirstRun blocks every route it is attached to until at least one user
// exists. Routes reachable pre-bootstrap (health, setup status, setup
// register) are simply registered without this middleware.
//
// The count is read fresh on every request. The transition is one-way, so
// the only cost of not caching is a cheap query per request during the
// short pre-bootstrap window; caching would risk divergence across
// instances.
func FirstRun(users UserCounter, setupURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := users.CountUsers(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
			return
		}

		if count == 0 {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":     "setup required",
				"code":      "FIRST_RUN_REQUIRED",
				"setup_url": setupURL,
			})
			return
		}

		c.Next()
	}
}
