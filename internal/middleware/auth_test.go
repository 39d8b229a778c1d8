package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeclock/api/internal/config"
	"codeclock/api/internal/security"
)

func authTestConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			AccessTokenTTL: 15 * time.Minute,
		},
	}
}

func newAuthTestEngine(cfg *config.AppConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", Auth(cfg), func(c *gin.Context) {
		subject, ok := CurrentSubject(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no subject"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": subject.ID, "email": subject.Email, "is_admin": subject.IsAdmin})
	})
	return engine
}

func TestAuth_MissingHeader(t *testing.T) {
	engine := newAuthTestEngine(authTestConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedAndInvalidTokens(t *testing.T) {
	engine := newAuthTestEngine(authTestConfig())

	for _, header := range []string{
		"Bearer not-a-jwt",
		"Basic dXNlcjpwYXNz",
		"Bearer ",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	cfg := authTestConfig()
	engine := newAuthTestEngine(cfg)

	token, err := security.GenerateAccessToken(cfg.Auth.JWTSecret, "u1", "u1@example.com", false, -time.Second)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	cfg := authTestConfig()
	engine := newAuthTestEngine(cfg)

	token, err := security.GenerateAccessToken(cfg.Auth.JWTSecret, "u1", "u1@example.com", true, time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
	assert.Contains(t, w.Body.String(), `"is_admin":true`)
}
