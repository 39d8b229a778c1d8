package security

import (
	"testing"
	"time"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	token, err := GenerateAccessToken(secret, "user-123", "a@example.com", true, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	claims, err := ParseAccessToken(token, secret)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Fatalf("subject mismatch: got %q", claims.Subject)
	}
	if claims.Email != "a@example.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
	if !claims.IsAdmin {
		t.Fatalf("expected is_admin claim to be true")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected iat and exp claims to be set")
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := GenerateAccessToken("secret", "u1", "u1@example.com", false, -time.Second)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	if _, err := ParseAccessToken(token, "secret"); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateAccessToken("right-secret", "u2", "u2@example.com", false, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	if _, err := ParseAccessToken(token, "wrong-secret"); err == nil {
		t.Fatalf("expected error for wrong secret, got nil")
	}
}

func TestNewRefreshToken(t *testing.T) {
	t.Parallel()

	token, digest := NewRefreshToken()
	if token == "" || digest == "" {
		t.Fatalf("expected non-empty token and digest")
	}
	if digest == token {
		t.Fatalf("digest must not equal the plaintext token")
	}
	if HashRefreshToken(token) != digest {
		t.Fatalf("digest must be the sha256 of the plaintext")
	}

	other, _ := NewRefreshToken()
	if other == token {
		t.Fatalf("expected unique tokens across calls")
	}
}
