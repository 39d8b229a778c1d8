package security

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter22", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !VerifyPassword("hunter22", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if VerifyPassword("hunter23", hash) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHashPassword_CostFallback(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter22", 0)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !VerifyPassword("hunter22", hash) {
		t.Fatalf("expected hash at fallback cost to verify")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-password", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("same-password", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if string(first) == string(second) {
		t.Fatalf("expected distinct hashes for the same password")
	}
}
