package auth

import (
	"strings"
	"testing"
)

// Cost 4 is bcrypt's minimum — tests don't need the production work
// factor, just the logic.
func newTestPasswordService() *PasswordService {
	return newPasswordServiceWithCost(4)
}

func TestHashAndVerify(t *testing.T) {
	svc := newTestPasswordService()

	hash, err := svc.Hash("geheim123")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash = %q, want bcrypt output starting with $2", hash)
	}
	if hash == "geheim123" {
		t.Fatal("hash equals the plaintext")
	}

	if err := svc.Verify(hash, "geheim123"); err != nil {
		t.Errorf("Verify() with correct password: %v", err)
	}
	if err := svc.Verify(hash, "wrong-password"); err == nil {
		t.Error("Verify() with wrong password succeeded")
	}
}

func TestHashProducesDifferentSalts(t *testing.T) {
	svc := newTestPasswordService()

	h1, err := svc.Hash("geheim123")
	if err != nil {
		t.Fatalf("first Hash() error: %v", err)
	}
	h2, err := svc.Hash("geheim123")
	if err != nil {
		t.Fatalf("second Hash() error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical — salt missing?")
	}
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	svc := newTestPasswordService()

	if _, err := svc.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("Hash() accepted a 73-byte password")
	}
	// 72 bytes is exactly at the bcrypt limit and must work.
	if _, err := svc.Hash(strings.Repeat("a", 72)); err != nil {
		t.Errorf("Hash() rejected a 72-byte password: %v", err)
	}
}

func TestVerifyGarbageHash(t *testing.T) {
	svc := newTestPasswordService()

	if err := svc.Verify("not-a-bcrypt-hash", "geheim123"); err == nil {
		t.Error("Verify() with a garbage hash succeeded")
	}
}
