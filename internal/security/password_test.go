package security_test

import (
	"testing"

	"github.com/ftmlabs/directory-api/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("S3cret!pass")

	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if hash == "S3cret!pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !security.CheckPassword(hash, "S3cret!pass") {
		t.Fatal("correct password rejected")
	}

	if security.CheckPassword(hash, "wrong-pass") {
		t.Fatal("wrong password accepted")
	}
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	// must not panic on a malformed hash
	if security.CheckPassword("not-a-bcrypt-hash", "whatever") {
		t.Fatal("garbage hash accepted")
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := security.HashPassword("S3cret!pass")

	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	second, err := security.HashPassword("S3cret!pass")

	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}
