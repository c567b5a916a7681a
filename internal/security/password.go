package security

import "golang.org/x/crypto/bcrypt"

// bcrypt work factor, same 10 rounds the rest of the stack expects
const hashCost = 10

// HashPassword hashes a plain text password with bcrypt. The salt is random
// per call, so hashing the same password twice gives different outputs.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password in constant
// time. A malformed hash is just a mismatch, never a panic.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
