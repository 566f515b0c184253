// AngelaMos | 2026
// security.go

package core

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const hashCost = 12

// HashPassword produces a salted bcrypt digest. Each call salts independently,
// so hashing the same plaintext twice yields different digests.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the digest. A mismatch is
// a false return, never an error.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword(
		[]byte(digest),
		[]byte(password),
	) == nil
}

var dummyDigest string

func init() {
	digest, err := HashPassword("dummy_password_for_timing_attack_prevention")
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy digest: %v", err))
	}
	dummyDigest = digest
}

// VerifyPasswordTimingSafe behaves like VerifyPassword but always performs a
// bcrypt comparison, even when the account lookup failed (digest == nil).
// Login latency therefore does not reveal whether an email is registered.
func VerifyPasswordTimingSafe(password string, digest *string) bool {
	target := dummyDigest
	if digest != nil && *digest != "" {
		target = *digest
	}

	valid := VerifyPassword(password, target)

	if digest == nil || *digest == "" {
		return false
	}

	return valid
}
