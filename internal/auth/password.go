package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash for newly registered accounts.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks password against a stored credential. Accounts
// migrated from the legacy store may hold a salted or unsalted SHA-256
// digest (base64 or lowercase hex) or, as a last resort, the plaintext.
func VerifyPassword(password, storedHash string, storedSalt *string) bool {
	if storedHash == "" {
		return false
	}

	if isBcryptHash(storedHash) {
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
	}

	if storedSalt != nil && *storedSalt != "" {
		if digestMatches(*storedSalt+password, storedHash) {
			return true
		}
	}

	if digestMatches(password, storedHash) {
		return true
	}

	return constantTimeEqual(password, storedHash)
}

func digestMatches(input, storedHash string) bool {
	sum := sha256.Sum256([]byte(input))
	if constantTimeEqual(base64.StdEncoding.EncodeToString(sum[:]), storedHash) {
		return true
	}
	return constantTimeEqual(hex.EncodeToString(sum[:]), storedHash)
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
