package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"jazaidoc-service/internal/pkg/constvars"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash with the fixed work factor of 12.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), constvars.PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword accepts bcrypt hashes and the legacy unsalted SHA-256 hex digests
// of accounts created before bcrypt was adopted.
func VerifyPassword(password, storedHash string) bool {
	if !IsLegacyPasswordHash(storedHash) {
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
	}

	digest := LegacyPasswordDigest(password)
	if len(digest) != len(storedHash) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(storedHash)) == 1
}

func IsLegacyPasswordHash(storedHash string) bool {
	return !strings.HasPrefix(storedHash, constvars.BcryptHashPrefix)
}

func LegacyPasswordDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
