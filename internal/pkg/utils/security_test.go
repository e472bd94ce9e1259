package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	passwords := []string{"Ituteg777", "пароль-с-кириллицей", " leading and trailing ", "x"}

	for _, password := range passwords {
		t.Run(password, func(t *testing.T) {
			hash, err := HashPassword(password)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(hash, "$2"), "hash should carry the bcrypt tag")
			assert.False(t, IsLegacyPasswordHash(hash), "bcrypt hash should not be legacy")
			assert.True(t, VerifyPassword(password, hash), "password should verify against its own hash")
			assert.False(t, VerifyPassword(password+"!", hash), "different password should not verify")

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, 12, cost)
		})
	}
}

func TestVerifyPassword_Legacy(t *testing.T) {
	t.Run("Known Digest", func(t *testing.T) {
		digest := LegacyPasswordDigest("password")

		assert.Equal(t, "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", digest)
		assert.True(t, IsLegacyPasswordHash(digest))
		assert.True(t, VerifyPassword("password", digest))
	})

	t.Run("Wrong Password", func(t *testing.T) {
		digest := LegacyPasswordDigest("Ituteg777")

		assert.False(t, VerifyPassword("ituteg777", digest))
	})

	t.Run("Different Length Stored Value", func(t *testing.T) {
		assert.False(t, VerifyPassword("password", "5e884898"))
		assert.False(t, VerifyPassword("", ""), "empty stored hash never matches")
	})

	t.Run("Uppercase Hex Is Not Accepted", func(t *testing.T) {
		digest := strings.ToUpper(LegacyPasswordDigest("password"))

		assert.False(t, VerifyPassword("password", digest))
	})
}

func TestIsLegacyPasswordHash(t *testing.T) {
	assert.True(t, IsLegacyPasswordHash(""))
	assert.True(t, IsLegacyPasswordHash(LegacyPasswordDigest("abc")))
	assert.False(t, IsLegacyPasswordHash("$2a$12$abcdefghijklmnopqrstuu"))
	assert.False(t, IsLegacyPasswordHash("$2b$10$abcdefghijklmnopqrstuu"))
}
