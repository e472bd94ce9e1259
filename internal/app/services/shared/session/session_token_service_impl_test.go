package session

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var doctor = models.SessionPayload{Login: "aigerim", Role: "doctor", Name: "Айгерим Садыкова"}

func TestSessionTokenService_RoundTrip(t *testing.T) {
	svc := NewSessionTokenService(&config.InternalConfig{Session: config.Session{Secret: testSecret}})

	token, err := svc.Sign(doctor)
	require.NoError(t, err)

	payload, ok := svc.Verify(token)
	require.True(t, ok)
	assert.Equal(t, doctor, *payload)
}

func TestSessionTokenService_NoCredentialMaterial(t *testing.T) {
	svc := newSessionTokenService(testSecret, 0, time.Now)

	token, err := svc.Sign(doctor)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	body, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), "exp", "no expiry without a configured ttl")
}

func TestSessionTokenService_SingleBitMutations(t *testing.T) {
	svc := newSessionTokenService(testSecret, 0, time.Now)
	token, err := svc.Sign(doctor)
	require.NoError(t, err)
	parts := strings.Split(token, ".")

	for _, segment := range []int{1, 2} {
		raw, err := base64.RawURLEncoding.DecodeString(parts[segment])
		require.NoError(t, err)

		for i := range raw {
			for bit := 0; bit < 8; bit++ {
				mutated := append([]byte(nil), raw...)
				mutated[i] ^= 1 << bit

				tampered := append([]string(nil), parts...)
				tampered[segment] = base64.RawURLEncoding.EncodeToString(mutated)

				_, ok := svc.Verify(strings.Join(tampered, "."))
				assert.False(t, ok, "segment %d byte %d bit %d", segment, i, bit)
			}
		}
	}
}

func TestSessionTokenService_EncodedCharacterMutations(t *testing.T) {
	svc := newSessionTokenService(testSecret, 0, time.Now)
	token, err := svc.Sign(doctor)
	require.NoError(t, err)

	for i := range token {
		if token[i] == '.' {
			continue
		}
		mutated := []byte(token)
		mutated[i] ^= 1
		_, ok := svc.Verify(string(mutated))
		assert.False(t, ok, "position %d", i)
	}
}

func TestSessionTokenService_Rejects(t *testing.T) {
	svc := newSessionTokenService(testSecret, 0, time.Now)
	other := newSessionTokenService("another-secret", 0, time.Now)

	foreign, err := other.Sign(doctor)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims{
		SessionPayload:   doctor,
		RegisteredClaims: jwt.RegisteredClaims{Subject: doctor.Login},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, sessionClaims{
		SessionPayload:   doctor,
		RegisteredClaims: jwt.RegisteredClaims{Subject: doctor.Login},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	emptyLogin, err := svc.Sign(models.SessionPayload{Role: "admin"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "abc.def"},
		{"wrong secret", foreign},
		{"alg none", unsigned},
		{"other algorithm", hs512},
		{"empty login", emptyLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, ok := svc.Verify(tt.token)
			assert.False(t, ok)
			assert.Nil(t, payload)
		})
	}
}

func TestSessionTokenService_Expiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := newSessionTokenService(testSecret, 8*time.Hour, clock)

	token, err := svc.Sign(doctor)
	require.NoError(t, err)

	_, ok := svc.Verify(token)
	assert.True(t, ok)

	now = now.Add(9 * time.Hour)
	_, ok = svc.Verify(token)
	assert.False(t, ok)
}

func TestValidateSecret(t *testing.T) {
	assert.Error(t, ValidateSecret(""))
	assert.Error(t, ValidateSecret("   "))
	assert.NoError(t, ValidateSecret(testSecret))
}
