package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	token, err := m.GenerateToken("uuid-123", "USER")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uuid, role, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uuid-123", uuid)
	assert.Equal(t, "USER", role)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager(testSecret, -time.Minute)

	token, err := m.GenerateToken("uuid-123", "USER")
	require.NoError(t, err)

	_, _, err = m.VerifyToken(token)
	assert.Error(t, err)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)
	other := NewJWTManager("another-secret-another-secret-xx", time.Hour)

	token, err := m.GenerateToken("uuid-123", "ADMIN")
	require.NoError(t, err)

	_, _, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestJWTManager_Garbage(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	_, _, err := m.VerifyToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTManager_MissingRoleClaim(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	// Correctly signed but without a role claim: rejected.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "uuid-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = m.VerifyToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsUnsignedToken(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "uuid-123",
		"role": "ADMIN",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = m.VerifyToken(token)
	assert.Error(t, err)
}
