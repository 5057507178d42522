package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(testSecret, userID, "op@example.com", "operator", "SUPERVISOR", "go-mrp-api", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "op@example.com", claims.Email)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, "SUPERVISOR", claims.Role)
	assert.Equal(t, "go-mrp-api", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, uuid.New(), "op@example.com", "operator", "USER", "go-mrp-api", 1)
	require.NoError(t, err)

	_, err = ValidateToken("another-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	// Negative expiration produces an already-expired token.
	token, err := GenerateToken(testSecret, uuid.New(), "op@example.com", "operator", "USER", "go-mrp-api", -1)
	require.NoError(t, err)

	_, err = ValidateToken(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := ValidateToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
