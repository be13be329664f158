// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")
	id := uuid.New()

	token, err := GenerateJWT(id, "mia", "producer", 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "producer", claims.Role)
	assert.Equal(t, "musichub", claims.Issuer)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	SetJWTSecret("test-secret")
	id := uuid.New()

	refresh, err := GenerateRefreshToken(id, 1)
	require.NoError(t, err)

	subject, err := ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, id.String(), subject)

	_, err = ValidateJWT(refresh)
	assert.Error(t, err)

	access, err := GenerateJWT(id, "mia", "artist", 1)
	require.NoError(t, err)
	_, err = ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestExpiredAndForeignTokensAreRejected(t *testing.T) {
	SetJWTSecret("test-secret")

	expired, err := GenerateJWT(uuid.New(), "mia", "artist", -1)
	require.NoError(t, err)
	_, err = ValidateJWT(expired)
	assert.Error(t, err)

	token, err := GenerateJWT(uuid.New(), "mia", "artist", 1)
	require.NoError(t, err)
	SetJWTSecret("other-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}
