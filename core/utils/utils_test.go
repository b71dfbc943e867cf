package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("s3cret", " Owner@Example.com ", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateAndParseToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", claims.Email)

	_, err = ValidateAndParseToken("other", token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateAdminToken("s3cret", "owner@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateAndParseToken("s3cret", token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestToNumberWithDefault(t *testing.T) {
	assert.Equal(t, 12, ToNumberWithDefault(" 12 ", 3))
	assert.Equal(t, 3, ToNumberWithDefault("x", 3))
}
