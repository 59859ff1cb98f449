package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorToken_RoundTrip(t *testing.T) {
	token, expires, err := GenerateEditorToken("editor", "s3cret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := ValidateJWT(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, claims.Role)
	assert.Equal(t, "editor", claims.Subject)
}

func TestValidateJWT_Rejects(t *testing.T) {
	token, _, err := GenerateEditorToken("editor", "s3cret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := GenerateEditorToken("editor", "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateJWT(expired, "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	viewer := jwt.NewWithClaims(jwt.SigningMethodHS256, EditorClaims{Role: "viewer"})
	signed, err := viewer.SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = ValidateJWT(signed, "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = GenerateEditorToken("editor", "", time.Hour)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "hunter2"))
	assert.ErrorIs(t, CheckPassword(hash, "hunter3"), ErrPasswordMismatch)
	assert.ErrorIs(t, CheckPassword("", "hunter2"), ErrPasswordMismatch)

	_, err = HashPassword("")
	assert.Error(t, err)
}

func TestGenerators(t *testing.T) {
	_, err := ulid.Parse(GenerateULID())
	assert.NoError(t, err)

	key, err := GenerateSecureKey(64)
	require.NoError(t, err)
	assert.Len(t, key, 64)
}
