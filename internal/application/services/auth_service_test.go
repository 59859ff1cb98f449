package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/security"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := security.HashPassword("letmein")
	require.NoError(t, err)
	auth := NewAuthService(hash, "secret", time.Hour, logging.NewDiscardLogger())
	assert.True(t, auth.Enabled())

	result, err := auth.Login("letmein")
	require.NoError(t, err)
	assert.Equal(t, security.RoleEditor, result.Role)

	claims, err := auth.Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, security.RoleEditor, claims.Role)

	_, err = auth.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_DisabledWithoutHash(t *testing.T) {
	auth := NewAuthService("", "secret", time.Hour, logging.NewDiscardLogger())
	assert.False(t, auth.Enabled())

	_, err := auth.Login("anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
