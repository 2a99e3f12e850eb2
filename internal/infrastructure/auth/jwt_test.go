package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brownstreet/backend/internal/infrastructure/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters",
		Issuer:                "brownstreet-test",
		AccessTokenExpiration: time.Hour,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateToken("operator@brownstreet")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator@brownstreet", claims.Subject)
	assert.Equal(t, "operator@brownstreet", claims.Operator)
	assert.Equal(t, "brownstreet-test", claims.Issuer)
}

func TestJWTService_GenerateRequiresOperator(t *testing.T) {
	_, _, err := newTestService().GenerateToken("")
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestJWTService_ValidateRejectsGarbage(t *testing.T) {
	_, err := newTestService().ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestService().GenerateToken("operator")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret: "a-completely-different-secret-value",
		Issuer: "brownstreet-test",
	})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateRejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters",
		Issuer:                "brownstreet-test",
		AccessTokenExpiration: -time.Minute,
	})

	token, _, err := svc.GenerateToken("operator")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
