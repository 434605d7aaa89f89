package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService("test-secret-key-for-testing-purposes", 15*time.Minute)
}

func TestNewJWTService(t *testing.T) {
	service := newTestJWTService()
	assert.NotNil(t, service)
	assert.Equal(t, 15*time.Minute, service.TokenExpiry())
}

func TestJWTService_GenerateAccessToken_Success(t *testing.T) {
	service := newTestJWTService()

	token, expiresAt, err := service.GenerateAccessToken("admin", RoleAdmin)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
}

func TestJWTService_ValidateAccessToken_Valid(t *testing.T) {
	service := newTestJWTService()

	token, _, err := service.GenerateAccessToken("admin", RoleAdmin)
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)

	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.Subject)
}

func TestJWTService_ValidateAccessToken_Expired(t *testing.T) {
	service := newTestJWTService()
	issued := time.Now().Add(-time.Hour)
	service.now = func() time.Time { return issued }

	token, _, err := service.GenerateAccessToken("admin", RoleAdmin)
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateAccessToken_WrongSecret(t *testing.T) {
	token, _, err := newTestJWTService().GenerateAccessToken("admin", RoleAdmin)
	require.NoError(t, err)

	other := NewJWTService("another-secret-key-that-is-long-enough", time.Minute)
	_, err = other.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateAccessToken_Garbage(t *testing.T) {
	tests := []string{"", "not.a.token", "eyJhbGciOiJIUzI1NiJ9.e30.bad"}

	for _, tok := range tests {
		_, err := newTestJWTService().ValidateAccessToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}
}

func TestJWTService_ValidateAccessToken_RejectsNoneAlg(t *testing.T) {
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Subject:   "admin",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateAccessToken(signed)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticator_Login(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	a := NewAuthenticator(hash, newTestJWTService())

	token, _, err := a.Login("correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = a.Login("wrong-horse")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticator_NoHashConfigured(t *testing.T) {
	a := NewAuthenticator("", newTestJWTService())

	_, _, err := a.Login("anything")

	assert.ErrorIs(t, err, ErrBadCredentials)
}
