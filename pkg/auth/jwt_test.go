package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tok, err := GenerateToken(42, "client", "ana.ruiz240189@ucq.edu.mx")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "client", claims.Role)
	assert.Equal(t, "ana.ruiz240189@ucq.edu.mx", claims.Email)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTamperedSignature(t *testing.T) {
	tok, err := GenerateToken(1, "shop", "cafeteria@ucq.edu.mx")
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	now := time.Now()
	claims := Claims{
		UserID: 7,
		Role:   "client",
		Email:  "aruiz20045@ucq.edu.mx",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
	require.NoError(t, err)

	_, err = ValidateToken(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
}
