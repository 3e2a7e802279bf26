package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(42, secret, time.Hour)
	require.NoError(t, err)

	id, err := GetAccountIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestGetAccountIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(1, []byte("secret"), -time.Second)
	require.NoError(t, err)

	_, err = GetAccountIDFromToken(tok, []byte("secret"))
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetAccountIDFromToken_Invalid(t *testing.T) {
	t.Parallel()

	good, err := GenerateToken(2, []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "2"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", good},
		{"malformed", "not.a.jwt"},
		{"alg none", noneAlg},
		{"non numeric subject", badSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := []byte("right-secret")
			if tt.name == "wrong secret" {
				secret = []byte("wrong-secret")
			}
			_, err := GetAccountIDFromToken(tt.token, secret)
			require.ErrorIs(t, err, common.ErrorUnauthorized)
		})
	}
}
