// Package auth issues and checks the session tokens handed out at login.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the account id in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

func GenerateToken(accountID int64, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	})

	return token.SignedString(secretKey)
}

// GetAccountIDFromToken validates the signature and expiry and returns the
// account id. Expired tokens yield common.ErrTokenExpired, anything else
// invalid yields common.ErrorUnauthorized.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrorUnauthorized
	}

	if !token.Valid {
		return 0, common.ErrorUnauthorized
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrorUnauthorized
	}

	return id, nil
}
