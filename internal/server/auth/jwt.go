// Package auth issues and verifies the session tokens handed out at signin.
// Tokens are HS256 JWTs; invalidation is expiry-only, there is no
// revocation list.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/velmarq/walletd/internal/common"
)

// Claims asserts a verified identity: the account, its email, and the
// ledger address of its custodial keypair.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	PublicKey string `json:"publicKey"`
}

// GenerateToken mints a signed session token for the given identity with a
// fixed validity window.
func GenerateToken(accountID, email, publicKey string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		AccountID: accountID,
		Email:     email,
		PublicKey: publicKey,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseClaims validates signature and expiry and returns the embedded
// claims. Expired tokens yield common.ErrTokenExpired, everything else
// common.ErrInvalidToken.
func ParseClaims(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
