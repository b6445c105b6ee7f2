// Package token issues and verifies the bearer tokens shared by all
// ChatStack services. Verification is a pure function of the token value and
// the shared HMAC secret: no network call and no shared mutable state, so any
// number of service instances can validate tokens independently without
// contacting the identity authority.
package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/2003dinijay/ChatStack/internal/common"
)

// Issue creates a signed HS256 token whose subject is the user identifier,
// expiring after validity.
func Issue(userID int64, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify validates the signature and expiry of tokenString and returns the
// user identifier carried in the subject claim. Any malformed, tampered, or
// expired token yields common.ErrInvalidToken.
func Verify(tokenString string, secret []byte) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, common.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	return userID, nil
}
