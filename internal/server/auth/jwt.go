// Package auth implements the token issuer and the password hasher: signed,
// time-bounded HS256 tokens carrying the subject and email, and bcrypt
// credential digests.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims extends the registered JWT claims with the user's email. The user ID
// travels in the standard Subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// GenerateToken signs {sub: userID, email, exp: now+validity, jti} with
// secret using HS256. Access and refresh tokens differ only in secret and
// validity. The jti claim makes every issuance unique: exp alone is truncated
// to whole seconds, which would let two tokens minted in the same second
// collide and defeat refresh rotation.
func GenerateToken(userID, email string, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Email: email,
	})

	return token.SignedString(secret)
}

// ParseToken checks the signature and expiry of tokenString against secret
// and returns the embedded claims. It returns common.ErrTokenExpired for an
// expired-but-correctly-signed token and common.ErrInvalidToken otherwise;
// callers present both identically but may log the distinction.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
