// Package auth holds the token issuer and the password hashing policy used
// by the user service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is how long an issued token stays valid.
const DefaultTokenValidity = 24 * time.Hour

// Claims are the registered JWT claims plus the account id under "id".
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// Issuer signs and verifies HS256 identity tokens with a fixed secret.
// It holds no mutable state and is safe for concurrent use.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewIssuer builds an Issuer. A non-positive validity falls back to
// DefaultTokenValidity. An empty secret is accepted here but makes every
// Issue and Verify call fail with common.ErrorConfiguration.
func NewIssuer(secret string, validity time.Duration) *Issuer {
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &Issuer{secret: []byte(secret), validity: validity, now: time.Now}
}

// WithClock returns a copy of i that reads the current time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	c := *i
	c.now = now
	return &c
}

// Issue signs a token for userID expiring validity after the current time.
func (i *Issuer) Issue(userID string) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("%w: signing secret is empty", common.ErrorConfiguration)
	}
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// embedded account id. Expired tokens yield common.ErrTokenExpired; anything
// else that does not validate yields common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("%w: signing secret is empty", common.ErrorConfiguration)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
