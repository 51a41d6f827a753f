// Package tokens issues and verifies the bearer tokens that stand in for a
// server-side session. Tokens are self-contained HS256 JWTs; validity is a
// pure function of signature and expiry, there is no revocation list.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/recipebook/go-services/internal/models"
)

// TokenTTL is the fixed lifetime of every issued token. Logout is client-side
// deletion; a token stays valid until it expires naturally.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, malformed
// structure, unexpected algorithm, expiry. Callers must treat all of them as
// "no identity".
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified identity carried by a token.
type Claims struct {
	UserID string
	Email  string
}

// Issue creates a signed token for the user with the fixed TTL.
func Issue(secret string, u *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.HexID(),
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// Verify validates signature and expiry against the shared secret and returns
// the embedded claims, or ErrInvalidToken.
func Verify(secret, raw string) (*Claims, error) {
	return VerifyAt(secret, raw, time.Now)
}

// VerifyAt is Verify with an injectable clock, used to test expiry.
func VerifyAt(secret, raw string, now func() time.Time) (*Claims, error) {
	parsed, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	email, _ := mc["email"].(string)
	return &Claims{UserID: sub, Email: email}, nil
}
