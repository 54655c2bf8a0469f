// filepath: internal/services/auth/cookie_codec.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookieIssuer = "blog"

// ErrInvalidCookie is returned for cookies that fail signature or expiry checks.
var ErrInvalidCookie = errors.New("invalid session cookie")

// cookieClaims carries the session id in the standard 'jti' claim.
type cookieClaims struct {
	jwt.RegisteredClaims
}

// CookieCodec signs session ids for the session cookie so that tampered or
// forged cookies are rejected before the session store is consulted.
type CookieCodec struct {
	secret []byte
	clock  func() time.Time
}

// NewCookieCodec creates a codec using an HMAC secret. A nil clock means time.Now.
func NewCookieCodec(secret string, clock func() time.Time) *CookieCodec {
	if clock == nil {
		clock = time.Now
	}
	return &CookieCodec{secret: []byte(secret), clock: clock}
}

// Encode produces the cookie value for sessionID. expiresAt is optional.
func (c *CookieCodec) Encode(sessionID string, expiresAt *time.Time) (string, error) {
	claims := &cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			Issuer:   cookieIssuer,
			IssuedAt: jwt.NewNumericDate(c.clock()),
		},
	}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies a cookie value and returns the session id it carries.
func (c *CookieCodec) Decode(value string) (string, error) {
	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cookieIssuer),
		jwt.WithTimeFunc(c.clock),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}
	if !token.Valid || claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}
