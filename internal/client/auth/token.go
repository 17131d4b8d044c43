package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiryBuffer is how close to expiry a token counts as expiring soon.
const DefaultExpiryBuffer = 300 * time.Second

var ErrInvalidToken = errors.New("invalid token")

// Claims are the token fields the client relies on.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time // zero when the token has no exp claim
}

// DecodeToken reads the payload of a JWT without verifying its signature;
// the client never holds the signing key.
func DecodeToken(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrInvalidToken
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	c := Claims{
		Subject: claimString(mc, "unique_name"),
		Email:   claimString(mc, "email"),
	}
	if c.Subject == "" {
		c.Subject = claimString(mc, "sub")
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

func claimString(mc jwt.MapClaims, key string) string {
	switch v := mc[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// IsExpiringSoon reports whether fewer than buffer remain before the token
// expires. Tokens that are empty, undecodable or carry no exp claim are
// treated as expiring.
func IsExpiringSoon(token string, buffer time.Duration) bool {
	return expiringSoon(token, buffer, time.Now())
}

func expiringSoon(token string, buffer time.Duration, now time.Time) bool {
	c, err := DecodeToken(token)
	if err != nil || c.ExpiresAt.IsZero() {
		return true
	}
	return c.ExpiresAt.Sub(now) < buffer
}
