package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo describes a bearer token for display purposes.
type TokenInfo struct {
	JWT       bool
	Subject   string
	ExpiresAt *time.Time
}

// DescribeToken reads the subject and expiry of a JWT without verifying its signature.
// The harness never holds the signing key, so the claims are informational only.
// Opaque tokens are reported with JWT set to false.
func DescribeToken(token string) TokenInfo {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{JWT: true}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	return info
}
