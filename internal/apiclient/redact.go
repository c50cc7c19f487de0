package apiclient

import (
	"regexp"
	"strings"
)

var (
	// Matches "Bearer <token>" for JWTs and opaque tokens alike.
	bearerTokenRe = regexp.MustCompile(`(?i)\bBearer\s+[^\s"']+`)

	// access_token values echoed back in response bodies.
	accessTokenRe = regexp.MustCompile(`(?i)"?access_token"?\s*[:=]\s*"?[^\s"',}]+"?`)

	// password=... in form bodies or error strings.
	passwordKVRe = regexp.MustCompile(`(?i)\bpassword\b"?\s*[:=]\s*"?[^\s"'&,}]+"?`)
)

// RedactSecrets removes credentials from error and log strings.
// It is safe to call on any message, including raw response bodies.
func RedactSecrets(s string) string {
	if s == "" {
		return ""
	}
	out := s
	out = bearerTokenRe.ReplaceAllString(out, "Bearer <redacted>")
	out = accessTokenRe.ReplaceAllString(out, "access_token=<redacted>")
	out = passwordKVRe.ReplaceAllString(out, "password=<redacted>")
	return strings.TrimSpace(out)
}
