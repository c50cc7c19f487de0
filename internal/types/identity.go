// Package types provides type definitions for the data exchanged between pipeline stages.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TestIdentity represents the throwaway account a pipeline run registers and logs in with.
type TestIdentity struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required"`
}

// Session is an authenticated identity. The bearer token is fixed when the session is
// created; stages read it but cannot replace it.
type Session struct {
	Identity TestIdentity
	token    string
}

// NewSession binds a bearer token to an identity.
func NewSession(identity TestIdentity, token string) Session {
	return Session{Identity: identity, token: token}
}

// Token returns the bearer token obtained at login.
func (s Session) Token() string {
	return s.token
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.token != ""
}
