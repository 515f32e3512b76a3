package identity

import (
	"context"
	"errors"
)

// Sentinel errors for identity operations
var (
	// ErrNoSession means the credential does not map to a valid session.
	ErrNoSession = errors.New("no valid session")
	// ErrInvalidCredentials means sign-in was rejected by the identity service.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is the authenticated identity behind a valid session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the credential handed back on sign-in. The token is opaque to
// the rest of the system; only the identity service interprets it.
type Session struct {
	Token     string `json:"access_token"`
	ExpiresIn int    `json:"expires_in"`
	User      User   `json:"user"`
}

// Service is the external identity collaborator. The session gate only ever
// calls GetSession; the login and logout handlers use the rest.
type Service interface {
	// GetSession resolves a session token to its user. It returns
	// ErrNoSession for an invalid or expired token and a different error
	// when the service itself could not answer; callers treat both as
	// "no session" (fail closed) but may log the latter.
	GetSession(ctx context.Context, token string) (*User, error)

	// SignIn exchanges credentials for a session.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignOut invalidates the session token.
	SignOut(ctx context.Context, token string) error
}
