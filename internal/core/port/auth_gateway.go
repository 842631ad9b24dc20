package port

import (
	"context"
	"errors"
)

var (
	// ErrEmailInUse indicates an account already exists for the email address.
	ErrEmailInUse = errors.New("email already in use")
	// ErrInvalidEmail indicates the email address is syntactically invalid.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword indicates the password does not meet strength requirements.
	ErrWeakPassword = errors.New("password too weak")
	// ErrInvalidCredentials indicates the email or password are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTooManyAttempts indicates login throttling kicked in for the identifier.
	ErrTooManyAttempts = errors.New("too many login attempts")
	// ErrGatewayMisconfigured indicates the auth provider is not configured.
	ErrGatewayMisconfigured = errors.New("auth gateway misconfigured")
)

// AuthUser is the identity reported by the auth gateway for a signed-in user.
type AuthUser struct {
	ID          string
	Email       string
	DisplayName string
	Avatar      string
}

// SessionCallback receives the current identity, or nil when signed out.
type SessionCallback func(user *AuthUser)

// Unsubscribe tears down a session-change subscription.
type Unsubscribe func()

// AuthGateway abstracts the remote authentication provider. OnSessionChange
// fires once at subscription time with the current session and again on every
// subsequent sign-in or sign-out.
type AuthGateway interface {
	Register(ctx context.Context, email, password, displayName string) (*AuthUser, error)
	Login(ctx context.Context, email, password string) (*AuthUser, error)
	Logout(ctx context.Context) error
	OnSessionChange(cb SessionCallback) Unsubscribe
}
