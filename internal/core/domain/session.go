package domain

import "time"

// Session is the authenticated-or-not status of the state container. It is
// driven exclusively by auth gateway session-change notifications.
type Session struct {
	UserID string
}

// Authenticated reports whether a user is currently signed in.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// User mirrors the persisted representation of an account in the users table.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	Avatar       string
	RegisteredAt time.Time
	LastLogin    *time.Time
}
