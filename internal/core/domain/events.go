package domain

import "time"

// UserRegisteredEvent is emitted after a new account is created.
type UserRegisteredEvent struct {
	EventID      string
	UserID       string
	Email        string
	DisplayName  string
	RegisteredAt time.Time
}

// CatchLoggedEvent is emitted after a catch is persisted.
type CatchLoggedEvent struct {
	EventID  string
	UserID   string
	CatchID  string
	FishType string
	Weight   string
	Location string
	SpotID   string
	LoggedAt time.Time
}

// SpotActivatedEvent is emitted after a fishing spot becomes the active spot.
type SpotActivatedEvent struct {
	EventID     string
	UserID      string
	SpotID      string
	SpotName    string
	ActivatedAt time.Time
}
