package domain

import "time"

// ExportDocument is the user-triggered backup of all domain collections.
// The field layout mirrors the in-memory entity shapes.
type ExportDocument struct {
	Catches      []ExportCatch  `json:"catches"`
	FishingSpots []ExportSpot   `json:"fishingSpots"`
	Settings     ExportSettings `json:"settings"`
	ExportDate   time.Time      `json:"exportDate"`
}

// ExportCatch is the wire shape of a catch inside an export document.
type ExportCatch struct {
	ID       string    `json:"id"`
	FishType string    `json:"fishType"`
	Weight   string    `json:"weight"`
	Length   string    `json:"length,omitempty"`
	Location string    `json:"location"`
	Bait     string    `json:"bait,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	Photo    string    `json:"photo,omitempty"`
	Date     time.Time `json:"date"`
}

// ExportSpot is the wire shape of a fishing spot inside an export document.
type ExportSpot struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Rating      float64      `json:"rating"`
	Distance    string       `json:"distance,omitempty"`
	FishTypes   []string     `json:"fishTypes,omitempty"`
	LastVisit   string       `json:"lastVisit,omitempty"`
	Catches     int          `json:"catches"`
	Image       string       `json:"image,omitempty"`
	IsActive    bool         `json:"isActive,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// ExportSettings is the wire shape of the settings document inside an export.
type ExportSettings struct {
	Notifications ExportNotifications `json:"notifications"`
	Preferences   ExportPreferences   `json:"preferences"`
	User          ExportProfile       `json:"user"`
}

// ExportNotifications mirrors Notifications with JSON field names.
type ExportNotifications struct {
	Weather   bool `json:"weather"`
	Reminders bool `json:"reminders"`
	NewSpots  bool `json:"newSpots"`
}

// ExportPreferences mirrors Preferences with JSON field names.
type ExportPreferences struct {
	DarkMode        bool            `json:"darkMode"`
	Language        string          `json:"language"`
	WeightUnit      WeightUnit      `json:"weightUnit"`
	TemperatureUnit TemperatureUnit `json:"temperatureUnit"`
}

// ExportProfile mirrors Profile with JSON field names.
type ExportProfile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}
