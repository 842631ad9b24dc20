package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okunev/fishlog/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserSummary describes the signed-in user's identity returned by the API.
type UserSummary struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// AuthRegisterRequest defines the account registration payload.
type AuthRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthLoginRequest defines the payload for the login endpoint.
type AuthLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthSessionResponse describes the response returned for a successful
// login or registration.
type AuthSessionResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        UserSummary `json:"user"`
}

// CatchCreateRequest defines the payload for logging a new catch.
type CatchCreateRequest struct {
	FishType string `json:"fishType" binding:"required"`
	Weight   string `json:"weight" binding:"required"`
	Length   string `json:"length"`
	Location string `json:"location"`
	Bait     string `json:"bait"`
	Notes    string `json:"notes"`
	Photo    string `json:"photo"`
}

// CatchUpdateRequest defines a partial catch update. Absent fields are left untouched.
type CatchUpdateRequest struct {
	FishType *string    `json:"fishType"`
	Weight   *string    `json:"weight"`
	Length   *string    `json:"length"`
	Location *string    `json:"location"`
	Bait     *string    `json:"bait"`
	Notes    *string    `json:"notes"`
	Photo    *string    `json:"photo"`
	Date     *time.Time `json:"date"`
}

// CatchResponse is the API view of a logged catch.
type CatchResponse struct {
	ID        string    `json:"id"`
	FishType  string    `json:"fishType"`
	Weight    string    `json:"weight"`
	Length    string    `json:"length,omitempty"`
	Location  string    `json:"location"`
	Bait      string    `json:"bait,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCatchResponse maps a domain catch onto its API representation.
func NewCatchResponse(c domain.Catch) CatchResponse {
	return CatchResponse{
		ID:        c.ID,
		FishType:  c.FishType,
		Weight:    c.Weight,
		Length:    c.Length,
		Location:  c.Location,
		Bait:      c.Bait,
		Notes:     c.Notes,
		Photo:     c.Photo,
		Date:      c.Date,
		CreatedAt: c.CreatedAt,
	}
}

// CoordinatesPayload is the API representation of a geographic position.
type CoordinatesPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SpotCreateRequest defines the payload for saving a new fishing spot.
type SpotCreateRequest struct {
	Name        string              `json:"name" binding:"required"`
	Location    string              `json:"location"`
	Rating      float64             `json:"rating"`
	Distance    string              `json:"distance"`
	FishTypes   []string            `json:"fishTypes"`
	LastVisit   string              `json:"lastVisit"`
	Image       string              `json:"image"`
	Coordinates *CoordinatesPayload `json:"coordinates"`
}

// SpotUpdateRequest defines a partial spot update. Absent fields are left untouched.
type SpotUpdateRequest struct {
	Name        *string             `json:"name"`
	Location    *string             `json:"location"`
	Rating      *float64            `json:"rating"`
	Distance    *string             `json:"distance"`
	FishTypes   *[]string           `json:"fishTypes"`
	LastVisit   *string             `json:"lastVisit"`
	Image       *string             `json:"image"`
	Coordinates *CoordinatesPayload `json:"coordinates"`
}

// SpotResponse is the API view of a fishing spot.
type SpotResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Location    string              `json:"location,omitempty"`
	Rating      float64             `json:"rating"`
	Distance    string              `json:"distance,omitempty"`
	FishTypes   []string            `json:"fishTypes,omitempty"`
	LastVisit   string              `json:"lastVisit,omitempty"`
	Catches     int                 `json:"catches"`
	Image       string              `json:"image,omitempty"`
	IsActive    bool                `json:"isActive"`
	Coordinates *CoordinatesPayload `json:"coordinates,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// NewSpotResponse maps a domain spot onto its API representation.
func NewSpotResponse(s domain.FishingSpot) SpotResponse {
	var coords *CoordinatesPayload
	if s.Coordinates != nil {
		coords = &CoordinatesPayload{Lat: s.Coordinates.Lat, Lng: s.Coordinates.Lng}
	}
	return SpotResponse{
		ID:          s.ID,
		Name:        s.Name,
		Location:    s.Location,
		Rating:      s.Rating,
		Distance:    s.Distance,
		FishTypes:   s.FishTypes,
		LastVisit:   s.LastVisit,
		Catches:     s.Catches,
		Image:       s.Image,
		IsActive:    s.IsActive,
		Coordinates: coords,
		CreatedAt:   s.CreatedAt,
	}
}

// NotificationsPayload mirrors the notification toggles group.
type NotificationsPayload struct {
	Weather   bool `json:"weather"`
	Reminders bool `json:"reminders"`
	NewSpots  bool `json:"newSpots"`
}

// PreferencesPayload mirrors the display preferences group.
type PreferencesPayload struct {
	DarkMode        bool   `json:"darkMode"`
	Language        string `json:"language"`
	WeightUnit      string `json:"weightUnit"`
	TemperatureUnit string `json:"temperatureUnit"`
}

// ProfilePayload mirrors the user profile group.
type ProfilePayload struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// SettingsResponse is the API view of the full settings document.
type SettingsResponse struct {
	Notifications NotificationsPayload `json:"notifications"`
	Preferences   PreferencesPayload   `json:"preferences"`
	User          ProfilePayload       `json:"user"`
}

// NewSettingsResponse maps the domain settings document onto its API representation.
func NewSettingsResponse(s domain.Settings) SettingsResponse {
	return SettingsResponse{
		Notifications: NotificationsPayload{
			Weather:   s.Notifications.Weather,
			Reminders: s.Notifications.Reminders,
			NewSpots:  s.Notifications.NewSpots,
		},
		Preferences: PreferencesPayload{
			DarkMode:        s.Preferences.DarkMode,
			Language:        s.Preferences.Language,
			WeightUnit:      string(s.Preferences.WeightUnit),
			TemperatureUnit: string(s.Preferences.TemperatureUnit),
		},
		User: ProfilePayload{
			Name:   s.User.Name,
			Email:  s.User.Email,
			Avatar: s.User.Avatar,
		},
	}
}

// NotificationsUpdatePayload carries a partial update of notification toggles.
type NotificationsUpdatePayload struct {
	Weather   *bool `json:"weather"`
	Reminders *bool `json:"reminders"`
	NewSpots  *bool `json:"newSpots"`
}

// PreferencesUpdatePayload carries a partial update of display preferences.
type PreferencesUpdatePayload struct {
	DarkMode        *bool   `json:"darkMode"`
	Language        *string `json:"language"`
	WeightUnit      *string `json:"weightUnit"`
	TemperatureUnit *string `json:"temperatureUnit"`
}

// ProfileUpdatePayload carries a partial update of the user profile.
type ProfileUpdatePayload struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Avatar *string `json:"avatar"`
}

// SettingsUpdateRequest is a tagged partial settings update: each present
// group is merged into the stored document.
type SettingsUpdateRequest struct {
	Notifications *NotificationsUpdatePayload `json:"notifications"`
	Preferences   *PreferencesUpdatePayload   `json:"preferences"`
	User          *ProfileUpdatePayload       `json:"user"`
}

// ToDomain converts the request into a domain settings update.
func (r SettingsUpdateRequest) ToDomain() domain.SettingsUpdate {
	var update domain.SettingsUpdate

	if r.Notifications != nil {
		update.Notifications = &domain.NotificationsUpdate{
			Weather:   r.Notifications.Weather,
			Reminders: r.Notifications.Reminders,
			NewSpots:  r.Notifications.NewSpots,
		}
	}

	if r.Preferences != nil {
		prefs := &domain.PreferencesUpdate{
			DarkMode: r.Preferences.DarkMode,
			Language: r.Preferences.Language,
		}
		if r.Preferences.WeightUnit != nil {
			unit := domain.WeightUnit(*r.Preferences.WeightUnit)
			prefs.WeightUnit = &unit
		}
		if r.Preferences.TemperatureUnit != nil {
			unit := domain.TemperatureUnit(*r.Preferences.TemperatureUnit)
			prefs.TemperatureUnit = &unit
		}
		update.Preferences = prefs
	}

	if r.User != nil {
		update.User = &domain.ProfileUpdate{
			Name:   r.User.Name,
			Email:  r.User.Email,
			Avatar: r.User.Avatar,
		}
	}

	return update
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports per-dependency readiness results.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
