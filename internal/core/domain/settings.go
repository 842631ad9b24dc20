package domain

// WeightUnit enumerates supported weight display units.
type WeightUnit string

const (
	WeightKilograms WeightUnit = "kg"
	WeightPounds    WeightUnit = "lb"
)

// TemperatureUnit enumerates supported temperature display units.
type TemperatureUnit string

const (
	TemperatureCelsius    TemperatureUnit = "c"
	TemperatureFahrenheit TemperatureUnit = "f"
)

// Notifications groups the per-user notification toggles.
type Notifications struct {
	Weather   bool
	Reminders bool
	NewSpots  bool
}

// Preferences groups display and locale preferences.
type Preferences struct {
	DarkMode        bool
	Language        string
	WeightUnit      WeightUnit
	TemperatureUnit TemperatureUnit
}

// Profile holds the user-facing identity attributes.
type Profile struct {
	Name   string
	Email  string
	Avatar string
}

// Settings is the full per-user settings document.
type Settings struct {
	Notifications Notifications
	Preferences   Preferences
	User          Profile
}

// DefaultSettings returns the settings document seeded for a new account.
func DefaultSettings() Settings {
	return Settings{
		Notifications: Notifications{
			Weather:   true,
			Reminders: false,
			NewSpots:  true,
		},
		Preferences: Preferences{
			DarkMode:        false,
			Language:        "ru",
			WeightUnit:      WeightKilograms,
			TemperatureUnit: TemperatureCelsius,
		},
	}
}

// NotificationsUpdate carries a partial update of notification toggles.
type NotificationsUpdate struct {
	Weather   *bool
	Reminders *bool
	NewSpots  *bool
}

// PreferencesUpdate carries a partial update of display preferences.
type PreferencesUpdate struct {
	DarkMode        *bool
	Language        *string
	WeightUnit      *WeightUnit
	TemperatureUnit *TemperatureUnit
}

// ProfileUpdate carries a partial update of the user profile.
type ProfileUpdate struct {
	Name   *string
	Email  *string
	Avatar *string
}

// SettingsUpdate is a tagged partial update: each present sub-struct is merged
// into the corresponding settings group.
type SettingsUpdate struct {
	Notifications *NotificationsUpdate
	Preferences   *PreferencesUpdate
	User          *ProfileUpdate
}

// Apply merges the update into the settings document.
func (u SettingsUpdate) Apply(s *Settings) {
	if u.Notifications != nil {
		if u.Notifications.Weather != nil {
			s.Notifications.Weather = *u.Notifications.Weather
		}
		if u.Notifications.Reminders != nil {
			s.Notifications.Reminders = *u.Notifications.Reminders
		}
		if u.Notifications.NewSpots != nil {
			s.Notifications.NewSpots = *u.Notifications.NewSpots
		}
	}
	if u.Preferences != nil {
		if u.Preferences.DarkMode != nil {
			s.Preferences.DarkMode = *u.Preferences.DarkMode
		}
		if u.Preferences.Language != nil {
			s.Preferences.Language = *u.Preferences.Language
		}
		if u.Preferences.WeightUnit != nil {
			s.Preferences.WeightUnit = *u.Preferences.WeightUnit
		}
		if u.Preferences.TemperatureUnit != nil {
			s.Preferences.TemperatureUnit = *u.Preferences.TemperatureUnit
		}
	}
	if u.User != nil {
		if u.User.Name != nil {
			s.User.Name = *u.User.Name
		}
		if u.User.Email != nil {
			s.User.Email = *u.User.Email
		}
		if u.User.Avatar != nil {
			s.User.Avatar = *u.User.Avatar
		}
	}
}
