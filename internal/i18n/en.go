package i18n

var translationsEN = Translations{
	// App
	"app.title":    "FishOK",
	"app.subtitle": "Your personal fishing assistant",
	"app.loading":  "Loading...",

	// Auth
	"auth.invalid_credentials": "Incorrect email or password",
	"auth.email_in_use":        "A user with this email already exists",
	"auth.invalid_email":       "Invalid email address",
	"auth.weak_password":       "Password is too weak",
	"auth.too_many_attempts":   "Too many login attempts. Try again later",
	"auth.misconfigured":       "Authentication service is not configured",
	"auth.login_failed":        "An error occurred during login",
	"auth.register_failed":     "An error occurred during registration",

	// Catches
	"catch.unknown_location": "Unknown location",

	// Data management
	"data.export_success": "Data exported successfully",
	"data.export_failed":  "Failed to export data",
	"data.import_failed":  "Failed to import data",

	// Generic
	"action.failed": "Action failed",
}
