// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is a staff identity record (admin, analyst or manager) used by the
// analytics dashboards. UserID and Email are both globally unique; the store
// enforces both at write time, so a duplicate write fails instead of
// silently overwriting.
type User struct {
	UserID           string      // Immutable logical identifier, e.g. "user_5f3c...". Never reused.
	Email            string      // Primary login identifier, unique, stored case-sensitive.
	PasswordHash     string      // The bcrypt secret. Never the plaintext, never serialized outward.
	FirstName        string      // The user's given name.
	LastName         string      // The user's family name.
	Role             Role        // One of admin, analyst, manager.
	RegistrationDate time.Time   // Set once at creation.
	LastLogin        *time.Time  // Nil until the first successful login.
	Preferences      Preferences // Dashboard presentation settings.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Preferences holds per-user dashboard presentation settings. The
// notification settings are free-form and owned by the frontend.
type Preferences struct {
	DashboardLayout      string         `json:"dashboard_layout"`
	NotificationSettings map[string]any `json:"notification_settings"`
	Theme                Theme          `json:"theme"`
}

// Theme is the dashboard color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid checks if the Theme is a valid value. The zero value is allowed so
// registration does not have to pick a theme.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, "":
		return true
	default:
		return false
	}
}
