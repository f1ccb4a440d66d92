// Package entity contains the core business objects of the project.
package entity

// Role represents the staff role a user can have in the system.
type Role string

const (
	// RoleAdmin indicates full administrative access.
	RoleAdmin Role = "admin"
	// RoleAnalyst indicates read access to analytics dashboards.
	RoleAnalyst Role = "analyst"
	// RoleManager indicates team-level access to analytics dashboards.
	RoleManager Role = "manager"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleManager:
		return true
	default:
		return false
	}
}
