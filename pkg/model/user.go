package model

import "time"

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"

	// AllCountries grants access to every country.
	AllCountries = "all"

	// AdminUsername is the bootstrap account; it can never be deleted.
	AdminUsername = "admin"
)

// Permissions are the per-user capability flags as stored on disk and in tokens
type Permissions struct {
	CanCreate        bool `json:"canCreate"`
	CanEdit          bool `json:"canEdit"`
	CanDelete        bool `json:"canDelete"`
	RequiresApproval bool `json:"requiresApproval"`
}

// DefaultEditorPermissions are granted to users created without explicit permissions
func DefaultEditorPermissions() Permissions {
	return Permissions{
		CanCreate:        true,
		CanEdit:          false,
		CanDelete:        false,
		RequiresApproval: true,
	}
}

// User is a CMS account
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	// Password is the bcrypt hash; Sanitized clears it before responses.
	Password           string      `json:"password,omitempty"`
	Role               string      `json:"role"`
	Name               string      `json:"name"`
	Countries          []string    `json:"countries"`
	Permissions        Permissions `json:"permissions"`
	CreatedAt          time.Time   `json:"createdAt"`
	MustChangePassword bool        `json:"mustChangePassword,omitempty"`
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Sanitized returns a copy without the password hash
func (u User) Sanitized() User {
	u.Password = ""
	if u.Countries == nil {
		u.Countries = []string{}
	}
	return u
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
