package models

import "time"

// Roles assigned by the backend.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User mirrors the backend's user representation. The backend never returns
// credential fields; tokens live on the session, not here.
type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Bio           string     `json:"bio,omitempty"`
	AvatarURL     string     `json:"avatarUrl,omitempty"`
	Role          string     `json:"role"`
	Active        *bool      `json:"active,omitempty"`
	EmailVerified *bool      `json:"emailVerified,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// IsAdmin reports whether the user holds an administrative role.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
