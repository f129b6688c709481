package auth

import "time"

// Role is one of four ordered tiers. The ordering lives on the type itself;
// role strings coming from the database or a token that match none of the
// four constants rank below every known tier and hold no permissions.
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleModerator  Role = "moderator"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Tier returns the ordinal rank of the role, 1..4. Unknown roles rank 0.
func (r Role) Tier() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleModerator:
		return 2
	case RoleAdmin:
		return 3
	case RoleSuperAdmin:
		return 4
	default:
		return 0
	}
}

// Known reports whether the role is one of the four recognised tiers.
func (r Role) Known() bool {
	return r.Tier() > 0
}

// Roles lists the four tiers in ascending order.
func Roles() []Role {
	return []Role{RoleViewer, RoleModerator, RoleAdmin, RoleSuperAdmin}
}

// Principal describes the authenticated actor as carried by the session
// token. It is resolved purely from token claims; no per-request database
// lookup is involved.
type Principal struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// AdminUser mirrors a row of the admin_users table. Accounts are created by
// administrators only; there is no public signup.
type AdminUser struct {
	ID                  int64
	Email               string
	PasswordHash        string
	Name                string
	Role                Role
	IsActive            bool
	EmailVerified       bool
	LastLogin           *time.Time
	FailedLoginAttempts int
	LockedUntil         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Principal derives the token-facing identity from an account row.
func (u *AdminUser) Principal() Principal {
	return Principal{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
