package users

import "github.com/mahoneyreunion/reunion/internal/auth"

type CreateUserRequest struct {
	Email    string    `json:"email" validate:"required,email"`
	Name     string    `json:"name" validate:"required,min=2,max=120"`
	Password string    `json:"password" validate:"required"`
	Role     auth.Role `json:"role" validate:"required"`
}

// UpdateUserRequest carries only the fields the caller wants to change.
// Nil pointers leave the stored value untouched.
type UpdateUserRequest struct {
	Email         *string    `json:"email,omitempty" validate:"omitempty,email"`
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Password      *string    `json:"password,omitempty"`
	Role          *auth.Role `json:"role,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
	EmailVerified *bool      `json:"email_verified,omitempty"`
}

func (r UpdateUserRequest) empty() bool {
	return r.Email == nil && r.Name == nil && r.Password == nil &&
		r.Role == nil && r.IsActive == nil && r.EmailVerified == nil
}

type ListUsersFilter struct {
	Role     auth.Role
	IsActive *bool
	Search   string
}
