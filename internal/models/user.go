package models

import "time"

// Roles recognised by the platform.
const (
	RoleStudent    = "student"
	RoleParent     = "parent"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Account statuses.
const (
	UserStatusActive    = "active"
	UserStatusInvited   = "invited"
	UserStatusSuspended = "suspended"
)

// User is a platform account as the console sees it. Guardians and
// GuardianOf form a bidirectional parent-child relation maintained by the
// backend after link/unlink calls.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone,omitempty"`
	Roles      []string  `json:"roles"`
	Status     string    `json:"status"`
	Credits    float64   `json:"credits"`
	Guardians  []string  `json:"guardians"`
	GuardianOf []string  `json:"guardian_of"`
	School     string    `json:"school,omitempty"`
	GradeLevel string    `json:"grade_level,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CreateUserData is the payload for registering a new account.
type CreateUserData struct {
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,min=8"`
	FirstName  string   `json:"first_name" validate:"required"`
	LastName   string   `json:"last_name" validate:"required"`
	Phone      string   `json:"phone,omitempty"`
	Roles      []string `json:"roles,omitempty" validate:"omitempty,dive,oneof=student parent instructor admin"`
	School     string   `json:"school,omitempty"`
	GradeLevel string   `json:"grade_level,omitempty"`
}

// UpdateUserData is a partial patch. Nil fields are left untouched.
type UpdateUserData struct {
	Email      *string  `json:"email,omitempty" validate:"omitempty,email"`
	FirstName  *string  `json:"first_name,omitempty"`
	LastName   *string  `json:"last_name,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Roles      []string `json:"roles,omitempty" validate:"omitempty,dive,oneof=student parent instructor admin"`
	Status     *string  `json:"status,omitempty" validate:"omitempty,oneof=active invited suspended"`
	School     *string  `json:"school,omitempty"`
	GradeLevel *string  `json:"grade_level,omitempty"`
}

// AddCreditsData adjusts a parent balance by a signed delta.
type AddCreditsData struct {
	Credits float64 `json:"credits" validate:"required"`
	Reason  string  `json:"reason,omitempty"`
}

// LinkGuardianData connects a parent account to a student.
type LinkGuardianData struct {
	GuardianID string `json:"guardian_id" validate:"required"`
}
