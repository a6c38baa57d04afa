package models

import "time"

// AdminUser is the authenticated console operator.
type AdminUser struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
}

// LoginCredentials is the login request payload.
type LoginCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Credentials is the persisted authentication state.
type Credentials struct {
	Token string    `json:"token"`
	User  AdminUser `json:"user"`
}

// SessionInfo describes the current credentials for display.
type SessionInfo struct {
	User      AdminUser  `json:"user"`
	TokenSet  bool       `json:"token_set"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
