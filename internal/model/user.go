package model

import "time"

// Role values assignable to a user. Registration always defaults to RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the stored identity and credential record. Password holds the
// argon2id hash, never plaintext. The struct itself is never written to an
// API response; handlers convert to UserResponse first.
type User struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Password       string     `json:"password"`
	Role           string     `json:"role"`
	LastConnection *time.Time `json:"last_connection"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest carries the request-scoped credential pair. It is verified and
// discarded, never persisted.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents user data safe for API responses (no credential hash).
type UserResponse struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	LastConnection *time.Time `json:"last_connection,omitempty"`
}

// ToResponse strips the credential hash and timestamps from a stored record.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           u.Role,
		LastConnection: u.LastConnection,
	}
}

// UpdateUserRequest represents a partial profile update.
type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}
