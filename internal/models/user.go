package models

import "time"

// Role is the closed set of account roles. It is fixed at registration and
// never changes for the lifetime of the account.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleInstructor Role = "Instructor"
	RoleStudent    Role = "Student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// User represents a login account in the system. Student and Instructor
// accounts reference their profile record through ProfileID; Admin accounts
// have none.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose this to the client
	Role         Role       `json:"role"`
	IsActive     bool       `json:"isActive"`
	ProfileID    string     `json:"profileId,omitempty"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
