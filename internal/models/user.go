package models

import "time"

// User roles. Role is stored as plain text; these are the two values the
// system assigns.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User represents a registered account
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not serialized
	Role         string    `json:"role"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the Admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Summary is the minimal projection embedded in task responses.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username, Role: u.Role}
}

// UserSummary is the creator/assignee projection carried on tasks
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
