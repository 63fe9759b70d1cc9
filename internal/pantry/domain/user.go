package domain

import "time"

type User struct {
	ID           string
	Email        string // normalized, see NormalizeEmail
	Name         string
	PasswordHash string // argon2id PHC string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// String returns the user's email, which is also its login identifier.
func (u User) String() string { return u.Email }
