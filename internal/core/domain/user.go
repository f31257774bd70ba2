package domain

import "time"

// Credential bounds applied at signup and on profile updates.
const (
	MinPasswordLength = 5
	MaxPasswordBytes  = 72
	MaxEmailLength    = 254
)

// User models an account. PasswordHash never leaves the process.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserDetail is a user together with the content they own.
type UserDetail struct {
	User      *User
	Questions []*Question
	Answers   []*Answer
}
