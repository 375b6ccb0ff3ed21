package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the declared account roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

var ErrUserExists = errors.New("user with this email already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")

// User models a registered account. PasswordHash never leaves the process:
// it is excluded from JSON and stripped by the repository on identity reads.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
