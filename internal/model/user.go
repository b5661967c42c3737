package model

import (
	"errors"
	"time"
)

// User represents a registered account.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	AvatarURL      *string   `db:"avatar_url" json:"avatar"`
	ChannelID      *int64    `db:"channel_id" json:"channelId"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// AuthUser is the authenticated identity attached to the request context
// by the auth middleware.
type AuthUser struct {
	ID        int64
	Username  string
	Email     string
	AvatarURL *string
}

// SignupRequest represents the data needed to create an account.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the data needed to log in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after a successful signup or login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Signup validation constraints
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when the requested username is registered
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when the requested email is registered
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so the response does not leak which one failed
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Signup validation errors
	ErrUsernameInvalid  = errors.New("username must be at least 3 characters of letters, digits or underscore")
	ErrEmailInvalid     = errors.New("valid email is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
)
