// Package domain holds DTOs for the auth http and service contracts
package domain

import "time"

// RegisterInput creates a user account
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email,max=254" example:"ana@example.com"`
	Username  string `json:"username" validate:"required,nonblank,min=3,max=50" example:"ana"`
	Password  string `json:"password" validate:"required,min=6,max=72" example:"secret1"`
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=100"`
}

// LoginInput authenticates by username or email
type LoginInput struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required,nonblank" example:"ana"`
	Password        string `json:"password" validate:"required"`
}

// User is the public view of an account
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is returned on register and login
// Token is shown once; only its digest is stored
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}
