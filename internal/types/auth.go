// Package types provides shared type definitions used across the talent portal API.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Principal is the authenticated identity attached to every request by the
// auth middleware. It is derived from JWT claims, never from request bodies.
type Principal struct {
	ID               uuid.UUID        `json:"id"`
	Rank             Rank             `json:"rank"`
	ActivationStatus ActivationStatus `json:"activation_status"`
}

// RegisterRequest represents the request to create a new applicant account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Account represents an account for API responses. The password hash never
// leaves the db package.
type Account struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone,omitempty"`
	Rank             Rank             `json:"rank"`
	ActivationStatus ActivationStatus `json:"activation_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// LoginResponse represents the login/register response with account data and
// the session token.
type LoginResponse struct {
	Account *Account `json:"account"`
	Token   string   `json:"token"`
}
