// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// The plaintext password and its confirmation are transient: they are used for
// the mismatch check and hashing, then discarded. They must never be persisted
// or logged.
type RegisterInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
	State           string `json:"state"`
}

// LoginInput defines the data required for an account holder to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// AccountOutput carries the public identity fields of an account.
// The password hash never leaves the usecase layer.
type AccountOutput struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AuthOutput returns the account information and the issued bearer token
// after a successful registration or login.
type AuthOutput struct {
	Account AccountOutput
	Token   string
}

// AuthUsecase defines the interface for credential-issuance operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new account and issues a token for it.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login authenticates stored credentials and issues a token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Logout acknowledges a logout. There is no server-side session state to
	// invalidate; the caller discards the token locally.
	Logout(ctx context.Context) error
}
