// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity in the system, representing one registered principal.
// The ID is assigned at creation and never changes afterwards.
type Account struct {
	ID           uuid.UUID // The unique identifier for the account, assigned by the store.
	Name         string    // The account holder's display name.
	Email        string    // The login identifier. Unique across all accounts, case-sensitive as stored.
	PasswordHash string    // The bcrypt hash of the password. Never empty once the account exists, never the plaintext.
	Address      string    // Free-form profile field.
	Phone        string    // Free-form profile field.
	City         string    // Free-form profile field.
	State        string    // Free-form profile field.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account's data.
}
