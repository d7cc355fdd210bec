package service

import (
	"errors"

	"github.com/google/uuid"
)

// Domain-specific errors for token verification. The delivery layer maps both
// to an unauthenticated response; the distinction matters for logging and tests.
var (
	// ErrTokenInvalid is returned for malformed tokens, bad signatures, and
	// any payload mutation.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when the signature is valid but the
	// validity window has lapsed.
	ErrTokenExpired = errors.New("token expired")
)

// TokenService defines the interface for issuing and verifying signed bearer tokens.
// Verification is stateless: a pure function of the token bytes, the signing
// secret, and the current time. There is no server-side session store.
type TokenService interface {
	// Issue creates a signed token bound to the given account ID, valid from
	// now until now plus the configured TTL.
	Issue(accountID uuid.UUID) (string, error)

	// Verify checks the signature and validity window of a token string and
	// returns the account ID it was issued for. It fails with ErrTokenExpired
	// when the token has lapsed and ErrTokenInvalid for everything else.
	Verify(tokenString string) (uuid.UUID, error)
}
