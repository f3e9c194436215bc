// Package identity is the credential side of the platform: it owns
// auth accounts (email + password hash), issues bearer tokens, and
// verifies them. Profiles in the college_users collection reference
// accounts by ID but never see credentials.
package identity

import (
	"context"
	"errors"
)

// Account is the minimal identity projection the rest of the app sees.
type Account struct {
	ID    string
	Email string
}

var (
	// ErrEmailTaken is returned when an account with the email already exists.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned for a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for missing, malformed, or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrAccountNotFound is returned when no account matches the given ID.
	ErrAccountNotFound = errors.New("account not found")
)

// Provider issues and verifies credentials and bearer tokens.
type Provider interface {
	// CreateAccount registers a new pre-confirmed account and returns it.
	CreateAccount(ctx context.Context, email, password string) (Account, error)

	// Authenticate checks an email/password pair and returns an access
	// token plus the authenticated account.
	Authenticate(ctx context.Context, email, password string) (token string, acct Account, err error)

	// VerifyToken validates a bearer token and resolves its account.
	VerifyToken(ctx context.Context, token string) (Account, error)

	// UpdatePassword replaces the password for an existing account.
	UpdatePassword(ctx context.Context, accountID, newPassword string) error
}
