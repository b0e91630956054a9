// Package auth handles account registration, credential checks and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/secretsanta/internal/models"
)

// Authenticator registers accounts and verifies credentials.
// Implementations decide what a credential is (password, OAuth token, ...).
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
