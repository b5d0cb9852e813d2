package auth

import (
	"context"

	"github.com/mmynk/neondara/internal/models"
)

// Authenticator abstracts how accounts are created and verified, so the
// auth service does not depend on a particular credential type.
type Authenticator interface {
	// Register creates an account. Returns ErrEmailExists when the email is taken.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user for valid credentials and
	// ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential format before anything is stored.
	ValidateCredential(credential string) error
}
