package services

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

// AuthSvcFacade defines account registration and credential checks. Identity
// federation is out of scope; this only backs the owner-scoping JWT.
type AuthSvcFacade interface {
	// Register creates a new account with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies email + password and returns the user.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
