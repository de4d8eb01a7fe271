package repositories

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
)

// ClientReader defines read operations for client data.
type ClientReader interface {
	// FindClientByID retrieves one client owned by userID.
	FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error)

	// FindClientsByUser retrieves all clients owned by userID, newest first.
	FindClientsByUser(ctx context.Context, userID string) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data.
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient hard-deletes a client owned by userID.
	DeleteClient(ctx context.Context, userID, clientID string) error
}

// ClientRepositoryFacade combines all client repository interfaces.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
