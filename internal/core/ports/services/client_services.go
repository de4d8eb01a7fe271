package services

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

// ClientReaderSvc defines read operations for clients.
type ClientReaderSvc interface {
	// ListClients returns the owner's clients, newest first, filtered by the
	// free-text search.
	ListClients(ctx context.Context, userID, search string) ([]domain.Client, error)

	GetClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error)
}

// ClientWriterSvc defines write operations for clients.
type ClientWriterSvc interface {
	CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, userID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, userID, clientID string) error
}

// ClientSvcFacade combines all client service interfaces.
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
