package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portsrepo "github.com/autonomoapp/autonomo_backend/internal/core/ports/repositories"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

// clientService implements the client business logic.
type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
	metrics    portssvc.MetricsInvalidator
}

// NewClientService creates a new client service instance.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, metrics portssvc.MetricsInvalidator) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo, metrics: metrics}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) ListClients(ctx context.Context, userID, search string) ([]domain.Client, error) {
	clients, err := s.clientRepo.FindClientsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return domain.FilterList(clients, search, domain.StatusAll), nil
}

func (s *clientService) GetClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client %s: %w", clientID, err)
	}
	return client, nil
}

func (s *clientService) CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error) {
	now := time.Now()
	client := domain.Client{
		ClientID: uuid.NewString(),
		UserID:   userID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		TaxID:    req.TaxID,
		Address:  req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client")
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return &client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, userID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client %s for update: %w", clientID, err)
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.TaxID != nil {
		client.TaxID = *req.TaxID
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	client.Touch(time.Now())

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", "client_id", clientID)
		return nil, fmt.Errorf("failed to update client %s: %w", clientID, err)
	}

	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, userID, clientID string) error {
	if err := s.clientRepo.DeleteClient(ctx, userID, clientID); err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	s.metrics.InvalidateSummary(ctx, userID)
	return nil
}
