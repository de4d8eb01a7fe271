package dto

import "github.com/autonomoapp/autonomo_backend/internal/core/domain"

// CreateClientRequest defines the data needed to create a new client.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	TaxID   string `json:"taxID"`
	Address string `json:"address"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Pointers distinguish omitted fields from zero values.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	TaxID   *string `json:"taxID"`
	Address *string `json:"address"`
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []domain.Client `json:"clients"`
}
