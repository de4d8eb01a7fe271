package dto

import (
	"time"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProposalRequest defines the data needed to create a new proposal.
type CreateProposalRequest struct {
	Title       string          `json:"title" binding:"required"`
	ClientID    string          `json:"clientID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	ValidUntil  *time.Time      `json:"validUntil"`
}

// UpdateProposalRequest defines the data allowed for updating a proposal.
type UpdateProposalRequest struct {
	Title       *string          `json:"title"`
	ClientID    *string          `json:"clientID"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	TaxRate     *decimal.Decimal `json:"taxRate"`
	ValidUntil  *time.Time       `json:"validUntil"`
}

// ListProposalsResponse wraps the list of proposals.
type ListProposalsResponse struct {
	Proposals []domain.Proposal `json:"proposals"`
}
