package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposalStatus is the lifecycle state of a proposal.
type ProposalStatus string

const (
	ProposalDraft    ProposalStatus = "draft"
	ProposalSent     ProposalStatus = "sent"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
	ProposalExpired  ProposalStatus = "expired"
)

var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalDraft:   {ProposalSent},
	ProposalSent:    {ProposalAccepted, ProposalRejected, ProposalExpired},
	ProposalExpired: {ProposalSent},
}

// Proposal represents a pitch for new work, optionally priced.
type Proposal struct {
	ProposalID  string          `json:"proposalID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`     // Owner FK -> users.user_id
	ClientID    string          `json:"clientID"`   // Nullable FK -> clients.client_id
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`   // Derived: amount * taxRate / 100
	TotalAmount decimal.Decimal `json:"totalAmount"` // Derived: amount + taxAmount
	ValidUntil  *time.Time      `json:"validUntil,omitempty"`
	Status      ProposalStatus  `json:"status"`
	SentAt      *time.Time      `json:"sentAt,omitempty"`
	AcceptedAt  *time.Time      `json:"acceptedAt,omitempty"`
	RejectedAt  *time.Time      `json:"rejectedAt,omitempty"`
	ClientName  string          `json:"clientName"` // Resolved at load time for display
	AuditFields
}

func (p Proposal) SearchFields() []string {
	return []string{p.Title, p.ClientName}
}

func (p Proposal) StatusValue() string { return string(p.Status) }

// Recalculate recomputes the derived monetary fields from Amount and TaxRate.
func (p *Proposal) Recalculate() {
	p.TaxAmount, p.TotalAmount = ComputeTax(p.Amount, p.TaxRate)
}

// TransitionTo applies a guarded status change, setting exactly the matching
// transition timestamp.
func (p *Proposal) TransitionTo(status ProposalStatus, now time.Time) error {
	if !canTransition(proposalTransitions, p.Status, status) {
		return invalidTransitionErr(p.Status, status)
	}
	p.Status = status
	switch status {
	case ProposalSent:
		p.SentAt = &now
	case ProposalAccepted:
		p.AcceptedAt = &now
	case ProposalRejected:
		p.RejectedAt = &now
	}
	p.Touch(now)
	return nil
}

// Duplicate returns a copy of the proposal with a fresh identity, status reset
// to draft and transition timestamps cleared.
func (p Proposal) Duplicate(newID string, now time.Time) Proposal {
	dup := p
	dup.ProposalID = newID
	dup.Title = p.Title + " (Copy)"
	dup.Status = ProposalDraft
	dup.SentAt = nil
	dup.AcceptedAt = nil
	dup.RejectedAt = nil
	dup.CreatedAt = now
	dup.UpdatedAt = now
	return dup
}
