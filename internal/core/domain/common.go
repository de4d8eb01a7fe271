package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch bumps UpdatedAt. Call on every mutation.
func (a *AuditFields) Touch(now time.Time) {
	a.UpdatedAt = now
}
