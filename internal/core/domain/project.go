package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectActive: {ProjectPaused, ProjectCompleted, ProjectCancelled},
	ProjectPaused: {ProjectActive, ProjectCancelled},
}

// Project represents an engagement with a client, grouping tasks.
type Project struct {
	ProjectID   string          `json:"projectID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`    // Owner FK -> users.user_id
	ClientID    string          `json:"clientID"`  // Nullable FK -> clients.client_id
	Name        string          `json:"name"`
	Description string          `json:"description"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	Status      ProjectStatus   `json:"status"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	ClientName  string          `json:"clientName"` // Resolved at load time for display
	AuditFields
}

func (p Project) SearchFields() []string {
	return []string{p.Name, p.ClientName}
}

func (p Project) StatusValue() string { return string(p.Status) }

// TransitionTo applies a guarded status change. Completed and cancelled are
// terminal.
func (p *Project) TransitionTo(status ProjectStatus, now time.Time) error {
	if !canTransition(projectTransitions, p.Status, status) {
		return invalidTransitionErr(p.Status, status)
	}
	p.Status = status
	if status == ProjectCompleted {
		p.CompletedAt = &now
	}
	p.Touch(now)
	return nil
}
