package domain

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskPaused     TaskStatus = "paused"
	TaskCompleted  TaskStatus = "completed"
	TaskArchived   TaskStatus = "archived"
)

// TaskPriority orders tasks in list views.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// taskTransitions allows the pause/resume cycle; archived is terminal.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskPending:    {TaskInProgress, TaskCompleted, TaskArchived},
	TaskInProgress: {TaskPaused, TaskCompleted, TaskArchived},
	TaskPaused:     {TaskInProgress, TaskArchived},
	TaskCompleted:  {TaskArchived},
}

// Task represents a unit of work, optionally attached to a project.
type Task struct {
	TaskID      string       `json:"taskID"`    // Primary Key (UUID)
	UserID      string       `json:"userID"`    // Owner FK -> users.user_id
	ProjectID   string       `json:"projectID"` // Nullable FK -> projects.project_id
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Status      TaskStatus   `json:"status"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	ProjectName string       `json:"projectName"` // Resolved at load time for display
	AuditFields
}

func (t Task) SearchFields() []string {
	return []string{t.Title, t.ProjectName}
}

func (t Task) StatusValue() string { return string(t.Status) }

// TransitionTo applies a guarded status change. Completing a task sets
// CompletedAt exactly once per completion.
func (t *Task) TransitionTo(status TaskStatus, now time.Time) error {
	if !canTransition(taskTransitions, t.Status, status) {
		return invalidTransitionErr(t.Status, status)
	}
	t.Status = status
	if status == TaskCompleted {
		t.CompletedAt = &now
	}
	t.Touch(now)
	return nil
}
