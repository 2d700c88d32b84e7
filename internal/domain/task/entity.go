package task

import (
	"time"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// Task statuses
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

type Task struct {
	ID          string
	Title       string
	Description *string
	Status      string
	DueDate     *time.Time
	LeadID      *string
	CreatedBy   string
	AssignedTo  visibility.AssigneeList
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// VisibilityRecord reduces the task to the ownership view the engine reads.
// Tasks have no explicit reporter list.
func (t Task) VisibilityRecord() visibility.Record {
	return visibility.Record{
		Module:     visibility.ModuleTasks,
		CreatedBy:  t.CreatedBy,
		AssignedTo: t.AssignedTo,
	}
}
