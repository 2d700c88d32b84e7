package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeadAssigned    NotificationType = "lead_assigned"
	TypeLeadTransferred NotificationType = "lead_transferred"
	TypeLeadReporterSet NotificationType = "lead_reporter_set"
	TypeTaskAssigned    NotificationType = "task_assigned"
	TypeTaskCompleted   NotificationType = "task_completed"
	TypeTicketAssigned  NotificationType = "ticket_assigned"
)

type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
