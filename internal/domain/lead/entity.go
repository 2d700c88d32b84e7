package lead

import (
	"time"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// Lead statuses
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

type Lead struct {
	ID             string
	Name           string
	Email          *string
	Phone          *string
	Source         *string
	Status         string
	IsLoginLead    bool
	CreatedBy      string
	AssignedTo     visibility.AssigneeList
	AssignReportTo []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Module returns the effective permission module of the lead. A lead moved
// to the login queue is governed by login-module grants, not leads grants.
func (l Lead) Module() visibility.Module {
	if l.IsLoginLead {
		return visibility.ModuleLogin
	}
	return visibility.ModuleLeads
}

// VisibilityRecord reduces the lead to the ownership view the engine reads.
func (l Lead) VisibilityRecord() visibility.Record {
	return visibility.Record{
		Module:         l.Module(),
		CreatedBy:      l.CreatedBy,
		AssignedTo:     l.AssignedTo,
		AssignReportTo: l.AssignReportTo,
	}
}

// Activity actions recorded on the lead timeline.
const (
	ActivityCreated       = "created"
	ActivityAssigned      = "assigned"
	ActivityTransferred   = "transferred"
	ActivityStatusChanged = "status_changed"
	ActivityReportersSet  = "reporters_set"
	ActivityMovedToLogin  = "moved_to_login"
)

type Activity struct {
	ID        string
	LeadID    string
	ActorID   string
	Action    string
	Detail    string
	CreatedAt time.Time
}
