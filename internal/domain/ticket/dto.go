package ticket

import (
	"github.com/leadwise/crm-backend-go/internal/pkg/validator"
)

type TicketResponse struct {
	ID         string   `json:"id"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Priority   string   `json:"priority"`
	Status     string   `json:"status"`
	CreatedBy  string   `json:"created_by"`
	AssignedTo []string `json:"assigned_to"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	ClosedAt   *string  `json:"closed_at,omitempty"`
}

type CreateTicketRequest struct {
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Priority   string   `json:"priority"`
	AssignedTo []string `json:"assigned_to,omitempty"`
}

func (r *CreateTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject is required",
		})
	}
	if len(r.Subject) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject must not exceed 255 characters",
		})
	}
	switch r.Priority {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTicketRequest struct {
	ID       string  `json:"id"`
	Subject  *string `json:"subject,omitempty"`
	Body     *string `json:"body,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

func (r *UpdateTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Priority != nil {
		switch *r.Priority {
		case PriorityLow, PriorityMedium, PriorityHigh:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "priority",
				Message: "priority must be one of: low, medium, high",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	Status   *string
	Priority *string
	Search   *string
	Page     int
	Limit    int
}
