package task

import (
	"time"

	"github.com/leadwise/crm-backend-go/internal/pkg/validator"
)

type TaskResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Status      string   `json:"status"`
	DueDate     *string  `json:"due_date,omitempty"`
	LeadID      *string  `json:"lead_id,omitempty"`
	CreatedBy   string   `json:"created_by"`
	AssignedTo  []string `json:"assigned_to"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	CompletedAt *string  `json:"completed_at,omitempty"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	LeadID      *string  `json:"lead_id,omitempty"`
	AssignedTo  []string `json:"assigned_to,omitempty"`

	// Parsed from DueDate during validation.
	ParsedDueDate *time.Time `json:"-"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}
	if r.DueDate != nil {
		due, ok := validator.IsValidDate(*r.DueDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due_date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedDueDate = &due
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTaskRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Status != nil {
		switch *r.Status {
		case StatusOpen, StatusInProgress, StatusDone:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: open, in_progress, done",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignTaskRequest struct {
	ID         string   `json:"id"`
	AssignedTo []string `json:"assigned_to"`
}

func (r *AssignTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	Status *string
	LeadID *string
	Search *string
	Page   int
	Limit  int
}
