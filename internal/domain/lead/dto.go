package lead

import (
	"github.com/leadwise/crm-backend-go/internal/pkg/validator"
)

type LeadResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Source         *string  `json:"source,omitempty"`
	Status         string   `json:"status"`
	IsLoginLead    bool     `json:"is_login_lead"`
	CreatedBy      string   `json:"created_by"`
	AssignedTo     []string `json:"assigned_to"`
	AssignReportTo []string `json:"assign_report_to"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type CreateLeadRequest struct {
	Name       string   `json:"name"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Source     *string  `json:"source,omitempty"`
	AssignedTo []string `json:"assigned_to,omitempty"`
}

func (r *CreateLeadRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeadRequest struct {
	ID     string  `json:"id"`
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Source *string `json:"source,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (r *UpdateLeadRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Status != nil && !validStatus(*r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: new, contacted, qualified, converted, lost",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost:
		return true
	}
	return false
}

type AssignLeadRequest struct {
	ID         string   `json:"id"`
	AssignedTo []string `json:"assigned_to"`
}

func (r *AssignLeadRequest) Validate() error {
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

type TransferLeadRequest struct {
	ID         string `json:"id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
}

func (r *TransferLeadRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.FromUserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_user_id",
			Message: "from_user_id is required",
		})
	}
	if validator.IsEmpty(r.ToUserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_user_id",
			Message: "to_user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetReportersRequest struct {
	ID        string   `json:"id"`
	Reporters []string `json:"reporters"`
}

func (r *SetReportersRequest) Validate() error {
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

// Filter narrows a lead listing beyond the visibility filter.
type Filter struct {
	Status    *string
	Search    *string
	LoginOnly bool
	Page      int
	Limit     int
}

type ActivityResponse struct {
	ID        string `json:"id"`
	LeadID    string `json:"lead_id"`
	ActorID   string `json:"actor_id"`
	Action    string `json:"action"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}
