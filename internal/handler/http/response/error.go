package response

import (
	"errors"
	"net/http"

	"github.com/leadwise/crm-backend-go/internal/domain/attendance"
	"github.com/leadwise/crm-backend-go/internal/domain/lead"
	"github.com/leadwise/crm-backend-go/internal/domain/notification"
	"github.com/leadwise/crm-backend-go/internal/domain/task"
	"github.com/leadwise/crm-backend-go/internal/domain/ticket"
	"github.com/leadwise/crm-backend-go/internal/domain/user"
	"github.com/leadwise/crm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Org domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User is inactive")
	case errors.Is(err, user.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, user.ErrRoleNameExists):
		Conflict(w, "Role name already exists")
	case errors.Is(err, user.ErrRoleInUse):
		Conflict(w, "Role is still in use")
	case errors.Is(err, user.ErrRoleParentMissing):
		BadRequest(w, "Parent role not found", nil)
	case errors.Is(err, user.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, user.ErrAdminRequired):
		Forbidden(w, "Administrator permission required")

	// Lead domain errors
	case errors.Is(err, lead.ErrLeadNotFound):
		NotFound(w, "Lead not found")
	case errors.Is(err, lead.ErrLeadAccessDenied):
		Forbidden(w, "Not allowed to access this lead")
	case errors.Is(err, lead.ErrInvalidStatus):
		BadRequest(w, "Invalid lead status", nil)
	case errors.Is(err, lead.ErrAlreadyInLoginQueue):
		Conflict(w, "Lead is already in the login queue")
	case errors.Is(err, lead.ErrNotAssignedToUser):
		BadRequest(w, "Lead is not assigned to that user", nil)

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrTaskAccessDenied):
		Forbidden(w, "Not allowed to access this task")
	case errors.Is(err, task.ErrTaskAlreadyDone):
		Conflict(w, "Task is already completed")
	case errors.Is(err, task.ErrInvalidTaskStatus):
		BadRequest(w, "Invalid task status", nil)

	// Ticket domain errors
	case errors.Is(err, ticket.ErrTicketNotFound):
		NotFound(w, "Ticket not found")
	case errors.Is(err, ticket.ErrTicketAccessDenied):
		Forbidden(w, "Not allowed to access this ticket")
	case errors.Is(err, ticket.ErrTicketClosed):
		Conflict(w, "Ticket is already closed")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No check-in recorded today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrOutsideRadius):
		BadRequest(w, "Location is outside the allowed check-in radius", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceDenied):
		Forbidden(w, "Not allowed to access this attendance record")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
