package attendance

import (
	"time"

	"github.com/leadwise/crm-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name,omitempty"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	FaceImageURL *string `json:"face_image_url,omitempty"`
	Status       string  `json:"status"`
	WorkMinutes  *int    `json:"work_minutes,omitempty"`
}

type CheckInRequest struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	FaceImageURL string  `json:"face_image_url"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if validator.IsEmpty(r.FaceImageURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "face_image_url",
			Message: "face_image_url is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	From  *time.Time
	To    *time.Time
	Page  int
	Limit int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
