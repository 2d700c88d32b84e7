package attendance

import (
	"time"
)

// Attendance statuses
const (
	StatusPresent    = "present"
	StatusLate       = "late"
	StatusCheckedOut = "checked_out"
)

type Attendance struct {
	ID           string
	UserID       string
	Date         time.Time
	CheckIn      *time.Time
	CheckOut     *time.Time
	CheckInLat   *float64
	CheckInLng   *float64
	FaceImageURL *string
	Status       string
	WorkMinutes  *int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	UserName *string
}
