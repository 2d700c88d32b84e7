package attendance

import "errors"

var (
	ErrAlreadyCheckedIn   = errors.New("you have already checked in today")
	ErrNotCheckedIn       = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut  = errors.New("you have already checked out")
	ErrOutsideRadius      = errors.New("you are outside the allowed check-in radius")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceDenied   = errors.New("not allowed to view attendance records")
)
