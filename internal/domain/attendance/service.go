package attendance

import (
	"context"
)

// Service handles face/geo check-in. List visibility follows the engine's
// attendance-module capabilities: module admins see everyone, junior-capable
// managers see their subordinates, everyone sees their own records.
type Service interface {
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, userID string) (AttendanceResponse, error)
	My(ctx context.Context, userID string, filter Filter) ([]AttendanceResponse, int64, error)
	List(ctx context.Context, actorID string, filter Filter) ([]AttendanceResponse, int64, error)
}
