package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, record Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetOpenSession(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	HasCheckedIn(ctx context.Context, userID string, date time.Time) (bool, error)
	Update(ctx context.Context, record Attendance) error
	ListByUser(ctx context.Context, userID string, filter Filter) ([]Attendance, int64, error)
	ListByUsers(ctx context.Context, userIDs []string, filter Filter) ([]Attendance, int64, error)
	ListAll(ctx context.Context, filter Filter) ([]Attendance, int64, error)
}
