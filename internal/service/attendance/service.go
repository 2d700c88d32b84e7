package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/leadwise/crm-backend-go/internal/config"
	"github.com/leadwise/crm-backend-go/internal/domain/attendance"
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/leadwise/crm-backend-go/internal/pkg/utils"
)

// lateAfter is the local-time cutoff for a check-in to count as on time.
const lateAfter = "09:00"

// PermissionSource resolves an actor's permission entries.
type PermissionSource interface {
	PermissionsFor(ctx context.Context, userID string) ([]visibility.Entry, error)
}

type serviceImpl struct {
	repo   attendance.Repository
	engine visibility.Engine
	perms  PermissionSource
	office config.OfficeConfig
}

func NewService(
	repo attendance.Repository,
	engine visibility.Engine,
	perms PermissionSource,
	office config.OfficeConfig,
) attendance.Service {
	return &serviceImpl{
		repo:   repo,
		engine: engine,
		perms:  perms,
		office: office,
	}
}

// CheckIn records the start of a workday. The caller's coordinates must fall
// inside the office radius and the face image must already be uploaded.
func (s *serviceImpl) CheckIn(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !utils.WithinRadius(s.office.Latitude, s.office.Longitude, req.Latitude, req.Longitude, s.office.RadiusMeters) {
		return attendance.AttendanceResponse{}, attendance.ErrOutsideRadius
	}

	now := time.Now()
	today := dateOnly(now)

	checkedIn, err := s.repo.HasCheckedIn(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if checkedIn {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status := attendance.StatusPresent
	if isLate(now) {
		status = attendance.StatusLate
	}

	faceURL := req.FaceImageURL
	record := attendance.Attendance{
		UserID:       userID,
		Date:         today,
		CheckIn:      &now,
		CheckInLat:   &req.Latitude,
		CheckInLng:   &req.Longitude,
		FaceImageURL: &faceURL,
		Status:       status,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	return toResponse(created), nil
}

// CheckOut closes today's open session and computes worked minutes.
func (s *serviceImpl) CheckOut(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	now := time.Now()
	today := dateOnly(now)

	session, err := s.repo.GetOpenSession(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if session == nil {
		checkedIn, err := s.repo.HasCheckedIn(ctx, userID, today)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if checkedIn {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	session.CheckOut = &now
	session.Status = attendance.StatusCheckedOut
	if session.CheckIn != nil {
		minutes := int(now.Sub(*session.CheckIn).Minutes())
		session.WorkMinutes = &minutes
	}

	if err := s.repo.Update(ctx, *session); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(*session), nil
}

// My lists the caller's own records.
func (s *serviceImpl) My(ctx context.Context, userID string, filter attendance.Filter) ([]attendance.AttendanceResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	records, total, err := s.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(records), total, nil
}

// List scopes results by the actor's attendance-module capability: module
// admins see everyone, junior-capable managers see their subordinates plus
// themselves, everyone else sees only their own records.
func (s *serviceImpl) List(ctx context.Context, actorID string, filter attendance.Filter) ([]attendance.AttendanceResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	entries, err := s.perms.PermissionsFor(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	c := s.engine.Classify(entries, visibility.ModuleAttendance)

	switch {
	case c.SuperAdmin || c.ModuleAdmin:
		records, total, err := s.repo.ListAll(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
		return toResponses(records), total, nil

	case c.Junior:
		subs, err := s.engine.Subordinates(ctx, actorID)
		if err != nil {
			return nil, 0, err
		}
		ids := make([]string, 0, len(subs)+1)
		ids = append(ids, actorID)
		for id := range subs {
			if id != actorID {
				ids = append(ids, id)
			}
		}
		records, total, err := s.repo.ListByUsers(ctx, ids, filter)
		if err != nil {
			return nil, 0, err
		}
		return toResponses(records), total, nil

	default:
		records, total, err := s.repo.ListByUser(ctx, actorID, filter)
		if err != nil {
			return nil, 0, err
		}
		return toResponses(records), total, nil
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isLate(t time.Time) bool {
	cutoff, _ := time.Parse("15:04", lateAfter)
	return t.Hour() > cutoff.Hour() || (t.Hour() == cutoff.Hour() && t.Minute() > cutoff.Minute())
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}
	return responses
}

func toResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           rec.ID,
		UserID:       rec.UserID,
		UserName:     rec.UserName,
		Date:         rec.Date.Format("2006-01-02"),
		FaceImageURL: rec.FaceImageURL,
		Status:       rec.Status,
		WorkMinutes:  rec.WorkMinutes,
	}
	if rec.CheckIn != nil {
		in := rec.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &in
	}
	if rec.CheckOut != nil {
		out := rec.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &out
	}
	return resp
}
