package postgresql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/attendance"
	"github.com/leadwise/crm-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `a.id, a.user_id, a.date, a.check_in, a.check_out,
	a.check_in_lat, a.check_in_lng, a.face_image_url, a.status, a.work_minutes,
	a.created_at, a.updated_at, u.name`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var rec attendance.Attendance
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Date,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.CheckInLat,
		&rec.CheckInLng,
		&rec.FaceImageURL,
		&rec.Status,
		&rec.WorkMinutes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.UserName,
	)
	return rec, err
}

// Create implements attendance.Repository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO attendances (user_id, date, check_in, check_in_lat, check_in_lng, face_image_url, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM inserted a
		JOIN users u ON u.id = a.user_id
	`
	return scanAttendance(q.QueryRow(ctx, query,
		record.UserID,
		record.Date,
		record.CheckIn,
		record.CheckInLat,
		record.CheckInLng,
		record.FaceImageURL,
		record.Status,
	))
}

// GetByID implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`
	return scanAttendance(q.QueryRow(ctx, query, id))
}

// GetOpenSession implements attendance.Repository. Returns nil when the user
// has no session awaiting checkout for the given date.
func (r *attendanceRepositoryImpl) GetOpenSession(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1 AND a.date = $2 AND a.check_out IS NULL
	`
	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// HasCheckedIn implements attendance.Repository.
func (r *attendanceRepositoryImpl) HasCheckedIn(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM attendances WHERE user_id = $1 AND date = $2)`,
		userID, date).Scan(&exists)
	return exists, err
}

// Update implements attendance.Repository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $1, status = $2, work_minutes = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, record.CheckOut, record.Status, record.WorkMinutes, record.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByUser implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByUser(ctx context.Context, userID string, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	b := newFilterBuilder()
	conds := []string{"a.user_id = " + b.bind(userID)}
	return r.list(ctx, b, conds, filter)
}

// ListByUsers implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByUsers(ctx context.Context, userIDs []string, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	if len(userIDs) == 0 {
		return nil, 0, nil
	}
	b := newFilterBuilder()
	conds := []string{"a.user_id = ANY(" + b.bind(userIDs) + ")"}
	return r.list(ctx, b, conds, filter)
}

// ListAll implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListAll(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	b := newFilterBuilder()
	conds := []string{"TRUE"}
	return r.list(ctx, b, conds, filter)
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, b *filterBuilder, conds []string, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	if filter.From != nil {
		conds = append(conds, "a.date >= "+b.bind(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "a.date <= "+b.bind(*filter.To))
	}
	where := strings.Join(conds, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances a WHERE `+where, b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(filter.Page, filter.Limit)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE ` + where + `
		ORDER BY a.date DESC, a.check_in DESC
		LIMIT ` + b.bind(limit) + ` OFFSET ` + b.bind(offset)

	rows, err := q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}
